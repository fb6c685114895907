package commands

import (
	"fmt"

	"github.com/haltepunkt/stx/internal/dispatch"
	"github.com/haltepunkt/stx/internal/utils"
)

const versionLineFormat = "stx version: %s\n"

// NewVersionHandler returns the handler behind `stx version`.
func NewVersionHandler(dependencies Dependencies) dispatch.Handler {
	return func(arguments []string) error {
		fmt.Fprintf(dependencies.Stdout, versionLineFormat, utils.GetApplicationVersion())
		return nil
	}
}
