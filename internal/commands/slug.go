package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/haltepunkt/stx/internal/dispatch"
	"github.com/haltepunkt/stx/internal/normalize"
)

var errSlugNameRequired = errors.New("name required")

// NewSlugHandler returns the handler behind `stx slug`: it derives the
// stable hyphenated identifier for a place name. The result is printed even
// when it is empty, so scripted callers always read exactly one line.
func NewSlugHandler(dependencies Dependencies) dispatch.Handler {
	return func(arguments []string) error {
		copyRequested := dependencies.Settings.CopyToClipboard
		nameTokens := make([]string, 0, len(arguments))
		for _, argument := range arguments {
			if argument == copyOptionToken {
				copyRequested = true
				continue
			}
			nameTokens = append(nameTokens, argument)
		}
		if len(nameTokens) == 0 {
			return errSlugNameRequired
		}

		slug := normalize.Normalize(strings.Join(nameTokens, " "), slugSeparator)
		fmt.Fprintln(dependencies.Stdout, slug)
		if copyRequested {
			if copyErr := dependencies.Clipboard.Copy(slug); copyErr != nil {
				return fmt.Errorf("copy slug: %w", copyErr)
			}
			dependencies.Logger.Info(copiedToClipboardLabel)
		}
		return nil
	}
}
