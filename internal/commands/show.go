package commands

import (
	"errors"
	"fmt"

	"github.com/haltepunkt/stx/internal/dispatch"
	"github.com/haltepunkt/stx/internal/normalize"
	"github.com/haltepunkt/stx/internal/output"
)

const (
	slugSeparator          = "-"
	stationNotFoundFormat  = "no station with id %q in the snapshot"
	copiedToClipboardLabel = "copied to clipboard"
)

var errStationIDRequired = errors.New("station id required")

// NewShowHandler returns the handler behind `stx stations show`: it prints
// one snapshot record by identifier. With --copy the identifier also lands
// on the system clipboard.
func NewShowHandler(dependencies Dependencies) dispatch.Handler {
	return func(arguments []string) error {
		copyRequested := dependencies.Settings.CopyToClipboard
		identifier := ""
		for _, argument := range arguments {
			if argument == copyOptionToken {
				copyRequested = true
				continue
			}
			if identifier == "" {
				identifier = argument
			}
		}
		if identifier == "" {
			return errStationIDRequired
		}

		stations, _, readErr := dependencies.Snapshot.Read()
		if readErr != nil {
			return readErr
		}
		for _, station := range stations {
			if station.ID != identifier {
				continue
			}
			slug := normalize.Normalize(station.Name, slugSeparator)
			fmt.Fprint(dependencies.Stdout, output.RenderStationDetail(station, slug))
			if copyRequested {
				if copyErr := dependencies.Clipboard.Copy(station.ID); copyErr != nil {
					return fmt.Errorf("copy station id: %w", copyErr)
				}
				dependencies.Logger.Info(copiedToClipboardLabel)
			}
			return nil
		}
		return fmt.Errorf(stationNotFoundFormat, identifier)
	}
}
