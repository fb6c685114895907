package commands

import (
	"context"
	"fmt"

	"github.com/haltepunkt/stx/internal/dispatch"
)

const (
	contactingDirectoryLabel = "contacting station directory"
	downloadingStationsLabel = "downloading stations"
	skippedEntryWarnFormat   = "skipped directory entry at offset %d: %s"
	snapshotUpdatedFormat    = "snapshot updated: %d stations written to %s"
)

// NewUpdateHandler returns the handler behind `stx stations update`: it
// downloads the full remote directory, reports per-entry mapping failures
// without aborting, and atomically replaces the local snapshot.
func NewUpdateHandler(dependencies Dependencies) dispatch.Handler {
	return func(arguments []string) error {
		dependencies.Progress.StartSpinner(contactingDirectoryLabel)
		progressStarted := false
		stations, itemFailures, fetchErr := dependencies.Directory.FetchAll(context.Background(), func(fetched int, total int) {
			if !progressStarted && total > 0 {
				dependencies.Progress.StartProgress(downloadingStationsLabel, total)
				progressStarted = true
			}
			dependencies.Progress.Set(fetched)
		})
		dependencies.Progress.Stop()
		if fetchErr != nil {
			return fmt.Errorf("fetch station directory: %w", fetchErr)
		}

		for _, itemFailure := range itemFailures {
			dependencies.Logger.Warn(fmt.Sprintf(skippedEntryWarnFormat, itemFailure.Offset, itemFailure.Reason))
		}

		if writeErr := dependencies.Snapshot.Write(stations); writeErr != nil {
			return fmt.Errorf("write station snapshot: %w", writeErr)
		}
		dependencies.Logger.Info(fmt.Sprintf(snapshotUpdatedFormat, len(stations), dependencies.Snapshot.Path()))
		return nil
	}
}
