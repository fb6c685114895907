package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/haltepunkt/stx/internal/dispatch"
	"github.com/haltepunkt/stx/internal/normalize"
	"github.com/haltepunkt/stx/internal/output"
	"github.com/haltepunkt/stx/internal/rank"
	"github.com/haltepunkt/stx/internal/types"
)

const (
	searchTermSeparator     = " "
	skippedSnapshotLinesFmt = "snapshot contains %d unreadable lines; consider running `stx stations update`"
)

var (
	errSearchTermRequired = errors.New("search term required")
	errSearchTermEmpty    = errors.New("search term is empty after normalization")
)

// NewSearchHandler returns the handler behind `stx stations search`. The
// term is normalized into the snapshot's canonical space, candidates are
// filtered by substring containment, ordered by relevance, and the top
// results printed.
func NewSearchHandler(dependencies Dependencies) dispatch.Handler {
	return func(arguments []string) error {
		asJSON := false
		resultLimit := dependencies.Settings.SearchLimit
		termTokens := make([]string, 0, len(arguments))
		for argumentIndex := 0; argumentIndex < len(arguments); argumentIndex++ {
			switch arguments[argumentIndex] {
			case jsonOptionToken:
				asJSON = true
			case limitOptionToken:
				argumentIndex++
				if argumentIndex >= len(arguments) {
					return fmt.Errorf("%s requires a number", limitOptionToken)
				}
				parsedLimit, parseErr := strconv.Atoi(arguments[argumentIndex])
				if parseErr != nil || parsedLimit <= 0 {
					return fmt.Errorf("%s requires a positive number, got %q", limitOptionToken, arguments[argumentIndex])
				}
				resultLimit = parsedLimit
			default:
				termTokens = append(termTokens, arguments[argumentIndex])
			}
		}
		if len(termTokens) == 0 {
			return errSearchTermRequired
		}

		term := normalize.Normalize(strings.Join(termTokens, searchTermSeparator), searchTermSeparator)
		if term == "" {
			return errSearchTermEmpty
		}

		stations, skippedLines, readErr := dependencies.Snapshot.Read()
		if readErr != nil {
			return readErr
		}
		if skippedLines > 0 {
			dependencies.Logger.Warn(fmt.Sprintf(skippedSnapshotLinesFmt, skippedLines))
		}

		matches := make([]types.Station, 0)
		for _, station := range stations {
			if strings.Contains(station.SearchName, term) {
				matches = append(matches, station)
			}
		}
		rank.SortByRelevance(term, matches, func(station types.Station) rank.Candidate {
			return rank.Candidate{SearchName: station.SearchName, Weight: station.Weight}
		})
		if len(matches) > resultLimit {
			matches = matches[:resultLimit]
		}

		if asJSON {
			rendered, renderErr := output.RenderStationsJSON(matches)
			if renderErr != nil {
				return renderErr
			}
			fmt.Fprint(dependencies.Stdout, rendered)
			return nil
		}
		fmt.Fprint(dependencies.Stdout, output.RenderStationsRaw(matches))
		return nil
	}
}
