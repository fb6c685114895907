// Package output renders stations, help listings, and failures for the
// terminal. Rendering is the only place styling lives; every other package
// returns plain values.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/haltepunkt/stx/internal/dispatch"
	"github.com/haltepunkt/stx/internal/types"
)

const (
	helpColumnSeparator = "\t"
	stationLineFormat   = "%s\t%s\t%.1f\n"
	stationDetailFormat = "id:        %s\nname:      %s\nslug:      %s\nweight:    %.1f\nlatitude:  %.6f\nlongitude: %.6f\n"

	missingArgumentFormat = "missing command; expected one of: %s"
	unknownCommandFormat  = "unknown command %q"
	didYouMeanFormat      = " (did you mean %q?)"
	errorPrefix           = "Error: "
	jsonIndent            = "  "
)

var errorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("9")).
	Bold(true)

// RenderStationsRaw returns one tab-separated line per station: identifier,
// name, weight.
func RenderStationsRaw(stations []types.Station) string {
	var buffer bytes.Buffer
	for _, station := range stations {
		fmt.Fprintf(&buffer, stationLineFormat, station.ID, station.Name, station.Weight)
	}
	return buffer.String()
}

// RenderStationsJSON returns the stations as an indented JSON array.
func RenderStationsJSON(stations []types.Station) (string, error) {
	if stations == nil {
		stations = []types.Station{}
	}
	encoded, encodeErr := json.MarshalIndent(stations, "", jsonIndent)
	if encodeErr != nil {
		return "", fmt.Errorf("encode stations: %w", encodeErr)
	}
	return string(encoded) + "\n", nil
}

// RenderStationDetail returns a multi-line record for a single station, with
// the derived identifier slug included.
func RenderStationDetail(station types.Station, slug string) string {
	return fmt.Sprintf(stationDetailFormat,
		station.ID, station.Name, slug, station.Weight, station.Latitude, station.Longitude)
}

// RenderHelp returns one line per help entry: usage, a tab, description, in
// the traversal order dispatch produced.
func RenderHelp(entries []dispatch.HelpEntry) string {
	var buffer bytes.Buffer
	for _, entry := range entries {
		buffer.WriteString(entry.Usage)
		buffer.WriteString(helpColumnSeparator)
		buffer.WriteString(entry.Description)
		buffer.WriteString("\n")
	}
	return buffer.String()
}

// RenderFailure returns the single highlighted error line for a dispatch
// failure, naming valid children for a missing argument and the closest
// match for an unknown command.
func RenderFailure(failure *dispatch.Failure) string {
	var detail string
	switch failure.Kind {
	case dispatch.FailureMissingArgument:
		detail = fmt.Sprintf(missingArgumentFormat, strings.Join(failure.ValidNames, ", "))
	case dispatch.FailureUnknownCommand:
		detail = fmt.Sprintf(unknownCommandFormat, failure.Token)
		if failure.Suggestion != "" {
			detail += fmt.Sprintf(didYouMeanFormat, failure.Suggestion)
		}
	}
	return errorStyle.Render(errorPrefix + detail)
}

// RenderErrorLine returns a highlighted error line for a handler failure.
func RenderErrorLine(message string) string {
	return errorStyle.Render(errorPrefix + message)
}
