package directory

import (
	"encoding/json"

	"github.com/haltepunkt/stx/internal/normalize"
	"github.com/haltepunkt/stx/internal/types"
)

// stationPayload mirrors one entry of the remote directory's JSON schema.
type stationPayload struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Weight   float64 `json:"weight"`
	Location struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"location"`
}

// pageEnvelope mirrors one page of the remote directory. Entries stay raw so
// a single malformed entry is skipped instead of failing the whole page.
type pageEnvelope struct {
	Total    int               `json:"total"`
	Stations []json.RawMessage `json:"stations"`
}

// mapEnvelope converts a decoded page envelope into station records,
// deriving each station's canonical search name. Entries that fail to decode
// or lack an identifier or name become item failures.
func mapEnvelope(envelope pageEnvelope, pageOffset int) Page {
	page := Page{Total: envelope.Total}
	for entryIndex, rawEntry := range envelope.Stations {
		entryOffset := pageOffset + entryIndex
		var payload stationPayload
		if decodeErr := json.Unmarshal(rawEntry, &payload); decodeErr != nil {
			page.Failures = append(page.Failures, ItemFailure{Offset: entryOffset, Reason: decodeErr.Error()})
			continue
		}
		if payload.ID == "" || payload.Name == "" {
			page.Failures = append(page.Failures, ItemFailure{Offset: entryOffset, Reason: "entry is missing id or name"})
			continue
		}
		page.Stations = append(page.Stations, types.Station{
			ID:         payload.ID,
			Name:       payload.Name,
			SearchName: normalize.Normalize(payload.Name, " "),
			Weight:     payload.Weight,
			Latitude:   payload.Location.Latitude,
			Longitude:  payload.Location.Longitude,
		})
	}
	return page
}
