// Package types defines every cross‑package data structure used by the stx CLI.
package types

// Station is one record of the transit station directory. SearchName holds
// the canonical lowercase form of Name and is derived once when the snapshot
// is written, so search never normalizes candidate names at query time.
type Station struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	SearchName string  `json:"searchName"`
	Weight     float64 `json:"weight"`
	Latitude   float64 `json:"latitude,omitempty"`
	Longitude  float64 `json:"longitude,omitempty"`
}
