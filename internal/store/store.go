// Package store persists the local station snapshot as newline-delimited
// JSON under the tool's data directory.
package store

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/haltepunkt/stx/internal/types"
)

const (
	snapshotFileName     = "stations.ndjson"
	snapshotTempPattern  = "stations-*.ndjson"
	dataDirectoryMode    = 0o755
	maximumSnapshotRow = 1024 * 1024
)

// ErrNoSnapshot reports that no snapshot has been written yet.
var ErrNoSnapshot = errors.New("no station snapshot; run `stx stations update` first")

// Store reads and writes the station snapshot.
type Store struct {
	dataDirectory string
}

// NewStore constructs a store rooted at the given data directory.
func NewStore(dataDirectory string) *Store {
	return &Store{dataDirectory: dataDirectory}
}

// Path returns the snapshot file location.
func (snapshotStore *Store) Path() string {
	return filepath.Join(snapshotStore.dataDirectory, snapshotFileName)
}

// Write replaces the snapshot atomically: records stream into a temporary
// file in the same directory which is then renamed over the snapshot, so a
// crashed write never leaves a truncated snapshot behind.
func (snapshotStore *Store) Write(stations []types.Station) error {
	if makeDirErr := os.MkdirAll(snapshotStore.dataDirectory, dataDirectoryMode); makeDirErr != nil {
		return fmt.Errorf("create data directory %s: %w", snapshotStore.dataDirectory, makeDirErr)
	}

	temporaryFile, tempErr := os.CreateTemp(snapshotStore.dataDirectory, snapshotTempPattern)
	if tempErr != nil {
		return fmt.Errorf("create snapshot temporary file: %w", tempErr)
	}
	temporaryPath := temporaryFile.Name()
	defer os.Remove(temporaryPath)

	writer := bufio.NewWriter(temporaryFile)
	encoder := json.NewEncoder(writer)
	for _, station := range stations {
		if encodeErr := encoder.Encode(station); encodeErr != nil {
			temporaryFile.Close()
			return fmt.Errorf("encode station %s: %w", station.ID, encodeErr)
		}
	}
	if flushErr := writer.Flush(); flushErr != nil {
		temporaryFile.Close()
		return fmt.Errorf("flush snapshot: %w", flushErr)
	}
	if closeErr := temporaryFile.Close(); closeErr != nil {
		return fmt.Errorf("close snapshot temporary file: %w", closeErr)
	}

	if renameErr := os.Rename(temporaryPath, snapshotStore.Path()); renameErr != nil {
		return fmt.Errorf("replace snapshot: %w", renameErr)
	}
	return nil
}

// Read loads the snapshot. Malformed lines are skipped and counted rather
// than failing the load; the skipped count lets the caller warn about a
// partially damaged snapshot.
func (snapshotStore *Store) Read() ([]types.Station, int, error) {
	snapshotFile, openErr := os.Open(snapshotStore.Path())
	if openErr != nil {
		if os.IsNotExist(openErr) {
			return nil, 0, ErrNoSnapshot
		}
		return nil, 0, fmt.Errorf("open snapshot %s: %w", snapshotStore.Path(), openErr)
	}
	defer snapshotFile.Close()

	stations := make([]types.Station, 0)
	skippedLines := 0
	scanner := bufio.NewScanner(snapshotFile)
	scanner.Buffer(make([]byte, 0, 64*1024), maximumSnapshotRow)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var station types.Station
		if decodeErr := json.Unmarshal(line, &station); decodeErr != nil || station.ID == "" {
			skippedLines++
			continue
		}
		stations = append(stations, station)
	}
	if scanErr := scanner.Err(); scanErr != nil {
		return nil, skippedLines, fmt.Errorf("read snapshot %s: %w", snapshotStore.Path(), scanErr)
	}
	return stations, skippedLines, nil
}
