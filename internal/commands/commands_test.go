package commands_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/haltepunkt/stx/internal/commands"
	"github.com/haltepunkt/stx/internal/config"
	"github.com/haltepunkt/stx/internal/progress"
	"github.com/haltepunkt/stx/internal/services/directory"
	"github.com/haltepunkt/stx/internal/store"
	"github.com/haltepunkt/stx/internal/types"
)

// fakeDirectoryClient serves a canned directory from memory.
type fakeDirectoryClient struct {
	stations []types.Station
	failures []directory.ItemFailure
	err      error
}

func (client *fakeDirectoryClient) FetchPage(ctx context.Context, offset int, limit int) (directory.Page, error) {
	if client.err != nil {
		return directory.Page{}, client.err
	}
	return directory.Page{Total: len(client.stations), Stations: client.stations, Failures: client.failures}, nil
}

func (client *fakeDirectoryClient) FetchAll(ctx context.Context, observer func(fetched int, total int)) ([]types.Station, []directory.ItemFailure, error) {
	if client.err != nil {
		return nil, nil, client.err
	}
	if observer != nil {
		observer(len(client.stations), len(client.stations))
	}
	return client.stations, client.failures, nil
}

// fakeClipboard records what was copied.
type fakeClipboard struct {
	copied []string
	err    error
}

func (clipboardFake *fakeClipboard) Copy(text string) error {
	if clipboardFake.err != nil {
		return clipboardFake.err
	}
	clipboardFake.copied = append(clipboardFake.copied, text)
	return nil
}

// testHarness bundles the dependencies and observable outputs of a handler
// under test.
type testHarness struct {
	dependencies commands.Dependencies
	stdout       *bytes.Buffer
	snapshot     *store.Store
	clipboard    *fakeClipboard
	directory    *fakeDirectoryClient
}

func newTestHarness(testingHandle *testing.T) *testHarness {
	testingHandle.Helper()
	stdout := &bytes.Buffer{}
	snapshot := store.NewStore(testingHandle.TempDir())
	clipboardFake := &fakeClipboard{}
	directoryFake := &fakeDirectoryClient{}
	settings := config.Settings{SearchLimit: config.DefaultSearchLimit}
	return &testHarness{
		dependencies: commands.Dependencies{
			Logger:    zap.NewNop(),
			Settings:  settings,
			Directory: directoryFake,
			Snapshot:  snapshot,
			Clipboard: clipboardFake,
			Progress:  progress.NewReporter(&bytes.Buffer{}, false),
			Stdout:    stdout,
		},
		stdout:    stdout,
		snapshot:  snapshot,
		clipboard: clipboardFake,
		directory: directoryFake,
	}
}

func directoryStations() []types.Station {
	return []types.Station{
		{ID: "8000191", Name: "Karlsruhe Hbf", SearchName: "karlsruhe hbf", Weight: 191.5},
		{ID: "8010205", Name: "Leipzig Karlsruher Straße", SearchName: "leipzig karlsruher strasse", Weight: 400},
		{ID: "8000152", Name: "Hannover Hbf", SearchName: "hannover hbf", Weight: 152},
	}
}

// TestUpdateHandlerWritesSnapshot verifies that update stores the fetched
// directory in the snapshot.
func TestUpdateHandlerWritesSnapshot(testingHandle *testing.T) {
	harness := newTestHarness(testingHandle)
	harness.directory.stations = directoryStations()
	harness.directory.failures = []directory.ItemFailure{{Offset: 9, Reason: "entry is missing id or name"}}

	if handlerErr := commands.NewUpdateHandler(harness.dependencies)(nil); handlerErr != nil {
		testingHandle.Fatalf("update handler failed: %v", handlerErr)
	}

	stations, skippedLines, readErr := harness.snapshot.Read()
	if readErr != nil {
		testingHandle.Fatalf("snapshot unreadable after update: %v", readErr)
	}
	if skippedLines != 0 || len(stations) != 3 {
		testingHandle.Fatalf("unexpected snapshot contents: %d stations, %d skipped", len(stations), skippedLines)
	}
}

// TestUpdateHandlerPropagatesFetchError verifies that a directory failure
// surfaces and leaves no snapshot behind.
func TestUpdateHandlerPropagatesFetchError(testingHandle *testing.T) {
	harness := newTestHarness(testingHandle)
	harness.directory.err = errors.New("directory unreachable")

	handlerErr := commands.NewUpdateHandler(harness.dependencies)(nil)
	if handlerErr == nil {
		testingHandle.Fatal("expected an error from the update handler")
	}
	if _, _, readErr := harness.snapshot.Read(); !errors.Is(readErr, store.ErrNoSnapshot) {
		testingHandle.Fatalf("expected no snapshot, got %v", readErr)
	}
}

// seedSnapshot writes the canned stations into the harness snapshot.
func seedSnapshot(testingHandle *testing.T, harness *testHarness) {
	testingHandle.Helper()
	if writeErr := harness.snapshot.Write(directoryStations()); writeErr != nil {
		testingHandle.Fatalf("failed to seed snapshot: %v", writeErr)
	}
}

// TestSearchHandlerRanksPrefixMatchFirst verifies that search normalizes the
// term and orders prefix matches ahead of heavier infix matches.
func TestSearchHandlerRanksPrefixMatchFirst(testingHandle *testing.T) {
	harness := newTestHarness(testingHandle)
	seedSnapshot(testingHandle, harness)

	if handlerErr := commands.NewSearchHandler(harness.dependencies)([]string{"Karlsruhe"}); handlerErr != nil {
		testingHandle.Fatalf("search handler failed: %v", handlerErr)
	}

	lines := strings.Split(strings.TrimRight(harness.stdout.String(), "\n"), "\n")
	if len(lines) != 2 {
		testingHandle.Fatalf("expected 2 result lines, got %d: %q", len(lines), harness.stdout.String())
	}
	if !strings.HasPrefix(lines[0], "8000191") {
		testingHandle.Fatalf("prefix match not first: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "8010205") {
		testingHandle.Fatalf("infix match not second: %q", lines[1])
	}
}

// TestSearchHandlerNormalizesUmlauts verifies that a term with German
// diacritics matches the canonical snapshot names.
func TestSearchHandlerNormalizesUmlauts(testingHandle *testing.T) {
	harness := newTestHarness(testingHandle)
	seedSnapshot(testingHandle, harness)

	if handlerErr := commands.NewSearchHandler(harness.dependencies)([]string{"Karlsruher", "Straße"}); handlerErr != nil {
		testingHandle.Fatalf("search handler failed: %v", handlerErr)
	}
	if !strings.Contains(harness.stdout.String(), "8010205") {
		testingHandle.Fatalf("umlaut term did not match: %q", harness.stdout.String())
	}
}

// TestSearchHandlerJSONAndLimit verifies the --json rendering and the
// --limit option.
func TestSearchHandlerJSONAndLimit(testingHandle *testing.T) {
	harness := newTestHarness(testingHandle)
	seedSnapshot(testingHandle, harness)

	if handlerErr := commands.NewSearchHandler(harness.dependencies)([]string{"--json", "--limit", "1", "hbf"}); handlerErr != nil {
		testingHandle.Fatalf("search handler failed: %v", handlerErr)
	}

	var results []types.Station
	if decodeErr := json.Unmarshal(harness.stdout.Bytes(), &results); decodeErr != nil {
		testingHandle.Fatalf("output is not JSON: %v", decodeErr)
	}
	if len(results) != 1 {
		testingHandle.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].ID != "8000191" {
		testingHandle.Fatalf("heaviest hbf match should win: %+v", results[0])
	}
}

// TestSearchHandlerRequiresTerm verifies the failure modes for absent and
// symbol-only terms.
func TestSearchHandlerRequiresTerm(testingHandle *testing.T) {
	harness := newTestHarness(testingHandle)
	seedSnapshot(testingHandle, harness)

	if handlerErr := commands.NewSearchHandler(harness.dependencies)(nil); handlerErr == nil {
		testingHandle.Fatal("expected an error without a term")
	}
	if handlerErr := commands.NewSearchHandler(harness.dependencies)([]string{"((("}); handlerErr == nil {
		testingHandle.Fatal("expected an error for a term that normalizes to nothing")
	}
}

// TestSearchHandlerWithoutSnapshot verifies that search reports the missing
// snapshot sentinel.
func TestSearchHandlerWithoutSnapshot(testingHandle *testing.T) {
	harness := newTestHarness(testingHandle)
	handlerErr := commands.NewSearchHandler(harness.dependencies)([]string{"karlsruhe"})
	if !errors.Is(handlerErr, store.ErrNoSnapshot) {
		testingHandle.Fatalf("expected ErrNoSnapshot, got %v", handlerErr)
	}
}

// TestShowHandlerPrintsDetailAndCopies verifies the detail rendering and the
// --copy option.
func TestShowHandlerPrintsDetailAndCopies(testingHandle *testing.T) {
	harness := newTestHarness(testingHandle)
	seedSnapshot(testingHandle, harness)

	if handlerErr := commands.NewShowHandler(harness.dependencies)([]string{"--copy", "8000191"}); handlerErr != nil {
		testingHandle.Fatalf("show handler failed: %v", handlerErr)
	}

	rendered := harness.stdout.String()
	if !strings.Contains(rendered, "Karlsruhe Hbf") || !strings.Contains(rendered, "karlsruhe-hbf") {
		testingHandle.Fatalf("detail output incomplete: %q", rendered)
	}
	if len(harness.clipboard.copied) != 1 || harness.clipboard.copied[0] != "8000191" {
		testingHandle.Fatalf("clipboard contents = %v, want station id", harness.clipboard.copied)
	}
}

// TestShowHandlerUnknownID verifies the not-found error names the id.
func TestShowHandlerUnknownID(testingHandle *testing.T) {
	harness := newTestHarness(testingHandle)
	seedSnapshot(testingHandle, harness)

	handlerErr := commands.NewShowHandler(harness.dependencies)([]string{"999"})
	if handlerErr == nil || !strings.Contains(handlerErr.Error(), "999") {
		testingHandle.Fatalf("expected a not-found error naming the id, got %v", handlerErr)
	}
}

// TestSlugHandlerDerivesIdentifier verifies slug derivation and clipboard
// copying.
func TestSlugHandlerDerivesIdentifier(testingHandle *testing.T) {
	harness := newTestHarness(testingHandle)

	if handlerErr := commands.NewSlugHandler(harness.dependencies)([]string{"--copy", "Fäßchen/Brücken-Straße"}); handlerErr != nil {
		testingHandle.Fatalf("slug handler failed: %v", handlerErr)
	}

	const expectedSlug = "faesschen-bruecken-strasse"
	if harness.stdout.String() != expectedSlug+"\n" {
		testingHandle.Fatalf("slug output = %q, want %q", harness.stdout.String(), expectedSlug+"\n")
	}
	if len(harness.clipboard.copied) != 1 || harness.clipboard.copied[0] != expectedSlug {
		testingHandle.Fatalf("clipboard contents = %v, want slug", harness.clipboard.copied)
	}
}

// TestSlugHandlerRequiresName verifies the error for a missing name.
func TestSlugHandlerRequiresName(testingHandle *testing.T) {
	harness := newTestHarness(testingHandle)
	if handlerErr := commands.NewSlugHandler(harness.dependencies)(nil); handlerErr == nil {
		testingHandle.Fatal("expected an error without a name")
	}
}

// TestVersionHandlerPrintsVersionLine verifies the version line format.
func TestVersionHandlerPrintsVersionLine(testingHandle *testing.T) {
	harness := newTestHarness(testingHandle)
	if handlerErr := commands.NewVersionHandler(harness.dependencies)(nil); handlerErr != nil {
		testingHandle.Fatalf("version handler failed: %v", handlerErr)
	}
	if !strings.HasPrefix(harness.stdout.String(), "stx version: ") {
		testingHandle.Fatalf("unexpected version line: %q", harness.stdout.String())
	}
}
