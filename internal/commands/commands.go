// Package commands implements the leaf handlers behind the stx command
// tree. Every handler receives its collaborators through an explicit
// Dependencies value; nothing here reaches for ambient globals.
package commands

import (
	"io"

	"go.uber.org/zap"

	"github.com/haltepunkt/stx/internal/config"
	"github.com/haltepunkt/stx/internal/progress"
	"github.com/haltepunkt/stx/internal/services/clipboard"
	"github.com/haltepunkt/stx/internal/services/directory"
	"github.com/haltepunkt/stx/internal/store"
)

// Dependencies carries the collaborators shared by the leaf handlers. It is
// built once at startup and threaded through the command tree.
type Dependencies struct {
	Logger    *zap.Logger
	Settings  config.Settings
	Directory directory.Client
	Snapshot  *store.Store
	Clipboard clipboard.Copier
	Progress  *progress.Reporter
	Stdout    io.Writer
}

// Option tokens the handlers understand. Options are plain leading tokens;
// there is deliberately no flag-parsing framework here.
const (
	jsonOptionToken  = "--json"
	limitOptionToken = "--limit"
	copyOptionToken  = "--copy"
)
