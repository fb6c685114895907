// Package cli builds the stx command tree once at startup, dispatches the
// process argument list against it, and renders the outcome. Process exit
// codes are decided here and nowhere else.
package cli

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/haltepunkt/stx/internal/commands"
	"github.com/haltepunkt/stx/internal/config"
	"github.com/haltepunkt/stx/internal/dispatch"
	"github.com/haltepunkt/stx/internal/output"
	"github.com/haltepunkt/stx/internal/progress"
	"github.com/haltepunkt/stx/internal/services/clipboard"
	"github.com/haltepunkt/stx/internal/services/directory"
	"github.com/haltepunkt/stx/internal/store"
)

const (
	exitCodeSuccess = 0
	exitCodeFailure = 1

	updateUsage       = "stx stations update"
	updateDescription = "download the station directory and refresh the local snapshot"
	searchUsage       = "stx stations search [--json] [--limit n] <term>"
	searchDescription = "search snapshot stations by name, most relevant first"
	showUsage         = "stx stations show [--copy] <id>"
	showDescription   = "print one station from the snapshot by identifier"
	slugUsage         = "stx slug [--copy] <name>"
	slugDescription   = "derive the stable identifier for a place name"
	versionUsage      = "stx version"
	versionDescription    = "print the application version"
)

// BuildCommandTree constructs the static command tree over the provided
// dependencies. The tree is built exactly once per process and never
// mutated, so it may be dispatched concurrently.
func BuildCommandTree(dependencies commands.Dependencies) *dispatch.Branch {
	stationsBranch := dispatch.NewBranch(
		dispatch.Child{Name: "update", Node: dispatch.NewLeaf(commands.NewUpdateHandler(dependencies), updateUsage, updateDescription)},
		dispatch.Child{Name: "search", Node: dispatch.NewLeaf(commands.NewSearchHandler(dependencies), searchUsage, searchDescription)},
		dispatch.Child{Name: "show", Node: dispatch.NewLeaf(commands.NewShowHandler(dependencies), showUsage, showDescription)},
	)
	return dispatch.NewBranch(
		dispatch.Child{Name: "stations", Node: stationsBranch},
		dispatch.Child{Name: "slug", Node: dispatch.NewLeaf(commands.NewSlugHandler(dependencies), slugUsage, slugDescription)},
		dispatch.Child{Name: "version", Node: dispatch.NewLeaf(commands.NewVersionHandler(dependencies), versionUsage, versionDescription)},
	)
}

// Execute dispatches the argument list against the tree and renders the
// outcome: help listings to stdout, failures and handler errors as a single
// highlighted line to stderr. The returned value is the process exit code.
func Execute(tree dispatch.Node, arguments []string, stdout io.Writer, stderr io.Writer) int {
	outcome := dispatch.Dispatch(tree, arguments)
	switch outcome.Kind {
	case dispatch.OutcomeHelpPrinted:
		fmt.Fprint(stdout, output.RenderHelp(outcome.HelpEntries))
		return exitCodeSuccess
	case dispatch.OutcomeFailure:
		fmt.Fprintln(stderr, output.RenderFailure(outcome.Failure))
		return exitCodeFailure
	default:
		if outcome.HandlerErr != nil {
			fmt.Fprintln(stderr, output.RenderErrorLine(outcome.HandlerErr.Error()))
			return exitCodeFailure
		}
		return exitCodeSuccess
	}
}

// Run loads configuration, wires the process-scoped dependencies, and
// executes the argument list. It is the single composition point; no
// package below it reaches for globals.
func Run(arguments []string, logger *zap.Logger) int {
	applicationConfiguration, configErr := config.LoadApplicationConfiguration(config.LoadOptions{})
	if configErr != nil {
		fmt.Fprintln(os.Stderr, output.RenderErrorLine(configErr.Error()))
		return exitCodeFailure
	}
	settings, resolveErr := config.Resolve(applicationConfiguration)
	if resolveErr != nil {
		fmt.Fprintln(os.Stderr, output.RenderErrorLine(resolveErr.Error()))
		return exitCodeFailure
	}

	dependencies := commands.Dependencies{
		Logger:   logger,
		Settings: settings,
		Directory: directory.NewHTTPClient(directory.Options{
			Endpoint:    settings.Endpoint,
			PageSize:    settings.PageSize,
			Parallelism: settings.Parallelism,
			Timeout:     settings.Timeout,
		}),
		Snapshot:  store.NewStore(settings.DataDirectory),
		Clipboard: clipboard.NewService(),
		Progress:  progress.NewReporter(os.Stderr, isTerminal(os.Stderr)),
		Stdout:    os.Stdout,
	}
	return Execute(BuildCommandTree(dependencies), arguments, os.Stdout, os.Stderr)
}

func isTerminal(file *os.File) bool {
	return term.IsTerminal(int(file.Fd()))
}
