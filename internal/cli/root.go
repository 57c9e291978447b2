// Package cli defines the parktracker command tree. Commands parse flags,
// call one service operation and print the result; they hold no business logic.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pkordes/park-tracker/internal/agent"
	"github.com/pkordes/park-tracker/internal/config"
	"github.com/pkordes/park-tracker/internal/importer"
	"github.com/pkordes/park-tracker/internal/logging"
	"github.com/pkordes/park-tracker/internal/repo"
	"github.com/pkordes/park-tracker/internal/service"
)

// app is the state shared by every command once PersistentPreRunE has run.
type app struct {
	configPath string
	dataPath   string
	verbose    bool

	cfg     config.Config
	log     *zap.Logger
	parks   *service.ParkService
	visits  *service.VisitService
	docs    *service.DocumentService
	imports *service.ImportService

	// input is shared by the menu, the agent and confirmation prompts so
	// that none of them buffers lines another one needs.
	input *bufio.Scanner
	out   io.Writer
}

// Execute runs the command tree against os.Args. A failure is logged at
// error level once the logger exists, or printed to stderr before that.
func Execute(ctx context.Context) error {
	a := &app{}
	root := newRootCmd(a)
	err := root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	if a.log != nil {
		a.log.Error("command failed", zap.Error(err))
		_ = a.log.Sync()
	} else {
		_, _ = fmt.Fprintf(root.ErrOrStderr(), "parktracker: %v\n", err)
	}
	return err
}

// NewRootCmd constructs the root command; exposed for testing.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{})
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "parktracker",
		Short:         "Track national parks and your visits to them",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (YAML, JSON or TOML); defaults to $"+config.FileEnv)
	root.PersistentFlags().StringVar(&a.dataPath, "data", "", "store file; overrides DATA_PATH")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newAddParkCmd(a),
		newListParksCmd(a),
		newUpdateParkCmd(a),
		newNoteParkCmd(a),
		newAddVisitCmd(a),
		newVisitParkCmd(a),
		newListVisitsCmd(a),
		newExportCmd(a),
		newImportParksCmd(a),
		newClearCmd(a),
		newMenuCmd(a),
		newAgentCmd(a),
	)
	return root
}

// setup wires config, logger, store and services.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.dataPath != "" {
		cfg.DataPath = a.dataPath
	}
	if a.verbose {
		cfg.LogLevel = "debug"
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	store := repo.NewFileRepo(cfg.DataPath, logger)
	if err := store.Initialize(cmd.Context()); err != nil {
		return err
	}

	a.cfg = cfg
	a.log = logger
	a.parks = service.NewParkService(store)
	a.visits = service.NewVisitService(store)
	a.docs = service.NewDocumentService(store)
	a.imports = service.NewImportService(store, importer.NewLoader(cfg.ImportTimeout, logger))
	a.input = agent.NewLineScanner(cmd.InOrStdin())
	a.out = cmd.OutOrStdout()
	return nil
}

func (a *app) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.out, format, args...)
}
