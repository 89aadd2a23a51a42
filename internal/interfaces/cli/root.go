package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/chemsolver/internal/app"
	"github.com/turtacn/chemsolver/internal/application/solver"
	"github.com/turtacn/chemsolver/internal/config"
	"github.com/turtacn/chemsolver/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/chemsolver/pkg/errors"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// BuildInfo holds version information injected at build time.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
}

// ServiceCLI names the CLI in the service_info metric.
const ServiceCLI = "chemsolver-cli"

// cliContextKey is the context key for CLIContext.
type cliContextKey struct{}

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath   string
	LogLevel     string
	OutputFormat string
	Lang         string
	Verbose      bool
}

// ServeFunc runs the API server until ctx is done.
type ServeFunc func(ctx context.Context, configPath string, cfg *config.Config, log logging.Logger, version string) error

// Option customizes the command tree.
type Option func(*rootState)

// WithService makes every command use svc instead of building a solver from
// the configuration.
func WithService(svc solver.Service) Option {
	return func(s *rootState) { s.service = svc }
}

// WithServeFunc replaces the function behind the serve command.
func WithServeFunc(fn ServeFunc) Option {
	return func(s *rootState) { s.serve = fn }
}

type rootState struct {
	opts    RootOptions
	service solver.Service
	serve   ServeFunc
	cliCtx  *CLIContext
}

func (s *rootState) close() {
	if s.cliCtx != nil {
		_ = s.cliCtx.Close()
	}
}

// CLIContext carries initialized dependencies through the command tree.
type CLIContext struct {
	Config       *config.Config
	ConfigPath   string
	Logger       logging.Logger
	OutputFormat string
	Lang         string
	Verbose      bool

	service solver.Service
	runtime *app.Runtime
}

// Service returns the solver, building it from the configuration on first
// use.
func (c *CLIContext) Service() (solver.Service, error) {
	if c.service != nil {
		return c.service, nil
	}
	rt, err := app.NewRuntime(c.Config, c.Logger, ServiceCLI, Version)
	if err != nil {
		return nil, err
	}
	c.runtime = rt
	c.service = rt.Solver
	return c.service, nil
}

// Close releases what Service built.
func (c *CLIContext) Close() error {
	if c.runtime == nil {
		return nil
	}
	err := c.runtime.Close()
	c.runtime = nil
	return err
}

// NewRootCommand creates the root cobra command with all global flags and subcommands.
func NewRootCommand(opts ...Option) *cobra.Command {
	cmd, _ := newRootCommand(opts...)
	return cmd
}

func newRootCommand(opts ...Option) (*cobra.Command, *rootState) {
	state := &rootState{serve: app.ServeAPI}
	for _, opt := range opts {
		opt(state)
	}

	cmd := &cobra.Command{
		Use:   "chemsolver",
		Short: "chemsolver classifies chemical formulas by molecular shape and compound family",
		Long: "chemsolver parses comma-separated chemical formulas such as C,O2 or H2,O,\n" +
			"builds the molecule around its central atom and classifies its VSEPR shape\n" +
			"and inorganic compound family. It also browses the element catalog.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return persistentPreRun(cmd, state)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&state.opts.ConfigPath, "config", "c", "", "config file path (default: ./chemsolver.yaml)")
	pf.StringVar(&state.opts.LogLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVarP(&state.opts.OutputFormat, "output", "o", "text", "output format (text, json, table)")
	pf.StringVarP(&state.opts.Lang, "lang", "l", "", "display language (en, it); default from config")
	pf.BoolVarP(&state.opts.Verbose, "verbose", "v", false, "enable verbose output")

	cmd.AddCommand(
		newShapeCmd(),
		newCompoundCmd(),
		newSolveCmd(),
		newBondCmd(),
		newElementCmd(),
		newElementsCmd(),
		newServeCmd(state),
		newVersionCmd(),
	)
	return cmd, state
}

// persistentPreRun initializes config and logger, then stores CLIContext.
func persistentPreRun(cmd *cobra.Command, state *rootState) error {
	opts := state.opts
	switch strings.ToLower(opts.OutputFormat) {
	case "text", "json", "table":
	default:
		return errors.InvalidParam("unsupported output format").WithDetail(opts.OutputFormat)
	}

	path, cfg, err := initConfig(opts)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeValidation, "config initialization failed")
	}

	logger, err := initLogger(opts)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "logger initialization failed")
	}

	state.cliCtx = &CLIContext{
		Config:       cfg,
		ConfigPath:   path,
		Logger:       logger,
		OutputFormat: strings.ToLower(opts.OutputFormat),
		Lang:         opts.Lang,
		Verbose:      opts.Verbose,
		service:      state.service,
	}
	cmd.SetContext(context.WithValue(cmd.Context(), cliContextKey{}, state.cliCtx))
	return nil
}

// initConfig loads configuration with priority: flag path, search paths,
// then defaults with CHEMSOLVER_* overrides.
func initConfig(opts RootOptions) (string, *config.Config, error) {
	if opts.ConfigPath != "" {
		cfg, err := config.Load(opts.ConfigPath)
		return opts.ConfigPath, cfg, err
	}

	searchPaths := []string{"./chemsolver.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		searchPaths = append(searchPaths, filepath.Join(home, ".chemsolver", "config.yaml"))
	}
	searchPaths = append(searchPaths, "/etc/chemsolver/config.yaml")

	for _, p := range searchPaths {
		if _, err := os.Stat(p); err == nil {
			cfg, err := config.Load(p)
			return p, cfg, err
		}
	}
	cfg, err := config.LoadFromEnv()
	return "", cfg, err
}

// initLogger creates a console logger on stderr so that command output on
// stdout stays machine readable.
func initLogger(opts RootOptions) (logging.Logger, error) {
	level := strings.ToLower(opts.LogLevel)
	if opts.Verbose {
		level = "debug"
	}
	return logging.NewLogger(logging.LogConfig{
		Level:            level,
		Format:           "console",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	})
}

// GetCLIContext extracts CLIContext from a cobra command's context.
func GetCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, errors.New(errors.ErrCodeValidation, "command context is nil")
	}
	cliCtx, ok := ctx.Value(cliContextKey{}).(*CLIContext)
	if !ok || cliCtx == nil {
		return nil, errors.New(errors.ErrCodeValidation, "CLIContext not found in command context")
	}
	return cliCtx, nil
}

// serviceFor returns the CLI context and its solver.
func serviceFor(cmd *cobra.Command) (*CLIContext, solver.Service, error) {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return nil, nil, err
	}
	svc, err := cliCtx.Service()
	if err != nil {
		return nil, nil, err
	}
	return cliCtx, svc, nil
}

// Execute is the main entry point for the CLI application.
func Execute() error {
	rootCmd, state := newRootCommand()
	defer state.close()

	if err := rootCmd.Execute(); err != nil {
		PrintError(rootCmd, err)
		return err
	}
	return nil
}

//Personal.AI order the ending
