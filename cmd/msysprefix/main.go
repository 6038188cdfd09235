package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dorcha-inc/msysprefix/internal/config"
	"github.com/dorcha-inc/msysprefix/internal/core"
	"github.com/dorcha-inc/msysprefix/internal/msys"
)

var (
	version = "dev"
	// build time date
	buildDate = "unknown"
)

// rootFlags holds the persistent flags shared by every command
type rootFlags struct {
	configPath string
	logLevel   string
	pretty     bool
	strict     bool
}

// app carries state from flag parsing into command handlers
type app struct {
	flags rootFlags
	cfg   *config.Config
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code
func run(args []string, stdout, stderr io.Writer) (exitCode int) {
	defer func() {
		if r := recover(); r != nil {
			core.LogPanicRecovery("msysprefix", r)
			core.MustFprintf(stderr, "Error: internal error: %v%s\n", r, core.BugReportMessage())
			exitCode = 1
		}
	}()

	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		core.MustFprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "msysprefix",
		Short: "Print the library prefix for the current MSYS2 environment",
		Long: `msysprefix reads the MSYSTEM environment variable exported by MSYS2 shells and
prints the library prefix used to pick prebuilt library variants:

  mingw64                      x64-msvcrt
  mingw32                      msvcrt
  ucrt64, clang64, clangarm64  x64-ucrt
  clang32                      ucrt

MSYSTEM is matched case-insensitively. Unknown values print nothing and exit
successfully (use --strict to make them an error). An unset MSYSTEM is an error.`,
		Version:           fmt.Sprintf("%s (built: %s)", version, buildDate),
		Args:              cobra.NoArgs,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE:              a.runResolve,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.flags.configPath, "config", "", "Path to msysprefix.yaml config file")
	flags.StringVar(&a.flags.logLevel, "log-level", "", "Log level: debug, info, warn, error, fatal (logs go to stderr)")
	flags.BoolVar(&a.flags.pretty, "pretty", false, "Use pretty-printed logs instead of JSON")
	flags.BoolVar(&a.flags.strict, "strict", false, "Fail when MSYSTEM is set to an unknown environment")

	rootCmd.AddCommand(newListCmd())

	return rootCmd
}

// setup loads configuration and initializes logging before any command runs
func (a *app) setup(cmd *cobra.Command, args []string) error {
	overrides := config.Overrides{}
	if cmd.Flags().Changed("log-level") {
		overrides.LogLevel = &a.flags.logLevel
	}
	if cmd.Flags().Changed("pretty") {
		overrides.Pretty = &a.flags.pretty
	}
	if cmd.Flags().Changed("strict") {
		overrides.Strict = &a.flags.strict
	}

	cfg, err := config.LoadConfig(a.flags.configPath, overrides)
	if err != nil {
		return err
	}

	if err := core.Init(cfg.Pretty(), string(cfg.LogLevel)); err != nil {
		return err
	}

	zap.L().Debug("Configuration loaded",
		zap.String("config", a.flags.configPath),
		zap.String("variable", cfg.Variable),
		zap.Bool("strict", cfg.Strict))

	a.cfg = cfg
	return nil
}

// runResolve prints the prefix for the current environment, or nothing
func (a *app) runResolve(cmd *cobra.Command, args []string) error {
	resolver := msys.NewResolver(
		msys.WithVariable(a.cfg.Variable),
		msys.WithStrict(a.cfg.Strict),
	)
	zap.L().Debug("Reading MSYS2 environment", zap.String("variable", resolver.Variable()))

	result, err := resolver.Resolve(cmd.Context())
	if err != nil {
		return err
	}

	return msys.WritePrefix(cmd.OutOrStdout(), result)
}
