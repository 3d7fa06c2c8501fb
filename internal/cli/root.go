// Package cli provides the reposcout command line.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"reposcout/internal/config"
	"reposcout/internal/github"
	"reposcout/internal/logging"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// configKey stores the loaded config in the command context.
type configKey struct{}

// closerKey stores the log file closer in the command context.
type closerKey struct{}

type globalFlags struct {
	configPath string
	logLevel   string
	logFile    string
	apiURL     string
	token      string
	noHistory  bool
}

// NewRootCmd creates the root command. Without a subcommand it runs the
// interactive search page.
func NewRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "reposcout",
		Short: "Search GitHub repositories from the terminal",
		Long: `reposcout is an interactive GitHub repository search.

Type a keyword to get suggestions, press enter to search, and sort the
results by stars or forks while paging through them.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			return setup(cmd, flags)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if closeLog, ok := cmd.Context().Value(closerKey{}).(func() error); ok {
				return closeLog()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, GetConfig(cmd.Context()))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default: "+config.DefaultPath()+")")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level (debug|info|warn|error)")
	pf.StringVar(&flags.logFile, "log-file", "", "log file path")
	pf.StringVar(&flags.apiURL, "api-url", "", "GitHub API base URL")
	pf.StringVar(&flags.token, "token", "", "GitHub API token")
	pf.BoolVar(&flags.noHistory, "no-history", false, "do not record searches")

	_ = rootCmd.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newSearchCommand())
	rootCmd.AddCommand(newHistoryCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// setup loads config with the precedence defaults < file < env < flags
// and installs the logger
func setup(cmd *cobra.Command, flags *globalFlags) error {
	cfg, err := config.NewConfigService(flags.configPath).Load()
	if err != nil {
		return err
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return err
	}

	flags.apply(cfg, cmd.Flags())

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	closeLog, err := logging.Setup(logging.Config{
		Level:      cfg.Log.Level,
		FilePath:   cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	slog.Debug("config loaded", "command", cmd.Name(), "api", cfg.API.URL, "history", cfg.History.Enabled)

	ctx := context.WithValue(cmd.Context(), configKey{}, cfg)
	ctx = context.WithValue(ctx, closerKey{}, closeLog)
	cmd.SetContext(ctx)
	return nil
}

// apply overrides cfg with the flags set on the command line
func (f *globalFlags) apply(cfg *config.Config, fs *pflag.FlagSet) {
	if fs.Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if fs.Changed("log-file") {
		cfg.Log.File = f.logFile
	}
	if fs.Changed("api-url") {
		cfg.API.URL = f.apiURL
	}
	if fs.Changed("token") {
		cfg.API.Token = f.token
	}
	if f.noHistory {
		cfg.History.Enabled = false
	}
}

// GetConfig retrieves the config from the command context.
func GetConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	return config.DefaultConfig()
}

func newClient(cfg *config.Config) (*github.Client, error) {
	return github.NewClient(github.Options{
		BaseURL:           cfg.API.URL,
		Token:             cfg.API.Token,
		Timeout:           cfg.Timeout(),
		RequestsPerMinute: cfg.API.RequestsPerMinute,
		Burst:             cfg.API.Burst,
		CacheSize:         cfg.API.CacheSize,
		CacheTTL:          cfg.CacheTTL(),
		SuggestLimit:      cfg.Suggest.Limit,
		UserAgent:         "reposcout/" + Version,
	})
}
