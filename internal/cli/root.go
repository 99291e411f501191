package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/nurgulresearch/irec/internal/cache"
	"github.com/nurgulresearch/irec/internal/logging"
	"github.com/nurgulresearch/irec/internal/model"
	"github.com/nurgulresearch/irec/internal/pipeline"
)

// Version is set at build time
var Version = "v0.3.0"

var (
	cfgFile   string
	verbose   bool
	noColor   bool
	logFormat string

	// Set by the root command before any subcommand runs
	cfg    *model.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "irec",
	Short: "IREC application pre-screening validator",
	Long: `irec checks a research ethics (IREC) application document before it
reaches the committee.

It reads the questionnaire text, validates every part against the office's
completeness and consistency rules, derives the supplementary forms the
application must carry, and reconciles them with the application checklist
and the submitted file names.

Findings are keyword-based. A reviewer makes the final decision.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "irec %s\n", Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.irec/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output and debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored console output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: console or json (default from config)")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("output.log_format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(versionCmd)
}

// setup loads the configuration and builds the logger
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = loadConfig()
	if err != nil {
		return err
	}

	logger, err = logging.New(cfg.Output.Verbose, cfg.Output.LogFormat)
	if err != nil {
		return err
	}
	if used := viper.ConfigFileUsed(); used != "" {
		logger.Debug("using config file", zap.String("path", used))
	}
	return nil
}

// loadConfig layers the config file over the defaults. Flags bound to viper
// take precedence over the file.
func loadConfig() (*model.Config, error) {
	v := viper.GetViper()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".irec"))
		}
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	c := model.DefaultConfig()
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if c.Output.LogFormat == "" {
		c.Output.LogFormat = logging.FormatConsole
	}
	return c, nil
}

// colorEnabled reports whether console output should be colored
func colorEnabled(c *model.Config) bool {
	if noColor || !c.Output.Color {
		return false
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// newPipeline builds a pipeline from the loaded configuration
func newPipeline(withCache bool) *pipeline.Pipeline {
	c := *cfg
	c.Output.Color = colorEnabled(cfg)

	opts := []pipeline.Option{pipeline.WithLogger(logger)}
	if withCache && c.Cache.Enabled {
		opts = append(opts, pipeline.WithCache(cache.NewMemoryCache(c.Cache.TTL, c.Cache.CleanupInterval)))
	}
	return pipeline.NewPipeline(&c, opts...)
}
