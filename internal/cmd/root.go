package cmd

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/phuslu/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/xa0c/tally/internal/aggregator"
	"github.com/xa0c/tally/internal/loader"
	"github.com/xa0c/tally/internal/model"
	"github.com/xa0c/tally/internal/output"
)

var (
	cfgFile string
	verbose bool

	logger = &log.DefaultLogger
)

// rootCmd is the base command: analyze a file once and print the summary.
var rootCmd = &cobra.Command{
	Use:   "tally <file_path> [level]",
	Short: "Log record statistics by level",
	Long: `Tally parses a log file and prints record count statistics by level.
If the optional level argument is provided, the log records matching that
level are printed after the summary table.

Examples:
  tally app.log
  tally app.log error
  tally app.log ERROR --output json`,
	Args: checkArgs,
	RunE: runRoot,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: $HOME/.tally.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", "text", "output format: text, json")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output: auto, always, never")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("color", rootCmd.PersistentFlags().Lookup("color"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		setupLogger()
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".tally")
		viper.SetConfigType("yaml")
	}

	viper.SetDefault("log_level", "info")

	viper.SetEnvPrefix("TALLY")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

// setupLogger points diagnostics at stderr so they never mix with results.
func setupLogger() {
	level := parseLogLevel(viper.GetString("log_level"))
	if viper.GetBool("verbose") {
		level = log.DebugLevel
	}
	logger = &log.Logger{
		Level: level,
		Writer: &log.ConsoleWriter{
			ColorOutput: isatty.IsTerminal(os.Stderr.Fd()),
			Writer:      os.Stderr,
		},
	}
}

// parseLogLevel converts a config string to a diagnostic log level.
func parseLogLevel(s string) log.Level {
	switch strings.ToLower(s) {
	case "trace":
		return log.TraceLevel
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// checkArgs validates positional arguments before any file access happens,
// so a bad invocation still gets the usage text.
func checkArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.RangeArgs(1, 2)(cmd, args); err != nil {
		return err
	}
	if len(args) == 2 {
		if _, err := model.ParseLevel(args[1]); err != nil {
			return err
		}
	}
	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	// Arguments are valid from here on; runtime failures shouldn't dump usage.
	cmd.SilenceUsage = true

	path := args[0]
	var level model.Level
	if len(args) == 2 {
		level, _ = model.ParseLevel(args[1])
	}

	return analyze(cmd, path, level)
}

// analyze runs the load → count → render pipeline once.
func analyze(cmd *cobra.Command, path string, level model.Level) error {
	records, err := loader.New(logger).Load(path)
	if err != nil {
		return err
	}
	logger.Debug().Str("path", path).Int("records", len(records)).Msg("file loaded")

	counts := aggregator.Count(records)

	renderer := newRenderer(cmd)
	if err := renderer.Summary(counts); err != nil {
		return err
	}
	if level != "" {
		return renderer.Details(level, model.FilterByLevel(records, level))
	}
	return nil
}

func newRenderer(cmd *cobra.Command) output.Renderer {
	if strings.ToLower(viper.GetString("output")) == "json" {
		return output.NewJSONRenderer(cmd.OutOrStdout())
	}
	return output.NewTextRenderer(cmd.OutOrStdout(), useColor(cmd))
}

// useColor resolves the color mode against the actual result stream.
func useColor(cmd *cobra.Command) bool {
	switch strings.ToLower(viper.GetString("color")) {
	case "always":
		return true
	case "never":
		return false
	default: // auto
		f, ok := cmd.OutOrStdout().(*os.File)
		return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
	}
}
