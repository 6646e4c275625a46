package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"onething/internal/config"
	"onething/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose    bool
	configPath string
	langFlag   string
	themeFlag  string
	samples    bool

	// Effective configuration after file, env and flags.
	cfg *config.Config

	// Logger
	logger = zap.NewNop()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "onething",
	Short: "ONE Thing - focus on the task that makes everything else easier",
	Long: `onething is a terminal board for deciding what matters today.

Tasks live in three buckets:
  - Time Sensitive: at most 3 tasks that must be done today
  - Important: at most 5 high-impact tasks
  - When Available: everything else

Pick up a task with m and drop it on another bucket, or star one task as
your ONE Thing for the day.

Run without arguments to open the board.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logging.Sync()
	},
	RunE: runBoard,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", cfg.Name, cfg.Version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging to the log file")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().StringVar(&langFlag, "lang", "", "Interface language (en, fr)")
	rootCmd.PersistentFlags().StringVar(&themeFlag, "theme", "", "Color theme (auto, light, dark)")
	rootCmd.PersistentFlags().BoolVar(&samples, "samples", false, "Start with the sample tasks")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)

	rootCmd.AddCommand(bucketsCmd)
	rootCmd.AddCommand(samplesCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup resolves the effective config and initializes logging.
func setup(cmd *cobra.Command) error {
	if configPath == "" {
		configPath = config.DefaultPath()
	}

	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	applyFlags(cmd, loaded)
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("%s: %w", configPath, err)
	}
	cfg = loaded

	if err := logging.Initialize(cfg.Logging, filepath.Dir(configPath)); err != nil {
		return err
	}
	logger = logging.Get(logging.CategoryBoot)
	logger.Debug("config loaded",
		zap.String("path", configPath),
		zap.String("theme", cfg.UI.Theme),
		zap.String("lang", cfg.UI.Language),
		zap.Bool("samples", cfg.Board.SeedSamples))
	return nil
}

// applyFlags lets explicit flags win over the file and the environment.
func applyFlags(cmd *cobra.Command, c *config.Config) {
	if langFlag != "" {
		c.UI.Language = langFlag
	}
	if themeFlag != "" {
		c.UI.Theme = themeFlag
	}
	if cmd.Flags().Changed("samples") {
		c.Board.SeedSamples = samples
	}
	if verbose {
		c.Logging.DebugMode = true
		c.Logging.Level = "debug"
	}
}
