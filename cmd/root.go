package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/iksnae/notelooms/internal"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	apiBase    string
	dataDir    string
	storeSpec  string
	layout     string
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "notelooms",
	Short: "Study assistant client: upload material, review notes, quiz yourself",
	Long: `A command-line client for the notelooms study-assistant backend.

Upload documents, images or a YouTube link and the backend extracts the text
and generates a summary, short notes, flashcards and a multiple-choice quiz.
Your workspace (uploaded items, pending files, chat transcript) is kept on
this device between runs and can be saved to the backend as a named session.

Quick Start:
  notelooms add lecture.pdf diagram.png     # Select files to upload
  notelooms upload                          # Send them to the backend
  notelooms show                            # Read the generated material
  notelooms quiz                            # Test yourself
  notelooms session save "Biology week 3"   # Keep it for later`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves configuration from file, environment and flags.
func loadConfig() (*internal.Config, error) {
	cfg, err := internal.LoadConfig(configPath, internal.ConfigOverrides{
		APIBase: apiBase,
		DataDir: dataDir,
		Store:   storeSpec,
		Layout:  layout,
	})
	if err != nil {
		return nil, err
	}
	internal.SetLogFormat(cfg.LogFormat)
	if cfg.Development() && !verbose {
		internal.SetLogLevel(internal.LogLevelDebug)
	}
	return cfg, nil
}

// withApp opens the workspace, runs fn and saves the workspace afterwards, even
// when fn fails.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, app *internal.App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	app, err := internal.OpenApp(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open workspace: %w", err)
	}
	defer func() {
		if err := app.Close(ctx); err != nil {
			internal.LogWarn("Failed to save workspace: %v", err)
		}
	}()

	return fn(ctx, app)
}

// userError replaces err with the message shown to the user. The full error goes
// to the debug log.
func userError(err error, fallback string) error {
	internal.LogDebug("%v", err)
	return errors.New(internal.UserMessage(err, fallback))
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default config.yaml in the data directory)")
	rootCmd.PersistentFlags().StringVar(&apiBase, "api", "", "Backend base URL (default http://127.0.0.1:5000)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory for local state and previews (default ~/.notelooms)")
	rootCmd.PersistentFlags().StringVar(&storeSpec, "store", "", "Local state store: a SQLite file path or a redis:// URL")
	rootCmd.PersistentFlags().StringVar(&layout, "layout", "", "Presentation layout for show (classic, studio)")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
