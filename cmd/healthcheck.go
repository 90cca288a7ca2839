package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/notelooms/internal"
	"github.com/spf13/cobra"
)

var (
	healthcheckVerbose bool
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check that notelooms can reach its local state and the backend",
	Long: `Check the health of notelooms by verifying:
  • Configuration is valid
  • The data directory is writable
  • The local state store opens (SQLite file or redis)
  • The backend answers at the configured address

This command is useful for debugging connection or storage problems.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		fmt.Fprintln(out, sectionStyle.Render("🔍 notelooms Health Check"))
		fmt.Fprintln(out)

		// Step 1: Configuration
		fmt.Fprintln(out, infoStyle.Render("Step 1: Loading configuration..."))
		cfg, err := loadConfig()
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render("❌ Invalid configuration:"), err)
			return fmt.Errorf("health check failed: %w", err)
		}
		fmt.Fprintln(out, successStyle.Render("✅ Configuration loaded"))
		if healthcheckVerbose {
			fmt.Fprintf(out, "   Backend: %s\n", cfg.APIBase)
			fmt.Fprintf(out, "   Data dir: %s\n", cfg.DataDir)
			fmt.Fprintf(out, "   Store: %s\n", cfg.Store)
			fmt.Fprintf(out, "   Layout: %s\n", cfg.Layout)
		}
		fmt.Fprintln(out)

		// Step 2: Data directory
		fmt.Fprintln(out, infoStyle.Render("Step 2: Checking data directory..."))
		if err := checkWritable(cfg.DataDir); err != nil {
			fmt.Fprintln(out, errorStyle.Render("❌ Data directory is not writable:"), err)
			return fmt.Errorf("health check failed: %w", err)
		}
		fmt.Fprintln(out, successStyle.Render("✅ Data directory writable"))
		fmt.Fprintln(out)

		// Step 3: State store
		fmt.Fprintln(out, infoStyle.Render("Step 3: Opening local state store..."))
		app, err := internal.OpenApp(ctx, cfg)
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render("❌ Failed to open state store"))
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Error details:")
			fmt.Fprintln(out, err)
			return fmt.Errorf("health check failed: %w", err)
		}
		defer func() {
			if err := app.Close(ctx); err != nil {
				internal.LogWarn("Failed to save workspace: %v", err)
			}
		}()
		fmt.Fprintln(out, successStyle.Render("✅ State store opened"))
		if healthcheckVerbose {
			fmt.Fprintf(out, "   Type: %T\n", app.KV)
			printWorkspaceSummary(ctx, out, app)
		}
		fmt.Fprintln(out)

		// Step 4: Backend
		fmt.Fprintln(out, infoStyle.Render("Step 4: Contacting backend..."))
		sessions, err := app.Backend.ListSessions(ctx)
		backendOK := err == nil
		if backendOK {
			fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ Backend reachable (%d saved session(s))", len(sessions))))
		} else {
			fmt.Fprintln(out, errorStyle.Render("❌ Backend not reachable at "+cfg.APIBase))
			if healthcheckVerbose {
				fmt.Fprintf(out, "   %v\n", err)
			}
			fmt.Fprintln(out, "   Start the backend or point --api / NOTELOOMS_API_BASE at it.")
		}
		fmt.Fprintln(out)

		// Summary
		fmt.Fprintln(out, sectionStyle.Render("📊 Summary"))
		fmt.Fprintln(out)
		if !backendOK {
			fmt.Fprintln(out, warningStyle.Render("⚠️  Local state is fine but the backend is unavailable"))
			fmt.Fprintln(out, "   • Browsing items, quizzes and local export still work")
			fmt.Fprintln(out, "   • Upload, generate, chat, download and sessions need the backend")
			return fmt.Errorf("health check failed: backend unavailable")
		}
		fmt.Fprintln(out, successStyle.Render("✅ Health check passed!"))
		return nil
	},
}

func checkWritable(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".healthcheck-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(filepath.Clean(name))
}

func printWorkspaceSummary(ctx context.Context, w io.Writer, app *internal.App) {
	fmt.Fprintf(w, "   Items: %d\n", app.Store.Len())
	fmt.Fprintf(w, "   Pending uploads: %d\n", len(app.Coordinator.Pending()))
	fmt.Fprintf(w, "   Chat messages: %d\n", len(app.Transcript.Load(ctx)))
	if app.Sessions.CurrentID != "" {
		fmt.Fprintf(w, "   Current session: %s\n", app.Sessions.CurrentID)
	}
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
	healthcheckCmd.Flags().BoolVarP(&healthcheckVerbose, "verbose", "v", false, "Show detailed diagnostic information")
}
