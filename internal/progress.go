package internal

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	// HeadingStyle renders section headings in show output.
	HeadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("63")).
			Bold(true).
			Underline(true)

	// PaneStyle frames one pane of the studio layout.
	PaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	// MutedStyle renders secondary text.
	MutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// RunWithSpinner runs fn while a spinner shows message on stderr. Outside a
// terminal the message is logged and fn runs directly.
func RunWithSpinner(ctx context.Context, message string, fn func() error) error {
	if !isTerminal(os.Stderr) {
		LogInfo(message)
		return fn()
	}
	if gumAvailable() {
		return spinWithGum(ctx, message, fn)
	}
	return spin(ctx, message, fn)
}

func spinWithGum(ctx context.Context, message string, fn func() error) error {
	gumCtx, stop := context.WithCancel(ctx)
	defer stop()

	cmd := exec.CommandContext(gumCtx, "gum", "spin", "--spinner", "dot", "--title", message, "--", "sh", "-c", "while true; do sleep 0.1; done")
	cmd.Stderr = os.Stderr
	cmd.Stdout = os.Stderr
	if err := cmd.Start(); err != nil {
		return spin(ctx, message, fn)
	}

	err := fn()
	stop()
	_ = cmd.Wait()
	finishLine(message, err)
	return err
}

func spin(ctx context.Context, message string, fn func() error) error {
	frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	done := make(chan error, 1)
	go func() {
		done <- fn()
	}()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for i := 0; ; i++ {
		select {
		case err := <-done:
			finishLine(message, err)
			return err
		case <-ctx.Done():
			fmt.Fprint(os.Stderr, "\r")
			return ctx.Err()
		case <-ticker.C:
			fmt.Fprintf(os.Stderr, "\r%s %s", accentStyle.Render(frames[i%len(frames)]), message)
		}
	}
}

func finishLine(message string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "\r%s %s\n", errorStyle.Render("✗"), message)
		return
	}
	fmt.Fprintf(os.Stderr, "\r%s %s\n", successStyle.Render("✓"), message)
}

func gumAvailable() bool {
	_, err := exec.LookPath("gum")
	return err == nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// PrintSuccess writes a success line to w.
func PrintSuccess(w io.Writer, message string) {
	printStatus(w, successStyle.Render("✓"), message)
}

// PrintError writes an error line to w.
func PrintError(w io.Writer, message string) {
	printStatus(w, errorStyle.Render("✗"), message)
}

// PrintInfo writes an informational line to w.
func PrintInfo(w io.Writer, message string) {
	printStatus(w, accentStyle.Render("ℹ"), message)
}

// PrintWarning writes a warning line to w.
func PrintWarning(w io.Writer, message string) {
	if !isTerminal(w) {
		fmt.Fprintf(w, "WARNING: %s\n", message)
		return
	}
	fmt.Fprintf(w, "%s %s\n", warningStyle.Render("⚠"), message)
}

func printStatus(w io.Writer, icon, message string) {
	if !isTerminal(w) {
		fmt.Fprintln(w, message)
		return
	}
	fmt.Fprintf(w, "%s %s\n", icon, message)
}
