package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/iksnae/notelooms/internal"
	"github.com/spf13/cobra"
)

var (
	inspectFormat string
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect [key]",
	Short: "Inspect the local state store",
	Long: `Inspect what notelooms keeps on this device.

Without a key every stored key is listed with the size of its value. With a
key the stored value is printed, pretty-printed when it is JSON.

Examples:
  notelooms inspect                          # List keys
  notelooms inspect studyAssistantChat       # Show the chat transcript
  notelooms inspect workspace --format raw   # Show the workspace snapshot as stored`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if inspectFormat != "json" && inspectFormat != "raw" {
			return &internal.ValidationError{Message: fmt.Sprintf("unsupported format: %s (supported: json, raw)", inspectFormat)}
		}
		return withApp(cmd, func(ctx context.Context, app *internal.App) error {
			if len(args) == 1 {
				return inspectKey(ctx, cmd, app.KV, args[0])
			}
			return inspectKeys(ctx, cmd, app)
		})
	},
}

func inspectKeys(ctx context.Context, cmd *cobra.Command, app *internal.App) error {
	out := cmd.OutOrStdout()
	keys, err := app.KV.Keys(ctx, "")
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}

	fmt.Fprintf(out, "📋 Store: %s\n", app.Config.Store)
	if len(keys) == 0 {
		fmt.Fprintln(out, "⚠️  No keys stored yet")
		return nil
	}
	fmt.Fprintf(out, "📊 Found %d key(s)\n\n", len(keys))

	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(tw, titleStyle.Render("Key")+"\t"+titleStyle.Render("Size"))
	for _, key := range keys {
		value, _, err := app.KV.Get(ctx, key)
		if err != nil {
			internal.LogWarn("Failed to read %s: %v", key, err)
			continue
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", key, formatSize(int64(len(value))))
	}
	return tw.Flush()
}

func inspectKey(ctx context.Context, cmd *cobra.Command, kv internal.KVStore, key string) error {
	value, ok, err := kv.Get(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return &internal.ValidationError{Message: fmt.Sprintf("key not found: %s (use 'notelooms inspect' to see stored keys)", key)}
	}

	if inspectFormat == "json" {
		var pretty bytes.Buffer
		if err := json.Indent(&pretty, []byte(value), "", "  "); err == nil {
			value = pretty.String()
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVarP(&inspectFormat, "format", "f", "json", "Value format (json, raw)")
}
