package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/iksnae/notelooms/internal"
	"github.com/iksnae/notelooms/internal/export"
	"github.com/spf13/cobra"
)

var (
	format    string
	outputDir string
	exportAll bool
)

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// exportCmd writes content locally without contacting the backend.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export content to a local file",
	Long: `Export the selected item, or with --all every item plus the chat transcript,
to jsonl, md, yaml or json. Unlike 'download' this runs entirely offline.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		exporter, err := export.NewExporter(format)
		if err != nil {
			return err
		}

		return withApp(cmd, func(ctx context.Context, app *internal.App) error {
			var bundle *export.Bundle
			if exportAll {
				name := "workspace"
				if app.Sessions.CurrentID != "" {
					name = app.Sessions.CurrentID
				}
				bundle, err = export.StoreBundle(name, app.Store, app.Transcript.Load(ctx))
			} else {
				bundle, err = export.CurrentBundle(app.Store)
			}
			if err != nil {
				return userError(err, internal.MsgExportFailed)
			}

			path, err := writeBundle(exporter, bundle, outputDir)
			if err != nil {
				internal.LogDebug("export failed: %v", err)
				return userError(err, internal.MsgExportFailed)
			}
			internal.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Export complete: %d item(s) written to %s", len(bundle.Items), path))
			return nil
		})
	},
}

func writeBundle(exporter export.Exporter, bundle *export.Bundle, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", &internal.ExportError{Format: exporter.Extension(), Path: dir, Err: err}
	}

	path := filepath.Join(dir, exportFilename(bundle.Name)+"."+exporter.Extension())
	file, err := os.Create(path)
	if err != nil {
		return "", &internal.ExportError{Format: exporter.Extension(), Path: path, Err: err}
	}
	if err := exporter.Export(bundle, file); err != nil {
		_ = file.Close()
		return "", &internal.ExportError{Format: exporter.Extension(), Path: path, Err: err}
	}
	if err := file.Close(); err != nil {
		return "", &internal.ExportError{Format: exporter.Extension(), Path: path, Err: err}
	}
	return path, nil
}

func exportFilename(name string) string {
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.Trim(unsafeNameChars.ReplaceAllString(name, "_"), "_")
	if name == "" {
		return "notelooms_export"
	}
	return name
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&format, "format", "f", "md", "Export format (jsonl, md, yaml, json)")
	exportCmd.Flags().StringVarP(&outputDir, "out", "o", "./exports", "Output directory")
	exportCmd.Flags().BoolVar(&exportAll, "all", false, "Export every item and the chat transcript")
}
