package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExportCommand(t *testing.T) {
	env := newCLIEnv(t)
	if _, _, err := env.run(t, "export", "--out", t.TempDir()); err == nil {
		t.Error("expected error with an empty workspace")
	}
	env.uploadPDF(t, "cells.pdf")
	env.mustRun(t, "chat", "hello")

	tests := []struct {
		name string
		args []string
		file string
		want []string
	}{
		{
			name: "markdown current item",
			args: []string{"export"},
			file: "cells.md",
			want: []string{"# cells.pdf", "Summary of cells.pdf"},
		},
		{
			name: "json current item",
			args: []string{"export", "--format", "json"},
			file: "cells.json",
			want: []string{`"summary": "Summary of cells.pdf"`},
		},
		{
			name: "yaml workspace",
			args: []string{"export", "--format", "yaml", "--all"},
			file: "workspace.yaml",
			want: []string{"name: workspace", "You said: hello"},
		},
		{
			name: "jsonl workspace",
			args: []string{"export", "-f", "jsonl", "--all"},
			file: "workspace.jsonl",
			want: []string{`"artifact":"summary"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			out := env.mustRun(t, append(tt.args, "--out", dir)...)
			if !strings.Contains(out, "Export complete") {
				t.Errorf("output = %q", out)
			}
			data, err := os.ReadFile(filepath.Join(dir, tt.file))
			if err != nil {
				t.Fatalf("export file: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(string(data), w) {
					t.Errorf("%s missing %q:\n%s", tt.file, w, data)
				}
			}
		})
	}

	if _, _, err := env.run(t, "export", "--format", "csv"); err == nil {
		t.Error("expected error for an unsupported format")
	}
}

func TestDownloadAndSlides(t *testing.T) {
	env := newCLIEnv(t)
	env.uploadPDF(t, "cells.pdf")
	dir := t.TempDir()

	out := env.mustRun(t, "download", "notes", "--format", "txt", "--out", dir)
	path := filepath.Join(dir, "short_notes.txt")
	if !strings.Contains(out, path) {
		t.Errorf("download output = %q", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "short_notes rendered as txt" {
		t.Errorf("download body = %q", data)
	}

	if _, _, err := env.run(t, "download", "transcript", "--format", "pdf", "--out", dir); err == nil {
		t.Error("expected error for a pdf transcript")
	}

	env.fb.Fail("/download", 500, "")
	_, _, err = env.run(t, "download", "summary", "--out", dir)
	if err == nil || err.Error() != "Export failed—try again." {
		t.Errorf("download error = %v", err)
	}

	out = env.mustRun(t, "slides", "--out", dir)
	if !strings.Contains(out, "notelooms_ppt.zip") {
		t.Errorf("slides output = %q", out)
	}
}

func TestResetCommand(t *testing.T) {
	env := newCLIEnv(t)
	env.uploadPDF(t, "cells.pdf")
	env.mustRun(t, "add", filepath.Join(env.files, "cells.pdf"))
	env.mustRun(t, "chat", "hello")

	out := env.mustRun(t, "reset")
	if !strings.Contains(out, "Workspace reset") {
		t.Errorf("reset = %q", out)
	}
	if out := env.mustRun(t, "items"); !strings.Contains(out, "No items yet") {
		t.Errorf("items after reset = %q", out)
	}
	if out := env.mustRun(t, "pending"); !strings.Contains(out, "No pending uploads") {
		t.Errorf("pending after reset = %q", out)
	}
	if out := env.mustRun(t, "chat"); strings.Contains(out, "hello") {
		t.Errorf("chat after reset = %q", out)
	}
}

func TestExportFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"cells.pdf", "cells"},
		{"Biology week 3", "Biology_week_3"},
		{"https://youtu.be/abc", "https_youtu.be_abc"},
		{"", "notelooms_export"},
	}
	for _, tt := range tests {
		if got := exportFilename(tt.in); got != tt.want {
			t.Errorf("exportFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
