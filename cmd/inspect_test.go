package cmd

import (
	"strings"
	"testing"
)

func TestInspectCommand(t *testing.T) {
	env := newCLIEnv(t)
	env.uploadPDF(t, "cells.pdf")
	env.mustRun(t, "chat", "hello")

	out := env.mustRun(t, "inspect")
	for _, want := range []string{"workspace", "studyAssistantChat"} {
		if !strings.Contains(out, want) {
			t.Errorf("inspect output missing %q:\n%s", want, out)
		}
	}

	out = env.mustRun(t, "inspect", "studyAssistantChat")
	if !strings.Contains(out, `"sender": "user"`) {
		t.Errorf("pretty value = %q", out)
	}

	out = env.mustRun(t, "inspect", "studyAssistantChat", "--format", "raw")
	if !strings.Contains(out, `"sender":"user"`) {
		t.Errorf("raw value = %q", out)
	}

	if _, _, err := env.run(t, "inspect", "missing"); err == nil {
		t.Error("expected error for a missing key")
	}
	if _, _, err := env.run(t, "inspect", "--format", "xml"); err == nil {
		t.Error("expected error for an unsupported format")
	}
}
