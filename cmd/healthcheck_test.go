package cmd

import (
	"strings"
	"testing"
)

func TestHealthcheckCommand(t *testing.T) {
	env := newCLIEnv(t)

	out := env.mustRun(t, "healthcheck", "-v")
	for _, want := range []string{"Configuration loaded", "State store opened", "Backend reachable (0 saved session(s))", "Health check passed!", "Items: 0"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestHealthcheckCommand_BackendDown(t *testing.T) {
	env := newCLIEnv(t)
	out, _, err := env.run(t, "--api", "http://127.0.0.1:1", "healthcheck")
	if err == nil {
		t.Fatal("expected failure with an unreachable backend")
	}
	if !strings.Contains(out, "Backend not reachable") {
		t.Errorf("output = %q", out)
	}
}

func TestHealthcheckCommandExists(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "healthcheck" {
			found = true
			if cmd.Flag("verbose") == nil || cmd.Flag("v") == nil {
				t.Error("healthcheck command should have --verbose/-v")
			}
			break
		}
	}
	if !found {
		t.Error("healthcheck command not found in root command")
	}
}
