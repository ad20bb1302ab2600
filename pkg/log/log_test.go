package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PraneethV-cmd/neuroflow-ide/pkg/errors"
)

func TestModelScopedLogger(t *testing.T) {
	var buf bytes.Buffer
	prev := Default()
	SetDefault(New(&buf, "debug"))
	defer SetDefault(prev)

	Model("KMeans").Debug().Int(SamplesKey, 10).Msg("fit complete")

	out := buf.String()
	if !strings.Contains(out, `"model":"KMeans"`) {
		t.Errorf("missing model field in %q", out)
	}
	if !strings.Contains(out, `"samples":10`) {
		t.Errorf("missing samples field in %q", out)
	}
}

func TestNewUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "nope")
	l.Debug().Msg("hidden")
	l.Info().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug event should be filtered at info level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("info event missing: %q", out)
	}
}

func TestInstallWarningSink(t *testing.T) {
	var buf bytes.Buffer
	prev := Default()
	SetDefault(New(&buf, "warn"))
	defer func() {
		SetDefault(prev)
		errors.SetWarningHandler(nil)
	}()

	InstallWarningSink()
	errors.Warn(errors.NewConvergenceWarning("LinearRegression", 100, "did not converge"))

	out := buf.String()
	if !strings.Contains(out, "warn") {
		t.Errorf("expected warn-level event, got %q", out)
	}
	if !strings.Contains(out, "LinearRegression") {
		t.Errorf("warning payload missing model name: %q", out)
	}
}
