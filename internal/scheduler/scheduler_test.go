package scheduler

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/shaiso/Simplify/internal/catalog"
	"github.com/shaiso/Simplify/internal/telemetry"
)

func TestNextRun(t *testing.T) {
	from := time.Date(2026, 3, 10, 12, 7, 0, 0, time.UTC)

	tests := []struct {
		expr string
		want time.Time
	}{
		{"*/15 * * * *", time.Date(2026, 3, 10, 12, 15, 0, 0, time.UTC)},
		{"0 3 * * *", time.Date(2026, 3, 11, 3, 0, 0, 0, time.UTC)},
		{"@hourly", time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC)},
		{"@every 10m", from.Add(10 * time.Minute)},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := NextRun(tt.expr, from)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("NextRun(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestParseSchedule_Invalid(t *testing.T) {
	for _, expr := range []string{"", "not a cron", "61 * * * *"} {
		if _, err := ParseSchedule(expr); err == nil {
			t.Errorf("ParseSchedule(%q): expected error", expr)
		}
	}
}

func writeDoc(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newTestAuditor(t *testing.T, withMissingStep bool) *Auditor {
	t.Helper()

	root := t.TempDir()
	flows := filepath.Join(root, "flows")
	steps := filepath.Join(root, "steps")

	writeDoc(t, flows, "f1.yaml", `flow_id: f1
persona_id: non_eu_employee
country: SK
version: "1"
steps:
  - step_id: s1
    order: 1
  - step_id: s2
    order: 2
`)
	writeDoc(t, steps, "s1.yaml", "step_id: s1\ntitle: One\n")
	if !withMissingStep {
		writeDoc(t, steps, "s2.yaml", "step_id: s2\ntitle: Two\n")
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	a, err := NewAuditor(Config{
		Flows:  catalog.NewFlowRepo(flows, logger),
		Steps:  catalog.NewStepResolver(steps, logger),
		Cron:   "@every 1h",
		Logger: logger,
	})
	if err != nil {
		t.Fatalf("NewAuditor: %v", err)
	}
	return a
}

func TestAuditor_Tick(t *testing.T) {
	t.Run("clean catalog", func(t *testing.T) {
		a := newTestAuditor(t, false)

		report, err := a.Tick(context.Background())
		if err != nil {
			t.Fatalf("Tick: %v", err)
		}
		if !report.OK() || report.Flows != 1 || report.Steps != 2 {
			t.Errorf("report = %+v", report)
		}
		if got := testutil.ToFloat64(telemetry.CatalogBrokenRefs); got != 0 {
			t.Errorf("broken refs gauge = %v, want 0", got)
		}
	})

	t.Run("missing step", func(t *testing.T) {
		a := newTestAuditor(t, true)

		report, err := a.Tick(context.Background())
		if err != nil {
			t.Fatalf("Tick: %v", err)
		}
		if report.OK() {
			t.Fatal("expected broken references")
		}
		if len(report.Broken) != 1 || report.Broken[0].StepID != "s2" {
			t.Errorf("broken = %v", report.Broken)
		}
		if got := testutil.ToFloat64(telemetry.CatalogBrokenRefs); got != 1 {
			t.Errorf("broken refs gauge = %v, want 1", got)
		}
	})
}

func TestAuditor_RunStopsOnCancel(t *testing.T) {
	a := newTestAuditor(t, false)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		a.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestNewAuditor_InvalidCron(t *testing.T) {
	if _, err := NewAuditor(Config{Cron: "every day"}); err == nil {
		t.Error("expected error")
	}
}
