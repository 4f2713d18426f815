package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"

	"github.com/Garsondee/city-walk/internal/world"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunOne_DeterministicPerSeed(t *testing.T) {
	a, err := runOne(context.Background(), world.DefaultSessionConfig, 1, 42, 600, 30, quietLogger())
	if err != nil {
		t.Fatalf("run a: %v", err)
	}
	b, err := runOne(context.Background(), world.DefaultSessionConfig, 1, 42, 600, 30, quietLogger())
	if err != nil {
		t.Fatalf("run b: %v", err)
	}
	if a.stats != b.stats {
		t.Fatalf("same seed produced different stats:\n%+v\n%+v", a.stats, b.stats)
	}
	if a.stats.roads != 51 {
		t.Fatalf("expected 51 roads on the canonical grid, got %d", a.stats.roads)
	}
	if a.stats.shots != 20 {
		t.Fatalf("expected 20 shots in 600 ticks at fire-every=30, got %d", a.stats.shots)
	}
	if a.stats.hits+a.stats.misses != a.stats.shots || a.stats.score != a.stats.hits {
		t.Fatalf("inconsistent shot totals: %+v", a.stats)
	}
	if a.stats.ignored != 0 {
		t.Fatalf("locked autopilot should never have shots ignored, got %d", a.stats.ignored)
	}
	if a.stats.modeChanges != 3 {
		t.Fatalf("expected 3 camera mode changes in 600 ticks, got %d", a.stats.modeChanges)
	}
}

func TestRunOne_FireDisabled(t *testing.T) {
	r, err := runOne(context.Background(), world.DefaultSessionConfig, 1, 7, 120, 0, quietLogger())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if r.stats.shots != 0 || r.stats.score != 0 {
		t.Fatalf("expected no shots with fire-every=0, got %+v", r.stats)
	}
	if r.snapshot.Seed != 7 {
		t.Fatalf("snapshot should carry the seed, got %d", r.snapshot.Seed)
	}
}

func TestRunAll_KeepsRunOrder(t *testing.T) {
	results, err := runAll(context.Background(), world.DefaultSessionConfig, 6, 60, 100, 3, 0, 3, quietLogger())
	if err != nil {
		t.Fatalf("runAll: %v", err)
	}
	if len(results) != 6 {
		t.Fatalf("expected 6 results, got %d", len(results))
	}
	for i, r := range results {
		wantSeed := int64(100 + 3*i)
		if r.stats.runIndex != i+1 || r.stats.seed != wantSeed {
			t.Fatalf("result %d: got run=%d seed=%d, want run=%d seed=%d",
				i, r.stats.runIndex, r.stats.seed, i+1, wantSeed)
		}
	}
}

func TestRunAll_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := runAll(ctx, world.DefaultSessionConfig, 2, 1200, 1, 1, 0, 2, quietLogger())
	if err == nil {
		t.Fatal("expected an error from a cancelled context")
	}
	if !strings.Contains(err.Error(), "context canceled") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAutopilot_Cadence(t *testing.T) {
	p := autopilot{fireEvery: 10}
	var in world.InputState

	p.drive(10, &in)
	if !in.ShootRequested || !in.Forward || in.Right {
		t.Fatalf("tick 10: unexpected input %+v", in)
	}
	in.Consume()
	p.drive(11, &in)
	if in.ShootRequested {
		t.Fatal("tick 11 should not fire")
	}
	p.drive(300, &in)
	if in.WheelDelta != -20 {
		t.Fatalf("tick 300 should zoom in, wheel=%g", in.WheelDelta)
	}
	p.drive(420, &in)
	if !in.Right || in.Forward {
		t.Fatalf("tick 420: expected strafing only, got %+v", in)
	}
}

func TestPrintAggregate(t *testing.T) {
	var buf bytes.Buffer
	printAggregate(&buf, []runStats{
		{seed: 1, shots: 10, hits: 4, score: 4, firstHitTick: 30},
		{seed: 2, shots: 10, hits: 0, firstHitTick: -1},
	})
	out := buf.String()
	for _, want := range []string{"runs=2", "hit_rate=20.0%", "first_hit_avg_tick=30.0", "no_hit_seeds=2"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestWriteDump(t *testing.T) {
	r, err := runOne(context.Background(), world.DefaultSessionConfig, 1, 42, 1, 0, quietLogger())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	path := filepath.Join(t.TempDir(), "layout.yaml")
	if err := writeDump(path, []runResult{r}); err != nil {
		t.Fatalf("writeDump: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read dump: %v", err)
	}
	var got []world.CitySnapshot
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode dump: %v", err)
	}
	if len(got) != 1 || got[0].Seed != 42 || len(got[0].Roads) != 51 {
		t.Fatalf("unexpected dump contents: %d snapshots", len(got))
	}
	if len(got[0].Buildings) != len(r.snapshot.Buildings) {
		t.Fatalf("dump has %d buildings, run had %d", len(got[0].Buildings), len(r.snapshot.Buildings))
	}
}

func TestRun_ExitCodes(t *testing.T) {
	var buf bytes.Buffer
	if code := run([]string{"-runs", "0"}, &buf); code != 2 {
		t.Fatalf("-runs 0: exit %d, want 2", code)
	}
	missing := filepath.Join(t.TempDir(), "missing.yaml")
	if code := run([]string{"-config", missing}, &buf); code != 1 {
		t.Fatalf("missing config: exit %d, want 1", code)
	}

	buf.Reset()
	dump := filepath.Join(t.TempDir(), "dump.yaml")
	code := run([]string{"-runs", "2", "-ticks", "60", "-parallel", "2", "-dump", dump}, &buf)
	if code != 0 {
		t.Fatalf("exit %d, output:\n%s", code, buf.String())
	}
	for _, want := range []string{"--- Run 1 (seed=42) ---", "--- Run 2 (seed=43) ---", "runs=2"} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("missing %q in:\n%s", want, buf.String())
		}
	}
	if _, err := os.Stat(dump); err != nil {
		t.Fatalf("dump not written: %v", err)
	}
}
