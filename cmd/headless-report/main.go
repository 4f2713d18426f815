package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"golang.org/x/sync/errgroup"

	"github.com/Garsondee/city-walk/internal/config"
	"github.com/Garsondee/city-walk/internal/logging"
	"github.com/Garsondee/city-walk/internal/render"
	"github.com/Garsondee/city-walk/internal/world"
)

const tickDt = 1.0 / world.ReferenceHz

type runStats struct {
	runIndex int
	seed     int64

	buildings   int
	roads       int
	cars        int
	pedestrians int

	flips       int
	modeChanges int
	shots       int
	ignored     int
	hits        int
	misses      int
	score       int

	firstHitTick int
	avgHitDist   float64
	finalX       float64
	finalZ       float64
}

type runResult struct {
	stats    runStats
	snapshot world.CitySnapshot
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var fireEvery int
	var parallel int
	var configPath string
	var dumpPath string

	fs := flag.NewFlagSet("headless-report", flag.ContinueOnError)
	fs.IntVar(&runs, "runs", 5, "number of headless sessions")
	fs.IntVar(&ticks, "ticks", 3600, "ticks per session")
	fs.Int64Var(&seedBase, "seed-base", 42, "city seed for run 1")
	fs.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	fs.IntVar(&fireEvery, "fire-every", 30, "autopilot fires every N ticks (0 disables)")
	fs.IntVar(&parallel, "parallel", 4, "sessions run concurrently")
	fs.StringVar(&configPath, "config", "", "config file (city and player sections are used)")
	fs.StringVar(&dumpPath, "dump", "", "write every generated layout as YAML to this path (- for stdout)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if runs <= 0 {
		fmt.Fprintln(stdout, "error: -runs must be > 0")
		return 2
	}
	if ticks <= 0 {
		fmt.Fprintln(stdout, "error: -ticks must be > 0")
		return 2
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(stdout, "error: %v\n", err)
		return 1
	}
	logger, closer := logging.Setup(os.Stderr, cfg.Log.Level, cfg.Log.File)
	defer closer.Close()

	fmt.Fprintf(stdout, "=== Headless City Report ===\n")
	fmt.Fprintf(stdout, "runs=%d ticks=%d seed_base=%d seed_step=%d fire_every=%d grid=%d cell=%d road_period=%d\n\n",
		runs, ticks, seedBase, seedStep, fireEvery, cfg.City.GridSize, cfg.City.CellSize, cfg.City.RoadPeriod)

	results, err := runAll(context.Background(), cfg.Session(), runs, ticks, seedBase, seedStep, fireEvery, parallel, logger)
	if err != nil {
		fmt.Fprintf(stdout, "error: %v\n", err)
		return 1
	}

	all := make([]runStats, 0, len(results))
	for _, r := range results {
		printRun(stdout, r.stats)
		all = append(all, r.stats)
	}
	printAggregate(stdout, all)

	if dumpPath != "" {
		if err := writeDump(dumpPath, results); err != nil {
			fmt.Fprintf(stdout, "error: %v\n", err)
			return 1
		}
	}
	return 0
}

// runAll runs independent sessions concurrently. Results keep run order.
func runAll(ctx context.Context, cfg world.SessionConfig, runs, ticks int, seedBase, seedStep int64, fireEvery, parallel int, logger *slog.Logger) ([]runResult, error) {
	results := make([]runResult, runs)
	g, ctx := errgroup.WithContext(ctx)
	if parallel > 0 {
		g.SetLimit(parallel)
	}
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		g.Go(func() error {
			r, err := runOne(ctx, cfg, i+1, seed, ticks, fireEvery, logger)
			if err != nil {
				return fmt.Errorf("run %d (seed=%d): %w", i+1, seed, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// runOne drives one session with the autopilot and summarises its SimLog.
func runOne(ctx context.Context, cfg world.SessionConfig, runIndex int, seed int64, ticks, fireEvery int, logger *slog.Logger) (runResult, error) {
	scene := render.NewScene()
	s := world.NewSession(cfg, scene,
		world.WithSeed(seed),
		world.WithVerbose(true),
		world.WithLogger(logger.With("run", runIndex)),
	)
	s.SetLocked(true)

	pilot := autopilot{fireEvery: fireEvery}
	for tick := 1; tick <= ticks; tick++ {
		if tick%600 == 0 {
			if err := ctx.Err(); err != nil {
				return runResult{}, err
			}
		}
		pilot.drive(tick, &s.Input)
		s.Step(tickDt)
	}

	snap := s.City.Snapshot()
	snap.Seed = seed
	return runResult{stats: summarise(runIndex, seed, s), snapshot: snap}, nil
}

// autopilot walks the avatar in a loose loop, sweeps the view, zooms
// through first person and fires on a fixed cadence.
type autopilot struct {
	fireEvery int
}

func (a autopilot) drive(tick int, in *world.InputState) {
	in.Forward = tick%240 < 180
	in.Right = tick%480 >= 360
	in.AddLook(2, 0)
	switch tick % 300 {
	case 0:
		in.AddWheel(-20)
	case 150:
		in.AddWheel(20)
	}
	if a.fireEvery > 0 && tick%a.fireEvery == 0 {
		in.RequestShoot()
	}
}

func summarise(runIndex int, seed int64, s *world.Session) runStats {
	rs := runStats{
		runIndex:     runIndex,
		seed:         seed,
		buildings:    len(s.City.Buildings),
		roads:        len(s.City.Roads),
		score:        s.Score,
		firstHitTick: -1,
	}
	for _, e := range s.Entities {
		if e.Kind == world.KindCar {
			rs.cars++
		} else {
			rs.pedestrians++
		}
	}
	var hitDist float64
	for _, e := range s.SimLog.Entries() {
		switch {
		case e.Category == world.CatEntity && e.Key == "flip":
			rs.flips++
		case e.Category == world.CatCamera && e.Key == "mode_change":
			rs.modeChanges++
		case e.Category == world.CatShot:
			switch e.Key {
			case "hit":
				rs.shots++
				rs.hits++
				hitDist += e.NumVal
				if rs.firstHitTick < 0 {
					rs.firstHitTick = e.Tick
				}
			case "miss":
				rs.shots++
				rs.misses++
			case "ignored":
				rs.ignored++
			}
		}
	}
	if rs.hits > 0 {
		rs.avgHitDist = hitDist / float64(rs.hits)
	}
	st := s.Player.State()
	rs.finalX, rs.finalZ = st.Position.X, st.Position.Z
	return rs
}

func printRun(w io.Writer, rs runStats) {
	fmt.Fprintf(w, "--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Fprintf(w, "layout: buildings=%d roads=%d cars=%d pedestrians=%d\n",
		rs.buildings, rs.roads, rs.cars, rs.pedestrians)
	fmt.Fprintf(w, "event_totals: flips=%d mode_changes=%d shots=%d hits=%d misses=%d ignored=%d\n",
		rs.flips, rs.modeChanges, rs.shots, rs.hits, rs.misses, rs.ignored)
	fmt.Fprintf(w, "score=%d first_hit=%d avg_hit_dist=%.1f final_pos=%.1f,%.1f\n\n",
		rs.score, rs.firstHitTick, rs.avgHitDist, rs.finalX, rs.finalZ)
}

func printAggregate(w io.Writer, all []runStats) {
	var buildings, entities, flips, shots, hits, score int
	firstHits := make([]int, 0, len(all))
	for _, rs := range all {
		buildings += rs.buildings
		entities += rs.cars + rs.pedestrians
		flips += rs.flips
		shots += rs.shots
		hits += rs.hits
		score += rs.score
		if rs.firstHitTick >= 0 {
			firstHits = append(firstHits, rs.firstHitTick)
		}
	}

	fmt.Fprintln(w, "=== Aggregate ===")
	fmt.Fprintf(w, "runs=%d\n", len(all))
	fmt.Fprintf(w, "avg_per_run: buildings=%.1f entities=%.1f flips=%.1f shots=%.1f hits=%.1f score=%.1f\n",
		avg(buildings, len(all)), avg(entities, len(all)), avg(flips, len(all)),
		avg(shots, len(all)), avg(hits, len(all)), avg(score, len(all)))
	fmt.Fprintf(w, "hit_rate=%s first_hit_avg_tick=%s\n", pct(hits, shots), avgTickString(firstHits))
	fmt.Fprintf(w, "no_hit_seeds=%s\n", noHitSeeds(all))
}

// writeDump writes every run's layout as a YAML sequence.
func writeDump(path string, results []runResult) error {
	snaps := make([]world.CitySnapshot, len(results))
	for i, r := range results {
		snaps[i] = r.snapshot
	}
	data, err := yaml.Marshal(snaps)
	if err != nil {
		return fmt.Errorf("encoding layout dump: %w", err)
	}
	if path == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing layout dump: %w", err)
	}
	return nil
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func pct(num, den int) string {
	if den <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", float64(num)/float64(den)*100)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

// noHitSeeds lists the seeds whose runs never scored.
func noHitSeeds(all []runStats) string {
	seeds := make([]string, 0, len(all))
	for _, rs := range all {
		if rs.hits == 0 {
			seeds = append(seeds, fmt.Sprintf("%d", rs.seed))
		}
	}
	if len(seeds) == 0 {
		return "none"
	}
	return strings.Join(seeds, ",")
}
