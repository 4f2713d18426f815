package world

import (
	"fmt"
	"log/slog"
	"math/rand"
)

// SessionConfig bundles the parameters a session is built from.
type SessionConfig struct {
	City      CityConfig
	Player    PlayerConfig
	ShotRange float64
}

// DefaultSessionConfig is the canonical city with the default controller.
var DefaultSessionConfig = SessionConfig{
	City:      DefaultCityConfig,
	Player:    DefaultPlayerConfig,
	ShotRange: DefaultShotRange,
}

// Session is the explicit simulation state: one generated city, its
// entities, the player and the input they are driven by. It is owned by a
// single loop driver and is not safe for concurrent use.
type Session struct {
	City     City
	Entities []Entity
	Player   *PlayerController
	Input    InputState
	SimLog   *SimLog
	Tick     int
	Score    int
	Seed     int64

	backend  Backend
	shooter  *Shooter
	sink     ScoreSink
	avatar   Handle
	boundary float64
	leftover float64
	lastMode CameraMode
	logger   *slog.Logger

	// build-time settings
	src        Source
	skipCity   bool
	startX     float64
	startZ     float64
	extraEnts  []Entity
	nextShotID int
}

// sessionOptionKind controls the pass in which an option is applied.
type sessionOptionKind int

const (
	sessionOptInfra  sessionOptionKind = iota // seed, source, logging, sinks: applied first
	sessionOptEntity                          // extra entities: applied after generation
)

// SessionOption is a builder function applied to a Session during construction.
type SessionOption struct {
	kind sessionOptionKind
	fn   func(*Session)
}

// WithSeed seeds the generator for reproducible cities.
func WithSeed(seed int64) SessionOption {
	return SessionOption{sessionOptInfra, func(s *Session) {
		s.Seed = seed
		s.src = rand.New(rand.NewSource(seed)) // #nosec G404 -- procedural layout only
	}}
}

// WithSource injects the generator's random source directly.
func WithSource(src Source) SessionOption {
	return SessionOption{sessionOptInfra, func(s *Session) {
		s.src = src
	}}
}

// WithVerbose records per-tick boundary flips in the SimLog.
func WithVerbose(v bool) SessionOption {
	return SessionOption{sessionOptInfra, func(s *Session) {
		s.SimLog = NewSimLog(v)
	}}
}

// WithLogger sets the structured logger for lifecycle events.
func WithLogger(l *slog.Logger) SessionOption {
	return SessionOption{sessionOptInfra, func(s *Session) {
		s.logger = l
	}}
}

// WithScoreSink forwards score increments to an external collaborator.
func WithScoreSink(sink ScoreSink) SessionOption {
	return SessionOption{sessionOptInfra, func(s *Session) {
		s.sink = sink
	}}
}

// WithoutCity skips generation, leaving an empty world.
func WithoutCity() SessionOption {
	return SessionOption{sessionOptInfra, func(s *Session) {
		s.skipCity = true
	}}
}

// WithPlayerAt sets the avatar's start position.
func WithPlayerAt(x, z float64) SessionOption {
	return SessionOption{sessionOptInfra, func(s *Session) {
		s.startX, s.startZ = x, z
	}}
}

// WithEntity adds an entity after generation.
func WithEntity(e Entity) SessionOption {
	return SessionOption{sessionOptEntity, func(s *Session) {
		s.extraEnts = append(s.extraEnts, e)
	}}
}

// NewSession generates the city, materialises it through the backend and
// places the player. Options are applied in two passes: infrastructure,
// then entities.
func NewSession(cfg SessionConfig, b Backend, opts ...SessionOption) *Session {
	s := &Session{
		SimLog:  NewSimLog(false),
		backend: b,
		logger:  slog.Default(),
		Seed:    1,
		src:     rand.New(rand.NewSource(1)), // #nosec G404 -- deterministic default
	}
	for _, o := range opts {
		if o.kind == sessionOptInfra {
			o.fn(s)
		}
	}

	if s.skipCity {
		s.City = City{Config: cfg.City}
	} else {
		s.City = Generate(cfg.City, s.src)
	}
	s.Entities = append([]Entity(nil), s.City.Entities...)
	for _, o := range opts {
		if o.kind == sessionOptEntity {
			o.fn(s)
		}
	}
	s.Entities = append(s.Entities, s.extraEnts...)
	s.boundary = cfg.City.Layout().Boundary()

	s.Player = NewPlayerController(cfg.Player, s.startX, s.startZ)
	s.lastMode = s.Player.Mode()
	s.shooter = NewShooter(b, ScoreFunc(s.scored))
	if cfg.ShotRange > 0 {
		s.shooter.Range = cfg.ShotRange
	}

	s.materialise()
	s.SimLog.Add(0, "--", CatCity, "generated",
		fmt.Sprintf("buildings=%d roads=%d entities=%d", len(s.City.Buildings), len(s.City.Roads), len(s.Entities)),
		float64(len(s.Entities)))
	s.logger.Info("city generated",
		"seed", s.Seed,
		"buildings", len(s.City.Buildings),
		"roads", len(s.City.Roads),
		"entities", len(s.Entities))
	return s
}

// materialise requests one mesh per static record, entity and the avatar.
func (s *Session) materialise() {
	size := float64(s.City.Config.GridSize)
	ground := s.backend.CreateMesh(MeshGround, Vec3{X: size, Z: size}, ColorGround)
	s.backend.SetPose(ground, Vec3{}, 0)
	for _, bld := range s.City.Buildings {
		h := s.backend.CreateMesh(MeshBuilding, bld.Dimensions(), ColorBuilding)
		s.backend.SetPose(h, bld.Position, 0)
	}
	for _, r := range s.City.Roads {
		h := s.backend.CreateMesh(MeshRoad, Vec3{X: r.Size, Y: 0.02, Z: r.Size}, ColorRoad)
		s.backend.SetPose(h, r.Position(), 0)
	}
	for i := range s.Entities {
		e := &s.Entities[i]
		kind, col := MeshCar, ColorCar
		if e.Kind == KindPedestrian {
			kind, col = MeshPedestrian, ColorPedestrian
		}
		e.mesh = s.backend.CreateMesh(kind, e.Kind.Dimensions(), col)
	}
	s.avatar = s.backend.CreateMesh(MeshAvatar, Vec3{X: 1, Y: 2, Z: 1}, ColorAvatar)
	s.pushPoses()
}

// SetLocked mirrors the host's pointer-capture state into the controller.
func (s *Session) SetLocked(locked bool) {
	if locked == s.Player.Locked() {
		return
	}
	if locked {
		s.Player.Lock()
		s.SimLog.Add(s.Tick, "player", CatPlayer, "lock", "acquired", 1)
	} else {
		s.Player.Unlock()
		s.SimLog.Add(s.Tick, "player", CatPlayer, "lock", "released", 0)
	}
	s.logger.Debug("pointer lock changed", "locked", locked, "tick", s.Tick)
}

// entityStep is the fixed substep entities advance by. The boundary flip
// keeps an entity within one step of the edge only when no single advance
// is longer than a reference frame.
const entityStep = 1.0 / ReferenceHz

// Step runs one frame: player, entities, pose push, then any pending shot
// against the fresh poses. Input is sampled once at the start and its
// one-shot fields are cleared. Entities consume dt in whole entityStep
// substeps; any remainder carries to the next frame.
func (s *Session) Step(dt float64) {
	s.Tick++
	in := s.Input
	s.Input.Consume()

	if s.Player.Update(in, dt) {
		if m := s.Player.Mode(); m != s.lastMode {
			s.SimLog.Add(s.Tick, "player", CatCamera, "mode_change",
				fmt.Sprintf("%s → %s", s.lastMode, m), s.Player.State().CameraDistance)
			s.lastMode = m
		}
	}

	if dt > 0 {
		s.leftover += dt
	}
	for s.leftover >= entityStep-1e-9 {
		s.leftover -= entityStep
		for _, f := range UpdateEntities(s.Entities, s.boundary, entityStep) {
			if s.SimLog.Verbose() {
				s.SimLog.AddVerbose(s.Tick, entityLabel(f.Index, s.Entities[f.Index].Kind), CatEntity, "flip",
					fmt.Sprintf("%s %.2f → %.2f", f.Axis, f.From, -f.From), f.From)
			}
		}
	}

	s.pushPoses()
	if in.ShootRequested {
		s.fire()
	}
}

func (s *Session) fire() {
	if !s.Player.Locked() {
		s.SimLog.Add(s.Tick, "player", CatShot, "ignored", "unlocked", 0)
		return
	}
	s.nextShotID++
	st := s.Player.State()
	hit, ok := s.shooter.Fire(true, st.CameraPosition, st.CameraForward, s.Entities)
	if !ok {
		s.SimLog.Add(s.Tick, "player", CatShot, "miss", fmt.Sprintf("shot#%d", s.nextShotID), 0)
		return
	}
	label := entityLabel(hit.Index, hit.Kind)
	s.SimLog.Add(s.Tick, label, CatShot, "hit",
		fmt.Sprintf("shot#%d %s at %.1f", s.nextShotID, hit.Kind, hit.Distance), hit.Distance)
	s.logger.Debug("target hit", "target", label, "distance", hit.Distance, "score", s.Score)
}

func (s *Session) scored() {
	s.Score++
	if s.sink != nil {
		s.sink.OnScoreIncrement()
	}
}

// pushPoses sends entity, avatar and camera poses to the backend.
func (s *Session) pushPoses() {
	for i := range s.Entities {
		e := &s.Entities[i]
		s.backend.SetPose(e.mesh, e.Position, 0)
	}
	st := s.Player.State()
	s.backend.SetPose(s.avatar, st.Position, st.AvatarYaw)
	s.backend.SetVisible(s.avatar, s.Player.AvatarVisible())
	s.backend.SetCamera(st.CameraPosition, st.CameraForward)
}

// Boundary is the patrol half-extent.
func (s *Session) Boundary() float64 { return s.boundary }

// Avatar returns the avatar's mesh handle.
func (s *Session) Avatar() Handle { return s.avatar }

func entityLabel(i int, k EntityKind) string {
	if k == KindPedestrian {
		return fmt.Sprintf("ped%d", i)
	}
	return fmt.Sprintf("car%d", i)
}
