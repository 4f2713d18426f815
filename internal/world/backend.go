package world

import "image/color"

// Handle identifies a mesh owned by a Backend. The zero Handle is never
// issued.
type Handle uint32

// MeshKind tells the backend what a mesh represents.
type MeshKind uint8

const (
	MeshBuilding MeshKind = iota
	MeshRoad
	MeshCar
	MeshPedestrian
	MeshAvatar
	MeshGround
)

func (k MeshKind) String() string {
	switch k {
	case MeshBuilding:
		return "building"
	case MeshRoad:
		return "road"
	case MeshCar:
		return "car"
	case MeshPedestrian:
		return "pedestrian"
	case MeshAvatar:
		return "avatar"
	case MeshGround:
		return "ground"
	default:
		return "unknown"
	}
}

// Mesh colours.
var (
	ColorBuilding   = color.RGBA{R: 136, G: 136, B: 140, A: 255}
	ColorRoad       = color.RGBA{R: 51, G: 51, B: 51, A: 255}
	ColorCar        = color.RGBA{R: 220, G: 40, B: 40, A: 255}
	ColorPedestrian = color.RGBA{R: 40, G: 90, B: 230, A: 255}
	ColorAvatar     = color.RGBA{R: 40, G: 200, B: 80, A: 255}
	ColorGround     = color.RGBA{R: 34, G: 139, B: 34, A: 255}
)

// Backend is the rendering collaborator. It owns visuals only; the world
// never reads poses back from it.
type Backend interface {
	// CreateMesh registers a box of the given dimensions and returns its handle.
	CreateMesh(kind MeshKind, dims Vec3, c color.RGBA) Handle
	// SetPose places a mesh centre at pos, rotated yaw radians about +Y.
	SetPose(h Handle, pos Vec3, yaw float64)
	SetVisible(h Handle, visible bool)
	// SetCamera places the viewer.
	SetCamera(pos, forward Vec3)
	// Raycast returns the nearest candidate hit by the ray and its distance.
	Raycast(origin, dir Vec3, candidates []Handle) (Handle, float64, bool)
}

// ScoreSink receives one call per successful shot.
type ScoreSink interface {
	OnScoreIncrement()
}

// ScoreFunc adapts a function to ScoreSink.
type ScoreFunc func()

func (f ScoreFunc) OnScoreIncrement() { f() }
