// Package geometry defines the scene-graph operations the skyscraper generator needs from
// a host 3D engine. Objects are addressed by the handles the engine returns.
package geometry

import (
	"errors"

	"github.com/Faultbox/skyline/pkg/math"
)

// Handle identifies one object in an engine's scene. The zero Handle is never issued.
type Handle uint64

// ErrUnknownHandle is returned for a handle the engine does not hold.
var ErrUnknownHandle = errors.New("unknown handle")

// BoxSpec describes a box primitive centered on its origin.
type BoxSpec struct {
	Size     math.Vec3
	Segments [3]int // subdivisions along X, Y and Z
}

// Engine is the host scene graph.
type Engine interface {
	// CreateBasePlane creates a flat plane of width×height world units subdivided into
	// 2·width×2·height quad faces, centered on the origin.
	CreateBasePlane(width, height int) (Handle, error)
	// ExtrudeBase raises the whole plane surface into a slab of the given depth.
	ExtrudeBase(h Handle, depth float32) error
	// RecessFaces lowers the listed faces of a plane by depth.
	RecessFaces(h Handle, faces []int, depth float32) error
	// CreateBox creates a box primitive at the origin.
	CreateBox(spec BoxSpec) (Handle, error)
	// MoveTo places an object's origin at pos.
	MoveTo(h Handle, pos math.Vec3) error
	// Duplicate copies an object, including any extrusion or recess applied to it.
	Duplicate(h Handle) (Handle, error)
	// SetVisible shows or hides an object.
	SetVisible(h Handle, visible bool) error
	// DeleteAll removes the given objects. Handles that no longer exist are ignored.
	DeleteAll(handles ...Handle) error
	// WorldPositionOfVertex returns the world position of a plane lattice vertex on the
	// plane's current surface.
	WorldPositionOfVertex(h Handle, latticeIndex int) (math.Vec3, error)
}
