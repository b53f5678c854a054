package mesh

import (
	"fmt"
	"slices"

	"github.com/Faultbox/skyline/internal/geometry"
	"github.com/Faultbox/skyline/pkg/math"
)

// Kind is the primitive type of a scene object.
type Kind int

const (
	KindPlane Kind = iota + 1
	KindBox
)

func (k Kind) String() string {
	switch k {
	case KindPlane:
		return "plane"
	case KindBox:
		return "box"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

type object struct {
	kind     Kind
	visible  bool
	position math.Vec3
	plane    *plane
	box      geometry.BoxSpec
}

// Scene is an in-memory geometry.Engine. It is not safe for concurrent use.
type Scene struct {
	next    geometry.Handle
	objects map[geometry.Handle]*object
}

var _ geometry.Engine = (*Scene)(nil)

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{objects: make(map[geometry.Handle]*object)}
}

func (s *Scene) add(obj *object) geometry.Handle {
	s.next++
	s.objects[s.next] = obj
	return s.next
}

func (s *Scene) get(h geometry.Handle) (*object, error) {
	obj, ok := s.objects[h]
	if !ok {
		return nil, fmt.Errorf("%w: %d", geometry.ErrUnknownHandle, h)
	}
	return obj, nil
}

func (s *Scene) getPlane(h geometry.Handle) (*plane, error) {
	obj, err := s.get(h)
	if err != nil {
		return nil, err
	}
	if obj.kind != KindPlane {
		return nil, fmt.Errorf("object %d is a %s, not a plane", h, obj.kind)
	}
	return obj.plane, nil
}

// CreateBasePlane implements geometry.Engine.
func (s *Scene) CreateBasePlane(width, height int) (geometry.Handle, error) {
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("plane size %dx%d must be positive", width, height)
	}
	return s.add(&object{kind: KindPlane, visible: true, plane: newPlane(width, height)}), nil
}

// ExtrudeBase implements geometry.Engine.
func (s *Scene) ExtrudeBase(h geometry.Handle, depth float32) error {
	p, err := s.getPlane(h)
	if err != nil {
		return err
	}
	p.extrude(depth)
	return nil
}

// RecessFaces implements geometry.Engine. Faces are never lowered below the plane's
// original surface.
func (s *Scene) RecessFaces(h geometry.Handle, faces []int, depth float32) error {
	p, err := s.getPlane(h)
	if err != nil {
		return err
	}
	return p.recess(faces, depth)
}

// CreateBox implements geometry.Engine.
func (s *Scene) CreateBox(spec geometry.BoxSpec) (geometry.Handle, error) {
	if spec.Size.X < 0 || spec.Size.Y < 0 || spec.Size.Z < 0 {
		return 0, fmt.Errorf("box size %v must not be negative", spec.Size)
	}
	return s.add(&object{kind: KindBox, visible: true, box: spec}), nil
}

// MoveTo implements geometry.Engine.
func (s *Scene) MoveTo(h geometry.Handle, pos math.Vec3) error {
	obj, err := s.get(h)
	if err != nil {
		return err
	}
	obj.position = pos
	return nil
}

// Duplicate implements geometry.Engine.
func (s *Scene) Duplicate(h geometry.Handle) (geometry.Handle, error) {
	obj, err := s.get(h)
	if err != nil {
		return 0, err
	}
	dup := *obj
	if obj.plane != nil {
		dup.plane = obj.plane.clone()
	}
	return s.add(&dup), nil
}

// SetVisible implements geometry.Engine.
func (s *Scene) SetVisible(h geometry.Handle, visible bool) error {
	obj, err := s.get(h)
	if err != nil {
		return err
	}
	obj.visible = visible
	return nil
}

// DeleteAll implements geometry.Engine.
func (s *Scene) DeleteAll(handles ...geometry.Handle) error {
	for _, h := range handles {
		delete(s.objects, h)
	}
	return nil
}

// WorldPositionOfVertex implements geometry.Engine.
func (s *Scene) WorldPositionOfVertex(h geometry.Handle, latticeIndex int) (math.Vec3, error) {
	obj, err := s.get(h)
	if err != nil {
		return math.Vec3{}, err
	}
	if obj.kind != KindPlane {
		return math.Vec3{}, fmt.Errorf("object %d is a %s, not a plane", h, obj.kind)
	}
	local, err := obj.plane.vertex(latticeIndex)
	if err != nil {
		return math.Vec3{}, err
	}
	return obj.position.Add(local), nil
}

// Len returns the number of objects in the scene.
func (s *Scene) Len() int {
	return len(s.objects)
}

// Handles returns the handles of all objects of kind in creation order. A zero kind
// matches everything.
func (s *Scene) Handles(kind Kind) []geometry.Handle {
	var out []geometry.Handle
	for h, obj := range s.objects {
		if kind == 0 || obj.kind == kind {
			out = append(out, h)
		}
	}
	slices.Sort(out)
	return out
}

// Visible reports whether h exists and is shown.
func (s *Scene) Visible(h geometry.Handle) bool {
	obj, ok := s.objects[h]
	return ok && obj.visible
}

// Position returns the origin of h.
func (s *Scene) Position(h geometry.Handle) (math.Vec3, error) {
	obj, err := s.get(h)
	if err != nil {
		return math.Vec3{}, err
	}
	return obj.position, nil
}

// FaceTop returns the surface height of one plane face.
func (s *Scene) FaceTop(h geometry.Handle, face int) (float32, error) {
	p, err := s.getPlane(h)
	if err != nil {
		return 0, err
	}
	if face < 0 || face >= len(p.faceTop) {
		return 0, fmt.Errorf("face %d out of range [0, %d)", face, len(p.faceTop))
	}
	return p.faceTop[face], nil
}

// Mesh builds the world-space triangle mesh of one object.
func (s *Scene) Mesh(h geometry.Handle) (*Mesh, error) {
	obj, err := s.get(h)
	if err != nil {
		return nil, err
	}
	b := newBuilder()
	switch obj.kind {
	case KindPlane:
		obj.plane.build(b, obj.position)
	case KindBox:
		buildBox(b, obj.box, obj.position)
	}
	return b.build(), nil
}
