package mesh

import (
	"github.com/Faultbox/skyline/internal/geometry"
	"github.com/Faultbox/skyline/pkg/math"
)

// buildBox emits a box centered on center with every side subdivided per spec.Segments.
func buildBox(b *builder, spec geometry.BoxSpec, center math.Vec3) {
	sx, sy, sz := spec.Size.X, spec.Size.Y, spec.Size.Z
	nx, ny, nz := spec.Segments[0], spec.Segments[1], spec.Segments[2]

	lo := center.Sub(spec.Size.Scale(0.5))
	hi := center.Add(spec.Size.Scale(0.5))

	dx := math.Vec3{X: sx}
	dy := math.Vec3{Y: sy}
	dz := math.Vec3{Z: sz}

	b.grid(lo, dz, dy, nz, ny, math.Vec3{X: -1})
	b.grid(math.Vec3{X: hi.X, Y: lo.Y, Z: lo.Z}, dz, dy, nz, ny, math.Vec3{X: 1})
	b.grid(lo, dx, dz, nx, nz, math.Vec3{Y: -1})
	b.grid(math.Vec3{X: lo.X, Y: hi.Y, Z: lo.Z}, dx, dz, nx, nz, math.Up)
	b.grid(lo, dx, dy, nx, ny, math.Vec3{Z: -1})
	b.grid(math.Vec3{X: lo.X, Y: lo.Y, Z: hi.Z}, dx, dy, nx, ny, math.Vec3{Z: 1})
}

