package mesh

import (
	"bufio"
	"fmt"
	"io"
)

// WriteOBJ writes every visible object as a Wavefront OBJ group. Vertex normals are
// written alongside positions and share their indices.
func (s *Scene) WriteOBJ(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# skyline scene")

	offset := uint32(1) // OBJ indices are 1-based and global
	for _, h := range s.Handles(0) {
		obj := s.objects[h]
		if !obj.visible {
			continue
		}
		m, err := s.Mesh(h)
		if err != nil {
			return err
		}

		name := "skyscraper"
		if obj.kind == KindPlane {
			name = "base_plane"
		}
		fmt.Fprintf(bw, "o %s_%d\n", name, h)
		for _, v := range m.Vertices {
			fmt.Fprintf(bw, "v %g %g %g\n", v.Position[0], v.Position[1], v.Position[2])
		}
		for _, v := range m.Vertices {
			fmt.Fprintf(bw, "vn %g %g %g\n", v.Normal[0], v.Normal[1], v.Normal[2])
		}
		for i := 0; i+2 < len(m.Indices); i += 3 {
			a, b, c := m.Indices[i]+offset, m.Indices[i+1]+offset, m.Indices[i+2]+offset
			fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", a, a, b, b, c, c)
		}
		offset += uint32(len(m.Vertices))
	}
	return bw.Flush()
}
