package obj

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// maxLineSize bounds a single OBJ statement; exporters may write very long
// face or comment lines.
const maxLineSize = 16 << 20

var (
	// ErrNoGeometry is returned when a file decodes without any triangle.
	ErrNoGeometry = errors.New("obj: no faces found")
	// ErrBadIndex is returned when a face references a vertex that does not exist.
	ErrBadIndex = errors.New("obj: face index out of range")
)

// Decoder accumulates the state of a single OBJ decode.
// Only geometry statements are interpreted; materials, normals and texture
// coordinates are skipped and recorded as warnings.
type Decoder struct {
	// Warnings lists statements that were ignored.
	Warnings []string

	mesh Mesh
	line int
}

// ParseFile reads and decodes the OBJ file at path.
//
// Parameters:
//   - path: Path to the OBJ file, e.g., "assets/meshes/terrain.obj"
//
// Returns:
//   - *Mesh: The decoded triangle mesh
//   - error: Read or parse error, or nil if successful
func ParseFile(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open obj file '%s': %w", path, err)
	}
	defer f.Close()

	mesh, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse obj file '%s': %w", path, err)
	}
	if mesh.Name == "" {
		mesh.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return mesh, nil
}

// Parse decodes OBJ text from r.
//
// Faces with more than three vertices are split into a triangle fan.
// Negative face indices are resolved relative to the last parsed vertex.
func Parse(r io.Reader) (*Mesh, error) {
	dec := NewDecoder()
	if err := dec.Decode(r); err != nil {
		return nil, err
	}
	return dec.Mesh()
}

// NewDecoder creates an empty Decoder.
func NewDecoder() *Decoder {
	return &Decoder{
		mesh: Mesh{Bounds: emptyAABB()},
	}
}

// Decode reads every line from r and dispatches it to the statement parsers.
func (dec *Decoder) Decode(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	dec.line = 0
	for scanner.Scan() {
		dec.line++
		if err := dec.parseLine(scanner.Text()); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("obj: read line %d: %w", dec.line+1, err)
	}
	return nil
}

// Mesh finalizes decoding: validates indices and computes bounds.
func (dec *Decoder) Mesh() (*Mesh, error) {
	if len(dec.mesh.Triangles) == 0 {
		return nil, ErrNoGeometry
	}
	n := len(dec.mesh.Vertices)
	bounds := emptyAABB()
	for i, tri := range dec.mesh.Triangles {
		for _, idx := range tri {
			if idx < 0 || idx >= n {
				return nil, fmt.Errorf("triangle %d references vertex %d of %d: %w", i, idx, n, ErrBadIndex)
			}
			bounds.Extend(dec.mesh.Vertices[idx])
		}
	}
	mesh := dec.mesh
	mesh.Bounds = bounds
	return &mesh, nil
}

func (dec *Decoder) parseLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}
	switch fields[0] {
	case "v":
		return dec.parseVertex(fields[1:])
	case "f":
		return dec.parseFace(fields[1:])
	case "o", "g":
		if dec.mesh.Name == "" && len(fields) > 1 {
			dec.mesh.Name = fields[1]
		}
	case "vn", "vt", "s", "usemtl", "mtllib":
		// not needed for collision geometry
	default:
		dec.Warnings = append(dec.Warnings, fmt.Sprintf("line %d: statement not supported: %s", dec.line, fields[0]))
	}
	return nil
}

// parseVertex parses a vertex position line:
// v <x> <y> <z> [w]
func (dec *Decoder) parseVertex(fields []string) error {
	if len(fields) < 3 {
		return dec.formatError("vertex line with less than 3 coordinates")
	}
	var v mgl64.Vec3
	for i := 0; i < 3; i++ {
		val, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return dec.formatError(err.Error())
		}
		v[i] = val
	}
	dec.mesh.Vertices = append(dec.mesh.Vertices, v)
	return nil
}

// parseFace parses a face line:
// f v1[/vt1][/vn1] v2[/vt2][/vn2] v3[/vt3][/vn3] ...
func (dec *Decoder) parseFace(fields []string) error {
	if len(fields) < 3 {
		return dec.formatError("face line with less than 3 vertices")
	}
	idxs := make([]int, len(fields))
	for i, f := range fields {
		part, _, _ := strings.Cut(f, "/")
		val, err := strconv.Atoi(part)
		if err != nil {
			return dec.formatError(err.Error())
		}
		switch {
		case val > 0:
			idxs[i] = val - 1
		case val < 0:
			idxs[i] = len(dec.mesh.Vertices) + val
		default:
			return dec.formatError("face vertex index value equal to 0")
		}
	}
	for i := 1; i+1 < len(idxs); i++ {
		dec.mesh.Triangles = append(dec.mesh.Triangles, Triangle{idxs[0], idxs[i], idxs[i+1]})
	}
	return nil
}

func (dec *Decoder) formatError(msg string) error {
	return fmt.Errorf("obj line %d: %s", dec.line, msg)
}
