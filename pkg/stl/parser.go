package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/shadowvol/pkg/math"
)

// Parse errors.
var (
	ErrTruncated   = errors.New("stl: truncated binary data")
	ErrBadVertex   = errors.New("stl: malformed vertex line")
	ErrFacetCorner = errors.New("stl: facet does not have three vertices")
)

const (
	headerSize = 80
	facetSize  = 50 // normal + 3 vertices + attribute count
)

// Parse reads an STL file, detecting ASCII or binary format.
func Parse(filename string) (*Model, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Decode(data)
}

// Decode parses STL bytes. Data starting with "solid" is treated as ASCII
// unless its length matches the binary layout exactly, since some exporters
// write "solid" into the binary header.
func Decode(data []byte) (*Model, error) {
	if bytes.HasPrefix(data, []byte("solid")) && !looksBinary(data) {
		return parseASCII(data)
	}
	return parseBinary(data)
}

func looksBinary(data []byte) bool {
	if len(data) < headerSize+4 {
		return false
	}
	count := binary.LittleEndian.Uint32(data[headerSize:])
	return len(data) == headerSize+4+int(count)*facetSize
}

func parseASCII(data []byte) (*Model, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	model := NewModel("")

	var normal math.Vec3
	var corners []math.Vec3
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				model.Name = strings.Join(fields[1:], " ")
			}

		case "facet":
			corners = corners[:0]
			normal = math.Vec3{}
			if len(fields) >= 5 && fields[1] == "normal" {
				// A bad normal is not fatal; it is never used for winding.
				normal, _ = parseVec3(fields[2:5])
			}

		case "vertex":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%w: line %d", ErrBadVertex, lineNo)
			}
			v, err := parseVec3(fields[1:4])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrBadVertex, lineNo, err)
			}
			corners = append(corners, v)

		case "endfacet":
			if len(corners) != 3 {
				return nil, fmt.Errorf("%w: line %d has %d", ErrFacetCorner, lineNo, len(corners))
			}
			model.AddTriangle(Triangle{
				Normal:   normal,
				Vertices: [3]math.Vec3{corners[0], corners[1], corners[2]},
			})
			corners = corners[:0]
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}
	return model, nil
}

func parseVec3(fields []string) (math.Vec3, error) {
	var out [3]float32
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return math.Vec3{}, err
		}
		out[i] = float32(v)
	}
	return math.Vec3{X: out[0], Y: out[1], Z: out[2]}, nil
}

func parseBinary(data []byte) (*Model, error) {
	if len(data) < headerSize+4 {
		return nil, fmt.Errorf("%w: %d bytes", ErrTruncated, len(data))
	}

	model := NewModel(strings.TrimSpace(string(bytes.TrimRight(data[:headerSize], "\x00"))))

	count := int(binary.LittleEndian.Uint32(data[headerSize:]))
	body := data[headerSize+4:]
	if len(body) < count*facetSize {
		return nil, fmt.Errorf("%w: %d facets need %d bytes, have %d", ErrTruncated, count, count*facetSize, len(body))
	}

	r := bytes.NewReader(body)
	model.Triangles = make([]Triangle, 0, count)
	for i := 0; i < count; i++ {
		var facet struct {
			Normal     [3]float32
			Vertices   [3][3]float32
			Attributes uint16
		}
		if err := binary.Read(r, binary.LittleEndian, &facet); err != nil {
			return nil, fmt.Errorf("failed to read triangle %d: %w", i, err)
		}

		t := Triangle{Normal: vec3(facet.Normal)}
		for j := range facet.Vertices {
			t.Vertices[j] = vec3(facet.Vertices[j])
		}
		model.AddTriangle(t)
	}
	return model, nil
}

func vec3(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
