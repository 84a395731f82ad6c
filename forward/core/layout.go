package core

import (
	"fmt"
	"reflect"
	"strconv"
)

// Attribute is one float vertex attribute found by VertexLayout.
type Attribute struct {
	Name       string
	Location   uint32
	Offset     uintptr
	Components int
}

type VertexLayout struct {
	Stride     uintptr
	Attributes []Attribute
}

func parseComponents(format string) (int, error) {
	switch format {
	case "float2":
		return 2, nil
	case "float3":
		return 3, nil
	case "float4":
		return 4, nil
	default:
		return 0, fmt.Errorf("unsupported vertex layout format: %q", format)
	}
}

// LayoutOf reads the `gpu:"layout"` fields of vertexType. Untagged fields
// still take up room in the stride.
func LayoutOf(vertexType any) (VertexLayout, error) {
	t := reflect.TypeOf(vertexType)
	if t == nil || t.Kind() != reflect.Struct {
		return VertexLayout{}, fmt.Errorf("vertex type must be a struct, got %v", t)
	}

	layout := VertexLayout{Stride: t.Size()}
	seen := make(map[uint32]string)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Tag.Get("gpu") != "layout" {
			continue
		}

		components, err := parseComponents(field.Tag.Get("format"))
		if err != nil {
			return VertexLayout{}, fmt.Errorf("%s.%s: %w", t.Name(), field.Name, err)
		}
		location, err := strconv.ParseUint(field.Tag.Get("location"), 10, 32)
		if err != nil {
			return VertexLayout{}, fmt.Errorf("%s.%s: bad location %q", t.Name(), field.Name, field.Tag.Get("location"))
		}
		if prev, ok := seen[uint32(location)]; ok {
			return VertexLayout{}, fmt.Errorf("%s.%s: location %d already used by %s", t.Name(), field.Name, location, prev)
		}
		seen[uint32(location)] = field.Name

		layout.Attributes = append(layout.Attributes, Attribute{
			Name:       field.Name,
			Location:   uint32(location),
			Offset:     field.Offset,
			Components: components,
		})
	}
	return layout, nil
}
