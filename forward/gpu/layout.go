package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/deskscene/forward/core"
)

func vertexFormat(components int) (wgpu.VertexFormat, error) {
	switch components {
	case 2:
		return wgpu.VertexFormatFloat32x2, nil
	case 3:
		return wgpu.VertexFormatFloat32x3, nil
	case 4:
		return wgpu.VertexFormatFloat32x4, nil
	default:
		return 0, fmt.Errorf("no vertex format with %d floats", components)
	}
}

// VertexBufferLayout builds the wgpu buffer layout of a tagged vertex struct.
func VertexBufferLayout(vertexType any) (wgpu.VertexBufferLayout, error) {
	layout, err := core.LayoutOf(vertexType)
	if err != nil {
		return wgpu.VertexBufferLayout{}, err
	}

	attributes := make([]wgpu.VertexAttribute, 0, len(layout.Attributes))
	for _, a := range layout.Attributes {
		format, err := vertexFormat(a.Components)
		if err != nil {
			return wgpu.VertexBufferLayout{}, fmt.Errorf("%s: %w", a.Name, err)
		}
		attributes = append(attributes, wgpu.VertexAttribute{
			ShaderLocation: a.Location,
			Offset:         uint64(a.Offset),
			Format:         format,
		})
	}

	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(layout.Stride),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  attributes,
	}, nil
}
