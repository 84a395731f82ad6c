package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutOf_Vertex(t *testing.T) {
	layout, err := LayoutOf(Vertex{})
	require.NoError(t, err)

	assert.Equal(t, uintptr(11*4), layout.Stride)
	assert.Equal(t, []Attribute{
		{Name: "Position", Location: 0, Offset: 0, Components: 3},
		{Name: "Color", Location: 1, Offset: 12, Components: 3},
		{Name: "UV", Location: 2, Offset: 24, Components: 2},
		{Name: "Normal", Location: 3, Offset: 32, Components: 3},
	}, layout.Attributes)
}

type paddedVertex struct {
	Pos   [3]float32 `gpu:"layout" location:"0" format:"float3"`
	Extra float32
	UV    [2]float32 `gpu:"layout" location:"1" format:"float2"`
}

func TestLayoutOf_SkipsUntagged(t *testing.T) {
	layout, err := LayoutOf(paddedVertex{})
	require.NoError(t, err)

	assert.Equal(t, uintptr(24), layout.Stride)
	require.Len(t, layout.Attributes, 2)
	assert.Equal(t, uintptr(16), layout.Attributes[1].Offset)
}

type badFormatVertex struct {
	Pos [3]float32 `gpu:"layout" location:"0" format:"vec3"`
}

type duplicateLocationVertex struct {
	A [3]float32 `gpu:"layout" location:"0" format:"float3"`
	B [3]float32 `gpu:"layout" location:"0" format:"float3"`
}

type badLocationVertex struct {
	A [3]float32 `gpu:"layout" location:"x" format:"float3"`
}

func TestLayoutOf_Errors(t *testing.T) {
	for name, v := range map[string]any{
		"not a struct":       42,
		"nil":                nil,
		"bad format":         badFormatVertex{},
		"duplicate location": duplicateLocationVertex{},
		"bad location":       badLocationVertex{},
	} {
		_, err := LayoutOf(v)
		assert.Error(t, err, name)
	}
}
