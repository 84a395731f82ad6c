package shaders

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWGSLEntryPoints(t *testing.T) {
	for name, src := range map[string]string{"lit": LitWGSL, "lamp": LampWGSL} {
		assert.Contains(t, src, "fn vs_main", name)
		assert.Contains(t, src, "fn fs_main", name)
	}
	assert.Contains(t, LitWGSL, "array<Light, 3>")
}

func TestGLSLVersion(t *testing.T) {
	for _, src := range []string{LitVertGLSL, LitFragGLSL, LampVertGLSL, LampFragGLSL} {
		assert.True(t, strings.HasPrefix(src, "#version 410 core"))
	}
	assert.Contains(t, LitFragGLSL, "lightShading[3]")
}
