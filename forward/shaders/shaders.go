package shaders

import (
	_ "embed"
)

//go:embed lit.wgsl
var LitWGSL string

//go:embed lamp.wgsl
var LampWGSL string

//go:embed lit.vert
var LitVertGLSL string

//go:embed lit.frag
var LitFragGLSL string

//go:embed lamp.vert
var LampVertGLSL string

//go:embed lamp.frag
var LampFragGLSL string

// LightCount is the fixed size of the light arrays every shader declares.
const LightCount = 3
