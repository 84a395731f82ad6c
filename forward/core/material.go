package core

import "github.com/go-gl/mathgl/mgl32"

// Material pairs a texture name with the tint the lit shader multiplies it by.
type Material struct {
	Texture string
	Tint    mgl32.Vec3
}

func NewMaterial(texture string, r, g, b float32) Material {
	return Material{
		Texture: texture,
		Tint:    mgl32.Vec3{r, g, b},
	}
}

// PointLight is an omnidirectional light. The lamp pass draws its marker in Color.
type PointLight struct {
	Position mgl32.Vec3
	Color    mgl32.Vec3
	Shading  LightShading
}

// LightShading holds the per-light weights of the lit shader.
// Specular already includes any per-light attenuation factor.
type LightShading struct {
	Ambient   float32
	Diffuse   float32
	Specular  float32
	Shininess float32
}
