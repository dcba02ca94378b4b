package ir

import (
	"strings"
)

// SamplerType is the sampler type of a texture parameter.
type SamplerType uint8

const (
	Sampler2D SamplerType = iota
	SamplerCube
	Sampler3D
	Sampler2DArray
)

var samplerTypeNames = [...]string{
	"sampler2D", "samplerCube", "sampler3D", "sampler2DArray",
}

// String returns the GLSL name of the sampler type.
func (t SamplerType) String() string {
	if int(t) < len(samplerTypeNames) {
		return samplerTypeNames[t]
	}
	return "invalid"
}

// ParseSamplerType maps a source token to a sampler type.
func ParseSamplerType(s string) (SamplerType, bool) {
	for i, name := range samplerTypeNames {
		if s == name {
			return SamplerType(i), true
		}
	}
	return 0, false
}

// Texture is a single texture shader parameter.
type Texture struct {
	Type     SamplerType
	Name     string
	BindName string

	// Slot is the zero-based per-stage bind slot, assigned per program.
	Slot int

	Path string
	Line int
}

// TextureBlock is a named group of textures bound to one shader stage.
type TextureBlock struct {
	Name     string
	BindName string

	// Stage is assigned on first @use_texture_block and must stay
	// consistent across the whole library.
	Stage Stage

	Path string
	Line int

	// Lines holds the raw member lines until the block is sealed.
	Lines []Line

	// Textures lists the members in declaration order.
	Textures []Texture
}

// ParseLines seals the block: every accumulated line is parsed into a typed
// texture of the form "samplerType name bindname".
func (b *TextureBlock) ParseLines() *Error {
	for _, line := range b.Lines {
		tokens := strings.Fields(line.Content)
		if len(tokens) != 3 {
			return Errorf(KindSemantic, line.Path, line.Num,
				"texture must have 3 args (type name binding)")
		}
		typ, ok := ParseSamplerType(tokens[0])
		if !ok {
			return Errorf(KindSemantic, line.Path, line.Num,
				"invalid texture type '%s', must be one of '%s'",
				tokens[0], strings.Join(samplerTypeNames[:], ","))
		}
		name := tokens[1]
		for _, tex := range b.Textures {
			if tex.Name == name {
				return Errorf(KindSemantic, line.Path, line.Num,
					"texture '%s' already defined in '%s'", name, b.Name)
			}
		}
		b.Textures = append(b.Textures, Texture{
			Type:     typ,
			Name:     name,
			BindName: tokens[2],
			Path:     line.Path,
			Line:     line.Num,
		})
	}
	return nil
}
