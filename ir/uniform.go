package ir

import (
	"hash/crc32"
	"strconv"
	"strings"
)

// UniformType is the data type of a single uniform. The declaration order
// of the constants is significant: layout grouping and the structural hash
// always iterate from the greatest type to the smallest.
type UniformType uint8

const (
	UniformMat4 UniformType = iota
	UniformMat3
	UniformMat2
	UniformVec4
	UniformVec3
	UniformVec2
	UniformFloat
	UniformInt
	UniformBool

	numUniformTypes
)

var uniformTypeNames = [numUniformTypes]string{
	"mat4", "mat3", "mat2",
	"vec4", "vec3", "vec2",
	"float", "int", "bool",
}

// String returns the GLSL name of the uniform type.
func (t UniformType) String() string {
	if t < numUniformTypes {
		return uniformTypeNames[t]
	}
	return "invalid"
}

// ParseUniformType maps a source token to a uniform type.
func ParseUniformType(s string) (UniformType, bool) {
	for i, name := range uniformTypeNames {
		if s == name {
			return UniformType(i), true
		}
	}
	return 0, false
}

// ArrayCapable reports whether arrays of this type are permitted. Only
// 16-byte aligned types may be arrays.
func (t UniformType) ArrayCapable() bool {
	return t == UniformMat4 || t == UniformVec4
}

// UniformTypeNames returns the fixed greatest-to-smallest type name order.
func UniformTypeNames() []string {
	return uniformTypeNames[:]
}

// Uniform is a single uniform definition. Count is 1 for scalars and the
// element count for arrays.
type Uniform struct {
	Type     UniformType
	Count    int
	Name     string
	BindName string
	Path     string
	Line     int
}

// UniformBlock is a named group of uniforms bound to one shader stage.
type UniformBlock struct {
	Name     string
	BindName string

	// Stage is assigned on first @use_uniform_block and must stay
	// consistent across the whole library.
	Stage Stage

	// Slot is the zero-based per-stage bind slot, assigned per program.
	Slot int

	Path string
	Line int

	// Lines holds the raw member lines until the block is sealed.
	Lines []Line

	// Uniforms lists the members in declaration order.
	Uniforms []Uniform

	grouped []Uniform
}

// ParseLines seals the block: every accumulated line is parsed into a typed
// uniform of the form "type[count] name bindname".
func (b *UniformBlock) ParseLines() *Error {
	for _, line := range b.Lines {
		tokens := strings.Fields(line.Content)
		if len(tokens) != 3 {
			return Errorf(KindSemantic, line.Path, line.Num,
				"uniform must have 3 args (type name binding)")
		}
		typeName, count, err := parseArraySuffix(tokens[0], line)
		if err != nil {
			return err
		}
		typ, ok := ParseUniformType(typeName)
		if !ok {
			return Errorf(KindSemantic, line.Path, line.Num,
				"invalid uniform type '%s', must be one of '%s'",
				typeName, strings.Join(UniformTypeNames(), ","))
		}
		// alignment rules restrict which types may be arrays
		if count > 1 && !typ.ArrayCapable() {
			return Errorf(KindSemantic, line.Path, line.Num,
				"invalid uniform array type '%s', must be 'mat4' or 'vec4'", typeName)
		}
		name := tokens[1]
		for _, u := range b.Uniforms {
			if u.Name == name {
				return Errorf(KindSemantic, line.Path, line.Num,
					"uniform '%s' already defined in '%s'", name, b.Name)
			}
		}
		b.Uniforms = append(b.Uniforms, Uniform{
			Type:     typ,
			Count:    count,
			Name:     name,
			BindName: tokens[2],
			Path:     line.Path,
			Line:     line.Num,
		})
	}
	b.group()
	return nil
}

// group orders the members by the fixed greatest-to-smallest type grouping,
// keeping declaration order within each group.
func (b *UniformBlock) group() {
	b.grouped = b.grouped[:0]
	for t := UniformType(0); t < numUniformTypes; t++ {
		for _, u := range b.Uniforms {
			if u.Type == t {
				b.grouped = append(b.grouped, u)
			}
		}
	}
}

// Grouped returns the members in type-group order. This is the order used
// for declaration emission and for the structural hash.
func (b *UniformBlock) Grouped() []Uniform {
	return b.grouped
}

// Hash returns the structural layout hash of the block: the CRC-32 (IEEE)
// of the concatenated type names and array counts in type-group order.
// Two blocks with identical (type, count) sequences hash equally regardless
// of member names; a caller uses the hash as a runtime compatibility check
// between a data buffer and the block's declared layout.
func (b *UniformBlock) Hash() uint32 {
	var sb strings.Builder
	for _, u := range b.Grouped() {
		sb.WriteString(u.Type.String())
		sb.WriteString(strconv.Itoa(u.Count))
	}
	return crc32.ChecksumIEEE([]byte(sb.String()))
}

// parseArraySuffix splits "type[n]" into the type token and count.
// A token without a suffix has count 1.
func parseArraySuffix(token string, line Line) (string, int, *Error) {
	open := strings.IndexByte(token, '[')
	if open == -1 {
		return token, 1, nil
	}
	rest := token[open+1:]
	if !strings.HasSuffix(rest, "]") {
		return "", 0, Errorf(KindSemantic, line.Path, line.Num,
			"malformed array suffix in '%s'", token)
	}
	count, err := strconv.Atoi(strings.TrimSuffix(rest, "]"))
	if err != nil || count < 1 {
		return "", 0, Errorf(KindSemantic, line.Path, line.Num,
			"invalid array count in '%s'", token)
	}
	return token[:open], count, nil
}
