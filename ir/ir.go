package ir

// Line is a single source line with its originating file and line number.
// Provenance is carried on every parsed line and survives into generated
// output for diagnostics.
type Line struct {
	Content string
	Path    string
	Num     int
}

// Ref is an unresolved by-name reference to another entity, with the
// location where the reference was requested.
type Ref struct {
	Name string
	Path string
	Line int
}

// Stage identifies the shader stage a resource is bound to.
type Stage uint8

const (
	// StageNone marks a block that has not been used by any shader yet.
	StageNone Stage = iota
	// StageVertex is the vertex shader stage.
	StageVertex
	// StageFragment is the fragment shader stage.
	StageFragment
)

// String returns the tag-language name of the stage.
func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vs"
	case StageFragment:
		return "fs"
	default:
		return "none"
	}
}

// AttrType is the type of a shader input or output attribute.
type AttrType uint8

const (
	AttrFloat AttrType = iota
	AttrVec2
	AttrVec3
	AttrVec4
)

var attrTypeNames = [...]string{"float", "vec2", "vec3", "vec4"}

// String returns the GLSL name of the attribute type.
func (t AttrType) String() string {
	if int(t) < len(attrTypeNames) {
		return attrTypeNames[t]
	}
	return "invalid"
}

// ParseAttrType maps a source token to an attribute type.
func ParseAttrType(s string) (AttrType, bool) {
	for i, name := range attrTypeNames {
		if s == name {
			return AttrType(i), true
		}
	}
	return 0, false
}

// Attr is a shader input or output attribute. Two attributes are equal iff
// both type and name match.
type Attr struct {
	Type AttrType
	Name string
	Path string
	Line int
}

// Matches reports whether two attributes have the same type and name,
// ignoring source location.
func (a Attr) Matches(other Attr) bool {
	return a.Type == other.Type && a.Name == other.Name
}

// VertexInputNames is the fixed whitelist of semantic vertex input
// attribute names.
var VertexInputNames = []string{
	"position", "normal", "texcoord0", "texcoord1", "texcoord2", "texcoord3",
	"tangent", "binormal", "weights", "indices", "color0", "color1",
	"instance0", "instance1", "instance2", "instance3",
}

// ValidVertexInputName reports whether name is a legal vertex input slot.
func ValidVertexInputName(name string) bool {
	for _, n := range VertexInputNames {
		if n == name {
			return true
		}
	}
	return false
}

// CodeBlock is a named, reusable fragment of shader body text, includable
// by shaders or other code blocks. Immutable once closed by the parser.
type CodeBlock struct {
	Name  string
	Lines []Line
	Deps  []Ref
}

// Shader is a vertex or fragment shader, selected by Stage.
type Shader struct {
	Name  string
	Stage Stage
	Lines []Line

	// HighPrecision holds type names accumulated from @highp directives,
	// consumed by the ES flavor of the source generator.
	HighPrecision []string

	Inputs  []Attr
	Outputs []Attr

	// Deps are the unresolved @use_code_block references.
	Deps []Ref

	UniformBlockRefs []Ref
	UniformBlocks    []*UniformBlock
	TextureBlockRefs []Ref
	TextureBlocks    []*TextureBlock

	// ResolvedDeps is the leaf-first, deduplicated transitive code-block
	// dependency list, populated by Resolve.
	ResolvedDeps []string

	// Source is the generated canonical source, populated after resolution.
	Source []Line
}

// FindAttr returns the attribute with the given name, or nil.
func FindAttr(attrs []Attr, name string) *Attr {
	for i := range attrs {
		if attrs[i].Name == name {
			return &attrs[i]
		}
	}
	return nil
}

// Program pairs a vertex shader with a fragment shader and owns the
// resolved block lists used by either of them.
type Program struct {
	Name string
	VS   string
	FS   string

	UniformBlocks []*UniformBlock
	TextureBlocks []*TextureBlock

	Path string
	Line int
}

// Library owns all parsed entities, keyed by unique name within each
// category. Iteration over a category follows insertion order.
type Library struct {
	codeBlocks    map[string]*CodeBlock
	codeBlockList []*CodeBlock

	uniformBlocks    map[string]*UniformBlock
	uniformBlockList []*UniformBlock

	textureBlocks    map[string]*TextureBlock
	textureBlockList []*TextureBlock

	vertexShaders    map[string]*Shader
	vertexShaderList []*Shader

	fragmentShaders    map[string]*Shader
	fragmentShaderList []*Shader

	programs    map[string]*Program
	programList []*Program
}

// NewLibrary creates an empty shader library.
func NewLibrary() *Library {
	return &Library{
		codeBlocks:      make(map[string]*CodeBlock),
		uniformBlocks:   make(map[string]*UniformBlock),
		textureBlocks:   make(map[string]*TextureBlock),
		vertexShaders:   make(map[string]*Shader),
		fragmentShaders: make(map[string]*Shader),
		programs:        make(map[string]*Program),
	}
}

// AddCodeBlock registers a code block. Returns false if the name is taken.
func (l *Library) AddCodeBlock(cb *CodeBlock) bool {
	if _, exists := l.codeBlocks[cb.Name]; exists {
		return false
	}
	l.codeBlocks[cb.Name] = cb
	l.codeBlockList = append(l.codeBlockList, cb)
	return true
}

// AddUniformBlock registers a uniform block. Returns false on duplicate.
func (l *Library) AddUniformBlock(ub *UniformBlock) bool {
	if _, exists := l.uniformBlocks[ub.Name]; exists {
		return false
	}
	l.uniformBlocks[ub.Name] = ub
	l.uniformBlockList = append(l.uniformBlockList, ub)
	return true
}

// AddTextureBlock registers a texture block. Returns false on duplicate.
func (l *Library) AddTextureBlock(tb *TextureBlock) bool {
	if _, exists := l.textureBlocks[tb.Name]; exists {
		return false
	}
	l.textureBlocks[tb.Name] = tb
	l.textureBlockList = append(l.textureBlockList, tb)
	return true
}

// AddShader registers a vertex or fragment shader under its stage's
// category. Returns false on duplicate within that category.
func (l *Library) AddShader(s *Shader) bool {
	switch s.Stage {
	case StageVertex:
		if _, exists := l.vertexShaders[s.Name]; exists {
			return false
		}
		l.vertexShaders[s.Name] = s
		l.vertexShaderList = append(l.vertexShaderList, s)
	case StageFragment:
		if _, exists := l.fragmentShaders[s.Name]; exists {
			return false
		}
		l.fragmentShaders[s.Name] = s
		l.fragmentShaderList = append(l.fragmentShaderList, s)
	default:
		return false
	}
	return true
}

// AddProgram registers a program. Returns false on duplicate.
func (l *Library) AddProgram(p *Program) bool {
	if _, exists := l.programs[p.Name]; exists {
		return false
	}
	l.programs[p.Name] = p
	l.programList = append(l.programList, p)
	return true
}

// CodeBlock returns the code block with the given name, or nil.
func (l *Library) CodeBlock(name string) *CodeBlock { return l.codeBlocks[name] }

// UniformBlock returns the uniform block with the given name, or nil.
func (l *Library) UniformBlock(name string) *UniformBlock { return l.uniformBlocks[name] }

// TextureBlock returns the texture block with the given name, or nil.
func (l *Library) TextureBlock(name string) *TextureBlock { return l.textureBlocks[name] }

// VertexShader returns the vertex shader with the given name, or nil.
func (l *Library) VertexShader(name string) *Shader { return l.vertexShaders[name] }

// FragmentShader returns the fragment shader with the given name, or nil.
func (l *Library) FragmentShader(name string) *Shader { return l.fragmentShaders[name] }

// Program returns the program with the given name, or nil.
func (l *Library) Program(name string) *Program { return l.programs[name] }

// CodeBlocks returns all code blocks in insertion order.
func (l *Library) CodeBlocks() []*CodeBlock { return l.codeBlockList }

// UniformBlocks returns all uniform blocks in insertion order.
func (l *Library) UniformBlocks() []*UniformBlock { return l.uniformBlockList }

// TextureBlocks returns all texture blocks in insertion order.
func (l *Library) TextureBlocks() []*TextureBlock { return l.textureBlockList }

// VertexShaders returns all vertex shaders in insertion order.
func (l *Library) VertexShaders() []*Shader { return l.vertexShaderList }

// FragmentShaders returns all fragment shaders in insertion order.
func (l *Library) FragmentShaders() []*Shader { return l.fragmentShaderList }

// Programs returns all programs in insertion order.
func (l *Library) Programs() []*Program { return l.programList }
