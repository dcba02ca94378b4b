package shd

import (
	"strings"

	"github.com/gogpu/shdc/ir"
)

// Parser populates a shader library from annotated shader source. It keeps
// a focus stack of open blocks; directive handlers validate argument count
// and nesting legality before mutating the library.
type Parser struct {
	lib  *ir.Library
	path string
	line int

	// current is the innermost open block: one of *ir.CodeBlock,
	// *ir.UniformBlock, *ir.TextureBlock or *ir.Shader.
	current any
	stack   []any

	inComment bool
}

// NewParser creates a parser that populates lib.
func NewParser(lib *ir.Library) *Parser {
	return &Parser{lib: lib}
}

// ParseSource parses one logical source file. Line numbers in diagnostics
// are 1-based. A block left open at end of file is an error.
func (p *Parser) ParseSource(path, source string) error {
	p.path = path
	p.line = 0
	p.current = nil
	p.stack = p.stack[:0]
	p.inComment = false

	for _, raw := range strings.Split(source, "\n") {
		p.line++
		if err := p.parseLine(raw); err != nil {
			return err
		}
	}
	if p.inComment {
		return p.syntaxf("unterminated block comment at end of file")
	}
	if p.current != nil {
		return p.syntaxf("missing @end at end of file (in '%s'?)", blockName(p.current))
	}
	return nil
}

// parseLine strips comments, dispatches directives, and appends everything
// else as body content of the current block. Lines outside any block are
// dropped.
func (p *Parser) parseLine(raw string) *ir.Error {
	line, err := p.stripComments(raw)
	if err != nil {
		return err
	}
	if line == "" {
		return nil
	}
	isTag, err := p.parseTag(line)
	if err != nil {
		return err
	}
	if isTag || p.current == nil {
		return nil
	}
	appendLine(p.current, ir.Line{Content: line, Path: p.path, Num: p.line})
	return nil
}

// parseTag recognizes and dispatches a directive line. The tag must be the
// only content on the line besides leading whitespace, and the line must
// not contain a statement terminator.
func (p *Parser) parseTag(line string) (bool, *ir.Error) {
	at := strings.IndexByte(line, '@')
	if at == -1 {
		return false, nil
	}
	if at > 0 {
		return true, p.syntaxf("only whitespace allowed in front of tag")
	}
	if strings.IndexByte(line, ';') != -1 {
		return true, p.syntaxf("no semicolons allowed in tag lines")
	}

	fields := strings.Fields(line[1:])
	if len(fields) == 0 {
		return true, p.syntaxf("expected tag name after '@'")
	}
	tag, args := fields[0], fields[1:]

	switch tag {
	case "code_block":
		return true, p.openCodeBlock(args)
	case "uniform_block":
		return true, p.openUniformBlock(args)
	case "texture_block":
		return true, p.openTextureBlock(args)
	case "vs":
		return true, p.openShader(args, ir.StageVertex)
	case "fs":
		return true, p.openShader(args, ir.StageFragment)
	case "program":
		return true, p.declareProgram(args)
	case "in":
		return true, p.addInput(args)
	case "out":
		return true, p.addOutput(args)
	case "highp":
		return true, p.addPrecision(args)
	case "use_code_block":
		return true, p.useCodeBlocks(args)
	case "use_uniform_block":
		return true, p.useUniformBlocks(args)
	case "use_texture_block":
		return true, p.useTextureBlocks(args)
	case "end":
		return true, p.closeBlock(args)
	default:
		return true, p.syntaxf("unrecognized @ tag '%s'", tag)
	}
}

func (p *Parser) push(b any) {
	p.stack = append(p.stack, p.current)
	p.current = b
}

func (p *Parser) pop() {
	p.current = p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
}

func (p *Parser) openCodeBlock(args []string) *ir.Error {
	if len(args) != 1 {
		return p.syntaxf("@code_block must have 1 arg (name)")
	}
	if p.current != nil {
		return p.syntaxf("@code_block must be at top level (missing @end in '%s'?)", blockName(p.current))
	}
	name := args[0]
	if p.lib.CodeBlock(name) != nil {
		return p.semanticf("@code_block '%s' already defined", name)
	}
	cb := &ir.CodeBlock{Name: name}
	p.lib.AddCodeBlock(cb)
	p.push(cb)
	return nil
}

func (p *Parser) openUniformBlock(args []string) *ir.Error {
	if len(args) != 2 {
		return p.syntaxf("@uniform_block must have 2 args (name bind)")
	}
	if p.current != nil {
		return p.syntaxf("@uniform_block must be at top level (missing @end in '%s'?)", blockName(p.current))
	}
	name := args[0]
	if p.lib.UniformBlock(name) != nil {
		return p.semanticf("@uniform_block '%s' already defined", name)
	}
	ub := &ir.UniformBlock{Name: name, BindName: args[1], Path: p.path, Line: p.line}
	p.lib.AddUniformBlock(ub)
	p.push(ub)
	return nil
}

func (p *Parser) openTextureBlock(args []string) *ir.Error {
	if len(args) != 2 {
		return p.syntaxf("@texture_block must have 2 args (name bind)")
	}
	if p.current != nil {
		return p.syntaxf("@texture_block must be at top level (missing @end in '%s'?)", blockName(p.current))
	}
	name := args[0]
	if p.lib.TextureBlock(name) != nil {
		return p.semanticf("@texture_block '%s' already defined", name)
	}
	tb := &ir.TextureBlock{Name: name, BindName: args[1], Path: p.path, Line: p.line}
	p.lib.AddTextureBlock(tb)
	p.push(tb)
	return nil
}

func (p *Parser) openShader(args []string, stage ir.Stage) *ir.Error {
	if len(args) != 1 {
		return p.syntaxf("@%s must have 1 arg (name)", stage)
	}
	if p.current != nil {
		return p.syntaxf("cannot nest @%s (missing @end in '%s'?)", stage, blockName(p.current))
	}
	name := args[0]
	shader := &ir.Shader{Name: name, Stage: stage}
	if !p.lib.AddShader(shader) {
		return p.semanticf("@%s '%s' already defined", stage, name)
	}
	p.push(shader)
	return nil
}

func (p *Parser) declareProgram(args []string) *ir.Error {
	if len(args) != 3 {
		return p.syntaxf("@program must have 3 args (name vs fs)")
	}
	if p.current != nil {
		return p.syntaxf("@program must be at top level (missing @end in '%s'?)", blockName(p.current))
	}
	prog := &ir.Program{Name: args[0], VS: args[1], FS: args[2], Path: p.path, Line: p.line}
	if !p.lib.AddProgram(prog) {
		return p.semanticf("@program '%s' already defined", prog.Name)
	}
	return nil
}

func (p *Parser) addInput(args []string) *ir.Error {
	shader, ok := p.current.(*ir.Shader)
	if !ok {
		return p.syntaxf("@in must come after @vs or @fs")
	}
	if len(args) != 2 {
		return p.syntaxf("@in must have 2 args (type name)")
	}
	typ, ok := ir.ParseAttrType(args[0])
	if !ok {
		return p.semanticf("invalid 'in' type '%s', must be one of 'float,vec2,vec3,vec4'", args[0])
	}
	name := args[1]
	if shader.Stage == ir.StageVertex && !ir.ValidVertexInputName(name) {
		return p.semanticf("invalid input attribute name '%s', must be one of '%s'",
			name, strings.Join(ir.VertexInputNames, ","))
	}
	if ir.FindAttr(shader.Inputs, name) != nil {
		return p.semanticf("@in '%s' already defined in '%s'", name, shader.Name)
	}
	shader.Inputs = append(shader.Inputs, ir.Attr{Type: typ, Name: name, Path: p.path, Line: p.line})
	return nil
}

func (p *Parser) addOutput(args []string) *ir.Error {
	shader, ok := p.current.(*ir.Shader)
	if !ok || shader.Stage != ir.StageVertex {
		return p.syntaxf("@out must come after @vs")
	}
	if len(args) != 2 {
		return p.syntaxf("@out must have 2 args (type name)")
	}
	typ, ok := ir.ParseAttrType(args[0])
	if !ok {
		return p.semanticf("invalid 'out' type '%s', must be one of 'float,vec2,vec3,vec4'", args[0])
	}
	name := args[1]
	if ir.FindAttr(shader.Outputs, name) != nil {
		return p.semanticf("@out '%s' already defined in '%s'", name, shader.Name)
	}
	shader.Outputs = append(shader.Outputs, ir.Attr{Type: typ, Name: name, Path: p.path, Line: p.line})
	return nil
}

func (p *Parser) addPrecision(args []string) *ir.Error {
	shader, ok := p.current.(*ir.Shader)
	if !ok {
		return p.syntaxf("@highp must come after @vs or @fs")
	}
	if len(args) != 1 {
		return p.syntaxf("@highp must have 1 arg (type)")
	}
	shader.HighPrecision = append(shader.HighPrecision, args[0])
	return nil
}

func (p *Parser) useCodeBlocks(args []string) *ir.Error {
	if len(args) < 1 {
		return p.syntaxf("@use_code_block must have at least one arg")
	}
	switch b := p.current.(type) {
	case *ir.CodeBlock:
		for _, arg := range args {
			b.Deps = append(b.Deps, ir.Ref{Name: arg, Path: p.path, Line: p.line})
		}
	case *ir.Shader:
		for _, arg := range args {
			b.Deps = append(b.Deps, ir.Ref{Name: arg, Path: p.path, Line: p.line})
		}
	default:
		return p.syntaxf("@use_code_block must come after @code_block, @vs or @fs")
	}
	return nil
}

func (p *Parser) useUniformBlocks(args []string) *ir.Error {
	shader, ok := p.current.(*ir.Shader)
	if !ok {
		return p.syntaxf("@use_uniform_block must come after @vs or @fs")
	}
	if len(args) < 1 {
		return p.syntaxf("@use_uniform_block must have at least one arg")
	}
	for _, arg := range args {
		ub := p.lib.UniformBlock(arg)
		if ub == nil {
			return p.referencef("unknown uniform_block name '%s'", arg)
		}
		if ub.Stage != ir.StageNone && ub.Stage != shader.Stage {
			return p.semanticf("uniform_block '%s' cannot be used both in @vs and @fs", arg)
		}
		ub.Stage = shader.Stage
		shader.UniformBlockRefs = append(shader.UniformBlockRefs, ir.Ref{Name: arg, Path: p.path, Line: p.line})
		shader.UniformBlocks = append(shader.UniformBlocks, ub)
	}
	return nil
}

func (p *Parser) useTextureBlocks(args []string) *ir.Error {
	shader, ok := p.current.(*ir.Shader)
	if !ok {
		return p.syntaxf("@use_texture_block must come after @vs or @fs")
	}
	if len(args) < 1 {
		return p.syntaxf("@use_texture_block must have at least one arg")
	}
	for _, arg := range args {
		tb := p.lib.TextureBlock(arg)
		if tb == nil {
			return p.referencef("unknown texture_block name '%s'", arg)
		}
		if tb.Stage != ir.StageNone && tb.Stage != shader.Stage {
			return p.semanticf("texture_block '%s' cannot be used both in @vs and @fs", arg)
		}
		tb.Stage = shader.Stage
		shader.TextureBlockRefs = append(shader.TextureBlockRefs, ir.Ref{Name: arg, Path: p.path, Line: p.line})
		shader.TextureBlocks = append(shader.TextureBlocks, tb)
	}
	return nil
}

// closeBlock seals and pops the current block. Uniform and texture blocks
// parse their accumulated member lines here; code blocks and shaders must
// have at least one body line.
func (p *Parser) closeBlock(args []string) *ir.Error {
	if p.current == nil {
		return p.syntaxf("@end must come after @code_block, @uniform_block, @texture_block, @vs or @fs")
	}
	if len(args) != 0 {
		return p.syntaxf("@end must not have arguments")
	}
	switch b := p.current.(type) {
	case *ir.CodeBlock:
		if len(b.Lines) == 0 {
			return p.syntaxf("no source code lines in @code_block, @vs or @fs section")
		}
	case *ir.Shader:
		if len(b.Lines) == 0 {
			return p.syntaxf("no source code lines in @code_block, @vs or @fs section")
		}
	case *ir.UniformBlock:
		if err := b.ParseLines(); err != nil {
			return err
		}
	case *ir.TextureBlock:
		if err := b.ParseLines(); err != nil {
			return err
		}
	}
	p.pop()
	return nil
}

// appendLine adds a body line to the open block.
func appendLine(b any, line ir.Line) {
	switch blk := b.(type) {
	case *ir.CodeBlock:
		blk.Lines = append(blk.Lines, line)
	case *ir.UniformBlock:
		blk.Lines = append(blk.Lines, line)
	case *ir.TextureBlock:
		blk.Lines = append(blk.Lines, line)
	case *ir.Shader:
		blk.Lines = append(blk.Lines, line)
	}
}

// blockName names the open block for "missing @end" diagnostics.
func blockName(b any) string {
	switch blk := b.(type) {
	case *ir.CodeBlock:
		return blk.Name
	case *ir.UniformBlock:
		return blk.Name
	case *ir.TextureBlock:
		return blk.Name
	case *ir.Shader:
		return blk.Name
	default:
		return "?"
	}
}

func (p *Parser) syntaxf(format string, args ...any) *ir.Error {
	return ir.Errorf(ir.KindSyntax, p.path, p.line, format, args...)
}

func (p *Parser) semanticf(format string, args ...any) *ir.Error {
	return ir.Errorf(ir.KindSemantic, p.path, p.line, format, args...)
}

func (p *Parser) referencef(format string, args ...any) *ir.Error {
	return ir.Errorf(ir.KindReference, p.path, p.line, format, args...)
}
