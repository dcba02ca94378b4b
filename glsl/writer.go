// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"

	"github.com/gogpu/shdc/ir"
)

// writer accumulates the generated line sequence for one shader.
type writer struct {
	lib   *ir.Library
	opts  Options
	lines []ir.Line
}

func generateShader(lib *ir.Library, shader *ir.Shader, opts Options) []ir.Line {
	w := &writer{lib: lib, opts: opts}

	w.emit(opts.LangVersion.Directive(), "", 0)
	if opts.LangVersion.ES {
		w.writePrecision(shader)
	}
	w.writeUniformBlocks(shader)
	w.writeTextureBlocks(shader)
	for _, in := range shader.Inputs {
		w.emit(fmt.Sprintf("in %s %s;", in.Type, in.Name), in.Path, in.Line)
	}
	for _, out := range shader.Outputs {
		w.emit(fmt.Sprintf("out %s %s;", out.Type, out.Name), out.Path, out.Line)
	}
	w.writeDeps(shader)
	w.writeBody(shader)

	return w.lines
}

func (w *writer) emit(content, path string, num int) {
	w.lines = append(w.lines, ir.Line{Content: content, Path: path, Num: num})
}

// writePrecision emits default precision statements for ES dialects, one
// per @highp hint accumulated on the shader.
func (w *writer) writePrecision(shader *ir.Shader) {
	for _, typ := range shader.HighPrecision {
		w.emit(fmt.Sprintf("precision highp %s;", typ), "", 0)
	}
}

// writeUniformBlocks declares the shader's uniform blocks, members in
// type-group order, arrays annotated with their count.
func (w *writer) writeUniformBlocks(shader *ir.Shader) {
	for _, ub := range shader.UniformBlocks {
		w.emit(fmt.Sprintf("uniform %s {", ub.Name), ub.Path, ub.Line)
		for _, u := range ub.Grouped() {
			if u.Count == 1 {
				w.emit(fmt.Sprintf("    %s %s;", u.Type, u.Name), u.Path, u.Line)
			} else {
				w.emit(fmt.Sprintf("    %s %s[%d];", u.Type, u.Name, u.Count), u.Path, u.Line)
			}
		}
		w.emit("};", "", 0)
	}
}

// writeTextureBlocks declares the shader's textures as flat uniforms.
func (w *writer) writeTextureBlocks(shader *ir.Shader) {
	for _, tb := range shader.TextureBlocks {
		for _, tex := range tb.Textures {
			w.emit(fmt.Sprintf("uniform %s %s;", tex.Type, tex.Name), tex.Path, tex.Line)
		}
	}
}

// writeDeps concatenates the bodies of the shader's resolved code blocks,
// leaf-first, so every block only refers to blocks emitted before it.
func (w *writer) writeDeps(shader *ir.Shader) {
	for _, name := range shader.ResolvedDeps {
		cb := w.lib.CodeBlock(name)
		if cb == nil {
			continue
		}
		w.lines = append(w.lines, cb.Lines...)
	}
}

// writeBody wraps the shader's own body in the entry-point function. The
// braces carry the provenance of the first and last body line.
func (w *writer) writeBody(shader *ir.Shader) {
	first := shader.Lines[0]
	last := shader.Lines[len(shader.Lines)-1]
	w.emit("void main() {", first.Path, first.Num)
	w.lines = append(w.lines, shader.Lines...)
	w.emit("}", last.Path, last.Num)
}
