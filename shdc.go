// Package shdc compiles annotated shader source into a resolved shader
// library with canonical source text for every shader.
//
// Input files describe code blocks, uniform blocks, texture blocks, vertex
// and fragment shaders, and programs using @ directives; shader body lines
// are carried through as opaque text. Compilation runs the full pipeline:
//
//  1. Parse all sources into an ir.Library
//  2. Resolve code-block dependencies and program bindings
//  3. Validate program membership and interface signatures (if enabled)
//  4. Generate canonical GLSL source for every shader
//
// Example usage:
//
//	lib, err := shdc.Compile([]shdc.Source{{Path: "shaders.shd", Content: src}})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, prog := range lib.Programs() {
//	    vs := lib.VertexShader(prog.VS)
//	    fmt.Println(glsl.Text(vs.Source))
//	}
//
// The resolved library carries per-program bind slots and per-block layout
// hashes; translating the canonical source to backend formats and emitting
// artifacts are left to the surrounding build system.
package shdc

import (
	"fmt"

	"github.com/gogpu/shdc/glsl"
	"github.com/gogpu/shdc/ir"
	"github.com/gogpu/shdc/shd"
)

// Source is one logical input file: a path used for diagnostics and the
// raw annotated source text.
type Source struct {
	Path    string
	Content string
}

// CompileOptions configures the compilation pipeline.
type CompileOptions struct {
	// GLSL selects the canonical output dialect.
	GLSL glsl.Options

	// Validate enables the consistency checks between programs and shaders.
	Validate bool
}

// DefaultOptions returns sensible default options.
func DefaultOptions() CompileOptions {
	return CompileOptions{
		GLSL:     glsl.DefaultOptions(),
		Validate: true,
	}
}

// Compile runs the full pipeline over the given sources using default
// options and returns the resolved library.
func Compile(sources []Source) (*ir.Library, error) {
	return CompileWithOptions(sources, DefaultOptions())
}

// CompileWithOptions runs the full pipeline with custom options. Any fatal
// error aborts before source generation, so a returned library is always
// fully resolved and validated.
func CompileWithOptions(sources []Source, opts CompileOptions) (*ir.Library, error) {
	lib, err := Parse(sources)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	if err := Resolve(lib); err != nil {
		return nil, fmt.Errorf("resolve error: %w", err)
	}

	if opts.Validate {
		if errs := Validate(lib); errs.HasErrors() {
			return nil, fmt.Errorf("validation failed: %w", errs)
		}
	}

	Generate(lib, opts.GLSL)
	return lib, nil
}

// Parse parses the sources, in order, into a fresh library. Parsing stops
// at the first error.
func Parse(sources []Source) (*ir.Library, error) {
	lib := ir.NewLibrary()
	parser := shd.NewParser(lib)
	for _, src := range sources {
		if err := parser.ParseSource(src.Path, src.Content); err != nil {
			return nil, err
		}
	}
	return lib, nil
}

// Resolve runs dependency and binding resolution over a parsed library.
func Resolve(lib *ir.Library) error {
	return lib.Resolve()
}

// Validate runs the post-resolution consistency checks. All membership
// violations are collected; the first interface mismatch aborts. An empty
// list means the library is valid.
func Validate(lib *ir.Library) ir.ErrorList {
	return ir.Validate(lib)
}

// Generate synthesizes canonical source for every shader in the library.
func Generate(lib *ir.Library, opts glsl.Options) {
	glsl.Generate(lib, opts)
}
