// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"

	"github.com/gogpu/shdc/ir"
)

// Version represents a GLSL dialect version.
type Version struct {
	Major uint8
	Minor uint8
	ES    bool // true for GLSL ES (OpenGL ES / WebGL)
}

// Supported canonical dialects.
var (
	Version330   = Version{Major: 3, Minor: 30, ES: false} // OpenGL 3.3 Core
	VersionES300 = Version{Major: 3, Minor: 0, ES: true}   // ES 3.0 / WebGL 2.0
)

// Directive returns the #version line for this dialect.
func (v Version) Directive() string {
	if v.ES {
		return fmt.Sprintf("#version %d%02d es", v.Major, v.Minor)
	}
	return fmt.Sprintf("#version %d%02d", v.Major, v.Minor)
}

// Options configure source generation.
type Options struct {
	// LangVersion selects the output dialect.
	LangVersion Version
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{LangVersion: Version330}
}

// Generate synthesizes the canonical source of every vertex and fragment
// shader in the library, in insertion order, storing it on each shader.
// The library must be resolved first.
func Generate(lib *ir.Library, opts Options) {
	for _, vs := range lib.VertexShaders() {
		vs.Source = generateShader(lib, vs, opts)
	}
	for _, fs := range lib.FragmentShaders() {
		fs.Source = generateShader(lib, fs, opts)
	}
}

// Text flattens generated lines into a single source string.
func Text(lines []ir.Line) string {
	buf := make([]byte, 0, 64*len(lines))
	for _, line := range lines {
		buf = append(buf, line.Content...)
		buf = append(buf, '\n')
	}
	return string(buf)
}
