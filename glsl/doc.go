// Package glsl generates canonical baseline shader source from a resolved
// shader library.
//
// The generated text is the single input handed to backend-specific
// translation (SPIR-V cross-compilation, HLSL, MSL), which is not part of
// this module. For each shader the writer emits a version directive,
// uniform and texture declarations, the declared inputs and outputs, the
// resolved code-block bodies leaf-first, and the shader body wrapped in an
// entry-point function. Every emitted line keeps the file and line number
// it originated from so downstream diagnostics can point back at the
// annotated source.
package glsl
