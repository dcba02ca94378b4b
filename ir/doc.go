// Package ir defines the resolved representation of a shader library.
//
// The library is the single source of truth for everything the tag parser
// produces: code blocks, uniform blocks, texture blocks, vertex and fragment
// shaders, and programs, each keyed by a unique name within its category.
//
// # Structure
//
// A Library is populated append-only during parsing, then enriched in place
// by the resolution passes:
//   - Resolve: flattens transitive code-block dependencies into a leaf-first
//     list per shader, gathers the uniform/texture blocks of every program
//     and assigns per-stage bind slots.
//   - Validate: checks program membership of every shader and exact
//     vertex-output / fragment-input signature matches.
//
// Entities are never removed; the whole structure is discarded after one
// compilation run.
//
// # Translation Pipeline
//
// The typical pipeline is:
//
//	Annotated source → tag parser → Library → Resolve → Validate → glsl
//
// All iteration over categories happens in insertion order so that generated
// output is reproducible.
package ir
