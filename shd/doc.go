// Package shd parses annotated shader source in the tag DSL.
//
// A source file is a sequence of lines. A line whose first non-whitespace
// character is '@' is a directive; every other line is body content of the
// currently open block. Blocks are opened by @code_block, @uniform_block,
// @texture_block, @vs and @fs, and closed by @end. @program is a
// single-line directive at top level.
//
// Comments use the C syntax: // to end of line, and /* ... */ which may
// span lines. Comments are stripped before directive recognition, and
// every surviving line keeps its originating file and line number.
//
// The parser populates an ir.Library; it performs no resolution beyond
// checking the validity of @use_uniform_block and @use_texture_block
// references, whose targets must already be defined.
package shd
