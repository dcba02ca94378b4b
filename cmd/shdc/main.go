// Command shdc compiles annotated shader libraries.
//
// Usage:
//
//	shdc [options] <input.shd>...
//
// Examples:
//
//	shdc shaders.shd                 # Parse, resolve and validate
//	shdc -dump shaders.shd           # Also print generated GLSL
//	shdc -es common.shd shaders.shd  # Generate GLSL ES 3.0
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gogpu/shdc"
	"github.com/gogpu/shdc/glsl"
)

var (
	dump     = flag.Bool("dump", false, "print generated canonical source")
	es       = flag.Bool("es", false, "generate GLSL ES 3.0 instead of GLSL 330")
	validate = flag.Bool("validate", true, "run consistency validation")
	version  = flag.Bool("version", false, "print version")
)

const shdcVersion = "0.1.0-dev"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *version {
		fmt.Printf("shdc version %s\n", shdcVersion)
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: no input files specified")
		usage()
		os.Exit(1)
	}

	sources := make([]shdc.Source, 0, len(args))
	for _, path := range args {
		content, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
			os.Exit(1)
		}
		sources = append(sources, shdc.Source{Path: path, Content: string(content)})
	}

	opts := shdc.DefaultOptions()
	opts.Validate = *validate
	if *es {
		opts.GLSL.LangVersion = glsl.VersionES300
	}

	lib, err := shdc.CompileWithOptions(sources, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Compilation error: %v\n", err)
		os.Exit(1)
	}

	for _, prog := range lib.Programs() {
		vs := lib.VertexShader(prog.VS)
		fs := lib.FragmentShader(prog.FS)
		fmt.Printf("program %s: vs=%s fs=%s", prog.Name, vs.Name, fs.Name)
		for _, ub := range prog.UniformBlocks {
			fmt.Printf(" %s(slot=%d,hash=0x%08x)", ub.Name, ub.Slot, ub.Hash())
		}
		fmt.Println()
		if *dump {
			fmt.Printf("--- %s (vs)\n%s", vs.Name, glsl.Text(vs.Source))
			fmt.Printf("--- %s (fs)\n%s", fs.Name, glsl.Text(fs.Source))
		}
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: shdc [options] <input.shd>...\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
}
