package ir

import (
	"strings"
	"testing"
)

func attr(typeName, name string, line int) Attr {
	typ, ok := ParseAttrType(typeName)
	if !ok {
		panic("bad attr type " + typeName)
	}
	return Attr{Type: typ, Name: name, Path: "test.shd", Line: line}
}

func TestValidateMatchingInterfaces(t *testing.T) {
	lib := NewLibrary()
	vs := addShader(lib, "v", StageVertex)
	vs.Outputs = []Attr{attr("vec2", "uv", 3), attr("vec4", "color", 4)}
	fs := addShader(lib, "f", StageFragment)
	fs.Inputs = []Attr{attr("vec2", "uv", 10), attr("vec4", "color", 11)}
	lib.AddProgram(&Program{Name: "p", VS: "v", FS: "f"})

	if errs := Validate(lib); errs.HasErrors() {
		t.Errorf("Expected no errors, got: %v", errs)
	}
}

func TestValidateUnreferencedShaders(t *testing.T) {
	lib := NewLibrary()
	addShader(lib, "used", StageVertex)
	orphanVS := addShader(lib, "orphanVS", StageVertex)
	orphanVS.Lines = []Line{{Content: "body;", Path: "orphan.shd", Num: 42}}
	addShader(lib, "f", StageFragment)
	lib.AddProgram(&Program{Name: "p", VS: "used", FS: "f"})

	errs := Validate(lib)
	if len(errs) != 1 {
		t.Fatalf("errors = %d, want 1: %v", len(errs), errs)
	}
	e := errs[0]
	if e.Kind != KindConsistency {
		t.Errorf("Error kind = %v, want consistency", e.Kind)
	}
	if !strings.Contains(e.Message, "'orphanVS' is not part of a program") {
		t.Errorf("Unexpected message: %q", e.Message)
	}
	if e.Path != "orphan.shd" || e.Line != 42 {
		t.Errorf("Error location = %s:%d, want orphan.shd:42", e.Path, e.Line)
	}
}

func TestValidateCollectsAllUnreferencedShaders(t *testing.T) {
	lib := NewLibrary()
	addShader(lib, "v", StageVertex)
	addShader(lib, "orphanV", StageVertex)
	addShader(lib, "f", StageFragment)
	addShader(lib, "orphanF", StageFragment)
	lib.AddProgram(&Program{Name: "p", VS: "v", FS: "f"})

	errs := Validate(lib)
	if len(errs) != 2 {
		t.Fatalf("errors = %d, want 2: %v", len(errs), errs)
	}
}

func TestValidateAttrTypeMismatch(t *testing.T) {
	// vs declares `out vec4 color`, fs declares `in vec3 color`: the
	// program must fail interface matching before generation.
	lib := NewLibrary()
	vs := addShader(lib, "v", StageVertex)
	vs.Outputs = []Attr{attr("vec4", "color", 5)}
	fs := addShader(lib, "f", StageFragment)
	fs.Inputs = []Attr{attr("vec3", "color", 12)}
	lib.AddProgram(&Program{Name: "p", VS: "v", FS: "f"})

	errs := Validate(lib)
	if len(errs) != 2 {
		t.Fatalf("errors = %d, want 2 (both sides reported): %v", len(errs), errs)
	}
	if errs[0].Line != 12 || !strings.Contains(errs[0].Message, "fs input doesn't match") {
		t.Errorf("unexpected fs-side error: %v", errs[0])
	}
	if errs[1].Line != 5 || !strings.Contains(errs[1].Message, "vs output doesn't match") {
		t.Errorf("unexpected vs-side error: %v", errs[1])
	}
}

func TestValidateAttrNameMismatch(t *testing.T) {
	lib := NewLibrary()
	vs := addShader(lib, "v", StageVertex)
	vs.Outputs = []Attr{attr("vec2", "uv", 5)}
	fs := addShader(lib, "f", StageFragment)
	fs.Inputs = []Attr{attr("vec2", "texUV", 12)}
	lib.AddProgram(&Program{Name: "p", VS: "v", FS: "f"})

	if errs := Validate(lib); !errs.HasErrors() {
		t.Error("Expected name mismatch error, got none")
	}
}

func TestValidateAttrCountMismatch(t *testing.T) {
	lib := NewLibrary()
	vs := addShader(lib, "v", StageVertex)
	vs.Outputs = []Attr{attr("vec2", "uv", 5), attr("vec4", "color", 6)}
	fs := addShader(lib, "f", StageFragment)
	fs.Inputs = []Attr{attr("vec2", "uv", 12)}
	lib.AddProgram(&Program{Name: "p", VS: "v", FS: "f"})

	errs := Validate(lib)
	if len(errs) != 2 {
		t.Fatalf("errors = %d, want 2: %v", len(errs), errs)
	}
	if !strings.Contains(errs[0].Message, "number of fs inputs") {
		t.Errorf("unexpected first error: %v", errs[0])
	}
	if !strings.Contains(errs[1].Message, "number of vs outputs") {
		t.Errorf("unexpected second error: %v", errs[1])
	}
}

func TestValidateCountMismatchEmptySide(t *testing.T) {
	// With no fs inputs at all, only the vs side carries a location.
	lib := NewLibrary()
	vs := addShader(lib, "v", StageVertex)
	vs.Outputs = []Attr{attr("vec2", "uv", 5)}
	addShader(lib, "f", StageFragment)
	lib.AddProgram(&Program{Name: "p", VS: "v", FS: "f"})

	errs := Validate(lib)
	if len(errs) != 1 {
		t.Fatalf("errors = %d, want 1: %v", len(errs), errs)
	}
	if errs[0].Line != 5 {
		t.Errorf("error line = %d, want 5", errs[0].Line)
	}
}

func TestValidateInterfaceMismatchAborts(t *testing.T) {
	// The first mismatching program stops validation; the second broken
	// program is not reported.
	lib := NewLibrary()
	vs1 := addShader(lib, "v1", StageVertex)
	vs1.Outputs = []Attr{attr("vec4", "color", 5)}
	fs1 := addShader(lib, "f1", StageFragment)
	fs1.Inputs = []Attr{attr("vec3", "color", 12)}
	vs2 := addShader(lib, "v2", StageVertex)
	vs2.Outputs = []Attr{attr("vec2", "uv", 20)}
	fs2 := addShader(lib, "f2", StageFragment)
	fs2.Inputs = []Attr{attr("vec4", "uv", 30)}
	lib.AddProgram(&Program{Name: "p1", VS: "v1", FS: "f1"})
	lib.AddProgram(&Program{Name: "p2", VS: "v2", FS: "f2"})

	errs := Validate(lib)
	if len(errs) != 2 {
		t.Fatalf("errors = %d, want 2 (first program only): %v", len(errs), errs)
	}
	for _, e := range errs {
		if e.Line == 20 || e.Line == 30 {
			t.Errorf("second program reported after abort: %v", e)
		}
	}
}

func TestErrorFormatting(t *testing.T) {
	e := Errorf(KindSemantic, "lib.shd", 9, "uniform '%s' already defined", "mvp")
	if e.Error() != "lib.shd:9: uniform 'mvp' already defined" {
		t.Errorf("Error() = %q", e.Error())
	}

	bare := &Error{Kind: KindConsistency, Message: "boom"}
	if bare.Error() != "boom" {
		t.Errorf("Error() = %q", bare.Error())
	}

	var list ErrorList
	if list.HasErrors() {
		t.Error("empty list reports errors")
	}
	list.Add(e)
	if list.Error() != e.Error() {
		t.Errorf("single-element list Error() = %q", list.Error())
	}
	list.Add(bare)
	if !strings.Contains(list.Error(), "and 1 more errors") {
		t.Errorf("multi-element list Error() = %q", list.Error())
	}
}
