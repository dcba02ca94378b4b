package ir

import (
	"testing"
)

func sealUniformBlock(t *testing.T, name string, members ...string) *UniformBlock {
	t.Helper()
	ub := &UniformBlock{Name: name, BindName: name, Path: "test.shd", Line: 1}
	for i, m := range members {
		ub.Lines = append(ub.Lines, Line{Content: m, Path: "test.shd", Num: 2 + i})
	}
	if err := ub.ParseLines(); err != nil {
		t.Fatalf("ParseLines failed: %v", err)
	}
	return ub
}

func TestUniformBlockHashIgnoresNames(t *testing.T) {
	a := sealUniformBlock(t, "Params", "vec4 color bcolor", "float intensity bintensity")
	b := sealUniformBlock(t, "Other", "vec4 x y", "float z w")
	if a.Hash() != b.Hash() {
		t.Errorf("Hashes differ for identical layouts: 0x%08x vs 0x%08x", a.Hash(), b.Hash())
	}
}

func TestUniformBlockHashSensitivity(t *testing.T) {
	base := sealUniformBlock(t, "a", "vec4 v V", "float f F")

	changedType := sealUniformBlock(t, "b", "vec3 v V", "float f F")
	if base.Hash() == changedType.Hash() {
		t.Error("Hash unchanged after member type change")
	}

	changedCount := sealUniformBlock(t, "c", "vec4[2] v V", "float f F")
	if base.Hash() == changedCount.Hash() {
		t.Error("Hash unchanged after array count change")
	}

	extraMember := sealUniformBlock(t, "d", "vec4 v V", "float f F", "int i I")
	if base.Hash() == extraMember.Hash() {
		t.Error("Hash unchanged after adding a member")
	}
}

func TestUniformBlockHashNormalizesDeclarationOrder(t *testing.T) {
	// Grouping orders members mat4 before float regardless of how they
	// were declared, so both blocks have the same layout.
	a := sealUniformBlock(t, "a", "float f F", "mat4 m M")
	b := sealUniformBlock(t, "b", "mat4 m M", "float f F")
	if a.Hash() != b.Hash() {
		t.Errorf("Hashes differ for same grouped layout: 0x%08x vs 0x%08x", a.Hash(), b.Hash())
	}
}

func TestUniformBlockGroupedOrder(t *testing.T) {
	ub := sealUniformBlock(t, "a",
		"bool flag Flag",
		"vec2 uvScale UVScale",
		"mat4 mvp MVP",
		"vec4 tint Tint",
		"mat3 nrm Nrm",
	)
	grouped := ub.Grouped()
	want := []UniformType{UniformMat4, UniformMat3, UniformVec4, UniformVec2, UniformBool}
	if len(grouped) != len(want) {
		t.Fatalf("grouped members = %d, want %d", len(grouped), len(want))
	}
	for i, u := range grouped {
		if u.Type != want[i] {
			t.Errorf("grouped[%d] type = %v, want %v", i, u.Type, want[i])
		}
	}
	// Declaration order is preserved in Uniforms.
	if ub.Uniforms[0].Name != "flag" || ub.Uniforms[4].Name != "nrm" {
		t.Errorf("declaration order not preserved: %+v", ub.Uniforms)
	}
}

func TestParseArraySuffixErrors(t *testing.T) {
	tests := []struct {
		member string
	}{
		{"mat4[ m M"},
		{"mat4[x] m M"},
		{"mat4[0] m M"},
		{"mat4[-1] m M"},
	}
	for _, tt := range tests {
		ub := &UniformBlock{Name: "ub", Lines: []Line{{Content: tt.member, Path: "t", Num: 1}}}
		if err := ub.ParseLines(); err == nil {
			t.Errorf("ParseLines(%q): expected error, got none", tt.member)
		}
	}
}

func TestUniformTypeRoundTrip(t *testing.T) {
	for _, name := range UniformTypeNames() {
		typ, ok := ParseUniformType(name)
		if !ok {
			t.Errorf("ParseUniformType(%q) failed", name)
			continue
		}
		if typ.String() != name {
			t.Errorf("String() = %q, want %q", typ.String(), name)
		}
	}
	if _, ok := ParseUniformType("double"); ok {
		t.Error("ParseUniformType accepted unknown type")
	}
}

func TestSamplerTypeRoundTrip(t *testing.T) {
	names := []string{"sampler2D", "samplerCube", "sampler3D", "sampler2DArray"}
	for _, name := range names {
		typ, ok := ParseSamplerType(name)
		if !ok {
			t.Errorf("ParseSamplerType(%q) failed", name)
			continue
		}
		if typ.String() != name {
			t.Errorf("String() = %q, want %q", typ.String(), name)
		}
	}
	if _, ok := ParseSamplerType("sampler1D"); ok {
		t.Error("ParseSamplerType accepted unknown type")
	}
}
