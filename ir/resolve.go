package ir

// Resolve runs the post-parse resolution passes over the whole library:
// transitive code-block dependencies for every shader, then block gathering
// and bind-slot assignment for every program. Resolving an already resolved
// library yields identical results.
func (l *Library) Resolve() error {
	for _, vs := range l.vertexShaderList {
		if err := l.resolveShaderDeps(vs); err != nil {
			return err
		}
	}
	for _, fs := range l.fragmentShaderList {
		if err := l.resolveShaderDeps(fs); err != nil {
			return err
		}
	}
	for _, prog := range l.programList {
		if err := l.resolveProgramBlocks(prog); err != nil {
			return err
		}
		assignBindSlots(prog)
	}
	return nil
}

// resolveShaderDeps flattens the shader's transitive code-block references
// into ResolvedDeps. The walk is depth-first pre-order and appends every
// visited name including repeats; duplicates are then removed keeping the
// first occurrence, and the result reversed so that the lowest-level
// dependency comes first.
func (l *Library) resolveShaderDeps(s *Shader) *Error {
	s.ResolvedDeps = s.ResolvedDeps[:0]

	// onPath guards against cyclic dependency graphs, which would
	// otherwise recurse forever.
	onPath := make(map[string]struct{})

	var walk func(dep Ref) *Error
	walk = func(dep Ref) *Error {
		cb := l.codeBlocks[dep.Name]
		if cb == nil {
			return Errorf(KindReference, dep.Path, dep.Line,
				"unknown code_block dependency '%s'", dep.Name)
		}
		if _, open := onPath[dep.Name]; open {
			return Errorf(KindCycle, dep.Path, dep.Line,
				"cyclic code_block dependency on '%s'", dep.Name)
		}
		s.ResolvedDeps = append(s.ResolvedDeps, dep.Name)
		onPath[dep.Name] = struct{}{}
		for _, next := range cb.Deps {
			if err := walk(next); err != nil {
				return err
			}
		}
		delete(onPath, dep.Name)
		return nil
	}

	for _, dep := range s.Deps {
		if err := walk(dep); err != nil {
			return err
		}
	}

	s.ResolvedDeps = dedupeReverse(s.ResolvedDeps)
	return nil
}

// dedupeReverse removes duplicates keeping the first occurrence scanning
// front-to-back, then reverses the list.
func dedupeReverse(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	deduped := make([]string, 0, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		deduped = append(deduped, name)
	}
	for i, j := 0, len(deduped)-1; i < j; i, j = i+1, j-1 {
		deduped[i], deduped[j] = deduped[j], deduped[i]
	}
	return deduped
}

// resolveProgramBlocks gathers the uniform and texture blocks referenced by
// the program's shaders, vertex shader first, skipping blocks already
// gathered so that first-use order is preserved.
func (l *Library) resolveProgramBlocks(p *Program) *Error {
	p.UniformBlocks = p.UniformBlocks[:0]
	p.TextureBlocks = p.TextureBlocks[:0]

	vs := l.vertexShaders[p.VS]
	if vs == nil {
		return Errorf(KindReference, p.Path, p.Line,
			"unknown vertex shader '%s'", p.VS)
	}
	fs := l.fragmentShaders[p.FS]
	if fs == nil {
		return Errorf(KindReference, p.Path, p.Line,
			"unknown fragment shader '%s'", p.FS)
	}

	for _, shd := range [...]*Shader{vs, fs} {
		for _, ref := range shd.UniformBlockRefs {
			ub := l.uniformBlocks[ref.Name]
			if ub == nil {
				return Errorf(KindReference, ref.Path, ref.Line,
					"uniform_block '%s' not found", ref.Name)
			}
			if !containsUniformBlock(p.UniformBlocks, ub.Name) {
				p.UniformBlocks = append(p.UniformBlocks, ub)
			}
		}
		for _, ref := range shd.TextureBlockRefs {
			tb := l.textureBlocks[ref.Name]
			if tb == nil {
				return Errorf(KindReference, ref.Path, ref.Line,
					"texture_block '%s' not found", ref.Name)
			}
			if !containsTextureBlock(p.TextureBlocks, tb.Name) {
				p.TextureBlocks = append(p.TextureBlocks, tb)
			}
		}
	}
	return nil
}

func containsUniformBlock(list []*UniformBlock, name string) bool {
	for _, ub := range list {
		if ub.Name == name {
			return true
		}
	}
	return false
}

func containsTextureBlock(list []*TextureBlock, name string) bool {
	for _, tb := range list {
		if tb.Name == name {
			return true
		}
	}
	return false
}

// assignBindSlots assigns zero-based slot indices to the program's uniform
// blocks and to the textures inside its texture blocks. Each shader stage
// counts its own slots, so slot numbering only depends on first-use order
// at the program level.
func assignBindSlots(p *Program) {
	vsUBSlot, fsUBSlot := 0, 0
	for _, ub := range p.UniformBlocks {
		if ub.Stage == StageVertex {
			ub.Slot = vsUBSlot
			vsUBSlot++
		} else {
			ub.Slot = fsUBSlot
			fsUBSlot++
		}
	}
	vsTexSlot, fsTexSlot := 0, 0
	for _, tb := range p.TextureBlocks {
		if tb.Stage == StageVertex {
			for i := range tb.Textures {
				tb.Textures[i].Slot = vsTexSlot
				vsTexSlot++
			}
		} else {
			for i := range tb.Textures {
				tb.Textures[i].Slot = fsTexSlot
				fsTexSlot++
			}
		}
	}
}
