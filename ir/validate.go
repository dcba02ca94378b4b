package ir

// Validate runs the consistency checks that require a resolved library:
//
//   - membership: every vertex and fragment shader must be part of at least
//     one program. Violations are collected so that all unreferenced shaders
//     are reported in one run.
//   - interface matching: a program's vertex shader outputs must match its
//     fragment shader inputs exactly in count, order, type and name. This is
//     a hard linker requirement on some backends, even when the fragment
//     shader ignores part of the vertex output. The first mismatching
//     program aborts validation.
//
// Returns the collected errors; an empty list means the library is valid.
func Validate(l *Library) ErrorList {
	var errs ErrorList

	for _, vs := range l.vertexShaderList {
		if !l.shaderInProgram(vs.Name, StageVertex) {
			path, line := shaderLocation(vs)
			errs.Add(Errorf(KindConsistency, path, line,
				"vertex shader '%s' is not part of a program", vs.Name))
		}
	}
	for _, fs := range l.fragmentShaderList {
		if !l.shaderInProgram(fs.Name, StageFragment) {
			path, line := shaderLocation(fs)
			errs.Add(Errorf(KindConsistency, path, line,
				"fragment shader '%s' is not part of a program", fs.Name))
		}
	}

	for _, prog := range l.programList {
		vs := l.vertexShaders[prog.VS]
		fs := l.fragmentShaders[prog.FS]
		if vs == nil || fs == nil {
			// Resolve already failed on unknown shader names.
			continue
		}
		if len(vs.Outputs) != len(fs.Inputs) {
			if len(fs.Inputs) > 0 {
				errs.Add(Errorf(KindConsistency, fs.Inputs[0].Path, fs.Inputs[0].Line,
					"number of fs inputs doesn't match number of vs outputs"))
			}
			if len(vs.Outputs) > 0 {
				errs.Add(Errorf(KindConsistency, vs.Outputs[0].Path, vs.Outputs[0].Line,
					"number of vs outputs doesn't match number of fs inputs"))
			}
			return errs
		}
		for i, out := range vs.Outputs {
			in := fs.Inputs[i]
			if !out.Matches(in) {
				errs.Add(Errorf(KindConsistency, in.Path, in.Line,
					"fs input doesn't match vs output (names, types and order must match)"))
				errs.Add(Errorf(KindConsistency, out.Path, out.Line,
					"vs output doesn't match fs input (names, types and order must match)"))
				return errs
			}
		}
	}

	return errs
}

func (l *Library) shaderInProgram(name string, stage Stage) bool {
	for _, prog := range l.programList {
		if stage == StageVertex && prog.VS == name {
			return true
		}
		if stage == StageFragment && prog.FS == name {
			return true
		}
	}
	return false
}

func shaderLocation(s *Shader) (string, int) {
	if len(s.Lines) > 0 {
		return s.Lines[0].Path, s.Lines[0].Num
	}
	return "", 0
}
