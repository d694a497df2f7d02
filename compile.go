package forge

import (
	"path"
	"slices"
	"strconv"
	"strings"
)

// joinFlags renders a flag list the way it appears on a command line.
func joinFlags(flags []string) string {
	return strings.Join(flags, " ")
}

// prefixed renders each element of a list with a prefix, e.g. -I for include
// paths.
func prefixed(prefix string, elems []string) string {
	parts := make([]string, len(elems))
	for i, e := range elems {
		parts[i] = prefix + e
	}
	return strings.Join(parts, " ")
}

func refStrings(e *Env, ins []FileRef) []string {
	paths := make([]string, len(ins))
	for i, in := range ins {
		paths[i] = e.sourceOf(in).String()
	}
	return paths
}

// Cpp runs the C preprocessor on one input file.
//
// Variables: CPP, CPPFLAGS, CPPPATH.
func (e *Env) Cpp(g *Generator, out string, in FileRef) BuildPath {
	flags := joinFlags(e.GetList("CPPFLAGS"))
	flags += " " + prefixed("-I", e.GetList("CPPPATH"))

	bin := e.buildRel(out)
	g.AddBuild(NewBuildEdge("cpp",
		[]string{bin.String()},
		[]string{e.sourceOf(in).String()},
		nil,
		map[string]string{
			"cpp":      e.GetStr("CPP"),
			"cppflags": flags,
		}))
	return bin
}

// Asm assembles the given input files. It assumes the C compiler can drive
// the assembler.
//
// Variables: CC, ASFLAGS, CPPFLAGS, CPPPATH.
func (e *Env) Asm(g *Generator, out FileRef, ins []FileRef) BuildPath {
	flags := joinFlags(slices.Concat(e.GetList("ASFLAGS"), e.GetList("CPPFLAGS")))
	flags += " " + prefixed("-I", e.GetList("CPPPATH"))
	return e.compileC(g, out, ins, flags)
}

// Cc compiles the given C input files into one object file.
//
// Variables: CC, CFLAGS, CPPFLAGS, CPPPATH.
func (e *Env) Cc(g *Generator, out FileRef, ins []FileRef) BuildPath {
	flags := joinFlags(slices.Concat(e.GetList("CFLAGS"), e.GetList("CPPFLAGS")))
	flags += " " + prefixed("-I", e.GetList("CPPPATH"))
	return e.compileC(g, out, ins, flags)
}

func (e *Env) compileC(g *Generator, out FileRef, ins []FileRef, flags string) BuildPath {
	obj := e.buildOf(out)
	g.AddBuild(NewBuildEdge("cc",
		[]string{obj.String()},
		refStrings(e, ins),
		nil,
		map[string]string{
			"cc":      e.GetStr("CC"),
			"ccflags": flags,
		}))
	return obj
}

// Cxx compiles the given C++ input files into one object file.
//
// Variables: CXX, CXXFLAGS, CPPFLAGS, CPPPATH.
func (e *Env) Cxx(g *Generator, out FileRef, ins []FileRef) BuildPath {
	flags := joinFlags(slices.Concat(e.GetList("CXXFLAGS"), e.GetList("CPPFLAGS")))
	flags += " " + prefixed("-I", e.GetList("CPPPATH"))

	obj := e.buildOf(out)
	g.AddBuild(NewBuildEdge("cxx",
		[]string{obj.String()},
		refStrings(e, ins),
		nil,
		map[string]string{
			"cxx":      e.GetStr("CXX"),
			"cxxflags": flags,
		}))
	return obj
}

// Objs produces one object file per input, dispatching on the file suffix:
// .S and .s are assembled, .c is compiled as C, .cc and .cpp as C++.
// Anything else is already in linkable form and passes through unchanged.
// The object names carry a per-environment suffix so that the same source
// can be built in differently configured environments without interference.
func (e *Env) Objs(g *Generator, ins []FileRef) []BuildPath {
	suffix := strconv.Itoa(e.id) + ".o"
	objs := make([]BuildPath, 0, len(ins))
	for _, in := range ins {
		switch path.Ext(in.ref()) {
		case ".S", ".s":
			objs = append(objs, e.Asm(g, e.buildWithExt(in, suffix), []FileRef{in}))
		case ".c":
			objs = append(objs, e.Cc(g, e.buildWithExt(in, suffix), []FileRef{in}))
		case ".cc", ".cpp":
			objs = append(objs, e.Cxx(g, e.buildWithExt(in, suffix), []FileRef{in}))
		default:
			objs = append(objs, e.buildOf(in))
		}
	}
	return objs
}
