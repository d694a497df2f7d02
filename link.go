package forge

import (
	"path"
	"slices"
)

// StaticLib archives the given inputs into the static library
// lib<name>.a. Inputs may be anything Objs accepts.
//
// Variables: AR, RANLIB, ARFLAGS.
func (e *Env) StaticLib(g *Generator, name string, ins []FileRef) BuildPath {
	lib := e.buildRel("lib" + name + ".a")
	objs := e.Objs(g, ins)
	g.AddBuild(NewBuildEdge("ar",
		[]string{lib.String()},
		buildPathStrings(objs),
		nil,
		map[string]string{
			"ar":      e.GetStr("AR"),
			"ranlib":  e.GetStr("RANLIB"),
			"arflags": joinFlags(e.GetList("ARFLAGS")),
		}))
	return lib
}

// SharedLib links the given inputs into the shared library lib<name>.so.
// Inputs may be anything Objs accepts.
//
// Variables: SHLINK, SHLINKFLAGS.
func (e *Env) SharedLib(g *Generator, name string, ins []FileRef) BuildPath {
	lib := e.buildRel("lib" + name + ".so")
	objs := e.Objs(g, ins)
	g.AddBuild(NewBuildEdge("shlink",
		[]string{lib.String()},
		buildPathStrings(objs),
		nil,
		map[string]string{
			"shlink":      e.GetStr("SHLINK"),
			"shlinkflags": joinFlags(e.GetList("SHLINKFLAGS")),
		}))
	return lib
}

// CExe links the given inputs into an executable using the C compiler as
// the link driver. libs names the libraries to link against; whether a name
// refers to a library built by this graph or to an ambient system library is
// decided later, during dependency resolution. deps adds extra dependency
// paths.
//
// Variables: CC, LINKFLAGS, LIBPATH.
func (e *Env) CExe(g *Generator, out string, ins []FileRef, libs []string, deps []FileRef) BuildPath {
	return e.linkExe(g, out, ins, libs, deps, e.GetStr("CC"))
}

// CxxExe is CExe with the C++ compiler as the link driver.
//
// Variables: CXX, LINKFLAGS, LIBPATH.
func (e *Env) CxxExe(g *Generator, out string, ins []FileRef, libs []string, deps []FileRef) BuildPath {
	return e.linkExe(g, out, ins, libs, deps, e.GetStr("CXX"))
}

func (e *Env) linkExe(g *Generator, out string, ins []FileRef, libs []string, deps []FileRef, linker string) BuildPath {
	flags := ""
	if len(libs) > 0 {
		flags = joinFlags(e.GetList("LINKFLAGS"))
		flags += " " + prefixed("-L", e.GetList("LIBPATH"))
		flags += " -Wl,--start-group"
		flags += " " + prefixed("-l", libs)
		flags += " -Wl,--end-group"
	}

	bin := e.buildRel(out)
	edge := NewBuildEdge("link",
		[]string{bin.String()},
		buildPathStrings(e.Objs(g, ins)),
		refStrings(e, deps),
		map[string]string{
			"link":      linker,
			"linkflags": flags,
		})
	edge.Libs = slices.Clone(libs)
	edge.LibPath = slices.Clone(e.GetList("LIBPATH"))
	g.AddBuild(edge)
	return bin
}

// Install copies the input file into outdir, keeping its base name.
func (e *Env) Install(g *Generator, outdir string, in FileRef) string {
	return e.InstallAs(g, outdir+"/"+path.Base(in.ref()), in)
}

// InstallAs copies the input file to the path out. When out resolves to the
// input itself the call is an identity: the input path is returned and no
// edge is registered, since an edge copying a file onto itself would never
// converge. A rename within one directory still registers an edge.
//
// Variables: INSTFLAGS.
func (e *Env) InstallAs(g *Generator, out string, in FileRef) string {
	src := e.sourceOf(in).String()
	if path.Clean(src) == path.Clean(out) {
		return src
	}

	g.AddBuild(NewBuildEdge("install",
		[]string{out},
		[]string{src},
		nil,
		map[string]string{
			"instflags": joinFlags(e.GetList("INSTFLAGS")),
		}))
	return out
}

// Strip removes the symbols from the input file.
//
// Variables: STRIP.
func (e *Env) Strip(g *Generator, out string, in FileRef) BuildPath {
	bin := e.buildRel(out)
	g.AddBuild(NewBuildEdge("strip",
		[]string{bin.String()},
		[]string{e.sourceOf(in).String()},
		nil,
		map[string]string{
			"strip": e.GetStr("STRIP"),
		}))
	return bin
}

func buildPathStrings(ps []BuildPath) []string {
	ss := make([]string, len(ps))
	for i, p := range ps {
		ss[i] = p.String()
	}
	return ss
}
