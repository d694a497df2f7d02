package forge

import (
	"maps"
	"slices"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"go.trai.ch/zerr"
)

// Value is the value of a build variable. The set of implementations is
// closed: Str for tool names and other scalars, List for flags and search
// paths, Dict for tool environments.
type Value interface {
	cloneValue() Value
}

// Str is a scalar string variable, e.g. a tool name.
type Str string

func (s Str) cloneValue() Value { return s }

// List is an ordered list variable, e.g. compiler flags or search paths.
type List []string

func (l List) cloneValue() Value { return List(slices.Clone(l)) }

// Dict is a string-map variable, e.g. extra environment for a delegated
// tool.
type Dict map[string]string

func (d Dict) cloneValue() Value { return Dict(maps.Clone(d)) }

// location is the current-directory cursor. It is shared between an Env and
// its clones so that SubBuild moves all of them together, exactly like the
// single traversal it models.
type location struct {
	path string
}

// BuildFunc is the entry point of a subdirectory's build description. It
// returns the names of the libraries it produced, if any.
type BuildFunc func(g *Generator, e *Env) []string

// Env holds the build variables that producer methods turn into build edges:
// tool names, flag lists and search paths. An Env can be cloned to vary the
// variables for a single edge without influencing any other edge, and it
// carries the current-directory cursor that anchors relative input paths.
type Env struct {
	id       int
	idgen    *int
	cwd      *location
	buildDir string
	vars     map[string]Value
}

// NewEnv creates an environment with the gcc/binutils toolchain and empty
// flag and path lists.
func NewEnv(cfg Config) *Env {
	cfg = cfg.withDefaults()
	id := 1
	e := &Env{
		id:       id,
		idgen:    &id,
		cwd:      &location{path: "."},
		buildDir: cfg.BuildDir,
		vars:     map[string]Value{},
	}

	// default tools
	e.vars["CXX"] = Str("g++")
	e.vars["CPP"] = Str("cpp")
	e.vars["AS"] = Str("gcc")
	e.vars["CC"] = Str("gcc")
	e.vars["AR"] = Str("gcc-ar")
	e.vars["SHLINK"] = Str("gcc")
	e.vars["RANLIB"] = Str("gcc-ranlib")
	e.vars["STRIP"] = Str("strip")
	e.vars["CARGO"] = Str("cargo")

	// default flags
	e.vars["ASFLAGS"] = List{}
	e.vars["CFLAGS"] = List{}
	e.vars["CPPFLAGS"] = List{}
	e.vars["CXXFLAGS"] = List{}
	e.vars["LINKFLAGS"] = List{}
	e.vars["SHLINKFLAGS"] = List{}
	e.vars["ARFLAGS"] = List{}
	e.vars["INSTFLAGS"] = List{}

	// default paths
	e.vars["CPPPATH"] = List{}
	e.vars["LIBPATH"] = List{}

	// default settings for delegated cargo builds
	e.vars["RUSTBINS"] = Str(".")
	e.vars["CRGFLAGS"] = List{}
	e.vars["CRGENV"] = Dict{}

	return e
}

// Clone returns an environment with an independent deep copy of all
// variables, sharing only the current-directory cursor. The clone gets a
// fresh id so that object files built from the same source in different
// environments do not collide.
func (e *Env) Clone() *Env {
	*e.idgen++
	vars := make(map[string]Value, len(e.vars))
	for k, v := range e.vars {
		vars[k] = v.cloneValue()
	}
	return &Env{
		id:       *e.idgen,
		idgen:    e.idgen,
		cwd:      e.cwd,
		buildDir: e.buildDir,
		vars:     vars,
	}
}

// CurDir returns the directory that relative input paths are anchored at.
func (e *Env) CurDir() string { return e.cwd.path }

// BuildDir returns the root directory for generated outputs.
func (e *Env) BuildDir() string { return e.buildDir }

// Get returns the value of the named variable. It panics with
// ErrUnknownVariable if the variable was never set.
func (e *Env) Get(name string) Value {
	v, ok := e.vars[name]
	if !ok {
		panic(zerr.With(ErrUnknownVariable, "variable", name))
	}
	return v
}

// Set replaces the value of the named variable.
func (e *Env) Set(name string, v Value) {
	e.vars[name] = v
}

// GetStr returns the named scalar variable.
func (e *Env) GetStr(name string) string {
	s, ok := e.Get(name).(Str)
	if !ok {
		panic(zerr.With(zerr.With(ErrVariableType, "variable", name), "want", "Str"))
	}
	return string(s)
}

// GetList returns the named list variable.
func (e *Env) GetList(name string) []string {
	l, ok := e.Get(name).(List)
	if !ok {
		panic(zerr.With(zerr.With(ErrVariableType, "variable", name), "want", "List"))
	}
	return l
}

// GetDict returns the named map variable.
func (e *Env) GetDict(name string) map[string]string {
	d, ok := e.Get(name).(Dict)
	if !ok {
		panic(zerr.With(zerr.With(ErrVariableType, "variable", name), "want", "Dict"))
	}
	return d
}

// AddFlag appends one value to a list variable.
func (e *Env) AddFlag(name, flag string) {
	e.AddFlags(name, flag)
}

// AddFlags appends values to a list variable. It panics with
// ErrVariableType if the variable does not hold a list.
func (e *Env) AddFlags(name string, flags ...string) {
	e.vars[name] = List(append(e.GetList(name), flags...))
}

// RemoveFlag removes one value from a list variable.
func (e *Env) RemoveFlag(name, flag string) {
	e.RemoveFlags(name, flag)
}

// RemoveFlags removes the first occurrence of each given value from a list
// variable. Values that are not present are skipped silently, so removing a
// value twice is idempotent.
func (e *Env) RemoveFlags(name string, flags ...string) {
	list := e.GetList(name)
	for _, flag := range flags {
		if i := slices.Index(list, flag); i >= 0 {
			list = slices.Delete(list, i, i+1)
		}
	}
	e.vars[name] = List(list)
}

// SubBuild runs the build description of a subdirectory. The current
// directory shifts into dir for the duration of fn so that fn can use paths
// relative to its own directory, and the subdirectory's description file is
// registered as a dependency of the self-regeneration edge. SubBuild nests
// arbitrarily deep and returns whatever fn returns, commonly the names of
// the libraries the subdirectory produced.
func (e *Env) SubBuild(g *Generator, dir string, fn BuildFunc) []string {
	old := e.cwd.path
	e.cwd.path = old + "/" + dir
	defer func() { e.cwd.path = old }()

	g.addBuildFile(e.cwd.path + "/" + descriptionFileName)
	return fn(g, e)
}

// Glob expands a file pattern anchored at the current directory and returns
// the matches as SourcePaths, sorted lexically. The ** sequence matches
// across directory boundaries. The pattern is recorded with the generator so
// that added or removed files trigger a regeneration of the graph; this
// recording is the reason all file enumeration must go through Glob instead
// of the file system directly.
func (e *Env) Glob(g *Generator, pattern string) []SourcePath {
	pat := e.sourceOf(rawPath(pattern)).String()
	g.addGlob(pat)

	matches, err := doublestar.FilepathGlob(pat)
	if err != nil {
		panic(zerr.With(zerr.With(ErrBadGlobPattern, "pattern", pat), "cause", err.Error()))
	}
	sort.Strings(matches)

	files := make([]SourcePath, len(matches))
	for i, m := range matches {
		files[i] = SourcePath{p: m}
	}
	return files
}
