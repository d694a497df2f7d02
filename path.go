package forge

import (
	"path"
	"strings"
)

// FileRef is a file argument to an Env producer. It is a closed set: a
// SourcePath, a BuildPath, or a raw path created with Rel that is anchored at
// the environment's current directory when the producer resolves it.
type FileRef interface {
	// ref returns the underlying path string without anchoring it.
	ref() string
}

// SourcePath is a path to a file in the source tree, anchored at the
// subdirectory that declared it. It is immutable once constructed.
type SourcePath struct {
	p string
}

func (s SourcePath) ref() string { return s.p }

func (s SourcePath) String() string { return s.p }

// SourcePathOf preserves the raw path of an existing reference as a
// SourcePath. Raw Rel paths are anchored at the environment's current
// directory.
func SourcePathOf(e *Env, f FileRef) SourcePath {
	return e.sourceOf(f)
}

// BuildPath is a path to a generated file, anchored at
// <build-dir>/<subdirectory>. It is immutable once constructed.
type BuildPath struct {
	p string
}

func (b BuildPath) ref() string { return b.p }

func (b BuildPath) String() string { return b.p }

// BuildPathOf anchors a reference below the build directory: a SourcePath is
// placed at <build-dir>/<source path>, a raw Rel path at
// <build-dir>/<current dir>/<path>, and an existing BuildPath is preserved.
func BuildPathOf(e *Env, f FileRef) BuildPath {
	return e.buildOf(f)
}

// BuildPathWithExt is BuildPathOf with the file extension of the path
// replaced by ext before anchoring. Applying it twice with the same ext
// yields the same path as applying it once.
func BuildPathWithExt(e *Env, f FileRef, ext string) BuildPath {
	return e.buildWithExt(f, ext)
}

// rawPath is a path relative to the current directory of the Env that
// eventually resolves it.
type rawPath string

func (r rawPath) ref() string { return string(r) }

// Rel wraps a path relative to the current subdirectory for use as a
// producer input.
func Rel(p string) FileRef { return rawPath(p) }

// Rels wraps several relative paths at once.
func Rels(ps ...string) []FileRef {
	refs := make([]FileRef, len(ps))
	for i, p := range ps {
		refs[i] = rawPath(p)
	}
	return refs
}

func (e *Env) sourceOf(f FileRef) SourcePath {
	switch v := f.(type) {
	case SourcePath:
		return v
	case BuildPath:
		return SourcePath{p: v.p}
	default:
		return SourcePath{p: e.cwd.path + "/" + f.ref()}
	}
}

func (e *Env) buildOf(f FileRef) BuildPath {
	switch v := f.(type) {
	case BuildPath:
		return v
	case SourcePath:
		return BuildPath{p: e.buildDir + "/" + v.p}
	default:
		return BuildPath{p: e.buildDir + "/" + e.cwd.path + "/" + f.ref()}
	}
}

// buildRel anchors a plain relative path below <build-dir>/<current dir>.
func (e *Env) buildRel(p string) BuildPath {
	return e.buildOf(rawPath(p))
}

func (e *Env) buildWithExt(f FileRef, ext string) BuildPath {
	return e.buildOf(replaceExt(f, ext))
}

// replaceExt swaps the file extension of a reference while keeping its kind,
// so that anchoring still follows the rules of the original reference. A path
// that already carries the requested extension is returned unchanged.
func replaceExt(f FileRef, ext string) FileRef {
	p := f.ref()
	if !strings.HasSuffix(p, "."+ext) {
		p = strings.TrimSuffix(p, path.Ext(p)) + "." + ext
	}
	switch f.(type) {
	case SourcePath:
		return SourcePath{p: p}
	case BuildPath:
		return BuildPath{p: p}
	default:
		return rawPath(p)
	}
}
