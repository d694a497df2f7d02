package forge

import (
	"path"
	"strings"
)

// resolveLibs completes the dependencies of link edges. Producers only
// record library names; once every edge is known, each name is searched in
// the edge's search paths against the libraries this graph builds itself.
// A found library becomes an edge dependency so that relinking happens when
// it changes. Names that match nothing are left alone: they are assumed to
// be ambient system libraries, which cannot be told apart from a typo at
// this stage.
//
// The search is single-pass and order-sensitive: the first search-path
// directory containing either form of the library wins, and within one
// directory the shared form beats the static form.
func (g *Generator) resolveLibs() {
	libs := g.collectLibs()
	for _, edge := range g.edges {
		for _, lib := range edge.Libs {
			static := "lib" + lib + ".a"
			shared := "lib" + lib + ".so"
			for _, dir := range edge.LibPath {
				byName, ok := libs[path.Clean(dir)]
				if !ok {
					continue
				}
				if out, ok := byName[shared]; ok {
					edge.Deps = append(edge.Deps, out)
					break
				}
				if out, ok := byName[static]; ok {
					edge.Deps = append(edge.Deps, out)
					break
				}
			}
		}
	}
}

// collectLibs indexes every library output of the graph by cleaned directory
// and file name. The index is derived data, rebuilt for each serialization.
func (g *Generator) collectLibs() map[string]map[string]string {
	libs := map[string]map[string]string{}
	for _, edge := range g.edges {
		for _, out := range edge.Outs {
			if !strings.HasSuffix(out, ".a") && !strings.HasSuffix(out, ".so") {
				continue
			}
			dir := path.Dir(out)
			if libs[dir] == nil {
				libs[dir] = map[string]string{}
			}
			libs[dir][path.Base(out)] = out
		}
	}
	return libs
}
