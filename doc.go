// Package forge is a build-description front end for the ninja build system.
//
// A project describes its build in ordinary Go code: a description program
// creates an Env and a Generator, derives environments for the parts of the
// tree that need different flags, and calls producer methods (Cc, StaticLib,
// CExe, ...) that each append one build edge to the generator. The generator
// finally serializes the accumulated graph to a build.ninja file that the
// external ninja binary executes. forge never runs a compiler itself.
//
// A minimal description program looks like this:
//
//	func main() {
//		cfg := forge.ConfigFromEnv()
//		g := forge.NewGenerator(cfg)
//		e := forge.NewEnv(cfg)
//
//		e.AddFlags("CXXFLAGS", "-Wall", "-Wextra")
//		e.CxxExe(g, "hello", forge.Rels("hello.cc"), nil, nil)
//
//		if err := g.WriteToFile(nil); err != nil {
//			log.Fatalf("%+v", err)
//		}
//	}
//
// Misuse of the description API (an unknown variable, a duplicate rule name,
// an edge with no outputs) is a defect in the build description itself and
// never recoverable at run time. Such misuse panics with a *zerr.Error; the
// description process exits nonzero and no graph file is written.
package forge
