package forge

import (
	"fmt"
	"runtime"
	"strings"

	"go.trai.ch/zerr"
)

// descriptionFileName is the conventional name of a subdirectory's build
// description file, registered as a regeneration dependency by SubBuild.
const descriptionFileName = "build.go"

// regenPool is the single-job pool reserved for regenerating the graph.
const regenPool = "build_pool"

// regenRule is the rule that re-invokes the description program.
const regenRule = "configure"

// Generator accumulates rules and build edges and serializes them to a
// build.ninja file. It comes with builtin rules for the C, C++ and cargo
// producers of Env; further rules can be registered with AddRule. During the
// description pass it is purely additive, so a single instance is shared by
// the whole traversal.
type Generator struct {
	cfg Config

	rules     map[string]*Rule
	ruleOrder []string
	edges     []*BuildEdge

	// outputs indexes the outputs of traceable edges for the strict-mode
	// conflict check.
	outputs map[string]*BuildEdge

	globs      []string
	buildFiles []string
}

// NewGenerator creates a generator with the builtin rules and the
// permanently-dirty phony edge.
func NewGenerator(cfg Config) *Generator {
	g := &Generator{
		cfg:     cfg.withDefaults(),
		rules:   map[string]*Rule{},
		outputs: map[string]*BuildEdge{},
	}

	g.AddRule("install", &Rule{
		Cmd:  "install $instflags $in $out && touch $out",
		Desc: "INSTALL $out",
	})
	g.AddRule("cpp", &Rule{
		Cmd:     "$cpp -MD -MF $out.d -P $cppflags $in -o $out",
		Deps:    "gcc",
		Depfile: "$out.d",
		Desc:    "CPP $out",
	})
	g.AddRule("cc", &Rule{
		Cmd:     "$cc -MD -MF $out.d $ccflags -c $in -o $out",
		Deps:    "gcc",
		Depfile: "$out.d",
		Desc:    "CC $out",
	})
	g.AddRule("cxx", &Rule{
		Cmd:     "$cxx -MD -MF $out.d $cxxflags -c $in -o $out",
		Deps:    "gcc",
		Depfile: "$out.d",
		Desc:    "CXX $out",
	})
	g.AddRule("ar", &Rule{
		Cmd:  "$ar rc $arflags $out $in && $ranlib $out",
		Desc: "AR $out",
	})
	g.AddRule("link", &Rule{
		Cmd:  "$link -o $out $in $linkflags",
		Desc: "LINK $out",
	})
	g.AddRule("shlink", &Rule{
		Cmd:  "$shlink -shared -o $out $in $shlinkflags",
		Desc: "SHLINK $out",
	})
	g.AddRule("strip", &Rule{
		Cmd:  "$strip -o $out $in",
		Desc: "STRIP $out",
	})
	g.AddRule("cargo", &Rule{
		Cmd:  "cd $dir && $env $cargo $cargoflags",
		Desc: "CARGO $out",
		// recheck which outputs actually changed so that only executables
		// whose Rust library changed are relinked
		Restat: true,
	})

	// bootstrap edge backing the always-dirty target; registered directly
	// so it stays untraceable and exempt from the conflict check
	g.edges = append(g.edges, &BuildEdge{
		Rule: phonyRule,
		Outs: []string{alwaysTarget},
		Vars: map[string]string{},
	})

	return g
}

// Config returns the configuration the generator was created with.
func (g *Generator) Config() Config { return g.cfg }

// AddRule registers a rule under a unique name. It panics with
// ErrDuplicateRule if the name is taken and with ErrInvalidRule if the rule
// lacks a command or a description.
func (g *Generator) AddRule(name string, r *Rule) {
	if r.Cmd == "" || r.Desc == "" {
		panic(zerr.With(ErrInvalidRule, "rule", name))
	}
	if _, ok := g.rules[name]; ok {
		panic(zerr.With(ErrDuplicateRule, "rule", name))
	}
	g.rules[name] = r
	g.ruleOrder = append(g.ruleOrder, name)
}

// AddBuild registers a build edge. It panics with ErrUnknownRule if the
// edge's rule is not registered. In strict mode it also panics with
// ErrOutputConflict if any output is already produced by an earlier
// traceable edge, reporting where that edge originated.
func (g *Generator) AddBuild(edge *BuildEdge) {
	rule, ok := g.rules[edge.Rule]
	if !ok {
		panic(zerr.With(ErrUnknownRule, "rule", edge.Rule))
	}

	if g.cfg.Strict {
		for _, out := range edge.Outs {
			if prev, ok := g.outputs[out]; ok {
				err := zerr.With(ErrOutputConflict, "output", out)
				panic(zerr.With(err, "first_producer", prev.origin))
			}
		}
		edge.origin = callerOutsideForge()
		for _, out := range edge.Outs {
			g.outputs[out] = edge
		}
	}

	rule.refs++
	g.edges = append(g.edges, edge)
}

// Edges returns the registered edges in declaration order.
func (g *Generator) Edges() []*BuildEdge { return g.edges }

func (g *Generator) addGlob(pattern string) {
	g.globs = append(g.globs, pattern)
}

func (g *Generator) addBuildFile(file string) {
	g.buildFiles = append(g.buildFiles, file)
}

// descriptionFiles lists every file whose content can change the shape of
// the graph: the root description, everything SubBuild encountered, and the
// module files that pin the generator library itself, so that upgrading it
// regenerates the graph.
func (g *Generator) descriptionFiles() []string {
	files := append([]string{descriptionFileName}, g.buildFiles...)
	return append(files, "go.mod", "go.sum")
}

// callerOutsideForge walks up the stack to the first frame that is not part
// of this package, which is the description call that registered the edge.
func callerOutsideForge() string {
	for skip := 2; skip < 16; skip++ {
		pc, file, line, ok := runtime.Caller(skip)
		if !ok {
			break
		}
		fn := runtime.FuncForPC(pc)
		if fn != nil && strings.HasPrefix(fn.Name(), "go.trai.ch/forge.") {
			continue
		}
		return fmt.Sprintf("%s:%d", file, line)
	}
	return "unknown"
}
