package forge

// Serialize finishes the graph and renders it in memory with computed
// defaults. This is exported for testing purposes only.
func (g *Generator) Serialize() []byte {
	return g.serialize(nil)
}
