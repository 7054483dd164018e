package include

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/dominikbraun/graph"
)

// DependencyGraph records which declaration files each document includes.
// Edges point from a document to a declaration file.
type DependencyGraph struct {
	mu    sync.RWMutex
	graph graph.Graph[string, string]
}

// NewDependencyGraph creates an empty dependency graph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		graph: graph.New(graph.StringHash, graph.Directed()),
	}
}

// SetIncludes replaces the declaration files recorded for doc.
func (g *DependencyGraph) SetIncludes(doc string, includes []string) error {
	doc = cacheKey(doc)

	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.addVertex(doc); err != nil {
		return err
	}

	adjacency, err := g.graph.AdjacencyMap()
	if err != nil {
		return fmt.Errorf("failed to read dependency graph: %w", err)
	}
	for target := range adjacency[doc] {
		if err := g.graph.RemoveEdge(doc, target); err != nil {
			return fmt.Errorf("failed to remove dependency %s -> %s: %w", doc, target, err)
		}
	}

	for _, decl := range includes {
		decl = cacheKey(decl)
		if err := g.addVertex(decl); err != nil {
			return err
		}
		// The same declaration may be included more than once.
		if err := g.graph.AddEdge(doc, decl); err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
			return fmt.Errorf("failed to add dependency %s -> %s: %w", doc, decl, err)
		}
	}

	return nil
}

func (g *DependencyGraph) addVertex(path string) error {
	if err := g.graph.AddVertex(path); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
		return fmt.Errorf("failed to add %s to dependency graph: %w", path, err)
	}
	return nil
}

// RemoveDocument drops doc and its outgoing edges.
func (g *DependencyGraph) RemoveDocument(doc string) error {
	return g.SetIncludes(doc, nil)
}

// Includes returns the declaration files doc includes, sorted.
func (g *DependencyGraph) Includes(doc string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	adjacency, err := g.graph.AdjacencyMap()
	if err != nil {
		return nil
	}
	return sortedKeys(adjacency[cacheKey(doc)])
}

// Dependents returns the documents that include decl, sorted.
func (g *DependencyGraph) Dependents(decl string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	predecessors, err := g.graph.PredecessorMap()
	if err != nil {
		return nil
	}
	return sortedKeys(predecessors[cacheKey(decl)])
}

func sortedKeys(edges map[string]graph.Edge[string]) []string {
	keys := make([]string, 0, len(edges))
	for k := range edges {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
