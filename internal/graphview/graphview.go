// Package graphview renders a Memory's concept/term-link/task-link
// network as a traversable github.com/dominikbraun/graph graph, so a
// host can run reachability and depth queries over remembered concepts
// instead of walking bags by hand.
package graphview

import (
	"fmt"

	"github.com/dominikbraun/graph"

	"nars-core/internal/budget"
	"nars-core/internal/concept"
	"nars-core/internal/memory"
)

// VertexKind distinguishes the two node shapes that appear in the
// network: concepts (spec §3 Concept) and the tasks their task-links
// point at.
type VertexKind string

const (
	VertexConcept VertexKind = "concept"
	VertexTask    VertexKind = "task"
)

// Vertex is one node of the rendered graph.
type Vertex struct {
	ID       string
	Kind     VertexKind
	Priority float64
	Beliefs  int
}

func vertexHash(v *Vertex) string { return v.ID }

// EdgeKind distinguishes term-links (concept-to-concept) from
// task-links (concept-to-task).
type EdgeKind string

const (
	EdgeTermLink EdgeKind = "term_link"
	EdgeTaskLink EdgeKind = "task_link"
)

// Build walks every concept currently held by mem and renders its
// term-links and task-links as edges of a directed graph.Graph. Concept
// vertices are added in a first pass so every term-link's endpoints
// exist before any edge is added; task vertices are added lazily, the
// first time a task-link references them.
func Build(mem *memory.Memory) (graph.Graph[string, *Vertex], error) {
	g := graph.New(vertexHash, graph.Directed())

	names := mem.ConceptBagSnapshot()
	for _, name := range names {
		c, ok := mem.ConceptAt(name)
		if !ok {
			continue
		}
		if err := addConceptVertex(g, c); err != nil {
			return nil, err
		}
	}

	for _, name := range names {
		c, ok := mem.ConceptAt(name)
		if !ok {
			continue
		}
		if err := addConceptEdges(g, c); err != nil {
			return nil, err
		}
	}

	return g, nil
}

func addConceptVertex(g graph.Graph[string, *Vertex], c *concept.Value) error {
	v := &Vertex{ID: c.Name(), Kind: VertexConcept, Beliefs: len(c.Beliefs())}
	if err := g.AddVertex(v); err != nil && err != graph.ErrVertexAlreadyExists {
		return fmt.Errorf("graphview: add concept vertex %q: %w", c.Name(), err)
	}
	return nil
}

func addConceptEdges(g graph.Graph[string, *Vertex], c *concept.Value) error {
	var walkErr error

	c.TermLinks.Walk(func(_ string, tl *concept.TermLink, bud budget.Value) {
		if walkErr != nil {
			return
		}
		if err := addEdge(g, c.Name(), tl.Target.Name(), EdgeTermLink, bud.Priority.Value()); err != nil {
			walkErr = err
		}
	})
	if walkErr != nil {
		return walkErr
	}

	c.TaskLinks.Walk(func(_ string, tl *concept.TaskLink, bud budget.Value) {
		if walkErr != nil {
			return
		}
		taskID := tl.Target.Key()
		v := &Vertex{ID: taskID, Kind: VertexTask, Priority: tl.Target.Budget.Priority.Value()}
		if err := g.AddVertex(v); err != nil && err != graph.ErrVertexAlreadyExists {
			walkErr = fmt.Errorf("graphview: add task vertex %q: %w", taskID, err)
			return
		}
		if err := addEdge(g, c.Name(), taskID, EdgeTaskLink, bud.Priority.Value()); err != nil {
			walkErr = err
		}
	})

	return walkErr
}

func addEdge(g graph.Graph[string, *Vertex], from, to string, kind EdgeKind, weight float64) error {
	err := g.AddEdge(from, to, graph.EdgeAttribute("kind", string(kind)), graph.EdgeWeight(int(weight*1000)))
	if err != nil && err != graph.ErrEdgeAlreadyExists {
		return fmt.Errorf("graphview: add %s edge %q -> %q: %w", kind, from, to, err)
	}
	return nil
}

// ReachableFrom returns every vertex ID reachable from start (including
// start itself), breadth-first, for host reachability queries.
func ReachableFrom(g graph.Graph[string, *Vertex], start string) ([]string, error) {
	adj, err := g.AdjacencyMap()
	if err != nil {
		return nil, fmt.Errorf("graphview: adjacency map: %w", err)
	}

	visited := map[string]bool{start: true}
	queue := []string{start}
	var order []string

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		order = append(order, cur)
		for next := range adj[cur] {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}

	return order, nil
}

// DepthsFrom returns the shortest edge-count from start to every vertex
// reachable from it, for host depth queries.
func DepthsFrom(g graph.Graph[string, *Vertex], start string) (map[string]int, error) {
	adj, err := g.AdjacencyMap()
	if err != nil {
		return nil, fmt.Errorf("graphview: adjacency map: %w", err)
	}

	depths := map[string]int{start: 0}
	queue := []string{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for next := range adj[cur] {
			if _, seen := depths[next]; !seen {
				depths[next] = depths[cur] + 1
				queue = append(queue, next)
			}
		}
	}

	return depths, nil
}
