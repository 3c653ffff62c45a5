package persist

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	neo4jconfig "github.com/neo4j/neo4j-go-driver/v5/neo4j/config"

	"nars-core/internal/graphview"
)

// Neo4jConfig holds connection settings for the graph export target.
type Neo4jConfig struct {
	URI      string
	Username string
	Password string
	Database string
	Timeout  time.Duration
}

// DefaultNeo4jConfig reads connection settings from the environment,
// following the teacher's NEO4J_* variable names.
func DefaultNeo4jConfig() Neo4jConfig {
	cfg := Neo4jConfig{
		URI:      getEnv("NEO4J_URI", "bolt://localhost:7687"),
		Username: getEnv("NEO4J_USERNAME", "neo4j"),
		Password: getEnv("NEO4J_PASSWORD", "password"),
		Database: getEnv("NEO4J_DATABASE", "neo4j"),
		Timeout:  5 * time.Second,
	}
	if ms := os.Getenv("NEO4J_TIMEOUT_MS"); ms != "" {
		if n, err := strconv.Atoi(ms); err == nil && n > 0 {
			cfg.Timeout = time.Duration(n) * time.Millisecond
		}
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Neo4jStore exports a graphview graph as :Thought nodes (with a kind
// property) and LINKS_TO relationships (carrying the edge's kind) in a
// Neo4j database.
type Neo4jStore struct {
	driver  neo4j.DriverWithContext
	db      string
	timeout time.Duration
}

// NewNeo4jStore dials cfg.URI and verifies connectivity before
// returning, matching the teacher's NewNeo4jClient.
func NewNeo4jStore(cfg Neo4jConfig) (*Neo4jStore, error) {
	driver, err := neo4j.NewDriverWithContext(
		cfg.URI,
		neo4j.BasicAuth(cfg.Username, cfg.Password, ""),
		func(c *neo4jconfig.Config) {
			c.MaxConnectionPoolSize = 50
			c.ConnectionAcquisitionTimeout = cfg.Timeout
			c.SocketConnectTimeout = cfg.Timeout
		},
	)
	if err != nil {
		return nil, fmt.Errorf("persist: create neo4j driver: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("persist: verify neo4j connectivity: %w", err)
	}

	return &Neo4jStore{driver: driver, db: cfg.Database, timeout: cfg.Timeout}, nil
}

// Close releases the driver's connection pool.
func (s *Neo4jStore) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

// SaveGraph MERGEs every vertex and edge of g into Neo4j, keyed by
// vertex ID so repeated exports update rather than duplicate nodes.
func (s *Neo4jStore) SaveGraph(ctx context.Context, g graph.Graph[string, *graphview.Vertex]) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: s.db})
	defer session.Close(ctx)

	adj, err := g.AdjacencyMap()
	if err != nil {
		return fmt.Errorf("persist: adjacency map: %w", err)
	}

	_, err = session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		for id := range adj {
			v, err := g.Vertex(id)
			if err != nil {
				return nil, fmt.Errorf("persist: vertex %q: %w", id, err)
			}
			if _, err := tx.Run(ctx,
				`MERGE (n:Thought {id: $id}) SET n.kind = $kind`,
				map[string]any{"id": v.ID, "kind": string(v.Kind)},
			); err != nil {
				return nil, fmt.Errorf("persist: merge vertex %q: %w", id, err)
			}
		}

		for from, edges := range adj {
			for to, edge := range edges {
				kind := edge.Properties.Attributes["kind"]
				if _, err := tx.Run(ctx,
					`MATCH (a:Thought {id: $from}), (b:Thought {id: $to})
					 MERGE (a)-[r:LINKS_TO {kind: $kind}]->(b)
					 SET r.weight = $weight`,
					map[string]any{"from": from, "to": to, "kind": kind, "weight": edge.Properties.Weight},
				); err != nil {
					return nil, fmt.Errorf("persist: merge edge %q -> %q: %w", from, to, err)
				}
			}
		}

		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("persist: save graph: %w", err)
	}

	return nil
}
