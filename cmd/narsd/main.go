// Package main provides the entry point for the NARS reasoning daemon.
//
// narsd is designed to be spawned as a child process by an MCP host and
// communicates via stdio using the Model Context Protocol. It exposes
// the host entry points named in spec §6 — inputNarsese, cycle,
// conceptAt, conceptBagSnapshot, globalTaskBagSnapshot — as MCP tools.
//
// Environment variables are documented in internal/config; NARS_DEBUG
// enables verbose logging.
package main

import (
	"context"
	"log"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"nars-core/internal/clock"
	"nars-core/internal/config"
	"nars-core/internal/reasoner"
	"nars-core/internal/rules"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if cfg.Logging.Debug {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
		log.Println("starting narsd in debug mode...")
	}

	var ruleset []rules.Rule
	if cfg.Rules.TablePath != "" {
		data, err := os.ReadFile(cfg.Rules.TablePath)
		if err != nil {
			log.Fatalf("failed to read rule table %q: %v", cfg.Rules.TablePath, err)
		}
		ruleset, err = rules.ParseTable(string(data))
		if err != nil {
			log.Fatalf("failed to parse rule table %q: %v", cfg.Rules.TablePath, err)
		}
		log.Printf("loaded %d rules from %s", len(ruleset), cfg.Rules.TablePath)
	} else {
		log.Println("no rule table configured; running with an empty ruleset")
	}

	ctx := clock.New(cfg.Server.ClockSeed)
	r := reasoner.New(ctx, ruleset, log.Default())
	log.Println("initialized reasoner")

	h := &handlers{reasoner: r}

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    cfg.Server.Name,
		Version: cfg.Server.Version,
	}, nil)
	log.Println("created MCP server")

	registerTools(mcpServer, h)
	log.Println("registered tools: input-narsese, cycle, concept-at, concept-bag-snapshot, global-task-bag-snapshot, metrics")

	transport := &mcp.StdioTransport{}
	log.Println("created stdio transport")

	runCtx := context.Background()
	log.Println("starting MCP server...")
	if err := mcpServer.Run(runCtx, transport); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
