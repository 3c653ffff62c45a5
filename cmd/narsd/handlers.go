package main

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"nars-core/internal/reasoner"
)

// handlers wraps the reasoner with the MCP tool signatures spec §6
// names as host entry points.
type handlers struct {
	reasoner *reasoner.Reasoner
}

// toJSONContent marshals a response struct into the text content an
// MCP tool call result carries.
func toJSONContent(data any) []mcp.Content {
	jsonData, err := json.Marshal(data)
	if err != nil {
		jsonData, _ = json.Marshal(map[string]string{"error": err.Error()})
	}
	return []mcp.Content{&mcp.TextContent{Text: string(jsonData)}}
}

func registerTools(mcpServer *mcp.Server, h *handlers) {
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "input-narsese",
		Description: "Parse and input a Narsese sentence, or run N working cycles if given a bare integer",
	}, h.handleInputNarsese)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "cycle",
		Description: "Run a single working cycle of the reasoner",
	}, h.handleCycle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "concept-at",
		Description: "Look up a concept by its term's canonical name",
	}, h.handleConceptAt)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "concept-bag-snapshot",
		Description: "List every concept name currently held in memory",
	}, h.handleConceptBagSnapshot)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "global-task-bag-snapshot",
		Description: "List every pending task key in the global task bag",
	}, h.handleGlobalTaskBagSnapshot)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "metrics",
		Description: "Report reasoner-cycle counters: cycles run, tasks processed, derivations produced",
	}, h.handleMetrics)
}

// InputNarseseRequest is input-narsese's argument.
type InputNarseseRequest struct {
	Text string `json:"text"`
}

// InputNarseseResponse mirrors reasoner.Result for JSON transport.
type InputNarseseResponse struct {
	OK      bool     `json:"ok"`
	Task    string   `json:"task,omitempty"`
	Answers []string `json:"answers,omitempty"`
	Error   string   `json:"error,omitempty"`
}

func (h *handlers) handleInputNarsese(ctx context.Context, req *mcp.CallToolRequest, input InputNarseseRequest) (*mcp.CallToolResult, *InputNarseseResponse, error) {
	result := h.reasoner.InputNarsese(input.Text)

	resp := &InputNarseseResponse{OK: result.OK}
	if result.Task != nil {
		resp.Task = result.Task.Sentence.Name()
	}
	for _, a := range result.Answers {
		resp.Answers = append(resp.Answers, a.Name())
	}
	if result.Err != nil {
		resp.Error = result.Err.Error()
	}
	return &mcp.CallToolResult{Content: toJSONContent(resp)}, resp, nil
}

// CycleRequest is cycle's (empty) argument.
type CycleRequest struct{}

// CycleResponse acknowledges that one working cycle ran.
type CycleResponse struct {
	Ran bool `json:"ran"`
}

func (h *handlers) handleCycle(ctx context.Context, req *mcp.CallToolRequest, input CycleRequest) (*mcp.CallToolResult, *CycleResponse, error) {
	h.reasoner.Cycle()
	resp := &CycleResponse{Ran: true}
	return &mcp.CallToolResult{Content: toJSONContent(resp)}, resp, nil
}

// ConceptAtRequest is concept-at's argument.
type ConceptAtRequest struct {
	Name string `json:"name"`
}

// ConceptAtResponse reports whether a concept exists and its belief count.
type ConceptAtResponse struct {
	Found         bool `json:"found"`
	BeliefCount   int  `json:"belief_count,omitempty"`
	QuestionCount int  `json:"question_count,omitempty"`
}

func (h *handlers) handleConceptAt(ctx context.Context, req *mcp.CallToolRequest, input ConceptAtRequest) (*mcp.CallToolResult, *ConceptAtResponse, error) {
	c, ok := h.reasoner.Mem.ConceptAt(input.Name)
	if !ok {
		resp := &ConceptAtResponse{Found: false}
		return &mcp.CallToolResult{Content: toJSONContent(resp)}, resp, nil
	}
	resp := &ConceptAtResponse{
		Found:         true,
		BeliefCount:   len(c.Beliefs()),
		QuestionCount: len(c.Questions()),
	}
	return &mcp.CallToolResult{Content: toJSONContent(resp)}, resp, nil
}

// ConceptBagSnapshotRequest is concept-bag-snapshot's (empty) argument.
type ConceptBagSnapshotRequest struct{}

// ConceptBagSnapshotResponse lists every concept name currently held.
type ConceptBagSnapshotResponse struct {
	Names []string `json:"names"`
}

func (h *handlers) handleConceptBagSnapshot(ctx context.Context, req *mcp.CallToolRequest, input ConceptBagSnapshotRequest) (*mcp.CallToolResult, *ConceptBagSnapshotResponse, error) {
	resp := &ConceptBagSnapshotResponse{Names: h.reasoner.Mem.ConceptBagSnapshot()}
	return &mcp.CallToolResult{Content: toJSONContent(resp)}, resp, nil
}

// GlobalTaskBagSnapshotRequest is global-task-bag-snapshot's (empty) argument.
type GlobalTaskBagSnapshotRequest struct{}

// GlobalTaskBagSnapshotResponse lists every pending task key.
type GlobalTaskBagSnapshotResponse struct {
	Keys []string `json:"keys"`
}

func (h *handlers) handleGlobalTaskBagSnapshot(ctx context.Context, req *mcp.CallToolRequest, input GlobalTaskBagSnapshotRequest) (*mcp.CallToolResult, *GlobalTaskBagSnapshotResponse, error) {
	resp := &GlobalTaskBagSnapshotResponse{Keys: h.reasoner.Mem.GlobalTaskBagSnapshot()}
	return &mcp.CallToolResult{Content: toJSONContent(resp)}, resp, nil
}

// MetricsRequest is metrics' (empty) argument.
type MetricsRequest struct{}

// MetricsResponse reports the reasoner's cycle counters.
type MetricsResponse struct {
	Counters map[string]int64 `json:"counters"`
}

func (h *handlers) handleMetrics(ctx context.Context, req *mcp.CallToolRequest, input MetricsRequest) (*mcp.CallToolResult, *MetricsResponse, error) {
	resp := &MetricsResponse{Counters: h.reasoner.Metrics.Stats()}
	return &mcp.CallToolResult{Content: toJSONContent(resp)}, resp, nil
}
