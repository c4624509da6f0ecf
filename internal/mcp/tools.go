// ABOUTME: MCP tool definitions and registration for the aivix server
// ABOUTME: Exposes utterance processing and the block catalog as stdio tools
package mcp

import (
	"github.com/aivix/bench/internal/core"
	"github.com/aivix/bench/internal/storage/sqlite"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, store *sqlite.Storage, pipeline *core.Pipeline, advisor *core.Advisor, logger *zap.Logger) *Handlers {
	handlers := NewHandlers(store, pipeline, advisor, logger)

	// 1. process_utterance - classify and route one utterance
	server.AddTool(mcp.Tool{
		Name:        "process_utterance",
		Description: "Classify a voice or text utterance as a command or plain text and return the resulting UI action (block details, block not found, blocks panel, generic command, or plain response).",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Raw utterance, e.g. 'покажи блок HTTP Request'",
				},
			},
			Required: []string{"text"},
		},
	}, handlers.ProcessUtterance)

	// 2. list_blocks - list the catalog
	server.AddTool(mcp.Tool{
		Name:        "list_blocks",
		Description: "List catalog blocks, optionally filtered by category or name substring. Always returns every category.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"category": map[string]interface{}{
					"type":        "string",
					"description": "Only blocks whose category contains this text",
				},
				"search": map[string]interface{}{
					"type":        "string",
					"description": "Only blocks whose name contains this text",
				},
			},
		},
	}, handlers.ListBlocks)

	// 3. get_block - one block by id
	server.AddTool(mcp.Tool{
		Name:        "get_block",
		Description: "Get a catalog block with its input and output schemas.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"block_id": map[string]interface{}{
					"type":        "string",
					"description": "Catalog block ID",
				},
			},
			Required: []string{"block_id"},
		},
	}, handlers.GetBlock)

	// 4. update_block_metadata - user-editable fields of a block
	server.AddTool(mcp.Tool{
		Name:        "update_block_metadata",
		Description: "Update the custom description, tags, or owning user of an existing block. Omitted fields are left unchanged.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"block_id": map[string]interface{}{
					"type":        "string",
					"description": "Catalog block ID",
				},
				"custom_description": map[string]interface{}{
					"type":        "string",
					"description": "User-written description",
				},
				"tags": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Replacement tag list",
				},
				"user_id": map[string]interface{}{
					"type":        "number",
					"description": "Owning user ID",
				},
			},
			Required: []string{"block_id"},
		},
	}, handlers.UpdateBlockMetadata)

	// 5. suggest_blocks - advisor
	server.AddTool(mcp.Tool{
		Name:        "suggest_blocks",
		Description: "Suggest which catalog blocks to use, and in what order, for a described automation goal.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "What the user wants to automate",
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SuggestBlocks)

	return handlers
}
