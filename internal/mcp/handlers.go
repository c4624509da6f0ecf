// ABOUTME: MCP tool handler implementations for the aivix server
// ABOUTME: Every failure becomes a tool error result, never a protocol error
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aivix/bench/internal/core"
	"github.com/aivix/bench/internal/models"
	"github.com/aivix/bench/internal/storage/sqlite"
	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	storage  *sqlite.Storage
	pipeline *core.Pipeline
	advisor  *core.Advisor
	logger   *zap.Logger
}

// NewHandlers creates handlers over the catalog, pipeline and advisor
func NewHandlers(store *sqlite.Storage, pipeline *core.Pipeline, advisor *core.Advisor, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		storage:  store,
		pipeline: pipeline,
		advisor:  advisor,
		logger:   logger,
	}
}

// ProcessUtterance handles the process_utterance tool
func (h *Handlers) ProcessUtterance(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text argument is required and must be a string"), nil
	}

	action, err := h.pipeline.ProcessUtterance(ctx, text)
	if err != nil {
		h.logger.Error("process_utterance failed", zap.Error(err))
		return mcp.NewToolResultError(fmt.Sprintf("processing failed: %v", err)), nil
	}

	return jsonResult(action)
}

// ListBlocks handles the list_blocks tool
func (h *Handlers) ListBlocks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter := models.BlockFilter{
		Category: request.GetString("category", ""),
		Search:   request.GetString("search", ""),
	}

	blocks, categories, err := h.storage.ListBlocks(ctx, filter)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list blocks: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"blocks":     blocks,
		"categories": categories,
	})
}

// GetBlock handles the get_block tool
func (h *Handlers) GetBlock(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	blockID, err := request.RequireString("block_id")
	if err != nil {
		return mcp.NewToolResultError("block_id argument is required and must be a string"), nil
	}

	block, err := h.storage.GetBlock(ctx, blockID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get block: %v", err)), nil
	}
	if block == nil {
		return mcp.NewToolResultError(fmt.Sprintf("block %q not found", blockID)), nil
	}

	return jsonResult(block)
}

// UpdateBlockMetadata handles the update_block_metadata tool
func (h *Handlers) UpdateBlockMetadata(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	blockID, err := request.RequireString("block_id")
	if err != nil {
		return mcp.NewToolResultError("block_id argument is required and must be a string"), nil
	}

	in := models.BlockMetadataInput{BlockID: blockID}

	// Type assert Arguments to map so absent fields stay nil
	if args, ok := request.Params.Arguments.(map[string]any); ok {
		if raw, exists := args["custom_description"]; exists {
			desc, ok := raw.(string)
			if !ok {
				return mcp.NewToolResultError("custom_description must be a string"), nil
			}
			in.CustomDescription = &desc
		}

		if raw, exists := args["tags"]; exists {
			arr, ok := raw.([]interface{})
			if !ok {
				return mcp.NewToolResultError("tags must be an array of strings"), nil
			}
			in.Tags = extractStringArray(arr)
		}

		if raw, exists := args["user_id"]; exists {
			num, ok := raw.(float64)
			if !ok {
				return mcp.NewToolResultError("user_id must be a number"), nil
			}
			id := int64(num)
			in.UserID = &id
		}
	}

	if err := in.Validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	updated, err := h.storage.UpdateMetadata(ctx, in)
	if errors.Is(err, sqlite.ErrBlockNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("block %q not found", blockID)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to update metadata: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"success": true,
		"block":   updated,
	})
}

// SuggestBlocks handles the suggest_blocks tool
func (h *Handlers) SuggestBlocks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	suggestion, err := h.advisor.SuggestBlocks(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("suggestion failed: %v", err)), nil
	}

	return jsonResult(suggestion)
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	responseJSON, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// extractStringArray keeps the string items of a decoded JSON array
func extractStringArray(arr []interface{}) []string {
	result := make([]string, 0, len(arr))
	for _, item := range arr {
		if str, ok := item.(string); ok {
			result = append(result, str)
		}
	}
	return result
}
