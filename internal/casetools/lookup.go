// Package casetools implements the MCP tools over the fraud-case
// store: look a case up by the customer's user name, then record the
// review outcome. These are the only two operations the verification
// agent needs; everything else about the call lives in its persona
// instructions.
package casetools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Xzone2486/Murf/internal/cases"
	"github.com/mark3labs/mcp-go/mcp"
)

// LookupTool handles the case_lookup MCP tool.
type LookupTool struct {
	store *cases.Store
}

// NewLookupTool creates a LookupTool with the given case store.
func NewLookupTool(store *cases.Store) *LookupTool {
	return &LookupTool{store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *LookupTool) Definition() mcp.Tool {
	return mcp.NewTool("case_lookup",
		mcp.WithDescription(
			"Look up the fraud case on file for a customer. Returns the "+
				"flagged transaction details plus the security question to ask "+
				"before reading anything sensitive aloud. The name match is "+
				"case-insensitive.",
		),
		mcp.WithString("user_name",
			mcp.Required(),
			mcp.Description("The customer's username, as they said it"),
		),
	)
}

// Handle processes the case_lookup tool call.
func (t *LookupTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userName := strings.TrimSpace(req.GetString("user_name", ""))
	if userName == "" {
		return mcp.NewToolResultError("'user_name' is required — ask the customer for their username"), nil
	}

	c, err := t.store.Get(userName)
	if err != nil {
		if errors.Is(err, cases.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf(
				"No case on file for %q. Ask the customer to spell their username.", userName,
			)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("case lookup failed: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Case #%d for %s (card ending %s, status: %s)\n"+
			"- Transaction: %s for %s\n"+
			"- Time: %s\n"+
			"- Category: %s via %s\n"+
			"- Security question to ask: %s\n"+
			"- Expected answer: %s\n\n"+
			"Verify the customer with the security question before reading the "+
			"transaction details aloud.",
		c.ID, c.UserName, c.CardEnding, c.Status,
		c.TransactionName, c.TransactionAmount,
		c.TransactionTime,
		c.TransactionCategory, c.TransactionSource,
		c.SecurityQuestion, c.SecurityAnswer,
	)), nil
}
