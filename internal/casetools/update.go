package casetools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Xzone2486/Murf/internal/cases"
	"github.com/mark3labs/mcp-go/mcp"
)

// UpdateTool handles the case_update MCP tool: record the review
// outcome once the customer has confirmed or denied the transaction.
type UpdateTool struct {
	store *cases.Store
}

// NewUpdateTool creates an UpdateTool with the given case store.
func NewUpdateTool(store *cases.Store) *UpdateTool {
	return &UpdateTool{store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *UpdateTool) Definition() mcp.Tool {
	return mcp.NewTool("case_update",
		mcp.WithDescription(
			"Record the outcome of the fraud review: confirmed_safe when the "+
				"customer recognizes the transaction, confirmed_fraud when they "+
				"deny it (the card gets blocked).",
		),
		mcp.WithString("user_name",
			mcp.Required(),
			mcp.Description("The customer's username the case is filed under"),
		),
		mcp.WithString("status",
			mcp.Required(),
			mcp.Description("The review outcome"),
			mcp.Enum(cases.StatusConfirmedSafe, cases.StatusConfirmedFraud),
		),
		mcp.WithString("note",
			mcp.Description("Short note on how the outcome was reached"),
		),
	)
}

// Handle processes the case_update tool call.
func (t *UpdateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userName := strings.TrimSpace(req.GetString("user_name", ""))
	if userName == "" {
		return mcp.NewToolResultError("'user_name' is required"), nil
	}
	status := req.GetString("status", "")
	if err := cases.ValidateOutcome(status); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	note := req.GetString("note", "")

	c, err := t.store.Get(userName)
	if err != nil {
		if errors.Is(err, cases.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("No case on file for %q.", userName)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("case lookup failed: %v", err)), nil
	}

	if err := t.store.UpdateStatus(c.ID, status, note); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("case update failed: %v", err)), nil
	}

	outcome := "The transaction is confirmed as legitimate — reassure the customer."
	if status == cases.StatusConfirmedFraud {
		outcome = "The card has been blocked and a replacement is on the way — tell the customer."
	}
	return mcp.NewToolResultText(fmt.Sprintf(
		"Case #%d for %s marked %s. %s", c.ID, c.UserName, status, outcome,
	)), nil
}
