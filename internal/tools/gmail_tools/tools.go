package gmail_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/workspace-mcp/internal/gmail"
	"github.com/teemow/workspace-mcp/internal/google"
	"github.com/teemow/workspace-mcp/internal/server"
	"github.com/teemow/workspace-mcp/internal/tools/batch"
)

// getAccountFromArgs extracts the account name from request arguments, defaulting to "default"
func getAccountFromArgs(args map[string]interface{}) string {
	account := "default"
	if accountVal, ok := args["account"].(string); ok && accountVal != "" {
		account = accountVal
	}
	return account
}

// getGmailClient retrieves or creates a Gmail client for the specified account
func getGmailClient(ctx context.Context, account string, sc *server.ServerContext) (*gmail.Client, error) {
	client := sc.GmailClientForAccount(account)
	if client == nil {
		// Check if token exists before trying to create client
		if !gmail.HasTokenForAccount(account) {
			errorMsg := google.GetAuthenticationErrorMessage(account)
			return nil, fmt.Errorf("%s", errorMsg)
		}

		var err error
		client, err = gmail.NewClientForAccount(ctx, account)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gmail client for account %s: %w", account, err)
		}
		sc.SetGmailClientForAccount(account, client)
	}
	return client, nil
}

// RegisterGmailTools registers all Gmail-related tools with the MCP server
func RegisterGmailTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// Register attachment tools (read-only)
	if err := RegisterAttachmentTools(s, sc); err != nil {
		return fmt.Errorf("failed to register attachment tools: %w", err)
	}

	// Register contact tools (read-only)
	if err := RegisterContactTools(s, sc); err != nil {
		return fmt.Errorf("failed to register contact tools: %w", err)
	}

	// Register email tools (write operations require !readOnly)
	if err := RegisterEmailTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register email tools: %w", err)
	}

	// Register unsubscribe tools (safe operations, always available)
	if err := RegisterUnsubscribeTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register unsubscribe tools: %w", err)
	}

	// Register filter tools (listing always, mutations require !readOnly)
	if err := RegisterFilterTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register filter tools: %w", err)
	}

	// List threads tool
	listThreadsTool := mcp.NewTool("gmail_list_threads",
		mcp.WithDescription("List Gmail threads matching a query"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Gmail search query (e.g., 'in:inbox', 'from:user@example.com')"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of results to return (default: 10)"),
		),
	)

	s.AddTool(listThreadsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleListThreads(ctx, request, sc)
	})

	// Get thread tool
	getThreadTool := mcp.NewTool("gmail_get_thread",
		mcp.WithDescription("Get a Gmail thread with all its messages"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("threadId",
			mcp.Required(),
			mcp.Description("The ID of the thread to retrieve"),
		),
	)

	s.AddTool(getThreadTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleGetThread(ctx, request, sc)
	})

	if !readOnly {
		// Archive threads tool (supports single or multiple threads)
		archiveThreadsTool := mcp.NewTool("gmail_archive_threads",
			mcp.WithDescription("Archive one or more Gmail threads by removing them from the inbox"),
			mcp.WithString("account",
				mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
			),
			mcp.WithString("threadIds",
				mcp.Required(),
				mcp.Description("Thread ID (string) or array of thread IDs to archive"),
			),
		)

		s.AddTool(archiveThreadsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleArchiveThreads(ctx, request, sc)
		})
	}

	return nil
}

func handleListThreads(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := getAccountFromArgs(args)

	query, ok := args["query"].(string)
	if !ok || query == "" {
		return mcp.NewToolResultError("query is required"), nil
	}

	maxResults := int64(10)
	if maxResultsVal, ok := args["maxResults"]; ok {
		if maxResultsFloat, ok := maxResultsVal.(float64); ok {
			maxResults = int64(maxResultsFloat)
		}
	}

	client, err := getGmailClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	threads, err := client.ListThreads(query, maxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list threads: %v", err)), nil
	}

	result := fmt.Sprintf("Found %d threads:\n", len(threads))
	for i, thread := range threads {
		result += fmt.Sprintf("%d. Thread ID: %s (Snippet: %s)\n", i+1, thread.Id, thread.Snippet)
	}

	return mcp.NewToolResultText(result), nil
}

func handleGetThread(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := getAccountFromArgs(args)

	threadID, ok := args["threadId"].(string)
	if !ok || threadID == "" {
		return mcp.NewToolResultError("threadId is required"), nil
	}

	client, err := getGmailClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	thread, err := client.GetThread(threadID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get thread: %v", err)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Thread ID: %s\nMessages: %d\n", thread.Id, len(thread.Messages))
	for i, msg := range thread.Messages {
		fmt.Fprintf(&sb, "\n--- Message %d ---\n", i+1)
		fmt.Fprintf(&sb, "Message ID: %s\n", msg.Id)
		if from := gmail.HeaderValue(msg, "From"); from != "" {
			fmt.Fprintf(&sb, "From: %s\n", from)
		}
		if to := gmail.HeaderValue(msg, "To"); to != "" {
			fmt.Fprintf(&sb, "To: %s\n", to)
		}
		if date := gmail.HeaderValue(msg, "Date"); date != "" {
			fmt.Fprintf(&sb, "Date: %s\n", date)
		}
		if subject := gmail.HeaderValue(msg, "Subject"); subject != "" {
			fmt.Fprintf(&sb, "Subject: %s\n", subject)
		}
		if msg.Snippet != "" {
			fmt.Fprintf(&sb, "Snippet: %s\n", msg.Snippet)
		}
	}

	return mcp.NewToolResultText(sb.String()), nil
}

func handleArchiveThreads(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := getAccountFromArgs(args)

	// Parse threadIds - can be string or array
	threadIDs, err := batch.ParseStringOrArray(args["threadIds"], "threadIds")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := getGmailClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Process batch
	results := batch.ProcessBatch(threadIDs, func(threadID string) (string, error) {
		if err := client.ArchiveThread(threadID); err != nil {
			return "", err
		}
		return fmt.Sprintf("Thread %s archived successfully", threadID), nil
	})

	return mcp.NewToolResultText(batch.FormatResults(results)), nil
}
