package drive_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/workspace-mcp/internal/drive"
	"github.com/teemow/workspace-mcp/internal/server"
)

// registerFolderTools registers folder management and traversal tools
func registerFolderTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if !readOnly {
		// Create folder tool
		createFolderTool := mcp.NewTool("drive_create_folder",
			mcp.WithDescription("Create a new folder in Google Drive"),
			mcp.WithString("account",
				mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
			),
			mcp.WithString("name",
				mcp.Required(),
				mcp.Description("The name of the folder"),
			),
			mcp.WithString("parentFolders",
				mcp.Description("Comma-separated list of parent folder IDs where the folder should be created"),
			),
		)

		s.AddTool(createFolderTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, _ := request.Params.Arguments.(map[string]interface{})
			account := getAccountFromArgs(args)

			name, ok := args["name"].(string)
			if !ok || name == "" {
				return mcp.NewToolResultError("name is required"), nil
			}

			client, err := getDriveClient(ctx, account, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			var parentFolders []string
			if parentFoldersStr, ok := args["parentFolders"].(string); ok && parentFoldersStr != "" {
				parentFolders = parseCommaList(parentFoldersStr)
			}

			folderInfo, err := client.CreateFolder(ctx, name, parentFolders)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to create folder: %v", err)), nil
			}

			result, _ := json.MarshalIndent(folderInfo, "", "  ")
			return mcp.NewToolResultText(fmt.Sprintf("Folder created successfully:\n%s", string(result))), nil
		})

		// Create folder path tool (mkdir -p behavior)
		createFolderPathTool := mcp.NewTool("drive_create_folder_path",
			mcp.WithDescription("Resolve a slash-delimited folder path starting at the Drive root, creating any missing folders along the way"),
			mcp.WithString("account",
				mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
			),
			mcp.WithString("path",
				mcp.Required(),
				mcp.Description("Slash-delimited folder path (e.g. 'Projects/2026/Reports')"),
			),
		)

		s.AddTool(createFolderPathTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, _ := request.Params.Arguments.(map[string]interface{})
			account := getAccountFromArgs(args)

			path, ok := args["path"].(string)
			if !ok {
				return mcp.NewToolResultError("path is required"), nil
			}

			client, err := getDriveClient(ctx, account, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			folderID, err := drive.ResolveFolderPath(ctx, client, path, true)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to create folder path: %v", err)), nil
			}

			result, _ := json.MarshalIndent(map[string]string{
				"folderId": folderID,
				"path":     path,
			}, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		})

		// Move/rename file tool
		moveFileTool := mcp.NewTool("drive_move_file",
			mcp.WithDescription("Move or rename a file in Google Drive"),
			mcp.WithString("account",
				mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
			),
			mcp.WithString("fileId",
				mcp.Required(),
				mcp.Description("The ID of the file to move or rename"),
			),
			mcp.WithString("newName",
				mcp.Description("The new name for the file (leave empty to keep current name)"),
			),
			mcp.WithString("addParents",
				mcp.Description("Comma-separated list of folder IDs to add as parents"),
			),
			mcp.WithString("removeParents",
				mcp.Description("Comma-separated list of folder IDs to remove as parents"),
			),
		)

		s.AddTool(moveFileTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, _ := request.Params.Arguments.(map[string]interface{})
			account := getAccountFromArgs(args)

			fileID, ok := args["fileId"].(string)
			if !ok || fileID == "" {
				return mcp.NewToolResultError("fileId is required"), nil
			}

			client, err := getDriveClient(ctx, account, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			options := &drive.MoveOptions{}

			if newName, ok := args["newName"].(string); ok && newName != "" {
				options.NewName = newName
			}

			if addParents, ok := args["addParents"].(string); ok && addParents != "" {
				options.AddParents = parseCommaList(addParents)
			}

			if removeParents, ok := args["removeParents"].(string); ok && removeParents != "" {
				options.RemoveParents = parseCommaList(removeParents)
			}

			// Check if at least one operation is specified
			if options.NewName == "" && len(options.AddParents) == 0 && len(options.RemoveParents) == 0 {
				return mcp.NewToolResultError("At least one of newName, addParents, or removeParents must be specified"), nil
			}

			fileInfo, err := client.MoveFile(ctx, fileID, options)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to move file: %v", err)), nil
			}

			result, _ := json.MarshalIndent(fileInfo, "", "  ")
			return mcp.NewToolResultText(fmt.Sprintf("File moved/renamed successfully:\n%s", string(result))), nil
		})

		// Copy file tool
		copyFileTool := mcp.NewTool("drive_copy_file",
			mcp.WithDescription("Copy a file in Google Drive, optionally with a new name and parent folders"),
			mcp.WithString("account",
				mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
			),
			mcp.WithString("fileId",
				mcp.Required(),
				mcp.Description("The ID of the file to copy"),
			),
			mcp.WithString("newName",
				mcp.Description("The name for the copy (leave empty to keep current name)"),
			),
			mcp.WithString("parentFolders",
				mcp.Description("Comma-separated list of parent folder IDs for the copy"),
			),
		)

		s.AddTool(copyFileTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, _ := request.Params.Arguments.(map[string]interface{})
			account := getAccountFromArgs(args)

			fileID, ok := args["fileId"].(string)
			if !ok || fileID == "" {
				return mcp.NewToolResultError("fileId is required"), nil
			}

			client, err := getDriveClient(ctx, account, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			newName, _ := args["newName"].(string)
			var parentFolders []string
			if parentFoldersStr, ok := args["parentFolders"].(string); ok && parentFoldersStr != "" {
				parentFolders = parseCommaList(parentFoldersStr)
			}

			fileInfo, err := client.CopyFile(ctx, fileID, newName, parentFolders)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to copy file: %v", err)), nil
			}

			result, _ := json.MarshalIndent(fileInfo, "", "  ")
			return mcp.NewToolResultText(fmt.Sprintf("File copied successfully:\n%s", string(result))), nil
		})
	}

	// Resolve folder path tool (read-only, always available)
	resolvePathTool := mcp.NewTool("drive_resolve_path",
		mcp.WithDescription("Resolve a slash-delimited folder path starting at the Drive root and return the folder ID. Fails if any segment does not exist."),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Slash-delimited folder path (e.g. 'Projects/2026/Reports'). An empty path resolves to the root."),
		),
	)

	s.AddTool(resolvePathTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := getAccountFromArgs(args)

		path, ok := args["path"].(string)
		if !ok {
			return mcp.NewToolResultError("path is required"), nil
		}

		client, err := getDriveClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		folderID, err := drive.ResolveFolderPath(ctx, client, path, false)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to resolve path: %v", err)), nil
		}

		result, _ := json.MarshalIndent(map[string]string{
			"folderId": folderID,
			"path":     path,
		}, "", "  ")
		return mcp.NewToolResultText(string(result)), nil
	})

	// Folder tree tool
	folderTreeTool := mcp.NewTool("drive_folder_tree",
		mcp.WithDescription("Build a nested tree of the folders below a root folder, optionally including files"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("folderId",
			mcp.Description("The root folder ID (default: the Drive root)"),
		),
		mcp.WithNumber("maxDepth",
			mcp.Description("Maximum tree depth; 0 returns the bare root (default: 3)"),
		),
		mcp.WithBoolean("includeFiles",
			mcp.Description("Include files as leaf nodes (default: false, folders only)"),
		),
	)

	s.AddTool(folderTreeTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := getAccountFromArgs(args)

		client, err := getDriveClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		folderID := drive.RootFolderID
		if id, ok := args["folderId"].(string); ok && id != "" {
			folderID = id
		}

		maxDepth := 3
		if depth, ok := args["maxDepth"].(float64); ok {
			maxDepth = int(depth)
		}

		includeFiles := false
		if include, ok := args["includeFiles"].(bool); ok {
			includeFiles = include
		}

		tree, err := drive.BuildTree(ctx, client, folderID, maxDepth, includeFiles)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to build folder tree: %v", err)), nil
		}

		// The traversal only knows the root by ID; name it for the output.
		if folderID != drive.RootFolderID {
			if info, err := client.GetFile(ctx, folderID); err == nil {
				tree.Name = info.Name
			}
		}

		result, _ := json.MarshalIndent(tree, "", "  ")
		return mcp.NewToolResultText(string(result)), nil
	})

	// Recursive listing tool
	listRecursiveTool := mcp.NewTool("drive_list_recursive",
		mcp.WithDescription("Recursively list the files and folders below a root folder as a flat list with computed paths"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("folderId",
			mcp.Description("The root folder ID (default: the Drive root)"),
		),
		mcp.WithNumber("maxDepth",
			mcp.Description("Maximum traversal depth; entries at the boundary are listed but not descended into (default: 5)"),
		),
		mcp.WithBoolean("includeFiles",
			mcp.Description("Include files in the output (default: true)"),
		),
		mcp.WithBoolean("includeFolders",
			mcp.Description("Include folders in the output; folders are traversed either way (default: true)"),
		),
		mcp.WithString("mimeType",
			mcp.Description("Only list files of this MIME type; folders are unaffected"),
		),
	)

	s.AddTool(listRecursiveTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := getAccountFromArgs(args)

		client, err := getDriveClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		folderID := drive.RootFolderID
		if id, ok := args["folderId"].(string); ok && id != "" {
			folderID = id
		}

		opts := drive.RecursiveListOptions{
			MaxDepth:       5,
			IncludeFiles:   true,
			IncludeFolders: true,
		}
		if depth, ok := args["maxDepth"].(float64); ok {
			opts.MaxDepth = int(depth)
		}
		if include, ok := args["includeFiles"].(bool); ok {
			opts.IncludeFiles = include
		}
		if include, ok := args["includeFolders"].(bool); ok {
			opts.IncludeFolders = include
		}
		if mimeType, ok := args["mimeType"].(string); ok && mimeType != "" {
			opts.MimeType = mimeType
		}

		entries := drive.ListRecursive(ctx, client, folderID, opts)

		response := map[string]interface{}{
			"items": entries,
			"count": len(entries),
		}
		result, _ := json.MarshalIndent(response, "", "  ")
		return mcp.NewToolResultText(string(result)), nil
	})

	return nil
}
