package drive

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/teemow/workspace-mcp/internal/logging"
)

// RootFolderID is the alias the Drive API accepts for the root of My Drive.
const RootFolderID = "root"

// TreeBackend is the narrow listing surface the traversal algorithms run
// against. *Client satisfies it; tests substitute an in-memory fake.
type TreeBackend interface {
	// ListChildren returns the direct, non-trashed children of parentID in
	// the backend's listing order (name order for Drive). When foldersOnly
	// is set, only folders are returned.
	ListChildren(ctx context.Context, parentID string, foldersOnly bool) ([]*FileInfo, error)

	// CreateFolder creates a folder under the given parents.
	CreateFolder(ctx context.Context, name string, parentFolders []string) (*FileInfo, error)
}

// NotFoundError reports a path segment that could not be resolved.
type NotFoundError struct {
	// Segment is the path component that has no matching folder.
	Segment string

	// Path is the full path that was being resolved.
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("folder %q not found while resolving path %q", e.Segment, e.Path)
}

// TreeNode is one node of a nested folder tree.
type TreeNode struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Kind     string `json:"kind"` // "folder" or "file"
	MimeType string `json:"mimeType,omitempty"`
	Size     int64  `json:"size,omitempty"`

	// Children is only set when the node has at least one qualifying
	// descendant, so empty folders serialize without the field.
	Children []*TreeNode `json:"children,omitempty"`
}

// Node kinds used in TreeNode.Kind.
const (
	KindFolder = "folder"
	KindFile   = "file"
)

// ListedEntry is one row of a flattened recursive listing.
type ListedEntry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Path     string `json:"path"`
	MimeType string `json:"mimeType"`
	IsFolder bool   `json:"isFolder"`
	Size     int64  `json:"size,omitempty"`
	Depth    int    `json:"depth"`
}

// RecursiveListOptions controls ListRecursive.
type RecursiveListOptions struct {
	// MaxDepth bounds the traversal. Depth 0 is the root's direct
	// children; entries at MaxDepth are included but not expanded.
	MaxDepth int

	// IncludeFiles includes non-folder entries in the output.
	IncludeFiles bool

	// IncludeFolders includes folder entries in the output. Folders are
	// traversed either way so their descendants stay reachable.
	IncludeFolders bool

	// MimeType, when set, restricts file entries to this MIME type.
	// Folders are never filtered by it.
	MimeType string
}

// ResolveFolderPath walks a slash-delimited folder path one segment at a
// time, starting at the Drive root, and returns the ID of the final
// segment's folder. Empty segments are discarded, so "/a//b/" and "a/b"
// resolve identically, and an empty path returns the root ID.
//
// When a segment has no matching folder and createIfMissing is set, the
// folder is created under the current parent. Otherwise resolution aborts
// with a *NotFoundError naming the missing segment.
//
// If several sibling folders share a segment's name, the first one in the
// backend's listing order wins. Drive lists in name order here, but the
// choice is ultimately the backend's.
func ResolveFolderPath(ctx context.Context, backend TreeBackend, path string, createIfMissing bool) (string, error) {
	currentID := RootFolderID

	for _, segment := range strings.Split(path, "/") {
		if segment == "" {
			continue
		}

		children, err := backend.ListChildren(ctx, currentID, true)
		if err != nil {
			return "", fmt.Errorf("failed to list folders while resolving %q: %w", path, err)
		}

		var match *FileInfo
		for _, child := range children {
			if child.Name == segment {
				match = child
				break
			}
		}

		switch {
		case match != nil:
			currentID = match.ID
		case createIfMissing:
			created, err := backend.CreateFolder(ctx, segment, []string{currentID})
			if err != nil {
				return "", fmt.Errorf("failed to create folder %q in path %q: %w", segment, path, err)
			}
			currentID = created.ID
		default:
			return "", &NotFoundError{Segment: segment, Path: path}
		}
	}

	return currentID, nil
}

// BuildTree assembles a nested tree of the folders (and, when includeLeaves
// is set, files) below rootID. Depth 0 is the root's children; nothing
// below maxDepth is materialized, and maxDepth <= 0 returns the bare root
// without touching the backend.
//
// Folders whose own listing is empty carry no information and are pruned,
// as are folders at the depth bound, whose contents are never fetched.
// Backend failures abort the whole build.
func BuildTree(ctx context.Context, backend TreeBackend, rootID string, maxDepth int, includeLeaves bool) (*TreeNode, error) {
	root := &TreeNode{ID: rootID, Kind: KindFolder}
	if maxDepth <= 0 {
		return root, nil
	}

	children, _, err := buildLevel(ctx, backend, rootID, 0, maxDepth, includeLeaves)
	if err != nil {
		return nil, err
	}
	if len(children) > 0 {
		root.Children = children
	}
	return root, nil
}

// buildLevel lists the children of parentID at the given depth and returns
// the qualifying nodes plus the raw listing size. The listing one level
// past the emitted depth is still fetched so a parent can tell empty
// folders apart from populated ones.
func buildLevel(ctx context.Context, backend TreeBackend, parentID string, depth, maxDepth int, includeLeaves bool) ([]*TreeNode, int, error) {
	entries, err := backend.ListChildren(ctx, parentID, !includeLeaves)
	if err != nil {
		return nil, 0, err
	}
	if depth >= maxDepth {
		return nil, len(entries), nil
	}

	var nodes []*TreeNode
	for _, entry := range entries {
		if !entry.IsFolder() {
			if includeLeaves {
				nodes = append(nodes, &TreeNode{
					ID:       entry.ID,
					Name:     entry.Name,
					Kind:     KindFile,
					MimeType: entry.MimeType,
					Size:     entry.Size,
				})
			}
			continue
		}

		sub, raw, err := buildLevel(ctx, backend, entry.ID, depth+1, maxDepth, includeLeaves)
		if err != nil {
			return nil, 0, err
		}
		if raw == 0 {
			continue
		}

		node := &TreeNode{ID: entry.ID, Name: entry.Name, Kind: KindFolder}
		if len(sub) > 0 {
			node.Children = sub
		}
		nodes = append(nodes, node)
	}

	return nodes, len(entries), nil
}

// ListRecursive flattens the hierarchy below rootID into a pre-order list
// of entries annotated with a computed path ("name" for the root's direct
// children, "parentPath/name" below that) and depth. Siblings keep the
// backend's listing order.
//
// A per-call visited set guards against cycles: a folder already expanded
// is skipped entirely, so the walk terminates even when the backend lists
// a folder as its own descendant. Listing failures inside a branch are
// logged and contribute zero entries rather than aborting the traversal.
func ListRecursive(ctx context.Context, backend TreeBackend, rootID string, opts RecursiveListOptions) []*ListedEntry {
	if opts.MaxDepth < 0 {
		return nil
	}

	visited := map[string]bool{rootID: true}
	var out []*ListedEntry
	listLevel(ctx, backend, rootID, "", 0, opts, visited, &out)
	return out
}

// listLevel appends the qualifying entries of parentID at the given depth
// and recurses into unvisited folders while depth < MaxDepth.
func listLevel(ctx context.Context, backend TreeBackend, parentID, prefix string, depth int, opts RecursiveListOptions, visited map[string]bool, out *[]*ListedEntry) {
	entries, err := backend.ListChildren(ctx, parentID, !opts.IncludeFiles)
	if err != nil {
		slog.Warn("skipping unreadable folder during recursive listing",
			slog.String("folderId", parentID),
			slog.Int("depth", depth),
			logging.Err(err))
		return
	}

	for _, entry := range entries {
		path := entry.Name
		if prefix != "" {
			path = prefix + "/" + entry.Name
		}

		if !entry.IsFolder() {
			if !opts.IncludeFiles {
				continue
			}
			if opts.MimeType != "" && entry.MimeType != opts.MimeType {
				continue
			}
			*out = append(*out, &ListedEntry{
				ID:       entry.ID,
				Name:     entry.Name,
				Path:     path,
				MimeType: entry.MimeType,
				Size:     entry.Size,
				Depth:    depth,
			})
			continue
		}

		if visited[entry.ID] {
			continue
		}
		visited[entry.ID] = true

		if opts.IncludeFolders {
			*out = append(*out, &ListedEntry{
				ID:       entry.ID,
				Name:     entry.Name,
				Path:     path,
				MimeType: entry.MimeType,
				IsFolder: true,
				Depth:    depth,
			})
		}

		if depth < opts.MaxDepth {
			listLevel(ctx, backend, entry.ID, path, depth+1, opts, visited, out)
		}
	}
}
