// Package gmail_tools provides MCP (Model Context Protocol) tools for interacting with Gmail.
//
// This package exposes Gmail functionality through MCP tools that can be called by
// AI agents or other MCP clients. It provides capabilities for:
//
// Thread Management:
//   - gmail_list_threads: List Gmail threads matching a search query
//   - gmail_get_thread: Get the messages of a thread with headers and snippets
//   - gmail_archive_threads: Archive threads by removing them from inbox
//
// Email Composition:
//   - gmail_send_email: Send a new email, optionally with attachments
//   - gmail_reply_email: Reply to an existing message within its thread
//   - gmail_forward_email: Forward a message with its attachments
//
// Attachment Management:
//   - gmail_list_attachments: List all attachments in a message
//   - gmail_get_attachment: Retrieve attachment content (base64 or text)
//   - gmail_save_attachment: Save an attachment to a local directory
//   - gmail_get_message_bodies: Extract text or HTML bodies from messages
//   - gmail_extract_doc_links: Extract Google Docs/Drive links from a message
//
// Filters, contacts and unsubscribe tools are registered alongside these,
// see the respective files for the full tool list.
//
// All tools require an authenticated Gmail client which is provided through the
// server context. The client handles OAuth2 authentication and token management.
//
// Example usage of attachment tools:
//
//	// List attachments in a message
//	gmail_list_attachments(messageId: "msg123")
//
//	// Get attachment content as base64
//	gmail_get_attachment(messageId: "msg123", attachmentId: "att456", encoding: "base64")
//
//	// Get attachment content as text (for .ics, .txt, etc.)
//	gmail_get_attachment(messageId: "msg123", attachmentId: "att456", encoding: "text")
//
//	// Extract message body
//	gmail_get_message_body(messageId: "msg123", format: "text")
//
// Security Considerations:
//   - Attachment size is limited to 25MB (MaxAttachmentSize)
//   - Filenames are sanitized to prevent path traversal attacks
//   - OAuth2 tokens are securely stored and refreshed automatically
//
// The package follows the project's architecture principles:
//   - Dependency injection for testability
//   - Error wrapping with context
//   - Proper GoDoc documentation for all exported functions
package gmail_tools
