// Package server provides the MCP server context, the streamable HTTP
// transport and the operational endpoints for the workspace-mcp application.
//
// # Key Components
//
// ServerContext manages Google API clients with lazy initialization and
// caching. It supports multiple accounts and pluggable token providers:
//   - FileTokenProvider: the default, reads per-account tokens from disk
//   - custom providers can be injected via SetTokenProvider
//
// HTTPServer wraps an MCP server with the streamable HTTP transport,
// optional TLS, HTTP request metrics and health check endpoints.
//
// HealthChecker serves liveness (/healthz), readiness (/readyz) and
// detailed health (/healthz/detailed) endpoints, both on the transport
// mux and on the dedicated metrics server.
//
// MetricsServer exposes Prometheus metrics on a dedicated port, kept
// separate from the MCP transport so scrapes never contend with tool
// traffic.
package server
