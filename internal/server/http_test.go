package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
)

func TestNewHTTPServer(t *testing.T) {
	mcpSrv := mcpserver.NewMCPServer("test", "0.0.1")

	tests := []struct {
		name    string
		mcpSrv  *mcpserver.MCPServer
		config  HTTPServerConfig
		wantErr bool
	}{
		{
			name:   "default config",
			mcpSrv: mcpSrv,
			config: HTTPServerConfig{},
		},
		{
			name:   "streaming disabled",
			mcpSrv: mcpSrv,
			config: HTTPServerConfig{DisableStreaming: true},
		},
		{
			name:    "nil mcp server",
			mcpSrv:  nil,
			config:  HTTPServerConfig{},
			wantErr: true,
		},
		{
			name:    "cert without key",
			mcpSrv:  mcpSrv,
			config:  HTTPServerConfig{TLSCertFile: "/tmp/cert.pem"},
			wantErr: true,
		},
		{
			name:    "key without cert",
			mcpSrv:  mcpSrv,
			config:  HTTPServerConfig{TLSKeyFile: "/tmp/key.pem"},
			wantErr: true,
		},
		{
			name:   "cert and key",
			mcpSrv: mcpSrv,
			config: HTTPServerConfig{TLSCertFile: "/tmp/cert.pem", TLSKeyFile: "/tmp/key.pem"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, err := NewHTTPServer(tt.mcpSrv, tt.config)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewHTTPServer() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && srv == nil {
				t.Fatal("NewHTTPServer() returned nil server without error")
			}
		})
	}
}

func TestHTTPServerShutdownWithoutStart(t *testing.T) {
	mcpSrv := mcpserver.NewMCPServer("test", "0.0.1")
	srv, err := NewHTTPServer(mcpSrv, HTTPServerConfig{})
	if err != nil {
		t.Fatalf("NewHTTPServer() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown() before Start() should be a no-op, got error: %v", err)
	}
}

func TestStatusRecorder(t *testing.T) {
	rr := httptest.NewRecorder()
	rec := &statusRecorder{ResponseWriter: rr, status: http.StatusOK}

	rec.WriteHeader(http.StatusNotFound)
	if rec.status != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.status, http.StatusNotFound)
	}

	// Subsequent WriteHeader calls must not overwrite the recorded status
	rec.WriteHeader(http.StatusInternalServerError)
	if rec.status != http.StatusNotFound {
		t.Errorf("status after second WriteHeader = %d, want %d", rec.status, http.StatusNotFound)
	}
}
