package cmd

import (
	"testing"
)

func TestLoadMetricsEnvVars(t *testing.T) {
	tests := []struct {
		name        string
		flagArgs    []string
		envEnabled  string
		envAddr     string
		wantEnabled bool
		wantAddr    string
	}{
		{
			name:        "defaults without env",
			wantEnabled: true,
			wantAddr:    ":9090",
		},
		{
			name:        "env disables metrics",
			envEnabled:  "false",
			wantEnabled: false,
			wantAddr:    ":9090",
		},
		{
			name:        "env overrides address",
			envAddr:     ":9999",
			wantEnabled: true,
			wantAddr:    ":9999",
		},
		{
			name:        "flag wins over env",
			flagArgs:    []string{"--metrics-addr", ":7070"},
			envAddr:     ":9999",
			wantEnabled: true,
			wantAddr:    ":7070",
		},
		{
			name:        "enabled flag wins over env",
			flagArgs:    []string{"--metrics-enabled=true"},
			envEnabled:  "false",
			wantEnabled: true,
			wantAddr:    ":9090",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envEnabled != "" {
				t.Setenv("METRICS_ENABLED", tt.envEnabled)
			}
			if tt.envAddr != "" {
				t.Setenv("METRICS_ADDR", tt.envAddr)
			}

			cmd := newServeCmd()
			if err := cmd.Flags().Parse(tt.flagArgs); err != nil {
				t.Fatalf("failed to parse flags: %v", err)
			}

			enabled, err := cmd.Flags().GetBool("metrics-enabled")
			if err != nil {
				t.Fatalf("failed to get metrics-enabled flag: %v", err)
			}
			addr, err := cmd.Flags().GetString("metrics-addr")
			if err != nil {
				t.Fatalf("failed to get metrics-addr flag: %v", err)
			}

			config := MetricsConfig{Enabled: enabled, Addr: addr}
			loadMetricsEnvVars(cmd, &config)

			if config.Enabled != tt.wantEnabled {
				t.Errorf("Enabled = %v, want %v", config.Enabled, tt.wantEnabled)
			}
			if config.Addr != tt.wantAddr {
				t.Errorf("Addr = %q, want %q", config.Addr, tt.wantAddr)
			}
		})
	}
}

func TestServeCommandFlags(t *testing.T) {
	cmd := newServeCmd()
	if cmd.Use != "serve" {
		t.Errorf("Use = %q, want %q", cmd.Use, "serve")
	}
	for _, flag := range []string{"transport", "http-addr", "yolo", "disable-streaming", "metrics-enabled", "metrics-addr", "tls-cert-file", "tls-key-file"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("serve command is missing flag %q", flag)
		}
	}
}
