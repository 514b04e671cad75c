package gmail_tools

import (
	"encoding/base64"
	"testing"
)

func TestGetAccountFromArgs(t *testing.T) {
	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{
			name: "with account specified",
			args: map[string]interface{}{
				"account": "work",
			},
			want: "work",
		},
		{
			name: "without account specified",
			args: map[string]interface{}{},
			want: "default",
		},
		{
			name: "with empty account string",
			args: map[string]interface{}{
				"account": "",
			},
			want: "default",
		},
		{
			name: "with non-string account",
			args: map[string]interface{}{
				"account": 123,
			},
			want: "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := getAccountFromArgs(tt.args)
			if got != tt.want {
				t.Errorf("getAccountFromArgs() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Test email tools package
func TestEmailToolsPackage(t *testing.T) {
	// Test that the package compiles and basic functionality works
	result := splitEmailAddresses("test@example.com")
	if len(result) != 1 || result[0] != "test@example.com" {
		t.Error("splitEmailAddresses not working correctly")
	}
}

func TestParseAttachments(t *testing.T) {
	tests := []struct {
		name    string
		raw     interface{}
		want    int
		wantErr bool
	}{
		{
			name: "valid attachment",
			raw: []interface{}{
				map[string]interface{}{
					"filename": "report.txt",
					"mimeType": "text/plain",
					"data":     base64.StdEncoding.EncodeToString([]byte("hello")),
				},
			},
			want: 1,
		},
		{
			name: "nil is no attachments",
			raw:  nil,
			want: 0,
		},
		{
			name:    "not an array",
			raw:     "report.txt",
			wantErr: true,
		},
		{
			name: "missing filename",
			raw: []interface{}{
				map[string]interface{}{
					"data": base64.StdEncoding.EncodeToString([]byte("hello")),
				},
			},
			wantErr: true,
		},
		{
			name: "missing data",
			raw: []interface{}{
				map[string]interface{}{
					"filename": "report.txt",
				},
			},
			wantErr: true,
		},
		{
			name: "invalid base64",
			raw: []interface{}{
				map[string]interface{}{
					"filename": "report.txt",
					"data":     "not base64!!!",
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAttachments(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseAttachments() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && len(got) != tt.want {
				t.Errorf("parseAttachments() returned %d attachments, want %d", len(got), tt.want)
			}
		})
	}
}

func TestParseAttachmentsDecodesData(t *testing.T) {
	raw := []interface{}{
		map[string]interface{}{
			"filename": "data.bin",
			"mimeType": "application/octet-stream",
			"data":     base64.StdEncoding.EncodeToString([]byte{0x00, 0x01, 0x02}),
		},
	}

	attachments, err := parseAttachments(raw)
	if err != nil {
		t.Fatalf("parseAttachments() error = %v", err)
	}
	if len(attachments) != 1 {
		t.Fatalf("expected 1 attachment, got %d", len(attachments))
	}
	if attachments[0].Filename != "data.bin" {
		t.Errorf("Filename = %q, want data.bin", attachments[0].Filename)
	}
	if len(attachments[0].Data) != 3 || attachments[0].Data[0] != 0x00 {
		t.Errorf("attachment data not decoded correctly: %v", attachments[0].Data)
	}
}
