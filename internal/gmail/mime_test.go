package gmail

import (
	"encoding/base64"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decodeRaw decodes the base64url message and parses it as an RFC 2822
// message.
func decodeRaw(t *testing.T, raw string) *mail.Message {
	t.Helper()
	data, err := base64.URLEncoding.DecodeString(raw)
	require.NoError(t, err)
	msg, err := mail.ReadMessage(strings.NewReader(string(data)))
	require.NoError(t, err)
	return msg
}

func TestBuildRawMessage_PlainText(t *testing.T) {
	raw, err := buildRawMessage(&outgoingMessage{
		to:      []string{"alice@example.com", "bob@example.com"},
		cc:      []string{"carol@example.com"},
		subject: "Quarterly numbers",
		body:    "See below.",
	})
	require.NoError(t, err)

	msg := decodeRaw(t, raw)
	assert.Equal(t, "alice@example.com, bob@example.com", msg.Header.Get("To"))
	assert.Equal(t, "carol@example.com", msg.Header.Get("Cc"))
	assert.Equal(t, "Quarterly numbers", msg.Header.Get("Subject"))
	assert.Equal(t, `text/plain; charset="UTF-8"`, msg.Header.Get("Content-Type"))
	assert.Equal(t, "1.0", msg.Header.Get("MIME-Version"))

	body, err := io.ReadAll(msg.Body)
	require.NoError(t, err)
	assert.Equal(t, "See below.", string(body))
}

func TestBuildRawMessage_HTML(t *testing.T) {
	raw, err := buildRawMessage(&outgoingMessage{
		to:      []string{"alice@example.com"},
		subject: "Hello",
		body:    "<p>Hello</p>",
		isHTML:  true,
	})
	require.NoError(t, err)

	msg := decodeRaw(t, raw)
	assert.Equal(t, `text/html; charset="UTF-8"`, msg.Header.Get("Content-Type"))
}

func TestBuildRawMessage_ThreadingHeaders(t *testing.T) {
	raw, err := buildRawMessage(&outgoingMessage{
		to:         []string{"alice@example.com"},
		subject:    "Re: Hello",
		body:       "reply",
		inReplyTo:  "<orig@example.com>",
		references: "<ref1@example.com> <orig@example.com>",
	})
	require.NoError(t, err)

	msg := decodeRaw(t, raw)
	assert.Equal(t, "<orig@example.com>", msg.Header.Get("In-Reply-To"))
	assert.Equal(t, "<ref1@example.com> <orig@example.com>", msg.Header.Get("References"))
}

func TestBuildRawMessage_NonASCIISubjectEncoded(t *testing.T) {
	raw, err := buildRawMessage(&outgoingMessage{
		to:      []string{"alice@example.com"},
		subject: "Rückerstattung",
		body:    "hi",
	})
	require.NoError(t, err)

	msg := decodeRaw(t, raw)
	encoded := msg.Header.Get("Subject")
	assert.True(t, strings.HasPrefix(encoded, "=?UTF-8?"))

	decoder := new(mime.WordDecoder)
	decoded, err := decoder.DecodeHeader(encoded)
	require.NoError(t, err)
	assert.Equal(t, "Rückerstattung", decoded)
}

func TestBuildRawMessage_WithAttachments(t *testing.T) {
	pdfData := []byte("%PDF-1.4 fake content for testing the encoder with wrapping......")

	raw, err := buildRawMessage(&outgoingMessage{
		to:      []string{"alice@example.com"},
		subject: "Report attached",
		body:    "Find the report attached.",
		attachments: []EmailAttachment{
			{Filename: "report.pdf", MimeType: "application/pdf", Data: pdfData},
			{Filename: "notes.bin", Data: []byte{0x00, 0x01, 0x02}},
		},
	})
	require.NoError(t, err)

	msg := decodeRaw(t, raw)
	mediaType, params, err := mime.ParseMediaType(msg.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/mixed", mediaType)
	require.NotEmpty(t, params["boundary"])

	reader := multipart.NewReader(msg.Body, params["boundary"])

	// First part is the text body.
	part, err := reader.NextPart()
	require.NoError(t, err)
	assert.Equal(t, `text/plain; charset="UTF-8"`, part.Header.Get("Content-Type"))
	body, err := io.ReadAll(part)
	require.NoError(t, err)
	assert.Equal(t, "Find the report attached.", string(body))

	// Second part is the PDF, base64-encoded.
	part, err = reader.NextPart()
	require.NoError(t, err)
	assert.Equal(t, `application/pdf; name="report.pdf"`, part.Header.Get("Content-Type"))
	assert.Equal(t, "base64", part.Header.Get("Content-Transfer-Encoding"))
	assert.Equal(t, `attachment; filename="report.pdf"`, part.Header.Get("Content-Disposition"))
	encoded, err := io.ReadAll(part)
	require.NoError(t, err)
	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(string(encoded), "\r\n", ""))
	require.NoError(t, err)
	assert.Equal(t, pdfData, decoded)

	// Third part falls back to application/octet-stream.
	part, err = reader.NextPart()
	require.NoError(t, err)
	assert.Equal(t, `application/octet-stream; name="notes.bin"`, part.Header.Get("Content-Type"))

	_, err = reader.NextPart()
	assert.Equal(t, io.EOF, err)
}

func TestBuildRawMessage_AttachmentRequiresFilename(t *testing.T) {
	_, err := buildRawMessage(&outgoingMessage{
		to:          []string{"alice@example.com"},
		subject:     "bad",
		body:        "bad",
		attachments: []EmailAttachment{{Data: []byte("x")}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "filename")
}

func TestBuildRawMessage_Base64LinesWrapped(t *testing.T) {
	data := make([]byte, 600)
	for i := range data {
		data[i] = byte(i)
	}

	raw, err := buildRawMessage(&outgoingMessage{
		to:          []string{"alice@example.com"},
		subject:     "big",
		body:        "big attachment",
		attachments: []EmailAttachment{{Filename: "blob.bin", Data: data}},
	})
	require.NoError(t, err)

	decoded, err := base64.URLEncoding.DecodeString(raw)
	require.NoError(t, err)
	for _, line := range strings.Split(string(decoded), "\r\n") {
		assert.LessOrEqual(t, len(line), 78, "no line may exceed the RFC 2045 limit")
	}
}
