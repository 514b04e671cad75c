package gmail

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// base64LineLength is the maximum line length for encoded attachment data
// per RFC 2045.
const base64LineLength = 76

// EmailAttachment is a file attached to an outgoing message.
type EmailAttachment struct {
	// Filename is the name shown to the recipient.
	Filename string

	// MimeType is the content type of the attachment. Defaults to
	// application/octet-stream when empty.
	MimeType string

	// Data is the raw (not yet encoded) attachment content.
	Data []byte
}

// outgoingMessage collects everything needed to assemble one RFC 2822
// message for the Gmail API.
type outgoingMessage struct {
	to          []string
	cc          []string
	bcc         []string
	subject     string
	body        string
	isHTML      bool
	inReplyTo   string
	references  string
	attachments []EmailAttachment
}

// buildRawMessage assembles the message and returns it base64url-encoded,
// ready for the Raw field of a Gmail API message.
//
// Without attachments the result is a single text part. With attachments
// the body becomes the first part of a multipart/mixed container with a
// generated boundary, followed by one base64-encoded part per attachment.
func buildRawMessage(msg *outgoingMessage) (string, error) {
	var buf bytes.Buffer

	writeHeader := func(name, value string) {
		buf.WriteString(name)
		buf.WriteString(": ")
		buf.WriteString(value)
		buf.WriteString("\r\n")
	}

	if len(msg.to) > 0 {
		writeHeader("To", strings.Join(msg.to, ", "))
	}
	if len(msg.cc) > 0 {
		writeHeader("Cc", strings.Join(msg.cc, ", "))
	}
	if len(msg.bcc) > 0 {
		writeHeader("Bcc", strings.Join(msg.bcc, ", "))
	}
	writeHeader("Subject", encodeRFC2047(msg.subject))
	if msg.inReplyTo != "" {
		writeHeader("In-Reply-To", msg.inReplyTo)
	}
	if msg.references != "" {
		writeHeader("References", msg.references)
	}
	writeHeader("MIME-Version", "1.0")

	textType := "text/plain"
	if msg.isHTML {
		textType = "text/html"
	}

	if len(msg.attachments) == 0 {
		writeHeader("Content-Type", textType+`; charset="UTF-8"`)
		buf.WriteString("\r\n")
		buf.WriteString(msg.body)
		return base64.URLEncoding.EncodeToString(buf.Bytes()), nil
	}

	writer := multipart.NewWriter(&buf)
	writeHeader("Content-Type", fmt.Sprintf(`multipart/mixed; boundary="%s"`, writer.Boundary()))
	buf.WriteString("\r\n")

	bodyHeader := textproto.MIMEHeader{}
	bodyHeader.Set("Content-Type", textType+`; charset="UTF-8"`)
	bodyPart, err := writer.CreatePart(bodyHeader)
	if err != nil {
		return "", fmt.Errorf("failed to create body part: %w", err)
	}
	if _, err := bodyPart.Write([]byte(msg.body)); err != nil {
		return "", fmt.Errorf("failed to write body part: %w", err)
	}

	for _, att := range msg.attachments {
		if att.Filename == "" {
			return "", fmt.Errorf("attachment filename is required")
		}

		mimeType := att.MimeType
		if mimeType == "" {
			mimeType = "application/octet-stream"
		}

		partHeader := textproto.MIMEHeader{}
		partHeader.Set("Content-Type", fmt.Sprintf(`%s; name="%s"`, mimeType, att.Filename))
		partHeader.Set("Content-Transfer-Encoding", "base64")
		partHeader.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, att.Filename))

		part, err := writer.CreatePart(partHeader)
		if err != nil {
			return "", fmt.Errorf("failed to create part for attachment %s: %w", att.Filename, err)
		}
		if err := writeBase64Lines(part, att.Data); err != nil {
			return "", fmt.Errorf("failed to encode attachment %s: %w", att.Filename, err)
		}
	}

	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart message: %w", err)
	}

	return base64.URLEncoding.EncodeToString(buf.Bytes()), nil
}

// writeBase64Lines writes data base64-encoded, wrapped to RFC 2045 line
// length.
func writeBase64Lines(w io.Writer, data []byte) error {
	encoded := base64.StdEncoding.EncodeToString(data)
	for len(encoded) > 0 {
		n := base64LineLength
		if n > len(encoded) {
			n = len(encoded)
		}
		if _, err := w.Write([]byte(encoded[:n])); err != nil {
			return err
		}
		if _, err := w.Write([]byte("\r\n")); err != nil {
			return err
		}
		encoded = encoded[n:]
	}
	return nil
}
