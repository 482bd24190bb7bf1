package communication

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"mime/quotedprintable"
	"net/textproto"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/sirupsen/logrus"
)

type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

type Email struct {
	From        string
	To          []string
	Cc          []string
	Subject     string
	Text        string
	HTML        string
	Attachments []Attachment
}

// SESMailer sends raw MIME email through Amazon SES.
type SESMailer struct {
	client *ses.Client
}

func NewSESMailer(ctx context.Context) (*SESMailer, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &SESMailer{client: ses.NewFromConfig(cfg)}, nil
}

func (m *SESMailer) Send(ctx context.Context, email *Email) error {
	raw, err := BuildEmailBuffer(email)
	if err != nil {
		return err
	}

	res, err := m.client.SendRawEmail(ctx, &ses.SendRawEmailInput{
		RawMessage: &types.RawMessage{Data: raw.Bytes()},
	})
	if err != nil {
		return fmt.Errorf("ses send: %w", err)
	}

	logrus.Infof("email %q sent, message id %s", email.Subject, *res.MessageId)
	return nil
}

// BuildEmailBuffer assembles a multipart/mixed MIME message: a
// multipart/alternative body (text + html) followed by base64-encoded
// attachments.
func BuildEmailBuffer(email *Email) (*bytes.Buffer, error) {
	var raw bytes.Buffer
	writer := multipart.NewWriter(&raw)

	fmt.Fprintf(&raw, "From: %s\r\n", email.From)
	if len(email.To) > 0 {
		fmt.Fprintf(&raw, "To: %s\r\n", strings.Join(email.To, ", "))
	}
	if len(email.Cc) > 0 {
		fmt.Fprintf(&raw, "Cc: %s\r\n", strings.Join(email.Cc, ", "))
	}
	fmt.Fprintf(&raw, "Subject: %s\r\n", email.Subject)
	raw.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&raw, "Content-Type: multipart/mixed; boundary=\"%s\"\r\n\r\n", writer.Boundary())

	if err := writeBody(writer, email); err != nil {
		return nil, fmt.Errorf("write email body: %w", err)
	}

	for _, att := range email.Attachments {
		if err := writeAttachment(writer, att); err != nil {
			return nil, fmt.Errorf("attach %s: %w", att.Filename, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalize email: %w", err)
	}
	return &raw, nil
}

func writeBody(writer *multipart.Writer, email *Email) error {
	altBuf := &bytes.Buffer{}
	altWriter := multipart.NewWriter(altBuf)

	altHeaders := textproto.MIMEHeader{}
	altHeaders.Set("Content-Type", "multipart/alternative; boundary="+altWriter.Boundary())
	altPart, err := writer.CreatePart(altHeaders)
	if err != nil {
		return err
	}

	parts := []struct {
		contentType string
		content     string
	}{
		{"text/plain; charset=UTF-8", email.Text},
		{"text/html; charset=UTF-8", email.HTML},
	}
	for _, p := range parts {
		if p.content == "" {
			continue
		}
		part, err := altWriter.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {p.contentType},
			"Content-Transfer-Encoding": {"quoted-printable"},
		})
		if err != nil {
			return err
		}
		qp := quotedprintable.NewWriter(part)
		if _, err := qp.Write([]byte(p.content)); err != nil {
			return err
		}
		if err := qp.Close(); err != nil {
			return err
		}
	}

	if err := altWriter.Close(); err != nil {
		return err
	}
	_, err = altPart.Write(altBuf.Bytes())
	return err
}

func writeAttachment(writer *multipart.Writer, att Attachment) error {
	h := textproto.MIMEHeader{}
	h.Set("Content-Type", fmt.Sprintf("%s; name=\"%s\"", att.ContentType, att.Filename))
	h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", att.Filename))
	h.Set("Content-Transfer-Encoding", "base64")

	part, err := writer.CreatePart(h)
	if err != nil {
		return err
	}

	encoded := make([]byte, base64.StdEncoding.EncodedLen(len(att.Content)))
	base64.StdEncoding.Encode(encoded, att.Content)

	// RFC 2045 line length limit.
	for i := 0; i < len(encoded); i += 76 {
		end := i + 76
		if end > len(encoded) {
			end = len(encoded)
		}
		if _, err := part.Write(encoded[i:end]); err != nil {
			return err
		}
		if _, err := part.Write([]byte("\r\n")); err != nil {
			return err
		}
	}
	return nil
}
