// Package mail builds and delivers the emails the server sends.
package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/textproto"
	"time"
)

// Message is an email with a plain text and an HTML body.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

var passwordResetHTML = template.Must(template.New("reset").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto; padding: 20px; border: 1px solid #e2e8f0; border-radius: 10px;">
  <h2 style="color: #2563eb; text-align: center;">Money Manager</h2>
  <h3 style="color: #1e293b;">Password Reset Request</h3>
  <p style="color: #475569;">You requested a password reset. Use the code below or click the button to reset your password:</p>
  <div style="background-color: #f1f5f9; padding: 20px; text-align: center; border-radius: 8px; margin: 20px 0;">
    <span style="font-size: 32px; font-weight: bold; letter-spacing: 5px; color: #2563eb;">{{.Code}}</span>
  </div>
  <div style="text-align: center; margin: 30px 0;">
    <a href="{{.Link}}" style="background-color: #2563eb; color: white; padding: 12px 30px; border-radius: 8px; text-decoration: none; font-weight: bold; display: inline-block;">Reset Password Now</a>
  </div>
  <p style="color: #64748b; font-size: 14px;">This link and code will expire in {{.Expiry}}.</p>
  <hr style="border: 0; border-top: 1px solid #e2e8f0; margin: 20px 0;">
  <p style="color: #94a3b8; font-size: 12px; text-align: center;">If you didn't request this, you can safely ignore this email.</p>
</div>
`))

// PasswordResetMessage renders the reset code email for to.
func PasswordResetMessage(to, code, link string, expiry time.Duration) Message {
	text := fmt.Sprintf("You are receiving this email because you (or someone else) requested a password reset.\n\n"+
		"Your reset code is: %s\n\n"+
		"Open the link below to reset your password:\n\n%s\n\n"+
		"The code expires in %s.\n", code, link, humanDuration(expiry))

	var html bytes.Buffer
	// The template only renders strings and cannot fail on these inputs.
	_ = passwordResetHTML.Execute(&html, struct {
		Code   string
		Link   string
		Expiry string
	}{code, link, humanDuration(expiry)})

	return Message{
		To:      to,
		Subject: "Password reset request",
		Text:    text,
		HTML:    html.String(),
	}
}

func humanDuration(d time.Duration) string {
	if d == time.Hour {
		return "1 hour"
	}
	if d%time.Hour == 0 {
		return fmt.Sprintf("%d hours", d/time.Hour)
	}
	return fmt.Sprintf("%d minutes", d/time.Minute)
}

// Bytes encodes the message as a multipart/alternative MIME document.
func (m Message) Bytes(from string, now time.Time) ([]byte, error) {
	var body bytes.Buffer
	parts := multipart.NewWriter(&body)

	for _, part := range []struct {
		contentType string
		content     string
	}{
		{"text/plain; charset=utf-8", m.Text},
		{"text/html; charset=utf-8", m.HTML},
	} {
		w, err := parts.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {part.contentType},
			"Content-Transfer-Encoding": {"quoted-printable"},
		})
		if err != nil {
			return nil, err
		}
		qp := quotedprintable.NewWriter(w)
		if _, err = qp.Write([]byte(part.content)); err != nil {
			return nil, err
		}
		if err = qp.Close(); err != nil {
			return nil, err
		}
	}
	if err := parts.Close(); err != nil {
		return nil, err
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", m.To)
	fmt.Fprintf(&msg, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", m.Subject))
	fmt.Fprintf(&msg, "Date: %s\r\n", now.Format(time.RFC1123Z))
	msg.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/alternative; boundary=%q\r\n", parts.Boundary())
	msg.WriteString("\r\n")
	msg.Write(body.Bytes())
	return msg.Bytes(), nil
}
