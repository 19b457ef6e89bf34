package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
)

// SMTPNotifier delivers mail over SMTP with implicit TLS (port 465 style).
type SMTPNotifier struct {
	host     string
	port     string
	username string
	password string
	from     string
}

// NewSMTPNotifier builds a notifier for the given server and credentials.
// When from is empty the username is used as the sender address.
func NewSMTPNotifier(host, port, username, password, from string) *SMTPNotifier {
	if from == "" {
		from = username
	}
	return &SMTPNotifier{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// Send connects, authenticates, and writes a single message. The context
// bounds the dial; SMTP commands after that ride on the established
// connection.
func (n *SMTPNotifier) Send(ctx context.Context, to, subject, body string) error {
	msg := []byte(
		fmt.Sprintf("From: %s\r\n", n.from) +
			fmt.Sprintf("To: %s\r\n", to) +
			fmt.Sprintf("Subject: %s\r\n", subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/plain; charset=\"utf-8\"\r\n" +
			"\r\n" +
			body,
	)

	addr := net.JoinHostPort(n.host, n.port)
	dialer := &tls.Dialer{Config: &tls.Config{ServerName: n.host}}

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, n.host)
	if err != nil {
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Quit()

	auth := smtp.PlainAuth("", n.username, n.password, n.host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}

	if err := client.Mail(n.from); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close: %w", err)
	}

	return nil
}
