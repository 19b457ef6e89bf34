package ports

import "context"

// Notifier delivers a message to an address. Send blocks until the message
// has been handed to the transport; delivery failures are returned so the
// caller can decide whether they are fatal to its own operation.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Mail is a queued outbound message.
type Mail struct {
	To      string
	Subject string
	Body    string
}

// MailQueue accepts mail for asynchronous, best-effort delivery. Enqueue
// never blocks the caller on the actual send; failures are logged by the
// dispatcher, not reported back.
type MailQueue interface {
	Enqueue(mail Mail)
}
