package queue

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/bloodlink/donation-system/internal/core/ports"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []ports.Mail
	err  error
	done chan struct{}
}

func (n *recordingNotifier) Send(_ context.Context, to, subject, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, ports.Mail{To: to, Subject: subject, Body: body})
	if n.done != nil {
		n.done <- struct{}{}
	}
	return n.err
}

func TestMailDispatcher_Delivers(t *testing.T) {
	notifier := &recordingNotifier{done: make(chan struct{}, 1)}
	d := NewMailDispatcher(2, notifier, zerolog.New(io.Discard))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(ports.Mail{To: "alice@example.com", Subject: "hi", Body: "hello"})

	select {
	case <-notifier.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("mail never delivered")
	}

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if len(notifier.sent) != 1 || notifier.sent[0].To != "alice@example.com" {
		t.Fatalf("unexpected deliveries: %+v", notifier.sent)
	}
}

func TestMailDispatcher_FailuresDoNotPropagate(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("smtp down"), done: make(chan struct{}, 1)}
	d := NewMailDispatcher(1, notifier, zerolog.New(io.Discard))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	// Enqueue never returns an error; failures are the worker's problem.
	d.Enqueue(ports.Mail{To: "bob@example.com", Subject: "hi", Body: "hello"})

	select {
	case <-notifier.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("mail never attempted")
	}
}

func TestMailDispatcher_ShardIsDeterministic(t *testing.T) {
	d := NewMailDispatcher(4, &recordingNotifier{}, zerolog.New(io.Discard))

	first := d.shardIndex("carol@example.com")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("carol@example.com"); got != first {
			t.Fatalf("shard changed between calls: %d then %d", first, got)
		}
	}
	if first < 0 || first >= 4 {
		t.Fatalf("shard out of range: %d", first)
	}
}
