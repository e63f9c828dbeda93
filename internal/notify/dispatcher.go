package notify

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"cafe/internal/metrics"
)

// Sender pushes one text message to one chat.
type Sender interface {
	SendMessage(ctx context.Context, chatID, text string) error
}

// Recipients lists the chats to notify.
type Recipients interface {
	Resolve(ctx context.Context) []string
}

// Result is the outcome of one push.
type Result struct {
	Recipient string
	Err       error
}

// Dispatcher fans a formatted record out to every configured chat. It is
// best-effort: failures are logged and counted, never returned.
type Dispatcher struct {
	recipients Recipients
	sender     Sender
	formatter  Formatter
	log        *zap.Logger
	metrics    *metrics.Registry
}

func NewDispatcher(recipients Recipients, sender Sender, formatter Formatter, log *zap.Logger, m *metrics.Registry) *Dispatcher {
	return &Dispatcher{
		recipients: recipients,
		sender:     sender,
		formatter:  formatter,
		log:        log,
		metrics:    m,
	}
}

// Dispatch formats rec once and pushes it to all recipients concurrently.
// The returned slice has one entry per recipient, in recipient order; it is
// nil when nobody is configured.
func (d *Dispatcher) Dispatch(ctx context.Context, rec Record, id string) (results []Result) {
	kind := string(rec.Kind())
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("notification dispatch panicked", zap.String("kind", kind), zap.Any("panic", r))
		}
	}()

	// the triggering request may finish before the pushes do
	ctx = context.WithoutCancel(ctx)

	ids := d.recipients.Resolve(ctx)
	if len(ids) == 0 {
		d.log.Info("no notification recipients configured, skipping", zap.String("kind", kind), zap.String("id", id))
		d.metrics.DispatchSkipped(kind)
		return nil
	}
	return d.SendTo(ctx, rec, id, ids)
}

// SendTo is Dispatch for an already resolved recipient list.
func (d *Dispatcher) SendTo(ctx context.Context, rec Record, id string, ids []string) (results []Result) {
	kind := string(rec.Kind())
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("notification dispatch panicked", zap.String("kind", kind), zap.Any("panic", r))
		}
	}()
	if len(ids) == 0 {
		return nil
	}

	text := d.formatter.Format(rec, id)
	results = d.broadcast(context.WithoutCancel(ctx), kind, ids, text)

	d.log.Info("notification dispatched",
		zap.String("kind", kind),
		zap.String("id", id),
		zap.Int("recipients", len(results)),
		zap.Int("failed", Failed(results)),
	)
	return results
}

// Failed counts the unsuccessful pushes in results.
func Failed(results []Result) int {
	n := 0
	for _, res := range results {
		if res.Err != nil {
			n++
		}
	}
	return n
}

// Welcome greets a chat that just subscribed with /start.
func (d *Dispatcher) Welcome(ctx context.Context, chatID, name string) error {
	if err := d.sender.SendMessage(ctx, chatID, d.formatter.Welcome(name)); err != nil {
		return fmt.Errorf("send welcome to %s: %w", chatID, err)
	}
	return nil
}

func (d *Dispatcher) broadcast(ctx context.Context, kind string, ids []string, text string) []Result {
	results := make([]Result, len(ids))

	var g errgroup.Group
	for i, chatID := range ids {
		g.Go(func() error {
			results[i] = d.push(ctx, kind, chatID, text)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (d *Dispatcher) push(ctx context.Context, kind, chatID, text string) (res Result) {
	res.Recipient = chatID
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("push panicked: %v", r)
		}
		elapsed := time.Since(start).Seconds()
		if res.Err != nil {
			d.log.Warn("notification push failed",
				zap.String("kind", kind),
				zap.String("chat_id", chatID),
				zap.Error(res.Err),
			)
			d.metrics.PushFailed(kind, elapsed)
			return
		}
		d.metrics.PushSent(kind, elapsed)
	}()

	res.Err = d.sender.SendMessage(ctx, chatID, text)
	return res
}
