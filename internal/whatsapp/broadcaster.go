package whatsapp

import (
	"context"
	"fmt"
	"sync/atomic"

	"outage-notifier/internal/directory"
	"outage-notifier/internal/notify"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Sender is the per-recipient delivery operation; *Client satisfies it.
type Sender interface {
	SendText(ctx context.Context, to, body string) error
}

// Broadcaster fans a finalized payload out to every recipient in the area.
// It implements the dispatch controller's Transport.
type Broadcaster struct {
	dir     *directory.Service
	sender  Sender
	pricing notify.Snapshot
	workers int
	logger  *zap.Logger
}

func NewBroadcaster(dir *directory.Service, sender Sender, pricing notify.Snapshot, workers int, logger *zap.Logger) *Broadcaster {
	if workers <= 0 {
		workers = 8
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Broadcaster{dir: dir, sender: sender, pricing: pricing, workers: workers, logger: logger}
}

// Send resolves the area's recipients and either previews (dry run) or
// delivers to each of them. Individual delivery failures are counted, not
// fatal.
func (b *Broadcaster) Send(ctx context.Context, payload notify.SendPayload) (*notify.SendResult, error) {
	recipients, err := b.dir.Recipients(payload.Area)
	if err != nil {
		return nil, err
	}
	if len(recipients) == 0 {
		return nil, fmt.Errorf("no customers found in area %q", payload.Area)
	}

	unit, err := b.pricing.UnitPrice(b.pricing.DefaultCategory)
	if err != nil {
		return nil, err
	}

	if payload.DryRun {
		return &notify.SendResult{
			DryRun:    true,
			Count:     len(recipients),
			UnitPrice: &unit,
		}, nil
	}

	var sent, failed int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)
	for _, to := range recipients {
		to := to
		g.Go(func() error {
			if err := b.sender.SendText(gctx, to, payload.Message); err != nil {
				atomic.AddInt64(&failed, 1)
				b.logger.Warn("recipient send failed", zap.String("to", to), zap.Error(err))
				return nil
			}
			atomic.AddInt64(&sent, 1)
			return nil
		})
	}
	_ = g.Wait()

	cost := notify.Estimate(unit, int(sent))
	return &notify.SendResult{
		Count:     len(recipients),
		Sent:      int(sent),
		Failed:    int(failed),
		UnitPrice: &unit,
		Cost:      &cost,
	}, nil
}
