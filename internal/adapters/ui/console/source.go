package console

import (
	"context"

	"github.com/bnema/locsim/internal/ports"
)

// Source stands for device events typed on the console. Starting it always
// succeeds; the command loop publishes the events itself.
type Source struct{}

var _ ports.NotificationSource = Source{}

func (Source) Start(ctx context.Context) error {
	return ctx.Err()
}

func (Source) Stop() error {
	return nil
}
