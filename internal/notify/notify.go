package notify

import (
	"context"

	"go.uber.org/multierr"
)

// Notifier delivers a best-effort alert when a watched keyword shows up in a
// changed page. Failures never affect the check cycle.
type Notifier interface {
	Send(ctx context.Context, title, text string) error
}

// Multi fans out to every configured channel and reports all failures.
type Multi []Notifier

func (m Multi) Send(ctx context.Context, title, text string) error {
	var errs error
	for _, n := range m {
		if n == nil {
			continue
		}
		errs = multierr.Append(errs, n.Send(ctx, title, text))
	}
	return errs
}
