package notifier

import (
	"context"
	"errors"

	"github.com/labstack/gommon/log"
)

// Notifier delivers a run notification. Delivery failures are reported to the
// caller, which decides whether they matter.
type Notifier interface {
	Notify(ctx context.Context, subject, body string) error
}

type logNotifier struct{}

func NewLogNotifier() Notifier {
	return logNotifier{}
}

func (logNotifier) Notify(ctx context.Context, subject, body string) error {
	log.Infof("[Notifier] %s: %s", subject, body)
	return nil
}

// Multi fans a notification out to every notifier, attempting all of them and
// joining their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, subject, body string) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, subject, body); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
