package msca

import (
	"context"
	"time"
)

// retry calls f until it has been called attempts times or succeeds, waiting
// delay between calls. onErr sees every failed attempt (1-based). The error
// from the last call is returned. A cancelled ctx stops waiting and returns
// ctx.Err().
func retry(ctx context.Context, attempts int, delay time.Duration, onErr func(attempt int, err error), f func() error) error {
	var err error

	for i := 0; i < attempts; i++ {
		if err = f(); err == nil {
			return nil
		}

		if onErr != nil {
			onErr(i+1, err)
		}

		if i == attempts-1 {
			break
		}

		if delay <= 0 {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			continue
		}

		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}

	return err
}
