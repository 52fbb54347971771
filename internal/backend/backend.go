// Package backend holds the pieces shared by every storage adapter: the
// backend selector, the connectivity sentinel and call timeouts.
package backend

import (
	"context"
	"errors"
	"fmt"
	"time"
)

type Mode string

const (
	ModeMemory   Mode = "memory"
	ModePostgres Mode = "postgres"
	ModeMongo    Mode = "mongo"
	ModeOffline  Mode = "offline"
)

// DefaultTimeout bounds a single backend call when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// ErrUnavailable is returned by writes when no backend is reachable.
var ErrUnavailable = errors.New("backend unavailable: the store is not configured or cannot be reached")

func ParseMode(v string) (Mode, error) {
	switch Mode(v) {
	case ModeMemory, ModePostgres, ModeMongo, ModeOffline:
		return Mode(v), nil
	case "":
		return ModeMemory, nil
	}
	return "", fmt.Errorf("unknown store backend %q", v)
}

// WithTimeout derives a context bounded by d, or DefaultTimeout when d <= 0.
func WithTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = DefaultTimeout
	}
	return context.WithTimeout(ctx, d)
}

// IsUnavailable reports whether err means the backend could not serve the call.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable) || errors.Is(err, context.DeadlineExceeded)
}
