package mediastore

import (
	"context"
	"log/slog"
)

// Compensator reverses asset-store writes after a later step in the same
// logical operation fails. The logger is an explicit collaborator so
// best-effort failures are observable in tests.
type Compensator struct {
	store  AssetStore
	logger *slog.Logger
}

// NewCompensator creates a compensator over the given store. A nil logger
// falls back to slog.Default.
func NewCompensator(store AssetStore, logger *slog.Logger) *Compensator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Compensator{store: store, logger: logger}
}

// DeleteMany removes the named files from the namespace, best effort. Every
// failure is caught and logged individually; the call itself never fails,
// so partial cleanup cannot cascade into a second failure during an
// already-failing operation.
func (c *Compensator) DeleteMany(ctx context.Context, namespace string, filenames []string) {
	for _, filename := range filenames {
		if err := c.store.Delete(ctx, namespace, filename); err != nil {
			c.logger.Warn("compensating delete failed",
				"namespace", namespace,
				"filename", filename,
				"error", err)
		}
	}
}
