package notify

import "context"

// Store persists the full notification list as a single snapshot.
// Save is a full-replace write; Load returns an empty list when nothing
// usable is stored. A store instance owns exactly one storage key, and
// only one Log may write through it at a time.
type Store interface {
	Save(ctx context.Context, records []Record) error
	Load(ctx context.Context) ([]Record, error)
	Clear(ctx context.Context) error
}
