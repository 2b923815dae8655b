package domain

import "context"

// StateStorage is the durable key/value port the assessment store writes
// through. Save overwrites; there is no merge and no versioning.
type StateStorage interface {
	// Load returns the payload stored under key. ok is false when nothing was stored.
	Load(ctx context.Context, key string) (payload []byte, ok bool, err error)
	// Save replaces the payload stored under key.
	Save(ctx context.Context, key string, payload []byte) error
	// Close releases driver resources.
	Close() error
}
