// package repository defines the interface for the identity snapshot store.
// The store is a plain key-value contract: one serialized identity record per
// session token.
package repository

import "context"

// SessionRepository is the storage provider for signed-in identity snapshots.
type SessionRepository interface {
	// Get retrieves the snapshot stored under token.
	// It returns apperrors.ErrNotFound if no snapshot exists.
	Get(ctx context.Context, token string) ([]byte, error)

	// Set stores (or replaces) the snapshot under token. Every identity
	// mutation rewrites the full snapshot.
	Set(ctx context.Context, token string, snapshot []byte) error

	// Remove deletes the snapshot under token. Removing an unknown token
	// is not an error; sign-out is idempotent.
	Remove(ctx context.Context, token string) error
}
