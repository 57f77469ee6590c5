package repository

import (
	"context"

	"social-hub/domain/model"
)

// ICredential is the credential store: one encrypted token row per
// (user_id, platform).
type ICredential interface {
	// GetByUserAndPlatform returns model.ErrNotConnected when no row exists.
	GetByUserAndPlatform(ctx context.Context, userID int64, platform string) (*model.ConnectedAccount, error)
	// Upsert performs an atomic insert-or-update keyed by (user_id, platform).
	// AccessToken must already be encrypted by the caller.
	Upsert(ctx context.Context, account *model.ConnectedAccount) error
	Delete(ctx context.Context, userID int64, platform string) error
	ListByUser(ctx context.Context, userID int64) ([]model.ConnectedAccount, error)
}

// ICredentialCodec encrypts tokens at rest. Injected as a capability so
// usecases and tests never touch key material directly.
type ICredentialCodec interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(payload string) (string, error)
}
