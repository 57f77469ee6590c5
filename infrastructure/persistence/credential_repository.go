package persistence

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"social-hub/domain/model"
	"social-hub/domain/repository"
)

// CredentialRepository stores encrypted platform tokens on PostgreSQL, one
// row per (user_id, platform).
type CredentialRepository struct {
	db *sql.DB
}

var _ repository.ICredential = (*CredentialRepository)(nil)

func NewCredentialRepository(db *sql.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

const accountColumns = `id, user_id, platform, access_token, platform_user_id, platform_username, created_at, updated_at`

func (r *CredentialRepository) GetByUserAndPlatform(ctx context.Context, userID int64, platform string) (*model.ConnectedAccount, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM connected_accounts WHERE user_id = $1 AND platform = $2`,
		userID, strings.ToLower(platform))
	acc, err := scanAccount(row)
	if err == sql.ErrNoRows {
		return nil, model.ErrNotConnected
	}
	if err != nil {
		return nil, err
	}
	return acc, nil
}

func (r *CredentialRepository) Upsert(ctx context.Context, account *model.ConnectedAccount) error {
	now := time.Now().UTC()
	q := `INSERT INTO connected_accounts (user_id, platform, access_token, platform_user_id, platform_username, created_at, updated_at)
	      VALUES ($1, $2, $3, $4, $5, $6, $6)
	      ON CONFLICT (user_id, platform) DO UPDATE SET
	        access_token = EXCLUDED.access_token,
	        platform_user_id = EXCLUDED.platform_user_id,
	        platform_username = EXCLUDED.platform_username,
	        updated_at = EXCLUDED.updated_at`
	_, err := r.db.ExecContext(ctx, q,
		account.UserID, strings.ToLower(account.Platform), account.AccessToken,
		account.PlatformUserID, account.PlatformUsername, now)
	return err
}

func (r *CredentialRepository) Delete(ctx context.Context, userID int64, platform string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM connected_accounts WHERE user_id = $1 AND platform = $2`,
		userID, strings.ToLower(platform))
	return err
}

func (r *CredentialRepository) ListByUser(ctx context.Context, userID int64) ([]model.ConnectedAccount, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+accountColumns+` FROM connected_accounts WHERE user_id = $1 ORDER BY platform`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []model.ConnectedAccount
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *acc)
	}
	return accounts, rows.Err()
}

func scanAccount(row rowScanner) (*model.ConnectedAccount, error) {
	acc := &model.ConnectedAccount{}
	var platformUserID, platformUsername sql.NullString
	if err := row.Scan(
		&acc.ID, &acc.UserID, &acc.Platform, &acc.AccessToken,
		&platformUserID, &platformUsername, &acc.CreatedAt, &acc.UpdatedAt,
	); err != nil {
		return nil, err
	}
	acc.PlatformUserID = platformUserID.String
	acc.PlatformUsername = platformUsername.String
	return acc, nil
}
