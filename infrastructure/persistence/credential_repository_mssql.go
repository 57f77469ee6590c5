package persistence

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"social-hub/domain/model"
	"social-hub/domain/repository"
)

// CredentialRepositoryMSSQL is the SQL Server twin of CredentialRepository.
type CredentialRepositoryMSSQL struct{ db *sql.DB }

var _ repository.ICredential = (*CredentialRepositoryMSSQL)(nil)

func NewCredentialRepositoryMSSQL(db *sql.DB) *CredentialRepositoryMSSQL {
	return &CredentialRepositoryMSSQL{db: db}
}

func (r *CredentialRepositoryMSSQL) GetByUserAndPlatform(ctx context.Context, userID int64, platform string) (*model.ConnectedAccount, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM dbo.[connected_accounts] WHERE user_id = @p1 AND platform = @p2`,
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

func (r *CredentialRepositoryMSSQL) Upsert(ctx context.Context, account *model.ConnectedAccount) error {
	now := time.Now().UTC()
	q := `MERGE dbo.[connected_accounts] AS target
USING (VALUES (@p1, @p2)) AS src(user_id, platform)
ON target.user_id = src.user_id AND target.platform = src.platform
WHEN MATCHED THEN UPDATE SET
  access_token = @p3,
  platform_user_id = @p4,
  platform_username = @p5,
  updated_at = @p6
WHEN NOT MATCHED THEN
  INSERT (user_id, platform, access_token, platform_user_id, platform_username, created_at, updated_at)
  VALUES (src.user_id, src.platform, @p3, @p4, @p5, @p6, @p6);`
	_, err := r.db.ExecContext(ctx, q,
		account.UserID, strings.ToLower(account.Platform), account.AccessToken,
		account.PlatformUserID, account.PlatformUsername, now)
	return err
}

func (r *CredentialRepositoryMSSQL) Delete(ctx context.Context, userID int64, platform string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM dbo.[connected_accounts] WHERE user_id = @p1 AND platform = @p2`,
		userID, strings.ToLower(platform))
	return err
}

func (r *CredentialRepositoryMSSQL) ListByUser(ctx context.Context, userID int64) ([]model.ConnectedAccount, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+accountColumns+` FROM dbo.[connected_accounts] WHERE user_id = @p1 ORDER BY platform`, userID)
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
