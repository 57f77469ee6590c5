package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"social-hub/domain/model"
	"social-hub/infrastructure/persistence"
)

var accountRows = []string{
	"id", "user_id", "platform", "access_token",
	"platform_user_id", "platform_username", "created_at", "updated_at",
}

func TestCredentialRepository_GetByUserAndPlatform(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT (.+) FROM connected_accounts WHERE user_id = \\$1 AND platform = \\$2").
		WithArgs(int64(7), "threads").
		WillReturnRows(sqlmock.NewRows(accountRows).
			AddRow(int64(1), int64(7), "threads", "iv:ciphertext", "threads-user-7", "someone", now, now))

	repo := persistence.NewCredentialRepository(db)
	account, err := repo.GetByUserAndPlatform(context.Background(), 7, "Threads")

	assert.NoError(t, err)
	assert.Equal(t, "iv:ciphertext", account.AccessToken)
	assert.Equal(t, "threads-user-7", account.PlatformUserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCredentialRepository_GetByUserAndPlatform_NotConnected(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM connected_accounts").
		WithArgs(int64(7), "threads").
		WillReturnRows(sqlmock.NewRows(accountRows))

	repo := persistence.NewCredentialRepository(db)
	_, err = repo.GetByUserAndPlatform(context.Background(), 7, "threads")

	assert.ErrorIs(t, err, model.ErrNotConnected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCredentialRepository_Upsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO connected_accounts").
		WithArgs(int64(7), "threads", "iv:ciphertext", "threads-user-7", "someone", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := persistence.NewCredentialRepository(db)
	err = repo.Upsert(context.Background(), &model.ConnectedAccount{
		UserID:           7,
		Platform:         "Threads",
		AccessToken:      "iv:ciphertext",
		PlatformUserID:   "threads-user-7",
		PlatformUsername: "someone",
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCredentialRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM connected_accounts").
		WithArgs(int64(7), "threads").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := persistence.NewCredentialRepository(db)
	assert.NoError(t, repo.Delete(context.Background(), 7, "threads"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCredentialRepository_ListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT (.+) FROM connected_accounts WHERE user_id = \\$1 ORDER BY platform").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(accountRows).
			AddRow(int64(1), int64(7), "threads", "enc-a", "u-1", "one", now, now).
			AddRow(int64(2), int64(7), "youtube", "enc-b", "u-2", "two", now, now))

	repo := persistence.NewCredentialRepository(db)
	accounts, err := repo.ListByUser(context.Background(), 7)

	assert.NoError(t, err)
	if assert.Len(t, accounts, 2) {
		assert.Equal(t, "threads", accounts[0].Platform)
		assert.Equal(t, "youtube", accounts[1].Platform)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}
