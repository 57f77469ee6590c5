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

var userRows = []string{"id", "name", "user_name", "password", "created_at", "updated_at"}

func TestUserRepository_GetByUserName(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectPrepare("SELECT (.+) FROM users AS u").
		ExpectQuery().
		WithArgs("someone").
		WillReturnRows(sqlmock.NewRows(userRows).
			AddRow(int64(7), "Someone", "someone", "hashed", now, now))

	repo := persistence.NewUserRepository(db)
	user, err := repo.GetByUserName(context.Background(), "someone")

	assert.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "someone", user.UserName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectPrepare("INSERT INTO users").
		ExpectExec().
		WithArgs("Someone", "someone", "hashed").
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := persistence.NewUserRepository(db)
	err = repo.CreateUser(context.Background(), model.User{Name: "Someone", UserName: "someone", Password: "hashed"})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
