package repository

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	"jewel-studio-api/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestUserRepository_CreateUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)

	user := &model.User{Email: "admin@example.com", Password: "$2a$12$hash"}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (email, password) VALUES ($1, $2) RETURNING id, created_at`)).
		WithArgs("admin@example.com", "$2a$12$hash").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, time.Now()))

	err = repo.CreateUser(user)

	assert.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetUserByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, email, password, created_at FROM users WHERE email = $1`)).
			WithArgs("admin@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "created_at"}).
				AddRow(1, "admin@example.com", "$2a$12$hash", time.Now()))

		user, err := repo.GetUserByEmail("admin@example.com")

		assert.NoError(t, err)
		assert.Equal(t, 1, user.ID)
		assert.Equal(t, "admin@example.com", user.Email)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, email, password, created_at FROM users WHERE email = $1`)).
			WithArgs("missing@example.com").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetUserByEmail("missing@example.com")

		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
