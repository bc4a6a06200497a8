package user

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	_now     = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	_columns = []string{"id", "name", "email", "age", "bio", "created_at", "updated_at"}
)

func newRepositoryMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDB}), &gorm.Config{})
	require.NoError(t, err)

	repo := NewRepository(db)
	repo.now = func() time.Time { return _now }
	repo.newID = func() string { return "u-1" }

	return repo, mock
}

func userRow(rows *sqlmock.Rows, id string) *sqlmock.Rows {
	return rows.AddRow(id, "Ann", id+"@example.com", 30, nil, _now, _now)
}

func Test_Repository_Get(t *testing.T) {
	repo, mock := newRepositoryMock(t)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE id = $1`)).
		WillReturnRows(userRow(sqlmock.NewRows(_columns), "u-1"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows(_columns))

	u, err := repo.Get(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, "u-1@example.com", u.Email)
	assert.Nil(t, u.Bio)

	_, err = repo.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_Repository_Create(t *testing.T) {
	repo, mock := newRepositoryMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "users" ("id","name","email","age","bio","created_at","updated_at") VALUES ($1,$2,$3,$4,$5,$6,$7)`)).
		WithArgs("u-1", "Ann", "ann@example.com", 30, "hi", _now, _now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	u, err := repo.Create(context.Background(), CreateInput{
		Name:  "Ann",
		Email: "ann@example.com",
		Age:   30,
		Bio:   lo.ToPtr("hi"),
	})
	require.NoError(t, err)
	assert.Equal(t, &User{
		ID:        "u-1",
		Name:      "Ann",
		Email:     "ann@example.com",
		Age:       30,
		Bio:       lo.ToPtr("hi"),
		CreatedAt: _now,
		UpdatedAt: _now,
	}, u)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_Repository_Update(t *testing.T) {
	t.Run("clear bio", func(t *testing.T) {
		repo, mock := newRepositoryMock(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "users" SET "bio"=$1,"updated_at"=$2 WHERE id = $3`)).
			WithArgs(nil, _now, "u-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE id = $1`)).
			WillReturnRows(userRow(sqlmock.NewRows(_columns), "u-1"))

		u, err := repo.Update(context.Background(), "u-1", UpdateInput{Bio: Clear[string]()})
		require.NoError(t, err)
		assert.Nil(t, u.Bio)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing user", func(t *testing.T) {
		repo, mock := newRepositoryMock(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "users" SET "name"=$1,"updated_at"=$2 WHERE id = $3`)).
			WithArgs("Bob", _now, "missing").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		_, err := repo.Update(context.Background(), "missing", UpdateInput{Name: lo.ToPtr("Bob")})
		require.ErrorIs(t, err, ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty input reads the user", func(t *testing.T) {
		repo, mock := newRepositoryMock(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE id = $1`)).
			WillReturnRows(userRow(sqlmock.NewRows(_columns), "u-1"))

		u, err := repo.Update(context.Background(), "u-1", UpdateInput{})
		require.NoError(t, err)
		assert.Equal(t, "u-1", u.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func Test_Repository_Delete(t *testing.T) {
	repo, mock := newRepositoryMock(t)
	ctx := context.Background()

	for _, affected := range []int64{1, 0} {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "users" WHERE id = $1`)).
			WithArgs("u-1").
			WillReturnResult(sqlmock.NewResult(0, affected))
		mock.ExpectCommit()
	}

	require.NoError(t, repo.Delete(ctx, "u-1"))
	require.ErrorIs(t, repo.Delete(ctx, "u-1"), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_Repository_List(t *testing.T) {
	repo, mock := newRepositoryMock(t)

	mock.ExpectQuery(`^SELECT \* FROM "users" ORDER BY created_at DESC, id DESC$`).
		WillReturnRows(userRow(userRow(sqlmock.NewRows(_columns), "u-2"), "u-1"))

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"u-2", "u-1"}, lo.Map(users, func(u User, _ int) string { return u.ID }))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_Repository_WrapsDriverErrors(t *testing.T) {
	repo, mock := newRepositoryMock(t)
	refused := errors.New("connection refused")

	mock.ExpectQuery(`SELECT`).WillReturnError(refused)

	_, err := repo.Get(context.Background(), "u-1")
	require.ErrorIs(t, err, refused)
	require.NotErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
