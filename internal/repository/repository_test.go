package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"packable/internal/db"
	"packable/internal/errors"
	"packable/internal/model"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gdb, mock
}

var listReturning = []string{"id", "username", "searched_address", "arrival_date", "departure_date"}

func TestListRepository_Update(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewListRepository(gdb)

	set, err := db.PartialUpdate([]db.Field{{Name: "searched_address", Value: "paris"}}, ListColumns)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(
		`UPDATE "lists" SET "searched_address" = $1 WHERE "id" = $2 RETURNING "id", "username", "searched_address", "arrival_date", "departure_date"`)).
		WithArgs("paris", 7).
		WillReturnRows(sqlmock.NewRows(listReturning).
			AddRow(7, "u1", "paris", time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC), time.Date(2023, 5, 3, 0, 0, 0, 0, time.UTC)))

	list, err := repo.Update(context.Background(), 7, set)
	require.NoError(t, err)
	assert.Equal(t, 7, list.ID)
	assert.Equal(t, "u1", list.Username)
	assert.Equal(t, "paris", list.SearchedAddress)
	assert.Equal(t, "2023-05-01", list.ArrivalDate.String())
	assert.Equal(t, "2023-05-03", list.DepartureDate.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRepository_Update_NotFound(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewListRepository(gdb)

	set, err := db.PartialUpdate([]db.Field{
		{Name: "arrival_date", Value: model.NewDate(time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC))},
		{Name: "departure_date", Value: model.NewDate(time.Date(2023, 6, 5, 0, 0, 0, 0, time.UTC))},
	}, ListColumns)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE "lists" SET "arrival_date" = $1, "departure_date" = $2 WHERE "id" = $3`)).
		WithArgs("2023-06-01", "2023-06-05", 99).
		WillReturnRows(sqlmock.NewRows(listReturning))

	list, err := repo.Update(context.Background(), 99, set)
	assert.Nil(t, list)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Update_MapsPasswordColumn(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewUserRepository(gdb)

	set, err := db.PartialUpdate([]db.Field{
		{Name: "password", Value: "$2a$04$hash"},
		{Name: "email", Value: "u1@example.com"},
	}, UserColumns)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE "users" SET "password_hash" = $1, "email" = $2 WHERE "username" = $3 RETURNING`)).
		WithArgs("$2a$04$hash", "u1@example.com", "u1").
		WillReturnRows(sqlmock.NewRows([]string{"username", "first_name", "last_name", "email", "is_admin"}).
			AddRow("u1", "Una", "One", "u1@example.com", false))

	user, err := repo.Update(context.Background(), "u1", set)
	require.NoError(t, err)
	assert.Equal(t, "u1@example.com", user.Email)
	assert.Empty(t, user.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_EmptyFieldsNeverReachTheDatabase(t *testing.T) {
	_, mock := newMockDB(t)

	_, err := db.PartialUpdate(nil, ListItemColumns)
	assert.ErrorIs(t, err, errors.ErrNoUpdateFields)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRepository_Delete_NotFound(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewListRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "lists" WHERE "lists"."id" = $1`)).
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), 42)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListItemRepository_Create(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewListItemRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "id" FROM "lists" WHERE id = \$1 FOR SHARE`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectQuery(`INSERT INTO "list_items"`).
		WithArgs(3, "Clothing", "socks", 2).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectCommit()

	item := &model.ListItem{ListID: 3, Category: "Clothing", Item: "socks", Qty: 2}
	require.NoError(t, repo.Create(context.Background(), item))
	assert.Equal(t, 11, item.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListItemRepository_Create_MissingList(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewListItemRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "id" FROM "lists" WHERE id = \$1 FOR SHARE`).
		WithArgs(404).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &model.ListItem{ListID: 404, Category: "Misc", Item: "map", Qty: 1})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
