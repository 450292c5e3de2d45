package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"github.com/crewdeck/crewdeck-api/internal/utils"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return gormDB, mock
}

func TestGormUserRepository_FindByUsername(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := NewUserRepository(gormDB)

	rows := sqlmock.NewRows([]string{"id", "username", "email", "display_name", "role"}).
		AddRow(1, "director", "director@example.com", "The Director", "producer")
	mock.ExpectQuery("SELECT \\* FROM `users` WHERE username = \\?").
		WithArgs("director", 1).
		WillReturnRows(rows)

	user, err := repo.FindByUsername("director")
	require.NoError(t, err)
	require.EqualValues(t, 1, user.ID)
	require.Equal(t, "director", user.Username)
	require.Equal(t, "The Director", user.DisplayName)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUserRepository_FindByUsernameNotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := NewUserRepository(gormDB)

	mock.ExpectQuery("SELECT \\* FROM `users` WHERE username = \\?").
		WithArgs("ghost", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByUsername("ghost")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUserRepository_List(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := NewUserRepository(gormDB)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	rows := sqlmock.NewRows([]string{"id", "username", "display_name"}).
		AddRow(2, "ann", "Ann").
		AddRow(1, "zed", "Zed")
	mock.ExpectQuery("SELECT \\* FROM `users` ORDER BY display_name ASC LIMIT \\?").
		WithArgs(20).
		WillReturnRows(rows)

	users, total, err := repo.List(utils.PaginationParams{Page: 1, Limit: 20, Offset: 0})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, users, 2)
	require.Equal(t, "Ann", users[0].DisplayName)

	require.NoError(t, mock.ExpectationsWereMet())
}
