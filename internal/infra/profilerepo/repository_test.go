package profilerepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/skinfit/internal/domain/profile"
)

func TestPostgresCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	createdAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(
		"INSERT INTO skin_profiles (name,age,skin_type,conditions,routine_frequency,created_at) VALUES ($1,$2,$3,$4,$5,$6) RETURNING id, created_at",
	)).
		WithArgs("Ana", 29, "grasa", sqlmock.AnyArg(), "advanced", createdAt).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(42, createdAt))

	got, err := repo.Create(context.Background(), profile.Profile{
		Name:       "Ana",
		Age:        29,
		SkinType:   profile.SkinOily,
		Conditions: []profile.Concern{profile.ConcernAcne, profile.ConcernSpots},
		Frequency:  profile.FrequencyAdvanced,
		CreatedAt:  createdAt,
	})
	require.NoError(t, err)
	require.Equal(t, int64(42), got.ID)
	require.Equal(t, createdAt, got.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCreateFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("INSERT INTO skin_profiles").WillReturnError(errors.New("relation does not exist"))

	_, err = repo.Create(context.Background(), profile.Profile{Name: "Ana", Age: 29, SkinType: profile.SkinDry})
	require.ErrorContains(t, err, "insert profile")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCountBySkinType(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT skin_type, COUNT(*) FROM skin_profiles GROUP BY skin_type ORDER BY COUNT(*) DESC, skin_type",
	)).WillReturnRows(sqlmock.NewRows([]string{"skin_type", "count"}).
		AddRow("grasa", 5).
		AddRow("seca", 2))

	got, err := repo.CountBySkinType(context.Background())
	require.NoError(t, err)
	require.Equal(t, []profile.Count{{Label: "grasa", Count: 5}, {Label: "seca", Count: 2}}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresEnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS skin_profiles").WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, NewPostgresRepository(db).EnsureSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	for _, st := range []profile.SkinType{profile.SkinOily, profile.SkinDry, profile.SkinOily} {
		p, err := repo.Create(ctx, profile.Profile{Name: "x", Age: 30, SkinType: st})
		require.NoError(t, err)
		require.NotZero(t, p.ID)
		require.False(t, p.CreatedAt.IsZero())
	}

	counts, err := repo.CountBySkinType(ctx)
	require.NoError(t, err)
	require.Equal(t, []profile.Count{{Label: "grasa", Count: 2}, {Label: "seca", Count: 1}}, counts)
}
