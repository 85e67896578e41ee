package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sixpath/sixpath-server/internal/logger"
	"github.com/sixpath/sixpath-server/models"
)

func newTestReferralRepo(t *testing.T) (*referralRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	l := logger.Nop()
	repo := &referralRepository{
		db: &DB{
			DB:         db,
			builder:    sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
			classifier: NewPostgresErrorClassifier(),
			logger:     l,
		},
		logger: l,
	}

	return repo, mock, db
}

func TestReferralRepository_Create_Success(t *testing.T) {
	repo, mock, db := newTestReferralRepo(t)
	defer db.Close()

	company := "Acme"
	applied := models.NewDate(time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC))
	referral := models.Referral{ReferrerID: 42, Company: &company, ApplicationDate: &applied}

	rows := sqlmock.
		NewRows(referralColumns).
		AddRow(1, int64(42), company, nil, applied.Time, nil, nil, nil, time.Now(), nil)

	mock.ExpectQuery("INSERT INTO referrals").
		WillReturnRows(rows)

	created, err := repo.Create(context.Background(), referral)
	require.NoError(t, err)

	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, int64(42), created.ReferrerID)
	require.NotNil(t, created.ApplicationDate)
	assert.Equal(t, "2026-03-14", created.ApplicationDate.String())
	assert.Nil(t, created.InterviewDate)
}

func TestReferralRepository_Create_MissingReferrer(t *testing.T) {
	repo, mock, db := newTestReferralRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO referrals").
		WillReturnError(pgError(pgerrcode.ForeignKeyViolation))

	_, err := repo.Create(context.Background(), models.Referral{ReferrerID: 404})
	assert.ErrorIs(t, err, ErrPersonReferenceMissing)
}

func TestReferralRepository_ListByReferrer(t *testing.T) {
	repo, mock, db := newTestReferralRepo(t)
	defer db.Close()

	rows := sqlmock.
		NewRows(referralColumns).
		AddRow(1, int64(42), nil, nil, nil, nil, nil, nil, time.Now(), nil).
		AddRow(2, int64(42), nil, nil, nil, nil, nil, nil, time.Now(), nil)

	mock.ExpectQuery("FROM referrals WHERE referrer_id =").
		WithArgs(int64(42)).
		WillReturnRows(rows)

	referrals, err := repo.ListByReferrer(context.Background(), 42, 100, 0)
	require.NoError(t, err)
	require.Len(t, referrals, 2)
}

func TestReferralRepository_Delete_NotFound(t *testing.T) {
	repo, mock, db := newTestReferralRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM referrals WHERE id =").
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 404)
	assert.ErrorIs(t, err, ErrReferralNotFound)
}
