package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sixpath/sixpath-server/internal/config"
	"github.com/sixpath/sixpath-server/internal/logger"
	"github.com/sixpath/sixpath-server/migrations"
	"github.com/sixpath/sixpath-server/models"
)

// newSQLiteStorages opens a real sqlite database in a temp file and runs the
// embedded migrations, so constraint errors come from the actual driver
// rather than sqlmock.
func newSQLiteStorages(t *testing.T) Storages {
	t.Helper()
	ctx := context.Background()

	cfg := config.DB{
		Type:       config.DBTypeSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "sixpath.db"),
	}

	db, err := NewDB(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, migrations.Migrate(db.DB, cfg.Type))

	return NewStorages(db, logger.Nop())
}

func sqliteAccount(t *testing.T, storages Storages, username string) models.Person {
	t.Helper()

	hash := "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA"
	created, err := storages.PersonRepository.Create(context.Background(), models.Person{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		IsAccount:    true,
		Username:     &username,
		PasswordHash: &hash,
	})
	require.NoError(t, err)

	return created
}

func TestSQLite_DuplicateUsername(t *testing.T) {
	storages := newSQLiteStorages(t)
	ctx := context.Background()

	first := sqliteAccount(t, storages, "alice")
	require.NotZero(t, first.ID)

	username := "alice"
	hash := "$argon2id$other"
	_, err := storages.PersonRepository.Create(ctx, models.Person{
		FirstName:    "Alice",
		LastName:     "Other",
		IsAccount:    true,
		Username:     &username,
		PasswordHash: &hash,
	})
	assert.ErrorIs(t, err, ErrUsernameAlreadyExists)
}

func TestSQLite_DuplicateUsername_OnUpdate(t *testing.T) {
	storages := newSQLiteStorages(t)
	ctx := context.Background()

	sqliteAccount(t, storages, "alice")
	second := sqliteAccount(t, storages, "bob")

	taken := "alice"
	_, err := storages.PersonRepository.Update(ctx, second.ID, models.PersonPatch{Username: &taken})
	assert.ErrorIs(t, err, ErrUsernameAlreadyExists)
}

func TestSQLite_ContactsWithoutUsernameCoexist(t *testing.T) {
	storages := newSQLiteStorages(t)
	ctx := context.Background()

	// The unique index is partial; any number of credential-less contacts
	// must be accepted.
	for _, name := range []string{"Grace", "Margaret"} {
		_, err := storages.PersonRepository.Create(ctx, models.Person{FirstName: name, LastName: "Contact"})
		require.NoError(t, err)
	}

	count, err := storages.PersonRepository.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestSQLite_ReferralMissingReferrer(t *testing.T) {
	storages := newSQLiteStorages(t)

	_, err := storages.ReferralRepository.Create(context.Background(), models.Referral{ReferrerID: 999})
	assert.ErrorIs(t, err, ErrPersonReferenceMissing)
}

func TestSQLite_ConnectionMissingEndpoint(t *testing.T) {
	storages := newSQLiteStorages(t)
	ctx := context.Background()

	account := sqliteAccount(t, storages, "alice")

	_, err := storages.ConnectionRepository.Create(ctx, models.Connection{
		Person1ID: account.ID,
		Person2ID: 999,
	})
	assert.ErrorIs(t, err, ErrPersonReferenceMissing)
}

func TestSQLite_ReferralRoundtrip(t *testing.T) {
	storages := newSQLiteStorages(t)
	ctx := context.Background()

	account := sqliteAccount(t, storages, "alice")

	company := "Acme"
	applied, err := models.ParseDate("2026-03-14")
	require.NoError(t, err)

	created, err := storages.ReferralRepository.Create(ctx, models.Referral{
		ReferrerID:      account.ID,
		Company:         &company,
		ApplicationDate: &applied,
	})
	require.NoError(t, err)

	found, err := storages.ReferralRepository.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, found.ApplicationDate)
	assert.Equal(t, "2026-03-14", found.ApplicationDate.String())
}
