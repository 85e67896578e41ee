package store

import "github.com/sixpath/sixpath-server/internal/logger"

// Storages bundles the repositories wired against a single database handle.
type Storages struct {
	PersonRepository     PersonRepository
	ConnectionRepository ConnectionRepository
	ReferralRepository   ReferralRepository
}

// NewStorages constructs all repositories over the given database connection.
func NewStorages(db *DB, logger *logger.Logger) Storages {
	return Storages{
		PersonRepository:     NewPersonRepository(db, logger),
		ConnectionRepository: NewConnectionRepository(db, logger),
		ReferralRepository:   NewReferralRepository(db, logger),
	}
}
