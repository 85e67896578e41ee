package service

import (
	"github.com/sixpath/sixpath-server/internal/auth"
	"github.com/sixpath/sixpath-server/internal/config"
	"github.com/sixpath/sixpath-server/internal/logger"
	"github.com/sixpath/sixpath-server/internal/store"
)

// Services bundles the application services wired against the repositories.
type Services struct {
	AuthService       AuthService
	PersonService     PersonService
	ConnectionService ConnectionService
	ReferralService   ReferralService
}

// NewServices constructs all services over the given storages.
func NewServices(storages store.Storages, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	hasher := auth.NewHasher(auth.DefaultArgon2Params)

	return &Services{
		AuthService:       NewAuthService(storages.PersonRepository, hasher, cfg.App, logger),
		PersonService:     NewPersonService(storages.PersonRepository, logger),
		ConnectionService: NewConnectionService(storages.ConnectionRepository, logger),
		ReferralService:   NewReferralService(storages.ReferralRepository, logger),
	}
}
