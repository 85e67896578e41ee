package http

import (
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/sixpath/sixpath-server/internal/auth"
	"github.com/sixpath/sixpath-server/internal/config"
	"github.com/sixpath/sixpath-server/internal/logger"
	"github.com/sixpath/sixpath-server/internal/mock"
	"github.com/sixpath/sixpath-server/internal/service"
)

var testAppCfg = config.App{
	TokenSignKey:   "test-sign-key",
	TokenAlgorithm: "HS256",
	TokenDuration:  30 * time.Minute,
}

// testHasher keeps Argon2id cheap in handler tests.
var testHasher = auth.NewHasher(auth.Argon2Params{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 8, KeyLength: 16})

type testMocks struct {
	persons     *mock.MockPersonRepository
	connections *mock.MockConnectionRepository
	referrals   *mock.MockReferralRepository
}

// newTestHandler wires a real Handler (real services, real router) over
// mocked repositories.
func newTestHandler(t *testing.T, ctrl *gomock.Controller) (*Handler, testMocks) {
	t.Helper()

	mocks := testMocks{
		persons:     mock.NewMockPersonRepository(ctrl),
		connections: mock.NewMockConnectionRepository(ctrl),
		referrals:   mock.NewMockReferralRepository(ctrl),
	}

	log := logger.Nop()
	services := &service.Services{
		AuthService:       service.NewAuthService(mocks.persons, testHasher, testAppCfg, log),
		PersonService:     service.NewPersonService(mocks.persons, log),
		ConnectionService: service.NewConnectionService(mocks.connections, log),
		ReferralService:   service.NewReferralService(mocks.referrals, log),
	}

	return NewHandler(services, log), mocks
}

// testToken issues a token the test handler's auth middleware accepts.
func testToken(t *testing.T, userID int64, email string) string {
	t.Helper()

	signed, err := auth.NewToken(userID, email, "", testAppCfg.TokenDuration, testAppCfg.TokenSignKey, testAppCfg.TokenAlgorithm)
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}

	return signed
}
