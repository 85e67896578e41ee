package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sixpath/sixpath-server/internal/auth"
	"github.com/sixpath/sixpath-server/internal/store"
	"github.com/sixpath/sixpath-server/models"
)

func accountFixture(t *testing.T, id int64, username, password string) models.Person {
	t.Helper()

	hash, err := testHasher.Hash(password)
	require.NoError(t, err)
	email := username + "@example.com"

	return models.Person{
		ID:           id,
		FirstName:    "Ada",
		LastName:     "Lovelace",
		IsAccount:    true,
		Email:        &email,
		Username:     &username,
		PasswordHash: &hash,
	}
}

func TestRegister_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mocks := newTestHandler(t, ctrl)
	router := h.Init()

	mocks.persons.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, p models.Person) (models.Person, error) {
			p.ID = 1
			return p, nil
		},
	)

	body := `{"username":"ada","password":"super-secret","first_name":"Ada","last_name":"Lovelace"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.PersonResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.ID)
	assert.True(t, resp.IsAccount)
	assert.True(t, resp.IsMe)
	assert.NotContains(t, rec.Body.String(), "password", "credential material must never leak into responses")
}

func TestRegister_MissingFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _ := newTestHandler(t, ctrl)
	router := h.Init()

	body := `{"username":"ada","password":"super-secret"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_UsernameTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mocks := newTestHandler(t, ctrl)
	router := h.Init()

	mocks.persons.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return(models.Person{}, store.ErrUsernameAlreadyExists)

	body := `{"username":"ada","password":"super-secret","first_name":"Ada","last_name":"Lovelace"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLogin_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mocks := newTestHandler(t, ctrl)
	router := h.Init()

	account := accountFixture(t, 42, "ada", "super-secret")
	mocks.persons.EXPECT().GetByUsername(gomock.Any(), "ada").Return(account, nil)

	body := `{"username":"ada","password":"super-secret"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "bearer", resp.TokenType)
	require.NotEmpty(t, resp.AccessToken)

	claims, err := auth.ParseToken(resp.AccessToken, testAppCfg.TokenSignKey, testAppCfg.TokenAlgorithm)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
}

func TestLogin_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mocks := newTestHandler(t, ctrl)
	router := h.Init()

	account := accountFixture(t, 42, "ada", "super-secret")
	mocks.persons.EXPECT().GetByUsername(gomock.Any(), "ada").Return(account, nil)

	body := `{"username":"ada","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid username/password")
}

func TestLogin_UnknownUsername(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mocks := newTestHandler(t, ctrl)
	router := h.Init()

	mocks.persons.EXPECT().GetByUsername(gomock.Any(), "ghost").
		Return(models.Person{}, store.ErrPersonNotFound)

	body := `{"username":"ghost","password":"whatever"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	// Same status and body as a wrong password.
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid username/password")
}

func TestLogin_InvalidJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _ := newTestHandler(t, ctrl)
	router := h.Init()

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServiceToken_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mocks := newTestHandler(t, ctrl)
	router := h.Init()

	account := accountFixture(t, 42, "ada", "super-secret")
	mocks.persons.EXPECT().GetByUsername(gomock.Any(), "ada").Return(account, nil)

	body := `{"username":"ada","password":"super-secret"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/service-token?expiration_days=30", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	claims, err := auth.ParseToken(resp.AccessToken, testAppCfg.TokenSignKey, testAppCfg.TokenAlgorithm)
	require.NoError(t, err)
	assert.Equal(t, auth.ServiceTokenType, claims.TokenType)
}

func TestServiceToken_InvalidExpirationDays(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _ := newTestHandler(t, ctrl)
	router := h.Init()

	body := `{"username":"ada","password":"super-secret"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/service-token?expiration_days=-5", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChangePassword_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mocks := newTestHandler(t, ctrl)
	router := h.Init()

	mocks.persons.EXPECT().UpdatePasswordHash(gomock.Any(), int64(42), gomock.Any()).DoAndReturn(
		func(_ any, _ int64, passwordHash string) error {
			assert.True(t, testHasher.Verify("brand-new-password", passwordHash))
			return nil
		},
	)

	body := `{"new_password":"brand-new-password"}`
	req := httptest.NewRequest(http.MethodPut, "/users/me/password", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+testToken(t, 42, "ada@example.com"))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _ := newTestHandler(t, ctrl)
	router := h.Init()

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "logged out", resp.Message)
}
