package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sixpath/sixpath-server/internal/logger"
	"github.com/sixpath/sixpath-server/models"
)

func newTestClient(t *testing.T, srv *httptest.Server) APIClient {
	t.Helper()

	client, err := NewHTTPAPIClient(srv.URL, 5*time.Second, logger.Nop())
	require.NoError(t, err)

	return client
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"bare host gets scheme", "localhost:8000", "http://localhost:8000", false},
		{"explicit scheme kept", "https://api.example.com", "https://api.example.com", false},
		{"trailing slash trimmed", "http://localhost:8000/", "http://localhost:8000", false},
		{"empty address", "", "", true},
		{"whitespace only", "   ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHTTPAPIClient_Login_StoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)

		var req models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ada", req.Username)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.NewTokenResponse("signed-token"))
	}))
	defer srv.Close()

	client := newTestClient(t, srv)

	err := client.Login(context.Background(), models.LoginRequest{Username: "ada", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "signed-token", client.Token())
}

func TestHTTPAPIClient_Login_BadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid username/password", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := newTestClient(t, srv)

	err := client.Login(context.Background(), models.LoginRequest{Username: "ada", Password: "wrong"})
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, client.Token())
}

func TestHTTPAPIClient_Login_EmptyTokenBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv)

	err := client.Login(context.Background(), models.LoginRequest{Username: "ada", Password: "secret"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no access token")
}

func TestHTTPAPIClient_CreateContact_SendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users", r.URL.Path)
		assert.Equal(t, "Bearer signed-token", r.Header.Get("Authorization"))

		var req models.CreatePersonRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.PersonResponse{ID: 5, FirstName: req.FirstName, LastName: req.LastName})
	}))
	defer srv.Close()

	client := newTestClient(t, srv)
	client.SetToken("signed-token")

	created, err := client.CreateContact(context.Background(), models.CreatePersonRequest{FirstName: "Grace", LastName: "Hopper"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), created.ID)
}

func TestHTTPAPIClient_CreateContact_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "username already exists", http.StatusConflict)
	}))
	defer srv.Close()

	client := newTestClient(t, srv)
	client.SetToken("signed-token")

	_, err := client.CreateContact(context.Background(), models.CreatePersonRequest{FirstName: "Grace", LastName: "Hopper"})
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "username already exists")
}

func TestHTTPAPIClient_ListContacts_Pagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "500", r.URL.Query().Get("limit"))
		assert.Equal(t, "1000", r.URL.Query().Get("offset"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]models.PersonResponse{{ID: 1}, {ID: 2}})
	}))
	defer srv.Close()

	client := newTestClient(t, srv)
	client.SetToken("signed-token")

	people, err := client.ListContacts(context.Background(), 500, 1000)
	require.NoError(t, err)
	require.Len(t, people, 2)
}

func TestHTTPAPIClient_CreateConnection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/connections", r.URL.Path)
		assert.Equal(t, "Bearer signed-token", r.Header.Get("Authorization"))

		var req models.CreateConnectionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.ConnectionResponse{ID: 3, Person1ID: req.Person1ID, Person2ID: req.Person2ID})
	}))
	defer srv.Close()

	client := newTestClient(t, srv)
	client.SetToken("signed-token")

	created, err := client.CreateConnection(context.Background(), models.CreateConnectionRequest{Person1ID: 1, Person2ID: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), created.ID)
}

func TestHTTPAPIClient_CreateReferral_DefaultsReferrerServerSide(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/referrals", r.URL.Path)

		var req models.CreateReferralRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Zero(t, req.ReferrerID, "the client leaves attribution to the server")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.ReferralResponse{ID: 7, ReferrerID: 42, Company: req.Company})
	}))
	defer srv.Close()

	client := newTestClient(t, srv)
	client.SetToken("signed-token")

	company := "Acme"
	created, err := client.CreateReferral(context.Background(), models.CreateReferralRequest{Company: &company})
	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ReferrerID)
}

func TestHTTPAPIClient_Register_LogsInAfterwards(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/auth/register":
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(models.PersonResponse{ID: 1, FirstName: "Ada", IsAccount: true})
		case "/auth/login":
			json.NewEncoder(w).Encode(models.NewTokenResponse("post-registration-token"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := newTestClient(t, srv)

	created, err := client.Register(context.Background(), models.RegisterRequest{
		Username: "ada", Password: "secret", FirstName: "Ada", LastName: "Lovelace",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "post-registration-token", client.Token())
}
