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

	"github.com/sixpath/sixpath-server/internal/service"
	"github.com/sixpath/sixpath-server/models"
)

func TestCreateReferral_DefaultsReferrerToCaller(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mocks := newTestHandler(t, ctrl)
	router := h.Init()

	mocks.referrals.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, ref models.Referral) (models.Referral, error) {
			assert.Equal(t, int64(42), ref.ReferrerID, "omitted referrer must default to the caller")
			ref.ID = 1
			return ref, nil
		},
	)

	body := `{"company":"Acme","position":"SRE"}`
	req := httptest.NewRequest(http.MethodPost, "/referrals/", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+testToken(t, 42, "ada@example.com"))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.ReferralResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.ReferrerID)
}

func TestMyReferrals_ScopedToCaller(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mocks := newTestHandler(t, ctrl)
	router := h.Init()

	mocks.referrals.EXPECT().
		ListByReferrer(gomock.Any(), int64(42), uint64(service.DefaultListLimit), uint64(0)).
		Return([]models.Referral{{ID: 1, ReferrerID: 42}, {ID: 2, ReferrerID: 42}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/referrals/me", nil)
	req.Header.Set("Authorization", "Bearer "+testToken(t, 42, "ada@example.com"))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []models.ReferralResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
}
