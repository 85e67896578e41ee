package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/sixpath/sixpath-server/models"
)

func TestUpdatePerson_ForeignAccountForbidden(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mocks := newTestHandler(t, ctrl)
	router := h.Init()

	otherAccount := models.Person{ID: 7, FirstName: "Other", LastName: "Owner", IsAccount: true}
	mocks.persons.EXPECT().GetByID(gomock.Any(), int64(7)).Return(otherAccount, nil)

	req := httptest.NewRequest(http.MethodPut, "/users/7", strings.NewReader(`{"notes":"sneaky"}`))
	req.Header.Set("Authorization", "Bearer "+testToken(t, 42, "ada@example.com"))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "cannot modify another account")
}

func TestDeletePerson_ForeignAccountForbidden(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mocks := newTestHandler(t, ctrl)
	router := h.Init()

	otherAccount := models.Person{ID: 7, IsAccount: true}
	mocks.persons.EXPECT().GetByID(gomock.Any(), int64(7)).Return(otherAccount, nil)

	req := httptest.NewRequest(http.MethodDelete, "/users/7", nil)
	req.Header.Set("Authorization", "Bearer "+testToken(t, 42, "ada@example.com"))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "cannot delete another account")
}

func TestUpdatePerson_InvalidID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _ := newTestHandler(t, ctrl)
	router := h.Init()

	req := httptest.NewRequest(http.MethodPut, "/users/abc", strings.NewReader(`{"notes":"x"}`))
	req.Header.Set("Authorization", "Bearer "+testToken(t, 42, "ada@example.com"))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreatePerson_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mocks := newTestHandler(t, ctrl)
	router := h.Init()

	mocks.persons.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, p models.Person) (models.Person, error) {
			assert.False(t, p.IsAccount)
			p.ID = 5
			return p, nil
		},
	)

	body := `{"first_name":"Grace","last_name":"Hopper","company":"Navy"}`
	req := httptest.NewRequest(http.MethodPost, "/users/", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+testToken(t, 42, "ada@example.com"))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}
