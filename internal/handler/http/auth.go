package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/sixpath/sixpath-server/internal/logger"
	"github.com/sixpath/sixpath-server/internal/service"
	"github.com/sixpath/sixpath-server/internal/store"
	"github.com/sixpath/sixpath-server/internal/utils"
	"github.com/sixpath/sixpath-server/models"
)

// defaultServiceTokenDays is the lifetime of a service token when the
// caller does not pass an expiration_days query parameter.
const defaultServiceTokenDays = 365

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	registered, err := h.services.AuthService.Register(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			http.Error(w, "invalid data provided", http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrUsernameAlreadyExists):
			log.Err(err).Msg("username already exists")
			http.Error(w, "username already exists", http.StatusConflict)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during registration")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	log.Debug().Int64("id", registered.ID).Msg("account successfully registered")

	utils.WriteJSON(w, models.NewPersonResponse(registered, registered.ID), http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	signed, err := h.services.AuthService.Login(ctx, req)
	if err != nil {
		h.writeLoginError(w, r, err)
		return
	}

	log.Debug().Str("username", req.Username).Msg("successful login")

	utils.WriteJSON(w, models.NewTokenResponse(signed), http.StatusOK)
}

func (h *Handler) serviceToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	expirationDays := defaultServiceTokenDays
	if raw := r.URL.Query().Get("expiration_days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days <= 0 {
			log.Error().Str("expiration_days", raw).Msg("invalid expiration_days parameter")
			http.Error(w, "invalid expiration_days parameter", http.StatusBadRequest)
			return
		}
		expirationDays = days
	}

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	signed, err := h.services.AuthService.IssueServiceToken(ctx, req, expirationDays)
	if err != nil {
		h.writeLoginError(w, r, err)
		return
	}

	log.Debug().Str("username", req.Username).Int("expiration_days", expirationDays).Msg("service token issued")

	utils.WriteJSON(w, models.NewTokenResponse(signed), http.StatusOK)
}

// logout is a stateless acknowledgement: tokens are not tracked server-side,
// so there is nothing to revoke. Clients drop the token on their end.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.MessageResponse{Message: "logged out"}, http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	identity, ok := utils.IdentityFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	err := h.services.AuthService.ChangePassword(ctx, identity.ID, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			http.Error(w, "invalid data provided", http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrPersonNotFound):
			log.Err(err).Msg("account was not found")
			http.Error(w, "account was not found", http.StatusNotFound)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during password change")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "password updated"}, http.StatusOK)
}

// writeLoginError maps credential verification failures onto HTTP statuses.
// Unknown username and wrong password share one 401 response.
func (h *Handler) writeLoginError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	switch {
	case errors.Is(err, service.ErrInvalidDataProvided):
		log.Err(err).Msg("invalid data provided")
		http.Error(w, "invalid data provided", http.StatusBadRequest)
	case errors.Is(err, service.ErrInvalidCredentials):
		log.Err(err).Msg("invalid username/password")
		http.Error(w, "invalid username/password", http.StatusUnauthorized)
	default:
		log.Err(err).Msg("unexpected error occurred during login")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
