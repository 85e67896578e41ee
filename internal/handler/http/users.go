package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sixpath/sixpath-server/internal/logger"
	"github.com/sixpath/sixpath-server/internal/service"
	"github.com/sixpath/sixpath-server/internal/store"
	"github.com/sixpath/sixpath-server/internal/utils"
	"github.com/sixpath/sixpath-server/models"
)

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	identity, ok := utils.IdentityFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	person, err := h.services.PersonService.GetByID(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, store.ErrPersonNotFound) {
			log.Err(err).Int64("id", identity.ID).Msg("account record was not found")
			http.Error(w, "person was not found", http.StatusNotFound)
			return
		}
		log.Err(err).Msg("unexpected error occurred during person lookup")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, models.NewPersonResponse(person, identity.ID), http.StatusOK)
}

func (h *Handler) personByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, err := idURLParam(r)
	if err != nil {
		log.Err(err).Msg("invalid id parameter")
		http.Error(w, "invalid id parameter", http.StatusBadRequest)
		return
	}

	identity, _ := utils.IdentityFromContext(ctx)

	person, err := h.services.PersonService.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrPersonNotFound) {
			http.Error(w, "person was not found", http.StatusNotFound)
			return
		}
		log.Err(err).Msg("unexpected error occurred during person lookup")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, models.NewPersonResponse(person, identity.ID), http.StatusOK)
}

func (h *Handler) personByUsername(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	username := chi.URLParam(r, "username")
	identity, _ := utils.IdentityFromContext(ctx)

	person, err := h.services.PersonService.GetByUsername(ctx, username)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			http.Error(w, "invalid data provided", http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrPersonNotFound):
			http.Error(w, "person was not found", http.StatusNotFound)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during person lookup")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, models.NewPersonResponse(person, identity.ID), http.StatusOK)
}

func (h *Handler) listPersons(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	limit, offset, err := pageParams(r)
	if err != nil {
		log.Err(err).Msg("invalid pagination parameters")
		http.Error(w, "invalid pagination parameters", http.StatusBadRequest)
		return
	}

	identity, _ := utils.IdentityFromContext(ctx)

	people, err := h.services.PersonService.List(ctx, limit, offset)
	if err != nil {
		log.Err(err).Msg("unexpected error occurred during person listing")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, models.NewPersonResponses(people, identity.ID), http.StatusOK)
}

func (h *Handler) createPerson(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.CreatePersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	identity, _ := utils.IdentityFromContext(ctx)

	created, err := h.services.PersonService.Create(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDataProvided) {
			log.Err(err).Msg("invalid data provided")
			http.Error(w, "invalid data provided", http.StatusBadRequest)
			return
		}
		log.Err(err).Msg("unexpected error occurred during person creation")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, models.NewPersonResponse(created, identity.ID), http.StatusCreated)
}

func (h *Handler) updatePerson(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, err := idURLParam(r)
	if err != nil {
		log.Err(err).Msg("invalid id parameter")
		http.Error(w, "invalid id parameter", http.StatusBadRequest)
		return
	}

	identity, ok := utils.IdentityFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var patch models.PersonPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	updated, err := h.services.PersonService.Update(ctx, identity.ID, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrEmptyPatch):
			http.Error(w, "nothing to update", http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrPersonNotFound):
			http.Error(w, "person was not found", http.StatusNotFound)
			return
		case errors.Is(err, store.ErrUsernameAlreadyExists):
			http.Error(w, "username already exists", http.StatusConflict)
			return
		case errors.Is(err, service.ErrForbidden):
			log.Err(err).Int64("id", id).Msg("cross-account mutation rejected")
			http.Error(w, "cannot modify another account", http.StatusForbidden)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during person update")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, models.NewPersonResponse(updated, identity.ID), http.StatusOK)
}

func (h *Handler) deletePerson(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, err := idURLParam(r)
	if err != nil {
		log.Err(err).Msg("invalid id parameter")
		http.Error(w, "invalid id parameter", http.StatusBadRequest)
		return
	}

	identity, ok := utils.IdentityFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err := h.services.PersonService.Delete(ctx, identity.ID, id); err != nil {
		switch {
		case errors.Is(err, store.ErrPersonNotFound):
			http.Error(w, "person was not found", http.StatusNotFound)
			return
		case errors.Is(err, service.ErrForbidden):
			log.Err(err).Int64("id", id).Msg("cross-account mutation rejected")
			http.Error(w, "cannot delete another account", http.StatusForbidden)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during person deletion")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "person deleted"}, http.StatusOK)
}

func (h *Handler) filterOptions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	options, err := h.services.PersonService.FilterOptions(ctx)
	if err != nil {
		log.Err(err).Msg("unexpected error occurred during filter options lookup")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, options, http.StatusOK)
}

// idURLParam parses the {id} chi route parameter as a positive int64.
func idURLParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, errors.New("id must be positive")
	}

	return id, nil
}

// pageParams parses the optional limit and offset query parameters.
func pageParams(r *http.Request) (limit, offset uint64, err error) {
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return 0, 0, err
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		offset, err = strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return 0, 0, err
		}
	}

	return limit, offset, nil
}
