package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sixpath/sixpath-server/internal/logger"
	"github.com/sixpath/sixpath-server/internal/service"
	"github.com/sixpath/sixpath-server/internal/store"
	"github.com/sixpath/sixpath-server/internal/utils"
	"github.com/sixpath/sixpath-server/models"
)

func (h *Handler) myReferrals(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	identity, ok := utils.IdentityFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	limit, offset, err := pageParams(r)
	if err != nil {
		log.Err(err).Msg("invalid pagination parameters")
		http.Error(w, "invalid pagination parameters", http.StatusBadRequest)
		return
	}

	referrals, err := h.services.ReferralService.ListMine(ctx, identity.ID, limit, offset)
	if err != nil {
		log.Err(err).Msg("unexpected error occurred during referral listing")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, models.NewReferralResponses(referrals), http.StatusOK)
}

func (h *Handler) createReferral(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.CreateReferralRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	// An omitted referrer defaults to the caller's own account.
	if req.ReferrerID == 0 {
		if identity, ok := utils.IdentityFromContext(ctx); ok {
			req.ReferrerID = identity.ID
		}
	}

	created, err := h.services.ReferralService.Create(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			http.Error(w, "invalid data provided", http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrPersonReferenceMissing):
			log.Err(err).Msg("referenced person does not exist")
			http.Error(w, "referenced person does not exist", http.StatusBadRequest)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during referral creation")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, models.NewReferralResponse(created), http.StatusCreated)
}

func (h *Handler) referralByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, err := idURLParam(r)
	if err != nil {
		log.Err(err).Msg("invalid id parameter")
		http.Error(w, "invalid id parameter", http.StatusBadRequest)
		return
	}

	referral, err := h.services.ReferralService.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrReferralNotFound) {
			http.Error(w, "referral was not found", http.StatusNotFound)
			return
		}
		log.Err(err).Msg("unexpected error occurred during referral lookup")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, models.NewReferralResponse(referral), http.StatusOK)
}

func (h *Handler) updateReferral(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, err := idURLParam(r)
	if err != nil {
		log.Err(err).Msg("invalid id parameter")
		http.Error(w, "invalid id parameter", http.StatusBadRequest)
		return
	}

	var patch models.ReferralPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	updated, err := h.services.ReferralService.Update(ctx, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrEmptyPatch):
			http.Error(w, "nothing to update", http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrReferralNotFound):
			http.Error(w, "referral was not found", http.StatusNotFound)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during referral update")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, models.NewReferralResponse(updated), http.StatusOK)
}

func (h *Handler) deleteReferral(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, err := idURLParam(r)
	if err != nil {
		log.Err(err).Msg("invalid id parameter")
		http.Error(w, "invalid id parameter", http.StatusBadRequest)
		return
	}

	if err := h.services.ReferralService.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrReferralNotFound) {
			http.Error(w, "referral was not found", http.StatusNotFound)
			return
		}
		log.Err(err).Msg("unexpected error occurred during referral deletion")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "referral deleted"}, http.StatusOK)
}
