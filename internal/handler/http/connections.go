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

func (h *Handler) listConnections(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	connections, err := h.services.ConnectionService.ListAll(ctx)
	if err != nil {
		log.Err(err).Msg("unexpected error occurred during connection listing")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, models.NewConnectionResponses(connections), http.StatusOK)
}

func (h *Handler) createConnection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.CreateConnectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	created, err := h.services.ConnectionService.Create(ctx, req)
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
			log.Err(err).Msg("unexpected error occurred during connection creation")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, models.NewConnectionResponse(created), http.StatusCreated)
}

func (h *Handler) connectionByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, err := idURLParam(r)
	if err != nil {
		log.Err(err).Msg("invalid id parameter")
		http.Error(w, "invalid id parameter", http.StatusBadRequest)
		return
	}

	connection, err := h.services.ConnectionService.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrConnectionNotFound) {
			http.Error(w, "connection was not found", http.StatusNotFound)
			return
		}
		log.Err(err).Msg("unexpected error occurred during connection lookup")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, models.NewConnectionResponse(connection), http.StatusOK)
}

func (h *Handler) updateConnection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, err := idURLParam(r)
	if err != nil {
		log.Err(err).Msg("invalid id parameter")
		http.Error(w, "invalid id parameter", http.StatusBadRequest)
		return
	}

	var patch models.ConnectionPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	updated, err := h.services.ConnectionService.Update(ctx, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrEmptyPatch):
			http.Error(w, "nothing to update", http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrConnectionNotFound):
			http.Error(w, "connection was not found", http.StatusNotFound)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during connection update")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, models.NewConnectionResponse(updated), http.StatusOK)
}

func (h *Handler) deleteConnection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, err := idURLParam(r)
	if err != nil {
		log.Err(err).Msg("invalid id parameter")
		http.Error(w, "invalid id parameter", http.StatusBadRequest)
		return
	}

	if err := h.services.ConnectionService.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrConnectionNotFound) {
			http.Error(w, "connection was not found", http.StatusNotFound)
			return
		}
		log.Err(err).Msg("unexpected error occurred during connection deletion")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "connection deleted"}, http.StatusOK)
}
