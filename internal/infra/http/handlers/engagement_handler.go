package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lungeable/crunch-backend/internal/entity"
	"github.com/lungeable/crunch-backend/internal/infra/http/middleware"
	"github.com/lungeable/crunch-backend/internal/usecase"
)

type EngagementHandler struct {
	AwardUC *usecase.AwardEngagementUseCase
}

func NewEngagementHandler(uc *usecase.AwardEngagementUseCase) *EngagementHandler {
	return &EngagementHandler{AwardUC: uc}
}

type awardRequest struct {
	Delta  int                `json:"delta"`
	Reason entity.AwardReason `json:"reason"`
}

func (h *EngagementHandler) HandleAward(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session")
	if sessionID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "session is required",
		})
		return
	}

	var req awardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Invalid JSON",
		})
		return
	}

	if req.Delta == 0 {
		req.Delta = 1
	}
	if req.Reason == "" {
		req.Reason = entity.ReasonTap
	}

	output, err := h.AwardUC.Execute(r.Context(), usecase.AwardEngagementInput{
		SessionID: sessionID,
		Delta:     req.Delta,
		Reason:    req.Reason,
	})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Failed to update rep meter",
		})
		return
	}

	middleware.RecordAward(string(req.Reason), output.Accepted)

	// Refused awards (cooldown, cap) are a normal answer, not an error.
	writeJSON(w, http.StatusOK, output)
}

func (h *EngagementHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session")
	if sessionID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "session is required",
		})
		return
	}

	output, err := h.AwardUC.State(r.Context(), sessionID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Failed to read rep meter",
		})
		return
	}

	writeJSON(w, http.StatusOK, output)
}
