package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lungeable/crunch-backend/internal/usecase"
)

type PreferenceHandler struct {
	CaptureUC *usecase.CapturePreferencesUseCase
}

func NewPreferenceHandler(uc *usecase.CapturePreferencesUseCase) *PreferenceHandler {
	return &PreferenceHandler{CaptureUC: uc}
}

// Handle always answers 202: the questionnaire is a nice-to-have follow-up
// and the page moves on whether or not the row lands.
func (h *PreferenceHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var input usecase.CapturePreferencesInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Invalid JSON",
		})
		return
	}

	h.CaptureUC.Execute(r.Context(), input)

	writeJSON(w, http.StatusAccepted, map[string]interface{}{"success": true})
}
