package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lungeable/crunch-backend/internal/coach"
	"github.com/lungeable/crunch-backend/internal/entity"
	"github.com/lungeable/crunch-backend/internal/infra/http/middleware"
	"github.com/lungeable/crunch-backend/internal/usecase"
)

type CoachHandler struct {
	AwardUC *usecase.AwardEngagementUseCase
}

func NewCoachHandler(awardUC *usecase.AwardEngagementUseCase) *CoachHandler {
	return &CoachHandler{AwardUC: awardUC}
}

func (h *CoachHandler) HandleScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"scenarios": coach.Scenarios(),
	})
}

// HandleReplay streams one scenario over SSE, one line per reveal interval,
// exactly as the page's chat mock paces its bubbles. Closing the connection
// cancels every pending reveal.
func (h *CoachHandler) HandleReplay(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if _, ok := coach.Script(key); !ok {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"success": false,
			"message": "unknown scenario",
		})
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	lines := make(chan coach.Line, 8)
	done := make(chan string, 1)

	player := coach.NewPlayer(coach.DefaultRevealInterval)
	player.OnPlay = func(k string) { middleware.RecordScenarioReplay(k) }
	player.OnLine = func(l coach.Line) { lines <- l }
	player.OnDone = func(k string) { done <- k }

	if !player.Play(key) {
		return
	}
	defer player.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case line := <-lines:
			data, _ := json.Marshal(line)
			fmt.Fprintf(w, "event: line\ndata: %s\n\n", data)
			flusher.Flush()
		case <-done:
			// Drain anything revealed in the same breath as completion.
			for {
				select {
				case line := <-lines:
					data, _ := json.Marshal(line)
					fmt.Fprintf(w, "event: line\ndata: %s\n\n", data)
					flusher.Flush()
					continue
				default:
				}
				break
			}

			fmt.Fprintf(w, "event: done\ndata: {}\n\n")
			flusher.Flush()
			h.awardScenario(r)
			return
		}
	}
}

// awardScenario credits the rep meter for a finished replay. Not throttled
// by the tap cooldown, only by the daily cap.
func (h *CoachHandler) awardScenario(r *http.Request) {
	session := r.URL.Query().Get("session")
	if session == "" || h.AwardUC == nil {
		return
	}

	_, err := h.AwardUC.Execute(r.Context(), usecase.AwardEngagementInput{
		SessionID: session,
		Delta:     1,
		Reason:    entity.ReasonScenario,
	})
	if err != nil {
		log.Printf("⚠️ scenario award failed for %s: %v", session, err)
	}
}
