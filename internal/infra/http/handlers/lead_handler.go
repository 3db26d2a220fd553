package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/lungeable/crunch-backend/internal/infra/http/middleware"
	"github.com/lungeable/crunch-backend/internal/usecase"
)

type LeadHandler struct {
	SubmitUC    *usecase.SubmitLeadUseCase
	rateLimiter *RateLimiter
}

func NewLeadHandler(uc *usecase.SubmitLeadUseCase) *LeadHandler {
	return &LeadHandler{
		SubmitUC:    uc,
		rateLimiter: NewRateLimiter(10, time.Minute), // 10 req/min per IP
	}
}

type submitLeadResponse struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg,omitempty"`
	RefCode string `json:"ref_code,omitempty"`
	Message string `json:"message,omitempty"` // error detail
}

func (h *LeadHandler) Handle(w http.ResponseWriter, r *http.Request) {
	clientIP := getClientIP(r)
	if !h.rateLimiter.Allow(clientIP) {
		writeJSON(w, http.StatusTooManyRequests, submitLeadResponse{
			Success: false,
			Message: "Too many requests. Please try again later.",
		})
		return
	}

	var input usecase.SubmitLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, submitLeadResponse{
			Success: false,
			Message: "Invalid JSON",
		})
		return
	}

	// Request-derived metadata the page would have read from the browser.
	if input.UserAgent == "" {
		input.UserAgent = r.UserAgent()
	}
	if input.Referrer == "" {
		input.Referrer = r.Referer()
	}

	if strings.TrimSpace(input.Website) != "" {
		middleware.RecordHoneypotDrop()
	}

	output, err := h.SubmitUC.Execute(r.Context(), input)
	if err != nil {
		if usecase.IsDomainError(err) {
			middleware.RecordLeadCaptured("invalid")
			writeJSON(w, http.StatusBadRequest, submitLeadResponse{
				Success: false,
				Message: err.Error(),
			})
			return
		}

		middleware.RecordLeadCaptured("failed")
		writeJSON(w, http.StatusBadGateway, submitLeadResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	middleware.RecordLeadCaptured("ok")
	writeJSON(w, http.StatusCreated, submitLeadResponse{
		Success: true,
		Msg:     output.Msg,
		RefCode: output.RefCode,
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
