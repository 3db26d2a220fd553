package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lungeable/crunch-backend/internal/usecase"
	"github.com/stretchr/testify/assert"
)

func postLead(h *LeadHandler, ip string, body map[string]interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/api/leads", bytes.NewReader(payload))
	req.Header.Set("X-Real-IP", ip)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

// All ports nil: the store and relay are both absent, so only paths that
// never reach the channels can succeed.
func newBareHandler() *LeadHandler {
	return NewLeadHandler(usecase.NewSubmitLeadUseCase(nil, nil, nil, nil, nil, "crunch"))
}

func TestLeadHandlerValidationError(t *testing.T) {
	h := newBareHandler()

	rec := postLead(h, "1.2.3.4", map[string]interface{}{"email": "not-an-email"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	assert.Equal(t, false, resp["success"])
	assert.Contains(t, resp["message"], "email")
}

func TestLeadHandlerHoneypotLooksLikeSuccess(t *testing.T) {
	h := newBareHandler()

	rec := postLead(h, "1.2.3.5", map[string]interface{}{
		"email":   "maya@example.com",
		"website": "http://spam.example",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	assert.Equal(t, true, resp["success"])
}

func TestLeadHandlerBothChannelsAbsent(t *testing.T) {
	h := newBareHandler()

	rec := postLead(h, "1.2.3.6", map[string]interface{}{"email": "maya@example.com"})

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestLeadHandlerInvalidJSON(t *testing.T) {
	h := newBareHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/leads", bytes.NewReader([]byte("{nope")))
	req.Header.Set("X-Real-IP", "1.2.3.7")
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLeadHandlerRateLimit(t *testing.T) {
	h := newBareHandler()

	var last int
	for i := 0; i < 11; i++ {
		rec := postLead(h, "9.9.9.9", map[string]interface{}{
			"email":   "maya@example.com",
			"website": "bot", // honeypot path keeps each request cheap
		})
		last = rec.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, last, "11th request in the window is refused")
}
