package handlers

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func requestWithXFF(xff string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/leads", nil)
	req.Header.Set("X-Forwarded-For", xff)
	return req
}

func TestGetClientIPTakesFirstForwardedHop(t *testing.T) {
	assert.Equal(t, "1.2.3.4", getClientIP(requestWithXFF("1.2.3.4")))
	assert.Equal(t, "1.2.3.4", getClientIP(requestWithXFF("1.2.3.4, 10.0.0.1")))
	assert.Equal(t, "1.2.3.4", getClientIP(requestWithXFF(" 1.2.3.4 ,10.0.0.1, 172.16.0.9")))
}

func TestGetClientIPFallbacks(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/leads", nil)
	req.Header.Set("X-Real-IP", "5.6.7.8")
	assert.Equal(t, "5.6.7.8", getClientIP(req))

	bare := httptest.NewRequest(http.MethodPost, "/api/leads", nil)
	assert.Equal(t, bare.RemoteAddr, getClientIP(bare))
}

// A client behind a rotating proxy chain must share one bucket.
func TestRateLimiterIgnoresProxyChainSuffix(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		req := requestWithXFF("1.2.3.4, 10.0.0." + strconv.Itoa(i+1))
		assert.True(t, rl.Allow(getClientIP(req)))
	}

	req := requestWithXFF("1.2.3.4, 192.168.0.200")
	assert.False(t, rl.Allow(getClientIP(req)))
}
