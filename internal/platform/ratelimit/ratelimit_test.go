// Copyright (c) 2026 Atimus. All rights reserved.

package ratelimit

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/atimus/edital-api/internal/platform/constants"
)

/*
TestRealIP checks the throttle key derivation: X-Real-IP wins, only the first
X-Forwarded-For element counts, and the direct address loses its port.
*/
func TestRealIP(t *testing.T) {
	tests := []struct {
		name         string
		realIPHeader string
		forwardedFor string
		want         string
	}{
		{"real_ip_header", "203.0.113.7", "", "203.0.113.7"},
		{"real_ip_wins_over_forwarded", "203.0.113.7", "198.51.100.2", "203.0.113.7"},
		{"forwarded_single", "", "198.51.100.2", "198.51.100.2"},
		{"forwarded_chain_first_element", "", "198.51.100.2, 10.0.0.1, 10.0.0.2", "198.51.100.2"},
		{"forwarded_chain_trims_space", "", " 198.51.100.2 ,10.0.0.1", "198.51.100.2"},
		{"remote_addr_fallback", "", "", "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("POST", "/cliente/login", nil)
			if tt.realIPHeader != "" {
				request.Header.Set(constants.HeaderXRealIP, tt.realIPHeader)
			}
			if tt.forwardedFor != "" {
				request.Header.Set(constants.HeaderXForwardedFor, tt.forwardedFor)
			}

			assert.Equal(t, tt.want, realIP(request))
		})
	}
}
