package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrustedProxies(t *testing.T) {
	t.Parallel()

	trusted := []netip.Prefix{
		netip.MustParsePrefix("10.0.0.0/8"),
		netip.MustParsePrefix("fd00::/8"),
	}

	tests := []struct {
		name      string
		trusted   []netip.Prefix
		remote    string
		forwarded []string
		realIP    string
		want      string
	}{
		{
			name:      "no trusted prefixes ignores headers",
			remote:    "10.0.0.5:4000",
			forwarded: []string{"203.0.113.7"},
			want:      "10.0.0.5",
		},
		{
			name:      "untrusted peer ignores headers",
			trusted:   trusted,
			remote:    "198.51.100.4:4000",
			forwarded: []string{"203.0.113.7"},
			realIP:    "203.0.113.8",
			want:      "198.51.100.4",
		},
		{
			name:      "trusted peer uses forwarded client",
			trusted:   trusted,
			remote:    "10.0.0.5:4000",
			forwarded: []string{"203.0.113.7"},
			want:      "203.0.113.7",
		},
		{
			name:      "client supplied hops left of the first untrusted one are skipped",
			trusted:   trusted,
			remote:    "10.0.0.5:4000",
			forwarded: []string{"1.2.3.4, 203.0.113.7, 10.0.0.9"},
			want:      "203.0.113.7",
		},
		{
			name:      "repeated headers are joined in order",
			trusted:   trusted,
			remote:    "10.0.0.5:4000",
			forwarded: []string{"1.2.3.4", "203.0.113.7"},
			want:      "203.0.113.7",
		},
		{
			name:      "garbage hop stops the walk",
			trusted:   trusted,
			remote:    "10.0.0.5:4000",
			forwarded: []string{"203.0.113.7, not-an-ip, 10.0.0.9"},
			want:      "10.0.0.9",
		},
		{
			name:      "all hops trusted yields the leftmost",
			trusted:   trusted,
			remote:    "10.0.0.5:4000",
			forwarded: []string{"10.1.1.1, 10.0.0.9"},
			want:      "10.1.1.1",
		},
		{
			name:    "falls back to X-Real-IP",
			trusted: trusted,
			remote:  "[fd00::1]:4000",
			realIP:  "2001:db8::7",
			want:    "2001:db8::7",
		},
		{
			name:    "trusted peer without headers keeps its own address",
			trusted: trusted,
			remote:  "10.0.0.5:4000",
			want:    "10.0.0.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got string
			handler := TrustedProxies(tt.trusted)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				got = ClientIP(r)
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for _, v := range tt.forwarded {
				req.Header.Add("X-Forwarded-For", v)
			}
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}

			handler.ServeHTTP(httptest.NewRecorder(), req)
			assert.Equal(t, tt.want, got)
		})
	}
}
