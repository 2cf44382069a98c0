package turn

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const tokenBody = `{
	"username": "tw-user",
	"ttl": "86400",
	"ice_servers": [
		{"url": "stun:global.stun.twilio.com:3478"},
		{"urls": "turn:global.turn.twilio.com:3478?transport=udp", "username": "tw-user", "credential": "secret"},
		{"url": "", "urls": ""}
	]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient("AC123", "token")
	c.baseURL = srv.URL
	return c
}

func TestCreateToken_MapsTwilioResponse(t *testing.T) {
	var gotAuth bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if user, pass, ok := r.BasicAuth(); ok && user == "AC123" && pass == "token" {
			gotAuth = true
		}
		w.Write([]byte(tokenBody))
	})

	tok, err := c.CreateToken(context.Background())
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}
	if !gotAuth {
		t.Error("request did not carry basic auth credentials")
	}
	if tok.Username != "tw-user" || tok.TTL != "86400" {
		t.Errorf("unexpected token meta: %+v", tok)
	}
	// The empty entry is skipped, the "url" fallback covers the first.
	if len(tok.ICEServers) != 2 {
		t.Fatalf("expected 2 ice servers, got %d", len(tok.ICEServers))
	}
	if tok.ICEServers[0].URLs[0] != "stun:global.stun.twilio.com:3478" {
		t.Errorf("url fallback not applied: %v", tok.ICEServers[0].URLs)
	}
	if tok.ICEServers[1].Username != "tw-user" || tok.ICEServers[1].Credential != "secret" {
		t.Errorf("credentials not mapped: %+v", tok.ICEServers[1])
	}
	if tok.ICEServers[0].Credential != nil {
		t.Errorf("expected no credential on stun entry, got %v", tok.ICEServers[0].Credential)
	}
}

func TestCreateToken_UpstreamErrorStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	})
	if _, err := c.CreateToken(context.Background()); err == nil {
		t.Fatal("expected an error on 401 upstream status")
	}
}

func TestConfigured(t *testing.T) {
	if NewClient("", "").Configured() {
		t.Error("empty credentials reported configured")
	}
	if !NewClient("AC123", "token").Configured() {
		t.Error("full credentials reported unconfigured")
	}
}
