// Package turn proxies TURN/ICE credential issuance to the Twilio Tokens
// API. Stateless pass-through, not part of the chat core.
package turn

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pion/webrtc/v4"
)

const tokensPath = "%s/2010-04-01/Accounts/%s/Tokens.json"

type Client struct {
	accountSID string
	authToken  string
	baseURL    string
	http       *http.Client
}

func NewClient(accountSID, authToken string) *Client {
	return &Client{
		accountSID: accountSID,
		authToken:  authToken,
		baseURL:    "https://api.twilio.com",
		http:       &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Configured() bool {
	return c.accountSID != "" && c.authToken != ""
}

// Token is the shape handed back to browsers requesting ICE servers.
type Token struct {
	ICEServers []webrtc.ICEServer `json:"iceServers"`
	Username   string             `json:"username"`
	TTL        string             `json:"ttl"`
}

// CreateToken requests fresh short-lived TURN credentials.
func (c *Client) CreateToken(ctx context.Context) (*Token, error) {
	url := fmt.Sprintf(tokensPath, c.baseURL, c.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build token request: %w", err)
	}
	req.SetBasicAuth(c.accountSID, c.authToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("twilio token request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("twilio token request: status %d", resp.StatusCode)
	}

	var raw struct {
		Username   string `json:"username"`
		TTL        string `json:"ttl"`
		IceServers []struct {
			URL        string `json:"url"`
			URLs       string `json:"urls"`
			Username   string `json:"username"`
			Credential string `json:"credential"`
		} `json:"ice_servers"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode twilio token: %w", err)
	}

	tok := &Token{Username: raw.Username, TTL: raw.TTL}
	for _, s := range raw.IceServers {
		u := s.URLs
		if u == "" {
			u = s.URL
		}
		if u == "" {
			continue
		}
		srv := webrtc.ICEServer{URLs: []string{u}, Username: s.Username}
		if s.Credential != "" {
			srv.Credential = s.Credential
		}
		tok.ICEServers = append(tok.ICEServers, srv)
	}
	return tok, nil
}
