package meeting

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// refreshMargin is how long before expiry a cached token is considered dead.
// Zoom tokens live an hour; refreshing a minute early avoids using a token
// that expires mid-request.
const refreshMargin = 60 * time.Second

// tokenCache memoizes one Server-to-Server OAuth access token. Refreshing is
// idempotent, so concurrent refreshes are harmless; last writer wins.
type tokenCache struct {
	mu     sync.Mutex
	token  string
	expiry time.Time
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// accessToken returns a cached token or fetches a fresh one from the Zoom
// OAuth endpoint using the account_credentials grant.
func (z *zoomGateway) accessToken(ctx context.Context) (string, error) {
	z.cache.mu.Lock()
	defer z.cache.mu.Unlock()

	if z.cache.token != "" && time.Now().Before(z.cache.expiry.Add(-refreshMargin)) {
		return z.cache.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "account_credentials")
	form.Set("account_id", z.accountID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, z.oauthURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build token request: %w", err)
	}
	req.SetBasicAuth(z.clientID, z.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := z.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token request returned status %d", resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("token response contained no access token")
	}

	z.cache.token = tr.AccessToken
	z.cache.expiry = time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	return z.cache.token, nil
}
