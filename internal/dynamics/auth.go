package dynamics

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kf-platform/crm-proxy/internal/httpclient"
)

// TokenService performs the OAuth2 client-credentials exchange with the
// Microsoft identity platform. Every call is a fresh network round trip:
// no cache, no refresh, no retry. The token belongs to the caller the
// moment it is returned.
type TokenService struct {
	logger   *zap.Logger
	exec     *httpclient.Executor
	tokenURL string
	creds    CredentialBundle
}

// NewTokenService creates a TokenService for the given token endpoint and
// credential bundle.
func NewTokenService(logger *zap.Logger, tokenURL string, creds CredentialBundle) *TokenService {
	exec := httpclient.New(logger, &http.Client{Timeout: 10 * time.Second}, "identity")
	return &TokenService{
		logger:   logger,
		exec:     exec,
		tokenURL: tokenURL,
		creds:    creds,
	}
}

// AcquireToken exchanges the configured credentials for a bearer token.
// A non-2xx provider response surfaces as *httpclient.UpstreamError; a
// transport failure surfaces as a wrapped net error.
func (s *TokenService) AcquireToken(ctx context.Context) (string, error) {
	form := url.Values{
		"client_id":     {s.creds.ClientID},
		"client_secret": {s.creds.ClientSecret},
		"scope":         {s.creds.Scope},
		"grant_type":    {s.creds.GrantType},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var tokenResp TokenResponse
	if err := s.exec.DoJSON(ctx, req, &tokenResp); err != nil {
		return "", fmt.Errorf("identity: token exchange: %w", err)
	}

	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("identity: token response carried empty access_token")
	}

	s.logger.Info("identity.token_acquired",
		zap.String("client_id", s.creds.ClientID),
		zap.Int64("expires_in_sec", tokenResp.ExpiresIn))

	return tokenResp.AccessToken, nil
}
