package dynamics

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kf-platform/crm-proxy/internal/httpclient"
)

// mockTransport is an http.RoundTripper that delegates to a handler function.
type mockTransport struct {
	fn func(*http.Request) (*http.Response, error)
}

func (m *mockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.fn(req)
}

// jsonResponse builds a fake *http.Response with the given status and JSON body.
func jsonResponse(statusCode int, body string) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

// newTokenServiceWithTransport creates a TokenService with a custom HTTP transport.
func newTokenServiceWithTransport(t *testing.T, fn func(*http.Request) (*http.Response, error)) *TokenService {
	t.Helper()
	return &TokenService{
		logger:   zap.NewNop(),
		exec:     httpclient.New(zap.NewNop(), &http.Client{Transport: &mockTransport{fn: fn}}, "identity"),
		tokenURL: "https://login.microsoftonline.com/test-tenant/oauth2/v2.0/token",
		creds: CredentialBundle{
			ClientID:     "my-client-id",
			ClientSecret: "my-client-secret",
			Scope:        "https://org.crm15.dynamics.com/.default",
			GrantType:    "client_credentials",
		},
	}
}

// ─── AcquireToken: success ────────────────────────────────────────────────────

func TestTokenService_AcquireToken_Success(t *testing.T) {
	tokenResp, _ := json.Marshal(TokenResponse{
		AccessToken: "fresh-access-token",
		TokenType:   "Bearer",
		ExpiresIn:   3599,
	})

	callCount := 0
	svc := newTokenServiceWithTransport(t, func(req *http.Request) (*http.Response, error) {
		callCount++
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", req.Header.Get("Content-Type"))
		return jsonResponse(http.StatusOK, string(tokenResp)), nil
	})

	token, err := svc.AcquireToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh-access-token", token)
	assert.Equal(t, 1, callCount)
}

// ─── AcquireToken: form body carries the credential bundle ────────────────────

func TestTokenService_AcquireToken_SendsCredentialBundle(t *testing.T) {
	var captured url.Values

	tokenResp, _ := json.Marshal(TokenResponse{AccessToken: "ok-token", ExpiresIn: 3600})
	svc := newTokenServiceWithTransport(t, func(req *http.Request) (*http.Response, error) {
		raw, _ := io.ReadAll(req.Body)
		captured, _ = url.ParseQuery(string(raw))
		return jsonResponse(http.StatusOK, string(tokenResp)), nil
	})

	_, err := svc.AcquireToken(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "my-client-id", captured.Get("client_id"))
	assert.Equal(t, "my-client-secret", captured.Get("client_secret"))
	assert.Equal(t, "https://org.crm15.dynamics.com/.default", captured.Get("scope"))
	assert.Equal(t, "client_credentials", captured.Get("grant_type"))
}

// ─── AcquireToken: no caching — every call hits the provider ──────────────────

func TestTokenService_AcquireToken_FreshRoundTripPerCall(t *testing.T) {
	callCount := 0
	svc := newTokenServiceWithTransport(t, func(*http.Request) (*http.Response, error) {
		callCount++
		resp, _ := json.Marshal(TokenResponse{AccessToken: "tok", ExpiresIn: 3600})
		return jsonResponse(http.StatusOK, string(resp)), nil
	})

	for i := 0; i < 3; i++ {
		_, err := svc.AcquireToken(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, 3, callCount, "token must be re-acquired on every call")
}

// ─── AcquireToken: provider returns non-2xx ───────────────────────────────────

func TestTokenService_AcquireToken_ProviderError(t *testing.T) {
	svc := newTokenServiceWithTransport(t, func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusUnauthorized, `{"error":"invalid_client"}`), nil
	})

	_, err := svc.AcquireToken(context.Background())
	require.Error(t, err)

	var ue *httpclient.UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, http.StatusUnauthorized, ue.Status)
	assert.Contains(t, string(ue.Body), "invalid_client")
}

// ─── AcquireToken: empty access_token in a 2xx body ───────────────────────────

func TestTokenService_AcquireToken_EmptyAccessToken(t *testing.T) {
	svc := newTokenServiceWithTransport(t, func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"token_type":"Bearer","expires_in":3600}`), nil
	})

	_, err := svc.AcquireToken(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty access_token")
}

// ─── AcquireToken: invalid JSON ───────────────────────────────────────────────

func TestTokenService_AcquireToken_InvalidJSON(t *testing.T) {
	svc := newTokenServiceWithTransport(t, func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{not valid json`), nil
	})

	_, err := svc.AcquireToken(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode failed")
}

// ─── AcquireToken: transport failure is not an UpstreamError ──────────────────

func TestTokenService_AcquireToken_TransportFailure(t *testing.T) {
	svc := newTokenServiceWithTransport(t, func(*http.Request) (*http.Response, error) {
		return nil, io.ErrUnexpectedEOF
	})

	_, err := svc.AcquireToken(context.Background())
	require.Error(t, err)

	var ue *httpclient.UpstreamError
	assert.False(t, errors.As(err, &ue), "transport failures carry no upstream status")
	assert.Contains(t, err.Error(), "unreachable")
}
