package secrets

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kf-platform/crm-proxy/internal/dynamics"
	pkgsecrets "github.com/kf-platform/crm-proxy/pkg/secrets"
)

// CredentialResolver loads the CRM credential bundle from a secrets
// provider at startup.
//
// Secret JSON format: {"client_id": "...", "client_secret": "...",
//
//	"scope": "https://org.crm15.dynamics.com/.default", "grant_type": "client_credentials"}
//
// Fields absent from the secret fall back to the values already present in
// the bundle (typically env-provided), so a secret may carry only the parts
// that rotate.
type CredentialResolver struct {
	logger   *zap.Logger
	provider pkgsecrets.Provider
}

// NewCredentialResolver constructs a resolver backed by the given provider.
func NewCredentialResolver(logger *zap.Logger, provider pkgsecrets.Provider) *CredentialResolver {
	return &CredentialResolver{logger: logger, provider: provider}
}

// Resolve fetches secretName and overlays it onto base. Called once at
// process start; nothing is cached because nothing is re-read.
func (r *CredentialResolver) Resolve(ctx context.Context, secretName string, base dynamics.CredentialBundle) (dynamics.CredentialBundle, error) {
	m, err := r.provider.GetSecret(ctx, secretName)
	if err != nil {
		return base, fmt.Errorf("resolve credential secret [%s]: %w", secretName, err)
	}

	merged := base
	if v := m["client_id"]; v != "" {
		merged.ClientID = v
	}
	if v := m["client_secret"]; v != "" {
		merged.ClientSecret = v
	}
	if v := m["scope"]; v != "" {
		merged.Scope = v
	}
	if v := m["grant_type"]; v != "" {
		merged.GrantType = v
	}

	if merged.ClientID == "" || merged.ClientSecret == "" {
		return base, fmt.Errorf("credential secret [%s] missing client_id/client_secret", secretName)
	}

	r.logger.Info("secrets.credentials_resolved",
		zap.String("secret", secretName),
		zap.String("client_id", merged.ClientID))

	return merged, nil
}
