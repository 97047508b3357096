package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration for the crm-proxy.
// It is built once in Load() and passed by reference into the services
// that need it; nothing reads the environment after startup.
type Config struct {
	ServiceName string
	Env         string
	LogLevel    string
	Port        int

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	HTTPBodyLimit    int

	// CORSOrigins lists the browser origins allowed to call the API.
	CORSOrigins []string

	// TenantID identifies the Microsoft Entra tenant used for the
	// client-credentials exchange. TokenURL is derived from it unless
	// TOKEN_URL overrides the full endpoint.
	TenantID string
	TokenURL string

	// Credential bundle for the client-credentials grant. May be overlaid
	// from AWS Secrets Manager at startup (see internal/secrets).
	ClientID     string
	ClientSecret string
	Scope        string
	GrantType    string

	// WebAPIURL is the Dynamics Web API base, e.g.
	// "https://org.crm15.dynamics.com/api/data/v9.2".
	WebAPIURL string

	// TokenCookie enables the browser-session cookie set alongside the
	// token response body. Off by default; the token endpoint contract is
	// body-only.
	TokenCookie bool

	// AWS Secrets Manager overlay. When CredentialSecretName is empty the
	// env-provided credential bundle is used as-is.
	AWSRegion            string
	CredentialSecretName string
}

// Load loads configuration from environment variables and optional .env file.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		ServiceName:      GetEnv("SERVICE_NAME", "crm-proxy"),
		Env:              GetEnv("ENV", "dev"),
		LogLevel:         GetEnv("LOG_LEVEL", "info"),
		Port:             GetEnvInt("PORT", 3000),
		HTTPReadTimeout:  GetEnvDuration("HTTP_READ_TIMEOUT", 10*time.Second),
		HTTPWriteTimeout: GetEnvDuration("HTTP_WRITE_TIMEOUT", 30*time.Second),
		HTTPIdleTimeout:  GetEnvDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
		HTTPBodyLimit:    GetEnvInt("HTTP_BODY_LIMIT", 1*1024*1024),
		CORSOrigins: GetEnvList("CORS_ORIGINS",
			[]string{"http://localhost:5173", "http://localhost:3000"}),
		TenantID:             GetEnv("TENANT_ID", ""),
		TokenURL:             GetEnv("TOKEN_URL", ""),
		ClientID:             GetEnv("CLIENT_ID", ""),
		ClientSecret:         GetEnv("CLIENT_SECRET", ""),
		Scope:                GetEnv("SCOPE", ""),
		GrantType:            GetEnv("GRANT_TYPE", "client_credentials"),
		WebAPIURL:            GetEnv("WEB_API_URL", ""),
		TokenCookie:          GetEnvBool("TOKEN_COOKIE", false),
		AWSRegion:            GetEnv("AWS_REGION", "us-east-2"),
		CredentialSecretName: GetEnv("CREDENTIAL_SECRET_NAME", ""),
	}

	if cfg.TokenURL == "" && cfg.TenantID != "" {
		cfg.TokenURL = fmt.Sprintf(
			"https://login.microsoftonline.com/%s/oauth2/v2.0/token", cfg.TenantID)
	}

	return cfg
}

// Validate reports the first missing required setting. Called after the
// optional secrets overlay so env gaps can still be filled from AWS.
func (c *Config) Validate() error {
	switch {
	case c.TokenURL == "":
		return fmt.Errorf("config: TOKEN_URL or TENANT_ID is required")
	case c.WebAPIURL == "":
		return fmt.Errorf("config: WEB_API_URL is required")
	case c.ClientID == "":
		return fmt.Errorf("config: CLIENT_ID is required")
	case c.ClientSecret == "":
		return fmt.Errorf("config: CLIENT_SECRET is required")
	case c.Scope == "":
		return fmt.Errorf("config: SCOPE is required")
	}
	return nil
}
