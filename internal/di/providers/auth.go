package providers

import (
	"path/filepath"
	"time"

	"github.com/samber/do/v2"

	"github.com/pageturnapp/pageturn-server/internal/auth"
	"github.com/pageturnapp/pageturn-server/internal/config"
	"github.com/pageturnapp/pageturn-server/internal/logger"
)

// AuthKey is the hex-encoded PASETO symmetric key for access tokens.
type AuthKey string

// accessTokenDuration is how long issued access tokens stay valid.
const accessTokenDuration = 24 * time.Hour

// ProvideAuthKey provides the token key, preferring the configured key
// and generating a persistent one next to the database otherwise.
func ProvideAuthKey(i do.Injector) (AuthKey, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Auth.AccessTokenKeyHex != "" {
		return AuthKey(cfg.Auth.AccessTokenKeyHex), nil
	}

	keyHex, err := auth.LoadOrGenerateKey(filepath.Dir(cfg.Database.Path))
	if err != nil {
		return "", err
	}

	log.Info("Auth key loaded", "path", filepath.Dir(cfg.Database.Path))
	return AuthKey(keyHex), nil
}

// ProvideTokenService provides the PASETO token service.
func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	key := do.MustInvoke[AuthKey](i)
	return auth.NewTokenService(string(key), accessTokenDuration)
}
