package auth

import (
	"strings"

	"aiproxy/config"
	domainerrors "aiproxy/internal/domain/errors"
	"aiproxy/internal/domain/service"
)

// Password schemes accepted in auth.passwordScheme.
const (
	SchemeBcrypt   = "bcrypt"
	SchemeArgon2id = "argon2id"
	SchemeSHA256   = "sha256"
)

// schemeHasher writes digests with one scheme and verifies digests of every
// known scheme, so switching auth.passwordScheme never locks existing users out.
type schemeHasher struct {
	primary service.PasswordHasher
	bcrypt  service.PasswordHasher
	argon2  service.PasswordHasher
	legacy  service.PasswordHasher
}

// NewPasswordHasher builds the PasswordHasher selected by configuration.
func NewPasswordHasher(cfg *config.Config) (service.PasswordHasher, error) {
	scheme := SchemeBcrypt
	cost := 0
	if cfg != nil && cfg.Auth != nil {
		if s := strings.ToLower(strings.TrimSpace(cfg.Auth.PasswordScheme)); s != "" {
			scheme = s
		}
		cost = cfg.Auth.BcryptCost
	}

	h := &schemeHasher{
		bcrypt: NewBcryptHasherWithCost(cost),
		argon2: NewArgon2Hasher(),
		legacy: NewSHA256Hasher(),
	}

	switch scheme {
	case SchemeBcrypt:
		h.primary = h.bcrypt
	case SchemeArgon2id:
		h.primary = h.argon2
	case SchemeSHA256:
		h.primary = h.legacy
	default:
		return nil, domainerrors.NewConfigurationError("auth.passwordScheme", "unknown scheme "+scheme)
	}

	return h, nil
}

func (h *schemeHasher) Hash(password string) (string, error) {
	return h.primary.Hash(password)
}

func (h *schemeHasher) Check(password, hash string) bool {
	switch {
	case hash == "":
		return false
	case strings.HasPrefix(hash, "$2a$"), strings.HasPrefix(hash, "$2b$"), strings.HasPrefix(hash, "$2y$"):
		return h.bcrypt.Check(password, hash)
	case strings.HasPrefix(hash, argon2Prefix):
		return h.argon2.Check(password, hash)
	default:
		return h.legacy.Check(password, hash)
	}
}
