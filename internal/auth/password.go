package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/blood-bank-service/internal/config"
)

// Argon2Params are the argon2id cost settings encoded into every digest.
type Argon2Params struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultArgon2Params follows the OWASP password storage recommendation.
var DefaultArgon2Params = Argon2Params{
	Memory:      64 * 1024,
	Iterations:  3,
	Parallelism: 2,
	SaltLength:  16,
	KeyLength:   32,
}

const argon2Prefix = "$argon2id$"

var errMalformedDigest = errors.New("malformed password digest")

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher struct {
	scheme     string
	bcryptCost int
	argon      Argon2Params
}

// NewPasswordHasher builds a hasher for the configured scheme.
func NewPasswordHasher(cfg config.AuthConfig) *PasswordHasher {
	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	scheme := cfg.PasswordScheme
	if scheme == "" {
		scheme = config.PasswordSchemeArgon2id
	}
	return &PasswordHasher{scheme: scheme, bcryptCost: cost, argon: DefaultArgon2Params}
}

// WithArgon2Params overrides the argon2id cost settings.
func (h *PasswordHasher) WithArgon2Params(p Argon2Params) *PasswordHasher {
	h.argon = p
	return h
}

// Hash returns a self-describing digest with a fresh random salt.
func (h *PasswordHasher) Hash(password string) (string, error) {
	if h.scheme == config.PasswordSchemeBcrypt {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.bcryptCost)
		if err != nil {
			return "", err
		}
		return string(hashed), nil
	}

	salt := make([]byte, h.argon.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return EncodeArgon2(password, salt, h.argon), nil
}

// Verify reports whether password matches digest. Unknown or malformed
// digests never match.
func (h *PasswordHasher) Verify(password, digest string) bool {
	switch {
	case strings.HasPrefix(digest, argon2Prefix):
		params, salt, key, err := decodeArgon2(digest)
		if err != nil {
			return false
		}
		computed := DeriveArgon2(password, salt, params)
		return subtle.ConstantTimeCompare(key, computed) == 1
	case isBcrypt(digest):
		return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
	case isLegacyDigest(digest):
		return subtle.ConstantTimeCompare([]byte(LegacyDigest(password)), []byte(strings.ToLower(digest))) == 1
	default:
		return false
	}
}

// NeedsRehash reports whether digest should be replaced by a fresh Hash.
func (h *PasswordHasher) NeedsRehash(digest string) bool {
	switch {
	case strings.HasPrefix(digest, argon2Prefix):
		return h.scheme != config.PasswordSchemeArgon2id
	case isBcrypt(digest):
		if h.scheme != config.PasswordSchemeBcrypt {
			return true
		}
		cost, err := bcrypt.Cost([]byte(digest))
		return err != nil || cost != h.bcryptCost
	default:
		return true
	}
}

// DeriveArgon2 is the deterministic argon2id key derivation for a given salt.
func DeriveArgon2(password string, salt []byte, p Argon2Params) []byte {
	return argon2.IDKey([]byte(password), salt, p.Iterations, p.Memory, p.Parallelism, p.KeyLength)
}

// EncodeArgon2 derives the key for salt and renders the PHC-style digest.
func EncodeArgon2(password string, salt []byte, p Argon2Params) string {
	key := DeriveArgon2(password, salt, p)
	return fmt.Sprintf("%sv=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2Prefix,
		argon2.Version,
		p.Memory,
		p.Iterations,
		p.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key))
}

// LegacyDigest is the unsalted SHA-256 hex digest older accounts were stored with.
func LegacyDigest(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func decodeArgon2(digest string) (Argon2Params, []byte, []byte, error) {
	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
	parts := strings.Split(digest, "$")
	if len(parts) != 6 {
		return Argon2Params{}, nil, nil, errMalformedDigest
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return Argon2Params{}, nil, nil, errMalformedDigest
	}

	var p Argon2Params
	var parallelism int
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Iterations, &parallelism); err != nil {
		return Argon2Params{}, nil, nil, errMalformedDigest
	}
	if parallelism < 1 || parallelism > 255 || p.Iterations == 0 || p.Memory == 0 {
		return Argon2Params{}, nil, nil, errMalformedDigest
	}
	p.Parallelism = uint8(parallelism)

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return Argon2Params{}, nil, nil, errMalformedDigest
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return Argon2Params{}, nil, nil, errMalformedDigest
	}
	p.SaltLength = uint32(len(salt))
	p.KeyLength = uint32(len(key))
	return p, salt, key, nil
}

func isBcrypt(digest string) bool {
	return strings.HasPrefix(digest, "$2a$") || strings.HasPrefix(digest, "$2b$") || strings.HasPrefix(digest, "$2y$")
}

func isLegacyDigest(digest string) bool {
	if len(digest) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(digest)
	return err == nil
}
