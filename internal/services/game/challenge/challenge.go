// Package challenge issues and verifies share-a-puzzle grant tokens.
//
// A grant is an ed25519-signed JWT carrying the parameters of one puzzle
// (size, difficulty, seed). Anyone holding the grant can start a session
// with the identical board until the grant expires, so two players can
// race the same puzzle without sharing server state.
package challenge

import (
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/louisbranch/equinox.space/internal/platform/errors"
	"github.com/louisbranch/equinox.space/internal/platform/id"
)

// Env variable names for grant configuration.
const (
	EnvIssuer     = "EQUINOX_SPACE_CHALLENGE_ISSUER"
	EnvAudience   = "EQUINOX_SPACE_CHALLENGE_AUDIENCE"
	EnvPrivateKey = "EQUINOX_SPACE_CHALLENGE_PRIVATE_KEY"
	EnvPublicKey  = "EQUINOX_SPACE_CHALLENGE_PUBLIC_KEY"
	EnvTTL        = "EQUINOX_SPACE_CHALLENGE_TTL"
)

// challengeEnv holds raw env values before post-parse validation.
type challengeEnv struct {
	Issuer     string        `env:"EQUINOX_SPACE_CHALLENGE_ISSUER"`
	Audience   string        `env:"EQUINOX_SPACE_CHALLENGE_AUDIENCE"`
	PrivateKey string        `env:"EQUINOX_SPACE_CHALLENGE_PRIVATE_KEY"`
	PublicKey  string        `env:"EQUINOX_SPACE_CHALLENGE_PUBLIC_KEY"`
	TTL        time.Duration `env:"EQUINOX_SPACE_CHALLENGE_TTL"         envDefault:"24h"`
}

// Config defines how challenge grants are issued and verified.
// PrivateKey may be nil on verify-only deployments; Issue then fails.
type Config struct {
	Issuer     string
	Audience   string
	PrivateKey ed25519.PrivateKey
	PublicKey  ed25519.PublicKey
	TTL        time.Duration
	Now        func() time.Time
}

// Challenge captures the puzzle parameters carried by a grant.
type Challenge struct {
	Size       int    `json:"size"`
	Difficulty string `json:"difficulty"`
	Seed       string `json:"seed"`
}

// Claims captures validated grant claims.
type Claims struct {
	Issuer    string
	Audience  []string
	ExpiresAt time.Time
	IssuedAt  time.Time
	JWTID     string
	Challenge Challenge
}

// grantClaims is the internal claims type used for JWT parsing.
type grantClaims struct {
	jwt.RegisteredClaims
	Size       int    `json:"size"`
	Difficulty string `json:"difficulty"`
	Seed       string `json:"seed"`
}

// LoadConfigFromEnv reads grant configuration for issuing and verifying.
func LoadConfigFromEnv(now func() time.Time) (Config, error) {
	var raw challengeEnv
	if err := env.Parse(&raw); err != nil {
		return Config{}, fmt.Errorf("parse challenge env: %w", err)
	}
	issuer := strings.TrimSpace(raw.Issuer)
	audience := strings.TrimSpace(raw.Audience)
	privateKey := strings.TrimSpace(raw.PrivateKey)
	publicKey := strings.TrimSpace(raw.PublicKey)
	if issuer == "" {
		return Config{}, fmt.Errorf("%s is required", EnvIssuer)
	}
	if audience == "" {
		return Config{}, fmt.Errorf("%s is required", EnvAudience)
	}
	if publicKey == "" {
		return Config{}, fmt.Errorf("%s is required", EnvPublicKey)
	}
	publicBytes, err := decodeBase64(publicKey)
	if err != nil {
		return Config{}, fmt.Errorf("decode challenge public key: %w", err)
	}
	if len(publicBytes) != ed25519.PublicKeySize {
		return Config{}, fmt.Errorf("challenge public key must be %d bytes", ed25519.PublicKeySize)
	}
	cfg := Config{
		Issuer:    issuer,
		Audience:  audience,
		PublicKey: ed25519.PublicKey(publicBytes),
		TTL:       raw.TTL,
		Now:       now,
	}
	if privateKey != "" {
		privateBytes, err := decodeBase64(privateKey)
		if err != nil {
			return Config{}, fmt.Errorf("decode challenge private key: %w", err)
		}
		if len(privateBytes) != ed25519.PrivateKeySize {
			return Config{}, fmt.Errorf("challenge private key must be %d bytes", ed25519.PrivateKeySize)
		}
		cfg.PrivateKey = ed25519.PrivateKey(privateBytes)
	}
	if cfg.TTL <= 0 {
		return Config{}, fmt.Errorf("challenge grant ttl must be positive")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return cfg, nil
}

// Issue signs a grant for the given puzzle parameters.
func Issue(ch Challenge, cfg Config) (string, error) {
	if cfg.Issuer == "" || cfg.Audience == "" || len(cfg.PrivateKey) != ed25519.PrivateKeySize {
		return "", errors.New("challenge grant signer is not configured")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if ch.Size <= 0 {
		return "", fmt.Errorf("challenge size must be greater than zero")
	}
	if strings.TrimSpace(ch.Seed) == "" {
		return "", fmt.Errorf("challenge seed is required")
	}
	if strings.TrimSpace(ch.Difficulty) == "" {
		return "", fmt.Errorf("challenge difficulty is required")
	}

	jti, err := id.NewID()
	if err != nil {
		return "", fmt.Errorf("generate grant id: %w", err)
	}
	now := cfg.Now().UTC()
	claims := grantClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Audience:  jwt.ClaimStrings{cfg.Audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        jti,
		},
		Size:       ch.Size,
		Difficulty: ch.Difficulty,
		Seed:       ch.Seed,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims).SignedString(cfg.PrivateKey)
	if err != nil {
		return "", fmt.Errorf("sign challenge grant: %w", err)
	}
	return token, nil
}

// Verify checks a grant token and returns the validated claims.
func Verify(grant string, cfg Config) (Claims, error) {
	grant = strings.TrimSpace(grant)
	if grant == "" {
		return Claims{}, apperrors.New(apperrors.CodeChallengeGrantInvalid, "challenge grant is required")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Issuer == "" || cfg.Audience == "" || len(cfg.PublicKey) != ed25519.PublicKeySize {
		return Claims{}, errors.New("challenge grant verifier is not configured")
	}

	var parsed grantClaims
	_, err := jwt.ParseWithClaims(grant, &parsed, func(token *jwt.Token) (any, error) {
		return cfg.PublicKey, nil
	},
		jwt.WithValidMethods([]string{"EdDSA"}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return Claims{}, mapJWTError(err)
	}

	if parsed.Issuer == "" || parsed.Issuer != cfg.Issuer {
		return Claims{}, apperrors.WithMetadata(
			apperrors.CodeChallengeGrantMismatch,
			"challenge grant issuer mismatch",
			map[string]string{"Field": "issuer"},
		)
	}
	if !audienceContains(parsed.Audience, cfg.Audience) {
		return Claims{}, apperrors.WithMetadata(
			apperrors.CodeChallengeGrantMismatch,
			"challenge grant audience mismatch",
			map[string]string{"Field": "audience"},
		)
	}

	if parsed.ID == "" {
		return Claims{}, apperrors.New(apperrors.CodeChallengeGrantInvalid, "challenge grant jti is required")
	}
	if parsed.ExpiresAt == nil {
		return Claims{}, apperrors.New(apperrors.CodeChallengeGrantInvalid, "challenge grant exp is required")
	}

	now := cfg.Now().UTC()
	exp := parsed.ExpiresAt.Time.UTC()
	if !exp.After(now) {
		return Claims{}, apperrors.New(apperrors.CodeChallengeGrantExpired, "challenge grant is expired")
	}
	if parsed.NotBefore != nil {
		nbf := parsed.NotBefore.Time.UTC()
		if now.Before(nbf) {
			return Claims{}, apperrors.New(apperrors.CodeChallengeGrantInvalid, "challenge grant not active yet")
		}
	}

	if parsed.Size <= 0 {
		return Claims{}, apperrors.New(apperrors.CodeChallengeGrantInvalid, "challenge grant size is invalid")
	}
	if strings.TrimSpace(parsed.Seed) == "" {
		return Claims{}, apperrors.New(apperrors.CodeChallengeGrantInvalid, "challenge grant seed is required")
	}
	if strings.TrimSpace(parsed.Difficulty) == "" {
		return Claims{}, apperrors.New(apperrors.CodeChallengeGrantInvalid, "challenge grant difficulty is required")
	}

	claims := Claims{
		Issuer:    parsed.Issuer,
		Audience:  []string(parsed.Audience),
		ExpiresAt: exp,
		JWTID:     parsed.ID,
		Challenge: Challenge{
			Size:       parsed.Size,
			Difficulty: parsed.Difficulty,
			Seed:       parsed.Seed,
		},
	}
	if parsed.IssuedAt != nil {
		claims.IssuedAt = parsed.IssuedAt.Time.UTC()
	}
	return claims, nil
}

// mapJWTError translates jwt library errors to application errors.
func mapJWTError(err error) error {
	if errors.Is(err, jwt.ErrTokenSignatureInvalid) || errors.Is(err, jwt.ErrEd25519Verification) {
		return apperrors.New(apperrors.CodeChallengeGrantInvalid, "challenge grant signature is invalid")
	}
	if errors.Is(err, jwt.ErrTokenUnverifiable) {
		return apperrors.New(apperrors.CodeChallengeGrantInvalid, "challenge grant alg is invalid")
	}
	return apperrors.New(apperrors.CodeChallengeGrantInvalid, "challenge grant is invalid")
}

// audienceContains reports whether the audience list contains the given value.
func audienceContains(aud jwt.ClaimStrings, value string) bool {
	for _, item := range aud {
		if item == value {
			return true
		}
	}
	return false
}

func decodeBase64(value string) ([]byte, error) {
	if value == "" {
		return nil, errors.New("empty base64 value")
	}
	decoded, err := base64.RawStdEncoding.DecodeString(value)
	if err == nil {
		return decoded, nil
	}
	return base64.StdEncoding.DecodeString(value)
}
