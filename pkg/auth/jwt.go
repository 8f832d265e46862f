package auth

import (
	"crypto/rsa"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTConfig holds JWT configuration.
type JWTConfig struct {
	// Secret is the HMAC-SHA256 symmetric key (legacy mode).
	Secret string

	// PrivateKeyPEM is a PEM-encoded RSA private key for signing tokens (issuer mode).
	PrivateKeyPEM string

	// PublicKeyPEM is a PEM-encoded RSA public key for validating tokens (validator mode).
	PublicKeyPEM string

	Issuer     string
	Expiration time.Duration
}

// JWTService signs and validates JWT tokens.
type JWTService struct {
	config     JWTConfig
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	useRSA     bool
}

// NewJWTService creates a JWTService.
//
// Configuration modes:
//   - PrivateKeyPEM set: issuer mode (sign and validate). The public key is derived.
//   - PublicKeyPEM set (no private): validation-only mode; GenerateToken errors.
//   - Only Secret set: HMAC-SHA256 mode.
func NewJWTService(cfg JWTConfig) (*JWTService, error) {
	svc := &JWTService{config: cfg}

	switch {
	case cfg.PrivateKeyPEM != "":
		privKey, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(cfg.PrivateKeyPEM))
		if err != nil {
			return nil, fmt.Errorf("failed to parse RSA private key: %w", err)
		}
		svc.privateKey = privKey
		svc.publicKey = &privKey.PublicKey
		svc.useRSA = true

	case cfg.PublicKeyPEM != "":
		pubKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(cfg.PublicKeyPEM))
		if err != nil {
			return nil, fmt.Errorf("failed to parse RSA public key: %w", err)
		}
		svc.publicKey = pubKey
		svc.useRSA = true

	case cfg.Secret != "":
		svc.useRSA = false

	default:
		return nil, fmt.Errorf("jwt configuration requires PrivateKeyPEM, PublicKeyPEM, or Secret")
	}

	return svc, nil
}

// GenerateToken creates a new JWT token for the given user.
func (s *JWTService) GenerateToken(userID uuid.UUID, roles []string) (string, error) {
	now := time.Now()
	expiration := s.config.Expiration
	if expiration == 0 {
		expiration = 1 * time.Hour
	}

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
			ID:        uuid.NewString(),
		},
		UserID: userID,
		Roles:  roles,
	}

	if s.useRSA {
		if s.privateKey == nil {
			return "", fmt.Errorf("jwt service is validation-only: no private key configured")
		}
		token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
		signed, err := token.SignedString(s.privateKey)
		if err != nil {
			return "", fmt.Errorf("failed to sign token: %w", err)
		}
		return signed, nil
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a token string, returning its claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	keyFunc := func(token *jwt.Token) (any, error) {
		if s.useRSA {
			if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.publicKey, nil
		}
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, keyFunc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is invalid")
	}

	if s.config.Issuer != "" && claims.Issuer != s.config.Issuer {
		return nil, fmt.Errorf("unexpected issuer %q", claims.Issuer)
	}

	return claims, nil
}

// LoadKeyFromFile reads a PEM key file from disk.
func LoadKeyFromFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file %s: %w", path, err)
	}
	return data, nil
}
