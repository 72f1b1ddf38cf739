// Package jwt emite y verifica la capability de consentimiento: un JWT HS256
// de vida corta que ata un challenge de consent al subject que Hydra reportó
// en el GET, para no confiar en campos del formulario en el POST.
package jwt

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

const (
	capabilityIssuer   = "dcd-auth"
	capabilityAudience = "consent"
	// leeway para relojes desfasados entre réplicas
	leeway = 30 * time.Second
)

var (
	ErrInvalidCapability = errors.New("invalid_capability")
	ErrChallengeMismatch = errors.New("capability_challenge_mismatch")
)

// ConsentClaims: {challenge, sub, exp} más los registrados estándar.
type ConsentClaims struct {
	Challenge string `json:"challenge"`
	jwtv5.RegisteredClaims
}

// Capability es el resultado verificado.
type Capability struct {
	Challenge string
	Subject   string
	ExpiresAt time.Time
}

// CapabilityIssuer firma y verifica capabilities con un secreto compartido
// (todas las réplicas deben usar el mismo).
type CapabilityIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCapabilityIssuer exige un secreto de al menos 32 bytes.
func NewCapabilityIssuer(secret []byte, ttl time.Duration) (*CapabilityIssuer, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("jwt: capability secret must be at least 32 bytes, got %d", len(secret))
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &CapabilityIssuer{secret: secret, ttl: ttl, now: time.Now}, nil
}

// RandomSecret genera un secreto efímero (sólo dev: no sobrevive reinicios).
func RandomSecret() ([]byte, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

// TTL configurado.
func (i *CapabilityIssuer) TTL() time.Duration { return i.ttl }

// Issue firma {challenge, sub}.
func (i *CapabilityIssuer) Issue(challenge, subject string) (string, time.Time, error) {
	if strings.TrimSpace(challenge) == "" {
		return "", time.Time{}, errors.New("jwt: empty challenge")
	}
	now := i.now().UTC()
	exp := now.Add(i.ttl)

	claims := ConsentClaims{
		Challenge: challenge,
		RegisteredClaims: jwtv5.RegisteredClaims{
			Issuer:    capabilityIssuer,
			Subject:   subject,
			Audience:  jwtv5.ClaimStrings{capabilityAudience},
			IssuedAt:  jwtv5.NewNumericDate(now),
			NotBefore: jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(exp),
		},
	}
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	tk.Header["typ"] = "JWT"

	signed, err := tk.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Verify valida firma, iss/aud/exp y que el challenge coincida con el posteado.
func (i *CapabilityIssuer) Verify(token, challenge string) (*Capability, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrInvalidCapability
	}

	var claims ConsentClaims
	tok, err := jwtv5.ParseWithClaims(token, &claims, func(t *jwtv5.Token) (any, error) {
		return i.secret, nil
	},
		jwtv5.WithValidMethods([]string{jwtv5.SigningMethodHS256.Alg()}),
		jwtv5.WithIssuer(capabilityIssuer),
		jwtv5.WithAudience(capabilityAudience),
		jwtv5.WithExpirationRequired(),
		jwtv5.WithLeeway(leeway),
		jwtv5.WithTimeFunc(i.now),
	)
	if err != nil || !tok.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCapability, err)
	}
	if claims.Challenge == "" || claims.Challenge != challenge {
		return nil, ErrChallengeMismatch
	}

	out := &Capability{Challenge: claims.Challenge, Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
