// Package flow resuelve los challenges de login, consent y logout de Hydra.
//
// Cada operación es una secuencia estricta de llamadas externas
// (fetch → verificación opcional → accept/reject) que devuelve un Outcome o
// un único error. El paquete nunca escribe respuestas HTTP ni loguea errores:
// eso lo decide la capa HTTP.
package flow

import (
	"errors"
	"strings"

	"github.com/datacentricdesign/dcd-auth/internal/claims"
	"github.com/datacentricdesign/dcd-auth/internal/scopes"
)

const (
	DefaultRememberFor       = 3600
	DefaultLogoutFallbackURL = "https://dwd.tudelft.nl"
)

// Deps agrupa las dependencias del Controller. Hydra, Persons y
// Capabilities son obligatorias.
type Deps struct {
	Hydra        AuthorizationServer
	Persons      IdentityStore
	Capabilities CapabilityIssuer

	Scopes     *scopes.Catalog
	FirstParty FirstPartyPolicy
	Subjects   claims.Subjects

	// RememberFor en segundos para login y consent (0 → 3600).
	RememberFor       int
	LogoutFallbackURL string

	Recorder Recorder
}

// Controller es seguro para uso concurrente: no guarda estado por request.
type Controller struct {
	hydra   AuthorizationServer
	persons IdentityStore
	caps    CapabilityIssuer

	scopes     *scopes.Catalog
	firstParty FirstPartyPolicy
	subjects   claims.Subjects
	claims     claims.Builder

	rememberFor    int
	logoutFallback string
	rec            Recorder
}

func New(d Deps) (*Controller, error) {
	var missing []string
	if d.Hydra == nil {
		missing = append(missing, "Hydra")
	}
	if d.Persons == nil {
		missing = append(missing, "Persons")
	}
	if d.Capabilities == nil {
		missing = append(missing, "Capabilities")
	}
	if len(missing) > 0 {
		return nil, errors.New("flow: missing dependencies: " + strings.Join(missing, ", "))
	}

	c := &Controller{
		hydra:          d.Hydra,
		persons:        d.Persons,
		caps:           d.Capabilities,
		scopes:         d.Scopes,
		firstParty:     d.FirstParty,
		subjects:       d.Subjects,
		claims:         claims.Builder{Subjects: d.Subjects},
		rememberFor:    d.RememberFor,
		logoutFallback: d.LogoutFallbackURL,
		rec:            d.Recorder,
	}
	if c.scopes == nil {
		c.scopes = scopes.New()
	}
	if c.firstParty == nil {
		c.firstParty = NewAllowList(nil)
	}
	if c.rememberFor <= 0 {
		c.rememberFor = DefaultRememberFor
	}
	if c.logoutFallback == "" {
		c.logoutFallback = DefaultLogoutFallbackURL
	}
	return c, nil
}

func (c *Controller) record(flow, decision string) {
	if c.rec != nil {
		c.rec.Decision(flow, decision)
	}
}

func missingChallenge(flow string, page Page) error {
	return &ValidationError{Flow: flow, Message: msgMissingChallenge, Page: page}
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
