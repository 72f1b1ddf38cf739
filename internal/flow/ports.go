package flow

import (
	"context"
	"time"

	"github.com/datacentricdesign/dcd-auth/internal/hydra"
	"github.com/datacentricdesign/dcd-auth/internal/jwt"
)

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

// AuthorizationServer es el subconjunto del admin API de Hydra que usan los flujos.
type AuthorizationServer interface {
	GetLoginRequest(ctx context.Context, challenge string) (*hydra.LoginRequest, error)
	AcceptLoginRequest(ctx context.Context, challenge string, body hydra.AcceptLogin) (*hydra.Completed, error)

	GetConsentRequest(ctx context.Context, challenge string) (*hydra.ConsentRequest, error)
	AcceptConsentRequest(ctx context.Context, challenge string, body hydra.AcceptConsent) (*hydra.Completed, error)
	RejectConsentRequest(ctx context.Context, challenge string, body hydra.Reject) (*hydra.Completed, error)

	GetLogoutRequest(ctx context.Context, challenge string) (*hydra.LogoutRequest, error)
	AcceptLogoutRequest(ctx context.Context, challenge string) (*hydra.Completed, error)
	RejectLogoutRequest(ctx context.Context, challenge string) (*hydra.Completed, error)
}

// IdentityStore es el API de personas.
type IdentityStore interface {
	RefreshCredential(ctx context.Context) error
	CheckPassword(ctx context.Context, id, password string) (bool, error)
	CreatePerson(ctx context.Context, id, name, password string) (string, error)
}

// CapabilityIssuer ata un challenge de consent a su subject entre GET y POST.
type CapabilityIssuer interface {
	Issue(challenge, subject string) (string, time.Time, error)
	Verify(token, challenge string) (*jwt.Capability, error)
}

// FirstPartyPolicy decide si un client_id omite la pantalla de consent.
type FirstPartyPolicy interface {
	IsFirstParty(clientID string) bool
}

// Recorder recibe cada decisión terminal o render (métricas).
type Recorder interface {
	Decision(flow, decision string)
}
