package hydra

// Flow es la categoría de una solicitud pendiente en Hydra.
type Flow string

const (
	FlowLogin   Flow = "login"
	FlowConsent Flow = "consent"
	FlowLogout  Flow = "logout"
)

// ClientInfo describe la aplicación OAuth2 que originó la solicitud.
type ClientInfo struct {
	ClientID   string `json:"client_id"`
	ClientName string `json:"client_name,omitempty"`
	ClientURI  string `json:"client_uri,omitempty"`
	LogoURI    string `json:"logo_uri,omitempty"`
	PolicyURI  string `json:"policy_uri,omitempty"`
	TosURI     string `json:"tos_uri,omitempty"`
}

// LoginRequest es la respuesta de GET /oauth2/auth/requests/login/{challenge}.
type LoginRequest struct {
	Challenge      string   `json:"challenge"`
	Skip           bool     `json:"skip"`
	Subject        string   `json:"subject"`
	RequestedScope []string `json:"requested_scope"`
	Client         ClientInfo `json:"client"`
	RequestURL     string   `json:"request_url,omitempty"`
	SessionID      string   `json:"session_id,omitempty"`
}

// ConsentRequest es la respuesta de GET /oauth2/auth/requests/consent/{challenge}.
type ConsentRequest struct {
	Challenge         string   `json:"challenge"`
	Skip              bool     `json:"skip"`
	Subject           string   `json:"subject"`
	RequestedScope    []string `json:"requested_scope"`
	RequestedAudience []string `json:"requested_access_token_audience,omitempty"`
	Client            ClientInfo `json:"client"`
	RequestURL        string   `json:"request_url,omitempty"`
	LoginSessionID    string   `json:"login_session_id,omitempty"`
}

// LogoutRequest es la respuesta de GET /oauth2/auth/requests/logout/{challenge}.
type LogoutRequest struct {
	Subject     string `json:"subject"`
	SessionID   string `json:"sid,omitempty"`
	RequestURL  string `json:"request_url,omitempty"`
	RPInitiated bool   `json:"rp_initiated,omitempty"`
}

// AcceptLogin es el body de PUT .../login/{challenge}/accept.
// RememberFor en segundos; 0 = no expira.
type AcceptLogin struct {
	Subject     string `json:"subject"`
	Remember    bool   `json:"remember,omitempty"`
	RememberFor int    `json:"remember_for,omitempty"`
	ACR         string `json:"acr,omitempty"`
}

// ConsentSession agrupa los datos de sesión que Hydra inyecta en los tokens.
type ConsentSession struct {
	IDToken     map[string]any `json:"id_token"`
	AccessToken map[string]any `json:"access_token,omitempty"`
}

// AcceptConsent es el body de PUT .../consent/{challenge}/accept.
type AcceptConsent struct {
	GrantScope  []string       `json:"grant_scope"`
	Session     ConsentSession `json:"session"`
	Remember    bool           `json:"remember,omitempty"`
	RememberFor int            `json:"remember_for,omitempty"`
}

// Reject es el body de PUT .../{flow}/{challenge}/reject.
type Reject struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// Completed es la respuesta de cualquier accept/reject.
type Completed struct {
	RedirectTo string `json:"redirect_to"`
}
