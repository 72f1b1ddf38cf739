// Package claims construye los claims del ID token a partir de los scopes
// concedidos y del subject. Todo es puro: sin IO ni estado.
package claims

// IDTokenClaims se serializa tal cual en session.id_token. La presencia de
// campos importa: los strings vacíos se emiten.
type IDTokenClaims map[string]any

// Builder mapea scopes concedidos → claims.
type Builder struct {
	Subjects Subjects
}

// Build: profile → id/sub/name/given_name/family_name/profile;
// email → email/email_verified; phone → phone_number/phone_verified.
// Otros scopes no aportan claims.
func (b Builder) Build(granted []string, subject string) IDTokenClaims {
	set := make(map[string]struct{}, len(granted))
	for _, s := range granted {
		set[s] = struct{}{}
	}
	has := func(s string) bool {
		_, ok := set[s]
		return ok
	}

	username := b.Subjects.Username(subject)
	out := IDTokenClaims{}

	if has("profile") {
		out["id"] = username
		out["sub"] = username
		out["name"] = username
		out["given_name"] = username
		out["family_name"] = ""
		out["profile"] = ""
	}
	if has("email") {
		out["email"] = username
		// no verificamos emails
		out["email_verified"] = false
	}
	if has("phone") {
		out["phone_number"] = ""
		out["phone_verified"] = false
	}
	return out
}
