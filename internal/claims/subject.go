package claims

import "strings"

const defaultNamespace = "dcd"

// Subjects arma y desarma subjects con la convención "<ns>:persons:<id>".
type Subjects struct {
	Namespace string
}

// Prefix devuelve "<ns>:persons:". Namespace vacío cae a "dcd".
func (s Subjects) Prefix() string {
	ns := strings.TrimSpace(s.Namespace)
	if ns == "" {
		ns = defaultNamespace
	}
	return ns + ":persons:"
}

// Normalize prefija el subject si hace falta. Idempotente.
func (s Subjects) Normalize(subject string) string {
	p := s.Prefix()
	if strings.HasPrefix(subject, p) {
		return subject
	}
	return p + subject
}

// Username quita el prefijo (si está).
func (s Subjects) Username(subject string) string {
	return strings.TrimPrefix(subject, s.Prefix())
}
