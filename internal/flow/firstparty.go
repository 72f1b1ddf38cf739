package flow

import "strings"

// AllowList es la lista de clientes first-party (sin consent explícito).
// Inmutable tras construirla.
type AllowList struct {
	ids map[string]struct{}
}

// NewAllowList ignora entradas vacías: una config vacía no matchea nada.
func NewAllowList(ids []string) *AllowList {
	a := &AllowList{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		a.ids[id] = struct{}{}
	}
	return a
}

// ParseAllowList parsea "app-a,app-b".
func ParseAllowList(csv string) *AllowList {
	return NewAllowList(strings.Split(csv, ","))
}

func (a *AllowList) IsFirstParty(clientID string) bool {
	if a == nil || clientID == "" {
		return false
	}
	_, ok := a.ids[clientID]
	return ok
}

func (a *AllowList) Len() int {
	if a == nil {
		return 0
	}
	return len(a.ids)
}
