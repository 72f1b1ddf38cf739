// Package scopes resuelve identificadores de scope a descripciones legibles
// para la pantalla de consentimiento. El catálogo se carga una vez al inicio
// y es inmutable: seguro para lecturas concurrentes.
package scopes

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default_scopes.yaml
var defaultCatalog []byte

// Descriptor describe un scope.
type Descriptor struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"desc" json:"desc"`
}

// Catalog es el mapa scopeID → Descriptor.
type Catalog struct {
	entries map[string]Descriptor
}

// New arma un catálogo a partir de descriptores ya construidos (tests).
func New(ds ...Descriptor) *Catalog {
	c := &Catalog{entries: make(map[string]Descriptor, len(ds))}
	for _, d := range ds {
		if d.ID == "" {
			continue
		}
		c.entries[d.ID] = d
	}
	return c
}

// Load lee un catálogo YAML o JSON desde disco (JSON es YAML válido).
func Load(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scopes: read %s: %w", path, err)
	}
	c, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("scopes: %s: %w", path, err)
	}
	return c, nil
}

// LoadDefault devuelve el catálogo embebido.
func LoadDefault() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic("scopes: embedded catalog: " + err.Error())
	}
	return c
}

// Parse decodifica el mapping scopeID → {id, name, desc}. Si una entrada no
// trae id se usa la clave; si no trae name, el id.
func Parse(b []byte) (*Catalog, error) {
	raw := map[string]Descriptor{}
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	c := &Catalog{entries: make(map[string]Descriptor, len(raw))}
	for key, d := range raw {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if d.ID == "" {
			d.ID = key
		}
		if d.Name == "" {
			d.Name = d.ID
		}
		c.entries[key] = d
	}
	return c, nil
}

// Describe nunca falla: un scope desconocido degrada a {id, id, ""}.
func (c *Catalog) Describe(id string) Descriptor {
	if c != nil {
		if d, ok := c.entries[id]; ok {
			return d
		}
	}
	return Descriptor{ID: id, Name: id}
}

// DescribeAll preserva el orden de ids.
func (c *Catalog) DescribeAll(ids []string) []Descriptor {
	out := make([]Descriptor, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.Describe(id))
	}
	return out
}

// IDs devuelve las claves ordenadas.
func (c *Catalog) IDs() []string {
	if c == nil {
		return nil
	}
	out := make([]string, 0, len(c.entries))
	for k := range c.entries {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}
