// Package stoich resolves per-reaction stoichiometric multipliers of a
// production/loss family against a reference atom.
package stoich

import (
	_ "embed"
	"fmt"
	"slices"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/kpptag/internal/core/domain"
	"github.com/custodia-labs/kpptag/internal/logger"
)

//go:embed references.yaml
var referencesYAML []byte

// Reference is a reference-atom equivalence table.
type Reference struct {
	Name        string             `yaml:"name"`
	Aliases     []string           `yaml:"aliases"`
	Unity       bool               `yaml:"unity"`
	Equivalents map[string]float64 `yaml:"equivalents"`
}

// Equivalent returns the number of reference-atom equivalents in species.
// known is false when the table has no entry.
func (r Reference) Equivalent(species string) (value float64, known bool) {
	if r.Unity {
		return domain.DefaultMultiplier, true
	}
	v, ok := r.Equivalents[species]
	return v, ok
}

// Weight is Equivalent with a 1.0 fallback for unknown species.
func (r Reference) Weight(species string) float64 {
	v, ok := r.Equivalent(species)
	if !ok {
		logger.Warn("no %s stoichiometry for %s, assuming %.1f", r.Name, species, domain.DefaultMultiplier)
		return domain.DefaultMultiplier
	}
	return v
}

// Registry holds the known references.
type Registry struct {
	refs []Reference
}

type registryFile struct {
	References []Reference `yaml:"references"`
}

// ParseRegistry decodes a YAML reference document.
func ParseRegistry(data []byte) (*Registry, error) {
	var f registryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse references: %w", err)
	}
	for _, r := range f.References {
		if r.Name == "" {
			return nil, fmt.Errorf("%w: reference without name", domain.ErrInvalidInput)
		}
	}
	return &Registry{refs: f.References}, nil
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
	defaultErr      error
)

// DefaultRegistry returns the built-in references.
func DefaultRegistry() (*Registry, error) {
	defaultOnce.Do(func() {
		defaultRegistry, defaultErr = ParseRegistry(referencesYAML)
	})
	return defaultRegistry, defaultErr
}

// Lookup finds a reference by name or alias.
func (g *Registry) Lookup(name string) (Reference, error) {
	for _, r := range g.refs {
		if r.Name == name || slices.Contains(r.Aliases, name) {
			return r, nil
		}
	}
	return Reference{}, fmt.Errorf("%w: %s", domain.ErrUnknownReference, name)
}

// Names returns the reference names in sorted order.
func (g *Registry) Names() []string {
	names := make([]string, 0, len(g.refs))
	for _, r := range g.refs {
		names = append(names, r.Name)
	}
	sort.Strings(names)
	return names
}
