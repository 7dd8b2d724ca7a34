package domain

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Policy maps entity types to the ordered list of fields that must be protected.
// A Policy is read-only once built.
type Policy struct {
	Entities map[string][]string `yaml:"entities" json:"entities"`

	// Strict rejects unknown entity types instead of passing their records through.
	Strict bool `yaml:"-" json:"-"`
}

// DefaultPolicy returns the built-in entity table.
func DefaultPolicy() *Policy {
	return &Policy{
		Entities: map[string][]string{
			"morador":    {"cpf", "rg", "telefone", "email"},
			"boleto":     {"documento_pagador", "linha_digitavel"},
			"banco":      {"agencia", "conta", "cnpj", "chave_pix"},
			"condominio": {"cnpj"},
		},
	}
}

// FieldsFor returns a copy of the protected fields of entityType and whether the type is known.
func (p *Policy) FieldsFor(entityType string) ([]string, bool) {
	fields, ok := p.Entities[entityType]
	if !ok {
		return nil, false
	}
	return slices.Clone(fields), true
}

// EntityTypes returns the known entity types in lexical order.
func (p *Policy) EntityTypes() []string {
	types := make([]string, 0, len(p.Entities))
	for entityType := range p.Entities {
		types = append(types, entityType)
	}
	slices.Sort(types)
	return types
}

// Validate checks entity and field names.
func (p *Policy) Validate() error {
	if len(p.Entities) == 0 {
		return fmt.Errorf("%w: no entity types defined", ErrInvalidPolicy)
	}

	for _, entityType := range p.EntityTypes() {
		if strings.TrimSpace(entityType) == "" {
			return fmt.Errorf("%w: empty entity type", ErrInvalidPolicy)
		}

		seen := make(map[string]struct{}, len(p.Entities[entityType]))
		for _, field := range p.Entities[entityType] {
			if strings.TrimSpace(field) == "" {
				return fmt.Errorf("%w: entity %q has an empty field name", ErrInvalidPolicy, entityType)
			}
			if _, dup := seen[field]; dup {
				return fmt.Errorf("%w: entity %q lists field %q twice", ErrInvalidPolicy, entityType, field)
			}
			for _, suffix := range []string{EncryptedSuffix, SaltSuffix, HashSuffix} {
				if strings.HasSuffix(field, suffix) {
					return fmt.Errorf(
						"%w: entity %q field %q ends with reserved suffix %q",
						ErrInvalidPolicy, entityType, field, suffix,
					)
				}
			}
			seen[field] = struct{}{}
		}
	}

	return nil
}

// LoadPolicyFile reads a policy from a YAML (.yaml, .yml) or JSON (.json) file and validates it.
// The file replaces the built-in table.
func LoadPolicyFile(path string) (*Policy, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}

	var policy Policy
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &policy)
	case ".json":
		err = json.Unmarshal(data, &policy)
	default:
		return nil, fmt.Errorf("%w: unsupported policy file extension %q", ErrInvalidPolicy, filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPolicy, err)
	}

	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return &policy, nil
}
