package auth

import (
	"encoding/json"
	"sort"
	"strings"
)

// Role identifies a granted authority. Values are used verbatim, with no prefix added.
type Role string

const (
	RoleUser  Role = "ROLE_USER"
	RoleAdmin Role = "ROLE_ADMIN"
)

// RoleSet is an unordered set of roles.
type RoleSet map[Role]struct{}

// NewRoleSet builds a set from roles, skipping blanks.
func NewRoleSet(roles ...Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, role := range roles {
		role = Role(strings.TrimSpace(string(role)))
		if role == "" {
			continue
		}
		set[role] = struct{}{}
	}
	return set
}

// ParseRoleSet reads the comma-joined form produced by String.
func ParseRoleSet(raw string) RoleSet {
	parts := strings.Split(raw, ",")
	roles := make([]Role, 0, len(parts))
	for _, part := range parts {
		roles = append(roles, Role(part))
	}
	return NewRoleSet(roles...)
}

// Has reports whether role is in the set.
func (s RoleSet) Has(role Role) bool {
	_, ok := s[role]
	return ok
}

// HasAny reports whether at least one of roles is in the set.
func (s RoleSet) HasAny(roles ...Role) bool {
	for _, role := range roles {
		if s.Has(role) {
			return true
		}
	}
	return false
}

// Sorted returns the roles in lexical order.
func (s RoleSet) Sorted() []Role {
	out := make([]Role, 0, len(s))
	for role := range s {
		out = append(out, role)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// String is the canonical comma-joined form used in tokens and storage.
func (s RoleSet) String() string {
	sorted := s.Sorted()
	parts := make([]string, len(sorted))
	for i, role := range sorted {
		parts[i] = string(role)
	}
	return strings.Join(parts, ",")
}

// MarshalJSON renders the set as a sorted JSON array.
func (s RoleSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}
