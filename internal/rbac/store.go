// Package rbac persists per-subject roles and the administrative allowlist.
package rbac

import (
	"context"
	"fmt"
	"strconv"

	"server/internal/domain"
	"server/internal/kv"
)

const (
	rolePrefix      = "role:"
	allowlistPrefix = "allowlist:"
)

// Store maps subjects to roles on top of the KV seam. A subject without a
// stored role is free; a store failure is surfaced, never defaulted.
type Store struct {
	kv kv.Store
}

func NewStore(store kv.Store) *Store {
	return &Store{kv: store}
}

// Role returns the stored role for the subject, or RoleFree when absent.
func (s *Store) Role(ctx context.Context, subject string) (domain.Role, error) {
	val, found, err := s.kv.Get(ctx, rolePrefix+subject)
	if err != nil {
		return "", fmt.Errorf("read role: %w", err)
	}
	if !found {
		return domain.RoleFree, nil
	}
	role, ok := domain.ParseRole(val)
	if !ok {
		// unrecognized stored value, treat as the default tier
		return domain.RoleFree, nil
	}
	return role, nil
}

// SetRole overwrites the subject's role unconditionally. Admin gating happens
// at the handler, not here.
func (s *Store) SetRole(ctx context.Context, subject string, role domain.Role) error {
	if err := s.kv.Put(ctx, rolePrefix+subject, string(role)); err != nil {
		return fmt.Errorf("write role: %w", err)
	}
	return nil
}

// EnsurePro promotes a free subject to pro exactly once. Subjects already
// holding pro or admin keep their role with no write.
func (s *Store) EnsurePro(ctx context.Context, subject string) (domain.Role, error) {
	current, err := s.Role(ctx, subject)
	if err != nil {
		return "", err
	}
	if current == domain.RolePro || current == domain.RoleAdmin {
		return current, nil
	}
	if err := s.SetRole(ctx, subject, domain.RolePro); err != nil {
		return "", err
	}
	return domain.RolePro, nil
}

// Allowlisted reports the subject's allowlist flag. The flag is independent
// of roles and is not consulted by the generation path.
func (s *Store) Allowlisted(ctx context.Context, subject string) (bool, error) {
	val, found, err := s.kv.Get(ctx, allowlistPrefix+subject)
	if err != nil {
		return false, fmt.Errorf("read allowlist: %w", err)
	}
	if !found {
		return false, nil
	}
	allowed, _ := strconv.ParseBool(val)
	return allowed, nil
}

// SetAllowlisted writes the subject's allowlist flag.
func (s *Store) SetAllowlisted(ctx context.Context, subject string, allowed bool) error {
	if err := s.kv.Put(ctx, allowlistPrefix+subject, strconv.FormatBool(allowed)); err != nil {
		return fmt.Errorf("write allowlist: %w", err)
	}
	return nil
}
