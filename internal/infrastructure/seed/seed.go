// Package seed loads reference data (roles, currencies, document types) and
// the bootstrap superuser into an empty or existing database.
package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/workify/backend/internal/domain/dict"
	"github.com/workify/backend/internal/domain/identity"
	"github.com/workify/backend/internal/domain/shared"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Data is the content of a seed file
type Data struct {
	Roles         []RoleSeed  `yaml:"roles"`
	Currencies    []EntrySeed `yaml:"currencies"`
	DocumentTypes []EntrySeed `yaml:"document_types"`
}

// RoleSeed describes a role. Permissions accept "*" for the whole catalogue
// and "resource:*" for every action on a resource.
type RoleSeed struct {
	Code        string   `yaml:"code"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	System      bool     `yaml:"system"`
	Permissions []string `yaml:"permissions"`
}

// EntrySeed describes a dictionary entry
type EntrySeed struct {
	Code    string `yaml:"code"`
	Name    string `yaml:"name"`
	Default bool   `yaml:"default"`
}

// Result counts what Apply created; existing entries are skipped
type Result struct {
	Roles         int
	Currencies    int
	DocumentTypes int
}

// Parse decodes a seed file. Unknown keys are rejected.
func Parse(raw []byte) (*Data, error) {
	var data Data
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}
	return &data, nil
}

// ExpandPermissions resolves wildcards against the permission catalogue
func ExpandPermissions(patterns []string) ([]string, error) {
	all := identity.AllPermissionCodes()
	seen := make(map[string]bool)
	out := make([]string, 0, len(patterns))
	add := func(code string) {
		if !seen[code] {
			seen[code] = true
			out = append(out, code)
		}
	}

	for _, p := range patterns {
		p = strings.TrimSpace(p)
		switch {
		case p == "*":
			for _, code := range all {
				add(code)
			}
		case strings.HasSuffix(p, ":*"):
			prefix := strings.TrimSuffix(p, "*")
			matched := false
			for _, code := range all {
				if strings.HasPrefix(code, prefix) {
					add(code)
					matched = true
				}
			}
			if !matched {
				return nil, fmt.Errorf("permission pattern %q matches nothing", p)
			}
		case identity.IsKnownPermission(p):
			add(p)
		default:
			return nil, fmt.Errorf("unknown permission %q", p)
		}
	}
	return out, nil
}

// Seeder writes seed data through the domain repositories
type Seeder struct {
	roles         identity.RoleRepository
	users         identity.UserRepository
	currencies    dict.CurrencyRepository
	documentTypes dict.DocumentTypeRepository
	logger        *zap.Logger
}

// NewSeeder creates a Seeder
func NewSeeder(
	roles identity.RoleRepository,
	users identity.UserRepository,
	currencies dict.CurrencyRepository,
	documentTypes dict.DocumentTypeRepository,
	logger *zap.Logger,
) *Seeder {
	return &Seeder{
		roles:         roles,
		users:         users,
		currencies:    currencies,
		documentTypes: documentTypes,
		logger:        logger,
	}
}

// Apply creates every entry of data that does not exist yet. Existing roles
// keep their permissions, so changes made through the API survive reseeding.
func (s *Seeder) Apply(ctx context.Context, data *Data) (*Result, error) {
	result := &Result{}

	for _, rs := range data.Roles {
		created, err := s.seedRole(ctx, rs)
		if err != nil {
			return result, fmt.Errorf("role %s: %w", rs.Code, err)
		}
		if created {
			result.Roles++
		}
	}

	for _, cs := range data.Currencies {
		_, err := s.currencies.FindByCode(ctx, strings.ToUpper(cs.Code))
		if err == nil {
			continue
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return result, fmt.Errorf("currency %s: %w", cs.Code, err)
		}
		currency, err := dict.NewCurrency(cs.Code, cs.Name, cs.Default)
		if err != nil {
			return result, fmt.Errorf("currency %s: %w", cs.Code, err)
		}
		if err := s.currencies.Save(ctx, currency); err != nil {
			return result, fmt.Errorf("currency %s: %w", cs.Code, err)
		}
		result.Currencies++
	}

	for _, ds := range data.DocumentTypes {
		_, err := s.documentTypes.FindByCode(ctx, strings.ToUpper(ds.Code))
		if err == nil {
			continue
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return result, fmt.Errorf("document type %s: %w", ds.Code, err)
		}
		docType, err := dict.NewDocumentType(ds.Code, ds.Name, ds.Default)
		if err != nil {
			return result, fmt.Errorf("document type %s: %w", ds.Code, err)
		}
		if err := s.documentTypes.Save(ctx, docType); err != nil {
			return result, fmt.Errorf("document type %s: %w", ds.Code, err)
		}
		result.DocumentTypes++
	}

	s.logger.Info("Seed data applied",
		zap.Int("roles", result.Roles),
		zap.Int("currencies", result.Currencies),
		zap.Int("document_types", result.DocumentTypes),
	)
	return result, nil
}

func (s *Seeder) seedRole(ctx context.Context, rs RoleSeed) (bool, error) {
	exists, err := s.roles.ExistsByCode(ctx, strings.ToUpper(rs.Code))
	if err != nil || exists {
		return false, err
	}

	perms, err := ExpandPermissions(rs.Permissions)
	if err != nil {
		return false, err
	}

	var role *identity.Role
	if rs.System {
		role, err = identity.NewSystemRole(rs.Code, rs.Name)
	} else {
		role, err = identity.NewRole(rs.Code, rs.Name)
	}
	if err != nil {
		return false, err
	}
	if err := role.Update(rs.Name, rs.Description); err != nil {
		return false, err
	}
	if err := role.SetPermissions(perms); err != nil {
		return false, err
	}
	return true, s.roles.Save(ctx, role)
}

// EnsureSuperuser creates a local superuser account with the given password.
// An existing account is left as is and reported with created=false.
func (s *Seeder) EnsureSuperuser(ctx context.Context, username, password string) (bool, error) {
	exists, err := s.users.ExistsByUsername(ctx, identity.NormalizeUsername(username))
	if err != nil {
		return false, err
	}
	if exists {
		s.logger.Info("Superuser already exists", zap.String("username", username))
		return false, nil
	}

	user, err := identity.NewUser(username, username, "", "")
	if err != nil {
		return false, err
	}
	if err := user.SetPassword(password); err != nil {
		return false, err
	}
	user.IsSuperuser = true

	role, err := s.roles.FindByCode(ctx, "ADMIN")
	switch {
	case err == nil:
		if err := user.SetRoles([]uuid.UUID{role.ID}); err != nil {
			return false, err
		}
	case !errors.Is(err, shared.ErrNotFound):
		return false, err
	}

	if err := s.users.Save(ctx, user); err != nil {
		return false, err
	}
	s.logger.Info("Superuser created", zap.String("username", user.Username))
	return true, nil
}
