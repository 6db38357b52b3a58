// Package tenantconfig holds the curated field mappings per tenant. A
// config is created by reconciliation and mutated only by explicit user
// actions: confirm, reject, override, exclude. Every mutation bumps the
// config version.
package tenantconfig

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/metalake/readiness/pkg/contracts"
)

var (
	ErrTenantNotFound  = errors.New("tenant config not found")
	ErrMappingNotFound = errors.New("field mapping not found")
)

// Store keeps tenant configs in memory. Callers serialize writes; the core
// assumes at most one logical writer.
type Store struct {
	mu      sync.RWMutex
	configs map[string]*contracts.TenantConfig
	logger  *slog.Logger
	clock   func() time.Time
}

// NewStore creates an empty tenant config store.
func NewStore() *Store {
	return &Store{
		configs: make(map[string]*contracts.TenantConfig),
		logger:  slog.Default(),
		clock:   time.Now,
	}
}

// WithClock overrides the clock for deterministic testing.
func (s *Store) WithClock(clock func() time.Time) *Store {
	s.clock = clock
	return s
}

// WithLogger overrides the store logger.
func (s *Store) WithLogger(l *slog.Logger) *Store {
	s.logger = l
	return s
}

// Put installs a tenant config, replacing any existing one.
func (s *Store) Put(cfg *contracts.TenantConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configs[cfg.TenantID] = cfg
}

// Get returns the config for a tenant.
func (s *Store) Get(tenantID string) (*contracts.TenantConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg, ok := s.configs[tenantID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTenantNotFound, tenantID)
	}
	return cfg, nil
}

// Confirm marks a reconciled mapping as user-confirmed.
func (s *Store) Confirm(tenantID, fieldID string) error {
	return s.mutate(tenantID, fieldID, func(m *contracts.TenantFieldMapping) {
		m.Status = contracts.MappingConfirmed
	})
}

// Reject marks a mapping as rejected; evaluation falls back to the system
// default source for the field.
func (s *Store) Reject(tenantID, fieldID string) error {
	return s.mutate(tenantID, fieldID, func(m *contracts.TenantFieldMapping) {
		m.Status = contracts.MappingRejected
	})
}

// Override replaces a mapping's source with a user-supplied one.
func (s *Store) Override(tenantID, fieldID string, source contracts.FieldSource) error {
	return s.mutate(tenantID, fieldID, func(m *contracts.TenantFieldMapping) {
		m.Source = source
		m.Status = contracts.MappingOverridden
		m.Confidence = 1.0
	})
}

// Exclude removes a field from evaluation for this tenant.
func (s *Store) Exclude(tenantID, fieldID string) error {
	err := s.mutate(tenantID, fieldID, func(m *contracts.TenantFieldMapping) {
		m.Status = contracts.MappingExcluded
	})
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg := s.configs[tenantID]
	for _, id := range cfg.ExcludedFields {
		if id == fieldID {
			return nil
		}
	}
	cfg.ExcludedFields = append(cfg.ExcludedFields, fieldID)
	return nil
}

func (s *Store) mutate(tenantID, fieldID string, apply func(*contracts.TenantFieldMapping)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg, ok := s.configs[tenantID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrTenantNotFound, tenantID)
	}
	m, ok := cfg.Mapping(fieldID)
	if !ok {
		return fmt.Errorf("%w: %s/%s", ErrMappingNotFound, tenantID, fieldID)
	}
	now := s.clock().UTC()
	apply(m)
	m.UpdatedAt = now
	cfg.Version++
	cfg.UpdatedAt = now
	s.logger.Info("tenant mapping updated",
		"tenant", tenantID,
		"field", fieldID,
		"status", m.Status,
		"version", cfg.Version)
	return nil
}

// Resolution says how (or whether) a field's effective source was found.
type Resolution int

const (
	// ResolvedMapped means the tenant's curated mapping supplied the source.
	ResolvedMapped Resolution = iota
	// ResolvedDefault means the system default source applied.
	ResolvedDefault
	// ResolvedExcluded means the tenant excluded the field from evaluation.
	ResolvedExcluded
	// ResolvedNone means no source exists for the field.
	ResolvedNone
)

// Resolve determines the single effective source for a canonical field at
// evaluation time. The tenant mapping wins unless its status is rejected,
// in which case the system default applies. An excluded field resolves to
// no source and is reported as such.
func Resolve(cfg *contracts.TenantConfig, field contracts.CanonicalField) (contracts.FieldSource, Resolution) {
	if cfg != nil {
		if m, ok := cfg.Mapping(field.ID); ok {
			switch m.Status {
			case contracts.MappingExcluded:
				return nil, ResolvedExcluded
			case contracts.MappingRejected:
				// Fall through to the system default.
			default:
				if m.Source != nil {
					return m.Source, ResolvedMapped
				}
			}
		}
	}
	if field.DefaultSource != nil {
		return field.DefaultSource, ResolvedDefault
	}
	return nil, ResolvedNone
}
