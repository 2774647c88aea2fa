package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/itfy/evoting-admin/internal/core/domain"
	"github.com/itfy/evoting-admin/internal/core/ports"
	"github.com/itfy/evoting-admin/internal/core/registry"
)

// CodeIssuer abstracts voting-code generation for candidate creation.
type CodeIssuer interface {
	Generate(ctx context.Context, name string) (string, error)
}

// EntityService implements generic CRUD over the registered entity kinds.
type EntityService struct {
	store ports.DocumentStore
	codes CodeIssuer
	log   zerolog.Logger
}

func NewEntityService(store ports.DocumentStore, codes CodeIssuer, log zerolog.Logger) *EntityService {
	return &EntityService{store: store, codes: codes, log: log}
}

// Create constructs and persists one entity of the given kind. The instance
// is fully built in memory before the single insert runs, so a failure at
// any stage leaves no partial write.
func (s *EntityService) Create(ctx context.Context, kind string, params map[string]string) (any, error) {
	desc, err := registry.Resolve(kind)
	if err != nil {
		return nil, err
	}
	p := registry.Params(params)

	if desc.Kind == domain.KindUser {
		// Duplicate emails are refused before anything is written.
		if err := s.checkEmailFree(ctx, desc.Collection, p.Get("email")); err != nil {
			return nil, err
		}
	}

	entity, err := desc.New(p)
	if err != nil {
		return nil, err
	}

	// The voting code is minted only after the parameters validate, so a bad
	// command never leaks a reservation.
	if candidate, ok := entity.(*domain.Candidate); ok {
		code, err := s.codes.Generate(ctx, candidate.Name)
		if err != nil {
			return nil, err
		}
		candidate.VotingCode = code
	}

	id, err := s.store.Insert(ctx, desc.Collection, entity)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", kind, err)
	}
	if e, ok := entity.(domain.Identifiable); ok {
		e.SetID(id)
	}

	s.log.Info().Str("kind", kind).Str("id", id).Msg("entity created")
	return entity, nil
}

func (s *EntityService) checkEmailFree(ctx context.Context, collection, email string) error {
	if email == "" {
		// Left to the constructor's required-field validation.
		return nil
	}
	// Emails are stored lowercased, so the check must compare the canonical
	// form or case variants would slip past it.
	_, err := s.store.FindOne(ctx, collection, ports.Query{"email": strings.ToLower(email)})
	switch {
	case err == nil:
		return domain.ErrUserExists
	case errors.Is(err, domain.ErrNotFound):
		return nil
	default:
		return fmt.Errorf("check duplicate email: %w", err)
	}
}

// List returns every document of the kind matching filter. An empty result
// is not an error.
func (s *EntityService) List(ctx context.Context, kind string, filter map[string]string) ([]map[string]any, error) {
	desc, err := registry.Resolve(kind)
	if err != nil {
		return nil, err
	}
	docs, err := s.store.FindMany(ctx, desc.Collection, toQuery(filter))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	return docs, nil
}

// Find returns the first document of the kind matching query.
func (s *EntityService) Find(ctx context.Context, kind string, query map[string]string) (map[string]any, error) {
	desc, err := registry.Resolve(kind)
	if err != nil {
		return nil, err
	}
	return s.store.FindOne(ctx, desc.Collection, toQuery(query))
}

// DeleteOne removes the first document of the kind matching query.
func (s *EntityService) DeleteOne(ctx context.Context, kind string, query map[string]string) error {
	desc, err := registry.Resolve(kind)
	if err != nil {
		return err
	}
	if err := s.store.DeleteOne(ctx, desc.Collection, toQuery(query)); err != nil {
		return err
	}
	s.log.Info().Str("kind", kind).Msg("entity deleted")
	return nil
}

// DeleteAll removes every document of the kind matching filter and returns
// how many were deleted.
func (s *EntityService) DeleteAll(ctx context.Context, kind string, filter map[string]string) (int64, error) {
	desc, err := registry.Resolve(kind)
	if err != nil {
		return 0, err
	}
	n, err := s.store.DeleteMany(ctx, desc.Collection, toQuery(filter))
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", kind, err)
	}
	s.log.Info().Str("kind", kind).Int64("deleted", n).Msg("entities deleted")
	return n, nil
}

func toQuery(filter map[string]string) ports.Query {
	query := make(ports.Query, len(filter))
	for k, v := range filter {
		query[k] = v
	}
	return query
}
