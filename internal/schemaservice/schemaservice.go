// Package schemaservice implements the schema service facade:
// registering and retrieving credential schemas. RegisterSchema
// accepts the full caller-supplied property tree, arbitrarily nested.
package schemaservice

import (
	"context"

	"github.com/go-logr/logr"

	"github.com/ParichayaHQ/credentiald/internal/obslog"
	"github.com/ParichayaHQ/credentiald/internal/registry"
	"github.com/ParichayaHQ/credentiald/internal/svcerr"
	"github.com/ParichayaHQ/credentiald/pkg/vctypes"
)

// Service registers and retrieves credential schemas.
type Service struct {
	store registry.Store
	log   logr.Logger
}

// New constructs a schema service over a registry.
func New(store registry.Store, log logr.Logger) *Service {
	return &Service{store: store, log: log}
}

// RegisterSchema validates and persists a schema, keyed by rawID.
func (s *Service) RegisterSchema(ctx context.Context, rawID, schemaType, name, description string, properties map[string]vctypes.SchemaProperty) (vctypes.URL, error) {
	const op = "RegisterSchema"
	id, err := vctypes.NewURL(rawID)
	if err != nil {
		obslog.LogBadInput(s.log, op, "id", err)
		return vctypes.URL{}, svcerr.NewField(op, "id", err)
	}
	schema := vctypes.CredentialSchema{
		ID:          id,
		Type:        schemaType,
		Name:        name,
		Description: description,
		Properties:  properties,
	}
	if err := s.store.PutSchema(ctx, schema); err != nil {
		obslog.LogInternal(s.log, op, err)
		return vctypes.URL{}, svcerr.New(svcerr.Internal, op, err)
	}
	return id, nil
}

// GetSchema fetches a schema by id, reporting absence as NotFound.
func (s *Service) GetSchema(ctx context.Context, rawID string) (*vctypes.CredentialSchema, error) {
	const op = "GetSchema"
	id, err := vctypes.NewURL(rawID)
	if err != nil {
		obslog.LogBadInput(s.log, op, "id", err)
		return nil, svcerr.NewField(op, "id", err)
	}
	schema, err := s.store.GetSchema(ctx, id)
	if err != nil {
		obslog.LogInternal(s.log, op, err)
		return nil, svcerr.New(svcerr.Internal, op, err)
	}
	if schema == nil {
		return nil, svcerr.NotFoundf(op, "schema %s not found", rawID)
	}
	return schema, nil
}

// ListSchemas returns at most limit schemas (0 or negative falls back
// to the registry's default).
func (s *Service) ListSchemas(ctx context.Context, limit int) ([]vctypes.CredentialSchema, error) {
	const op = "ListSchemas"
	schemas, err := s.store.ListSchemas(ctx, limit)
	if err != nil {
		obslog.LogInternal(s.log, op, err)
		return nil, svcerr.New(svcerr.Internal, op, err)
	}
	return schemas, nil
}
