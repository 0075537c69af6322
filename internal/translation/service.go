// Package translation exposes the permission translator over HTTP.
package translation

import (
	"context"
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	apperrors "github.com/openidx/permmap/internal/common/errors"
	"github.com/openidx/permmap/internal/metrics"
	"github.com/openidx/permmap/internal/permmap"
)

const builtinSource = "built-in"

var (
	ErrMissingBearerToken = errors.New("missing bearer token")
	ErrInvalidAuthHeader  = errors.New("invalid authorization header format")
)

// TokenClaims is the subset of access token claims the service reads
type TokenClaims struct {
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

// Service translates permission sets and reports what it drops
type Service struct {
	translator *permmap.Translator
	logger     *zap.Logger
	tracer     trace.Tracer
}

// NewService creates a translation service over translator
func NewService(translator *permmap.Translator, logger *zap.Logger) *Service {
	return &Service{
		translator: translator,
		logger:     logger.With(zap.String("component", "translation")),
		tracer:     otel.Tracer("github.com/openidx/permmap/internal/translation"),
	}
}

// LoadTranslator reads the mapping table at path (the built-in table when
// path is empty) and validates it. A malformed table is an error in strict
// mode; otherwise the problems are logged and the later duplicate wins. The
// returned translator counts and debug-logs every unmapped identifier.
func LoadTranslator(path string, strict bool, logger *zap.Logger) (*permmap.Translator, error) {
	source := path
	if source == "" {
		source = builtinSource
	}

	entries, err := permmap.LoadEntriesFile(path)
	if err != nil {
		return nil, apperrors.InvalidMappingTable(source, err)
	}

	if err := permmap.Validate(entries); err != nil {
		if strict {
			return nil, apperrors.InvalidMappingTable(source, err)
		}
		logger.Warn("Mapping table has problems, later duplicates win",
			zap.String("source", source),
			zap.Error(err),
		)
	}

	table := permmap.NewMappingTable(entries)
	translator := permmap.NewTranslator(table, permmap.WithUnmappedObserver(func(dir permmap.Direction, id string) {
		metrics.RecordUnmapped(string(dir))
		logger.Debug("Dropped unmapped identifier",
			zap.String("direction", string(dir)),
			zap.String("id", id),
		)
	}))

	metrics.SetMappingTableEntries(table.Len())
	logger.Info("Mapping table loaded",
		zap.String("source", source),
		zap.Int("entries", table.Len()),
		zap.Int("capabilities", translator.Inverse().Len()),
	)

	return translator, nil
}

// Translator returns the underlying translator
func (s *Service) Translator() *permmap.Translator {
	return s.translator
}

// ToFrontend maps backend permissions to the capabilities they grant
func (s *Service) ToFrontend(ctx context.Context, permissions []string) []string {
	_, span := s.tracer.Start(ctx, "translation.ToFrontend",
		trace.WithAttributes(attribute.Int("permmap.inputs", len(permissions))))
	defer span.End()

	metrics.RecordTranslation(string(permmap.ToFrontendDirection), len(permissions))
	out := permmap.FrontendStrings(s.translator.ToFrontend(permmap.BackendIDs(permissions)))

	span.SetAttributes(attribute.Int("permmap.outputs", len(out)))
	return out
}

// ToBackend expands capabilities into every backend permission behind them
func (s *Service) ToBackend(ctx context.Context, capabilities []string) []string {
	_, span := s.tracer.Start(ctx, "translation.ToBackend",
		trace.WithAttributes(attribute.Int("permmap.inputs", len(capabilities))))
	defer span.End()

	metrics.RecordTranslation(string(permmap.ToBackendDirection), len(capabilities))
	out := permmap.BackendStrings(s.translator.ToBackend(permmap.FrontendIDs(capabilities)))

	span.SetAttributes(attribute.Int("permmap.outputs", len(out)))
	return out
}

// MappingEntry is one table row as served by the API
type MappingEntry struct {
	Backend  string `json:"backend"`
	Frontend string `json:"frontend"`
}

// MappingResponse describes the loaded table and its inverse
type MappingResponse struct {
	Entries      []MappingEntry      `json:"entries"`
	Capabilities map[string][]string `json:"capabilities"`
}

// Mapping returns the table in order together with each capability's backend bucket
func (s *Service) Mapping() MappingResponse {
	table := s.translator.Table()
	inverse := s.translator.Inverse()

	resp := MappingResponse{
		Entries:      make([]MappingEntry, 0, table.Len()),
		Capabilities: make(map[string][]string, inverse.Len()),
	}
	for _, e := range table.Entries() {
		resp.Entries = append(resp.Entries, MappingEntry{
			Backend:  string(e.Backend),
			Frontend: string(e.Frontend),
		})
	}
	for _, capability := range inverse.Capabilities() {
		bucket, _ := inverse.Lookup(capability)
		resp.Capabilities[string(capability)] = permmap.BackendStrings(bucket)
	}

	return resp
}

// CapabilitiesFromToken reads the permissions claim of an access token and
// translates it. The signature is not checked here; tokens reaching this
// service have already been verified upstream.
func (s *Service) CapabilitiesFromToken(ctx context.Context, tokenString string) ([]string, error) {
	claims := &TokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		s.logger.Debug("Rejected malformed access token", zap.Error(err))
		return nil, apperrors.Unauthorized("Malformed access token").WithDetails(err.Error())
	}

	return s.ToFrontend(ctx, claims.Permissions), nil
}

// ExtractBearerToken extracts the token from an Authorization header value
func ExtractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrMissingBearerToken
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return "", ErrInvalidAuthHeader
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
	if token == "" {
		return "", ErrMissingBearerToken
	}

	return token, nil
}
