package repository

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sgodoy/joblist/internal/domain"
	"github.com/sgodoy/joblist/internal/store"
)

// AggregateRepository is the persistence adapter for the aggregate
// document. Both operations fail safe: Load always returns a usable
// aggregate and Save is best effort, because for an offline tool the
// in-memory state is authoritative for the running session and a
// storage hiccup must never crash an edit.
type AggregateRepository interface {
	Load(ctx context.Context) *domain.Aggregate
	Save(ctx context.Context, agg *domain.Aggregate)
}

// AggregateRepo stores the whole aggregate as one JSON document under
// a fixed key in the key/value store.
type AggregateRepo struct {
	kv  store.KV
	key string
	log zerolog.Logger
}

// NewAggregateRepo creates a repository bound to the given document key.
func NewAggregateRepo(kv store.KV, key string, log zerolog.Logger) *AggregateRepo {
	return &AggregateRepo{kv: kv, key: key, log: log}
}

// Load reads and decodes the aggregate document. An absent document,
// a read error, or a malformed document all degrade to an empty
// aggregate; the error is logged, never returned.
func (r *AggregateRepo) Load(ctx context.Context) *domain.Aggregate {
	raw, ok, err := r.kv.Get(ctx, r.key)
	if err != nil {
		r.log.Warn().Err(err).Str("key", r.key).Msg("aggregate read failed, starting empty")
		return domain.NewAggregate()
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return domain.NewAggregate()
	}

	agg, ok := decodeAggregate([]byte(raw))
	if !ok {
		r.log.Warn().Str("key", r.key).Msg("malformed aggregate document, starting empty")
		return domain.NewAggregate()
	}

	agg.Normalize()
	return agg
}

// decodeAggregate decodes either supported document shape. The shapes
// form an explicit union distinguished structurally:
//
//	current: {"jobs": [...], "companies": [...]}
//	legacy:  [...]                        (bare array of jobs)
//
// The current shape is tried first; an array document fails that
// decode and falls through to the legacy shape.
func decodeAggregate(raw []byte) (*domain.Aggregate, bool) {
	var agg domain.Aggregate
	if err := json.Unmarshal(raw, &agg); err == nil {
		return &agg, true
	}

	var jobs []*domain.Job
	if err := json.Unmarshal(raw, &jobs); err == nil {
		return &domain.Aggregate{Jobs: jobs}, true
	}

	return nil, false
}

// Save serializes the full aggregate and overwrites the document.
// Write failures are logged and swallowed.
func (r *AggregateRepo) Save(ctx context.Context, agg *domain.Aggregate) {
	raw, err := json.Marshal(agg)
	if err != nil {
		r.log.Warn().Err(err).Msg("aggregate encode failed, skipping save")
		return
	}
	if err := r.kv.Set(ctx, r.key, string(raw)); err != nil {
		r.log.Warn().Err(err).Str("key", r.key).Msg("aggregate write failed, keeping in-memory state")
	}
}
