// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package research implements the paper discovery operations exposed to
// assistants: searching arXiv by topic, looking up a single paper, and
// rendering the topics and papers kept in the paper store.
package research

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/research-server/internal/arxiv"
	"github.com/pdiddy/research-server/internal/history"
	"github.com/pdiddy/research-server/internal/observability"
	"github.com/pdiddy/research-server/internal/paperstore"
	"github.com/pdiddy/research-server/pkg/types"
)

// DefaultMaxResults is the search size used when a caller gives none.
const DefaultMaxResults = 5

// Provider fetches paper metadata from an external index.
type Provider interface {
	Search(ctx context.Context, query string, maxResults int) ([]types.Paper, error)
	Lookup(ctx context.Context, id string) (types.Paper, error)
}

// Store persists papers per topic.
type Store interface {
	Save(topic string, papers []types.Paper) error
	Load(topic string) (map[string]types.Paper, error)
	Topics() ([]string, error)
}

// Recorder receives an entry for every successful search.
type Recorder interface {
	Record(ctx context.Context, e history.Entry) error
}

// Service implements the research operations on top of a provider and a store.
type Service struct {
	provider Provider
	store    Store
	recorder Recorder
	metrics  *observability.Metrics
	log      zerolog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithRecorder logs every successful search to r.
func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithMetrics records provider latency and stored papers in m.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithLogger sets the service logger. The default discards output.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// NewService creates a Service.
func NewService(p Provider, st Store, opts ...Option) *Service {
	s := &Service{provider: p, store: st, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SearchPapers queries the provider for up to maxResults papers on topic,
// replaces the topic's stored papers with the result set and returns a
// report listing the papers in ranked order. A zero maxResults means
// DefaultMaxResults.
func (s *Service) SearchPapers(ctx context.Context, topic string, maxResults int) (string, error) {
	const op = "search_papers"

	if strings.TrimSpace(topic) == "" {
		return "", invalidf(op, "topic must not be empty")
	}
	if maxResults == 0 {
		maxResults = DefaultMaxResults
	}
	if maxResults < 0 {
		return "", invalidf(op, "max_results must be positive, got %d", maxResults)
	}

	start := time.Now()
	papers, err := s.provider.Search(ctx, topic, maxResults)
	s.metrics.ObserveProvider("search", start)
	if err != nil {
		return "", newError(KindProvider, op, err)
	}

	if err := s.store.Save(topic, papers); err != nil {
		kind := KindStorage
		if errors.Is(err, paperstore.ErrInvalidTopic) {
			kind = KindInvalid
		}
		return "", newError(kind, op, err)
	}
	s.metrics.AddPapersStored(len(papers))

	slug := paperstore.Slug(topic)
	s.log.Info().
		Str("topic", topic).
		Str("slug", slug).
		Int("requested", maxResults).
		Int("returned", len(papers)).
		Msg("stored search results")

	if s.recorder != nil {
		entry := history.Entry{Topic: topic, Slug: slug, Requested: maxResults, Returned: len(papers)}
		if err := s.recorder.Record(ctx, entry); err != nil {
			s.log.Warn().Err(err).Str("topic", topic).Msg("recording search history")
		}
	}

	return formatSearchReport(topic, papers), nil
}

// ExtractInfo looks up one paper by identifier and returns its detail block.
// The paper store is neither read nor written.
func (s *Service) ExtractInfo(ctx context.Context, paperID string) (string, error) {
	const op = "extract_info"

	paperID = strings.TrimSpace(paperID)
	if paperID == "" {
		return "", invalidf(op, "paper_id must not be empty")
	}

	start := time.Now()
	p, err := s.provider.Lookup(ctx, paperID)
	s.metrics.ObserveProvider("lookup", start)
	if err != nil {
		kind := KindProvider
		if errors.Is(err, arxiv.ErrNotFound) {
			kind = KindNotFound
		}
		return "", newError(kind, op, err)
	}
	return formatDetail(paperID, p), nil
}

// ListTopics returns a markdown list of the topics with stored papers.
func (s *Service) ListTopics() (string, error) {
	topics, err := s.store.Topics()
	if err != nil {
		return "", newError(KindStorage, "list_topics", err)
	}
	return formatCatalog(topics), nil
}

// GetTopic renders the stored papers for topic. A topic that was never
// searched and a corrupted store file both produce explanatory text rather
// than an error; only other storage failures are returned as errors.
func (s *Service) GetTopic(topic string) (string, error) {
	papers, err := s.store.Load(topic)
	switch {
	case err == nil:
		return formatTopic(topic, papers), nil
	case errors.Is(err, paperstore.ErrNotFound), errors.Is(err, paperstore.ErrInvalidTopic):
		return formatMissingTopic(topic), nil
	case errors.Is(err, paperstore.ErrCorrupt):
		s.log.Warn().Err(err).Str("topic", topic).Msg("corrupted papers file")
		return formatCorruptTopic(topic), nil
	default:
		return "", newError(KindStorage, "get_topic", fmt.Errorf("loading topic %q: %w", topic, err))
	}
}

// LoadTopic returns the stored papers for topic without rendering them.
func (s *Service) LoadTopic(topic string) (map[string]types.Paper, error) {
	papers, err := s.store.Load(topic)
	if err != nil {
		kind := KindStorage
		if errors.Is(err, paperstore.ErrNotFound) {
			kind = KindNotFound
		}
		return nil, newError(kind, "load_topic", err)
	}
	return papers, nil
}
