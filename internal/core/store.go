// Package core owns the single assessment aggregate. The Store applies
// operations copy-on-write, keeps derived views current, persists every change
// through a domain.StateStorage and notifies subscribers.
package core

import (
	"context"
	"errors"
	"fmt"
	"maturity/internal/catalog"
	"maturity/internal/config"
	"maturity/internal/snapshot"
	"maturity/pkg/domain"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrInvalidDate is returned by SetAssessmentDate for impossible calendar dates.
var ErrInvalidDate = errors.New("invalid assessment date")

// PersistError reports that an update was applied in memory but could not be
// written to storage.
type PersistError struct {
	Operation string
	Key       string
	Err       error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist %s (key %s): %v", e.Operation, e.Key, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

// Store holds the current assessment.
type Store struct {
	mu      sync.Mutex
	storage domain.StateStorage
	key     string
	catalog []domain.DimensionTemplate
	logger  *zap.Logger
	metrics MetricsRecorder
	now     func() time.Time
	newID   func() string

	current    domain.Assessment
	progress   domain.Progress
	hasContent bool

	subs    map[uint64]func(domain.Assessment)
	nextSub uint64
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. Nil keeps the no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics sets the metrics recorder. Nil keeps the no-op recorder.
func WithMetrics(m MetricsRecorder) Option {
	return func(s *Store) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithClock overrides the time source used for default dates and timings.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides the assessment id generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithStorageKey overrides the storage entry name.
func WithStorageKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithCatalog replaces the built-in dimension catalog.
func WithCatalog(templates []domain.DimensionTemplate) Option {
	return func(s *Store) {
		s.catalog = make([]domain.DimensionTemplate, len(templates))
		for i, t := range templates {
			s.catalog[i] = t.Clone()
		}
	}
}

// NewStore restores the assessment from storage or starts a fresh one.
// Missing or unreadable state yields a fresh assessment which is persisted
// immediately; storage failures are logged and never fail construction.
func NewStore(ctx context.Context, storage domain.StateStorage, opts ...Option) (*Store, error) {
	if storage == nil {
		return nil, errors.New("core: nil state storage")
	}
	s := &Store{
		storage: storage,
		key:     config.DefaultStorageKey,
		catalog: catalog.Dimensions(),
		logger:  zap.NewNop(),
		metrics: noopMetrics{},
		now:     time.Now,
		newID:   uuid.NewString,
		subs:    make(map[uint64]func(domain.Assessment)),
	}
	for _, opt := range opts {
		opt(s)
	}

	restored, ok := s.restore(ctx)
	if ok {
		s.current = restored
		s.recompute()
		s.logger.Debug("assessment restored", zap.String("key", s.key), zap.String("assessment_id", restored.ID))
		return s, nil
	}
	s.current = s.fresh()
	s.recompute()
	if err := s.persist(ctx, "init", s.current); err != nil {
		s.logger.Warn("initial assessment not persisted", zap.Error(err))
	}
	return s, nil
}

func (s *Store) restore(ctx context.Context) (domain.Assessment, bool) {
	payload, found, err := s.storage.Load(ctx, s.key)
	if err != nil {
		s.logger.Warn("load stored assessment failed; starting fresh", zap.String("key", s.key), zap.Error(err))
		return domain.Assessment{}, false
	}
	if !found {
		return domain.Assessment{}, false
	}
	a, err := snapshot.Decode(payload, s.decodeOptions())
	if err != nil {
		s.logger.Warn("stored assessment unreadable; starting fresh", zap.String("key", s.key), zap.Error(err))
		return domain.Assessment{}, false
	}
	return a, true
}

func (s *Store) today() civil.Date { return civil.DateOf(s.now()) }

func (s *Store) fresh() domain.Assessment {
	return domain.NewAssessment(s.newID(), s.today(), s.catalog)
}

func (s *Store) decodeOptions() snapshot.DecodeOptions {
	return snapshot.DecodeOptions{Catalog: s.catalog, NewID: s.newID, Today: s.today()}
}

// recompute refreshes the cached derived views. Callers hold s.mu.
func (s *Store) recompute() {
	s.progress = domain.ProgressOf(s.current)
	s.hasContent = domain.HasUserContent(s.current)
	s.metrics.SetProgress(s.progress)
}

func (s *Store) persist(ctx context.Context, op string, a domain.Assessment) error {
	payload, err := snapshot.Encode(a)
	if err == nil {
		err = s.storage.Save(ctx, s.key, payload)
	}
	if err != nil {
		return &PersistError{Operation: op, Key: s.key, Err: err}
	}
	return nil
}

// apply runs mutate against the current value. A false result from mutate
// means the target was not found: nothing changes and nothing is persisted.
func (s *Store) apply(ctx context.Context, op string, mutate func(domain.Assessment) (domain.Assessment, bool), fields ...zap.Field) (domain.Assessment, error) {
	start := s.now()
	s.mu.Lock()
	next, ok := mutate(s.current)
	if !ok {
		out := s.current.Clone()
		s.mu.Unlock()
		s.logger.Warn("unknown target; operation ignored", append(fields, zap.String("operation", op))...)
		s.metrics.Observe(ctx, op, OutcomeIgnored, s.now().Sub(start))
		return out, nil
	}
	s.current = next
	s.recompute()
	err := s.persist(ctx, op, next)
	out := next.Clone()
	notify := s.listeners()
	s.mu.Unlock()

	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
		s.logger.Warn("assessment not persisted; change kept in memory", append(fields, zap.String("operation", op), zap.Error(err))...)
	} else {
		s.logger.Debug("assessment updated", append(fields, zap.String("operation", op))...)
	}
	s.metrics.Observe(ctx, op, outcome, s.now().Sub(start))
	for _, fn := range notify {
		fn(out.Clone())
	}
	return out, err
}

// listeners returns the live callbacks in subscription order. Callers hold s.mu.
func (s *Store) listeners() []func(domain.Assessment) {
	out := make([]func(domain.Assessment), 0, len(s.subs))
	for _, id := range slices.Sorted(maps.Keys(s.subs)) {
		out = append(out, s.subs[id])
	}
	return out
}

// text replaces invalid UTF-8 so the stored value survives a JSON round trip.
func text(v string) string { return strings.ToValidUTF8(v, "\uFFFD") }

func (s *Store) reject(ctx context.Context, op string, start time.Time, err error, fields ...zap.Field) (domain.Assessment, error) {
	s.logger.Warn("operation rejected", append(fields, zap.String("operation", op), zap.Error(err))...)
	s.metrics.Observe(ctx, op, OutcomeRejected, s.now().Sub(start))
	return s.Current(), err
}

// SetOrganizationInfo replaces the organization name and assessor list.
func (s *Store) SetOrganizationInfo(ctx context.Context, name string, assessors []string) (domain.Assessment, error) {
	list := make([]string, len(assessors))
	for i, v := range assessors {
		list[i] = text(v)
	}
	name = text(name)
	return s.apply(ctx, "set_organization_info", func(a domain.Assessment) (domain.Assessment, bool) {
		a.OrganizationName = name
		a.Assessors = list
		return a, true
	})
}

// UpdateDimension merges patch into the dimension with id.
func (s *Store) UpdateDimension(ctx context.Context, id string, patch domain.DimensionPatch) (domain.Assessment, error) {
	if patch.Notes != nil {
		notes := text(*patch.Notes)
		patch.Notes = &notes
	}
	if patch.MaturityLevel != nil && !patch.MaturityLevel.Valid() {
		err := fmt.Errorf("%w: %q", domain.ErrInvalidMaturityLevel, string(*patch.MaturityLevel))
		return s.reject(ctx, "update_dimension", s.now(), err, zap.String("dimension", id))
	}
	return s.apply(ctx, "update_dimension", func(a domain.Assessment) (domain.Assessment, bool) {
		return a.WithDimension(id, patch.Apply)
	}, zap.String("dimension", id))
}

// SetMaturityLevel selects level for a dimension. MaturityUnset clears it.
func (s *Store) SetMaturityLevel(ctx context.Context, dimensionID string, level domain.MaturityLevel) (domain.Assessment, error) {
	return s.UpdateDimension(ctx, dimensionID, domain.DimensionPatch{MaturityLevel: &level})
}

// SetDimensionNotes replaces a dimension's notes.
func (s *Store) SetDimensionNotes(ctx context.Context, dimensionID, notes string) (domain.Assessment, error) {
	return s.UpdateDimension(ctx, dimensionID, domain.DimensionPatch{Notes: &notes})
}

// ToggleProofPointCompleted flips the completed flag of a proof point.
func (s *Store) ToggleProofPointCompleted(ctx context.Context, dimensionID, proofPointID string) (domain.Assessment, error) {
	return s.apply(ctx, "toggle_proof_point_completed", func(a domain.Assessment) (domain.Assessment, bool) {
		return a.WithProofPoint(dimensionID, proofPointID, domain.ProofPoint.ToggledCompleted)
	}, zap.String("dimension", dimensionID), zap.String("proof_point", proofPointID))
}

// ToggleProofPointNotApplicable flips the not-applicable flag; marking an item
// not applicable clears its completed flag.
func (s *Store) ToggleProofPointNotApplicable(ctx context.Context, dimensionID, proofPointID string) (domain.Assessment, error) {
	return s.apply(ctx, "toggle_proof_point_not_applicable", func(a domain.Assessment) (domain.Assessment, bool) {
		return a.WithProofPoint(dimensionID, proofPointID, domain.ProofPoint.ToggledNotApplicable)
	}, zap.String("dimension", dimensionID), zap.String("proof_point", proofPointID))
}

// SetProofPointEvidence replaces the evidence text of a proof point.
func (s *Store) SetProofPointEvidence(ctx context.Context, dimensionID, proofPointID, evidence string) (domain.Assessment, error) {
	evidence = text(evidence)
	return s.apply(ctx, "set_proof_point_evidence", func(a domain.Assessment) (domain.Assessment, bool) {
		return a.WithProofPoint(dimensionID, proofPointID, func(p domain.ProofPoint) domain.ProofPoint {
			p.Evidence = evidence
			return p
		})
	}, zap.String("dimension", dimensionID), zap.String("proof_point", proofPointID))
}

// SetOverallNotes replaces the assessment-wide notes.
func (s *Store) SetOverallNotes(ctx context.Context, notes string) (domain.Assessment, error) {
	notes = text(notes)
	return s.apply(ctx, "set_overall_notes", func(a domain.Assessment) (domain.Assessment, bool) {
		a.OverallNotes = notes
		return a, true
	})
}

// SetAssessmentDate replaces the assessment date. Only four-digit years are
// accepted since the interchange format is YYYY-MM-DD.
func (s *Store) SetAssessmentDate(ctx context.Context, date civil.Date) (domain.Assessment, error) {
	if !date.IsValid() || date.Year < 0 || date.Year > 9999 {
		return s.reject(ctx, "set_assessment_date", s.now(), fmt.Errorf("%w: %s", ErrInvalidDate, date))
	}
	return s.apply(ctx, "set_assessment_date", func(a domain.Assessment) (domain.Assessment, bool) {
		a.AssessmentDate = date
		return a, true
	})
}

// Reset discards all answers and starts a fresh assessment with a new id.
func (s *Store) Reset(ctx context.Context) (domain.Assessment, error) {
	fresh := s.fresh()
	return s.apply(ctx, "reset", func(domain.Assessment) (domain.Assessment, bool) {
		return fresh, true
	})
}

// ExportSnapshot encodes the current assessment.
func (s *Store) ExportSnapshot() ([]byte, error) {
	return snapshot.Encode(s.Current())
}

// ImportSnapshot replaces the assessment with the decoded document. Malformed
// input returns an error wrapping snapshot.ErrMalformed and leaves state untouched.
func (s *Store) ImportSnapshot(ctx context.Context, data []byte) (domain.Assessment, error) {
	start := s.now()
	imported, err := snapshot.Decode(data, s.decodeOptions())
	if err != nil {
		return s.reject(ctx, "import_snapshot", start, fmt.Errorf("import snapshot: %w", err))
	}
	return s.apply(ctx, "import_snapshot", func(domain.Assessment) (domain.Assessment, bool) {
		return imported, true
	}, zap.String("assessment_id", imported.ID))
}

// Current returns a deep copy of the current assessment.
func (s *Store) Current() domain.Assessment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// Progress returns the cached maturity-level progress.
func (s *Store) Progress() domain.Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}

// HasUserContent reports whether anything has been entered since the last reset.
func (s *Store) HasUserContent() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasContent
}

// DimensionCompletion returns the proof point completion of one dimension.
func (s *Store) DimensionCompletion(dimensionID string) (domain.Completion, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.current.FindDimension(dimensionID)
	if !ok {
		return domain.Completion{}, false
	}
	return d.Completion(), true
}

// Catalog returns the dimension templates the store was built with.
func (s *Store) Catalog() []domain.DimensionTemplate {
	out := make([]domain.DimensionTemplate, len(s.catalog))
	for i, t := range s.catalog {
		out[i] = t.Clone()
	}
	return out
}

// Key returns the storage entry name.
func (s *Store) Key() string { return s.key }

// Subscribe registers fn, calls it with the current value, and again after
// every applied change. The returned function unsubscribes. Callbacks run
// synchronously on the goroutine that made the change.
func (s *Store) Subscribe(fn func(domain.Assessment)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	current := s.current.Clone()
	s.mu.Unlock()

	fn(current)
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}
