package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/leadpipe/leadpipe/internal/attio"
	"github.com/leadpipe/leadpipe/internal/extract"
	"github.com/leadpipe/leadpipe/internal/observability/metrics"
	"github.com/leadpipe/leadpipe/internal/schema"
	"github.com/leadpipe/leadpipe/pkg/logging"
)

// Extractor turns message text into a validated lead record.
type Extractor interface {
	Extract(ctx context.Context, message string) (*schema.LeadRecord, error)
}

// Mapper turns a lead record into the ordered payload sequence.
type Mapper interface {
	MapRecord(rec *schema.LeadRecord) []attio.Payload
}

// Submitter writes payloads to the CRM.
type Submitter interface {
	Submit(ctx context.Context, payloads []attio.Payload) []attio.SubmissionResult
}

// Result is what one processed message produced. Results holds one entry
// per submitted payload in submission order. Duplicate marks a message the
// dedupe guard suppressed; no extraction or submission happened for it.
type Result struct {
	UnitID    uuid.UUID
	Record    *schema.LeadRecord
	Results   []attio.SubmissionResult
	Duplicate bool
}

// Service runs the extract, map, submit stages for one inbound message.
// Each message is an independent unit of work; stages within a unit run
// strictly in sequence, and no state is shared across units beyond the
// underlying HTTP clients.
type Service struct {
	extractor Extractor
	mapper    Mapper
	submitter Submitter
	guard     Guard
	audit     AuditStore
	metrics   *metrics.PipelineMetrics
	logger    *logging.Logger
}

// ServiceOption configures optional collaborators.
type ServiceOption func(*Service)

// WithGuard installs a dedupe guard.
func WithGuard(g Guard) ServiceOption {
	return func(s *Service) {
		if g != nil {
			s.guard = g
		}
	}
}

// WithAuditStore installs submission auditing.
func WithAuditStore(store AuditStore) ServiceOption {
	return func(s *Service) { s.audit = store }
}

// WithMetrics installs pipeline metrics.
func WithMetrics(m *metrics.PipelineMetrics) ServiceOption {
	return func(s *Service) { s.metrics = m }
}

// NewService wires the pipeline stages together.
func NewService(extractor Extractor, mapper Mapper, submitter Submitter, logger *logging.Logger, opts ...ServiceOption) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	s := &Service{
		extractor: extractor,
		mapper:    mapper,
		submitter: submitter,
		guard:     NopGuard{},
		logger:    logger.Component("pipeline"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Process runs one message through the pipeline. The returned error is
// always a typed *extract.Error when extraction failed; submission
// failures are reported per payload inside the Result, never as an error.
func (s *Service) Process(ctx context.Context, message string) (*Result, error) {
	unitID := uuid.New()
	logger := s.logger.With("unit_id", unitID.String())

	if seen, err := s.guard.Seen(ctx, message); err != nil {
		logger.Warn("dedupe check failed, continuing", "error", err)
	} else if seen {
		logger.Info("duplicate message suppressed")
		return &Result{UnitID: unitID, Duplicate: true}, nil
	}

	start := time.Now()
	rec, err := s.extractor.Extract(ctx, message)
	s.metrics.ObserveStageLatency("extract", time.Since(start).Seconds())
	if err != nil {
		s.metrics.ObserveExtraction(extractionOutcome(err))
		return nil, err
	}
	s.metrics.ObserveExtraction("success")

	payloads := s.mapper.MapRecord(rec)
	if len(payloads) == 0 {
		logger.Warn("record mapped to no payloads", "name", rec.DisplayName())
		return &Result{UnitID: unitID, Record: rec}, nil
	}

	start = time.Now()
	results := s.submitter.Submit(ctx, payloads)
	s.metrics.ObserveStageLatency("submit", time.Since(start).Seconds())

	for _, res := range results {
		s.metrics.ObserveSubmission(string(res.ObjectType), string(res.Outcome))
		s.recordAudit(ctx, unitID, res, logger)
	}

	logger.Info("message processed",
		"name", rec.DisplayName(),
		"payloads", len(payloads),
	)
	return &Result{UnitID: unitID, Record: rec, Results: results}, nil
}

func (s *Service) recordAudit(ctx context.Context, unitID uuid.UUID, res attio.SubmissionResult, logger *slog.Logger) {
	if s.audit == nil {
		return
	}
	err := s.audit.Record(ctx, AuditEntry{
		UnitID:     unitID,
		ObjectType: string(res.ObjectType),
		Outcome:    string(res.Outcome),
		RecordID:   res.RecordID,
		Detail:     res.Detail,
	})
	if err != nil {
		logger.Warn("audit write failed", "error", err)
	}
}

func extractionOutcome(err error) string {
	var extErr *extract.Error
	if errors.As(err, &extErr) {
		return string(extErr.Kind)
	}
	return "error"
}
