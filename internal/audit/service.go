// Package audit sequences one report submission: validate, call the AI
// provider, record the result in history.
package audit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kiranshivaraju/reportaudit/internal/ai"
	"github.com/kiranshivaraju/reportaudit/internal/history"
	"github.com/kiranshivaraju/reportaudit/pkg/models"
	"go.uber.org/zap"
)

var (
	// ErrAuditFailed is the only provider failure callers see; the cause is logged.
	ErrAuditFailed = errors.New("failed to analyze report, please check your API key and try again")
	// ErrAuditTimeout is returned when the configured inference timeout elapses.
	ErrAuditTimeout = errors.New("audit timed out waiting for the AI provider")
	// ErrMissingCredential is returned before any provider call when no key is available.
	ErrMissingCredential = ai.ErrMissingCredential
)

// persistTimeout bounds the history write that follows a successful audit.
const persistTimeout = 10 * time.Second

// Submission is one report as entered by the technician.
type Submission struct {
	ReportText     string
	TechnicianName string
	JobSiteName    string
	// Credential overrides the configured fallback key when not blank.
	Credential string
}

// Service orchestrates audits.
type Service struct {
	provider models.AIProvider
	history  *history.Store
	fallback string
	timeout  time.Duration
	logger   *zap.Logger
	now      func() time.Time
	newID    func() string
}

// Option customises a Service.
type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator replaces the UUIDv7 id source.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) { s.newID = gen }
}

// NewService creates a Service. fallbackCredential is used when a submission
// carries no key; a zero timeout leaves provider calls unbounded.
func NewService(provider models.AIProvider, store *history.Store, fallbackCredential string, timeout time.Duration, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		provider: provider,
		history:  store,
		fallback: fallbackCredential,
		timeout:  timeout,
		logger:   logger,
		now:      time.Now,
		newID:    newV7,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit audits one report. A blank report is a no-op and returns (nil, nil).
// On success the new history item is returned; it is already persisted.
func (s *Service) Submit(ctx context.Context, sub Submission) (*models.ReportHistoryItem, error) {
	if strings.TrimSpace(sub.ReportText) == "" {
		return nil, nil
	}

	credential, err := ai.ResolveCredential(sub.Credential, s.fallback)
	if err != nil {
		return nil, err
	}

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := s.now()
	result, err := s.provider.Analyze(callCtx, models.AnalysisRequest{
		ReportText: sub.ReportText,
		Credential: credential,
	})
	if err != nil {
		s.logger.Error("audit failed",
			zap.String("provider", s.provider.Name()),
			zap.Int("report_bytes", len(sub.ReportText)),
			zap.Error(err),
		)
		switch {
		case errors.Is(err, ai.ErrMissingCredential):
			return nil, ErrMissingCredential
		case errors.Is(err, ai.ErrInferenceTimeout), errors.Is(callCtx.Err(), context.DeadlineExceeded):
			return nil, ErrAuditTimeout
		default:
			return nil, ErrAuditFailed
		}
	}

	item := models.ReportHistoryItem{
		ID:             s.newID(),
		Timestamp:      s.now().UTC().Truncate(time.Millisecond),
		ReportText:     sub.ReportText,
		Analysis:       result,
		TechnicianName: sub.TechnicianName,
		JobSiteName:    sub.JobSiteName,
	}

	// The result is already paid for; a caller that went away must not lose it.
	persistCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()
	if _, err := s.history.Append(persistCtx, item); err != nil {
		return nil, fmt.Errorf("record audit: %w", err)
	}

	s.logger.Info("audit completed",
		zap.String("id", item.ID),
		zap.String("provider", s.provider.Name()),
		zap.Bool("is_safe", result.IsSafe),
		zap.Int("technical_score", result.TechnicalScore),
		zap.Int("professionalism_score", result.ProfessionalismScore),
		zap.Duration("elapsed", s.now().Sub(start)),
	)
	return &item, nil
}

func newV7() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
