package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/noah-isme/writerpro-api/internal/observability"
)

// Subjects published by the API.
const (
	SubjectAnalysisCompleted  = "analysis.completed"
	SubjectPlacementCompleted = "placement.completed"
)

// Envelope wraps every published payload.
type Envelope struct {
	ID            string          `json:"id"`
	Subject       string          `json:"subject"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Payload       json.RawMessage `json:"payload"`
}

// AnalysisCompleted is emitted after a submission is graded and stored.
type AnalysisCompleted struct {
	LearnerID    uint   `json:"learner_id"`
	AnalysisID   uint   `json:"analysis_id"`
	Level        string `json:"level"`
	OverallScore int    `json:"overall_score"`
	Source       string `json:"source"`
	WordCount    int    `json:"word_count"`
}

// PlacementCompleted is emitted after a placement attempt is recorded.
type PlacementCompleted struct {
	LearnerID       uint   `json:"learner_id"`
	AttemptID       uint   `json:"attempt_id"`
	AssessmentID    uint   `json:"assessment_id"`
	CorrectAnswers  int    `json:"correct_answers"`
	Level           string `json:"level"`
	UserFacingLevel string `json:"user_facing_level"`
}

// Publisher emits domain events.
type Publisher interface {
	Publish(ctx context.Context, subject string, payload any) error
}

type natsConn interface {
	Publish(subject string, data []byte) error
}

var _ natsConn = (*nats.Conn)(nil)

type natsPublisher struct {
	conn   natsConn
	prefix string
	now    func() time.Time
	logger zerolog.Logger
}

// NewNATSPublisher publishes events to NATS under prefix, e.g. "writerpro".
func NewNATSPublisher(conn *nats.Conn, prefix string, logger zerolog.Logger) Publisher {
	return newNATSPublisher(conn, prefix, logger)
}

func newNATSPublisher(conn natsConn, prefix string, logger zerolog.Logger) *natsPublisher {
	return &natsPublisher{
		conn:   conn,
		prefix: prefix,
		now:    time.Now,
		logger: logger.With().Str("component", "event_publisher").Logger(),
	}
}

func (p *natsPublisher) Publish(ctx context.Context, subject string, payload any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", subject, err)
	}

	fullSubject := subject
	if p.prefix != "" {
		fullSubject = p.prefix + "." + subject
	}

	envelope, err := json.Marshal(Envelope{
		ID:            uuid.NewString(),
		Subject:       fullSubject,
		CorrelationID: observability.CorrelationID(ctx),
		OccurredAt:    p.now().UTC(),
		Payload:       body,
	})
	if err != nil {
		return fmt.Errorf("encode %s envelope: %w", subject, err)
	}

	if err := p.conn.Publish(fullSubject, envelope); err != nil {
		return fmt.Errorf("publish %s: %w", fullSubject, err)
	}

	p.logger.Debug().Str("subject", fullSubject).Msg("event published")
	return nil
}

type nopPublisher struct{}

// NewNopPublisher returns a publisher that discards events.
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(context.Context, string, any) error {
	return nil
}
