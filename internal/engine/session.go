// Package engine implements the negotiation round engine: the per-session
// state machine that validates human actions, runs the event injector and
// response orchestrator, updates stance scores and climate, regenerates
// influence tokens, and resolves the final outcome.
package engine

import (
	"context"
	"errors"

	"github.com/talgya/townhall/internal/roster"
)

// Round economy constants.
const (
	DefaultMaxRounds  = 8
	MinStatementWords = 15
	StatementCost     = 1
	InitialClimate    = 50

	// HumanRegen is the human's per-round base token regeneration;
	// AIRegen is the flat AI rate. Both are capped per participant.
	HumanRegen = 1
	AIRegen    = 2

	// ClimateFactor scales the mean AI stance delta into a climate shift.
	ClimateFactor = 2
)

// Validation and state errors surfaced to the presentation layer.
var (
	ErrEmptyStatement     = errors.New("statement is empty")
	ErrStatementTooShort  = errors.New("statement is too short")
	ErrInsufficientTokens = errors.New("not enough influence tokens")
	ErrTargetNotFound     = errors.New("target participant not found")
	ErrUnknownAction      = errors.New("unknown influence action")
	ErrConcluded          = errors.New("negotiation has concluded")
)

// Statement is one speaker-attributed line in a round record.
type Statement struct {
	ParticipantID string `json:"participant_id"`
	Text          string `json:"text"`
}

// RoundRecord is the append-only transcript entry for one resolved round:
// the human's statement, every responding AI's dialogue, and the fired
// micro-event's annotation if any.
type RoundRecord struct {
	Round      int         `json:"round"`
	Statements []Statement `json:"statements"`
	Event      string      `json:"event,omitempty"`
}

// Reply is the orchestrator's result for one responding AI participant:
// the dialogue line to record and the new clamped stance score to apply.
type Reply struct {
	ParticipantID string
	Dialogue      string
	NewScore      int
}

// Responder generates a reply for every active AI participant. It degrades
// gracefully inside: a transport or parse failure yields a placeholder line
// and an unchanged score, never an error, so the round always completes.
type Responder interface {
	RoundReplies(ctx context.Context, participants []*roster.Participant, history []RoundRecord, statement string, climate int) []Reply
}

// Session is the full serializable state of one negotiation. It is pure
// data; the Engine performs all mutations, one human action at a time.
type Session struct {
	ID        string        `json:"id"`
	HumanRole roster.RoleID `json:"human_role"`

	Round     int `json:"round"`
	MaxRounds int `json:"max_rounds"`
	Climate   int `json:"climate"`

	Participants []*roster.Participant `json:"participants"`
	History      []RoundRecord         `json:"history"`

	// Outcome is set exactly once, when the round counter passes MaxRounds
	// or the human concedes.
	Outcome *Outcome `json:"outcome,omitempty"`

	// ConversionBonus is the one-shot flag set by a Neutral→Support direct
	// influence conversion, consumed by the next token regeneration.
	ConversionBonus bool `json:"conversion_bonus_pending,omitempty"`

	// LastEvent holds the most recent round's event annotation for display.
	LastEvent string `json:"last_event,omitempty"`
}

// NewSession creates a live negotiation in round 1 with a neutral climate.
func NewSession(id string, humanRole roster.RoleID, participants []*roster.Participant, maxRounds int) *Session {
	if maxRounds <= 0 {
		maxRounds = DefaultMaxRounds
	}
	return &Session{
		ID:           id,
		HumanRole:    humanRole,
		Round:        1,
		MaxRounds:    maxRounds,
		Climate:      InitialClimate,
		Participants: participants,
	}
}

// Concluded reports whether the session has reached a terminal state.
func (s *Session) Concluded() bool {
	return s.Outcome != nil
}

// Human returns the human participant.
func (s *Session) Human() *roster.Participant {
	return roster.Human(s.Participants)
}
