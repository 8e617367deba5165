package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/talgya/townhall/internal/events"
	"github.com/talgya/townhall/internal/roster"
	"github.com/talgya/townhall/internal/stance"
)

// Engine drives sessions through the round state machine. It holds no
// session state of its own; each call takes exclusive, sequential access to
// the session it mutates.
type Engine struct {
	injector  *events.Injector
	responder Responder
}

// New creates a round engine.
func New(injector *events.Injector, responder Responder) *Engine {
	return &Engine{injector: injector, responder: responder}
}

// RoundResult summarizes one resolved statement round for the caller.
type RoundResult struct {
	Record     RoundRecord
	EventText  string
	Replies    []Reply
	Concluded  bool
	NewClimate int
}

// SubmitStatement resolves one full round from the human's statement:
// validation, token cost, event injection, AI responses, stance and climate
// updates, round advance, termination check, and token regeneration.
// Validation failures return an error with no state mutated.
func (e *Engine) SubmitStatement(ctx context.Context, s *Session, text string) (*RoundResult, error) {
	if s.Concluded() {
		return nil, ErrConcluded
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyStatement
	}
	if words := len(strings.Fields(text)); words < MinStatementWords {
		return nil, fmt.Errorf("%w: %d words, need at least %d", ErrStatementTooShort, words, MinStatementWords)
	}

	human := s.Human()
	if human == nil {
		return nil, fmt.Errorf("%w: no human participant in roster", ErrTargetNotFound)
	}
	if human.Tokens < StatementCost {
		return nil, fmt.Errorf("%w: statement costs %d", ErrInsufficientTokens, StatementCost)
	}
	human.Tokens -= StatementCost

	// Snapshot pre-round categories for UI deltas, then reset skip flags
	// before the event draw.
	for _, p := range s.Participants {
		if !p.IsHuman {
			p.PrevStance = stance.FromScore(p.StanceScore)
		}
		p.SkippedRound = false
	}

	s.LastEvent = ""
	evRes, climate := e.injector.Roll(s.Participants, s.Climate, s.Round)
	s.Climate = climate
	if evRes != nil {
		s.LastEvent = evRes.Annotation
	}

	// The orchestrator sees post-event scores. All replies complete (or
	// degrade to placeholders) before any are applied.
	replies := e.responder.RoundReplies(ctx, s.Participants, s.History, text, s.Climate)

	record := RoundRecord{
		Round:      s.Round,
		Statements: []Statement{{ParticipantID: human.ID, Text: text}},
		Event:      s.LastEvent,
	}

	totalDelta := 0
	applied := 0
	for _, r := range replies {
		p := roster.FindByID(s.Participants, r.ParticipantID)
		if p == nil || p.IsHuman {
			continue
		}
		totalDelta += stance.Clamp(r.NewScore) - p.StanceScore
		p.SetStanceScore(r.NewScore)
		applied++
		record.Statements = append(record.Statements, Statement{ParticipantID: p.ID, Text: r.Dialogue})
	}

	if applied > 0 {
		mean := float64(totalDelta) / float64(applied)
		shift := int(math.Round(mean * ClimateFactor))
		s.Climate = stance.Clamp(s.Climate + shift)
		slog.Info("climate updated", "session", s.ID, "shift", shift, "climate", s.Climate)
	}

	s.History = append(s.History, record)
	s.Round++

	res := &RoundResult{
		Record:     record,
		EventText:  s.LastEvent,
		Replies:    replies,
		NewClimate: s.Climate,
	}

	if s.Round > s.MaxRounds {
		s.Outcome = ResolveOutcome(s.Participants, s.Climate, s.MaxRounds)
		res.Concluded = true
		slog.Info("negotiation concluded", "session", s.ID, "outcome", s.Outcome.Kind)
		return res, nil
	}

	e.regenerate(s)
	return res, nil
}

// Concede ends the negotiation immediately with the gave-up outcome,
// recording the round at which it happened. No cost, event, or response
// processing runs.
func (e *Engine) Concede(s *Session) error {
	if s.Concluded() {
		return ErrConcluded
	}
	s.Outcome = &Outcome{
		Kind:  OutcomeConceded,
		Text:  fmt.Sprintf("You chose to end the negotiation in round %d.", s.Round),
		Round: s.Round,
	}
	slog.Info("player conceded", "session", s.ID, "round", s.Round)
	return nil
}

// regenerate runs the once-per-round token regeneration after a round
// advance: the human gains the base rate plus a one-shot conversion bonus,
// AI participants gain the flat rate, all capped per participant.
func (e *Engine) regenerate(s *Session) {
	for _, p := range s.Participants {
		if p.IsHuman {
			regen := HumanRegen
			if s.ConversionBonus {
				regen++
				s.ConversionBonus = false
				slog.Info("conversion bonus consumed", "session", s.ID)
			}
			p.Tokens = min(p.Tokens+regen, p.MaxTokens)
		} else {
			p.Tokens = min(p.Tokens+AIRegen, p.MaxTokens)
		}
	}
}
