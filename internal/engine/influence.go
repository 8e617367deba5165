package engine

import (
	"fmt"
	"log/slog"

	"github.com/talgya/townhall/internal/roster"
	"github.com/talgya/townhall/internal/stance"
)

// ActionID identifies a catalogued direct-influence action.
type ActionID string

const (
	ActionGentlePersuasion ActionID = "gentle_persuasion"
	ActionStrongPersuasion ActionID = "strong_persuasion"
	ActionAllyRecruitment  ActionID = "ally_recruitment"
	ActionPressureOpponent ActionID = "pressure_opponent"
	ActionProxySpeaking    ActionID = "proxy_speaking"
)

// Action is one direct-influence action the human can spend tokens on
// outside the round flow: a fixed cost plus a stance/trust delta pair
// applied immediately to one AI target.
type Action struct {
	ID          ActionID `json:"id"`
	Cost        int      `json:"cost"`
	StanceDelta int      `json:"stance_delta"`
	TrustDelta  int      `json:"trust_delta"`
	Log         string   `json:"log"`
}

// Actions is the fixed influence-action catalog.
var Actions = map[ActionID]Action{
	ActionGentlePersuasion: {ID: ActionGentlePersuasion, Cost: 1, StanceDelta: 5, TrustDelta: 2, Log: "gently persuaded"},
	ActionStrongPersuasion: {ID: ActionStrongPersuasion, Cost: 2, StanceDelta: 15, TrustDelta: 10, Log: "strongly persuaded"},
	ActionAllyRecruitment:  {ID: ActionAllyRecruitment, Cost: 3, StanceDelta: 0, TrustDelta: 15, Log: "tried to recruit"},
	ActionPressureOpponent: {ID: ActionPressureOpponent, Cost: 4, StanceDelta: -10, TrustDelta: -15, Log: "pressured"},
	// Proxy speaking is catalogued at cost 5; its stance/trust effects are
	// not yet assigned.
	ActionProxySpeaking: {ID: ActionProxySpeaking, Cost: 5, Log: "spoke through"},
}

// InfluenceResult reports what a direct-influence action did to its target.
type InfluenceResult struct {
	Action    Action          `json:"action"`
	TargetID  string          `json:"target_id"`
	OldScore  int             `json:"old_score"`
	NewScore  int             `json:"new_score"`
	OldStance stance.Category `json:"old_stance"`
	NewStance stance.Category `json:"new_stance"`
	Converted bool            `json:"converted"`
	Message   string          `json:"message"`
}

// ApplyInfluence spends tokens on an immediate stance/trust shift against one
// AI target. It does not consume a round or trigger events or AI responses.
// Insufficient tokens reject the action with no mutation. A Neutral→Support
// transition arms the one-shot conversion bonus for the next regeneration.
func (e *Engine) ApplyInfluence(s *Session, actionID ActionID, targetID string) (*InfluenceResult, error) {
	if s.Concluded() {
		return nil, ErrConcluded
	}

	action, ok := Actions[actionID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, actionID)
	}

	target := roster.FindByID(s.Participants, targetID)
	if target == nil || target.IsHuman {
		return nil, fmt.Errorf("%w: %q", ErrTargetNotFound, targetID)
	}

	human := s.Human()
	if human == nil {
		return nil, fmt.Errorf("%w: no human participant in roster", ErrTargetNotFound)
	}
	if human.Tokens < action.Cost {
		return nil, fmt.Errorf("%w: %s costs %d", ErrInsufficientTokens, actionID, action.Cost)
	}

	res := &InfluenceResult{
		Action:    action,
		TargetID:  target.ID,
		OldScore:  target.StanceScore,
		OldStance: stance.FromScore(target.StanceScore),
	}

	target.AdjustStance(action.StanceDelta)
	target.AdjustTrust(action.TrustDelta)

	res.NewScore = target.StanceScore
	res.NewStance = target.Stance
	res.Message = fmt.Sprintf("You %s %s.", action.Log, target.Name)

	if res.OldStance == stance.Neutral && res.NewStance == stance.Support {
		s.ConversionBonus = true
		res.Converted = true
		slog.Info("conversion bonus armed", "session", s.ID, "target", target.ID)
	}

	human.Tokens -= action.Cost

	slog.Info("influence action applied",
		"session", s.ID,
		"action", actionID,
		"target", target.ID,
		"score", res.NewScore,
		"trust", target.TrustValue,
	)
	return res, nil
}
