// Package roster provides the participant data model and roster generation:
// one human profile plus a role-quota'd set of AI participants with
// role-weighted initial stances.
package roster

import "github.com/talgya/townhall/internal/stance"

// Initial stance scores, one per category a fresh participant can roll.
const (
	InitialSupportScore = 75
	InitialNeutralScore = 50
	InitialOpposeScore  = 25

	InitialTrust = 50

	// MaxHumanTokens caps the human's influence-token balance.
	MaxHumanTokens = 10

	// MaxTokensFactor caps an AI participant at initial tokens × factor.
	MaxTokensFactor = 1.5
)

// Participant is one seat at the negotiation table, human or AI.
type Participant struct {
	ID       string `json:"id"`
	RoleID   RoleID `json:"role_id"`
	RoleName string `json:"role_name"`
	Name     string `json:"name"`
	IsHuman  bool   `json:"is_human"`

	// StanceScore is the single source of truth for attitude (0–100).
	// Stance is always re-derived from it on every mutation.
	StanceScore int             `json:"stance_score"`
	Stance      stance.Category `json:"stance"`
	TrustValue  int             `json:"trust_value"`

	// InfluenceWeight is static, role-derived, and read only by the
	// outcome resolver.
	InfluenceWeight int `json:"influence_weight"`

	Tokens    int `json:"influence_tokens"`
	MaxTokens int `json:"max_tokens"`

	// SkippedRound marks a participant as sitting out the current round.
	// Set by the event injector, cleared at the start of every round.
	SkippedRound bool `json:"skipped_round,omitempty"`

	// PrevStance is the category snapshot taken before each round's AI
	// responses, kept for UI delta display only.
	PrevStance stance.Category `json:"previous_stance,omitempty"`

	// Cosmetic profile attributes; no effect on game logic.
	Age           int    `json:"age,omitempty"`
	Gender        string `json:"gender,omitempty"`
	LocalBorn     string `json:"local_born,omitempty"`
	HasChildren   string `json:"has_children,omitempty"`
	NumChildren   int    `json:"num_children,omitempty"`
	MaritalStatus string `json:"marital_status,omitempty"`
	Backstory     string `json:"backstory,omitempty"`
}

// SetStanceScore applies a clamped score and re-derives the category.
// Every mutation path goes through here so score and category never diverge.
func (p *Participant) SetStanceScore(score int) {
	p.StanceScore = stance.Clamp(score)
	p.Stance = stance.FromScore(p.StanceScore)
}

// AdjustStance shifts the stance score by delta, clamped.
func (p *Participant) AdjustStance(delta int) {
	p.SetStanceScore(p.StanceScore + delta)
}

// AdjustTrust shifts the trust value by delta, clamped.
func (p *Participant) AdjustTrust(delta int) {
	p.TrustValue = stance.Clamp(p.TrustValue + delta)
}

// initialScoreFor maps a rolled initial category to its fixed score.
func initialScoreFor(c stance.Category) int {
	switch c {
	case stance.Support:
		return InitialSupportScore
	case stance.Oppose:
		return InitialOpposeScore
	default:
		return InitialNeutralScore
	}
}

// FindByID returns the participant with the given id, or nil.
func FindByID(list []*Participant, id string) *Participant {
	for _, p := range list {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Human returns the human participant in the roster, or nil.
func Human(list []*Participant) *Participant {
	for _, p := range list {
		if p.IsHuman {
			return p
		}
	}
	return nil
}
