package engine

import (
	"fmt"

	"github.com/talgya/townhall/internal/roster"
	"github.com/talgya/townhall/internal/stance"
)

// Outcome thresholds.
const (
	ConsensusThreshold = 0.60 // supporters / participants
	InfluenceThreshold = 0.60 // supporting influence / total influence
	ApathyThreshold    = 0.25 // supporters / participants at or below this fails
	CriticalClimate    = 20   // climate at or below this collapses the talks
)

// OutcomeKind classifies a terminal negotiation state.
type OutcomeKind string

const (
	OutcomeConsensus OutcomeKind = "consensus_victory"
	OutcomeInfluence OutcomeKind = "influence_victory"
	OutcomeApathy    OutcomeKind = "total_failure_apathy"
	OutcomeCollapse  OutcomeKind = "total_failure_climate"
	OutcomeStalemate OutcomeKind = "partial_failure_stalemate"
	OutcomeConceded  OutcomeKind = "player_gave_up"
)

// Outcome is the terminal classification of a negotiation, with display text
// embedding the literal counts that justified it.
type Outcome struct {
	Kind  OutcomeKind `json:"kind"`
	Text  string      `json:"text"`
	Round int         `json:"round"`
}

// ResolveOutcome classifies the final roster and climate. Rules are checked
// in fixed priority order; the first match wins.
func ResolveOutcome(participants []*roster.Participant, climate, round int) *Outcome {
	supporters := 0
	total := len(participants)
	totalInfluence := 0
	supporterInfluence := 0

	for _, p := range participants {
		totalInfluence += p.InfluenceWeight
		if stance.FromScore(p.StanceScore) == stance.Support {
			supporters++
			supporterInfluence += p.InfluenceWeight
		}
	}

	out := &Outcome{Round: round}
	switch {
	case total > 0 && float64(supporters)/float64(total) >= ConsensusThreshold:
		out.Kind = OutcomeConsensus
		out.Text = fmt.Sprintf("Consensus Victory: Project approved with broad agreement (%d/%d supporters)!",
			supporters, total)
	case totalInfluence > 0 && float64(supporterInfluence)/float64(totalInfluence) >= InfluenceThreshold:
		out.Kind = OutcomeInfluence
		out.Text = fmt.Sprintf("Influence Victory: Key figures secured project approval (Supporting Influence: %d/%d)!",
			supporterInfluence, totalInfluence)
	case total == 0 || float64(supporters)/float64(total) <= ApathyThreshold:
		out.Kind = OutcomeApathy
		out.Text = fmt.Sprintf("Total Failure: Project rejected due to overwhelming opposition or apathy (Support: %d/%d).",
			supporters, total)
	case climate <= CriticalClimate:
		out.Kind = OutcomeCollapse
		out.Text = fmt.Sprintf("Total Failure: Negotiations collapsed due to a toxic climate (Climate Score: %d).",
			climate)
	default:
		out.Kind = OutcomeStalemate
		out.Text = fmt.Sprintf("Partial Failure: Negotiation ended in stalemate. Insufficient consensus or influence reached (Support: %d/%d, Influence: %d/%d, Climate: %d).",
			supporters, total, supporterInfluence, totalInfluence, climate)
	}
	return out
}
