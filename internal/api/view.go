package api

import (
	"github.com/dustin/go-humanize"

	"github.com/talgya/townhall/internal/engine"
	"github.com/talgya/townhall/internal/persistence"
)

// GameView is the full per-action state the presentation layer renders:
// roster with derived categories, round progress, climate, transcript,
// outcome, and the influence-action cost table.
type GameView struct {
	ID        string `json:"id"`
	Round     int    `json:"round"`
	MaxRounds int    `json:"max_rounds"`
	Climate   int    `json:"climate"`

	Participants []participantView    `json:"participants"`
	History      []engine.RoundRecord `json:"history"`
	LastEvent    string               `json:"last_event,omitempty"`
	Outcome      *engine.Outcome      `json:"outcome,omitempty"`
	Actions      []engine.Action      `json:"actions"`
}

type participantView struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	RoleID         string `json:"role_id"`
	RoleName       string `json:"role_name"`
	IsHuman        bool   `json:"is_human"`
	StanceScore    int    `json:"stance_score"`
	Stance         string `json:"stance"`
	PreviousStance string `json:"previous_stance,omitempty"`
	TrustValue     int    `json:"trust_value"`
	Tokens         int    `json:"influence_tokens"`
	MaxTokens      int    `json:"max_tokens"`
	SkippedRound   bool   `json:"skipped_round,omitempty"`
}

func gameView(s *engine.Session) GameView {
	view := GameView{
		ID:        s.ID,
		Round:     s.Round,
		MaxRounds: s.MaxRounds,
		Climate:   s.Climate,
		History:   s.History,
		LastEvent: s.LastEvent,
		Outcome:   s.Outcome,
		Actions:   actionTable(),
	}
	for _, p := range s.Participants {
		view.Participants = append(view.Participants, participantView{
			ID:             p.ID,
			Name:           p.Name,
			RoleID:         string(p.RoleID),
			RoleName:       p.RoleName,
			IsHuman:        p.IsHuman,
			StanceScore:    p.StanceScore,
			Stance:         string(p.Stance),
			PreviousStance: string(p.PrevStance),
			TrustValue:     p.TrustValue,
			Tokens:         p.Tokens,
			MaxTokens:      p.MaxTokens,
			SkippedRound:   p.SkippedRound,
		})
	}
	return view
}

// actionTable returns the influence-action catalog in a fixed display order.
func actionTable() []engine.Action {
	ids := []engine.ActionID{
		engine.ActionGentlePersuasion,
		engine.ActionStrongPersuasion,
		engine.ActionAllyRecruitment,
		engine.ActionPressureOpponent,
		engine.ActionProxySpeaking,
	}
	out := make([]engine.Action, 0, len(ids))
	for _, id := range ids {
		out = append(out, engine.Actions[id])
	}
	return out
}

// influenceView pairs an influence result with the refreshed game state.
type influenceView struct {
	Result *engine.InfluenceResult `json:"result"`
	Game   GameView                `json:"game"`
}

func newInfluenceView(s *engine.Session, res *engine.InfluenceResult) influenceView {
	return influenceView{Result: res, Game: gameView(s)}
}

// sessionSummary is one row of the session listing.
type sessionSummary struct {
	ID      string `json:"id"`
	Updated string `json:"updated"`
}

func sessionList(infos []persistence.SessionInfo) []sessionSummary {
	out := make([]sessionSummary, 0, len(infos))
	for _, info := range infos {
		out = append(out, sessionSummary{
			ID:      info.ID,
			Updated: humanize.Time(info.UpdatedAt),
		})
	}
	return out
}
