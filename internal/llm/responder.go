package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/talgya/townhall/internal/engine"
	"github.com/talgya/townhall/internal/roster"
	"github.com/talgya/townhall/internal/stance"
)

const (
	// ScoreDelimiter is the line prefix that splits a reply into dialogue
	// and a stance-adjustment suggestion.
	ScoreDelimiter = "SCORE_CHANGE:"

	// Adjustment suggestions outside [MinAdjust, MaxAdjust] are treated as
	// malformed and default to zero.
	MinAdjust = -10
	MaxAdjust = 10

	replyMaxTokens = 120
	callTimeout    = 15 * time.Second
)

// Responder is the response orchestrator: for every AI participant not
// sitting out, it builds a role- and history-aware prompt, requests a short
// reply plus a stance adjustment, and returns the dialogue and new clamped
// score. It never fails a round: any transport or parse problem degrades to
// a placeholder line with a zero adjustment.
type Responder struct {
	client *Client
}

// NewResponder creates the orchestrator around a client (which may be nil).
func NewResponder(client *Client) *Responder {
	return &Responder{client: client}
}

// RoundReplies generates one reply per active AI participant, sequentially.
// All participants get a result — real or placeholder — before it returns.
func (r *Responder) RoundReplies(ctx context.Context, participants []*roster.Participant, history []engine.RoundRecord, statement string, climate int) []engine.Reply {
	var replies []engine.Reply

	for _, p := range participants {
		if p.IsHuman {
			continue
		}
		if p.SkippedRound {
			slog.Debug("participant sitting out", "participant", p.ID)
			continue
		}
		replies = append(replies, r.replyFor(ctx, p, participants, history, statement, climate))
	}
	return replies
}

func (r *Responder) replyFor(ctx context.Context, p *roster.Participant, participants []*roster.Participant, history []engine.RoundRecord, statement string, climate int) engine.Reply {
	callCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	system := buildSystemPrompt(p, participants, history, statement, climate)
	raw, err := r.client.Complete(callCtx, system, "Respond now as "+p.Name+".", replyMaxTokens)
	if err != nil {
		slog.Warn("reply generation failed, using placeholder", "participant", p.ID, "error", err)
		return engine.Reply{
			ParticipantID: p.ID,
			Dialogue:      placeholderFor(p),
			NewScore:      p.StanceScore,
		}
	}

	dialogue, adjust := ParseReply(raw)
	return engine.Reply{
		ParticipantID: p.ID,
		Dialogue:      dialogue,
		NewScore:      stance.Clamp(p.StanceScore + adjust),
	}
}

// ParseReply splits a raw reply into a dialogue line and a stance adjustment.
// The text must split into exactly two parts on the delimiter line, with the
// second part a signed integer in [-10, 10]; anything else keeps the full raw
// text as dialogue with a zero adjustment.
func ParseReply(raw string) (string, int) {
	raw = strings.TrimSpace(raw)

	parts := strings.Split(raw, "\n"+ScoreDelimiter)
	if len(parts) != 2 {
		return raw, 0
	}

	adjust, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || adjust < MinAdjust || adjust > MaxAdjust {
		return raw, 0
	}
	return strings.TrimSpace(parts[0]), adjust
}

// placeholderFor is the fixed fallback dialogue when generation fails.
func placeholderFor(p *roster.Participant) string {
	return fmt.Sprintf("(%s listens quietly, weighing the discussion.)", p.Name)
}

// buildSystemPrompt assembles the full per-participant context: role
// identity, objective, current numeric stance, the speaker-attributed
// transcript, and the human's latest statement.
func buildSystemPrompt(p *roster.Participant, participants []*roster.Participant, history []engine.RoundRecord, statement string, climate int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are participating in a town hall negotiation about a new development project. ")
	fmt.Fprintf(&b, "You are %s, a %s. ", p.Name, p.RoleName)
	fmt.Fprintf(&b, "Your specific objective is: %s. ", p.Backstory)
	fmt.Fprintf(&b, "Your current stance score towards the main proposal is: %d/100 (%s). Higher means more supportive. ",
		p.StanceScore, stance.FromScore(p.StanceScore))
	fmt.Fprintf(&b, "The overall negotiation climate is %d/100.\n", climate)
	b.WriteString("Consider your role, objectives, and the dialogue history. ")
	b.WriteString("Respond naturally to the latest statement(s) in the conversation. Keep your response concise (1-3 sentences).\n")
	fmt.Fprintf(&b, "IMPORTANT: After your dialogue, on a NEW LINE, add a score adjustment based on how the latest statement(s) affected your stance. Format EXACTLY as '%s +/-value' (e.g. %s +5, %s -3, %s 0). The value must be between %d and %d.\n",
		ScoreDelimiter, ScoreDelimiter, ScoreDelimiter, ScoreDelimiter, MinAdjust, MaxAdjust)

	b.WriteString(formatTranscript(history, participants))
	fmt.Fprintf(&b, "The player has just said: %q.\n", statement)
	return b.String()
}

// formatTranscript renders the dialogue history as speaker-attributed lines.
func formatTranscript(history []engine.RoundRecord, participants []*roster.Participant) string {
	var b strings.Builder
	b.WriteString("\nDialogue History:\n")
	if len(history) == 0 {
		b.WriteString("No discussion yet.\n")
		return b.String()
	}

	names := make(map[string]string, len(participants))
	for _, p := range participants {
		names[p.ID] = p.Name
	}

	for _, rec := range history {
		fmt.Fprintf(&b, "--- Round %d ---\n", rec.Round)
		for _, st := range rec.Statements {
			name := names[st.ParticipantID]
			if name == "" {
				name = "Unknown"
			}
			fmt.Fprintf(&b, "%s: %s\n", name, st.Text)
		}
		b.WriteString("---\n")
	}
	return b.String()
}
