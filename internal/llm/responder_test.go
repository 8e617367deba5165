package llm

import (
	"context"
	"strings"
	"testing"

	"github.com/talgya/townhall/internal/engine"
	"github.com/talgya/townhall/internal/roster"
)

func TestParseReplyWellFormed(t *testing.T) {
	cases := []struct {
		name   string
		raw    string
		text   string
		adjust int
	}{
		{"positive", "I can support that.\nSCORE_CHANGE: +5", "I can support that.", 5},
		{"negative", "That worries me.\nSCORE_CHANGE: -3", "That worries me.", -3},
		{"zero", "Noted.\nSCORE_CHANGE: 0", "Noted.", 0},
		{"bounds low", "Hm.\nSCORE_CHANGE: -10", "Hm.", -10},
		{"bounds high", "Great.\nSCORE_CHANGE: +10", "Great.", 10},
		{"multiline dialogue", "First thought.\nSecond thought.\nSCORE_CHANGE: 4", "First thought.\nSecond thought.", 4},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			text, adjust := ParseReply(c.raw)
			if text != c.text || adjust != c.adjust {
				t.Errorf("ParseReply(%q) = (%q, %d), want (%q, %d)", c.raw, text, adjust, c.text, c.adjust)
			}
		})
	}
}

func TestParseReplyDegradesToZero(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"no delimiter", "I simply cannot agree with this proposal."},
		{"bad integer", "Fine.\nSCORE_CHANGE: plenty"},
		{"empty value", "Fine.\nSCORE_CHANGE: "},
		{"above range", "Fine.\nSCORE_CHANGE: +25"},
		{"below range", "Fine.\nSCORE_CHANGE: -11"},
		{"double delimiter", "A.\nSCORE_CHANGE: 1\nSCORE_CHANGE: 2"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			text, adjust := ParseReply(c.raw)
			if adjust != 0 {
				t.Errorf("adjust = %d, want 0", adjust)
			}
			// The full raw text survives as the dialogue.
			if text != strings.TrimSpace(c.raw) {
				t.Errorf("dialogue = %q, want full raw text", text)
			}
		})
	}
}

func TestRoundRepliesFallsBackWithoutClient(t *testing.T) {
	r := NewResponder(nil)
	g := roster.NewGenerator(21)
	all, err := g.Generate(roster.RoleCouncil, roster.HumanProfile{Name: "Sam"})
	if err != nil {
		t.Fatal(err)
	}
	all[0].SkippedRound = !all[0].IsHuman // one AI may sit out

	replies := r.RoundReplies(context.Background(), all, nil, "We should talk terms before anything is signed here today.", 50)

	active := 0
	for _, p := range all {
		if !p.IsHuman && !p.SkippedRound {
			active++
		}
	}
	if len(replies) != active {
		t.Fatalf("replies = %d, want %d", len(replies), active)
	}

	for _, rep := range replies {
		p := roster.FindByID(all, rep.ParticipantID)
		if rep.NewScore != p.StanceScore {
			t.Errorf("%s: fallback changed score %d -> %d", p.ID, p.StanceScore, rep.NewScore)
		}
		if !strings.Contains(rep.Dialogue, p.Name) {
			t.Errorf("%s: placeholder %q missing participant name", p.ID, rep.Dialogue)
		}
	}
}

func TestBuildSystemPromptContent(t *testing.T) {
	g := roster.NewGenerator(22)
	all, err := g.Generate(roster.RoleDeveloper, roster.HumanProfile{Name: "Sam"})
	if err != nil {
		t.Fatal(err)
	}
	human := roster.Human(all)

	var ai *roster.Participant
	for _, p := range all {
		if !p.IsHuman {
			ai = p
			break
		}
	}

	history := []engine.RoundRecord{{
		Round: 1,
		Statements: []engine.Statement{
			{ParticipantID: human.ID, Text: "Opening remarks."},
			{ParticipantID: ai.ID, Text: "A reply."},
		},
	}}

	prompt := buildSystemPrompt(ai, all, history, "Latest statement here.", 42)

	for _, want := range []string{
		ai.Name,
		ai.RoleName,
		ai.Backstory,
		"Round 1",
		human.Name + ": Opening remarks.",
		ai.Name + ": A reply.",
		"Latest statement here.",
		ScoreDelimiter,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestFormatTranscriptEmpty(t *testing.T) {
	out := formatTranscript(nil, nil)
	if !strings.Contains(out, "No discussion yet.") {
		t.Errorf("empty transcript = %q", out)
	}
}
