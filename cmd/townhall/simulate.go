package main

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/talgya/townhall/internal/engine"
	"github.com/talgya/townhall/internal/events"
	"github.com/talgya/townhall/internal/roster"
	"github.com/talgya/townhall/internal/stance"
)

// scriptedResponder stands in for the language service during offline
// simulation: every active AI answers with a canned line and a random
// bounded adjustment.
type scriptedResponder struct {
	rng *rand.Rand
}

func (r *scriptedResponder) RoundReplies(_ context.Context, participants []*roster.Participant, _ []engine.RoundRecord, _ string, _ int) []engine.Reply {
	var out []engine.Reply
	for _, p := range participants {
		if p.IsHuman || p.SkippedRound {
			continue
		}
		delta := r.rng.Intn(21) - 10
		out = append(out, engine.Reply{
			ParticipantID: p.ID,
			Dialogue:      fmt.Sprintf("%s responds in character (%+d).", p.Name, delta),
			NewScore:      stance.Clamp(p.StanceScore + delta),
		})
	}
	return out
}

func newSimulateCmd() *cobra.Command {
	var (
		role   string
		rounds int
		seed   int64
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run an offline negotiation with scripted AI responses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSimulate(cmd.Context(), roster.RoleID(role), rounds, seed)
		},
	}
	cmd.Flags().StringVar(&role, "role", string(roster.RoleDeveloper), "human role id")
	cmd.Flags().IntVar(&rounds, "rounds", engine.DefaultMaxRounds, "maximum rounds")
	cmd.Flags().Int64Var(&seed, "seed", 42, "random seed")
	return cmd
}

func runSimulate(ctx context.Context, role roster.RoleID, rounds int, seed int64) error {
	gen := roster.NewGenerator(seed)
	participants, err := gen.Generate(role, roster.HumanProfile{
		Name:      "The Player",
		Backstory: "Scripted simulation run.",
	})
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(seed + 1))
	injector := events.NewInjector(rng)
	eng := engine.New(injector, &scriptedResponder{rng: rand.New(rand.NewSource(seed + 2))})
	session := engine.NewSession("simulation", role, participants, rounds)

	fmt.Printf("Simulating %d rounds as %s (seed %d)\n\n", rounds, roster.Roles[role].Name, seed)

	statement := "We can find a balanced path forward if every party names its single most important condition and we negotiate from there."
	for !session.Concluded() {
		session.Human().Tokens = roster.MaxHumanTokens // keep the script talking

		res, err := eng.SubmitStatement(ctx, session, statement)
		if err != nil {
			return err
		}

		fmt.Printf("--- Round %d ---\n", res.Record.Round)
		if res.EventText != "" {
			fmt.Println(res.EventText)
		}
		for _, st := range res.Record.Statements {
			p := roster.FindByID(session.Participants, st.ParticipantID)
			fmt.Printf("%s: %s\n", p.Name, st.Text)
		}
		fmt.Printf("Climate: %d/100\n\n", session.Climate)
	}

	fmt.Println(session.Outcome.Text)
	return nil
}
