// Package events provides the per-round micro-event injector: a probabilistic
// draw from a fixed catalog of scripted perturbations to stances, climate,
// and participation.
package events

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/talgya/townhall/internal/roster"
	"github.com/talgya/townhall/internal/stance"
)

// TriggerProbability is the chance a micro-event fires in a given round.
const TriggerProbability = 0.25

// Target selects which participants an event's stance effect applies to.
type Target string

const (
	TargetAll  Target = "all"           // every participant
	TargetRole Target = "role"          // every participant of RoleID
	TargetOne  Target = "role_specific" // one random not-yet-skipped participant of RoleID
)

// Event is one catalogued micro-event.
type Event struct {
	ID   string
	Text string

	Target Target
	RoleID roster.RoleID

	StanceDelta  int
	ClimateDelta int

	// SkipRound marks the resolved participant as sitting out the current
	// round. Only meaningful with TargetOne.
	SkipRound bool
}

// Catalog is the fixed micro-event table. Loaded once, never mutated.
var Catalog = []Event{
	{
		ID:           "newspaper_scandal",
		Text:         "Islington Daily exposes potential irregularities in the developer's past projects! Public trust wavers.",
		Target:       TargetRole,
		RoleID:       roster.RoleResident,
		StanceDelta:  -15,
		ClimateDelta: -5,
	},
	{
		ID:           "student_subsidy",
		Text:         "The city government announces a surprise student housing subsidy program, boosting student optimism!",
		Target:       TargetRole,
		RoleID:       roster.RoleStudent,
		StanceDelta:  15,
		ClimateDelta: 5,
	},
	{
		ID:        "resident_emergency",
		Text:      "A key Local Resident representative has a sudden family emergency and must skip this round's discussion.",
		Target:    TargetOne,
		RoleID:    roster.RoleResident,
		SkipRound: true,
	},
	{
		ID:           "unexpected_endorsement",
		Text:         "A respected independent urban planning group unexpectedly endorses the project's core ideas!",
		Target:       TargetAll,
		StanceDelta:  10,
		ClimateDelta: 10,
	},
	{
		ID:           "developer_concession",
		Text:         "The Developer offers a minor concession regarding green spaces in the plan.",
		Target:       TargetRole,
		RoleID:       roster.RoleDeveloper,
		StanceDelta:  5,
		ClimateDelta: 5,
	},
	{
		ID:           "budget_cuts_rumor",
		Text:         "Rumors circulate about potential city budget cuts impacting infrastructure needed for the project.",
		Target:       TargetAll,
		StanceDelta:  -5,
		ClimateDelta: -10,
	},
}

// Result describes a fired event and its resolved effects.
type Result struct {
	Event      Event
	Annotation string
	Climate    int      // climate after the event's delta, clamped
	AffectedID []string // participants whose stance or skip flag changed
}

// Injector rolls and applies at most one micro-event per round.
type Injector struct {
	rng         *rand.Rand
	probability float64
	catalog     []Event
}

// NewInjector creates an injector drawing from the fixed catalog.
func NewInjector(rng *rand.Rand) *Injector {
	return &Injector{rng: rng, probability: TriggerProbability, catalog: Catalog}
}

// NewInjectorWithCatalog creates an injector with a custom probability and
// catalog, used by tests and the offline simulator.
func NewInjectorWithCatalog(rng *rand.Rand, probability float64, catalog []Event) *Injector {
	return &Injector{rng: rng, probability: probability, catalog: catalog}
}

// Roll draws the per-round event check. If an event fires it is applied to the
// roster and climate in place (stances clamped, categories re-derived, skip
// flags set) and a Result is returned; otherwise Roll returns nil. The climate
// delta always applies on a fired event, even when no participant-level target
// is eligible.
func (in *Injector) Roll(participants []*roster.Participant, climate, round int) (*Result, int) {
	if len(in.catalog) == 0 || in.rng.Float64() >= in.probability {
		return nil, climate
	}

	ev := in.catalog[in.rng.Intn(len(in.catalog))]
	res := &Result{
		Event:      ev,
		Annotation: fmt.Sprintf("Event Occurred (Round %d): %s", round, ev.Text),
	}

	climate = stance.Clamp(climate + ev.ClimateDelta)
	res.Climate = climate

	for _, p := range in.resolveTargets(ev, participants) {
		if ev.StanceDelta != 0 {
			p.AdjustStance(ev.StanceDelta)
		}
		if ev.SkipRound && ev.Target == TargetOne {
			p.SkippedRound = true
		}
		res.AffectedID = append(res.AffectedID, p.ID)
	}

	slog.Info("micro-event fired",
		"event", ev.ID,
		"round", round,
		"climate", climate,
		"affected", len(res.AffectedID),
	)
	return res, climate
}

// resolveTargets returns the participants the event's stance/skip effects
// apply to. A TargetOne event with no eligible member resolves to nobody.
func (in *Injector) resolveTargets(ev Event, participants []*roster.Participant) []*roster.Participant {
	switch ev.Target {
	case TargetAll:
		return participants
	case TargetRole:
		var out []*roster.Participant
		for _, p := range participants {
			if p.RoleID == ev.RoleID {
				out = append(out, p)
			}
		}
		return out
	case TargetOne:
		var eligible []*roster.Participant
		for _, p := range participants {
			if p.RoleID == ev.RoleID && !p.SkippedRound {
				eligible = append(eligible, p)
			}
		}
		if len(eligible) == 0 {
			return nil
		}
		return []*roster.Participant{eligible[in.rng.Intn(len(eligible))]}
	}
	return nil
}
