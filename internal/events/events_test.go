package events

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/talgya/townhall/internal/roster"
	"github.com/talgya/townhall/internal/stance"
)

func testRoster(t *testing.T) []*roster.Participant {
	t.Helper()
	g := roster.NewGenerator(7)
	all, err := g.Generate(roster.RoleDeveloper, roster.HumanProfile{Name: "Sam"})
	if err != nil {
		t.Fatal(err)
	}
	return all
}

func single(ev Event) []Event { return []Event{ev} }

func TestRollNoFire(t *testing.T) {
	in := NewInjectorWithCatalog(rand.New(rand.NewSource(1)), 0, Catalog)
	all := testRoster(t)

	res, climate := in.Roll(all, 50, 1)
	if res != nil {
		t.Fatal("event fired at zero probability")
	}
	if climate != 50 {
		t.Fatalf("climate changed to %d without an event", climate)
	}
}

func TestRollAllTarget(t *testing.T) {
	ev := Event{ID: "boost", Text: "boost", Target: TargetAll, StanceDelta: 10, ClimateDelta: 10}
	in := NewInjectorWithCatalog(rand.New(rand.NewSource(1)), 1, single(ev))
	all := testRoster(t)

	before := map[string]int{}
	for _, p := range all {
		before[p.ID] = p.StanceScore
	}

	res, climate := in.Roll(all, 95, 3)
	if res == nil {
		t.Fatal("event did not fire at probability 1")
	}
	if climate != 100 {
		t.Fatalf("climate = %d, want clamped 100", climate)
	}
	if len(res.AffectedID) != len(all) {
		t.Fatalf("affected %d participants, want %d", len(res.AffectedID), len(all))
	}
	if !strings.Contains(res.Annotation, "Round 3") {
		t.Errorf("annotation %q missing round number", res.Annotation)
	}

	for _, p := range all {
		want := stance.Clamp(before[p.ID] + 10)
		if p.StanceScore != want {
			t.Errorf("%s: score = %d, want %d", p.ID, p.StanceScore, want)
		}
		if p.Stance != stance.FromScore(p.StanceScore) {
			t.Errorf("%s: category not re-derived", p.ID)
		}
	}
}

func TestRollRoleTarget(t *testing.T) {
	ev := Event{ID: "scandal", Text: "scandal", Target: TargetRole, RoleID: roster.RoleResident, StanceDelta: -15, ClimateDelta: -5}
	in := NewInjectorWithCatalog(rand.New(rand.NewSource(2)), 1, single(ev))
	all := testRoster(t)

	before := map[string]int{}
	for _, p := range all {
		before[p.ID] = p.StanceScore
	}

	_, climate := in.Roll(all, 50, 1)
	if climate != 45 {
		t.Fatalf("climate = %d, want 45", climate)
	}

	for _, p := range all {
		want := before[p.ID]
		if p.RoleID == roster.RoleResident {
			want = stance.Clamp(want - 15)
		}
		if p.StanceScore != want {
			t.Errorf("%s (%s): score = %d, want %d", p.ID, p.RoleID, p.StanceScore, want)
		}
	}
}

func TestRollRoleSpecificSkip(t *testing.T) {
	ev := Event{ID: "emergency", Text: "emergency", Target: TargetOne, RoleID: roster.RoleResident, SkipRound: true}
	in := NewInjectorWithCatalog(rand.New(rand.NewSource(3)), 1, single(ev))
	all := testRoster(t)

	res, _ := in.Roll(all, 50, 2)
	if res == nil {
		t.Fatal("event did not fire")
	}
	if len(res.AffectedID) != 1 {
		t.Fatalf("affected %d participants, want exactly 1", len(res.AffectedID))
	}

	skipped := 0
	for _, p := range all {
		if p.SkippedRound {
			skipped++
			if p.RoleID != roster.RoleResident {
				t.Errorf("skipped participant %s has role %s", p.ID, p.RoleID)
			}
		}
	}
	if skipped != 1 {
		t.Fatalf("skipped count = %d, want 1", skipped)
	}
}

func TestRollRoleSpecificNoEligible(t *testing.T) {
	ev := Event{ID: "emergency", Text: "emergency", Target: TargetOne, RoleID: roster.RoleResident, SkipRound: true, ClimateDelta: -5}
	in := NewInjectorWithCatalog(rand.New(rand.NewSource(4)), 1, single(ev))
	all := testRoster(t)

	// Everyone in the target role is already sitting out.
	for _, p := range all {
		if p.RoleID == roster.RoleResident {
			p.SkippedRound = true
		}
	}

	res, climate := in.Roll(all, 50, 1)
	if res == nil {
		t.Fatal("event did not fire")
	}
	if len(res.AffectedID) != 0 {
		t.Fatalf("affected %d participants, want 0", len(res.AffectedID))
	}
	// Climate delta still applies.
	if climate != 45 {
		t.Fatalf("climate = %d, want 45", climate)
	}
}

func TestCatalogTargetsAreValid(t *testing.T) {
	for _, ev := range Catalog {
		switch ev.Target {
		case TargetAll:
			if ev.RoleID != "" {
				t.Errorf("%s: all-target event names a role", ev.ID)
			}
		case TargetRole, TargetOne:
			if !roster.Valid(ev.RoleID) {
				t.Errorf("%s: unknown role %q", ev.ID, ev.RoleID)
			}
		default:
			t.Errorf("%s: unknown target %q", ev.ID, ev.Target)
		}
		if ev.SkipRound && ev.Target != TargetOne {
			t.Errorf("%s: skip_round outside role_specific targeting", ev.ID)
		}
	}
}
