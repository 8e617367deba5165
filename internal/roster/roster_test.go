package roster

import (
	"testing"

	"github.com/talgya/townhall/internal/stance"
)

func testProfile() HumanProfile {
	return HumanProfile{Name: "Jordan Reyes", Age: 34, Gender: "Other", Backstory: "Longtime organizer."}
}

func TestGenerateRosterSize(t *testing.T) {
	g := NewGenerator(1)
	all, err := g.Generate(RoleDeveloper, testProfile())
	if err != nil {
		t.Fatal(err)
	}

	// 9 quota slots, one taken by the human: 8 AI + 1 human.
	if len(all) != 9 {
		t.Fatalf("roster size = %d, want 9", len(all))
	}

	humans := 0
	for _, p := range all {
		if p.IsHuman {
			humans++
		}
	}
	if humans != 1 {
		t.Fatalf("human count = %d, want 1", humans)
	}
}

func TestGenerateRoleQuotas(t *testing.T) {
	g := NewGenerator(2)
	all, err := g.Generate(RoleResident, testProfile())
	if err != nil {
		t.Fatal(err)
	}

	counts := map[RoleID]int{}
	for _, p := range all {
		counts[p.RoleID]++
	}

	for roleID, want := range Quota {
		if counts[roleID] != want {
			t.Errorf("role %s count = %d, want %d", roleID, counts[roleID], want)
		}
	}
}

func TestGenerateUniqueNamesAndIDs(t *testing.T) {
	g := NewGenerator(3)
	all, err := g.Generate(RoleCouncil, testProfile())
	if err != nil {
		t.Fatal(err)
	}

	names := map[string]bool{}
	ids := map[string]bool{}
	for _, p := range all {
		if p.IsHuman {
			continue
		}
		if names[p.Name] {
			t.Errorf("duplicate AI name %q", p.Name)
		}
		if ids[p.ID] {
			t.Errorf("duplicate participant id %q", p.ID)
		}
		names[p.Name] = true
		ids[p.ID] = true
	}
}

func TestGenerateInitialState(t *testing.T) {
	g := NewGenerator(4)
	all, err := g.Generate(RoleStudent, testProfile())
	if err != nil {
		t.Fatal(err)
	}

	for _, p := range all {
		if p.Stance != stance.FromScore(p.StanceScore) {
			t.Errorf("%s: stance %s diverged from score %d", p.ID, p.Stance, p.StanceScore)
		}
		if p.TrustValue != InitialTrust {
			t.Errorf("%s: trust = %d, want %d", p.ID, p.TrustValue, InitialTrust)
		}

		role := Roles[p.RoleID]
		if p.InfluenceWeight != role.InfluenceWeight {
			t.Errorf("%s: influence weight = %d, want %d", p.ID, p.InfluenceWeight, role.InfluenceWeight)
		}
		if p.Tokens != role.InitialTokens {
			t.Errorf("%s: tokens = %d, want %d", p.ID, p.Tokens, role.InitialTokens)
		}

		switch p.StanceScore {
		case InitialSupportScore, InitialNeutralScore, InitialOpposeScore:
		default:
			t.Errorf("%s: initial score %d not one of the fixed starting scores", p.ID, p.StanceScore)
		}

		if p.IsHuman {
			if p.MaxTokens != MaxHumanTokens {
				t.Errorf("human max tokens = %d, want %d", p.MaxTokens, MaxHumanTokens)
			}
			if p.StanceScore != InitialSupportScore {
				t.Errorf("human initial score = %d, want %d", p.StanceScore, InitialSupportScore)
			}
		} else {
			want := int(float64(role.InitialTokens) * MaxTokensFactor)
			if p.MaxTokens != want {
				t.Errorf("%s: max tokens = %d, want %d", p.ID, p.MaxTokens, want)
			}
		}
	}
}

func TestGenerateUnknownRole(t *testing.T) {
	g := NewGenerator(5)
	if _, err := g.Generate(RoleID("mayor"), testProfile()); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestSetStanceScoreClamps(t *testing.T) {
	p := &Participant{}
	p.SetStanceScore(130)
	if p.StanceScore != 100 || p.Stance != stance.Support {
		t.Fatalf("got score %d stance %s, want 100 Support", p.StanceScore, p.Stance)
	}
	p.AdjustStance(-250)
	if p.StanceScore != 0 || p.Stance != stance.Oppose {
		t.Fatalf("got score %d stance %s, want 0 Oppose", p.StanceScore, p.Stance)
	}
}

func TestAdjustTrustClamps(t *testing.T) {
	p := &Participant{TrustValue: 95}
	p.AdjustTrust(20)
	if p.TrustValue != 100 {
		t.Fatalf("trust = %d, want 100", p.TrustValue)
	}
	p.AdjustTrust(-300)
	if p.TrustValue != 0 {
		t.Fatalf("trust = %d, want 0", p.TrustValue)
	}
}
