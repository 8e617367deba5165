package roster

import (
	"fmt"
	"math/rand"

	"github.com/talgya/townhall/internal/stance"
)

// HumanProfile is the customization data the human supplies at game start.
type HumanProfile struct {
	Name          string `json:"name"`
	Age           int    `json:"age"`
	Gender        string `json:"gender"`
	LocalBorn     string `json:"local_born"`
	HasChildren   string `json:"has_children"`
	NumChildren   int    `json:"num_children"`
	MaritalStatus string `json:"marital_status"`
	Backstory     string `json:"backstory"`
}

// Generator builds negotiation rosters from a seeded random source.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a roster generator with the given seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Generate builds the full shuffled roster for a negotiation: the human in
// their chosen role plus AI participants filling the remaining role quotas.
// The shuffle is cosmetic; every later computation walks the whole roster.
func (g *Generator) Generate(humanRole RoleID, profile HumanProfile) ([]*Participant, error) {
	if !Valid(humanRole) {
		return nil, fmt.Errorf("unknown role %q", humanRole)
	}

	all := append(g.generateOpponents(humanRole), g.newHuman(humanRole, profile))
	g.rng.Shuffle(len(all), func(i, j int) {
		all[i], all[j] = all[j], all[i]
	})
	return all, nil
}

// newHuman builds the human participant. Humans start supportive of their
// own goal.
func (g *Generator) newHuman(roleID RoleID, profile HumanProfile) *Participant {
	role := Roles[roleID]
	p := &Participant{
		ID:              "player_0",
		RoleID:          roleID,
		RoleName:        role.Name,
		Name:            profile.Name,
		IsHuman:         true,
		TrustValue:      InitialTrust,
		InfluenceWeight: role.InfluenceWeight,
		Tokens:          role.InitialTokens,
		MaxTokens:       MaxHumanTokens,
		Age:             profile.Age,
		Gender:          profile.Gender,
		LocalBorn:       profile.LocalBorn,
		HasChildren:     profile.HasChildren,
		NumChildren:     profile.NumChildren,
		MaritalStatus:   profile.MaritalStatus,
		Backstory:       profile.Backstory,
	}
	p.SetStanceScore(InitialSupportScore)
	return p
}

// generateOpponents fills every role quota with AI participants, leaving one
// slot open in the human's role.
func (g *Generator) generateOpponents(humanRole RoleID) []*Participant {
	counts := make(map[RoleID]int, len(Quota))
	for id, n := range Quota {
		counts[id] = n
	}
	if counts[humanRole] > 0 {
		counts[humanRole]--
	}

	names := g.drawNames()
	var opponents []*Participant
	next := 1

	// Fixed role order keeps IDs stable for a given seed.
	for _, roleID := range []RoleID{RoleDeveloper, RoleResident, RoleStudent, RoleCouncil} {
		role := Roles[roleID]
		for i := 0; i < counts[roleID]; i++ {
			p := g.newOpponent(next, role, names[len(opponents)])
			opponents = append(opponents, p)
			next++
		}
	}
	return opponents
}

func (g *Generator) newOpponent(n int, role Role, name string) *Participant {
	hasChildren := g.pick("Yes", "No")
	numChildren := 0
	if hasChildren == "Yes" {
		numChildren = 1 + g.rng.Intn(4)
	}

	p := &Participant{
		ID:              fmt.Sprintf("ai_%d", n),
		RoleID:          role.ID,
		RoleName:        role.Name,
		Name:            name,
		TrustValue:      InitialTrust,
		InfluenceWeight: role.InfluenceWeight,
		Tokens:          role.InitialTokens,
		MaxTokens:       int(float64(role.InitialTokens) * MaxTokensFactor),
		Age:             20 + g.rng.Intn(51),
		Gender:          g.pick("Male", "Female", "Other"),
		LocalBorn:       g.pick("Yes", "No"),
		HasChildren:     hasChildren,
		NumChildren:     numChildren,
		MaritalStatus:   g.pick("Single", "Married", "Other"),
		Backstory:       "Objective: " + role.Objective,
	}
	p.SetStanceScore(initialScoreFor(g.rollStance(role)))
	return p
}

// rollStance picks an initial stance category using the role's weights.
func (g *Generator) rollStance(role Role) stance.Category {
	// Walk categories in a fixed order so the draw is seed-deterministic.
	order := []stance.Category{stance.Support, stance.Neutral, stance.Oppose}

	total := 0
	for _, c := range order {
		total += role.StanceWeights[c]
	}
	if total == 0 {
		return stance.Neutral
	}

	roll := g.rng.Intn(total)
	for _, c := range order {
		roll -= role.StanceWeights[c]
		if roll < 0 {
			return c
		}
	}
	return stance.Neutral
}

// drawNames returns the name pool in a shuffled order (draw without replacement).
func (g *Generator) drawNames() []string {
	names := make([]string, len(namePool))
	copy(names, namePool)
	g.rng.Shuffle(len(names), func(i, j int) {
		names[i], names[j] = names[j], names[i]
	})
	return names
}

func (g *Generator) pick(options ...string) string {
	return options[g.rng.Intn(len(options))]
}
