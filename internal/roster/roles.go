package roster

import "github.com/talgya/townhall/internal/stance"

// RoleID identifies one of the fixed negotiation role categories.
type RoleID string

const (
	RoleDeveloper RoleID = "developer"
	RoleResident  RoleID = "local_resident"
	RoleCouncil   RoleID = "council_member"
	RoleStudent   RoleID = "student_representative"
)

// Role holds the static definition of a negotiation role: its public
// description, objective, outcome-resolution weight, and starting resources.
// Loaded once, never mutated at runtime.
type Role struct {
	ID          RoleID `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Objective   string `json:"objective"`
	Influence   string `json:"influence"`

	// InfluenceWeight is used only by the outcome resolver.
	InfluenceWeight int `json:"influence_weight"`

	// InitialTokens is the starting influence-token balance for the role.
	InitialTokens int `json:"initial_tokens"`

	// StanceWeights maps an initial stance category to its selection weight
	// when rolling a fresh AI participant of this role.
	StanceWeights map[stance.Category]int `json:"-"`
}

// Quota is the number of roster slots each role fills in a ten-seat
// negotiation. The human's chosen role gives up one slot.
var Quota = map[RoleID]int{
	RoleDeveloper: 2,
	RoleResident:  3,
	RoleStudent:   2,
	RoleCouncil:   2,
}

// Roles is the fixed role catalog.
var Roles = map[RoleID]Role{
	RoleDeveloper: {
		ID:              RoleDeveloper,
		Name:            "Developer",
		Description:     "Represents the company planning the new development project.",
		Objective:       "Maximize profit while meeting minimum regulatory requirements.",
		Influence:       "Significant financial backing, technical expertise.",
		InfluenceWeight: 2,
		InitialTokens:   6,
		StanceWeights:   map[stance.Category]int{stance.Support: 8, stance.Neutral: 2},
	},
	RoleResident: {
		ID:              RoleResident,
		Name:            "Local Resident",
		Description:     "Lives in the neighborhood affected by the development.",
		Objective:       "Preserve community character, minimize disruption, ensure fair compensation.",
		Influence:       "Community support, personal stakes.",
		InfluenceWeight: 1,
		InitialTokens:   2,
		StanceWeights:   map[stance.Category]int{stance.Oppose: 6, stance.Neutral: 4},
	},
	RoleCouncil: {
		ID:              RoleCouncil,
		Name:            "Council Member",
		Description:     "An elected official responsible for representing constituent interests.",
		Objective:       "Balance development benefits with community impact, uphold regulations.",
		Influence:       "Political network, regulatory power.",
		InfluenceWeight: 3,
		InitialTokens:   5,
		StanceWeights:   map[stance.Category]int{stance.Neutral: 7, stance.Support: 2, stance.Oppose: 1},
	},
	RoleStudent: {
		ID:              RoleStudent,
		Name:            "Student Representative",
		Description:     "Advocates for student housing and campus-related needs.",
		Objective:       "Secure affordable housing options, improve campus accessibility.",
		Influence:       "Represents a large demographic, potential for mobilization.",
		InfluenceWeight: 1,
		InitialTokens:   3,
		StanceWeights:   map[stance.Category]int{stance.Neutral: 5, stance.Support: 4, stance.Oppose: 1},
	},
}

// Valid reports whether id names a catalogued role.
func Valid(id RoleID) bool {
	_, ok := Roles[id]
	return ok
}

// namePool holds the display names AI participants draw from, without
// replacement, when a roster is generated.
var namePool = []string{
	"Alex Johnson", "Maria Garcia", "Chen Li", "Sam Williams", "Fatima Ahmed",
	"David Smith", "Sophia Dubois", "Kenji Tanaka", "Olivia Brown", "Mohammed Khan",
	"Isabelle Moreau", "Ben Carter", "Chloe Davis", "Raj Patel", "Zoe Miller",
}
