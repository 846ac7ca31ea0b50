package entities

import "strings"

// Section represents the roster section a person was listed under
type Section int

const (
	ProductionSection Section = iota
	SetupSection
)

// String method for Section enum
func (s Section) String() string {
	if s == SetupSection {
		return "setup"
	}
	return "production"
}

// Setup priority tiers. Setup-section people rank first, leveled-up
// production people second; everyone else is unranked.
const (
	SetupPrioritySection = 1
	SetupPriorityLevelUp = 2
	SetupPriorityNone    = 99
)

// PersonnelProfile represents one person eligible for setup and/or
// production work. UID is the identity key; Name is the display name used
// on schedule rows.
type PersonnelProfile struct {
	UID                string
	Name               string
	SourceSection      Section
	LevelUp            int
	SetupEligible      bool
	ProductionEligible bool
	SetupPriority      int
}

// NewPersonnelProfile derives a profile from its section and level-up flag.
// A level-up flag of 1 grants cross-section eligibility.
func NewPersonnelProfile(uid, name string, section Section, levelUp int) PersonnelProfile {
	if levelUp != 1 {
		levelUp = 0
	}
	profile := PersonnelProfile{
		UID:           strings.TrimSpace(uid),
		Name:          strings.TrimSpace(name),
		SourceSection: section,
		LevelUp:       levelUp,
	}
	profile.SetupEligible = section == SetupSection || levelUp == 1
	profile.ProductionEligible = section == ProductionSection || levelUp == 1
	switch {
	case section == SetupSection:
		profile.SetupPriority = SetupPrioritySection
	case levelUp == 1:
		profile.SetupPriority = SetupPriorityLevelUp
	default:
		profile.SetupPriority = SetupPriorityNone
	}
	return profile
}

// Merge widens this profile's eligibility with another row referencing the
// same UID. Eligibility flags are OR'd, priority keeps the strongest rank,
// and a setup-section sighting wins the source section.
func (p *PersonnelProfile) Merge(other PersonnelProfile) {
	p.SetupEligible = p.SetupEligible || other.SetupEligible
	p.ProductionEligible = p.ProductionEligible || other.ProductionEligible
	if other.SetupPriority < p.SetupPriority {
		p.SetupPriority = other.SetupPriority
	}
	if other.LevelUp > p.LevelUp {
		p.LevelUp = other.LevelUp
	}
	if other.SourceSection == SetupSection {
		p.SourceSection = SetupSection
	}
}
