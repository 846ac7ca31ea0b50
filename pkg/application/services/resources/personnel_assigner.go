package resources

import (
	"errors"
	"sort"
	"time"

	"github.com/shopsched/shopsched/pkg/domain/entities"
)

// ErrNoEligiblePersonnel means no person in the roster can perform the
// requested kind of work.
var ErrNoEligiblePersonnel = errors.New("no eligible personnel")

// Assigner picks setup and production people for scheduled work. Candidate
// order is fixed up front so repeated runs over the same roster always
// assign the same people.
type Assigner struct {
	setupCandidates      []entities.PersonnelProfile
	productionCandidates []entities.PersonnelProfile
}

// NewAssigner creates an assigner over the parsed personnel profiles.
func NewAssigner(profiles []entities.PersonnelProfile) *Assigner {
	a := &Assigner{}
	for _, profile := range profiles {
		if profile.SetupEligible {
			a.setupCandidates = append(a.setupCandidates, profile)
		}
		if profile.ProductionEligible {
			a.productionCandidates = append(a.productionCandidates, profile)
		}
	}
	sort.SliceStable(a.setupCandidates, func(i, j int) bool {
		if a.setupCandidates[i].SetupPriority != a.setupCandidates[j].SetupPriority {
			return a.setupCandidates[i].SetupPriority < a.setupCandidates[j].SetupPriority
		}
		return a.setupCandidates[i].Name < a.setupCandidates[j].Name
	})
	sort.SliceStable(a.productionCandidates, func(i, j int) bool {
		return a.productionCandidates[i].Name < a.productionCandidates[j].Name
	})
	return a
}

// HasSetupCandidates reports whether anyone can perform setups.
func (a *Assigner) HasSetupCandidates() bool {
	return len(a.setupCandidates) > 0
}

// HasProductionCandidates reports whether anyone can run production.
func (a *Assigner) HasProductionCandidates() bool {
	return len(a.productionCandidates) > 0
}

// PickSetupPerson selects the setup person for work over the given interval.
// Preference order is setup priority then name; among candidates with the
// whole interval free the first in that order wins. When nobody is free the
// person whose conflict clears soonest is chosen along with that instant, so
// the caller can retime the work.
func (a *Assigner) PickSetupPerson(
	ledger *Ledger,
	iv entities.Interval,
) (entities.PersonnelProfile, time.Time, error) {
	return pickPerson(a.setupCandidates, func(candidate entities.PersonnelProfile) (time.Time, bool) {
		return ledger.PersonAvailableFor(candidate.UID, iv)
	})
}

// PickProductionPerson selects the production person for a run over the
// given interval, preferring name order among those with spare capacity.
// Double-mode runs only need half a person, so one operator may supervise
// two double-mode machines at once.
func (a *Assigner) PickProductionPerson(
	ledger *Ledger,
	iv entities.Interval,
	mode entities.HandleMode,
) (entities.PersonnelProfile, time.Time, error) {
	return pickPerson(a.productionCandidates, func(candidate entities.PersonnelProfile) (time.Time, bool) {
		return ledger.PersonAvailableForRun(candidate.UID, iv, mode)
	})
}

func pickPerson(
	candidates []entities.PersonnelProfile,
	availability func(entities.PersonnelProfile) (time.Time, bool),
) (entities.PersonnelProfile, time.Time, error) {
	if len(candidates) == 0 {
		return entities.PersonnelProfile{}, time.Time{}, ErrNoEligiblePersonnel
	}

	best := candidates[0]
	bestAt, ok := availability(best)
	if ok {
		return best, bestAt, nil
	}
	for _, candidate := range candidates[1:] {
		at, free := availability(candidate)
		if free {
			return candidate, at, nil
		}
		if at.Before(bestAt) {
			best = candidate
			bestAt = at
		}
	}

	// Everyone conflicts; hand back whoever clears soonest so the caller can
	// retime past the conflict.
	return best, bestAt, nil
}
