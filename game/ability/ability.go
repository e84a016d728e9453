// Package ability provides the capability attachments corporations and
// companies carry, with a minimal remaining-use lifecycle: each use
// decrements the counter, and an ability that runs out detaches from its
// owner. What a use actually does is up to the ability's kind and the
// game-rule code that interprets it.
package ability

import "errors"

var ErrExhausted = errors.New("ability has no uses left")

// Kind tags what an ability does; interpretation lives in game-rule code.
type Kind string

// Owner is anything abilities can attach to.
type Owner interface {
	// RemoveAbility detaches the ability from the owner's list.
	RemoveAbility(a *Ability)
}

// Ability is a capability attached to an owner, optionally limited to a
// number of uses.
type Ability struct {
	Kind        Kind
	Description string

	// Remaining is the use counter. Nil means unlimited.
	Remaining *int

	owner Owner
}

// New creates an unlimited ability.
func New(kind Kind, description string) *Ability {
	return &Ability{Kind: kind, Description: description}
}

// NewCounted creates an ability with a fixed number of uses.
func NewCounted(kind Kind, description string, uses int) *Ability {
	return &Ability{Kind: kind, Description: description, Remaining: &uses}
}

// AttachTo binds the ability to an owner. A later attach replaces the
// previous owner.
func (a *Ability) AttachTo(owner Owner) {
	a.owner = owner
}

// Owner returns the current owner, nil once detached.
func (a *Ability) Owner() Owner {
	return a.owner
}

// Use consumes one use. When the counter reaches zero the ability
// detaches from its owner. Using an exhausted ability is an error.
func (a *Ability) Use() error {
	if a.Remaining == nil {
		return nil
	}
	if *a.Remaining <= 0 {
		return ErrExhausted
	}
	*a.Remaining--
	if *a.Remaining == 0 {
		a.detach()
	}
	return nil
}

func (a *Ability) detach() {
	if a.owner != nil {
		a.owner.RemoveAbility(a)
		a.owner = nil
	}
}
