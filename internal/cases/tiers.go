package cases

import (
	"errors"
	"fmt"

	"courtflow/internal/models"
)

// Tier identifies one of the three court levels a case can live in.
type Tier string

const (
	TierPrimary Tier = "primary"
	TierAppeal  Tier = "appeal"
	TierSupreme Tier = "supreme"
)

// Fixed ordering: primary < appeal < supreme.
var tierRank = map[Tier]int{
	TierPrimary: 0,
	TierAppeal:  1,
	TierSupreme: 2,
}

var ErrUnknownTier = errors.New("unknown case tier")

func ParseTier(s string) (Tier, error) {
	t := Tier(s)
	if _, ok := tierRank[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTier, s)
	}
	return t, nil
}

// Model returns a fresh entity for the tier's table, usable directly with gorm.
func (t Tier) Model() any {
	switch t {
	case TierPrimary:
		return &models.PrimaryCase{}
	case TierAppeal:
		return &models.AppealCase{}
	case TierSupreme:
		return &models.SupremeCase{}
	}
	return nil
}

// Next returns the tier a case escalates into, or "" for the top tier.
func (t Tier) Next() Tier {
	switch t {
	case TierPrimary:
		return TierAppeal
	case TierAppeal:
		return TierSupreme
	}
	return ""
}

// TierOrderError reports an escalation request that is not an adjacent upward
// move. It is never coerced into a valid direction.
type TierOrderError struct {
	From Tier
	To   Tier
}

func (e *TierOrderError) Error() string {
	return fmt.Sprintf("cannot escalate %s to %s: only primary->appeal and appeal->supreme are allowed", e.From, e.To)
}

// ValidateEscalation accepts only the two adjacent upward transitions.
// Same-tier, downward and skip-tier requests are rejected.
func ValidateEscalation(from, to Tier) error {
	fromRank, ok := tierRank[from]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTier, from)
	}
	toRank, ok := tierRank[to]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTier, to)
	}
	if toRank != fromRank+1 {
		return &TierOrderError{From: from, To: to}
	}
	return nil
}
