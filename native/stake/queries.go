package stake

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// GetAccount returns a normalised copy of an account, or a zero-value account
// if the owner has never staked.
func (e *Engine) GetAccount(owner common.Address) (*Account, error) {
	return e.loadAccount(owner)
}

// GetPool returns a copy of the global totals.
func (e *Engine) GetPool() (*Pool, error) {
	return e.loadPool()
}

// RedeemedBoosts resolves every badge the account has redeemed, in redemption
// order.
func (e *Engine) RedeemedBoosts(owner common.Address) ([]RedeemedBoost, error) {
	acct, err := e.loadAccount(owner)
	if err != nil {
		return nil, err
	}
	if len(acct.RedeemedBoosts) == 0 {
		return []RedeemedBoost{}, nil
	}
	if e.boosts == nil {
		return nil, errNilBoostLedger
	}
	resolved := make([]RedeemedBoost, 0, len(acct.RedeemedBoosts))
	for _, badgeID := range acct.RedeemedBoosts {
		info, err := e.boosts.BoostOf(badgeID)
		if err != nil {
			return nil, fmt.Errorf("stake: resolve boost %d: %w", badgeID, err)
		}
		resolved = append(resolved, RedeemedBoost{BadgeID: badgeID, Info: info})
	}
	return resolved, nil
}

// HasRedeemed reports whether the account has redeemed any badge matching the
// criteria. This is the canonical predicate behind every lookup variant.
func (e *Engine) HasRedeemed(owner common.Address, match BoostCriteria) (bool, error) {
	redeemed, err := e.RedeemedBoosts(owner)
	if err != nil {
		return false, err
	}
	for _, entry := range redeemed {
		if match.matches(entry) {
			return true, nil
		}
	}
	return false, nil
}

// HasRedeemedBadge answers the lookup keyed by badge id.
func (e *Engine) HasRedeemedBadge(owner common.Address, badgeID uint64) (bool, error) {
	return e.HasRedeemed(owner, BoostCriteria{BadgeID: &badgeID})
}

// HasRedeemedType answers the lookup keyed by badge type.
func (e *Engine) HasRedeemedType(owner common.Address, typeIndex uint64) (bool, error) {
	return e.HasRedeemed(owner, BoostCriteria{TypeIndex: &typeIndex})
}

// HasRedeemedRank answers the lookup keyed by type and rank.
func (e *Engine) HasRedeemedRank(owner common.Address, typeIndex uint64, rank string) (bool, error) {
	return e.HasRedeemed(owner, BoostCriteria{TypeIndex: &typeIndex, Rank: &rank})
}

// HasRedeemedFactor answers the lookup keyed by type and boost factor.
func (e *Engine) HasRedeemedFactor(owner common.Address, typeIndex, factor uint64) (bool, error) {
	return e.HasRedeemed(owner, BoostCriteria{TypeIndex: &typeIndex, Factor: &factor})
}

func (c BoostCriteria) matches(entry RedeemedBoost) bool {
	if c.BadgeID != nil && entry.BadgeID != *c.BadgeID {
		return false
	}
	if c.TypeIndex != nil && entry.Info.TypeIndex != *c.TypeIndex {
		return false
	}
	if c.Rank != nil && entry.Info.Rank != *c.Rank {
		return false
	}
	if c.Factor != nil && entry.Info.Factor != *c.Factor {
		return false
	}
	return true
}
