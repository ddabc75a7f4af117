package stake

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Account tracks a single participant. Created lazily on the first deposit or
// virtual grant and never deleted; zeroed balances persist for audit.
type Account struct {
	Owner common.Address `json:"owner"`
	// ActualLocked is the real deposited stake, withdrawable after program end.
	ActualLocked *big.Int `json:"actualLocked"`
	// VirtualLocked is the administratively granted seed allocation. It counts
	// toward the reward base but is never returned.
	VirtualLocked *big.Int `json:"virtualLocked"`
	// LastSync is the unix timestamp of the last materialised accrual.
	LastSync uint64 `json:"lastSync"`
	// CumulatedRewards grows monotonically with every sync.
	CumulatedRewards *big.Int `json:"cumulatedRewards"`
	// ClaimedRewards never exceeds CumulatedRewards.
	ClaimedRewards *big.Int `json:"claimedRewards"`
	// RedeemedBoosts is the ordered, append-only list of redeemed badge ids.
	RedeemedBoosts []uint64 `json:"redeemedBoosts"`
}

// Pool holds the global totals shared by every account.
type Pool struct {
	// TotalLocked is the sum of all actual (not virtual) locked stake.
	TotalLocked *big.Int `json:"totalLocked"`
	// AvailableReward is the unclaimed reward-token balance held by the pool.
	AvailableReward *big.Int `json:"availableReward"`
}

// BoostInfo describes a badge as reported by the boost ledger.
type BoostInfo struct {
	// Factor is the additional per-second rate conferred by the badge, scaled
	// by FactorDenominator like the base rate.
	Factor uint64 `json:"factor"`
	// TypeIndex groups badges of the same campaign.
	TypeIndex uint64 `json:"typeIndex"`
	// Rank distinguishes tiers within a type (e.g. "gold", "silver").
	Rank string `json:"rank"`
}

// RedeemedBoost pairs a redeemed badge id with its resolved descriptor for the
// query surface.
type RedeemedBoost struct {
	BadgeID uint64    `json:"badgeId"`
	Info    BoostInfo `json:"info"`
}

// BoostCriteria is the canonical badge-match descriptor backing every lookup
// variant. Nil fields are wildcards.
type BoostCriteria struct {
	BadgeID   *uint64
	TypeIndex *uint64
	Rank      *string
	Factor    *uint64
}

// Combined returns actual plus virtual stake.
func (a *Account) Combined() *big.Int {
	if a == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Add(cloneBigInt(a.ActualLocked), cloneBigInt(a.VirtualLocked))
}

// Pending returns accrued-but-unclaimed rewards as of the last sync.
func (a *Account) Pending() *big.Int {
	if a == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Sub(cloneBigInt(a.CumulatedRewards), cloneBigInt(a.ClaimedRewards))
}

// Clone deep-copies the account so callers can mutate working copies freely.
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	clone := &Account{
		Owner:            a.Owner,
		ActualLocked:     cloneBigInt(a.ActualLocked),
		VirtualLocked:    cloneBigInt(a.VirtualLocked),
		LastSync:         a.LastSync,
		CumulatedRewards: cloneBigInt(a.CumulatedRewards),
		ClaimedRewards:   cloneBigInt(a.ClaimedRewards),
	}
	if len(a.RedeemedBoosts) > 0 {
		clone.RedeemedBoosts = append([]uint64(nil), a.RedeemedBoosts...)
	}
	return clone
}

// Clone deep-copies the pool totals.
func (p *Pool) Clone() *Pool {
	if p == nil {
		return &Pool{TotalLocked: big.NewInt(0), AvailableReward: big.NewInt(0)}
	}
	return &Pool{
		TotalLocked:     cloneBigInt(p.TotalLocked),
		AvailableReward: cloneBigInt(p.AvailableReward),
	}
}

func cloneBigInt(v *big.Int) *big.Int {
	if v == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(v)
}

func ensureAccount(owner common.Address, acct *Account) *Account {
	if acct == nil {
		acct = &Account{Owner: owner}
	}
	if acct.Owner == (common.Address{}) {
		acct.Owner = owner
	}
	if acct.ActualLocked == nil {
		acct.ActualLocked = big.NewInt(0)
	}
	if acct.VirtualLocked == nil {
		acct.VirtualLocked = big.NewInt(0)
	}
	if acct.CumulatedRewards == nil {
		acct.CumulatedRewards = big.NewInt(0)
	}
	if acct.ClaimedRewards == nil {
		acct.ClaimedRewards = big.NewInt(0)
	}
	return acct
}

func ensurePool(pool *Pool) *Pool {
	if pool == nil {
		pool = &Pool{}
	}
	if pool.TotalLocked == nil {
		pool.TotalLocked = big.NewInt(0)
	}
	if pool.AvailableReward == nil {
		pool.AvailableReward = big.NewInt(0)
	}
	return pool
}
