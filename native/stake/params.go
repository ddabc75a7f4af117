package stake

import "fmt"

const (
	// DefaultBaseFactorNumerator is the per-second base reward rate applied to
	// every locked token, scaled by FactorDenominator. 5787/1e12 per second
	// works out to roughly 18.25% over a full year.
	DefaultBaseFactorNumerator uint64 = 5787
	// FactorDenominator is the fixed scaling factor shared by the base rate
	// and every boost factor.
	FactorDenominator uint64 = 1e12
)

// Phase identifies where a timestamp falls inside the program window.
type Phase uint8

const (
	// PhasePreLock covers the window before the program opens for staking.
	PhasePreLock Phase = iota
	// PhaseStakingOpen covers the initial-stake window; new accounts may lock.
	PhaseStakingOpen
	// PhaseRedemptionOpen covers the accrual window after the lock deadline;
	// existing stakers may top up and redeem boosts, newcomers are rejected.
	PhaseRedemptionOpen
	// PhaseEnded covers everything past the program end; unlocks open up.
	PhaseEnded
)

// String returns the lowercase phase name used in logs and query responses.
func (p Phase) String() string {
	switch p {
	case PhasePreLock:
		return "preLock"
	case PhaseStakingOpen:
		return "stakingOpen"
	case PhaseRedemptionOpen:
		return "redemptionOpen"
	case PhaseEnded:
		return "ended"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}

// Program fixes the three unix-second boundaries of a staking season.
type Program struct {
	// StakeOpen is when staking becomes possible at all.
	StakeOpen uint64
	// LockDeadline is the initial-stake cutoff. Reward accrual starts here;
	// accounts with zero combined stake cannot enter afterwards.
	LockDeadline uint64
	// End is the accrual ceiling and redemption cutoff. Unlocks open strictly
	// after it.
	End uint64
}

// Validate rejects programs whose boundaries are not strictly ordered.
func (p Program) Validate() error {
	if p.StakeOpen == 0 {
		return fmt.Errorf("stake: program stake-open timestamp required")
	}
	if p.LockDeadline < p.StakeOpen {
		return fmt.Errorf("stake: lock deadline %d precedes stake open %d", p.LockDeadline, p.StakeOpen)
	}
	if p.End <= p.LockDeadline {
		return fmt.Errorf("stake: program end %d must exceed lock deadline %d", p.End, p.LockDeadline)
	}
	return nil
}

// PhaseAt maps a timestamp to the program phase. Pure; no side effects.
func (p Program) PhaseAt(now uint64) Phase {
	switch {
	case now < p.StakeOpen:
		return PhasePreLock
	case now <= p.LockDeadline:
		return PhaseStakingOpen
	case now <= p.End:
		return PhaseRedemptionOpen
	default:
		return PhaseEnded
	}
}

// clampAccrual pins a timestamp into the accrual window [LockDeadline, End].
func (p Program) clampAccrual(ts uint64) uint64 {
	if ts < p.LockDeadline {
		return p.LockDeadline
	}
	if ts > p.End {
		return p.End
	}
	return ts
}
