package stake

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"hoprstake/core/events"
)

// rewardIncrement computes the accrual earned between the account's last sync
// and now. Both endpoints are clamped into the accrual window so the result is
// never negative and the rate is zero outside [LockDeadline, End]. Integer
// division truncates; the rounding loss is accepted and not refundable.
func (e *Engine) rewardIncrement(acct *Account, now uint64) (*big.Int, error) {
	if now < e.program.LockDeadline {
		return big.NewInt(0), nil
	}
	from := e.program.clampAccrual(acct.LastSync)
	to := e.program.clampAccrual(now)
	if to <= from {
		return big.NewInt(0), nil
	}
	base := acct.Combined()
	if base.Sign() == 0 {
		return big.NewInt(0), nil
	}

	rate := new(big.Int).Mul(base, new(big.Int).SetUint64(e.baseFactor))
	for _, badgeID := range acct.RedeemedBoosts {
		if e.boosts == nil {
			return nil, errNilBoostLedger
		}
		info, err := e.boosts.BoostOf(badgeID)
		if err != nil {
			return nil, fmt.Errorf("stake: resolve boost %d: %w", badgeID, err)
		}
		boost := new(big.Int).Mul(base, new(big.Int).SetUint64(info.Factor))
		rate.Add(rate, boost)
	}

	elapsed := new(big.Int).SetUint64(to - from)
	increment := new(big.Int).Mul(rate, elapsed)
	return increment.Quo(increment, new(big.Int).SetUint64(FactorDenominator)), nil
}

// syncAccount materialises pending accrual into CumulatedRewards and advances
// LastSync. Mutates the working copy only; callers persist.
func (e *Engine) syncAccount(acct *Account, now uint64) error {
	increment, err := e.rewardIncrement(acct, now)
	if err != nil {
		return err
	}
	if increment.Sign() > 0 {
		acct.CumulatedRewards.Add(acct.CumulatedRewards, increment)
	}
	if now > acct.LastSync {
		acct.LastSync = now
	}
	e.emit(events.StakeSynced{
		Owner:     acct.Owner,
		Increment: increment,
		Cumulated: cloneBigInt(acct.CumulatedRewards),
		LastSync:  acct.LastSync,
	})
	if e.telemetry != nil {
		e.telemetry.ObserveSync(increment)
	}
	return nil
}

// Sync is the public manual sync entry point. It materialises accrual for one
// account without moving any tokens.
func (e *Engine) Sync(owner common.Address) error {
	acct, err := e.loadAccount(owner)
	if err != nil {
		return err
	}
	if err := e.syncAccount(acct, e.now()); err != nil {
		return err
	}
	return e.state.PutStakeAccount(acct)
}

// PendingReward reports the rewards an account would receive from a claim right
// now, without mutating state.
func (e *Engine) PendingReward(owner common.Address) (*big.Int, error) {
	acct, err := e.loadAccount(owner)
	if err != nil {
		return nil, err
	}
	increment, err := e.rewardIncrement(acct, e.now())
	if err != nil {
		return nil, err
	}
	return increment.Add(increment, acct.Pending()), nil
}
