package stake

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"hoprstake/core/events"
)

// Fund is the hook entry point triggered by an inbound reward-token transfer.
// Only the pool owner may top up the reward pool, and only through the
// designated reward token ledger.
func (e *Engine) Fund(token, from common.Address, amount *big.Int) error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.leave()

	if e.rewardToken == nil {
		return errNilTokenLedger
	}
	if token != e.rewardToken.Address() {
		return ErrWrongToken
	}
	if from != e.owner {
		return ErrUnauthorized
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}

	pool, err := e.loadPool()
	if err != nil {
		return err
	}
	pool.AvailableReward.Add(pool.AvailableReward, amount)
	if err := e.state.PutPoolTotals(pool); err != nil {
		return err
	}
	e.emit(events.RewardFunded{Amount: cloneBigInt(amount), Available: cloneBigInt(pool.AvailableReward)})
	e.gauges(pool)
	return nil
}

// settleClaim moves the account's pending rewards into the claimed column and
// debits the pool, mutating the working copies only. Returns the amount owed.
func (e *Engine) settleClaim(acct *Account, pool *Pool) (*big.Int, error) {
	amount := acct.Pending()
	if amount.Sign() < 0 {
		return nil, fmt.Errorf("stake: claimed exceeds cumulated for %s", acct.Owner.Hex())
	}
	if amount.Sign() == 0 {
		return amount, nil
	}
	if pool.AvailableReward.Cmp(amount) < 0 {
		// Unreachable while the funding invariant holds; surfacing it loudly
		// beats silently shrinking the payout.
		return nil, fmt.Errorf("%w: pending %s exceeds pool %s", ErrInsufficientPool, amount, pool.AvailableReward)
	}
	acct.ClaimedRewards.Set(acct.CumulatedRewards)
	pool.AvailableReward.Sub(pool.AvailableReward, amount)
	return amount, nil
}

// Claim pays out all pending rewards for an account. Internal state is
// persisted before the external reward-token transfer so a re-entering
// collaborator observes the settled balances.
func (e *Engine) Claim(owner common.Address) error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.leave()

	if e.rewardToken == nil {
		return errNilTokenLedger
	}
	acct, err := e.loadAccount(owner)
	if err != nil {
		return err
	}
	pool, err := e.loadPool()
	if err != nil {
		return err
	}
	if err := e.syncAccount(acct, e.now()); err != nil {
		return err
	}
	amount, err := e.settleClaim(acct, pool)
	if err != nil {
		return err
	}
	if amount.Sign() == 0 {
		return ErrNothingToClaim
	}
	if err := e.state.PutStakeAccount(acct); err != nil {
		return err
	}
	if err := e.state.PutPoolTotals(pool); err != nil {
		return err
	}
	e.emit(events.RewardClaimed{Owner: owner, Amount: cloneBigInt(amount)})
	e.gauges(pool)
	if e.telemetry != nil {
		e.telemetry.CountClaim(amount)
	}
	return e.rewardToken.Transfer(owner, amount)
}

// Unlock returns the account's actual stake after program end, settling any
// outstanding reward along the way. Virtual stake is never returned.
func (e *Engine) Unlock(owner common.Address) error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.leave()

	if e.stakeToken == nil || e.rewardToken == nil {
		return errNilTokenLedger
	}
	now := e.now()
	if now <= e.program.End {
		return ErrProgramOngoing
	}

	acct, err := e.loadAccount(owner)
	if err != nil {
		return err
	}
	pool, err := e.loadPool()
	if err != nil {
		return err
	}
	if err := e.syncAccount(acct, now); err != nil {
		return err
	}

	principal := cloneBigInt(acct.ActualLocked)
	acct.ActualLocked.SetInt64(0)
	pool.TotalLocked.Sub(pool.TotalLocked, principal)
	reward, err := e.settleClaim(acct, pool)
	if err != nil {
		return err
	}

	if err := e.state.PutStakeAccount(acct); err != nil {
		return err
	}
	if err := e.state.PutPoolTotals(pool); err != nil {
		return err
	}
	e.emit(events.StakeUnlocked{Owner: owner, Amount: cloneBigInt(principal)})
	e.gauges(pool)

	if reward.Sign() > 0 {
		e.emit(events.RewardClaimed{Owner: owner, Amount: cloneBigInt(reward)})
		if e.telemetry != nil {
			e.telemetry.CountClaim(reward)
		}
		if err := e.rewardToken.Transfer(owner, reward); err != nil {
			return err
		}
	}
	if principal.Sign() > 0 {
		return e.stakeToken.Transfer(owner, principal)
	}
	return nil
}
