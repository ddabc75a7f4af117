package stake

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"hoprstake/core/events"
)

// Deposit is the hook entry point triggered by an inbound stake-token
// transfer. The token argument identifies the calling ledger and must match
// the designated stake token. Past the lock deadline only accounts that
// already hold combined stake may top up.
func (e *Engine) Deposit(token, from common.Address, amount *big.Int) error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.leave()

	if e.stakeToken == nil {
		return errNilTokenLedger
	}
	if token != e.stakeToken.Address() {
		return ErrWrongToken
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	now := e.now()
	if now < e.program.StakeOpen {
		return ErrProgramNotOpen
	}
	if now > e.program.End {
		return ErrProgramEnded
	}

	acct, err := e.loadAccount(from)
	if err != nil {
		return err
	}
	initialWindow := now <= e.program.LockDeadline
	if !initialWindow {
		if acct.Combined().Sign() == 0 {
			return ErrLateFirstStake
		}
		if err := e.syncAccount(acct, now); err != nil {
			return err
		}
	}

	pool, err := e.loadPool()
	if err != nil {
		return err
	}
	acct.ActualLocked.Add(acct.ActualLocked, amount)
	pool.TotalLocked.Add(pool.TotalLocked, amount)
	acct.LastSync = now

	if initialWindow {
		if e.boosts == nil {
			return errNilBoostLedger
		}
		// The mint trigger in the badge collaborator is part of the deposit;
		// its failure fails the whole call before anything is persisted.
		if err := e.boosts.OnInitialLock(from); err != nil {
			return fmt.Errorf("stake: initial lock notification: %w", err)
		}
	}

	if err := e.state.PutStakeAccount(acct); err != nil {
		return err
	}
	if err := e.state.PutPoolTotals(pool); err != nil {
		return err
	}
	e.emit(events.Staked{
		Owner:        acct.Owner,
		ActualTotal:  cloneBigInt(acct.ActualLocked),
		VirtualTotal: cloneBigInt(acct.VirtualLocked),
	})
	e.gauges(pool)
	return nil
}

// GrantVirtualLock credits non-withdrawable seed allocations in batch. Owner
// only, and only before the lock deadline. New accounts start accruing at the
// grant timestamp; accounts that already exist sync first so pending accrual
// is never erased.
func (e *Engine) GrantVirtualLock(caller common.Address, owners []common.Address, caps []*big.Int) error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.leave()

	if caller != e.owner {
		return ErrUnauthorized
	}
	if len(owners) != len(caps) {
		return ErrLengthMismatch
	}
	now := e.now()
	if now < e.program.StakeOpen {
		return ErrProgramNotOpen
	}
	if now > e.program.LockDeadline {
		return ErrProgramEnded
	}
	if e.boosts == nil {
		return errNilBoostLedger
	}
	for _, amount := range caps {
		if amount == nil || amount.Sign() <= 0 {
			return ErrInvalidAmount
		}
	}

	// Stage every mutation first; nothing is persisted until the whole batch
	// has succeeded, so a mid-batch failure leaves no grant behind.
	staged := make(map[common.Address]*Account, len(owners))
	order := make([]common.Address, 0, len(owners))
	for i, owner := range owners {
		acct, ok := staged[owner]
		if !ok {
			var err error
			acct, err = e.loadAccount(owner)
			if err != nil {
				return err
			}
			staged[owner] = acct
			order = append(order, owner)
			if acct.LastSync == 0 {
				acct.LastSync = now
			} else if err := e.syncAccount(acct, now); err != nil {
				return err
			}
		}
		acct.VirtualLocked.Add(acct.VirtualLocked, caps[i])
		if err := e.boosts.OnInitialLock(owner); err != nil {
			return fmt.Errorf("stake: initial lock notification: %w", err)
		}
	}

	for _, owner := range order {
		if err := e.state.PutStakeAccount(staged[owner]); err != nil {
			return err
		}
		acct := staged[owner]
		e.emit(events.Staked{
			Owner:        acct.Owner,
			ActualTotal:  cloneBigInt(acct.ActualLocked),
			VirtualTotal: cloneBigInt(acct.VirtualLocked),
		})
	}
	return nil
}
