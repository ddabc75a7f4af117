package stake

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"hoprstake/core/events"
)

// Redeem is the hook entry point triggered by an inbound badge transfer. It
// appends the badge to the account's boost list and burns it. A failed burn
// aborts the whole redemption before any state is persisted.
func (e *Engine) Redeem(owner common.Address, badgeID uint64) error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.leave()

	if e.boosts == nil {
		return errNilBoostLedger
	}
	now := e.now()
	if now > e.program.End {
		return ErrProgramEnded
	}

	acct, err := e.loadAccount(owner)
	if err != nil {
		return err
	}
	if acct.Combined().Sign() == 0 {
		return ErrNothingStaked
	}
	// Resolve the badge up front so an unknown id fails before the sync.
	if _, err := e.boosts.BoostOf(badgeID); err != nil {
		return fmt.Errorf("stake: resolve boost %d: %w", badgeID, err)
	}
	// Materialise accrual at the pre-redemption rate; the new boost only
	// applies from now on.
	if err := e.syncAccount(acct, now); err != nil {
		return err
	}
	acct.RedeemedBoosts = append(acct.RedeemedBoosts, badgeID)

	if err := e.boosts.Burn(badgeID); err != nil {
		return fmt.Errorf("stake: burn boost %d: %w", badgeID, err)
	}
	if err := e.state.PutStakeAccount(acct); err != nil {
		return err
	}
	e.emit(events.BoostRedeemed{Owner: owner, BadgeID: badgeID})
	if e.telemetry != nil {
		e.telemetry.CountRedeem()
	}
	return nil
}
