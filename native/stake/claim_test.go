package stake

import (
	"errors"
	"math/big"
	"testing"
)

func TestClaimNothingToClaim(t *testing.T) {
	f := newFixture(t)
	f.deposit(t, alice, 100)
	err := f.engine.Claim(alice)
	if !errors.Is(err, ErrNothingToClaim) {
		t.Fatalf("expected ErrNothingToClaim, got %v", err)
	}
}

func TestClaimPaysOutAndSettles(t *testing.T) {
	f := newFixture(t)
	f.depositBig(t, alice, oneToken)
	f.fund(t, 1_000_000_000_000_000)
	f.now = int64(testProgram.LockDeadline) + 100
	if err := f.engine.Claim(alice); err != nil {
		t.Fatalf("claim: %v", err)
	}
	want := expectedIncrement(oneToken, nil, 100)
	acct := f.account(t, alice)
	if acct.ClaimedRewards.Cmp(want) != 0 || acct.ClaimedRewards.Cmp(acct.CumulatedRewards) != 0 {
		t.Fatalf("claim did not settle: claimed=%s cumulated=%s", acct.ClaimedRewards, acct.CumulatedRewards)
	}
	if len(f.rewardT.transfers) != 1 {
		t.Fatalf("expected one reward transfer, got %d", len(f.rewardT.transfers))
	}
	if xfer := f.rewardT.transfers[0]; xfer.To != alice || xfer.Amount.Cmp(want) != 0 {
		t.Fatalf("unexpected transfer: %+v", xfer)
	}
	wantPool := new(big.Int).Sub(big.NewInt(1_000_000_000_000_000), want)
	if got := f.pool(t).AvailableReward; got.Cmp(wantPool) != 0 {
		t.Fatalf("pool not debited: %s, want %s", got, wantPool)
	}
	// Immediate re-claim has nothing left.
	if err := f.engine.Claim(alice); !errors.Is(err, ErrNothingToClaim) {
		t.Fatalf("expected ErrNothingToClaim on re-claim, got %v", err)
	}
}

func TestClaimInsufficientPoolIsFatal(t *testing.T) {
	f := newFixture(t)
	f.depositBig(t, alice, oneToken)
	f.now = int64(testProgram.LockDeadline) + 100
	err := f.engine.Claim(alice)
	if !errors.Is(err, ErrInsufficientPool) {
		t.Fatalf("expected ErrInsufficientPool, got %v", err)
	}
	if len(f.rewardT.transfers) != 0 {
		t.Fatalf("no transfer may happen on pool underfunding")
	}
	if got := f.account(t, alice).ClaimedRewards; got.Sign() != 0 {
		t.Fatalf("claim settled despite underfunded pool: %s", got)
	}
}

func TestUnlockRejectedWhileOngoing(t *testing.T) {
	f := newFixture(t)
	f.deposit(t, alice, 1_000)
	f.now = int64(testProgram.End)
	err := f.engine.Unlock(alice)
	if !errors.Is(err, ErrProgramOngoing) {
		t.Fatalf("expected ErrProgramOngoing, got %v", err)
	}
}

// Depositing 1000 base units keeps every accrual increment below the integer
// division threshold, so unlock must return the principal exactly.
func TestUnlockConservesSmallPrincipal(t *testing.T) {
	f := newFixture(t)
	f.deposit(t, alice, 1_000)
	f.now = int64(testProgram.End) + 1
	if err := f.engine.Unlock(alice); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if len(f.stakeT.transfers) != 1 {
		t.Fatalf("expected one principal transfer, got %d", len(f.stakeT.transfers))
	}
	if xfer := f.stakeT.transfers[0]; xfer.To != alice || xfer.Amount.Cmp(big.NewInt(1_000)) != 0 {
		t.Fatalf("principal not conserved: %+v", xfer)
	}
	if len(f.rewardT.transfers) != 0 {
		t.Fatalf("rounding loss below one unit must not pay rewards")
	}
	acct := f.account(t, alice)
	if acct.ActualLocked.Sign() != 0 {
		t.Fatalf("actual stake not zeroed")
	}
	if f.pool(t).TotalLocked.Sign() != 0 {
		t.Fatalf("total locked not released")
	}
}

func TestUnlockPaysRewardAndPrincipal(t *testing.T) {
	f := newFixture(t)
	f.depositBig(t, alice, oneToken)
	f.fund(t, 1_000_000_000_000_000)
	f.now = int64(testProgram.End) + 1
	if err := f.engine.Unlock(alice); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	wantReward := expectedIncrement(oneToken, nil, testProgram.End-testProgram.LockDeadline)
	if len(f.rewardT.transfers) != 1 || f.rewardT.transfers[0].Amount.Cmp(wantReward) != 0 {
		t.Fatalf("unexpected reward payout: %+v", f.rewardT.transfers)
	}
	if len(f.stakeT.transfers) != 1 || f.stakeT.transfers[0].Amount.Cmp(oneToken) != 0 {
		t.Fatalf("unexpected principal payout: %+v", f.stakeT.transfers)
	}
	acct := f.account(t, alice)
	if acct.ClaimedRewards.Cmp(acct.CumulatedRewards) != 0 {
		t.Fatalf("rewards not settled on unlock")
	}
}

func TestClaimedNeverExceedsCumulated(t *testing.T) {
	f := newFixture(t)
	f.depositBig(t, alice, oneToken)
	f.fund(t, 1_000_000_000_000_000)
	steps := []int64{
		int64(testProgram.LockDeadline) + 10,
		int64(testProgram.LockDeadline) + 250,
		int64(testProgram.End) - 1,
		int64(testProgram.End) + 5,
	}
	for _, now := range steps {
		f.now = now
		if err := f.engine.Claim(alice); err != nil && !errors.Is(err, ErrNothingToClaim) {
			t.Fatalf("claim at %d: %v", now, err)
		}
		acct := f.account(t, alice)
		if acct.ClaimedRewards.Cmp(acct.CumulatedRewards) > 0 {
			t.Fatalf("claimed %s exceeds cumulated %s", acct.ClaimedRewards, acct.CumulatedRewards)
		}
		pool := f.pool(t)
		if pool.AvailableReward.Cmp(acct.Pending()) < 0 {
			t.Fatalf("pool %s below outstanding %s", pool.AvailableReward, acct.Pending())
		}
	}
}
