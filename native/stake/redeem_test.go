package stake

import (
	"errors"
	"testing"

	"hoprstake/core/events"
)

func TestRedeemRequiresStake(t *testing.T) {
	f := newFixture(t)
	f.boosts.infos[7] = BoostInfo{Factor: 788, TypeIndex: 1, Rank: "gold"}
	err := f.engine.Redeem(alice, 7)
	if !errors.Is(err, ErrNothingStaked) {
		t.Fatalf("expected ErrNothingStaked, got %v", err)
	}
}

func TestRedeemRejectsAfterProgramEnd(t *testing.T) {
	f := newFixture(t)
	f.boosts.infos[7] = BoostInfo{Factor: 788, TypeIndex: 1, Rank: "gold"}
	f.deposit(t, alice, 100)
	f.now = int64(testProgram.End) + 1
	err := f.engine.Redeem(alice, 7)
	if !errors.Is(err, ErrProgramEnded) {
		t.Fatalf("expected ErrProgramEnded, got %v", err)
	}
}

func TestRedeemBurnsBadgeAndRecords(t *testing.T) {
	f := newFixture(t)
	f.boosts.infos[7] = BoostInfo{Factor: 788, TypeIndex: 1, Rank: "gold"}
	f.deposit(t, alice, 100)
	if err := f.engine.Redeem(alice, 7); err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if !f.boosts.burned[7] {
		t.Fatalf("badge must be burned on redemption")
	}
	acct := f.account(t, alice)
	if len(acct.RedeemedBoosts) != 1 || acct.RedeemedBoosts[0] != 7 {
		t.Fatalf("unexpected redeemed list: %v", acct.RedeemedBoosts)
	}
	var seen bool
	for _, evt := range f.emitter.events {
		if redeemed, ok := evt.(events.BoostRedeemed); ok {
			seen = true
			if redeemed.Owner != alice || redeemed.BadgeID != 7 {
				t.Fatalf("unexpected redemption event: %+v", redeemed)
			}
		}
	}
	if !seen {
		t.Fatalf("expected a redemption event")
	}
}

func TestRedeemBurnFailureAborts(t *testing.T) {
	f := newFixture(t)
	f.boosts.infos[7] = BoostInfo{Factor: 788, TypeIndex: 1, Rank: "gold"}
	f.deposit(t, alice, 100)
	f.boosts.burnErr = errors.New("burn refused")
	err := f.engine.Redeem(alice, 7)
	if err == nil || !errors.Is(err, f.boosts.burnErr) {
		t.Fatalf("expected propagated burn failure, got %v", err)
	}
	if got := f.account(t, alice).RedeemedBoosts; len(got) != 0 {
		t.Fatalf("redemption persisted despite burn failure: %v", got)
	}
}

func TestRedeemUnknownBadge(t *testing.T) {
	f := newFixture(t)
	f.deposit(t, alice, 100)
	if err := f.engine.Redeem(alice, 99); err == nil {
		t.Fatalf("expected unknown badge error")
	}
	if got := f.account(t, alice).RedeemedBoosts; len(got) != 0 {
		t.Fatalf("unknown badge recorded: %v", got)
	}
}

func TestRedeemOrderPreserved(t *testing.T) {
	f := newFixture(t)
	f.boosts.infos[7] = BoostInfo{Factor: 788, TypeIndex: 1, Rank: "gold"}
	f.boosts.infos[3] = BoostInfo{Factor: 317, TypeIndex: 2, Rank: "silver"}
	f.deposit(t, alice, 100)
	for _, id := range []uint64{7, 3} {
		if err := f.engine.Redeem(alice, id); err != nil {
			t.Fatalf("redeem %d: %v", id, err)
		}
	}
	acct := f.account(t, alice)
	if len(acct.RedeemedBoosts) != 2 || acct.RedeemedBoosts[0] != 7 || acct.RedeemedBoosts[1] != 3 {
		t.Fatalf("redemption order not preserved: %v", acct.RedeemedBoosts)
	}
}
