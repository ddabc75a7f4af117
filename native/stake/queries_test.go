package stake

import "testing"

func TestBoostLookupVariants(t *testing.T) {
	f := newFixture(t)
	f.boosts.infos[7] = BoostInfo{Factor: 788, TypeIndex: 1, Rank: "gold"}
	f.boosts.infos[3] = BoostInfo{Factor: 317, TypeIndex: 2, Rank: "silver"}
	f.deposit(t, alice, 100)
	for _, id := range []uint64{7, 3} {
		if err := f.engine.Redeem(alice, id); err != nil {
			t.Fatalf("redeem %d: %v", id, err)
		}
	}

	cases := []struct {
		name  string
		check func() (bool, error)
		want  bool
	}{
		{"byBadgeId", func() (bool, error) { return f.engine.HasRedeemedBadge(alice, 7) }, true},
		{"byBadgeIdMiss", func() (bool, error) { return f.engine.HasRedeemedBadge(alice, 9) }, false},
		{"byType", func() (bool, error) { return f.engine.HasRedeemedType(alice, 2) }, true},
		{"byTypeMiss", func() (bool, error) { return f.engine.HasRedeemedType(alice, 5) }, false},
		{"byRank", func() (bool, error) { return f.engine.HasRedeemedRank(alice, 1, "gold") }, true},
		{"byRankWrongType", func() (bool, error) { return f.engine.HasRedeemedRank(alice, 2, "gold") }, false},
		{"byFactor", func() (bool, error) { return f.engine.HasRedeemedFactor(alice, 2, 317) }, true},
		{"byFactorMiss", func() (bool, error) { return f.engine.HasRedeemedFactor(alice, 1, 317) }, false},
	}
	for _, tc := range cases {
		got, err := tc.check()
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("%s = %t, want %t", tc.name, got, tc.want)
		}
	}

	// Accounts with no redemptions never match.
	if got, err := f.engine.HasRedeemedBadge(bob, 7); err != nil || got {
		t.Fatalf("empty account matched: %t, %v", got, err)
	}
}

// Accounts without redemptions resolve to an empty list even when no boost
// ledger is wired, so a query-only deployment can serve them.
func TestBoostQueriesWithoutLedger(t *testing.T) {
	f := newFixture(t)
	f.engine.SetBoostLedger(nil)

	resolved, err := f.engine.RedeemedBoosts(bob)
	if err != nil {
		t.Fatalf("redeemed boosts: %v", err)
	}
	if len(resolved) != 0 {
		t.Fatalf("expected empty resolution, got %+v", resolved)
	}
	got, err := f.engine.HasRedeemedBadge(bob, 7)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got {
		t.Fatalf("empty account matched a badge")
	}
}

func TestRedeemedBoostsResolvesDescriptors(t *testing.T) {
	f := newFixture(t)
	f.boosts.infos[7] = BoostInfo{Factor: 788, TypeIndex: 1, Rank: "gold"}
	f.deposit(t, alice, 100)
	if err := f.engine.Redeem(alice, 7); err != nil {
		t.Fatalf("redeem: %v", err)
	}
	resolved, err := f.engine.RedeemedBoosts(alice)
	if err != nil {
		t.Fatalf("redeemed boosts: %v", err)
	}
	if len(resolved) != 1 || resolved[0].BadgeID != 7 || resolved[0].Info.Rank != "gold" {
		t.Fatalf("unexpected resolution: %+v", resolved)
	}
}
