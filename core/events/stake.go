package events

import (
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common"

	"hoprstake/core/types"
)

const (
	// TypeStakeSynced captures a materialised reward accrual for an account.
	TypeStakeSynced = "stake.synced"
	// TypeStaked is emitted whenever an account's locked totals change upward.
	TypeStaked = "stake.staked"
	// TypeRewardFunded signals a top-up of the shared reward pool.
	TypeRewardFunded = "stake.rewardFunded"
	// TypeBoostRedeemed is emitted when a boost badge is redeemed and burned.
	TypeBoostRedeemed = "stake.redeemed"
	// TypeRewardClaimed is emitted when pending rewards are paid out.
	TypeRewardClaimed = "stake.claimed"
	// TypeStakeUnlocked is emitted when principal is returned after program end.
	TypeStakeUnlocked = "stake.unlocked"
)

// StakeSynced captures the accrual delta realised by a sync.
type StakeSynced struct {
	Owner     common.Address
	Increment *big.Int
	Cumulated *big.Int
	LastSync  uint64
}

// EventType satisfies the Event interface.
func (StakeSynced) EventType() string { return TypeStakeSynced }

// Event converts the structured payload into a broadcastable event.
func (e StakeSynced) Event() *types.Event {
	return &types.Event{
		Type: TypeStakeSynced,
		Attributes: map[string]string{
			"owner":     e.Owner.Hex(),
			"increment": formatAmount(e.Increment),
			"cumulated": formatAmount(e.Cumulated),
			"lastSync":  strconv.FormatUint(e.LastSync, 10),
		},
	}
}

// Staked captures the locked totals after a deposit or virtual grant.
type Staked struct {
	Owner        common.Address
	ActualTotal  *big.Int
	VirtualTotal *big.Int
}

// EventType satisfies the Event interface.
func (Staked) EventType() string { return TypeStaked }

// Event converts the structured payload into a broadcastable event.
func (e Staked) Event() *types.Event {
	return &types.Event{
		Type: TypeStaked,
		Attributes: map[string]string{
			"owner":        e.Owner.Hex(),
			"actualTotal":  formatAmount(e.ActualTotal),
			"virtualTotal": formatAmount(e.VirtualTotal),
		},
	}
}

// RewardFunded captures a reward pool top-up by the pool owner.
type RewardFunded struct {
	Amount    *big.Int
	Available *big.Int
}

// EventType satisfies the Event interface.
func (RewardFunded) EventType() string { return TypeRewardFunded }

// Event converts the structured payload into a broadcastable event.
func (e RewardFunded) Event() *types.Event {
	return &types.Event{
		Type: TypeRewardFunded,
		Attributes: map[string]string{
			"amount":    formatAmount(e.Amount),
			"available": formatAmount(e.Available),
		},
	}
}

// BoostRedeemed records a badge redemption.
type BoostRedeemed struct {
	Owner   common.Address
	BadgeID uint64
}

// EventType satisfies the Event interface.
func (BoostRedeemed) EventType() string { return TypeBoostRedeemed }

// Event converts the structured payload into a broadcastable event.
func (e BoostRedeemed) Event() *types.Event {
	return &types.Event{
		Type: TypeBoostRedeemed,
		Attributes: map[string]string{
			"owner":   e.Owner.Hex(),
			"badgeId": strconv.FormatUint(e.BadgeID, 10),
		},
	}
}

// RewardClaimed records a reward payout.
type RewardClaimed struct {
	Owner  common.Address
	Amount *big.Int
}

// EventType satisfies the Event interface.
func (RewardClaimed) EventType() string { return TypeRewardClaimed }

// Event converts the structured payload into a broadcastable event.
func (e RewardClaimed) Event() *types.Event {
	return &types.Event{
		Type: TypeRewardClaimed,
		Attributes: map[string]string{
			"owner":  e.Owner.Hex(),
			"amount": formatAmount(e.Amount),
		},
	}
}

// StakeUnlocked records principal returned to an account after program end.
type StakeUnlocked struct {
	Owner  common.Address
	Amount *big.Int
}

// EventType satisfies the Event interface.
func (StakeUnlocked) EventType() string { return TypeStakeUnlocked }

// Event converts the structured payload into a broadcastable event.
func (e StakeUnlocked) Event() *types.Event {
	return &types.Event{
		Type: TypeStakeUnlocked,
		Attributes: map[string]string{
			"owner":  e.Owner.Hex(),
			"amount": formatAmount(e.Amount),
		},
	}
}

func formatAmount(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}
