package metrics

import (
	"math/big"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// StakeMetrics aggregates the prometheus collectors for the staking ledger.
type StakeMetrics struct {
	totalLocked     prometheus.Gauge
	availableReward prometheus.Gauge
	syncedReward    prometheus.Counter
	claims          prometheus.Counter
	claimedReward   prometheus.Counter
	redeems         prometheus.Counter
}

var (
	stakeOnce     sync.Once
	stakeRegistry *StakeMetrics
)

// Stake returns the process-wide staking metrics, registering the collectors
// on first use.
func Stake() *StakeMetrics {
	stakeOnce.Do(func() {
		stakeRegistry = &StakeMetrics{
			totalLocked: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "stake_total_locked",
				Help: "Sum of all actual locked stake tokens.",
			}),
			availableReward: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "stake_available_reward",
				Help: "Unclaimed reward tokens held by the pool.",
			}),
			syncedReward: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "stake_synced_reward_total",
				Help: "Total reward accrual materialised by syncs.",
			}),
			claims: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "stake_claims_total",
				Help: "Count of successful reward claims.",
			}),
			claimedReward: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "stake_claimed_reward_total",
				Help: "Total reward tokens paid out by claims.",
			}),
			redeems: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "stake_boost_redeems_total",
				Help: "Count of redeemed boost badges.",
			}),
		}
		prometheus.MustRegister(
			stakeRegistry.totalLocked,
			stakeRegistry.availableReward,
			stakeRegistry.syncedReward,
			stakeRegistry.claims,
			stakeRegistry.claimedReward,
			stakeRegistry.redeems,
		)
	})
	return stakeRegistry
}

// SetTotalLocked updates the locked-stake gauge.
func (m *StakeMetrics) SetTotalLocked(v *big.Int) {
	if m == nil {
		return
	}
	m.totalLocked.Set(bigFloat(v))
}

// SetAvailableReward updates the reward-pool gauge.
func (m *StakeMetrics) SetAvailableReward(v *big.Int) {
	if m == nil {
		return
	}
	m.availableReward.Set(bigFloat(v))
}

// ObserveSync records a materialised accrual increment.
func (m *StakeMetrics) ObserveSync(increment *big.Int) {
	if m == nil || increment == nil || increment.Sign() <= 0 {
		return
	}
	m.syncedReward.Add(bigFloat(increment))
}

// CountClaim records a successful payout.
func (m *StakeMetrics) CountClaim(amount *big.Int) {
	if m == nil {
		return
	}
	m.claims.Inc()
	if amount != nil && amount.Sign() > 0 {
		m.claimedReward.Add(bigFloat(amount))
	}
}

// CountRedeem records a badge redemption.
func (m *StakeMetrics) CountRedeem() {
	if m == nil {
		return
	}
	m.redeems.Inc()
}

func bigFloat(v *big.Int) float64 {
	if v == nil {
		return 0
	}
	f, _ := new(big.Float).SetInt(v).Float64()
	return f
}
