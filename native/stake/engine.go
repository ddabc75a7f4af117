package stake

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"hoprstake/core/events"
	"hoprstake/observability/metrics"
)

// engineState is the narrow persistence surface required by the engine. A nil
// return from StakeAccount means the account has never been touched.
type engineState interface {
	StakeAccount(owner common.Address) (*Account, error)
	PutStakeAccount(acct *Account) error
	PoolTotals() (*Pool, error)
	PutPoolTotals(pool *Pool) error
}

// TokenLedger abstracts one of the two external token collaborators. Inbound
// transfers reach the engine through its hook entry points; outbound transfers
// go through Transfer and must be assumed to re-enter.
type TokenLedger interface {
	Address() common.Address
	BalanceOf(owner common.Address) (*big.Int, error)
	Transfer(to common.Address, amount *big.Int) error
}

// BoostLedger abstracts the external badge collaborator. BoostOf must keep
// answering for burned badges: the accrual path re-reads factors on every
// sync rather than caching them at redemption time.
type BoostLedger interface {
	BoostOf(badgeID uint64) (BoostInfo, error)
	Burn(badgeID uint64) error
	OnInitialLock(owner common.Address) error
}

// Engine implements the staking-program state transitions. Execution is
// sequential and atomic per entry point: every operation validates, mutates
// working copies, persists, and only then performs external transfers.
type Engine struct {
	program     Program
	baseFactor  uint64
	owner       common.Address
	state       engineState
	emitter     events.Emitter
	stakeToken  TokenLedger
	rewardToken TokenLedger
	boosts      BoostLedger
	nowFn       func() int64
	entered     bool
	telemetry   *metrics.StakeMetrics
}

// NewEngine constructs an engine for one program season. The pool owner is the
// only address allowed to fund rewards and grant virtual locks.
func NewEngine(program Program, owner common.Address) (*Engine, error) {
	if err := program.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		program:    program,
		baseFactor: DefaultBaseFactorNumerator,
		owner:      owner,
		emitter:    events.NoopEmitter{},
		nowFn:      func() int64 { return time.Now().Unix() },
		telemetry:  metrics.Stake(),
	}, nil
}

// Program returns the season boundaries the engine was built with.
func (e *Engine) Program() Program { return e.program }

// SetState wires the engine to the external persistence layer.
func (e *Engine) SetState(state engineState) { e.state = state }

// SetBaseFactor overrides the per-second base rate numerator.
func (e *Engine) SetBaseFactor(numerator uint64) {
	if e == nil {
		return
	}
	e.baseFactor = numerator
}

// SetTokens configures the stake and reward token collaborators.
func (e *Engine) SetTokens(stakeToken, rewardToken TokenLedger) {
	if e == nil {
		return
	}
	e.stakeToken = stakeToken
	e.rewardToken = rewardToken
}

// SetBoostLedger configures the badge collaborator.
func (e *Engine) SetBoostLedger(boosts BoostLedger) {
	if e == nil {
		return
	}
	e.boosts = boosts
}

// SetEmitter configures the event emitter. Passing nil resets it to a no-op.
func (e *Engine) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		e.emitter = events.NoopEmitter{}
		return
	}
	e.emitter = emitter
}

// SetNowFunc overrides the time source. Primarily intended for tests to
// provide deterministic timestamps.
func (e *Engine) SetNowFunc(now func() int64) {
	if now == nil {
		e.nowFn = func() int64 { return time.Now().Unix() }
		return
	}
	e.nowFn = now
}

func (e *Engine) now() uint64 {
	if e == nil || e.nowFn == nil {
		return uint64(time.Now().Unix())
	}
	ts := e.nowFn()
	if ts < 0 {
		return 0
	}
	return uint64(ts)
}

func (e *Engine) emit(evt events.Event) {
	if e == nil || e.emitter == nil || evt == nil {
		return
	}
	e.emitter.Emit(evt)
}

// enter takes the reentrancy guard. External collaborator calls are synchronous
// and may call back into the engine; a second entry while one is in flight is
// rejected outright.
func (e *Engine) enter() error {
	if e.entered {
		return ErrReentrantCall
	}
	e.entered = true
	return nil
}

func (e *Engine) leave() { e.entered = false }

func (e *Engine) loadAccount(owner common.Address) (*Account, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	acct, err := e.state.StakeAccount(owner)
	if err != nil {
		return nil, err
	}
	return ensureAccount(owner, acct.Clone()), nil
}

func (e *Engine) loadPool() (*Pool, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	pool, err := e.state.PoolTotals()
	if err != nil {
		return nil, err
	}
	return ensurePool(pool.Clone()), nil
}

func (e *Engine) gauges(pool *Pool) {
	if e == nil || e.telemetry == nil || pool == nil {
		return
	}
	e.telemetry.SetTotalLocked(pool.TotalLocked)
	e.telemetry.SetAvailableReward(pool.AvailableReward)
}
