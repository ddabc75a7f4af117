package stake

import "errors"

var (
	ErrUnauthorized     = errors.New("stake: unauthorized")
	ErrWrongToken       = errors.New("stake: wrong token ledger")
	ErrProgramNotOpen   = errors.New("stake: program not open yet")
	ErrProgramEnded     = errors.New("stake: program ended")
	ErrProgramOngoing   = errors.New("stake: program still ongoing")
	ErrLateFirstStake   = errors.New("stake: first stake past lock deadline")
	ErrNothingStaked    = errors.New("stake: nothing staked")
	ErrNothingToClaim   = errors.New("stake: nothing to claim")
	ErrInsufficientPool = errors.New("stake: reward pool underfunded")
	ErrLengthMismatch   = errors.New("stake: batch length mismatch")
	ErrReentrantCall    = errors.New("stake: reentrant call")
	ErrInvalidAmount    = errors.New("stake: amount must be positive")
)

var (
	errNilState       = errors.New("stake engine: state not configured")
	errNilBoostLedger = errors.New("stake engine: boost ledger not configured")
	errNilTokenLedger = errors.New("stake engine: token ledger not configured")
)
