package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"hoprstake/native/stake"
)

var (
	stakeAccountPrefix = []byte("stake/account/")
	stakePoolKey       = []byte("stake/pool")
)

func stakeAccountKey(owner common.Address) []byte {
	hexAddr := strings.ToLower(owner.Hex())
	buf := make([]byte, len(stakeAccountPrefix)+len(hexAddr))
	copy(buf, stakeAccountPrefix)
	copy(buf[len(stakeAccountPrefix):], hexAddr)
	return buf
}

// State persists stake accounts and pool totals as JSON records under
// prefixed keys. It satisfies the engine's state interface.
type State struct {
	db Database
}

// NewState wraps a key-value database in the ledger state view.
func NewState(db Database) *State {
	return &State{db: db}
}

// StakeAccount loads an account, returning nil when the owner has never been
// touched.
func (s *State) StakeAccount(owner common.Address) (*stake.Account, error) {
	raw, err := s.db.Get(stakeAccountKey(owner))
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: load stake account: %w", err)
	}
	acct := new(stake.Account)
	if err := json.Unmarshal(raw, acct); err != nil {
		return nil, fmt.Errorf("storage: decode stake account: %w", err)
	}
	return acct, nil
}

// PutStakeAccount stores an account under its owner key.
func (s *State) PutStakeAccount(acct *stake.Account) error {
	if acct == nil {
		return fmt.Errorf("storage: nil stake account")
	}
	raw, err := json.Marshal(acct)
	if err != nil {
		return fmt.Errorf("storage: encode stake account: %w", err)
	}
	return s.db.Put(stakeAccountKey(acct.Owner), raw)
}

// PoolTotals loads the global totals, returning nil before the first write.
func (s *State) PoolTotals() (*stake.Pool, error) {
	raw, err := s.db.Get(stakePoolKey)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: load pool totals: %w", err)
	}
	pool := new(stake.Pool)
	if err := json.Unmarshal(raw, pool); err != nil {
		return nil, fmt.Errorf("storage: decode pool totals: %w", err)
	}
	return pool, nil
}

// PutPoolTotals stores the global totals.
func (s *State) PutPoolTotals(pool *stake.Pool) error {
	if pool == nil {
		return fmt.Errorf("storage: nil pool totals")
	}
	raw, err := json.Marshal(pool)
	if err != nil {
		return fmt.Errorf("storage: encode pool totals: %w", err)
	}
	return s.db.Put(stakePoolKey, raw)
}
