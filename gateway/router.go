package gateway

import (
	"encoding/json"
	"log/slog"
	"math/big"
	"net/http"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hoprstake/native/stake"
)

// stakeReader is the read-only engine surface the gateway depends on.
type stakeReader interface {
	Program() stake.Program
	GetAccount(owner common.Address) (*stake.Account, error)
	GetPool() (*stake.Pool, error)
	PendingReward(owner common.Address) (*big.Int, error)
	RedeemedBoosts(owner common.Address) ([]stake.RedeemedBoost, error)
	HasRedeemed(owner common.Address, match stake.BoostCriteria) (bool, error)
}

// Collaborators carries the external contract addresses clients need in
// order to interact with the program: where to send stake and reward tokens,
// and who funds the pool.
type Collaborators struct {
	PoolOwner   common.Address
	StakeToken  common.Address
	RewardToken common.Address
}

type server struct {
	engine stakeReader
	collab Collaborators
	logger *slog.Logger
}

// New builds the read-only HTTP query surface over the staking engine.
func New(engine stakeReader, collab Collaborators, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	s := &server{engine: engine, collab: collab, logger: logger}

	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Route("/v1", func(r chi.Router) {
		r.Get("/pool", s.getPool)
		r.Route("/accounts/{address}", func(r chi.Router) {
			r.Get("/", s.getAccount)
			r.Get("/rewards", s.getPendingReward)
			r.Get("/boosts", s.getBoosts)
			r.Get("/boosts/lookup", s.lookupBoost)
		})
	})
	return r
}

func (s *server) getPool(w http.ResponseWriter, r *http.Request) {
	pool, err := s.engine.GetPool()
	if err != nil {
		s.fail(w, "load pool", err)
		return
	}
	program := s.engine.Program()
	s.respond(w, map[string]any{
		"totalLocked":     pool.TotalLocked.String(),
		"availableReward": pool.AvailableReward.String(),
		"stakeOpen":       program.StakeOpen,
		"lockDeadline":    program.LockDeadline,
		"end":             program.End,
		"poolOwner":       s.collab.PoolOwner.Hex(),
		"stakeToken":      s.collab.StakeToken.Hex(),
		"rewardToken":     s.collab.RewardToken.Hex(),
	})
}

func (s *server) getAccount(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.address(w, r)
	if !ok {
		return
	}
	acct, err := s.engine.GetAccount(owner)
	if err != nil {
		s.fail(w, "load account", err)
		return
	}
	s.respond(w, acct)
}

func (s *server) getPendingReward(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.address(w, r)
	if !ok {
		return
	}
	pending, err := s.engine.PendingReward(owner)
	if err != nil {
		s.fail(w, "compute pending reward", err)
		return
	}
	s.respond(w, map[string]string{"pending": pending.String()})
}

func (s *server) getBoosts(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.address(w, r)
	if !ok {
		return
	}
	boosts, err := s.engine.RedeemedBoosts(owner)
	if err != nil {
		s.fail(w, "resolve boosts", err)
		return
	}
	s.respond(w, boosts)
}

// lookupBoost answers the four redeemed-badge lookup variants through one
// endpoint; each query parameter narrows the criteria.
func (s *server) lookupBoost(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.address(w, r)
	if !ok {
		return
	}
	var match stake.BoostCriteria
	q := r.URL.Query()
	if raw := strings.TrimSpace(q.Get("badgeId")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			http.Error(w, "invalid badgeId", http.StatusBadRequest)
			return
		}
		match.BadgeID = &id
	}
	if raw := strings.TrimSpace(q.Get("typeIndex")); raw != "" {
		idx, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			http.Error(w, "invalid typeIndex", http.StatusBadRequest)
			return
		}
		match.TypeIndex = &idx
	}
	if raw := strings.TrimSpace(q.Get("rank")); raw != "" {
		match.Rank = &raw
	}
	if raw := strings.TrimSpace(q.Get("factor")); raw != "" {
		factor, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			http.Error(w, "invalid factor", http.StatusBadRequest)
			return
		}
		match.Factor = &factor
	}
	redeemed, err := s.engine.HasRedeemed(owner, match)
	if err != nil {
		s.fail(w, "lookup boost", err)
		return
	}
	s.respond(w, map[string]bool{"redeemed": redeemed})
}

func (s *server) address(w http.ResponseWriter, r *http.Request) (common.Address, bool) {
	raw := chi.URLParam(r, "address")
	if !common.IsHexAddress(raw) {
		http.Error(w, "invalid address", http.StatusBadRequest)
		return common.Address{}, false
	}
	return common.HexToAddress(raw), true
}

func (s *server) respond(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

func (s *server) fail(w http.ResponseWriter, msg string, err error) {
	s.logger.Error(msg, "error", err)
	http.Error(w, msg, http.StatusInternalServerError)
}
