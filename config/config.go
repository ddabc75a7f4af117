package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/ethereum/go-ethereum/common"
)

// Config carries the daemon settings: listen addresses, storage location,
// collaborator contract addresses and the program season boundaries.
type Config struct {
	ListenAddress string `toml:"ListenAddress"`
	DataDir       string `toml:"DataDir"`
	Environment   string `toml:"Environment"`

	PoolOwner          string `toml:"PoolOwner"`
	StakeTokenAddress  string `toml:"StakeTokenAddress"`
	RewardTokenAddress string `toml:"RewardTokenAddress"`

	Program ProgramConfig `toml:"Program"`
}

// ProgramConfig mirrors stake.Program in TOML form.
type ProgramConfig struct {
	StakeOpen    uint64 `toml:"StakeOpen"`
	LockDeadline uint64 `toml:"LockDeadline"`
	End          uint64 `toml:"End"`
	BaseFactor   uint64 `toml:"BaseFactor"`
}

// Load reads the configuration from the given path, creating a default file
// when none exists.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return createDefault(path)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks addresses and program boundaries.
func (c *Config) Validate() error {
	if c.ListenAddress == "" {
		return fmt.Errorf("config: ListenAddress required")
	}
	if c.DataDir == "" {
		return fmt.Errorf("config: DataDir required")
	}
	for name, addr := range map[string]string{
		"PoolOwner":          c.PoolOwner,
		"StakeTokenAddress":  c.StakeTokenAddress,
		"RewardTokenAddress": c.RewardTokenAddress,
	} {
		if !common.IsHexAddress(addr) {
			return fmt.Errorf("config: %s is not a valid hex address: %q", name, addr)
		}
	}
	if c.Program.StakeOpen == 0 {
		return fmt.Errorf("config: Program.StakeOpen required")
	}
	if c.Program.LockDeadline < c.Program.StakeOpen {
		return fmt.Errorf("config: Program.LockDeadline precedes Program.StakeOpen")
	}
	if c.Program.End <= c.Program.LockDeadline {
		return fmt.Errorf("config: Program.End must exceed Program.LockDeadline")
	}
	return nil
}

func createDefault(path string) (*Config, error) {
	cfg := &Config{
		ListenAddress: "127.0.0.1:8640",
		DataDir:       "./stake-data",
		Environment:   "dev",
		PoolOwner:     common.Address{}.Hex(),
		// Collaborator addresses must be filled in before the daemon is useful.
		StakeTokenAddress:  common.Address{}.Hex(),
		RewardTokenAddress: common.Address{}.Hex(),
		Program: ProgramConfig{
			StakeOpen:    1626912000, // 2021-07-22
			LockDeadline: 1627387200, // 2021-07-27
			End:          1642424400, // 2022-01-17
			BaseFactor:   5787,
		},
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
