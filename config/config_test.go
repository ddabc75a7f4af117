package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hoprstake.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const validConfig = `
ListenAddress = "127.0.0.1:8640"
DataDir = "/tmp/stake"
Environment = "test"
PoolOwner = "0x00000000000000000000000000000000000000aa"
StakeTokenAddress = "0x0000000000000000000000000000000000000511"
RewardTokenAddress = "0x0000000000000000000000000000000000000522"

[Program]
StakeOpen = 1000
LockDeadline = 2000
End = 12000
BaseFactor = 5787
`

func TestLoadValidConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Program.LockDeadline != 2000 {
		t.Fatalf("unexpected lock deadline: %d", cfg.Program.LockDeadline)
	}
	if cfg.PoolOwner != "0x00000000000000000000000000000000000000aa" {
		t.Fatalf("unexpected pool owner: %s", cfg.PoolOwner)
	}
}

func TestLoadRejectsBadAddress(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
ListenAddress = "127.0.0.1:8640"
DataDir = "/tmp/stake"
PoolOwner = "not-an-address"
StakeTokenAddress = "0x0000000000000000000000000000000000000511"
RewardTokenAddress = "0x0000000000000000000000000000000000000522"

[Program]
StakeOpen = 1000
LockDeadline = 2000
End = 12000
`))
	if err == nil {
		t.Fatalf("expected address validation error, got config %+v", cfg)
	}
}

func TestLoadRejectsBadProgramBounds(t *testing.T) {
	_, err := Load(writeConfig(t, `
ListenAddress = "127.0.0.1:8640"
DataDir = "/tmp/stake"
PoolOwner = "0x00000000000000000000000000000000000000aa"
StakeTokenAddress = "0x0000000000000000000000000000000000000511"
RewardTokenAddress = "0x0000000000000000000000000000000000000522"

[Program]
StakeOpen = 5000
LockDeadline = 2000
End = 12000
`))
	if err == nil {
		t.Fatalf("expected program bounds error")
	}
}

func TestLoadCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.toml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load default: %v", err)
	}
	if cfg.ListenAddress == "" || cfg.Program.BaseFactor == 0 {
		t.Fatalf("default config incomplete: %+v", cfg)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config not written: %v", err)
	}
}
