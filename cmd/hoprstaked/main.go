package main

import (
	"context"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"hoprstake/config"
	"hoprstake/gateway"
	"hoprstake/native/stake"
	"hoprstake/observability/logging"
	"hoprstake/storage"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "./hoprstake.toml", "path to daemon configuration")
	flag.Parse()

	env := strings.TrimSpace(os.Getenv("HOPRSTAKE_ENV"))
	logger := logging.Setup("hoprstaked", env)

	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}

	db, err := storage.NewLevelDB(filepath.Join(cfg.DataDir, "ledger"))
	if err != nil {
		logger.Error("open ledger database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	program := stake.Program{
		StakeOpen:    cfg.Program.StakeOpen,
		LockDeadline: cfg.Program.LockDeadline,
		End:          cfg.Program.End,
	}
	engine, err := stake.NewEngine(program, common.HexToAddress(cfg.PoolOwner))
	if err != nil {
		logger.Error("build stake engine", "error", err)
		os.Exit(1)
	}
	if cfg.Program.BaseFactor != 0 {
		engine.SetBaseFactor(cfg.Program.BaseFactor)
	}
	engine.SetState(storage.NewState(db))

	collab := gateway.Collaborators{
		PoolOwner:   common.HexToAddress(cfg.PoolOwner),
		StakeToken:  common.HexToAddress(cfg.StakeTokenAddress),
		RewardToken: common.HexToAddress(cfg.RewardTokenAddress),
	}
	server := &http.Server{
		Addr:         cfg.ListenAddress,
		Handler:      gateway.New(engine, collab, logger),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	listener, err := net.Listen("tcp", cfg.ListenAddress)
	if err != nil {
		logger.Error("listen", "error", err)
		os.Exit(1)
	}
	go func() {
		logger.Info("query gateway listening", "addr", listener.Addr().String())
		if serveErr := server.Serve(listener); serveErr != nil && serveErr != http.ErrServerClosed {
			logger.Error("serve", "error", serveErr)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("graceful shutdown failed", "error", err)
	}
}
