package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/mmynk/market/internal/config"
	"github.com/mmynk/market/internal/server"
	"github.com/mmynk/market/internal/service"
	"github.com/mmynk/market/internal/storage/sqlite"
	"github.com/mmynk/market/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup()
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.SetupWithLevel(logging.ParseLevel(cfg.Log.Level))

	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		slog.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("storage initialized", "database", cfg.Database.Path)

	customers := service.NewCustomerService(store)
	products := service.NewProductService(store)
	srv := server.New(customers, products)

	slog.Info("server starting", "address", cfg.Server.Addr)
	if err := http.ListenAndServe(cfg.Server.Addr, srv.Router()); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
