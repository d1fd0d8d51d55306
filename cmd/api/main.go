package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	apiconfig "hotel_underwriting/pkg/api/config"
	api "hotel_underwriting/pkg/api/underwriting"
	"hotel_underwriting/pkg/config"
	"hotel_underwriting/pkg/core/cashflow"
	"hotel_underwriting/pkg/core/logger"
	"hotel_underwriting/pkg/core/staffing"
	"hotel_underwriting/pkg/core/store"
	"hotel_underwriting/pkg/core/underwriting"
)

const readHeaderTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("api server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	assumptions := staffing.DefaultAssumptions()
	if path := cfg.Engine.StaffingAssumptionsFile; path != "" {
		loaded, err := staffing.LoadAssumptions(path)
		if err != nil {
			return fmt.Errorf("staffing assumptions: %w", err)
		}
		assumptions = loaded
		log.Info("staffing assumptions loaded", zap.String("file", path))
	}

	repo, err := dealRepository(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := cashflow.Options{ApproximateDebtSplit: cfg.Engine.ApproximateDebtSplit}
	engine := underwriting.NewEngine(log, assumptions, opts)

	h := api.NewHandler(engine, repo, log, api.Options{
		CacheTTL:         cfg.Engine.ReportCacheTTL,
		PortfolioWorkers: cfg.Engine.PortfolioWorkers,
		AllowedOrigin:    cfg.HTTP.AllowedOrigin,
	})
	configHandler := apiconfig.NewHandler(engine, opts, cfg.Engine.PortfolioWorkers, cfg.Engine.ReportCacheTTL.String())

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	h.RegisterRoutes(r)
	r.Get("/api/config", configHandler.HandleConfig)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return serve(ctx, log, "api", cfg.HTTP.Addr, r, cfg.HTTP.ShutdownTimeout) })
	g.Go(func() error {
		return serve(ctx, log, "metrics", cfg.HTTP.MetricsAddr, metricsMux, cfg.HTTP.ShutdownTimeout)
	})
	return g.Wait()
}

// dealRepository picks Postgres when DATABASE_URL is set and memory otherwise.
func dealRepository(ctx context.Context, cfg config.Config, log *zap.Logger) (store.DealRepository, error) {
	if cfg.Postgres.URL == "" {
		log.Warn("DATABASE_URL not set, deals are kept in memory")
		return store.NewMemoryDealRepo(), nil
	}
	if err := store.InitDB(ctx, cfg.Postgres.URL); err != nil {
		return nil, fmt.Errorf("store.InitDB: %w", err)
	}
	log.Info("connected to postgres")
	return store.NewPgDealRepo(store.GetPool()), nil
}

func serve(ctx context.Context, log *zap.Logger, name, addr string, handler http.Handler, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown", zap.String("server", name), zap.Error(err))
		}
	}()

	log.Info("server started", zap.String("server", name), zap.String("address", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s ListenAndServe: %w", name, err)
	}
	log.Info("server stopped", zap.String("server", name))
	return nil
}
