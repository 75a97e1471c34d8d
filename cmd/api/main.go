package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/skarbonka/internal/budget"
	budgetStore "github.com/MrJamesThe3rd/skarbonka/internal/budget/store"
	"github.com/MrJamesThe3rd/skarbonka/internal/category"
	categoryStore "github.com/MrJamesThe3rd/skarbonka/internal/category/store"
	"github.com/MrJamesThe3rd/skarbonka/internal/config"
	"github.com/MrJamesThe3rd/skarbonka/internal/database"
	"github.com/MrJamesThe3rd/skarbonka/internal/expense"
	expenseStore "github.com/MrJamesThe3rd/skarbonka/internal/expense/store"
	"github.com/MrJamesThe3rd/skarbonka/internal/goal"
	goalStore "github.com/MrJamesThe3rd/skarbonka/internal/goal/store"
	skarbonkaHttp "github.com/MrJamesThe3rd/skarbonka/internal/http"
	budgetHandler "github.com/MrJamesThe3rd/skarbonka/internal/http/budget"
	categoryHandler "github.com/MrJamesThe3rd/skarbonka/internal/http/category"
	expenseHandler "github.com/MrJamesThe3rd/skarbonka/internal/http/expense"
	goalHandler "github.com/MrJamesThe3rd/skarbonka/internal/http/goal"
	incomeHandler "github.com/MrJamesThe3rd/skarbonka/internal/http/income"
	reportHandler "github.com/MrJamesThe3rd/skarbonka/internal/http/report"
	"github.com/MrJamesThe3rd/skarbonka/internal/income"
	incomeStore "github.com/MrJamesThe3rd/skarbonka/internal/income/store"
	"github.com/MrJamesThe3rd/skarbonka/internal/report"
	reportStore "github.com/MrJamesThe3rd/skarbonka/internal/report/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel()})))

	if err := run(cfg); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	if err := database.Migrate(cfg.ConnectionString()); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	db, err := database.New(cfg.ConnectionString(), database.PoolConfig{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	goals := goalStore.New(db)

	var (
		categoryService = category.NewService(categoryStore.New(db))
		expenseService  = expense.NewService(expenseStore.New(db), categoryService)
		incomeService   = income.NewService(incomeStore.New(db))
		goalService     = goal.NewService(goals)
		budgetService   = budget.NewService(budgetStore.New(db))
		reportService   = report.NewService(reportStore.New(db), goals)
	)

	router := skarbonkaHttp.New(skarbonkaHttp.Options{
		JWTSecret:      []byte(cfg.Auth.JWTSecret),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RequestTimeout: cfg.Server.RequestTimeout,
	}, skarbonkaHttp.Handlers{
		Categories: categoryHandler.NewHandler(categoryService),
		Expenses:   expenseHandler.NewHandler(expenseService),
		Incomes:    incomeHandler.NewHandler(incomeService),
		Goals:      goalHandler.NewHandler(goalService),
		Budget:     budgetHandler.NewHandler(budgetService),
		Reports:    reportHandler.NewHandler(reportService),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	return nil
}
