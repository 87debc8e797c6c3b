package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"staffpay/internal/domain/attendance"
	"staffpay/internal/domain/audit"
	"staffpay/internal/domain/auth"
	"staffpay/internal/domain/employee"
	"staffpay/internal/domain/payroll"
	"staffpay/internal/platform/config"
	cryptoutil "staffpay/internal/platform/crypto"
	"staffpay/internal/platform/db"
	"staffpay/internal/platform/email"
	"staffpay/internal/platform/jobs"
	"staffpay/internal/platform/metrics"
	"staffpay/internal/requestctx"
	"staffpay/internal/transport/http/api"
	attendancehandler "staffpay/internal/transport/http/handlers/attendance"
	audithandler "staffpay/internal/transport/http/handlers/audit"
	authhandler "staffpay/internal/transport/http/handlers/auth"
	employeehandler "staffpay/internal/transport/http/handlers/employees"
	payrollhandler "staffpay/internal/transport/http/handlers/payroll"
	"staffpay/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	Router  http.Handler
	Auth    *auth.Service
	Audit   *audit.Service
	Jobs    *jobs.Service
	Metrics *metrics.Collector

	repos  repositories
	cancel context.CancelFunc
}

// New opens the configured store, seeds the admin account and builds the
// router. The payroll worker runs until Close.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret"
		slog.Warn("JWT_SECRET not set, using development secret")
	}

	crypto, err := cryptoutil.New(cfg.DataEncryptionKey)
	if err != nil {
		return nil, err
	}

	repos, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	authSvc := auth.NewService(repos.users, cfg.JWTSecret, cfg.TokenTTL)
	if err := db.Seed(ctx, authSvc, cfg.SeedAdminUsername, cfg.SeedAdminPassword); err != nil {
		repos.close()
		return nil, err
	}

	collector := metrics.New()
	auditSvc := audit.New(audit.DefaultCapacity)
	employeeSvc := employee.NewService(repos.employees)
	attendanceSvc := attendance.NewService(repos.attendance, repos.employees)
	policy := payroll.FixedPolicy{Allowance: cfg.PayrollAllowances, Deduction: cfg.PayrollDeductions}
	payrollSvc := payroll.NewService(repos.payrolls, repos.employees, policy).
		WithPayslips(payroll.NewPayslipWriter(cfg.PayslipDir, crypto))

	jobCtx, cancel := context.WithCancel(context.Background())
	jobsSvc := jobs.New(payrollSvc, repos.employees, collector, cfg.PayrollRunInterval)
	jobsSvc.Notify = jobs.Notification{
		Mailer: email.New(cfg),
		From:   cfg.EmailFrom,
		To:     cfg.PayrollNotifyEmail,
	}
	jobsSvc.Start(jobCtx)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(chimw.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(authSvc))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := repos.ping(ctx); err != nil {
			http.Error(w, "store not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, collector.Snapshot(), requestctx.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(authSvc, cfg.RateLimitPerMinute).RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
			employeehandler.NewHandler(employeeSvc, auditSvc).RegisterRoutes(r)
			attendancehandler.NewHandler(attendanceSvc, collector, auditSvc).RegisterRoutes(r)
			payrollhandler.NewHandler(payrollSvc, jobsSvc, collector, auditSvc).RegisterRoutes(r)
			audithandler.NewHandler(auditSvc).RegisterRoutes(r)
		})
	})

	return &App{
		Config:  cfg,
		Router:  router,
		Auth:    authSvc,
		Audit:   auditSvc,
		Jobs:    jobsSvc,
		Metrics: collector,
		repos:   repos,
		cancel:  cancel,
	}, nil
}

func (a *App) Close() {
	a.cancel()
	a.repos.close()
}

// Run loads configuration from the environment and serves until SIGINT or SIGTERM.
func Run() error {
	cfg := config.Load()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("staffpay server listening", "addr", cfg.Addr, "store", cfg.StoreDriver)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	slog.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
