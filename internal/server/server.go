package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/cognitive-economics/questionnaire-services/api/internal/config"
	"github.com/cognitive-economics/questionnaire-services/api/internal/infrastructure/mail"
	mongodoc "github.com/cognitive-economics/questionnaire-services/api/internal/infrastructure/mongo"
	"github.com/cognitive-economics/questionnaire-services/api/internal/infrastructure/storage"
	"github.com/cognitive-economics/questionnaire-services/api/internal/intake/application"
	"github.com/cognitive-economics/questionnaire-services/api/internal/interfaces/http/common"
	"github.com/cognitive-economics/questionnaire-services/api/internal/interfaces/http/public"
	"github.com/cognitive-economics/questionnaire-services/api/internal/retention"
)

// Server is the composition root: it assembles the intake pipeline, the
// retention sweeper and the HTTP surface, and manages their lifecycle.
type Server struct {
	logger         *log.Logger
	client         *mongo.Client
	intake         *application.IntakeService
	stage          *storage.LocalStage
	sweeper        *retention.Sweeper
	scheduler      *cron.Cron
	location       *time.Location
	addr           string
	sweepSchedule  string
	allowedOrigins []string
}

// New builds the full dependency graph from configuration and a connected
// Mongo client.
func New(cfg config.Config, client *mongo.Client) (*Server, error) {
	loc, err := time.LoadLocation(cfg.SweepTimezone)
	if err != nil {
		loc = time.UTC
		cfg.ServerLog.Printf("load timezone %s: %v, falling back to UTC", cfg.SweepTimezone, err)
	}

	stage, err := storage.NewLocalStage(cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	database := client.Database(cfg.MongoDatabase)
	repo := mongodoc.NewSubmissionRepository(database, cfg.ResponseCollection)

	notifier := mail.New(mail.Config{
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		Username:  cfg.EmailUser,
		Password:  cfg.EmailPass,
		Recipient: cfg.AdminEmail,
		StageDir:  stage.Dir(),
	})

	return &Server{
		logger:         cfg.ServerLog,
		client:         client,
		intake:         application.NewIntakeService(repo, stage, notifier),
		stage:          stage,
		sweeper:        retention.NewSweeper(cfg.ServerLog, repo, stage),
		location:       loc,
		addr:           cfg.Addr,
		sweepSchedule:  cfg.SweepSchedule,
		allowedOrigins: append([]string(nil), cfg.AllowedOrigins...),
	}, nil
}

// Run mounts the routes, schedules the weekly sweep and serves until a
// shutdown signal arrives.
func (s *Server) Run() error {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(withCORS(s.allowedOrigins))

	router.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("Hello, World!"))
	})
	router.Get("/api/healthz", s.healthHandler())

	publicHandler := public.NewHandler(public.Config{
		Logger: s.logger,
		Intake: s.intake,
	})
	publicHandler.Register(router)

	router.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.stage.Dir()))))

	s.scheduler = cron.New(cron.WithLocation(s.location))
	if _, err := s.scheduler.AddFunc(s.sweepSchedule, func() {
		s.sweeper.Run(context.Background())
	}); err != nil {
		return fmt.Errorf("schedule sweep %q: %w", s.sweepSchedule, err)
	}
	s.scheduler.Start()
	s.logger.Printf("weekly DB & file cleanup scheduled: %q (%s)", s.sweepSchedule, s.location)

	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Printf("HTTP server listening on %s", s.addr)
		errChan <- httpServer.ListenAndServe()
	}()

	waitForShutdown(httpServer, errChan, s)
	return nil
}

// withCORS grants the configured origins access, mirroring the public
// site's cross-origin form posts.
func withCORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{})
	allowAll := false
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			allowAll = true
			continue
		}
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin == "" || (!allowAll && len(allowed) > 0 && !originAllowed(origin, allowed)) {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusNoContent)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization,Content-Type")
			w.Header().Set("Access-Control-Max-Age", "300")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(origin string, allowed map[string]struct{}) bool {
	if len(allowed) == 0 {
		return true
	}
	_, ok := allowed[origin]
	return ok
}

// healthHandler answers monitoring probes with the Mongo connection state.
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
			common.WriteJSON(s.logger, w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  err.Error(),
			})
			return
		}

		common.WriteJSON(s.logger, w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}

// shutdown stops the sweep scheduler and disconnects Mongo with a bounded
// timeout.
func (s *Server) shutdown(ctx context.Context) {
	if s.scheduler != nil {
		<-s.scheduler.Stop().Done()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.client.Disconnect(shutdownCtx); err != nil {
		s.logger.Printf("disconnect MongoDB: %v", err)
	}
}

// waitForShutdown watches ListenAndServe and OS signals and drives a
// graceful stop.
func waitForShutdown(httpServer *http.Server, errChan <-chan error, srv *Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			srv.logger.Fatalf("server exited abnormally: %v", err)
		}
	case sig := <-sigChan:
		srv.logger.Printf("received signal %s, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			srv.logger.Printf("shutdown HTTP server: %v", err)
		}
	}

	srv.shutdown(context.Background())
}
