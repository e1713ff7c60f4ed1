package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ntvhs/portal-backend/internal/config"
	"github.com/ntvhs/portal-backend/internal/data/db"
	authrepo "github.com/ntvhs/portal-backend/internal/data/repos/auth"
	"github.com/ntvhs/portal-backend/internal/data/repos/content"
	"github.com/ntvhs/portal-backend/internal/platform/logger"
	"github.com/ntvhs/portal-backend/internal/platform/media"
	"github.com/ntvhs/portal-backend/internal/server"
	"github.com/ntvhs/portal-backend/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := db.EnsureDatabase(cfg, log); err != nil {
		log.Fatal("failed to ensure database", "error", err)
	}
	dbService, err := db.New(cfg, log)
	if err != nil {
		log.Fatal("failed to connect to database", "error", err)
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		log.Fatal("failed to migrate tables", "error", err)
	}

	store := media.NewStore(cfg.MediaRoot, log)
	if err := store.EnsureDirs(); err != nil {
		log.Fatal("failed to create media directories", "error", err)
	}

	gormDB := dbService.DB()

	sessionRepo := authrepo.NewSessionRepo(gormDB, log)
	videoRepo := content.NewVideoRepo(gormDB, log)
	bookRepo := content.NewBookRepo(gormDB, log)

	authService := services.NewAuthService(gormDB, log, sessionRepo, cfg)
	videoService := services.NewVideoService(gormDB, log, videoRepo, store)
	bookService := services.NewBookService(gormDB, log, bookRepo, store)

	deps := server.Deps{
		Log:        log,
		Auth:       authService,
		Videos:     videoService,
		Books:      bookService,
		Quizzes:    services.NewAssignmentService(gormDB, log, content.NewAssignmentRepo(gormDB, log, content.KindQuiz)),
		Activities: services.NewAssignmentService(gormDB, log, content.NewAssignmentRepo(gormDB, log, content.KindActivity)),
		Worksheets: services.NewAssignmentService(gormDB, log, content.NewAssignmentRepo(gormDB, log, content.KindWorksheet)),
	}
	router := server.NewRouter(deps)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal("server exited with error", "error", err)
	}
}
