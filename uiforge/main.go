package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"uiforge/uiforge/config"
	"uiforge/uiforge/controllers"
	"uiforge/uiforge/routes"
	"uiforge/uiforge/services/auth"
	"uiforge/uiforge/services/generation"
	"uiforge/uiforge/services/llm"
	"uiforge/uiforge/sources/psql"
	"uiforge/uiforge/sources/psql/dao"
	"uiforge/uiforge/sources/storage"
	"uiforge/uiforge/utils/logging"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := logging.InitLogger(cfg.LogDir); err != nil {
		fmt.Fprintln(os.Stderr, "logger init:", err)
		os.Exit(1)
	}
	defer logging.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := psql.NewDatabase(ctx, cfg)
	if err != nil {
		logging.ErrorLogger.Error("database connection error", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	userDAO := dao.NewUserDAO(db.DB)
	sessionDAO := dao.NewSessionDAO(db.DB)
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)

	variants, err := llm.ParseVariants(cfg.Models)
	if err != nil {
		logging.ErrorLogger.Error("invalid model list", zap.Error(err))
		os.Exit(1)
	}
	providers := map[string]llm.Completer{}
	if cfg.GeminiAPIKey != "" {
		providers[llm.ProviderGemini] = llm.NewGeminiClient(cfg.GeminiBaseURL, cfg.GeminiAPIKey)
	}
	if cfg.OpenAIAPIKey != "" {
		providers[llm.ProviderOpenAI] = llm.NewGPTClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)
	}
	for _, v := range variants {
		if _, ok := providers[v.Provider]; !ok {
			logging.AppLogger.Warn("model variant has no configured provider", zap.String("variant", v.String()))
		}
	}
	generator := generation.NewGenerator(variants, providers)

	// Export is optional; without MinIO the endpoint reports it is unavailable.
	var store controllers.ArchiveStore
	if cfg.MinIOEnabled() {
		minioClient, err := storage.NewMinIOClient(ctx, cfg)
		if err != nil {
			logging.ErrorLogger.Error("minio connection error", zap.Error(err))
			os.Exit(1)
		}
		store = minioClient
	}

	authCtrl := controllers.NewAuthController(userDAO, tokens)
	handler := routes.NewRouter(routes.Controllers{
		Health:   controllers.NewHealthController(db),
		Auth:     authCtrl,
		Sessions: controllers.NewSessionController(sessionDAO, store),
		AI:       controllers.NewAIController(generator, authCtrl),
	}, cfg.AllowedOrigins)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logging.AppLogger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.ErrorLogger.Error("server listen error", zap.Error(err))
			os.Exit(1)
		}
	}()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLogger.Error("server shutdown error", zap.Error(err))
	}
	logging.AppLogger.Info("server shutdown complete")
}
