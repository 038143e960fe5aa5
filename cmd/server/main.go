package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ybatistazileno-stack/controle-vendas/internal/config"
	"github.com/ybatistazileno-stack/controle-vendas/internal/infra"
	"github.com/ybatistazileno-stack/controle-vendas/internal/repository"
	"github.com/ybatistazileno-stack/controle-vendas/internal/router"
	"github.com/ybatistazileno-stack/controle-vendas/internal/service"
	"github.com/ybatistazileno-stack/controle-vendas/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	// Redis é opcional: sem ele o cache de métricas e a fila de relatórios
	// ficam desligados, o resto da API funciona normalmente.
	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Warn().Err(err).Msg("redis indisponível — cache e fila desativados")
		rdb = nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	vendaRepo := repository.NewVendaRepository(db)
	prefRepo := repository.NewPreferenciaRepository(db)

	// Migração de dados versionada: falha vira log, nunca derruba o boot.
	service.NewMigracaoService(vendaRepo, prefRepo).Verificar(ctx)

	// Worker pool para tarefas assíncronas (relatório mensal em PDF por
	// e-mail). Os handlers são montados aqui, na composition root.
	smtpCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	if rdb != nil {
		mailer := infra.NewMailer(cfg)
		metricasSvc := service.NewMetricasService(vendaRepo, prefRepo, rdb)
		handlers := worker.Handlers{
			"relatorio": worker.NewRelatorioWorker(metricasSvc, mailer, smtpCB, rdb, cfg.ReportStoragePath),
		}
		worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, handlers)
	}

	r := router.New(cfg, db, rdb, smtpCB)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("controle-vendas API listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
