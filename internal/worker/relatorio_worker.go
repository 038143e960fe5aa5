package worker

// relatorio_worker.go
// Processes monthly report jobs from QueueRelatorio: recomputes the month's
// KPIs, renders the PDF and emails it through the SMTP circuit breaker.
// Delivery gets exponential backoff (max 3 attempts); exhausted jobs land in
// the DLQ.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ybatistazileno-stack/controle-vendas/internal/infra"
	"github.com/ybatistazileno-stack/controle-vendas/internal/service"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RelatorioJobPayload is the job envelope sent to QueueRelatorio.
type RelatorioJobPayload struct {
	Mes   string `json:"mes"`
	Email string `json:"email"`
}

type RelatorioWorker struct {
	metricas    service.MetricasService
	mailer      *infra.Mailer
	cb          *infra.CircuitBreaker
	rdb         *redis.Client
	storagePath string
}

func NewRelatorioWorker(metricas service.MetricasService, mailer *infra.Mailer, cb *infra.CircuitBreaker, rdb *redis.Client, storagePath string) *RelatorioWorker {
	return &RelatorioWorker{
		metricas:    metricas,
		mailer:      mailer,
		cb:          cb,
		rdb:         rdb,
		storagePath: storagePath,
	}
}

// Process handles a single report job:
//  1. Parse RelatorioJobPayload from the envelope
//  2. Recompute the month's metrics (fresh, bypassing nothing — the cache
//     is already invalidated on every write)
//  3. Render the PDF snapshot
//  4. Email it through the circuit breaker, with backoff
func (w *RelatorioWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload RelatorioJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("relatorio_worker: invalid payload")
		return
	}
	if payload.Mes == "" || payload.Email == "" {
		log.Warn().Msg("relatorio_worker: payload sem mês ou e-mail — descartando")
		return
	}

	resp, err := w.metricas.ObterMetricas(ctx, payload.Mes)
	if err != nil {
		log.Error().Err(err).Str("mes", payload.Mes).Msg("relatorio_worker: falha ao calcular métricas")
		SendToDLQ(ctx, w.rdb, QueueRelatorio, "relatorio", raw, err.Error(), 1)
		return
	}

	pdfPath, err := infra.GerarRelatorioMensalPDF(resp, w.storagePath)
	if err != nil {
		log.Error().Err(err).Str("mes", payload.Mes).Msg("relatorio_worker: falha ao gerar PDF")
		SendToDLQ(ctx, w.rdb, QueueRelatorio, "relatorio", raw, err.Error(), 1)
		return
	}

	subject := "Relatório de vendas — " + payload.Mes
	body := "Segue em anexo o relatório mensal de vendas de " + payload.Mes + "."

	attempts := 0
	sendErr := withRetry(ctx, 3, func(attempt int) error {
		attempts = attempt
		return w.cb.Execute(func() error {
			return w.mailer.SendRelatorio(payload.Email, subject, body, pdfPath)
		})
	})
	if sendErr != nil {
		log.Error().Err(sendErr).Str("to", payload.Email).Msg("relatorio_worker: envio falhou após retries")
		SendToDLQ(ctx, w.rdb, QueueRelatorio, "relatorio", raw, sendErr.Error(), attempts)
		return
	}

	log.Info().Str("to", payload.Email).Str("mes", payload.Mes).Msg("relatorio_worker: relatório enviado")
}

// withRetry runs fn up to maxAttempts times with exponential backoff (1s, 2s).
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = fn(attempt); err == nil {
			return nil
		}
		if attempt == maxAttempts {
			break
		}
		backoff := time.Duration(1<<(attempt-1)) * time.Second
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return err
}
