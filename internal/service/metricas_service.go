package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ybatistazileno-stack/controle-vendas/internal/dto"
	"github.com/ybatistazileno-stack/controle-vendas/internal/model"
	"github.com/ybatistazileno-stack/controle-vendas/internal/money"
	"github.com/ybatistazileno-stack/controle-vendas/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const metricasTTL = 5 * time.Minute

type MetricasService interface {
	ObterMetricas(ctx context.Context, mes string) (*dto.MetricasResponse, error)
	Invalidar(ctx context.Context)
}

type metricasService struct {
	repo  repository.VendaRepository
	prefs repository.PreferenciaRepository
	rdb   *redis.Client
}

// NewMetricasService monta o agregador de KPIs. rdb pode ser nil; nesse caso
// tudo é recalculado a cada chamada.
func NewMetricasService(repo repository.VendaRepository, prefs repository.PreferenciaRepository, rdb *redis.Client) MetricasService {
	return &metricasService{repo: repo, prefs: prefs, rdb: rdb}
}

func (s *metricasService) ObterMetricas(ctx context.Context, mes string) (*dto.MetricasResponse, error) {
	if mes == "" {
		if m, err := s.prefs.Obter(ctx, model.ChaveMesAtivo); err == nil && m != "" {
			mes = m
		} else {
			mes = money.LocalMonthKey()
		}
	}

	cacheKey := "metricas:" + mes
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp dto.MetricasResponse
			if json.Unmarshal([]byte(raw), &resp) == nil {
				return &resp, nil
			}
		}
	}

	vendas, err := s.repo.ListarTodas(ctx)
	if err != nil {
		return nil, err
	}
	resp := s.calcular(ctx, vendas, mes)

	if s.rdb != nil {
		if raw, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, cacheKey, raw, metricasTTL).Err(); err != nil {
				log.Warn().Err(err).Str("chave", cacheKey).Msg("falha ao cachear métricas")
			}
		}
	}
	return resp, nil
}

func (s *metricasService) calcular(ctx context.Context, vendas []model.Venda, mes string) *dto.MetricasResponse {
	sep := Separar(vendas, mes)

	resp := &dto.MetricasResponse{
		Mes:              mes,
		ComissoesPorPerc: map[string]decimal.Decimal{},
	}

	// Vendido, comissão e contagem só contam vendas finalizadas do mês.
	// Vendido soma o valor BRUTO, como a comissão; descontos têm KPI próprio.
	for _, v := range sep.VendasOk {
		resp.VendidoMes = resp.VendidoMes.Add(v.Valor)
		resp.ComissaoMes = resp.ComissaoMes.Add(v.Comissao)
		chave := v.Percentual.String() + "%"
		resp.ComissoesPorPerc[chave] = resp.ComissoesPorPerc[chave].Add(v.Comissao)
	}
	resp.ContagemMes = len(sep.VendasOk)

	// Descontos consideram toda venda ativa do mês, quitada ou não.
	for _, v := range vendas {
		if v.Ativa() && money.MonthKey(v.Data) == mes {
			resp.DescontosMes = resp.DescontosMes.Add(v.DescontoValor)
		}
	}

	// Pendências atravessam meses.
	for _, v := range sep.Pendencias {
		resp.PendenciasValor = resp.PendenciasValor.Add(v.Restante)
	}

	resp.VendidoMes = money.Round2(resp.VendidoMes)
	resp.ComissaoMes = money.Round2(resp.ComissaoMes)
	resp.DescontosMes = money.Round2(resp.DescontosMes)
	resp.PendenciasValor = money.Round2(resp.PendenciasValor)
	for k, c := range resp.ComissoesPorPerc {
		resp.ComissoesPorPerc[k] = money.Round2(c)
	}

	if raw, err := s.prefs.Obter(ctx, model.ChaveMetaPrefixo+mes); err == nil && raw != "" {
		if meta, err := decimal.NewFromString(raw); err == nil && meta.IsPositive() {
			resp.Meta = meta
			resp.FaltaMeta = money.Round2(decimal.Max(decimal.Zero, meta.Sub(resp.VendidoMes)))
		}
	}
	return resp
}

// Invalidar remove todos os meses cacheados. Best effort: falha no Redis só
// gera log, a próxima leitura recalcula de qualquer forma após o TTL.
func (s *metricasService) Invalidar(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	chaves, err := s.rdb.Keys(ctx, "metricas:*").Result()
	if err != nil {
		log.Warn().Err(err).Msg("falha ao listar chaves de métricas")
		return
	}
	if len(chaves) == 0 {
		return
	}
	if err := s.rdb.Del(ctx, chaves...).Err(); err != nil {
		log.Warn().Err(err).Msg("falha ao invalidar cache de métricas")
	}
}
