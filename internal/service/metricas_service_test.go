package service

import (
	"context"
	"testing"

	"github.com/ybatistazileno-stack/controle-vendas/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adiciona(repo *stubVendaRepo, v model.Venda) {
	v.ID = uuid.New()
	repo.vendas[v.ID] = &v
	repo.ordem = append(repo.ordem, v.ID)
}

func TestObterMetricasAgregaPorProjecao(t *testing.T) {
	repo := newStubVendaRepo()
	prefs := newStubPrefRepo()
	svc := NewMetricasService(repo, prefs, nil)

	// Finalizada do mês: conta em vendido/comissão/contagem.
	adiciona(repo, model.Venda{
		Data: "2024-03-10", Cliente: "Ana", Status: model.VendaAtiva,
		TipoEntrega: model.EntregaImediata,
		Valor:       decimal.NewFromInt(200), TotalAReceber: decimal.NewFromInt(180),
		DescontoValor: decimal.NewFromInt(20),
		Percentual:    decimal.NewFromInt(5), Comissao: decimal.NewFromInt(10),
	})
	// Pendente do mês: desconto conta, vendido não; restante soma nas pendências.
	adiciona(repo, model.Venda{
		Data: "2024-03-12", Cliente: "Bia", Status: model.VendaAtiva,
		TipoEntrega: model.EntregaImediata,
		Valor:       decimal.NewFromInt(100), TotalAReceber: decimal.NewFromInt(100),
		DescontoValor: decimal.NewFromInt(5),
		Restante:      decimal.NewFromInt(60),
		Percentual:    decimal.NewFromInt(7), Comissao: decimal.NewFromInt(7),
	})
	// Pendência de OUTRO mês: só soma nas pendências.
	adiciona(repo, model.Venda{
		Data: "2023-12-01", Cliente: "Caio", Status: model.VendaAtiva,
		TipoEntrega: model.EntregaImediata,
		Valor:       decimal.NewFromInt(50), TotalAReceber: decimal.NewFromInt(50),
		Restante: decimal.NewFromInt(50),
	})
	// Cancelada: invisível para tudo.
	adiciona(repo, model.Venda{
		Data: "2024-03-15", Cliente: "Dora", Status: model.VendaCancelada,
		Valor: decimal.NewFromInt(999), TotalAReceber: decimal.NewFromInt(999),
		DescontoValor: decimal.NewFromInt(99), Restante: decimal.NewFromInt(999),
	})

	resp, err := svc.ObterMetricas(context.Background(), "2024-03")
	require.NoError(t, err)

	assert.Equal(t, "2024-03", resp.Mes)
	assert.True(t, resp.VendidoMes.Equal(dec("200")), "vendido soma o bruto, não o líquido: %s", resp.VendidoMes)
	assert.True(t, resp.ComissaoMes.Equal(dec("10")))
	assert.Equal(t, 1, resp.ContagemMes)
	assert.True(t, resp.DescontosMes.Equal(dec("25")), "descontos contam toda venda ativa do mês")
	assert.True(t, resp.PendenciasValor.Equal(dec("110")), "pendências atravessam meses")
	assert.True(t, resp.ComissoesPorPerc["5%"].Equal(dec("10")))
	_, existe := resp.ComissoesPorPerc["7%"]
	assert.False(t, existe, "comissão por percentual só soma vendas finalizadas")
}

func TestObterMetricasMetaEFalta(t *testing.T) {
	repo := newStubVendaRepo()
	prefs := newStubPrefRepo()
	prefs.valores[model.ChaveMetaPrefixo+"2024-03"] = "1000.00"
	svc := NewMetricasService(repo, prefs, nil)

	// Venda com desconto: a meta desconta o bruto (300), não o líquido (270).
	adiciona(repo, model.Venda{
		Data: "2024-03-10", Cliente: "Ana", Status: model.VendaAtiva,
		TipoEntrega: model.EntregaImediata,
		Valor:       decimal.NewFromInt(300), TotalAReceber: decimal.NewFromInt(270),
		DescontoValor: decimal.NewFromInt(30),
	})

	resp, err := svc.ObterMetricas(context.Background(), "2024-03")
	require.NoError(t, err)
	assert.True(t, resp.Meta.Equal(dec("1000")))
	assert.True(t, resp.FaltaMeta.Equal(dec("700")))

	// Meta batida: falta não fica negativa.
	prefs.valores[model.ChaveMetaPrefixo+"2024-03"] = "200"
	resp, err = svc.ObterMetricas(context.Background(), "2024-03")
	require.NoError(t, err)
	assert.True(t, resp.FaltaMeta.IsZero())
}

func TestObterMetricasMesVazioUsaMesAtivo(t *testing.T) {
	repo := newStubVendaRepo()
	prefs := newStubPrefRepo()
	prefs.valores[model.ChaveMesAtivo] = "2023-07"
	svc := NewMetricasService(repo, prefs, nil)

	resp, err := svc.ObterMetricas(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "2023-07", resp.Mes)
}
