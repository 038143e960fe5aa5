package service

import (
	"testing"

	"github.com/ybatistazileno-stack/controle-vendas/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func vendaBase(data string) model.Venda {
	return model.Venda{
		Data:        data,
		Cliente:     "Cliente",
		Valor:       decimal.NewFromInt(100),
		TipoEntrega: model.EntregaImediata,
		Status:      model.VendaAtiva,
	}
}

func TestSepararPendenciasIgnoramOMes(t *testing.T) {
	pendente := vendaBase("2023-11-05")
	pendente.Restante = decimal.NewFromInt(50)

	sep := Separar([]model.Venda{pendente}, "2024-03")
	assert.Len(t, sep.Pendencias, 1, "pendência de outro mês continua visível")
	assert.Empty(t, sep.VendasOk)
}

func TestSepararEntregasIgnoramOMes(t *testing.T) {
	futura := vendaBase("2023-10-01")
	futura.TipoEntrega = model.EntregaFutura

	agendada := vendaBase("2023-10-02")
	agendada.TipoEntrega = model.EntregaAgendada
	agendada.DataEntrega = "2024-06-01"

	semData := vendaBase("2023-10-03")
	semData.TipoEntrega = model.EntregaAgendada // sem data válida

	sep := Separar([]model.Venda{futura, agendada, semData}, "2024-03")
	assert.Len(t, sep.Entregas, 2)
}

func TestSepararVendasOkExigeMesQuitacaoEImediata(t *testing.T) {
	ok := vendaBase("2024-03-10")

	outroMes := vendaBase("2024-02-10")

	comSaldo := vendaBase("2024-03-11")
	comSaldo.Restante = decimal.NewFromInt(1)

	agendada := vendaBase("2024-03-12")
	agendada.TipoEntrega = model.EntregaAgendada
	agendada.DataEntrega = "2024-03-20"

	sep := Separar([]model.Venda{ok, outroMes, comSaldo, agendada}, "2024-03")
	assert.Len(t, sep.VendasOk, 1)
	assert.Equal(t, "2024-03-10", sep.VendasOk[0].Data)
}

func TestSepararCanceladaNaoApareceEmNenhumaAba(t *testing.T) {
	cancelada := vendaBase("2024-03-10")
	cancelada.Status = model.VendaCancelada
	cancelada.Restante = decimal.NewFromInt(80)
	cancelada.TipoEntrega = model.EntregaFutura

	sep := Separar([]model.Venda{cancelada}, "2024-03")
	assert.Empty(t, sep.VendasOk)
	assert.Empty(t, sep.Pendencias)
	assert.Empty(t, sep.Entregas)
}

func TestSepararMesmaVendaEmDuasAbas(t *testing.T) {
	// Venda com saldo em aberto E entrega futura aparece nas duas projeções.
	v := vendaBase("2024-03-10")
	v.Restante = decimal.NewFromInt(30)
	v.TipoEntrega = model.EntregaFutura

	sep := Separar([]model.Venda{v}, "2024-03")
	assert.Len(t, sep.Pendencias, 1)
	assert.Len(t, sep.Entregas, 1)
	assert.Empty(t, sep.VendasOk)
}
