package dto

import "github.com/shopspring/decimal"

// MetricasResponse agrega os KPIs de um mês. Vendido/comissão/contagem cobrem
// apenas vendas finalizadas do mês; descontos somam sobre todas as vendas
// ativas do mês; pendências somam o restante em aberto de QUALQUER mês.
type MetricasResponse struct {
	Mes              string                     `json:"mes"`
	VendidoMes       decimal.Decimal            `json:"vendidoMes"`
	ComissaoMes      decimal.Decimal            `json:"comissaoMes"`
	ComissoesPorPerc map[string]decimal.Decimal `json:"comissoesPorPerc"`
	DescontosMes     decimal.Decimal            `json:"descontosMes"`
	ContagemMes      int                        `json:"contagemMes"`
	PendenciasValor  decimal.Decimal            `json:"pendenciasValor"`

	Meta      decimal.Decimal `json:"meta"`
	FaltaMeta decimal.Decimal `json:"faltaMeta"`
}
