package service

import (
	"github.com/ybatistazileno-stack/controle-vendas/internal/model"
	"github.com/ybatistazileno-stack/controle-vendas/internal/money"
)

// Separacao é o resultado da triagem do livro em abas.
type Separacao struct {
	VendasOk   []model.Venda
	Pendencias []model.Venda
	Entregas   []model.Venda
}

// Separar triagem o livro inteiro contra o mês ativo. Pendências e entregas
// ignoram o mês de propósito: saldo em aberto e entrega futura não expiram na
// virada. A aba de vendas do mês só aceita venda quitada com entrega Imediata.
// Vendas canceladas não aparecem em aba nenhuma.
func Separar(vendas []model.Venda, mes string) Separacao {
	var sep Separacao
	for _, v := range vendas {
		if !v.Ativa() {
			continue
		}
		if v.Restante.IsPositive() {
			sep.Pendencias = append(sep.Pendencias, v)
		}
		if v.TipoEntrega == model.EntregaFutura ||
			(v.TipoEntrega == model.EntregaAgendada && money.IsISODate(v.DataEntrega)) {
			sep.Entregas = append(sep.Entregas, v)
		}
		if money.MonthKey(v.Data) == mes && !v.Restante.IsPositive() &&
			v.TipoEntrega == model.EntregaImediata {
			sep.VendasOk = append(sep.VendasOk, v)
		}
	}
	return sep
}
