package service

import (
	"strings"
	"time"

	"github.com/ybatistazileno-stack/controle-vendas/internal/model"
	"github.com/ybatistazileno-stack/controle-vendas/internal/money"

	"github.com/shopspring/decimal"
)

// Este arquivo concentra a normalização tolerante compartilhada pelo restore
// de backup e pela migração de schema. A regra geral é "benefício da dúvida":
// campo ausente ou inválido recebe o default documentado; só a tríade
// data/cliente/valor derruba o registro inteiro.

var percentualPadrao = decimal.NewFromInt(5)

// NormalizarVenda recalcula todos os campos derivados de uma venda já tipada,
// aplicando as regras de faixa e os gates de pendência/entrega. Retorna
// ok=false quando data, cliente ou valor não passam na validação mínima.
//
// A função é idempotente: rodar duas vezes sobre o mesmo registro produz
// exatamente os mesmos campos derivados.
func NormalizarVenda(v model.Venda, agora time.Time) (*model.Venda, bool) {
	v.Data = strings.TrimSpace(v.Data)
	v.Cliente = strings.TrimSpace(v.Cliente)
	if !money.IsISODate(v.Data) || v.Cliente == "" || !v.Valor.IsPositive() {
		return nil, false
	}

	if !v.ValorTabela.IsPositive() {
		v.ValorTabela = v.Valor
	}
	if !model.DescontoValido(v.DescontoAplicado) {
		v.DescontoAplicado = model.DescontoNenhum
	}
	v.DescontoValor = resolverDesconto(v.Valor, v.DescontoAplicado, v.DescontoValor)
	v.TotalAReceber = totalAReceber(v.Valor, v.DescontoValor)

	// Entrada fora de faixa volta ao default "pago integral", nunca a zero.
	if v.ValorEntrada.IsNegative() || v.ValorEntrada.GreaterThan(v.Valor) {
		v.ValorEntrada = v.Valor
	}
	if v.ValorEntrada.GreaterThan(v.TotalAReceber) {
		v.ValorEntrada = v.TotalAReceber
	}
	v.Restante = money.Round2(v.TotalAReceber.Sub(v.ValorEntrada))

	if v.Percentual.IsNegative() || v.Percentual.GreaterThan(decimal.NewFromInt(100)) {
		v.Percentual = percentualPadrao
	}
	v.Comissao = comissaoSobreBruto(v.Valor, v.Percentual)
	v.StatusPagamento = statusPagamento(v.Restante, v.Valor)

	// Entrega: tipo desconhecido vira Imediata; cada tipo mantém só o campo
	// auxiliar que lhe pertence.
	switch v.TipoEntrega {
	case model.EntregaImediata, model.EntregaAgendada, model.EntregaFutura:
	default:
		v.TipoEntrega = model.EntregaImediata
	}
	if v.TipoEntrega != model.EntregaAgendada || !money.IsISODate(v.DataEntrega) {
		v.DataEntrega = ""
	}
	if v.TipoEntrega == model.EntregaFutura {
		v.MotivoEntrega = strings.TrimSpace(v.MotivoEntrega)
	} else {
		v.MotivoEntrega = ""
	}

	// Pendência só existe com restante em aberto.
	if v.Restante.IsPositive() {
		motivo := model.MotivoPendenciaPadrao
		if v.MotivoPendencia != nil && strings.TrimSpace(*v.MotivoPendencia) != "" {
			motivo = strings.TrimSpace(*v.MotivoPendencia)
		}
		v.MotivoPendencia = &motivo
		v.TextoMotivo = strings.TrimSpace(v.TextoMotivo)
		if !money.IsISODate(v.PrevisaoPagamento) {
			v.PrevisaoPagamento = ""
		}
		v.PagoEm = nil
	} else {
		v.MotivoPendencia = nil
		v.TextoMotivo = ""
		v.PrevisaoPagamento = ""
	}

	v.PagamentoDetalhe = NormalizarPagamentoDetalhe(v.PagamentoDetalhe)
	if len(v.PartesPagamento) == 0 {
		v.PartesPagamento = []model.PartePagamento{
			{Metodo: v.PagamentoDetalhe, Valor: v.ValorEntrada},
		}
	} else {
		for i := range v.PartesPagamento {
			if strings.TrimSpace(v.PartesPagamento[i].Metodo) == "" {
				v.PartesPagamento[i].Metodo = v.PagamentoDetalhe
			}
		}
	}

	// Cancelamento sobrevive à normalização; qualquer outro status vira Ativa.
	if v.Status == model.VendaCancelada {
		v.MotivoCancelamento = strings.TrimSpace(v.MotivoCancelamento)
	} else {
		v.Status = model.VendaAtiva
		v.MotivoCancelamento = ""
		v.DataCancelamento = nil
	}

	if v.CriadoEm.IsZero() {
		v.CriadoEm = agora
	}
	if v.AtualizadoEm.IsZero() {
		v.AtualizadoEm = agora
	}
	return &v, true
}

// ExtrairItemBackup converte um item de backup com shape arbitrário em uma
// venda tipada, campo a campo, sem validar — a validação fica com
// NormalizarVenda. temCriadoEm distingue backups legados para a deduplicação.
func ExtrairItemBackup(item map[string]any) (v model.Venda, temCriadoEm bool) {
	v.Data = asString(item["data"])
	v.Cliente = asString(item["cliente"])
	v.Produtos = asString(item["produtos"])

	v.Valor, _ = money.FromAny(item["valor"])
	if d, ok := money.FromAny(item["valorEntrada"]); ok {
		v.ValorEntrada = d
	} else {
		// Ausente/ilegível: pago integral por padrão.
		v.ValorEntrada = v.Valor
	}
	if d, ok := money.FromAny(item["percentual"]); ok {
		v.Percentual = d
	} else {
		v.Percentual = decimal.NewFromInt(-1) // fora de faixa força o default
	}
	v.DescontoValor, _ = money.FromAny(item["descontoValor"])
	v.ValorTabela, _ = money.FromAny(item["valorTabela"])

	v.DescontoAplicado = asString(item["descontoAplicado"])
	v.PagamentoDetalhe = asString(item["pagamentoDetalhe"])
	if v.PagamentoDetalhe == "" {
		// Backups antigos usavam a chave "pagamento".
		v.PagamentoDetalhe = asString(item["pagamento"])
	}

	if s := asString(item["motivoPendencia"]); s != "" {
		v.MotivoPendencia = &s
	}
	v.TextoMotivo = asString(item["textoMotivo"])
	v.PrevisaoPagamento = asString(item["previsaoPagamento"])

	v.TipoEntrega = asString(item["tipoEntrega"])
	v.DataEntrega = asString(item["dataEntrega"])
	v.MotivoEntrega = asString(item["motivoEntrega"])

	v.Status = asString(item["status"])
	v.MotivoCancelamento = asString(item["motivoCancelamento"])
	if s := asString(item["dataCancelamento"]); s != "" {
		v.DataCancelamento = &s
	}

	if partes, ok := item["paymentParts"].([]any); ok {
		for _, p := range partes {
			pm, ok := p.(map[string]any)
			if !ok {
				continue
			}
			valor, _ := money.FromAny(pm["amount"])
			v.PartesPagamento = append(v.PartesPagamento, model.PartePagamento{
				Metodo: asString(pm["method"]),
				Valor:  valor,
			})
		}
	}

	if t, ok := asTime(item["criadoEm"]); ok {
		v.CriadoEm = t
		temCriadoEm = true
	}
	if t, ok := asTime(item["atualizadoEm"]); ok {
		v.AtualizadoEm = t
	}
	if t, ok := asTime(item["pagoEm"]); ok {
		v.PagoEm = &t
	}
	return v, temCriadoEm
}

// ─── Derivações elementares (compartilhadas com o calculador) ────────────────

// resolverDesconto: o valor em R$, quando positivo, sobrescreve o percentual
// do enum; 10%/15% derivam do valor bruto; demais opções não descontam.
func resolverDesconto(valor decimal.Decimal, aplicado string, valorReais decimal.Decimal) decimal.Decimal {
	if valorReais.IsPositive() {
		return decimal.Min(valorReais, valor)
	}
	switch aplicado {
	case model.DescontoDezPorCento:
		return money.Round2(valor.Mul(decimal.NewFromFloat(0.10)))
	case model.DescontoQuinzePct:
		return money.Round2(valor.Mul(decimal.NewFromFloat(0.15)))
	}
	return decimal.Zero
}

func totalAReceber(valor, desconto decimal.Decimal) decimal.Decimal {
	return money.Round2(decimal.Max(decimal.Zero, valor.Sub(desconto)))
}

// comissaoSobreBruto calcula sobre o valor bruto, não o líquido.
func comissaoSobreBruto(valor, percentual decimal.Decimal) decimal.Decimal {
	return money.Round2(valor.Mul(percentual).Div(decimal.NewFromInt(100)))
}

// statusPagamento compara o restante com o valor BRUTO para o status
// "Totalmente Pendente" — condição herdada; com desconto ela nunca dispara.
func statusPagamento(restante, valor decimal.Decimal) string {
	switch {
	case !restante.IsPositive():
		return model.PagamentoPago
	case restante.Equal(valor):
		return model.PagamentoTotalmentePendente
	default:
		return model.PagamentoPendente
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// Layouts aceitos para timestamps de backup. RFC3339Nano cobre RFC3339 com e
// sem fração; os demais aparecem em exports antigos sem fuso. Um criadoEm
// presente mas legível só por um desses layouts ainda conta como timestamp,
// mantendo o item na deduplicação estrita em vez de rebaixá-lo para a frouxa.
var layoutsBackup = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func asTime(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return time.Time{}, false
	}
	for _, layout := range layoutsBackup {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
