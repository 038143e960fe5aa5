package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/ybatistazileno-stack/controle-vendas/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var agora = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func TestNormalizarVendaRejeitaSoATriade(t *testing.T) {
	base := model.Venda{Data: "2024-03-10", Cliente: "Ana", Valor: decimal.NewFromInt(100)}

	_, ok := NormalizarVenda(base, agora)
	assert.True(t, ok)

	semData := base
	semData.Data = "10/03/2024"
	_, ok = NormalizarVenda(semData, agora)
	assert.False(t, ok)

	semCliente := base
	semCliente.Cliente = "   "
	_, ok = NormalizarVenda(semCliente, agora)
	assert.False(t, ok)

	valorZero := base
	valorZero.Valor = decimal.Zero
	_, ok = NormalizarVenda(valorZero, agora)
	assert.False(t, ok)
}

func TestNormalizarVendaDefaults(t *testing.T) {
	v, ok := NormalizarVenda(model.Venda{
		Data:             "2024-03-10",
		Cliente:          " Ana ",
		Valor:            decimal.NewFromInt(200),
		Percentual:       decimal.NewFromInt(-1),
		DescontoAplicado: "desconto maluco",
		TipoEntrega:      "Teletransporte",
	}, agora)
	require.True(t, ok)

	assert.Equal(t, "Ana", v.Cliente)
	assert.True(t, v.ValorTabela.Equal(dec("200")), "valorTabela default = valor")
	assert.Equal(t, model.DescontoNenhum, v.DescontoAplicado)
	assert.True(t, v.Percentual.Equal(dec("5")), "percentual fora de faixa vira 5")
	assert.True(t, v.Comissao.Equal(dec("10")))
	assert.Equal(t, model.EntregaImediata, v.TipoEntrega)
	assert.Equal(t, agora, v.CriadoEm)
}

func TestNormalizarVendaEntradaForaDeFaixa(t *testing.T) {
	v, ok := NormalizarVenda(model.Venda{
		Data: "2024-03-10", Cliente: "Ana",
		Valor:        decimal.NewFromInt(100),
		ValorEntrada: decimal.NewFromInt(-20),
		Percentual:   decimal.NewFromInt(5),
	}, agora)
	require.True(t, ok)
	assert.True(t, v.ValorEntrada.Equal(dec("100")), "negativa vira pago integral, não zero")
	assert.True(t, v.Restante.IsZero())
	assert.Equal(t, model.PagamentoPago, v.StatusPagamento)
}

func TestNormalizarVendaEntradaClampadaAoLiquido(t *testing.T) {
	// Entrada igual ao bruto com desconto aplicado é clampada ao líquido.
	v, ok := NormalizarVenda(model.Venda{
		Data: "2024-03-10", Cliente: "Ana",
		Valor:            decimal.NewFromInt(200),
		ValorEntrada:     decimal.NewFromInt(200),
		DescontoAplicado: model.DescontoDezPorCento,
		Percentual:       decimal.NewFromInt(5),
	}, agora)
	require.True(t, ok)
	assert.True(t, v.TotalAReceber.Equal(dec("180")))
	assert.True(t, v.ValorEntrada.Equal(dec("180")))
	assert.True(t, v.Restante.IsZero())
}

func TestNormalizarVendaGatesDePendencia(t *testing.T) {
	v, ok := NormalizarVenda(model.Venda{
		Data: "2024-03-10", Cliente: "Ana",
		Valor:             decimal.NewFromInt(100),
		ValorEntrada:      decimal.NewFromInt(40),
		Percentual:        decimal.NewFromInt(5),
		PrevisaoPagamento: "sem ideia",
		PagoEm:            &agora,
	}, agora)
	require.True(t, ok)
	require.NotNil(t, v.MotivoPendencia)
	assert.Equal(t, model.MotivoPendenciaPadrao, *v.MotivoPendencia)
	assert.Empty(t, v.PrevisaoPagamento, "previsão ilegível é descartada")
	assert.Nil(t, v.PagoEm, "pagoEm não sobrevive com saldo em aberto")

	// Sem saldo, pendência é limpa.
	motivo := "outro"
	v, ok = NormalizarVenda(model.Venda{
		Data: "2024-03-10", Cliente: "Ana",
		Valor:           decimal.NewFromInt(100),
		ValorEntrada:    decimal.NewFromInt(100),
		Percentual:      decimal.NewFromInt(5),
		MotivoPendencia: &motivo,
		TextoMotivo:     "texto",
	}, agora)
	require.True(t, ok)
	assert.Nil(t, v.MotivoPendencia)
	assert.Empty(t, v.TextoMotivo)
}

func TestNormalizarVendaImportMantemTextoMotivoSemSerOutro(t *testing.T) {
	// Diferente do formulário, a normalização tolerante preserva o texto
	// livre mesmo com motivo padrão.
	motivo := "aguardando_cartao"
	v, ok := NormalizarVenda(model.Venda{
		Data: "2024-03-10", Cliente: "Ana",
		Valor:           decimal.NewFromInt(100),
		ValorEntrada:    decimal.NewFromInt(40),
		Percentual:      decimal.NewFromInt(5),
		MotivoPendencia: &motivo,
		TextoMotivo:     " anotação antiga ",
	}, agora)
	require.True(t, ok)
	assert.Equal(t, "anotação antiga", v.TextoMotivo)
}

func TestNormalizarVendaPreservaCancelamento(t *testing.T) {
	v, ok := NormalizarVenda(model.Venda{
		Data: "2024-03-10", Cliente: "Ana",
		Valor:              decimal.NewFromInt(100),
		ValorEntrada:       decimal.NewFromInt(100),
		Percentual:         decimal.NewFromInt(5),
		Status:             model.VendaCancelada,
		MotivoCancelamento: " desistiu ",
	}, agora)
	require.True(t, ok)
	assert.Equal(t, model.VendaCancelada, v.Status)
	assert.Equal(t, "desistiu", v.MotivoCancelamento)

	// Status desconhecido vira Ativa com campos de cancelamento limpos.
	dataCancel := "2024-01-01"
	v, ok = NormalizarVenda(model.Venda{
		Data: "2024-03-10", Cliente: "Ana",
		Valor:            decimal.NewFromInt(100),
		ValorEntrada:     decimal.NewFromInt(100),
		Percentual:       decimal.NewFromInt(5),
		Status:           "pausada",
		DataCancelamento: &dataCancel,
	}, agora)
	require.True(t, ok)
	assert.Equal(t, model.VendaAtiva, v.Status)
	assert.Nil(t, v.DataCancelamento)
}

func TestNormalizarVendaIdempotente(t *testing.T) {
	entrada := model.Venda{
		Data: "2024-03-10", Cliente: "Ana",
		Valor:            decimal.NewFromInt(333),
		ValorEntrada:     decimal.NewFromInt(100),
		Percentual:       decimal.NewFromFloat(7.5),
		DescontoAplicado: model.DescontoQuinzePct,
		TipoEntrega:      model.EntregaAgendada,
		DataEntrega:      "2024-04-01",
	}
	uma, ok := NormalizarVenda(entrada, agora)
	require.True(t, ok)
	duas, ok := NormalizarVenda(*uma, agora)
	require.True(t, ok)
	assert.Equal(t, uma, duas)
}

func TestExtrairItemBackupDefaults(t *testing.T) {
	v, temCriadoEm := ExtrairItemBackup(map[string]any{
		"data":    "2024-03-10",
		"cliente": "Ana",
		"valor":   json.Number("150.00"),
	})
	assert.False(t, temCriadoEm)
	assert.True(t, v.ValorEntrada.Equal(dec("150")), "entrada ausente = valor (pago integral)")
	assert.True(t, v.Percentual.Equal(dec("-1")), "percentual ausente força o default na normalização")
}

func TestExtrairItemBackupCriadoEmSemFuso(t *testing.T) {
	// Exports antigos gravam o timestamp sem fuso; o item continua valendo
	// como timestampado (dedup estrita), não como legado.
	for _, raw := range []string{"2024-03-10T08:30:00", "2024-03-10 08:30:00"} {
		v, temCriadoEm := ExtrairItemBackup(map[string]any{
			"data": "2024-03-10", "cliente": "Ana", "valor": json.Number("10"),
			"criadoEm": raw,
		})
		assert.True(t, temCriadoEm, "criadoEm %q", raw)
		assert.Equal(t, time.Date(2024, 3, 10, 8, 30, 0, 0, time.UTC), v.CriadoEm)
	}

	_, temCriadoEm := ExtrairItemBackup(map[string]any{
		"data": "2024-03-10", "cliente": "Ana", "valor": json.Number("10"),
		"criadoEm": "ontem de manhã",
	})
	assert.False(t, temCriadoEm, "lixo de verdade cai para a dedup frouxa")
}

func TestExtrairItemBackupChaveLegadaDePagamento(t *testing.T) {
	v, _ := ExtrairItemBackup(map[string]any{
		"data": "2024-03-10", "cliente": "Ana", "valor": json.Number("10"),
		"pagamento": "dinheiro",
	})
	assert.Equal(t, "dinheiro", v.PagamentoDetalhe)
}

func TestExtrairItemBackupCompleto(t *testing.T) {
	v, temCriadoEm := ExtrairItemBackup(map[string]any{
		"data":          "2024-03-10",
		"cliente":       "Ana",
		"valor":         json.Number("100"),
		"valorEntrada":  json.Number("40"),
		"percentual":    json.Number("7"),
		"descontoValor": json.Number("10"),
		"criadoEm":      "2024-03-10T08:30:00Z",
		"pagoEm":        "2024-03-12T10:00:00Z",
		"paymentParts": []any{
			map[string]any{"method": "Dinheiro", "amount": json.Number("40")},
			"lixo",
		},
	})
	assert.True(t, temCriadoEm)
	assert.Equal(t, time.Date(2024, 3, 10, 8, 30, 0, 0, time.UTC), v.CriadoEm)
	require.NotNil(t, v.PagoEm)
	require.Len(t, v.PartesPagamento, 1)
	assert.Equal(t, "Dinheiro", v.PartesPagamento[0].Metodo)
	assert.True(t, v.DescontoValor.Equal(dec("10")))
}
