package dto

import "github.com/ybatistazileno-stack/controle-vendas/internal/model"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// PartePagamentoForm é uma alocação como vem do formulário: o valor é texto
// bruto e pode estar vazio ou malformado — a resolução descarta partes
// inválidas em silêncio.
type PartePagamentoForm struct {
	Method string `json:"method"`
	Amount string `json:"amount"`
}

// VendaFormRequest carrega os campos crus do formulário de venda. Os valores
// monetários e o percentual chegam como texto, possivelmente malformado; toda
// a validação e derivação acontece no serviço, na ordem documentada lá.
type VendaFormRequest struct {
	Data     string `json:"data"`
	Cliente  string `json:"cliente"`
	Produtos string `json:"produtos"`

	Valor      string `json:"valor"`
	Percentual string `json:"percentual"`

	// ValorTabela é referência de preço; não entra nos cálculos.
	ValorTabela string `json:"valorTabela"`
	// DescontoValorReais, quando positivo, sobrescreve o desconto percentual.
	DescontoAplicado   string `json:"descontoAplicado"`
	DescontoValorReais string `json:"descontoValorReais"`

	// ModoPagamento: "unico" | "dividido"
	ModoPagamento string `json:"modoPagamento"`
	// ValorEntrada no modo único é "valor pago agora"; vazio = pago integral.
	ValorEntrada     string               `json:"valorEntrada"`
	PagamentoDetalhe string               `json:"pagamentoDetalhe"`
	PartesPagamento  []PartePagamentoForm `json:"paymentParts"`

	MotivoPendencia   string `json:"motivoPendencia"`
	TextoMotivo       string `json:"textoMotivo"`
	PrevisaoPagamento string `json:"previsaoPagamento"`

	TipoEntrega   string `json:"tipoEntrega"`
	DataEntrega   string `json:"dataEntrega"`
	MotivoEntrega string `json:"motivoEntrega"`
}

type CancelarVendaRequest struct {
	Motivo string `json:"motivo" validate:"required,min=3"`
}

// ─── Filter / List ──────────────────────────────────────────────────────────

// VendaFilter is bound from the query string of GET /v1/vendas.
// Aba seleciona a projeção; pendências e entregas ignoram o mês de propósito.
type VendaFilter struct {
	Mes        string `form:"mes"`                        // YYYY-MM; vazio = mês ativo
	Aba        string `form:"aba,default=vendas"`         // vendas | pendencias | entregas
	Cliente    string `form:"cliente"`                    // busca parcial, case-insensitive
	DataIni    string `form:"dataIni"`                    // YYYY-MM-DD
	DataFim    string `form:"dataFim"`                    // YYYY-MM-DD
	Percentual string `form:"percentual"`                 // ex.: "5"
}

// ContagensAbas carrega o total de cada projeção para as abas do dashboard.
type ContagensAbas struct {
	Vendas     int `json:"vendas"`
	Pendencias int `json:"pendencias"`
	Entregas   int `json:"entregas"`
}

type VendaListResponse struct {
	Data      []model.Venda `json:"data"`
	Mes       string        `json:"mes"`
	Contagens ContagensAbas `json:"contagens"`
}
