package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status de vida da venda. Cancelamento é unidirecional e aditivo: a venda
// mantém todos os campos e ganha motivo + data de cancelamento.
const (
	VendaAtiva     = "Ativa"
	VendaCancelada = "Cancelada"
)

// StatusPagamento: "Totalmente Pendente" compara o restante com o valor
// BRUTO, não com o total a receber — comportamento herdado e preservado;
// com desconto aplicado esse status é inalcançável.
const (
	PagamentoPago               = "Pago"
	PagamentoPendente           = "Pendente"
	PagamentoTotalmentePendente = "Totalmente Pendente"
)

// TipoEntrega: "Agendada" exige data; "Futura" carrega um motivo e aguarda
// uma condição externa; "Imediata" significa entregue.
const (
	EntregaImediata = "Imediata"
	EntregaAgendada = "Agendada"
	EntregaFutura   = "Futura"
)

const (
	DescontoNenhum      = "Sem desconto"
	DescontoTabela      = "Preço de tabela"
	DescontoAcimaTabela = "Acima da tabela"
	DescontoDezPorCento = "10%"
	DescontoQuinzePct   = "15%"
)

// DescontoOptions é o conjunto fechado aceito no campo descontoAplicado.
var DescontoOptions = []string{
	DescontoNenhum, DescontoTabela, DescontoAcimaTabela,
	DescontoDezPorCento, DescontoQuinzePct,
}

// DescontoValido reporta se a opção pertence ao conjunto aceito.
func DescontoValido(s string) bool {
	for _, o := range DescontoOptions {
		if s == o {
			return true
		}
	}
	return false
}

// MotivoPendenciaPadrao é aplicado quando há restante e nenhum motivo foi
// informado. MotivoPendenciaOutro é a única variante que mantém texto livre.
const (
	MotivoPendenciaPadrao = "aguardando_cartao"
	MotivoPendenciaOutro  = "outro"
)

// PagamentoMisto é o rótulo-resumo quando há mais de uma parte de pagamento.
const PagamentoMisto = "Misto"

// PartePagamento é uma alocação de pagamento (forma + valor). As chaves JSON
// "method"/"amount" são as do formato de backup e não mudam.
type PartePagamento struct {
	Metodo string          `json:"method"`
	Valor  decimal.Decimal `json:"amount"`
}

// Venda é o registro canônico de uma transação. Campos derivados
// (DescontoValor, TotalAReceber, Restante, Comissao, StatusPagamento) são
// sempre recalculados pelo serviço; nunca são aceitos do cliente.
//
// Invariantes após qualquer derivação:
//   - Valor > 0
//   - 0 ≤ Restante ≤ TotalAReceber ≤ Valor
//   - campos de pendência preenchidos ⇔ Restante > 0
//   - DataEntrega preenchida ⇔ TipoEntrega = Agendada
type Venda struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Data     string    `gorm:"type:varchar(10);index;not null" json:"data"`
	Cliente  string    `gorm:"index;not null" json:"cliente"`
	Produtos string    `json:"produtos"`

	Valor decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"valor"`
	// ValorTabela é preço de referência, apenas informativo: nunca entra
	// nos cálculos. Default = Valor.
	ValorTabela      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"valorTabela"`
	DescontoAplicado string          `gorm:"type:varchar(30);not null;default:'Sem desconto'" json:"descontoAplicado"`
	DescontoValor    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"descontoValor"`
	TotalAReceber    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"totalAReceber"`

	ValorEntrada decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"valorEntrada"`
	Restante     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"restante"`

	// Comissão calculada sobre o valor BRUTO (não o líquido) — regra de
	// negócio existente, preservada de propósito.
	Percentual decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"percentual"`
	Comissao   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"comissao"`

	StatusPagamento  string           `gorm:"type:varchar(30);not null" json:"statusPagamento"`
	PagamentoDetalhe string           `gorm:"type:varchar(40);not null" json:"pagamentoDetalhe"`
	PartesPagamento  []PartePagamento `gorm:"serializer:json" json:"paymentParts"`

	MotivoPendencia   *string `gorm:"type:varchar(30)" json:"motivoPendencia"`
	TextoMotivo       string  `json:"textoMotivo"`
	PrevisaoPagamento string  `gorm:"type:varchar(10)" json:"previsaoPagamento"`

	TipoEntrega   string `gorm:"type:varchar(10);not null;default:'Imediata'" json:"tipoEntrega"`
	DataEntrega   string `gorm:"type:varchar(10)" json:"dataEntrega"`
	MotivoEntrega string `json:"motivoEntrega"`

	Status             string  `gorm:"type:varchar(10);not null;default:'Ativa'" json:"status"`
	MotivoCancelamento string  `json:"motivoCancelamento"`
	DataCancelamento   *string `gorm:"type:varchar(10)" json:"dataCancelamento"`

	CriadoEm     time.Time  `json:"criadoEm"`
	AtualizadoEm time.Time  `json:"atualizadoEm"`
	PagoEm       *time.Time `json:"pagoEm"`
}

// Ativa reporta se a venda não foi cancelada.
func (v *Venda) Ativa() bool { return v.Status != VendaCancelada }
