package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ybatistazileno-stack/controle-vendas/internal/dto"
	"github.com/ybatistazileno-stack/controle-vendas/internal/model"
	"github.com/ybatistazileno-stack/controle-vendas/internal/money"
	"github.com/ybatistazileno-stack/controle-vendas/internal/repository"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"
)

// sanitizador limpa campos de texto livre antes da persistência.
var sanitizador = bluemonday.StrictPolicy()

// MetricasCache é o ponto de invalidação dos KPIs cacheados; toda escrita no
// livro de vendas passa por ele. nil desliga o cache (testes).
type MetricasCache interface {
	Invalidar(ctx context.Context)
}

type VendaService interface {
	Criar(ctx context.Context, req dto.VendaFormRequest) (*model.Venda, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.VendaFormRequest) (*model.Venda, error)
	Listar(ctx context.Context, filtro dto.VendaFilter) (*dto.VendaListResponse, error)
	BuscarPorID(ctx context.Context, id uuid.UUID) (*model.Venda, error)
	Remover(ctx context.Context, id uuid.UUID) error
	ReceberRestante(ctx context.Context, id uuid.UUID) (*model.Venda, error)
	MarcarEntregue(ctx context.Context, id uuid.UUID) (*model.Venda, error)
	Cancelar(ctx context.Context, id uuid.UUID, motivo string) (*model.Venda, error)
}

type vendaService struct {
	repo  repository.VendaRepository
	prefs repository.PreferenciaRepository
	cache MetricasCache
}

func NewVendaService(repo repository.VendaRepository, prefs repository.PreferenciaRepository, cache MetricasCache) VendaService {
	return &vendaService{repo: repo, prefs: prefs, cache: cache}
}

// ─── Calculadora financeira ──────────────────────────────────────────────────
// Ordem de validação (a primeira falha vence, cada uma com mensagem própria):
//   1. valor da venda parseável e > 0
//   2. cliente não vazio após trim
//   3. entrega Agendada exige data ISO
//   4. percentual de comissão finito em [0,100]
//   5. no modo dividido, soma das partes ≤ total a receber

func (s *vendaService) montarVenda(req dto.VendaFormRequest, existente *model.Venda, agora time.Time) (*model.Venda, error) {
	valor, ok := money.Parse(req.Valor)
	if !ok || !valor.IsPositive() {
		return nil, errors.New("Valor da venda inválido.")
	}

	cliente := strings.TrimSpace(req.Cliente)
	if cliente == "" {
		return nil, errors.New("Nome do cliente é obrigatório.")
	}

	if req.TipoEntrega == model.EntregaAgendada && !money.IsISODate(req.DataEntrega) {
		return nil, errors.New("Para entrega Agendada, selecione uma data válida.")
	}

	percentual, ok := money.Parse(req.Percentual)
	if !ok || percentual.IsNegative() || percentual.GreaterThan(decimal.NewFromInt(100)) {
		return nil, errors.New("Percentual de comissão inválido.")
	}

	// Preço de tabela é só referência: default = valor, nunca entra na conta.
	valorTabela, ok := money.Parse(req.ValorTabela)
	if !ok || !valorTabela.IsPositive() {
		valorTabela = valor
	}

	descontoAplicado := req.DescontoAplicado
	if !model.DescontoValido(descontoAplicado) {
		descontoAplicado = model.DescontoNenhum
	}
	descReais, _ := money.Parse(req.DescontoValorReais)
	descontoValor := resolverDesconto(valor, descontoAplicado, descReais)
	aReceber := totalAReceber(valor, descontoValor)

	totalPago, partes, err := resolverPagamento(req, aReceber)
	if err != nil {
		return nil, err
	}

	restante := money.Round2(aReceber.Sub(totalPago))
	comissao := comissaoSobreBruto(valor, percentual)

	data := req.Data
	if !money.IsISODate(data) {
		data = money.LocalToday()
	}

	v := model.Venda{
		Data:     data,
		Cliente:  cliente,
		Produtos: sanitizador.Sanitize(req.Produtos),

		Valor:            valor,
		ValorTabela:      valorTabela,
		DescontoAplicado: descontoAplicado,
		DescontoValor:    descontoValor,
		TotalAReceber:    aReceber,

		ValorEntrada: totalPago,
		Restante:     restante,

		Percentual: percentual,
		Comissao:   comissao,

		StatusPagamento: statusPagamento(restante, valor),
		PartesPagamento: partes,

		TipoEntrega: req.TipoEntrega,
		Status:      model.VendaAtiva,

		CriadoEm:     agora,
		AtualizadoEm: agora,
	}
	if v.TipoEntrega != model.EntregaImediata && v.TipoEntrega != model.EntregaAgendada && v.TipoEntrega != model.EntregaFutura {
		v.TipoEntrega = model.EntregaImediata
	}

	if len(partes) == 1 {
		v.PagamentoDetalhe = partes[0].Metodo
	} else {
		v.PagamentoDetalhe = model.PagamentoMisto
	}

	// Pendência: só existe com restante em aberto; o texto livre só
	// acompanha a variante "outro".
	if restante.IsPositive() {
		motivo := strings.TrimSpace(req.MotivoPendencia)
		if motivo == "" {
			motivo = model.MotivoPendenciaPadrao
		}
		v.MotivoPendencia = &motivo
		if motivo == model.MotivoPendenciaOutro {
			v.TextoMotivo = strings.TrimSpace(sanitizador.Sanitize(req.TextoMotivo))
		}
		if money.IsISODate(req.PrevisaoPagamento) {
			v.PrevisaoPagamento = req.PrevisaoPagamento
		}
	}

	// Entrega: cada tipo mantém apenas o campo auxiliar que lhe pertence.
	if v.TipoEntrega == model.EntregaAgendada {
		v.DataEntrega = req.DataEntrega
	}
	if v.TipoEntrega == model.EntregaFutura {
		v.MotivoEntrega = strings.TrimSpace(sanitizador.Sanitize(req.MotivoEntrega))
	}

	// pagoEm marca a transição do restante para zero e some quando volta a
	// haver saldo em aberto.
	if existente != nil {
		v.CriadoEm = existente.CriadoEm
		v.PagoEm = existente.PagoEm
		// Cancelamento é unidirecional: a edição não ressuscita a venda.
		v.Status = existente.Status
		v.MotivoCancelamento = existente.MotivoCancelamento
		v.DataCancelamento = existente.DataCancelamento
	}
	if restante.IsPositive() {
		v.PagoEm = nil
	} else if v.PagoEm == nil {
		v.PagoEm = &agora
	}

	return &v, nil
}

// resolverPagamento aplica as duas políticas de pagamento.
//
// Modo único: campo vazio, ilegível ou fora de faixa cai no default "pago
// integral". Modo dividido: partes inválidas são descartadas em silêncio e a
// soma acima do total a receber REJEITA a operação. A assimetria entre os
// dois modos é comportamento consolidado do sistema — não unificar.
func resolverPagamento(req dto.VendaFormRequest, aReceber decimal.Decimal) (decimal.Decimal, []model.PartePagamento, error) {
	if req.ModoPagamento != "dividido" {
		pago := aReceber
		if v, ok := money.Parse(req.ValorEntrada); ok && !v.IsNegative() && !v.GreaterThan(aReceber) {
			pago = v
		}
		partes := []model.PartePagamento{
			{Metodo: NormalizarPagamentoDetalhe(req.PagamentoDetalhe), Valor: pago},
		}
		return pago, partes, nil
	}

	total := decimal.Zero
	var partes []model.PartePagamento
	for _, p := range req.PartesPagamento {
		a, ok := money.Parse(p.Amount)
		if !ok || !a.IsPositive() {
			continue
		}
		total = total.Add(a)
		partes = append(partes, model.PartePagamento{
			Metodo: NormalizarPagamentoDetalhe(p.Method),
			Valor:  a,
		})
	}
	total = money.Round2(total)
	if total.GreaterThan(aReceber) {
		return decimal.Zero, nil, fmt.Errorf(
			"Total pago (%s) não pode ser maior que o total a receber (%s). Ajuste os valores.",
			money.FormatBRL(total), money.FormatBRL(aReceber))
	}
	return total, partes, nil
}

// ─── CRUD ────────────────────────────────────────────────────────────────────

func (s *vendaService) Criar(ctx context.Context, req dto.VendaFormRequest) (*model.Venda, error) {
	v, err := s.montarVenda(req, nil, time.Now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Criar(ctx, v); err != nil {
		return nil, err
	}
	s.invalidar(ctx)
	return v, nil
}

func (s *vendaService) Atualizar(ctx context.Context, id uuid.UUID, req dto.VendaFormRequest) (*model.Venda, error) {
	existente, err := s.repo.BuscarPorID(ctx, id)
	if err != nil {
		return nil, errors.New("Venda não encontrada.")
	}
	v, err := s.montarVenda(req, existente, time.Now())
	if err != nil {
		return nil, err
	}
	v.ID = existente.ID
	if err := s.repo.Atualizar(ctx, v); err != nil {
		return nil, err
	}
	s.invalidar(ctx)
	return v, nil
}

func (s *vendaService) BuscarPorID(ctx context.Context, id uuid.UUID) (*model.Venda, error) {
	v, err := s.repo.BuscarPorID(ctx, id)
	if err != nil {
		return nil, errors.New("Venda não encontrada.")
	}
	return v, nil
}

func (s *vendaService) Remover(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Remover(ctx, id); err != nil {
		return err
	}
	s.invalidar(ctx)
	return nil
}

// Listar devolve a projeção pedida (vendas do mês / pendências / entregas)
// já com filtros de cliente, período e percentual aplicados.
func (s *vendaService) Listar(ctx context.Context, filtro dto.VendaFilter) (*dto.VendaListResponse, error) {
	mes := filtro.Mes
	if mes == "" {
		mes = s.mesAtivo(ctx)
	}

	todas, err := s.repo.ListarTodas(ctx)
	if err != nil {
		return nil, err
	}
	sep := Separar(todas, mes)

	var base []model.Venda
	switch filtro.Aba {
	case "pendencias":
		base = sep.Pendencias
	case "entregas":
		base = sep.Entregas
	default:
		base = sep.VendasOk
	}

	data := make([]model.Venda, 0, len(base))
	for _, v := range base {
		if filtroAceita(&v, filtro) {
			data = append(data, v)
		}
	}

	return &dto.VendaListResponse{
		Data: data,
		Mes:  mes,
		Contagens: dto.ContagensAbas{
			Vendas:     len(sep.VendasOk),
			Pendencias: len(sep.Pendencias),
			Entregas:   len(sep.Entregas),
		},
	}, nil
}

func filtroAceita(v *model.Venda, f dto.VendaFilter) bool {
	if f.Cliente != "" && !strings.Contains(strings.ToLower(v.Cliente), strings.ToLower(f.Cliente)) {
		return false
	}
	if f.Percentual != "" {
		p, err := decimal.NewFromString(f.Percentual)
		if err != nil || !v.Percentual.Equal(p) {
			return false
		}
	}
	// Datas ISO comparam corretamente como texto.
	if money.IsISODate(f.DataIni) && money.IsISODate(v.Data) && v.Data < f.DataIni {
		return false
	}
	if money.IsISODate(f.DataFim) && money.IsISODate(v.Data) && v.Data > f.DataFim {
		return false
	}
	return true
}

// ─── Transições ──────────────────────────────────────────────────────────────

// ReceberRestante quita o saldo em aberto: entrada passa a cobrir o total a
// receber, pendência é limpa e pagoEm marca o momento.
func (s *vendaService) ReceberRestante(ctx context.Context, id uuid.UUID) (*model.Venda, error) {
	v, err := s.repo.BuscarPorID(ctx, id)
	if err != nil {
		return nil, errors.New("Venda não encontrada.")
	}
	if !v.Ativa() {
		return nil, errors.New("Venda cancelada não recebe pagamentos.")
	}

	agora := time.Now()
	v.ValorEntrada = v.TotalAReceber
	v.Restante = decimal.Zero
	v.StatusPagamento = model.PagamentoPago
	v.MotivoPendencia = nil
	v.TextoMotivo = ""
	v.PrevisaoPagamento = ""
	v.PagoEm = &agora
	v.AtualizadoEm = agora

	if err := s.repo.Atualizar(ctx, v); err != nil {
		return nil, err
	}
	s.invalidar(ctx)
	return v, nil
}

// MarcarEntregue conclui a entrega sem olhar o status de pagamento.
func (s *vendaService) MarcarEntregue(ctx context.Context, id uuid.UUID) (*model.Venda, error) {
	v, err := s.repo.BuscarPorID(ctx, id)
	if err != nil {
		return nil, errors.New("Venda não encontrada.")
	}
	if !v.Ativa() {
		return nil, errors.New("Venda cancelada não pode ser entregue.")
	}

	v.TipoEntrega = model.EntregaImediata
	v.DataEntrega = ""
	v.MotivoEntrega = ""
	v.AtualizadoEm = time.Now()

	if err := s.repo.Atualizar(ctx, v); err != nil {
		return nil, err
	}
	s.invalidar(ctx)
	return v, nil
}

// Cancelar é unidirecional e aditivo: nenhum outro campo é tocado.
func (s *vendaService) Cancelar(ctx context.Context, id uuid.UUID, motivo string) (*model.Venda, error) {
	motivo = strings.TrimSpace(sanitizador.Sanitize(motivo))
	if motivo == "" {
		return nil, errors.New("Motivo do cancelamento é obrigatório.")
	}
	v, err := s.repo.BuscarPorID(ctx, id)
	if err != nil {
		return nil, errors.New("Venda não encontrada.")
	}
	if !v.Ativa() {
		return nil, errors.New("Venda já está cancelada.")
	}

	hoje := money.LocalToday()
	v.Status = model.VendaCancelada
	v.MotivoCancelamento = motivo
	v.DataCancelamento = &hoje
	v.AtualizadoEm = time.Now()

	if err := s.repo.Atualizar(ctx, v); err != nil {
		return nil, err
	}
	s.invalidar(ctx)
	return v, nil
}

func (s *vendaService) mesAtivo(ctx context.Context) string {
	if s.prefs != nil {
		if mes, err := s.prefs.Obter(ctx, model.ChaveMesAtivo); err == nil && mes != "" {
			return mes
		}
	}
	return money.LocalMonthKey()
}

func (s *vendaService) invalidar(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidar(ctx)
	}
}
