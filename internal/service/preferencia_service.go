package service

import (
	"context"
	"errors"
	"regexp"

	"github.com/ybatistazileno-stack/controle-vendas/internal/model"
	"github.com/ybatistazileno-stack/controle-vendas/internal/money"
	"github.com/ybatistazileno-stack/controle-vendas/internal/repository"

	"github.com/shopspring/decimal"
)

var mesRe = regexp.MustCompile(`^\d{4}-\d{2}$`)

type PreferenciaService interface {
	MesAtivo(ctx context.Context) (string, error)
	DefinirMesAtivo(ctx context.Context, mes string) error
	Meta(ctx context.Context, mes string) (decimal.Decimal, error)
	DefinirMeta(ctx context.Context, mes string, valor decimal.Decimal) error
}

type preferenciaService struct {
	repo  repository.PreferenciaRepository
	cache MetricasCache
}

func NewPreferenciaService(repo repository.PreferenciaRepository, cache MetricasCache) PreferenciaService {
	return &preferenciaService{repo: repo, cache: cache}
}

// MesAtivo devolve o mês selecionado, com fallback no mês corrente local.
func (s *preferenciaService) MesAtivo(ctx context.Context) (string, error) {
	mes, err := s.repo.Obter(ctx, model.ChaveMesAtivo)
	if err != nil {
		return "", err
	}
	if mes == "" {
		mes = money.LocalMonthKey()
	}
	return mes, nil
}

func (s *preferenciaService) DefinirMesAtivo(ctx context.Context, mes string) error {
	if !mesRe.MatchString(mes) {
		return errors.New("Mês inválido, use o formato AAAA-MM.")
	}
	if _, err := money.MonthToInt(mes); err != nil {
		return errors.New("Mês inválido, use o formato AAAA-MM.")
	}
	return s.repo.Definir(ctx, model.ChaveMesAtivo, mes)
}

func (s *preferenciaService) Meta(ctx context.Context, mes string) (decimal.Decimal, error) {
	if !mesRe.MatchString(mes) {
		return decimal.Zero, errors.New("Mês inválido, use o formato AAAA-MM.")
	}
	raw, err := s.repo.Obter(ctx, model.ChaveMetaPrefixo+mes)
	if err != nil {
		return decimal.Zero, err
	}
	if raw == "" {
		return decimal.Zero, nil
	}
	meta, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, nil
	}
	return meta, nil
}

// DefinirMeta grava a meta do mês; a meta participa do KPI faltaMeta, então o
// cache de métricas cai junto.
func (s *preferenciaService) DefinirMeta(ctx context.Context, mes string, valor decimal.Decimal) error {
	if !mesRe.MatchString(mes) {
		return errors.New("Mês inválido, use o formato AAAA-MM.")
	}
	if valor.IsNegative() {
		return errors.New("Meta não pode ser negativa.")
	}
	if err := s.repo.Definir(ctx, model.ChaveMetaPrefixo+mes, valor.StringFixed(2)); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Invalidar(ctx)
	}
	return nil
}
