package service

import (
	"context"
	"strconv"
	"time"

	"github.com/ybatistazileno-stack/controle-vendas/internal/model"
	"github.com/ybatistazileno-stack/controle-vendas/internal/repository"

	"github.com/rs/zerolog/log"
)

// versaoSchema é a versão corrente da normalização de vendas. Subir este
// número força uma renormalização completa do livro no próximo boot.
const versaoSchema = 6

type MigracaoService interface {
	Verificar(ctx context.Context)
}

type migracaoService struct {
	repo  repository.VendaRepository
	prefs repository.PreferenciaRepository
}

func NewMigracaoService(repo repository.VendaRepository, prefs repository.PreferenciaRepository) MigracaoService {
	return &migracaoService{repo: repo, prefs: prefs}
}

// Verificar roda a migração de schema quando a versão persistida está atrás da
// corrente. Falha nunca derruba o boot: o erro vira log e a versão NÃO avança,
// então a próxima subida tenta de novo. A normalização é idempotente, logo
// reexecutar sobre dados já migrados é inócuo.
func (s *migracaoService) Verificar(ctx context.Context) {
	raw, err := s.prefs.Obter(ctx, model.ChaveVersaoSchema)
	if err != nil {
		log.Error().Err(err).Msg("migração: falha ao ler versão do schema")
		return
	}
	atual, _ := strconv.Atoi(raw)
	if atual >= versaoSchema {
		return
	}

	log.Info().Int("de", atual).Int("para", versaoSchema).Msg("migração de schema iniciada")

	vendas, err := s.repo.ListarTodas(ctx)
	if err != nil {
		log.Error().Err(err).Msg("migração: falha ao carregar vendas")
		return
	}

	agora := time.Now()
	normalizadas := make([]model.Venda, 0, len(vendas))
	descartadas := 0
	for i := range vendas {
		v, ok := NormalizarVenda(vendas[i], agora)
		if !ok {
			// Registro que nem a tolerância salva: fica como está no banco.
			descartadas++
			continue
		}
		v.ID = vendas[i].ID
		normalizadas = append(normalizadas, *v)
	}

	if err := s.repo.SalvarLote(ctx, normalizadas); err != nil {
		log.Error().Err(err).Msg("migração: falha ao gravar vendas normalizadas")
		return
	}
	if err := s.prefs.Definir(ctx, model.ChaveVersaoSchema, strconv.Itoa(versaoSchema)); err != nil {
		log.Error().Err(err).Msg("migração: falha ao gravar versão do schema")
		return
	}

	log.Info().Int("normalizadas", len(normalizadas)).Int("intocadas", descartadas).
		Int("versao", versaoSchema).Msg("migração de schema concluída")
}
