package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ybatistazileno-stack/controle-vendas/internal/dto"
	"github.com/ybatistazileno-stack/controle-vendas/internal/model"
	"github.com/ybatistazileno-stack/controle-vendas/internal/money"
	"github.com/ybatistazileno-stack/controle-vendas/internal/repository"

	"github.com/rs/zerolog/log"
)

// loteImportacao é o tamanho do chunk gravado por transação no restore.
const loteImportacao = 50

type BackupService interface {
	Exportar(ctx context.Context) ([]model.Venda, string, error)
	Importar(ctx context.Context, itens []map[string]any) (*dto.RelatorioImportacao, error)
}

type backupService struct {
	repo  repository.VendaRepository
	cache MetricasCache
}

func NewBackupService(repo repository.VendaRepository, cache MetricasCache) BackupService {
	return &backupService{repo: repo, cache: cache}
}

// Exportar devolve o livro completo e o nome de arquivo sugerido,
// BACKUP_VENDAS_YYYY-MM-DD.json com a data local.
func (s *backupService) Exportar(ctx context.Context) ([]model.Venda, string, error) {
	vendas, err := s.repo.ListarTodas(ctx)
	if err != nil {
		return nil, "", err
	}
	nome := fmt.Sprintf("BACKUP_VENDAS_%s.json", money.LocalToday())
	return vendas, nome, nil
}

// Assinaturas de deduplicação. A estrita inclui criadoEm e vale para itens que
// trazem esse campo; a frouxa cobre backups legados sem ele. Valor entra com
// duas casas fixas para que 100 e 100.00 colidam.

func assinaturaEstrita(v *model.Venda) string {
	return fmt.Sprintf("%s|%s|%s|%s",
		v.Data, v.Cliente, v.Valor.StringFixed(2),
		v.CriadoEm.UTC().Format(time.RFC3339Nano))
}

func assinaturaFrouxa(v *model.Venda) string {
	return fmt.Sprintf("%s|%s|%s", v.Data, v.Cliente, v.Valor.StringFixed(2))
}

// Importar mescla um backup no livro sem jamais sobrescrever registro
// existente. Cada item aceito entra nos DOIS índices de assinatura na hora,
// então duplicatas dentro do próprio arquivo também são barradas. A gravação
// acontece em chunks transacionais; se um chunk falhar em bloco, cada registro
// tenta sozinho e só os que falharem individualmente viram "ignoradas".
func (s *backupService) Importar(ctx context.Context, itens []map[string]any) (*dto.RelatorioImportacao, error) {
	existentes, err := s.repo.ListarTodas(ctx)
	if err != nil {
		return nil, err
	}

	estritas := make(map[string]struct{}, len(existentes))
	frouxas := make(map[string]struct{}, len(existentes))
	for i := range existentes {
		estritas[assinaturaEstrita(&existentes[i])] = struct{}{}
		frouxas[assinaturaFrouxa(&existentes[i])] = struct{}{}
	}

	rel := &dto.RelatorioImportacao{}
	agora := time.Now()
	lote := make([]model.Venda, 0, loteImportacao)

	flush := func() error {
		if len(lote) == 0 {
			return nil
		}
		if err := s.repo.CriarLote(ctx, lote); err != nil {
			log.Warn().Err(err).Int("tamanho", len(lote)).
				Msg("lote de importação falhou, tentando registro a registro")
			for i := range lote {
				if err := s.repo.Criar(ctx, &lote[i]); err != nil {
					log.Warn().Err(err).Str("cliente", lote[i].Cliente).
						Msg("registro do backup descartado")
					rel.Importadas--
					rel.Ignoradas++
				}
			}
		}
		lote = lote[:0]
		return nil
	}

	for _, item := range itens {
		bruto, temCriadoEm := ExtrairItemBackup(item)
		v, ok := NormalizarVenda(bruto, agora)
		if !ok {
			rel.Ignoradas++
			continue
		}

		if temCriadoEm {
			if _, dup := estritas[assinaturaEstrita(v)]; dup {
				rel.Duplicadas++
				continue
			}
		} else {
			if _, dup := frouxas[assinaturaFrouxa(v)]; dup {
				rel.Duplicadas++
				continue
			}
		}
		estritas[assinaturaEstrita(v)] = struct{}{}
		frouxas[assinaturaFrouxa(v)] = struct{}{}

		rel.Importadas++
		lote = append(lote, *v)
		if len(lote) >= loteImportacao {
			if err := flush(); err != nil {
				return nil, err
			}
			// Ponto de cedência entre chunks em arquivos grandes.
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidar(ctx)
	}
	log.Info().Int("importadas", rel.Importadas).Int("duplicadas", rel.Duplicadas).
		Int("ignoradas", rel.Ignoradas).Msg("importação de backup concluída")
	return rel, nil
}
