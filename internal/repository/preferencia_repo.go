package repository

import (
	"context"
	"errors"
	"time"

	"github.com/ybatistazileno-stack/controle-vendas/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PreferenciaRepository é o slot chave-valor durável: mês ativo, meta por mês
// e versão do schema. Obter devolve "" para chave ausente, sem erro.
type PreferenciaRepository interface {
	Obter(ctx context.Context, chave string) (string, error)
	Definir(ctx context.Context, chave, valor string) error
}

type preferenciaRepo struct{ db *gorm.DB }

func NewPreferenciaRepository(db *gorm.DB) PreferenciaRepository {
	return &preferenciaRepo{db: db}
}

func (r *preferenciaRepo) Obter(ctx context.Context, chave string) (string, error) {
	var p model.Preferencia
	err := r.db.WithContext(ctx).First(&p, "chave = ?", chave).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return p.Valor, nil
}

func (r *preferenciaRepo) Definir(ctx context.Context, chave, valor string) error {
	p := model.Preferencia{Chave: chave, Valor: valor, AtualizadoEm: time.Now()}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "chave"}},
			DoUpdates: clause.AssignmentColumns([]string{"valor", "atualizado_em"}),
		}).
		Create(&p).Error
}
