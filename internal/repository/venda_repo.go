package repository

import (
	"context"

	"github.com/ybatistazileno-stack/controle-vendas/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VendaRepository interface {
	Criar(ctx context.Context, v *model.Venda) error
	// CriarLote insere o lote inteiro em uma única transação: ou tudo entra,
	// ou nada entra. O fallback registro-a-registro do import depende disso.
	CriarLote(ctx context.Context, vendas []model.Venda) error
	Atualizar(ctx context.Context, v *model.Venda) error
	// SalvarLote grava (upsert) o conjunto normalizado pela migração.
	SalvarLote(ctx context.Context, vendas []model.Venda) error
	Remover(ctx context.Context, id uuid.UUID) error
	BuscarPorID(ctx context.Context, id uuid.UUID) (*model.Venda, error)
	ListarTodas(ctx context.Context) ([]model.Venda, error)
}

type vendaRepo struct{ db *gorm.DB }

func NewVendaRepository(db *gorm.DB) VendaRepository { return &vendaRepo{db: db} }

func (r *vendaRepo) Criar(ctx context.Context, v *model.Venda) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *vendaRepo) CriarLote(ctx context.Context, vendas []model.Venda) error {
	if len(vendas) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&vendas).Error
	})
}

func (r *vendaRepo) Atualizar(ctx context.Context, v *model.Venda) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *vendaRepo) SalvarLote(ctx context.Context, vendas []model.Venda) error {
	if len(vendas) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range vendas {
			if err := tx.Save(&vendas[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *vendaRepo) Remover(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Venda{}, "id = ?", id).Error
}

func (r *vendaRepo) BuscarPorID(ctx context.Context, id uuid.UUID) (*model.Venda, error) {
	var v model.Venda
	err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error
	return &v, err
}

func (r *vendaRepo) ListarTodas(ctx context.Context) ([]model.Venda, error) {
	var vendas []model.Venda
	err := r.db.WithContext(ctx).
		Order("data DESC, criado_em DESC").
		Find(&vendas).Error
	return vendas, err
}
