package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/ybatistazileno-stack/controle-vendas/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerificarNormalizaERegistraVersao(t *testing.T) {
	repo := newStubVendaRepo()
	prefs := newStubPrefRepo()

	antiga := &model.Venda{
		ID:           uuid.New(),
		Data:         "2024-03-10",
		Cliente:      "Ana",
		Valor:        decimal.NewFromInt(100),
		ValorEntrada: decimal.NewFromInt(500), // acima do valor: registro antigo
		Percentual:   decimal.NewFromInt(200), // fora de faixa
	}
	repo.vendas[antiga.ID] = antiga
	repo.ordem = append(repo.ordem, antiga.ID)

	NewMigracaoService(repo, prefs).Verificar(context.Background())

	migrada, err := repo.BuscarPorID(context.Background(), antiga.ID)
	require.NoError(t, err)
	assert.True(t, migrada.ValorEntrada.Equal(dec("100")))
	assert.True(t, migrada.Percentual.Equal(dec("5")))
	assert.Equal(t, model.PagamentoPago, migrada.StatusPagamento)
	assert.Equal(t, strconv.Itoa(versaoSchema), prefs.valores[model.ChaveVersaoSchema])
}

func TestVerificarNaoRodaComVersaoAtual(t *testing.T) {
	repo := newStubVendaRepo()
	prefs := newStubPrefRepo()
	prefs.valores[model.ChaveVersaoSchema] = strconv.Itoa(versaoSchema)

	NewMigracaoService(repo, prefs).Verificar(context.Background())
	assert.Equal(t, 0, repo.salvarLoteCalls)
}

func TestVerificarFalhaNaoAvancaVersao(t *testing.T) {
	repo := newStubVendaRepo()
	repo.falharSalvar = true
	prefs := newStubPrefRepo()

	v := &model.Venda{
		ID: uuid.New(), Data: "2024-03-10", Cliente: "Ana",
		Valor: decimal.NewFromInt(100), Percentual: decimal.NewFromInt(5),
	}
	repo.vendas[v.ID] = v
	repo.ordem = append(repo.ordem, v.ID)

	NewMigracaoService(repo, prefs).Verificar(context.Background())
	assert.Empty(t, prefs.valores[model.ChaveVersaoSchema], "falha deixa a versão parada para retry no próximo boot")

	// Próximo boot, sem a falha: migra e avança.
	repo.falharSalvar = false
	NewMigracaoService(repo, prefs).Verificar(context.Background())
	assert.Equal(t, strconv.Itoa(versaoSchema), prefs.valores[model.ChaveVersaoSchema])
}

func TestVerificarPreservaIDs(t *testing.T) {
	repo := newStubVendaRepo()
	prefs := newStubPrefRepo()

	id := uuid.New()
	repo.vendas[id] = &model.Venda{
		ID: id, Data: "2024-03-10", Cliente: "Ana",
		Valor: decimal.NewFromInt(100), Percentual: decimal.NewFromInt(5),
	}
	repo.ordem = append(repo.ordem, id)

	NewMigracaoService(repo, prefs).Verificar(context.Background())

	todas, err := repo.ListarTodas(context.Background())
	require.NoError(t, err)
	require.Len(t, todas, 1)
	assert.Equal(t, id, todas[0].ID)
}
