package service

import (
	"context"
	"testing"

	"github.com/ybatistazileno-stack/controle-vendas/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMesAtivoFallbackMesCorrente(t *testing.T) {
	svc := NewPreferenciaService(newStubPrefRepo(), nil)
	mes, err := svc.MesAtivo(context.Background())
	require.NoError(t, err)
	assert.Regexp(t, `^\d{4}-\d{2}$`, mes)
}

func TestDefinirMesAtivoValidaFormato(t *testing.T) {
	prefs := newStubPrefRepo()
	svc := NewPreferenciaService(prefs, nil)
	ctx := context.Background()

	require.NoError(t, svc.DefinirMesAtivo(ctx, "2024-03"))
	assert.Equal(t, "2024-03", prefs.valores[model.ChaveMesAtivo])

	for _, mes := range []string{"2024-13", "2024-3", "março", ""} {
		assert.Error(t, svc.DefinirMesAtivo(ctx, mes), "mes %q", mes)
	}
}

func TestMetaPorMes(t *testing.T) {
	prefs := newStubPrefRepo()
	svc := NewPreferenciaService(prefs, nil)
	ctx := context.Background()

	meta, err := svc.Meta(ctx, "2024-03")
	require.NoError(t, err)
	assert.True(t, meta.IsZero(), "sem meta definida = zero")

	require.NoError(t, svc.DefinirMeta(ctx, "2024-03", decimal.NewFromInt(1500)))
	meta, err = svc.Meta(ctx, "2024-03")
	require.NoError(t, err)
	assert.True(t, meta.Equal(decimal.NewFromInt(1500)))

	assert.Error(t, svc.DefinirMeta(ctx, "2024-03", decimal.NewFromInt(-1)))
	assert.Error(t, svc.DefinirMeta(ctx, "03/2024", decimal.NewFromInt(10)))
}
