package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreakerAbreAposFalhasConsecutivas(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 3, SuccessThreshold: 1, OpenTimeout: time.Hour})
	falha := errors.New("smtp down")

	for i := 0; i < 3; i++ {
		err := cb.Execute(func() error { return falha })
		require.ErrorIs(t, err, falha)
	}
	assert.Equal(t, CBOpen, cb.State())

	err := cb.Execute(func() error { return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen, "aberto falha rápido sem chamar fn")
}

func TestCircuitBreakerFechaDepoisDeProbeComSucesso(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, SuccessThreshold: 2, OpenTimeout: time.Millisecond})

	require.Error(t, cb.Execute(func() error { return errors.New("x") }))
	require.Equal(t, CBOpen, cb.State())

	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, CBHalfOpen, cb.State())

	require.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, CBHalfOpen, cb.State(), "um sucesso ainda não fecha")
	require.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreakerSucessoZeraContagem(t *testing.T) {
	cb := NewCircuitBreaker(DefaultCBConfig())

	for i := 0; i < 4; i++ {
		_ = cb.Execute(func() error { return errors.New("x") })
	}
	require.NoError(t, cb.Execute(func() error { return nil }))

	_ = cb.Execute(func() error { return errors.New("x") })
	assert.Equal(t, CBClosed, cb.State(), "sucesso no meio reinicia o limiar")
}
