package infra

import (
	"strings"
	"testing"
	"time"

	"github.com/ybatistazileno-stack/controle-vendas/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dtstamp = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func TestGerarEntregaICS(t *testing.T) {
	v := &model.Venda{
		ID:          uuid.New(),
		Cliente:     "Maria Silva",
		Produtos:    "2 panelas",
		TipoEntrega: model.EntregaAgendada,
		DataEntrega: "2024-04-01",
	}

	nome, conteudo, err := GerarEntregaICS(v, dtstamp)
	require.NoError(t, err)

	assert.Equal(t, "entrega_Maria_Silva_2024-04-01.ics", nome)

	corpo := string(conteudo)
	assert.Contains(t, corpo, "BEGIN:VCALENDAR\r\n")
	assert.Contains(t, corpo, "DTSTART;VALUE=DATE:20240401\r\n")
	assert.Contains(t, corpo, "DTEND;VALUE=DATE:20240402\r\n", "evento de dia inteiro termina no dia seguinte")
	assert.Contains(t, corpo, "DTSTAMP:20240315T103000Z\r\n")
	assert.Contains(t, corpo, "SUMMARY:Entrega - Maria Silva\r\n")
	assert.Contains(t, corpo, "DESCRIPTION:Produtos: 2 panelas\r\n")
	assert.True(t, strings.HasSuffix(corpo, "END:VCALENDAR\r\n"))
}

func TestGerarEntregaICSViradaDeMes(t *testing.T) {
	v := &model.Venda{
		ID:          uuid.New(),
		Cliente:     "Ana",
		TipoEntrega: model.EntregaAgendada,
		DataEntrega: "2024-01-31",
	}
	_, conteudo, err := GerarEntregaICS(v, dtstamp)
	require.NoError(t, err)
	assert.Contains(t, string(conteudo), "DTEND;VALUE=DATE:20240201")
}

func TestGerarEntregaICSEscapaTexto(t *testing.T) {
	v := &model.Venda{
		ID:          uuid.New(),
		Cliente:     "Silva, Filhos; Cia",
		Produtos:    "linha 1\nlinha 2",
		TipoEntrega: model.EntregaAgendada,
		DataEntrega: "2024-04-01",
	}
	nome, conteudo, err := GerarEntregaICS(v, dtstamp)
	require.NoError(t, err)

	corpo := string(conteudo)
	assert.Contains(t, corpo, `SUMMARY:Entrega - Silva\, Filhos\; Cia`)
	assert.Contains(t, corpo, `DESCRIPTION:Produtos: linha 1\nlinha 2`)
	assert.Equal(t, "entrega_Silva_Filhos_Cia_2024-04-01.ics", nome)
}

func TestGerarEntregaICSRecusaSemAgendamento(t *testing.T) {
	v := &model.Venda{ID: uuid.New(), Cliente: "Ana", TipoEntrega: model.EntregaImediata}
	_, _, err := GerarEntregaICS(v, dtstamp)
	assert.Error(t, err)

	v.TipoEntrega = model.EntregaAgendada
	v.DataEntrega = "01/04/2024"
	_, _, err = GerarEntregaICS(v, dtstamp)
	assert.Error(t, err)
}
