package infra

// ics.go — iCalendar generation for scheduled deliveries. One all-day VEVENT
// per sale, importable by any RFC 5545 consumer. No library: the payload is a
// dozen fixed lines and the escaping rules fit in one function.

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ybatistazileno-stack/controle-vendas/internal/model"
	"github.com/ybatistazileno-stack/controle-vendas/internal/money"
)

var icsEscaper = strings.NewReplacer(
	"\\", "\\\\",
	";", "\\;",
	",", "\\,",
	"\r\n", "\\n",
	"\n", "\\n",
)

var nomeArquivoRe = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// GerarEntregaICS builds the calendar payload for an Agendada delivery.
// Returns the suggested file name and the .ics body.
func GerarEntregaICS(v *model.Venda, agora time.Time) (string, []byte, error) {
	if v.TipoEntrega != model.EntregaAgendada || !money.IsISODate(v.DataEntrega) {
		return "", nil, fmt.Errorf("venda sem entrega agendada com data válida")
	}

	inicio, err := time.Parse("2006-01-02", v.DataEntrega)
	if err != nil {
		return "", nil, fmt.Errorf("data de entrega ilegível: %w", err)
	}
	fim := inicio.AddDate(0, 0, 1)

	descricao := "Entrega agendada"
	if strings.TrimSpace(v.Produtos) != "" {
		descricao = "Produtos: " + v.Produtos
	}

	var b strings.Builder
	linha := func(s string) {
		b.WriteString(s)
		b.WriteString("\r\n")
	}
	linha("BEGIN:VCALENDAR")
	linha("VERSION:2.0")
	linha("PRODID:-//controle-vendas//entregas//PT-BR")
	linha("BEGIN:VEVENT")
	linha("UID:" + v.ID.String() + "@controle-vendas")
	linha("DTSTAMP:" + agora.UTC().Format("20060102T150405Z"))
	linha("DTSTART;VALUE=DATE:" + inicio.Format("20060102"))
	linha("DTEND;VALUE=DATE:" + fim.Format("20060102"))
	linha("SUMMARY:" + icsEscaper.Replace("Entrega - "+v.Cliente))
	linha("DESCRIPTION:" + icsEscaper.Replace(descricao))
	linha("END:VEVENT")
	linha("END:VCALENDAR")

	cliente := nomeArquivoRe.ReplaceAllString(strings.TrimSpace(v.Cliente), "_")
	nome := fmt.Sprintf("entrega_%s_%s.ics", cliente, v.DataEntrega)
	return nome, []byte(b.String()), nil
}
