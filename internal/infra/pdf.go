package infra

// pdf.go — monthly KPI report generation using go-pdf/fpdf.
// One A4 page: month header, headline KPIs (sold, commission, discounts,
// count), commission breakdown per percentage, open pendencies and the
// month goal progress. Saved to storagePath/relatorio_{mes}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/ybatistazileno-stack/controle-vendas/internal/dto"
	"github.com/ybatistazileno-stack/controle-vendas/internal/money"

	"github.com/go-pdf/fpdf"
)

// GerarRelatorioMensalPDF renders the metrics snapshot for a month and
// returns the absolute path of the generated file.
func GerarRelatorioMensalPDF(m *dto.MetricasResponse, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("relatorio_%s.pdf", m.Mes)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Controle de Vendas", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Relatório mensal — %s", m.Mes), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Gerado em "+time.Now().Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(4)

	col1 := contentW * 0.6
	col2 := contentW * 0.4

	linha := func(rotulo, valor string, destaque bool) {
		if destaque {
			pdf.SetFont("Helvetica", "B", 11)
		} else {
			pdf.SetFont("Helvetica", "", 10)
		}
		pdf.CellFormat(col1, 7, rotulo, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 7, valor, "", 1, "R", false, 0, "")
	}

	// ── KPIs do mês ──────────────────────────────────────────────────────────
	linha("Vendido no mês:", money.FormatBRL(m.VendidoMes), true)
	linha("Comissão do mês:", money.FormatBRL(m.ComissaoMes), false)
	linha("Descontos concedidos:", money.FormatBRL(m.DescontosMes), false)
	linha("Vendas finalizadas:", fmt.Sprintf("%d", m.ContagemMes), false)
	pdf.Ln(3)

	// ── Comissão por percentual ──────────────────────────────────────────────
	if len(m.ComissoesPorPerc) > 0 {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(contentW, 6, "Comissão por percentual", "B", 1, "L", false, 0, "")
		chaves := make([]string, 0, len(m.ComissoesPorPerc))
		for k := range m.ComissoesPorPerc {
			chaves = append(chaves, k)
		}
		sort.Strings(chaves)
		for _, k := range chaves {
			linha("  "+k, money.FormatBRL(m.ComissoesPorPerc[k]), false)
		}
		pdf.Ln(3)
	}

	// ── Pendências e meta ────────────────────────────────────────────────────
	linha("Pendências em aberto:", money.FormatBRL(m.PendenciasValor), false)
	if m.Meta.IsPositive() {
		linha("Meta do mês:", money.FormatBRL(m.Meta), false)
		linha("Falta para a meta:", money.FormatBRL(m.FaltaMeta), true)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, "Vendas finalizadas: quitadas, entrega imediata, dentro do mês.", "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, "Pendências somam saldos em aberto de qualquer mês.", "", 1, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
