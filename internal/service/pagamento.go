package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ybatistazileno-stack/controle-vendas/internal/model"
)

// Formas de pagamento canônicas aceitas no formulário.
var PagamentoOptions = []string{
	"Pix • QR Code", "Pix • CNPJ", "Débito", "Dinheiro", "Boleto",
	"Link de pagamento", "Transferência",
	"Crédito (1x)", "Crédito (2x)", "Crédito (3x)", "Crédito (4x)",
	"Crédito (5x)", "Crédito (6x)", "Crédito (7x)", "Crédito (8x)",
	"Crédito (9x)", "Crédito (10x)", "Crédito (11x)", "Crédito (12x)",
}

var parcelasRe = regexp.MustCompile(`(\d+)\s*x`)

// NormalizarPagamentoDetalhe mapeia texto livre (inclusive rótulos de backups
// antigos) para a forma canônica. Parcelas de crédito são limitadas a 1..12.
// Entrada irreconhecível cai no padrão "Pix • QR Code"; o rótulo-resumo
// "Misto" é preservado para manter a renormalização idempotente.
func NormalizarPagamentoDetalhe(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case s == strings.ToLower(model.PagamentoMisto):
		return model.PagamentoMisto
	case strings.Contains(s, "pix") && strings.Contains(s, "qr"):
		return "Pix • QR Code"
	case strings.Contains(s, "pix") && strings.Contains(s, "cnpj"):
		return "Pix • CNPJ"
	case strings.Contains(s, "deb") || strings.Contains(s, "déb"):
		return "Débito"
	case strings.Contains(s, "din"):
		return "Dinheiro"
	case strings.Contains(s, "boleto"):
		return "Boleto"
	case strings.Contains(s, "link"):
		return "Link de pagamento"
	case strings.Contains(s, "transfer"):
		return "Transferência"
	}

	if strings.Contains(s, "cred") || strings.Contains(s, "créd") || strings.Contains(s, "cart") {
		parcelas := 1
		if m := parcelasRe.FindStringSubmatch(s); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				parcelas = n
			}
			if parcelas < 1 {
				parcelas = 1
			}
			if parcelas > 12 {
				parcelas = 12
			}
		}
		return fmt.Sprintf("Crédito (%dx)", parcelas)
	}

	return "Pix • QR Code"
}
