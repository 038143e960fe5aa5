package handler

import (
	"net/http"

	"github.com/ybatistazileno-stack/controle-vendas/internal/apierror"
	"github.com/ybatistazileno-stack/controle-vendas/internal/dto"
	"github.com/ybatistazileno-stack/controle-vendas/internal/worker"

	"github.com/gin-gonic/gin"
)

type RelatoriosHandler struct{ dispatcher *worker.Dispatcher }

func NewRelatoriosHandler(dispatcher *worker.Dispatcher) *RelatoriosHandler {
	return &RelatoriosHandler{dispatcher: dispatcher}
}

// SolicitarMensal godoc
// @Summary      Solicitar o relatório mensal em PDF
// @Description  Enfileira a geração do relatório; o PDF chega por e-mail quando pronto.
// @Tags         relatorios
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RelatorioMensalRequest true "Mês e e-mail de destino"
// @Success      202 {object} map[string]string
// @Failure      400 {object} apierror.APIError
// @Router       /v1/relatorios/mensal [post]
func (h *RelatoriosHandler) SolicitarMensal(c *gin.Context) {
	var req dto.RelatorioMensalRequest
	if !bindAndValidate(c, &req) {
		return
	}
	payload := worker.RelatorioJobPayload{Mes: req.Mes, Email: req.Email}
	if err := h.dispatcher.EnqueueRelatorio(c.Request.Context(), payload); err != nil {
		c.JSON(http.StatusServiceUnavailable, apierror.New("Fila de relatórios indisponível no momento"))
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "enfileirado", "mes": req.Mes})
}
