package handler

import (
	"net/http"

	"github.com/ybatistazileno-stack/controle-vendas/internal/apierror"
	"github.com/ybatistazileno-stack/controle-vendas/internal/service"

	"github.com/gin-gonic/gin"
)

type MetricasHandler struct{ svc service.MetricasService }

func NewMetricasHandler(svc service.MetricasService) *MetricasHandler {
	return &MetricasHandler{svc: svc}
}

// Obter godoc
// @Summary      KPIs do mês
// @Description  Vendido, comissão (total e por percentual), descontos, contagem, pendências em aberto e progresso da meta.
// @Tags         metricas
// @Produce      json
// @Security     BearerAuth
// @Param        mes query string false "Mês YYYY-MM (default: mês ativo)"
// @Success      200 {object} dto.MetricasResponse
// @Failure      500 {object} apierror.APIError
// @Router       /v1/metricas [get]
func (h *MetricasHandler) Obter(c *gin.Context) {
	resp, err := h.svc.ObterMetricas(c.Request.Context(), c.Query("mes"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao calcular métricas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
