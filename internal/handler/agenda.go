package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ybatistazileno-stack/controle-vendas/internal/apierror"
	"github.com/ybatistazileno-stack/controle-vendas/internal/infra"
	"github.com/ybatistazileno-stack/controle-vendas/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AgendaHandler struct{ svc service.VendaService }

func NewAgendaHandler(svc service.VendaService) *AgendaHandler { return &AgendaHandler{svc: svc} }

// BaixarICS godoc
// @Summary      Baixar o evento de entrega (.ics)
// @Description  Gera um evento iCalendar de dia inteiro para a entrega agendada da venda.
// @Tags         agenda
// @Produce      text/calendar
// @Security     BearerAuth
// @Param        id path string true "UUID da venda"
// @Success      200 {string} string "payload iCalendar"
// @Failure      400 {object} apierror.APIError
// @Router       /v1/vendas/{id}/agenda.ics [get]
func (h *AgendaHandler) BaixarICS(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	v, err := h.svc.BuscarPorID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	nome, conteudo, err := infra.GerarEntregaICS(v, time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, nome))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", conteudo)
}
