package handler

import (
	"net/http"

	"github.com/ybatistazileno-stack/controle-vendas/internal/apierror"
	"github.com/ybatistazileno-stack/controle-vendas/internal/dto"
	"github.com/ybatistazileno-stack/controle-vendas/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type PreferenciasHandler struct{ svc service.PreferenciaService }

func NewPreferenciasHandler(svc service.PreferenciaService) *PreferenciasHandler {
	return &PreferenciasHandler{svc: svc}
}

// MesAtivo godoc
// @Summary      Mês ativo do dashboard
// @Tags         preferencias
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.MesAtivoResponse
// @Router       /v1/preferencias/mes-ativo [get]
func (h *PreferenciasHandler) MesAtivo(c *gin.Context) {
	mes, err := h.svc.MesAtivo(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao ler preferências"))
		return
	}
	c.JSON(http.StatusOK, dto.MesAtivoResponse{Mes: mes})
}

// DefinirMesAtivo godoc
// @Summary      Trocar o mês ativo
// @Tags         preferencias
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.DefinirMesAtivoRequest true "Mês YYYY-MM"
// @Success      200 {object} dto.MesAtivoResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/preferencias/mes-ativo [put]
func (h *PreferenciasHandler) DefinirMesAtivo(c *gin.Context) {
	var req dto.DefinirMesAtivoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.DefinirMesAtivo(c.Request.Context(), req.Mes); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, dto.MesAtivoResponse{Mes: req.Mes})
}

// Meta godoc
// @Summary      Meta de vendas do mês
// @Tags         preferencias
// @Produce      json
// @Security     BearerAuth
// @Param        mes path string true "Mês YYYY-MM"
// @Success      200 {object} dto.MetaResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/preferencias/meta/{mes} [get]
func (h *PreferenciasHandler) Meta(c *gin.Context) {
	mes := c.Param("mes")
	meta, err := h.svc.Meta(c.Request.Context(), mes)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, dto.MetaResponse{Mes: mes, Meta: meta.StringFixed(2)})
}

// DefinirMeta godoc
// @Summary      Definir a meta de vendas do mês
// @Tags         preferencias
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        mes  path string                 true "Mês YYYY-MM"
// @Param        body body dto.DefinirMetaRequest true "Valor da meta"
// @Success      200 {object} dto.MetaResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/preferencias/meta/{mes} [put]
func (h *PreferenciasHandler) DefinirMeta(c *gin.Context) {
	mes := c.Param("mes")
	var req dto.DefinirMetaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	meta, err := decimal.NewFromString(req.Meta)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Meta inválida."))
		return
	}
	if err := h.svc.DefinirMeta(c.Request.Context(), mes, meta); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, dto.MetaResponse{Mes: mes, Meta: meta.StringFixed(2)})
}
