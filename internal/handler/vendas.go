package handler

import (
	"net/http"

	"github.com/ybatistazileno-stack/controle-vendas/internal/apierror"
	"github.com/ybatistazileno-stack/controle-vendas/internal/dto"
	"github.com/ybatistazileno-stack/controle-vendas/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VendasHandler struct{ svc service.VendaService }

func NewVendasHandler(svc service.VendaService) *VendasHandler { return &VendasHandler{svc: svc} }

// Criar godoc
// @Summary      Registrar uma nova venda
// @Description  Valida o formulário, resolve desconto e pagamento e grava a venda com todos os campos derivados.
// @Tags         vendas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.VendaFormRequest true "Formulário da venda"
// @Success      201  {object} model.Venda
// @Failure      400  {object} apierror.APIError
// @Router       /v1/vendas [post]
func (h *VendasHandler) Criar(c *gin.Context) {
	var req dto.VendaFormRequest
	if !bindAndValidate(c, &req) {
		return
	}
	v, err := h.svc.Criar(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, v)
}

// Atualizar godoc
// @Summary      Editar uma venda
// @Description  Reaplica validação e derivação do zero sobre o formulário editado; campos de cancelamento e criação são preservados.
// @Tags         vendas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string               true "UUID da venda"
// @Param        body body dto.VendaFormRequest true "Formulário da venda"
// @Success      200  {object} model.Venda
// @Failure      400  {object} apierror.APIError
// @Router       /v1/vendas/{id} [put]
func (h *VendasHandler) Atualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.VendaFormRequest
	if !bindAndValidate(c, &req) {
		return
	}
	v, err := h.svc.Atualizar(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, v)
}

// Listar godoc
// @Summary      Listar vendas por aba
// @Description  Retorna a projeção pedida (vendas do mês, pendências ou entregas) com filtros e contagens das três abas.
// @Tags         vendas
// @Produce      json
// @Security     BearerAuth
// @Param        mes        query string false "Mês YYYY-MM (default: mês ativo)"
// @Param        aba        query string false "vendas | pendencias | entregas"
// @Param        cliente    query string false "Busca parcial por cliente"
// @Param        dataIni    query string false "Data inicial YYYY-MM-DD"
// @Param        dataFim    query string false "Data final YYYY-MM-DD"
// @Param        percentual query string false "Percentual exato de comissão"
// @Success      200 {object} dto.VendaListResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/vendas [get]
func (h *VendasHandler) Listar(c *gin.Context) {
	var filtro dto.VendaFilter
	if err := c.ShouldBindQuery(&filtro); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filtro)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar vendas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// BuscarPorID godoc
// @Summary      Obter uma venda
// @Tags         vendas
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID da venda"
// @Success      200 {object} model.Venda
// @Failure      404 {object} apierror.APIError
// @Router       /v1/vendas/{id} [get]
func (h *VendasHandler) BuscarPorID(c *gin.Context) {
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
	c.JSON(http.StatusOK, v)
}

// Remover godoc
// @Summary      Excluir uma venda
// @Description  Exclusão definitiva do registro. Para manter histórico use o cancelamento.
// @Tags         vendas
// @Security     BearerAuth
// @Param        id path string true "UUID da venda"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /v1/vendas/{id} [delete]
func (h *VendasHandler) Remover(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.Remover(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// ReceberRestante godoc
// @Summary      Quitar o saldo em aberto
// @Description  Marca a venda como paga: entrada cobre o total a receber, pendência é limpa e pagoEm é registrado.
// @Tags         vendas
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID da venda"
// @Success      200 {object} model.Venda
// @Failure      400 {object} apierror.APIError
// @Router       /v1/vendas/{id}/receber-restante [post]
func (h *VendasHandler) ReceberRestante(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	v, err := h.svc.ReceberRestante(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, v)
}

// MarcarEntregue godoc
// @Summary      Concluir a entrega
// @Description  Converte a entrega em Imediata e limpa data e motivo; o status de pagamento não é tocado.
// @Tags         vendas
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID da venda"
// @Success      200 {object} model.Venda
// @Failure      400 {object} apierror.APIError
// @Router       /v1/vendas/{id}/entregar [post]
func (h *VendasHandler) MarcarEntregue(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	v, err := h.svc.MarcarEntregue(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, v)
}

// Cancelar godoc
// @Summary      Cancelar uma venda
// @Description  Cancelamento irreversível com motivo obrigatório. A venda sai de todas as projeções, mas permanece no livro.
// @Tags         vendas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                   true "UUID da venda"
// @Param        body body dto.CancelarVendaRequest true "Motivo do cancelamento"
// @Success      200 {object} model.Venda
// @Failure      400 {object} apierror.APIError
// @Router       /v1/vendas/{id}/cancelar [post]
func (h *VendasHandler) Cancelar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.CancelarVendaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	v, err := h.svc.Cancelar(c.Request.Context(), id, req.Motivo)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, v)
}
