package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ybatistazileno-stack/controle-vendas/internal/apierror"
	"github.com/ybatistazileno-stack/controle-vendas/internal/service"

	"github.com/gin-gonic/gin"
)

type BackupHandler struct{ svc service.BackupService }

func NewBackupHandler(svc service.BackupService) *BackupHandler { return &BackupHandler{svc: svc} }

// Exportar godoc
// @Summary      Exportar o livro de vendas
// @Description  Baixa todas as vendas em JSON, com nome de arquivo BACKUP_VENDAS_AAAA-MM-DD.json.
// @Tags         backup
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} model.Venda
// @Failure      500 {object} apierror.APIError
// @Router       /v1/backup [get]
func (h *BackupHandler) Exportar(c *gin.Context) {
	vendas, nome, err := h.svc.Exportar(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao exportar backup"))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, nome))
	c.JSON(http.StatusOK, vendas)
}

// Importar godoc
// @Summary      Importar um backup
// @Description  Mescla o arquivo no livro sem sobrescrever registros existentes; duplicatas são detectadas por assinatura.
// @Tags         backup
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body []map[string]interface{} true "Conteúdo do backup (lista de vendas)"
// @Success      200 {object} dto.RelatorioImportacao
// @Failure      400 {object} apierror.APIError
// @Router       /v1/backup/importar [post]
func (h *BackupHandler) Importar(c *gin.Context) {
	// UseNumber preserva os dígitos exatos dos valores monetários até a
	// conversão para decimal.
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()
	var itens []map[string]any
	if err := dec.Decode(&itens); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Arquivo de backup inválido: esperava uma lista de vendas"))
		return
	}

	rel, err := h.svc.Importar(c.Request.Context(), itens)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao importar backup"))
		return
	}
	c.JSON(http.StatusOK, rel)
}
