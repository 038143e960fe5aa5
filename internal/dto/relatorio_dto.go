package dto

// RelatorioMensalRequest dispara a geração assíncrona do relatório de um mês,
// entregue em PDF no e-mail informado.
type RelatorioMensalRequest struct {
	Mes   string `json:"mes"   validate:"required,len=7"`
	Email string `json:"email" validate:"required,email"`
}
