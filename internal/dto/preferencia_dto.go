package dto

type MesAtivoResponse struct {
	Mes string `json:"mes"`
}

type DefinirMesAtivoRequest struct {
	Mes string `json:"mes" validate:"required,len=7"`
}

type MetaResponse struct {
	Mes  string `json:"mes"`
	Meta string `json:"meta"`
}

type DefinirMetaRequest struct {
	Meta string `json:"meta" validate:"required"`
}
