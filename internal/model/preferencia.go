package model

import "time"

// Chaves conhecidas do slot chave-valor. A meta mensal usa o prefixo
// ChaveMetaPrefixo + "YYYY-MM".
const (
	ChaveMesAtivo     = "mes_ativo"
	ChaveVersaoSchema = "vendas_schema_version"
	ChaveMetaPrefixo  = "meta_"
)

// Preferencia é um par chave-valor durável: mês ativo, meta por mês e a
// versão do schema usada pela migração de normalização.
type Preferencia struct {
	Chave        string `gorm:"primaryKey;type:varchar(40)"`
	Valor        string `gorm:"not null"`
	AtualizadoEm time.Time
}

func (Preferencia) TableName() string { return "preferencias" }
