package dto

// RelatorioImportacao é o desfecho em três partes de um restore de backup.
// Itens malformados nunca abortam o lote: viram contagem de ignoradas.
type RelatorioImportacao struct {
	Importadas int `json:"importadas"`
	Duplicadas int `json:"duplicadas"`
	Ignoradas  int `json:"ignoradas"`
}
