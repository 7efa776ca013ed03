package domain

// ExportColumn descreve uma coluna da tabela entregue ao escritor externo de
// CSV/PDF/Excel
type ExportColumn struct {
	Key   string `json:"key"`
	Title string `json:"title"`
}

// ExportTable são as linhas tabulares produzidas para exportação. As linhas
// já saem deduplicadas e ordenadas; o escritor externo não reordena nada.
type ExportTable struct {
	Columns []ExportColumn `json:"columns"`
	Rows    [][]any        `json:"rows"`
}
