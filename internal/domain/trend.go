package domain

// TrendPoint é um ponto da série diária de tendência. A série sempre cobre
// todos os dias do intervalo solicitado, com pontos zerados para dias sem
// movimento.
type TrendPoint struct {
	PeriodLabel string  `json:"period"` // Formato yyyy-mm-dd
	TotalAmount float64 `json:"total_amount"`
	Count       int     `json:"count"`
}
