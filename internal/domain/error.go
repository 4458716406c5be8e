package domain

// ErrorResponse é a estrutura padronizada para respostas de erro na API.
// @Description Estrutura padronizada para respostas de erro na API.
type ErrorResponse struct {
	Error string `json:"error" example:"query required"`
}

// HealthResponse é o corpo do GET /health.
type HealthResponse struct {
	OK bool `json:"ok" example:"true"`
}
