package errors

import (
	"fmt"
	"net/http"
)

// AppError é a interface central para todos os erros customizados do psstock.
// Ela permite que o código externo (Handler) acesse a Categoria e a Mensagem do erro.
type AppError interface {
	Error() string    // Implementa a interface error padrão do Go
	Category() string // Categoria do erro (e.g., "VALIDATION_ERROR", "UPSTREAM_ERROR")
	HTTPStatus() int  // Código HTTP sugerido para o Handler
	Unwrap() error    // Permite encapsular erros subjacentes (original error)
}

// UpstreamBodyLimit é o número máximo de caracteres do corpo da resposta do PrestaShop
// que entra na mensagem de erro.
const UpstreamBodyLimit = 300

// --- Erros de Domínio ---

// ValidationError representa falhas de validação de dados de entrada.
// A mensagem vai para o cliente exatamente como foi definida.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string    { return e.Msg }
func (e *ValidationError) Category() string { return "VALIDATION_ERROR" }
func (e *ValidationError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *ValidationError) Unwrap() error    { return nil }

// NewValidationError cria um novo erro de validação.
func NewValidationError(msg string) AppError {
	return &ValidationError{Msg: msg}
}

// --- Erros de Infraestrutura (Encapsulamento) ---

// UpstreamError representa uma falha do Webservice do PrestaShop: status HTTP fora da
// faixa 2xx (StatusCode e Body preenchidos) ou falha de transporte (Err preenchido).
type UpstreamError struct {
	StatusCode int
	Body       string // Já truncado em UpstreamBodyLimit caracteres
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("PrestaShop request failed: %v", e.Err)
	}
	return fmt.Sprintf("PrestaShop %d: %s", e.StatusCode, e.Body)
}
func (e *UpstreamError) Category() string { return "UPSTREAM_ERROR" }
func (e *UpstreamError) HTTPStatus() int  { return http.StatusInternalServerError } // 500
func (e *UpstreamError) Unwrap() error    { return e.Err }

// NewUpstreamStatusError cria o erro para uma resposta não-2xx do PrestaShop.
func NewUpstreamStatusError(status int, body string) AppError {
	return &UpstreamError{StatusCode: status, Body: Truncate(body, UpstreamBodyLimit)}
}

// NewUpstreamTransportError encapsula falhas de DNS, conexão ou timeout.
func NewUpstreamTransportError(err error) AppError {
	return &UpstreamError{Err: err}
}

// InternalError representa falhas inesperadas no servidor ou no serviço.
type InternalError struct {
	Msg string
	Err error // Erro original subjacente
}

func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("Erro Interno: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("Erro Interno: %s", e.Msg)
}
func (e *InternalError) Category() string { return "INTERNAL_ERROR" }
func (e *InternalError) HTTPStatus() int  { return http.StatusInternalServerError } // 500
func (e *InternalError) Unwrap() error    { return e.Err }

// NewInternalError cria um erro de servidor (para falhas de lógica ou código não esperado).
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// --- Helpers ---

// Truncate corta s nos primeiros n caracteres (runes, não bytes).
func Truncate(s string, n int) string {
	if n < 0 {
		n = 0
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// MapToHTTPStatus recebe um erro e o traduz para o código HTTP e corpo de resposta.
func MapToHTTPStatus(err error) (int, string, string) {
	if appErr, ok := err.(AppError); ok {
		return appErr.HTTPStatus(), appErr.Category(), appErr.Error()
	}

	// Erro não tipado: vira 500 com a própria representação textual.
	return http.StatusInternalServerError, "UNKNOWN_ERROR", err.Error()
}
