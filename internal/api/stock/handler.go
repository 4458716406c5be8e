package stock

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"psstock/internal/domain"
	apperror "psstock/internal/errors"
	"psstock/internal/pkg/logger"
)

// StockService define o contrato que o Handler espera da camada de Serviço.
type StockService interface {
	Lookup(ctx context.Context, query string) (domain.LookupResult, error)
}

// Handler agrupa os métodos de Handler de estoque.
type Handler struct {
	Service StockService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc StockService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// handleServiceResponse processa erros de serviço e envia respostas padronizadas ao cliente.
func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err == nil {
		writeJSON(w, successStatus, data, h.Logger)
		return
	}

	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= 500 {
		h.Logger.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
	} else {
		h.Logger.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{"path": r.URL.Path})
	}

	writeJSON(w, status, domain.ErrorResponse{Error: message}, h.Logger)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}, log logger.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error("Falha ao codificar JSON de resposta", err)
	}
}

// LookupStockHandler lida com a requisição GET /stock?query=<texto>.
//
// @Summary     Estoque total de um produto buscado por nome
// @Produce     json
// @Param       query query string true "Trecho do nome do produto"
// @Success     200 {object} domain.LookupResult
// @Failure     400 {object} domain.ErrorResponse
// @Failure     500 {object} domain.ErrorResponse
// @Router      /stock [get]
func (h *Handler) LookupStockHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	result, err := h.Service.Lookup(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, result, nil, http.StatusOK)
}
