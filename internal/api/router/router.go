package router

import (
	"encoding/json"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "psstock/internal/api/docs" // Registra o documento Swagger
	"psstock/internal/api/stock"
	"psstock/internal/domain"
)

// Middleware envolve um http.Handler.
type Middleware func(http.Handler) http.Handler

// Options define quais middlewares envolvem cada parte do roteador.
// Em cada lista o primeiro middleware é o mais externo.
type Options struct {
	Global []Middleware // Todas as rotas (request id, access log, recover)
	Stock  []Middleware // Só /stock; /health não passa por aqui (e.g., rate limiter)
}

// NewRouter configura e retorna o roteador HTTP principal.
func NewRouter(stockHandler *stock.Handler, opts Options) http.Handler {
	mux := http.NewServeMux()

	// --- 1. Health Check (sempre 200, sem middlewares de rota) ---
	mux.HandleFunc("/health", HealthHandler)

	// --- 2. Consulta de estoque ---
	mux.Handle("/stock", chain(http.HandlerFunc(stockHandler.LookupStockHandler), opts.Stock))

	// --- 3. Documentação ---
	mux.Handle("/swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	return chain(otelhttp.NewHandler(mux, "psstock.http"), opts.Global)
}

func chain(handler http.Handler, middlewares []Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}

// HealthHandler responde {"ok": true} sem depender do PrestaShop.
//
// @Summary Health check
// @Produce json
// @Success 200 {object} domain.HealthResponse
// @Router  /health [get]
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(domain.HealthResponse{OK: true})
}
