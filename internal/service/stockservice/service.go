package stockservice

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"psstock/internal/domain"
	apperror "psstock/internal/errors"
	"psstock/internal/pkg/logger"
	"psstock/internal/prestashop"
)

// ResourceFetcher define o contrato que o Serviço de Estoque espera do cliente do PrestaShop.
type ResourceFetcher interface {
	FetchResource(ctx context.Context, path string) (string, error)
}

// Service resolve uma consulta por nome no estoque total do primeiro produto encontrado.
// Não guarda estado entre requisições.
type Service struct {
	upstream ResourceFetcher
	logger   logger.Logger
	tracer   trace.Tracer
}

// NewService cria e retorna uma nova instância do Serviço de Estoque.
func NewService(upstream ResourceFetcher, logger logger.Logger) *Service {
	return &Service{
		upstream: upstream,
		logger:   logger,
		tracer:   otel.Tracer("psstock/stockservice"),
	}
}

// Lookup executa as duas etapas: busca por nome e, havendo candidato, soma do estoque.
// A consulta vazia (após trim) é rejeitada antes de qualquer chamada ao PrestaShop.
func (s *Service) Lookup(ctx context.Context, rawQuery string) (domain.LookupResult, error) {
	query := strings.TrimSpace(rawQuery)
	if query == "" {
		return domain.LookupResult{}, apperror.NewValidationError("query required")
	}

	ctx, span := s.tracer.Start(ctx, "stock.lookup", trace.WithAttributes(
		attribute.String("stock.query", query),
	))
	defer span.End()

	// Etapa A: busca por nome
	candidates, err := s.searchCandidates(ctx, query)
	if err != nil {
		return domain.LookupResult{}, s.fail(span, "Falha na busca de produtos.", err)
	}
	if len(candidates) == 0 {
		s.logger.Info("Nenhum produto encontrado para a consulta.", map[string]interface{}{"query": query})
		return domain.NewNotFoundResult(query), nil
	}

	// Etapa B: agregação do estoque do primeiro candidato (ordem da resposta)
	target := candidates[0]
	span.SetAttributes(attribute.Int("stock.product_id", target.ID))

	total, err := s.aggregateStock(ctx, target.ID)
	if err != nil {
		return domain.LookupResult{}, s.fail(span, "Falha na consulta de estoque.", err)
	}

	s.logger.Info("Consulta de estoque concluída.", map[string]interface{}{
		"query":      query,
		"id_product": target.ID,
		"total_qty":  total,
		"candidates": len(candidates),
	})
	return domain.NewFoundResult(query, target.ID, total), nil
}

func (s *Service) searchCandidates(ctx context.Context, query string) ([]domain.ProductCandidate, error) {
	s.logger.Debug("Buscando produtos por nome.", map[string]interface{}{"query": query})

	body, err := s.upstream.FetchResource(ctx, prestashop.SearchProductsPath(query))
	if err != nil {
		return nil, err
	}
	return prestashop.ExtractProductCandidates(body)
}

func (s *Service) aggregateStock(ctx context.Context, productID int) (int, error) {
	s.logger.Debug("Consultando stock_availables.", map[string]interface{}{"id_product": productID})

	body, err := s.upstream.FetchResource(ctx, prestashop.StockAvailablesPath(productID))
	if err != nil {
		return 0, err
	}

	quantities, err := prestashop.ExtractQuantities(body)
	if err != nil {
		return 0, err
	}
	total, err := prestashop.SumQuantities(quantities)
	if err != nil {
		return 0, err
	}

	records, err := prestashop.ExtractStockRecords(body)
	if err != nil {
		return 0, err
	}
	if len(records) > 1 {
		// Mais de uma linha: o produto tem combinações. O total inclui todas.
		s.logger.Debug("Produto com combinações.", map[string]interface{}{
			"id_product": productID,
			"variants":   variantFields(records),
		})
	}
	return total, nil
}

// variantFields descreve cada linha de estoque para o log (combinação e quantidade).
func variantFields(records []domain.StockRecord) []map[string]int {
	variants := make([]map[string]int, 0, len(records))
	for _, r := range records {
		variants = append(variants, map[string]int{
			"id_stock_available":   r.ID,
			"id_product_attribute": r.ProductAttributeID,
			"quantity":             r.Quantity,
		})
	}
	return variants
}

// fail registra o erro no span e no log. Erros tipados (AppError) seguem intactos;
// qualquer outro vira InternalError.
func (s *Service) fail(span trace.Span, msg string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	s.logger.Error(msg, err)

	var appErr apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperror.NewInternalError(msg, err)
}
