package prestashop

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"psstock/internal/domain"
)

// As respostas do Webservice são lidas como texto: os valores aparecem como
// <tag>123</tag> ou <tag><![CDATA[123]]></tag>, e os dois formatos são aceitos.
var (
	idPattern        = regexp.MustCompile(`<id><!\[CDATA\[(\d+)\]\]></id>|<id>(\d+)</id>`)
	quantityPattern  = regexp.MustCompile(`<quantity><!\[CDATA\[(-?\d+)\]\]></quantity>|<quantity>(-?\d+)</quantity>`)
	attributePattern = regexp.MustCompile(`<id_product_attribute(?:\s[^>]*)?><!\[CDATA\[(\d+)\]\]></id_product_attribute>|<id_product_attribute(?:\s[^>]*)?>(\d+)</id_product_attribute>`)
	stockRowPattern  = regexp.MustCompile(`(?s)<stock_available(?:\s[^>]*)?>(.*?)</stock_available>`)
)

// ErrValueOutOfRange indica um número que não cabe em int (ou uma soma que estoura).
var ErrValueOutOfRange = errors.New("valor fora da faixa de int")

// ExtractIDs devolve todos os ids na ordem do documento, sem remover duplicados.
func ExtractIDs(body string) ([]int, error) {
	return extractInts(idPattern, "id", body)
}

// ExtractProductCandidates embrulha ExtractIDs nos candidatos da busca.
func ExtractProductCandidates(body string) ([]domain.ProductCandidate, error) {
	ids, err := ExtractIDs(body)
	if err != nil {
		return nil, err
	}
	candidates := make([]domain.ProductCandidate, 0, len(ids))
	for _, id := range ids {
		candidates = append(candidates, domain.ProductCandidate{ID: id})
	}
	return candidates, nil
}

// ExtractQuantities devolve todas as quantidades (com sinal) na ordem do documento.
func ExtractQuantities(body string) ([]int, error) {
	return extractInts(quantityPattern, "quantity", body)
}

// ExtractStockRecords agrupa id, quantidade e combinação de cada <stock_available>.
// Linhas sem <quantity> reconhecível são ignoradas.
func ExtractStockRecords(body string) ([]domain.StockRecord, error) {
	var records []domain.StockRecord
	for _, row := range stockRowPattern.FindAllStringSubmatch(body, -1) {
		inner := row[1]
		quantities, err := ExtractQuantities(inner)
		if err != nil {
			return nil, err
		}
		if len(quantities) == 0 {
			continue
		}
		record := domain.StockRecord{Quantity: quantities[0]}

		ids, err := ExtractIDs(inner)
		if err != nil {
			return nil, err
		}
		if len(ids) > 0 {
			record.ID = ids[0]
		}

		attrs, err := extractInts(attributePattern, "id_product_attribute", inner)
		if err != nil {
			return nil, err
		}
		if len(attrs) > 0 {
			record.ProductAttributeID = attrs[0]
		}
		records = append(records, record)
	}
	return records, nil
}

// SumQuantities soma as quantidades; lista vazia soma 0.
// Um total que não cabe em int devolve ErrValueOutOfRange em vez de dar a volta.
func SumQuantities(quantities []int) (int, error) {
	total := 0
	for _, q := range quantities {
		if (q > 0 && total > math.MaxInt-q) || (q < 0 && total < math.MinInt-q) {
			return 0, fmt.Errorf("soma das quantidades: %w", ErrValueOutOfRange)
		}
		total += q
	}
	return total, nil
}

// extractInts pega o primeiro grupo não vazio de cada ocorrência.
func extractInts(pattern *regexp.Regexp, tag, body string) ([]int, error) {
	matches := pattern.FindAllStringSubmatch(body, -1)
	values := make([]int, 0, len(matches))
	for _, m := range matches {
		raw := m[1]
		if raw == "" {
			raw = m[2]
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			// O regex só aceita dígitos: o único erro possível é ErrRange.
			return nil, fmt.Errorf("<%s>%s</%s>: %w", tag, raw, tag, ErrValueOutOfRange)
		}
		values = append(values, n)
	}
	return values, nil
}
