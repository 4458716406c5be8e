package domain

import "encoding/json"

// ProductCandidate é um id de produto extraído da busca por nome, antes da consulta de estoque.
type ProductCandidate struct {
	ID int `json:"id"`
}

// StockRecord é uma linha de stock_availables do PrestaShop.
// ProductAttributeID diferente de zero indica uma combinação (variante) do produto.
type StockRecord struct {
	ID                 int `json:"id"`
	Quantity           int `json:"quantity"`
	ProductAttributeID int `json:"id_product_attribute"`
}

// LookupResult é a resposta normalizada do GET /stock.
// Quando Found é false, ProductID e TotalQuantity não fazem parte do JSON.
type LookupResult struct {
	Found         bool
	Query         string
	ProductID     int
	TotalQuantity int
}

// NewNotFoundResult monta o resultado para uma busca sem candidatos.
func NewNotFoundResult(query string) LookupResult {
	return LookupResult{Found: false, Query: query}
}

// NewFoundResult monta o resultado para o produto resolvido.
func NewFoundResult(query string, productID, total int) LookupResult {
	return LookupResult{Found: true, Query: query, ProductID: productID, TotalQuantity: total}
}

type foundPayload struct {
	Found     bool   `json:"found"`
	Query     string `json:"query"`
	ProductID int    `json:"idProduct"`
	TotalQty  int    `json:"totalQty"`
}

type notFoundPayload struct {
	Found   bool   `json:"found"`
	Query   string `json:"query"`
	Matches []int  `json:"matches"`
}

// MarshalJSON emite um dos dois formatos de resposta.
// "matches" é sempre um array vazio, nunca null.
func (r LookupResult) MarshalJSON() ([]byte, error) {
	if !r.Found {
		return json.Marshal(notFoundPayload{Found: false, Query: r.Query, Matches: []int{}})
	}
	return json.Marshal(foundPayload{
		Found:     true,
		Query:     r.Query,
		ProductID: r.ProductID,
		TotalQty:  r.TotalQuantity,
	})
}
