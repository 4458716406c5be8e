package prestashop

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	// SearchLimit é o número máximo de produtos pedidos na busca por nome.
	SearchLimit = 5
	// StockLimit é o número máximo de linhas de stock_availables pedidas por produto.
	StockLimit = 50
)

// SearchProductsPath monta o caminho da busca de produtos cujo nome contém query.
// O %25 em volta do termo é o "%" do filtro LIKE do Webservice.
func SearchProductsPath(query string) string {
	return fmt.Sprintf("/api/products?filter[name]=%%25%s%%25&display=[id,name]&limit=%d",
		encodeURIComponent(query), SearchLimit)
}

// StockAvailablesPath monta o caminho das linhas de estoque de um produto.
func StockAvailablesPath(productID int) string {
	return fmt.Sprintf("/api/stock_availables?filter[id_product]=[%d]&display=[id,quantity,id_product_attribute]&limit=%d",
		productID, StockLimit)
}

// encodeURIComponent escapa o termo para uso dentro do valor do filtro.
// Espaço vira %20 (e não "+"), como os navegadores fazem.
func encodeURIComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
