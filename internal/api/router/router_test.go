package router_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"psstock/internal/api/router"
	"psstock/internal/api/stock"
	"psstock/internal/pkg/logger"
	"psstock/internal/pkg/middleware"
	"psstock/internal/prestashop"
	"psstock/internal/service/stockservice"
)

// fakePrestaShop responde por caminho completo (path + query) e conta as chamadas.
type fakePrestaShop struct {
	responses map[string]string
	status    int
	calls     int32
}

func (f *fakePrestaShop) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt32(&f.calls, 1)
	if f.status != 0 {
		w.WriteHeader(f.status)
		w.Write([]byte("Service Unavailable"))
		return
	}
	body, ok := f.responses[r.URL.RequestURI()]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/xml;charset=utf-8")
	w.Write([]byte(body))
}

// countingCache é um cache.Client em memória: conta por chave e ignora a janela.
type countingCache struct {
	mu     sync.Mutex
	counts map[string]int64
}

func (c *countingCache) IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counts == nil {
		c.counts = map[string]int64{}
	}
	c.counts[key]++
	return c.counts[key], nil
}

func (c *countingCache) Ping(ctx context.Context) error { return nil }
func (c *countingCache) Close() error                   { return nil }

func newAPI(t *testing.T, upstream *fakePrestaShop) http.Handler {
	t.Helper()
	return newAPIWithOptions(t, upstream, func(log logger.Logger) router.Options {
		return router.Options{
			Global: []router.Middleware{middleware.RequestID, middleware.AccessLog(log), middleware.Recover(log)},
		}
	})
}

func newAPIWithOptions(t *testing.T, upstream *fakePrestaShop, options func(logger.Logger) router.Options) http.Handler {
	t.Helper()
	server := httptest.NewServer(upstream)
	t.Cleanup(server.Close)

	log := logger.NewLoggerWithWriter("debug", io.Discard)
	client := prestashop.NewClient(server.URL, "ABC123", 0, log)
	svc := stockservice.NewService(client, log)
	return router.NewRouter(stock.NewHandler(svc, log), options(log))
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestStock_FoundSumsFirstProduct(t *testing.T) {
	upstream := &fakePrestaShop{responses: map[string]string{
		prestashop.SearchProductsPath("chair"): `<prestashop><products><product><id><![CDATA[7]]></id></product><product><id><![CDATA[9]]></id></product></products></prestashop>`,
		prestashop.StockAvailablesPath(7):      `<prestashop><stock_availables><stock_available><quantity>3</quantity></stock_available><stock_available><quantity>2</quantity></stock_available></stock_availables></prestashop>`,
	}}

	rec := get(newAPI(t, upstream), "/stock?query=chair")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"found":true,"query":"chair","idProduct":7,"totalQty":5}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestStock_BlankQueryIsRejectedBeforeUpstream(t *testing.T) {
	upstream := &fakePrestaShop{}
	api := newAPI(t, upstream)

	for _, target := range []string{"/stock", "/stock?query=", "/stock?query=%20%20"} {
		rec := get(api, target)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"query required"}`, rec.Body.String())
	}
	assert.Zero(t, atomic.LoadInt32(&upstream.calls))
}

func TestStock_NoMatch(t *testing.T) {
	upstream := &fakePrestaShop{responses: map[string]string{
		prestashop.SearchProductsPath("unobtanium"): `<prestashop><products></products></prestashop>`,
	}}

	rec := get(newAPI(t, upstream), "/stock?query=unobtanium")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"found":false,"query":"unobtanium","matches":[]}`, rec.Body.String())
	assert.Equal(t, int32(1), atomic.LoadInt32(&upstream.calls))
}

func TestStock_NoStockRowsIsZero(t *testing.T) {
	upstream := &fakePrestaShop{responses: map[string]string{
		prestashop.SearchProductsPath("lamp"): `<prestashop><products><product><id>42</id></product></products></prestashop>`,
		prestashop.StockAvailablesPath(42):    `<prestashop><stock_availables></stock_availables></prestashop>`,
	}}

	rec := get(newAPI(t, upstream), "/stock?query=lamp")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"found":true,"query":"lamp","idProduct":42,"totalQty":0}`, rec.Body.String())
}

func TestStock_UpstreamFailure(t *testing.T) {
	upstream := &fakePrestaShop{status: http.StatusServiceUnavailable}

	rec := get(newAPI(t, upstream), "/stock?query=chair")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"PrestaShop 503: Service Unavailable"}`, rec.Body.String())
}

func TestHealth(t *testing.T) {
	upstream := &fakePrestaShop{status: http.StatusServiceUnavailable}

	rec := get(newAPI(t, upstream), "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Zero(t, atomic.LoadInt32(&upstream.calls))
}

func TestSwaggerDocument(t *testing.T) {
	rec := get(newAPI(t, &fakePrestaShop{}), "/swagger/doc.json")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"/stock"`)
	assert.Contains(t, rec.Body.String(), "psstock API")
}

// TestRateLimiter_OnlyGuardsStock: com o limite esgotado, /stock responde 429
// e /health continua 200.
func TestRateLimiter_OnlyGuardsStock(t *testing.T) {
	upstream := &fakePrestaShop{responses: map[string]string{
		prestashop.SearchProductsPath("chair"): `<id>7</id>`,
		prestashop.StockAvailablesPath(7):      `<quantity>1</quantity>`,
	}}
	limits := &countingCache{}
	api := newAPIWithOptions(t, upstream, func(log logger.Logger) router.Options {
		return router.Options{
			Global: []router.Middleware{middleware.RequestID},
			Stock:  []router.Middleware{middleware.RateLimiter(limits, 2, time.Minute, log)},
		}
	})

	var stockCodes []int
	for i := 0; i < 3; i++ {
		stockCodes = append(stockCodes, get(api, "/stock?query=chair").Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, stockCodes)

	for i := 0; i < 3; i++ {
		rec := get(api, "/health")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	}
	assert.Len(t, limits.counts, 1)
}

func TestRecover_PanicInStockRouteIs500(t *testing.T) {
	api := newAPIWithOptions(t, &fakePrestaShop{}, func(log logger.Logger) router.Options {
		return router.Options{
			Global: []router.Middleware{middleware.Recover(log)},
			Stock: []router.Middleware{func(http.Handler) http.Handler {
				return http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("nil pointer dereference") })
			}},
		}
	})

	rec := get(api, "/stock?query=chair")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"nil pointer dereference"}`, rec.Body.String())
	assert.Equal(t, http.StatusOK, get(api, "/health").Code)
}
