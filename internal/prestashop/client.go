// Package prestashop fala com o Webservice do PrestaShop: requisições GET autenticadas
// e extração dos campos que interessam das respostas XML.
package prestashop

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperror "psstock/internal/errors"
	"psstock/internal/pkg/logger"
)

// Client executa leituras no Webservice. É seguro para uso concorrente:
// a configuração (URL base e chave) não muda depois de NewClient.
type Client struct {
	http    *resty.Client
	baseURL string
	logger  logger.Logger
	tracer  trace.Tracer
}

// NewClient cria o cliente do Webservice. timeout igual a zero mantém o padrão do transporte.
func NewClient(baseURL, wsKey string, timeout time.Duration, log logger.Logger) *Client {
	rc := resty.New().
		SetTransport(otelhttp.NewTransport(http.DefaultTransport)).
		SetHeader("Authorization", BasicAuthHeader(wsKey)).
		SetLogger(restyLogger{log: log})
	if timeout > 0 {
		rc.SetTimeout(timeout)
	}

	return &Client{
		http:    rc,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  log,
		tracer:  otel.Tracer("psstock/prestashop"),
	}
}

// BasicAuthHeader monta o header Authorization do Webservice:
// a chave é o usuário e a senha é vazia.
func BasicAuthHeader(wsKey string) string {
	token := base64.StdEncoding.EncodeToString([]byte(wsKey + ":"))
	return "Basic " + token
}

// FetchResource faz um GET em baseURL+path e devolve o corpo cru.
// path já deve vir com a query string montada e escapada (ver paths.go).
func (c *Client) FetchResource(ctx context.Context, path string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "prestashop.fetch", trace.WithAttributes(
		attribute.String("prestashop.path", path),
	))
	defer span.End()

	resp, err := c.http.R().SetContext(ctx).Get(c.baseURL + path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
		c.logger.Error("Falha de transporte ao chamar o PrestaShop.", err)
		return "", apperror.NewUpstreamTransportError(err)
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode()))
	body := string(resp.Body())

	if !resp.IsSuccess() {
		upstreamErr := apperror.NewUpstreamStatusError(resp.StatusCode(), body)
		span.SetStatus(codes.Error, upstreamErr.Error())
		c.logger.Warn("PrestaShop respondeu com status de erro.", map[string]interface{}{
			"status": resp.StatusCode(),
			"path":   path,
		})
		return "", upstreamErr
	}

	c.logger.Debug("Resposta do PrestaShop recebida.", map[string]interface{}{
		"status": resp.StatusCode(),
		"path":   path,
		"bytes":  len(body),
		"took":   resp.Time().String(),
	})
	return body, nil
}

// restyLogger redireciona os avisos do resty para o nosso logger estruturado.
type restyLogger struct {
	log logger.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	l.log.Warn("resty: "+strings.TrimSpace(fmt.Sprintf(format, v...)), nil)
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	l.log.Warn("resty: "+strings.TrimSpace(fmt.Sprintf(format, v...)), nil)
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	l.log.Debug("resty: "+strings.TrimSpace(fmt.Sprintf(format, v...)), nil)
}
