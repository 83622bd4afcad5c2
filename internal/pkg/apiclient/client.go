package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	apperror "marmitaria/internal/errors"
	"marmitaria/internal/pkg/logger"
)

// Client é o único ponto de saída HTTP para o backend REST da Marmitaria.
type Client struct {
	baseURL string
	http    *http.Client
	logger  logger.Logger
}

// RequestOption ajusta a requisição antes do envio (headers extras, query string).
type RequestOption func(*http.Request)

// WithHeader sobrescreve ou adiciona um header. Aplicado depois do Content-Type padrão.
func WithHeader(key, value string) RequestOption {
	return func(r *http.Request) { r.Header.Set(key, value) }
}

// WithQuery adiciona um parâmetro de query (e.g., force=true).
func WithQuery(key, value string) RequestOption {
	return func(r *http.Request) {
		q := r.URL.Query()
		q.Set(key, value)
		r.URL.RawQuery = q.Encode()
	}
}

// New cria o cliente com timeout por requisição.
func New(baseURL string, timeout time.Duration, log logger.Logger) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: timeout}, log)
}

// NewWithHTTPClient permite injetar o *http.Client (usado nos testes com httptest).
func NewWithHTTPClient(baseURL string, hc *http.Client, log logger.Logger) *Client {
	return &Client{baseURL: baseURL, http: hc, logger: log}
}

// BaseURL devolve a URL configurada do backend.
func (c *Client) BaseURL() string { return c.baseURL }

// Do executa a requisição e decodifica o resultado em out (quando houver resultado).
// Respostas sem conteúdo útil deixam out intocado e retornam nil.
// Respostas não-2xx retornam *apperror.ApiError.
func (c *Client) Do(ctx context.Context, method, endpoint string, body, out interface{}, opts ...RequestOption) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apperror.NewInternalError("Falha ao serializar requisição para o backend.", err)
		}
		reader = bytes.NewReader(payload)
	}

	target := c.baseURL + endpoint
	if _, err := url.Parse(target); err != nil {
		return apperror.NewInternalError(fmt.Sprintf("URL inválida: %s", target), err)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return apperror.NewInternalError("Falha ao montar requisição para o backend.", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for _, opt := range opts {
		opt(req)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("Falha de comunicação com o backend.", err)
		return apperror.NewTransportError(fmt.Sprintf("%s %s", method, endpoint), err)
	}
	defer resp.Body.Close()

	c.logger.Debug("Resposta do backend recebida.", map[string]interface{}{
		"method":      method,
		"endpoint":    req.URL.RequestURI(),
		"status":      resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := errorFromResponse(resp)
		c.logger.Debug("Backend respondeu com erro.", map[string]interface{}{
			"status":  apiErr.Status,
			"message": apiErr.Message,
		})
		return apiErr
	}

	raw, err := decodeResponse(resp)
	if err != nil {
		return apperror.NewInternalError("Resposta inválida do backend.", err)
	}
	if raw == nil || out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return apperror.NewInternalError(fmt.Sprintf("Formato inesperado na resposta de %s %s.", method, endpoint), err)
	}
	return nil
}

// Get executa GET endpoint.
func (c *Client) Get(ctx context.Context, endpoint string, out interface{}, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodGet, endpoint, nil, out, opts...)
}

// Post executa POST endpoint com corpo JSON.
func (c *Client) Post(ctx context.Context, endpoint string, body, out interface{}, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodPost, endpoint, body, out, opts...)
}

// Put executa PUT endpoint com corpo JSON (body pode ser nil, e.g. fechar caixa).
func (c *Client) Put(ctx context.Context, endpoint string, body, out interface{}, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodPut, endpoint, body, out, opts...)
}

// Delete executa DELETE endpoint, ignorando qualquer corpo de confirmação.
func (c *Client) Delete(ctx context.Context, endpoint string, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodDelete, endpoint, nil, nil, opts...)
}
