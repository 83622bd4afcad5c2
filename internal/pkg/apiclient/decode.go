package apiclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	apperror "marmitaria/internal/errors"
)

// maxBodyBytes limita a leitura de corpos do backend.
const maxBodyBytes = 10 << 20

// decodeResponse é a estratégia única de leitura de respostas 2xx.
// O backend mistura JSON com confirmações em texto puro ("Produto deletado."),
// então o resultado é nil sempre que não houver JSON utilizável.
func decodeResponse(resp *http.Response) (json.RawMessage, error) {
	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	contentType := resp.Header.Get("Content-Type")
	if resp.Header.Get("Content-Length") == "0" || resp.ContentLength == 0 || contentType == "" {
		return nil, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("falha ao ler corpo da resposta: %w", err)
	}

	text := strings.TrimSpace(string(body))
	if text == "" {
		return nil, nil
	}

	if strings.Contains(strings.ToLower(contentType), "application/json") {
		if !json.Valid([]byte(text)) {
			return nil, fmt.Errorf("corpo declarado como JSON mas inválido")
		}
		return json.RawMessage(text), nil
	}

	// Content-Type errado (text/plain com JSON dentro) ainda é aproveitado.
	if json.Valid([]byte(text)) {
		return json.RawMessage(text), nil
	}
	return nil, nil
}

// errorFromResponse extrai a melhor mensagem possível de uma resposta não-2xx:
// campo "message", depois "error", depois o texto cru, depois o status text.
func errorFromResponse(resp *http.Response) *apperror.ApiError {
	statusText := statusTextOf(resp)
	message := statusText

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err == nil {
		text := string(body)
		if strings.TrimSpace(text) != "" {
			message = text
			var payload map[string]interface{}
			if json.Unmarshal(body, &payload) == nil {
				if msg := stringField(payload, "message"); msg != "" {
					message = msg
				} else if msg := stringField(payload, "error"); msg != "" {
					message = msg
				}
			}
		}
	}

	return apperror.NewApiError(resp.StatusCode, statusText, message)
}

func stringField(payload map[string]interface{}, key string) string {
	v, ok := payload[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// statusTextOf devolve "Not Found" a partir de "404 Not Found".
func statusTextOf(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
