// Package webhook cliente HTTP para entregas de webhooks.
package webhook

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxRead cota de lectura del cuerpo de respuesta; la bitácora lo trunca aún más.
const maxRead = 64 << 10

// HTTPSender hace un POST por entrega, sin reintentos.
type HTTPSender struct {
	client *http.Client
}

// NewHTTPSender cliente sin redirecciones automáticas: un 3xx se registra como fallo.
func NewHTTPSender(timeout time.Duration) *HTTPSender {
	return &HTTPSender{client: &http.Client{
		Timeout: timeout,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}}
}

// Send devuelve status y cuerpo; err solo si no hubo respuesta.
func (s *HTTPSender) Send(ctx context.Context, url string, headers map[string]string, body []byte) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, "", fmt.Errorf("crear petición: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxRead))
	return resp.StatusCode, string(raw), nil
}
