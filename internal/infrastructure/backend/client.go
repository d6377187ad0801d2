package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"parking-frontend/internal/infrastructure/config"
	otelinfra "parking-frontend/internal/infrastructure/observability/otel"
)

// Client 外部バックエンドAPIへのHTTPクライアント
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *otelinfra.Logger
	metrics    *otelinfra.Metrics
	tracer     trace.Tracer
}

// NewClient 新しいClientを作成
func NewClient(cfg *config.BackendConfig, logger *otelinfra.Logger, metrics *otelinfra.Metrics) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger:  logger,
		metrics: metrics,
		tracer:  otel.Tracer("backend-client"),
	}
}

// Response バックエンドからのレスポンス
// ボディは読み切られた状態で保持される
type Response struct {
	StatusCode int
	Body       []byte
}

// Success 2xxレスポンスかどうかを返す
func (r *Response) Success() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Message レスポンスボディからエラーメッセージを抽出
// {"message": "..."} 形式でない場合はフォールバックを返す
func (r *Response) Message(fallback string) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(r.Body, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return fallback
}

// DecodeMap レスポンスボディをマップにデコード
// 数値の精度を保つためjson.Numberのまま保持する
func (r *Response) DecodeMap() (map[string]interface{}, error) {
	decoder := json.NewDecoder(bytes.NewReader(r.Body))
	decoder.UseNumber()

	out := map[string]interface{}{}
	if err := decoder.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// Do JSONリクエストを送信してレスポンスを読み切る
// errorを返すのはレスポンスが得られなかった場合のみ
// 非2xxレスポンスはerrorではなくResponseとして返す
func (c *Client) Do(ctx context.Context, method, path, token string, body interface{}) (*Response, error) {
	ctx, span := c.tracer.Start(ctx, "backend.request")
	defer span.End()

	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("http.path", path),
	)

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, "failed to marshal request body")
			return nil, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "failed to create request")
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start).Seconds()
	if err != nil {
		c.metrics.RecordBackendRequest(ctx, method, path, 0, duration)
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "backend request failed")
		c.logger.Error(ctx, "backend request failed", err, map[string]interface{}{
			"method": method,
			"path":   path,
		})
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.RecordBackendRequest(ctx, method, path, resp.StatusCode, duration)
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "failed to read response body")
		return nil, err
	}

	c.metrics.RecordBackendRequest(ctx, method, path, resp.StatusCode, duration)
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	c.logger.Debug(ctx, "backend request completed", map[string]interface{}{
		"method":      method,
		"path":        path,
		"status_code": resp.StatusCode,
	})

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       data,
	}, nil
}
