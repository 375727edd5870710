// Package delivery gửi danh sách người nhận khuyến mãi tới endpoint send-message bên ngoài.
// Endpoint chịu trách nhiệm gửi thật, báo kết quả và retry; package này không retry.
package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"venta_maquinarias/internal/logger"
)

// PromotionBatch là một lô số điện thoại cùng nội dung khuyến mãi
type PromotionBatch struct {
	DispatchID     string   `json:"dispatchId"`
	OrganizationID string   `json:"organizationId"`
	BatchIndex     int      `json:"batchIndex"`
	Phones         []string `json:"phones"`
	Message        string   `json:"message"`
	ImageURL       string   `json:"imageUrl,omitempty"`
}

// SendResult là kết quả endpoint trả về cho một lô
type SendResult struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// Client gọi endpoint send-message qua HTTP POST JSON
type Client struct {
	url        string
	token      string
	httpClient *http.Client
}

// NewClient tạo client; timeout <= 0 thì dùng 15 giây
func NewClient(url, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		url:        url,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Send gửi một lô. Response 2xx không có body {sent, failed} được coi là gửi thành công toàn bộ lô;
// có một trong hai trường thì dùng đúng số endpoint báo (kể cả 0), trường thiếu tính là 0.
func (c *Client) Send(ctx context.Context, batch PromotionBatch) (*SendResult, error) {
	log := logger.WithModule("delivery").WithFields(map[string]interface{}{
		"dispatchId": batch.DispatchID,
		"batchIndex": batch.BatchIndex,
		"phones":     len(batch.Phones),
	})

	jsonData, err := json.Marshal(batch)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Error("📣 [PROMO] Lỗi khi gọi endpoint gửi khuyến mãi")
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.WithFields(map[string]interface{}{
			"statusCode": resp.StatusCode,
			"response":   string(body),
		}).Error("📣 [PROMO] Endpoint gửi khuyến mãi trả về lỗi")
		return nil, fmt.Errorf("send endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	result := &SendResult{Sent: len(batch.Phones)}
	var reported struct {
		Sent   *int `json:"sent"`
		Failed *int `json:"failed"`
	}
	if len(body) > 0 && json.Unmarshal(body, &reported) == nil && (reported.Sent != nil || reported.Failed != nil) {
		result = &SendResult{}
		if reported.Sent != nil {
			result.Sent = *reported.Sent
		}
		if reported.Failed != nil {
			result.Failed = *reported.Failed
		}
	}
	log.WithField("sent", result.Sent).Info("📣 [PROMO] Đã gửi lô khuyến mãi")
	return result, nil
}
