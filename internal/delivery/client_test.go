package delivery

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Send(t *testing.T) {
	var got PromotionBatch
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"sent":1,"failed":1}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", time.Second)
	res, err := c.Send(context.Background(), PromotionBatch{
		DispatchID: "d1",
		Phones:     []string{"+56971223060", "+56911112222"},
		Message:    "20% off",
	})
	require.NoError(t, err)
	assert.Equal(t, &SendResult{Sent: 1, Failed: 1}, res)
	assert.Equal(t, "Bearer secret", auth)
	assert.Equal(t, []string{"+56971223060", "+56911112222"}, got.Phones)
	assert.Equal(t, "20% off", got.Message)
}

func TestClient_Send_EmptyBodyCountsAllSent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	res, err := NewClient(srv.URL, "", 0).Send(context.Background(), PromotionBatch{Phones: []string{"1", "2", "3"}})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Sent)
	assert.Equal(t, 0, res.Failed)
}

func TestClient_Send_ReportedCounts(t *testing.T) {
	tests := []struct {
		name string
		body string
		want SendResult
	}{
		{"explicit zero", `{"sent":0,"failed":0}`, SendResult{}},
		{"all failed", `{"sent":0,"failed":3}`, SendResult{Failed: 3}},
		{"sent only", `{"sent":2}`, SendResult{Sent: 2}},
		{"unrelated body", `{"ok":true}`, SendResult{Sent: 3}},
		{"not json", `accepted`, SendResult{Sent: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			res, err := NewClient(srv.URL, "", time.Second).Send(context.Background(), PromotionBatch{Phones: []string{"1", "2", "3"}})
			require.NoError(t, err)
			assert.Equal(t, tt.want, *res)
		})
	}
}

func TestClient_Send_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "", time.Second).Send(context.Background(), PromotionBatch{Phones: []string{"1"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}
