package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	promomodels "venta_maquinarias/internal/api/promo/models"
	promosvc "venta_maquinarias/internal/api/promo/service"
	"venta_maquinarias/internal/delivery"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type listSource[T any] struct{ items []T }

func (l *listSource[T]) Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]T, error) {
	return l.items, nil
}

type countingSender struct{ batches int }

func (s *countingSender) Send(ctx context.Context, batch delivery.PromotionBatch) (*delivery.SendResult, error) {
	s.batches++
	return &delivery.SendResult{Sent: len(batch.Phones)}, nil
}

// runCLI chạy rootCmd với service dữ liệu giả, trả về stdout
func runCLI(t *testing.T, sender *countingSender, args ...string) (string, error) {
	t.Helper()
	recipientsFilter = filterFlags{recencyMonths: promosvc.RecencyUnlimited}
	sendFilter = filterFlags{recencyMonths: promosvc.RecencyUnlimited}
	recipientsJSON, sendYes = false, false
	sendPhones = nil

	newService = func(ctx context.Context) (*promosvc.PromoService, func(), error) {
		svc := promosvc.NewPromoServiceWith(promosvc.Options{
			Reservations: &listSource[promomodels.Reservation]{items: []promomodels.Reservation{
				{CustomerPhone: "+56 9 1111 1111", CustomerName: "Ana", Amount: 500000, StartDate: promomodels.ISODate("2024-06-01")},
				{CustomerPhone: "+56 9 2222 2222", CustomerName: "Bruno", Amount: 20000, StartDate: promomodels.ISODate("2020-01-01")},
			}},
			Chats:     &listSource[promomodels.Chat]{},
			Sender:    sender,
			BatchSize: 1,
			Now:       func() time.Time { return time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC) },
		})
		return svc, func() {}, nil
	}
	t.Cleanup(func() { newService = openService })

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append(args, "--org", primitive.NewObjectID().Hex()))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSegmentsCommand(t *testing.T) {
	out, err := runCLI(t, &countingSender{}, "segments")
	require.NoError(t, err)
	assert.Contains(t, out, "SEGMENT")
	assert.Contains(t, out, "champion")
	assert.Contains(t, out, "total")
}

func TestRecipientsCommand(t *testing.T) {
	out, err := runCLI(t, &countingSender{}, "recipients", "--min-spent", "100000")
	require.NoError(t, err)
	assert.Contains(t, out, "+56911111111")
	assert.NotContains(t, out, "+56922222222")
	assert.Contains(t, out, "1/2")

	_, err = runCLI(t, &countingSender{}, "recipients", "--segments", "vip")
	assert.Error(t, err)
}

func TestSendCommand(t *testing.T) {
	sender := &countingSender{}
	out, err := runCLI(t, sender, "send", "--message", "Hola")
	require.NoError(t, err)
	assert.Contains(t, out, "Chạy thử: 2")
	assert.Zero(t, sender.batches)

	out, err = runCLI(t, sender, "send", "--message", "Hola", "--yes")
	require.NoError(t, err)
	assert.Equal(t, 2, sender.batches)
	assert.Contains(t, out, "status=sent")
}

func TestFilterFlagsState(t *testing.T) {
	f := filterFlags{recencyMonths: 6, segments: []string{" Champion ", "lost"}, search: " ana "}
	state, err := f.state()
	require.NoError(t, err)
	assert.Equal(t, []promosvc.Segment{promosvc.SegmentChampion, promosvc.SegmentLost}, state.Segments)
	assert.Equal(t, "ana", state.Search)

	_, err = (&filterFlags{minSpent: -1}).state()
	assert.Error(t, err)
}
