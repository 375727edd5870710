package promosvc

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	basemodels "venta_maquinarias/internal/api/base/models"
	promomodels "venta_maquinarias/internal/api/promo/models"
	"venta_maquinarias/internal/common"
	"venta_maquinarias/internal/delivery"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type fakeSource[T any] struct {
	items []T
	err   error
}

func (f *fakeSource[T]) Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]T, error) {
	return f.items, f.err
}

type fakeCampaigns struct {
	mu      sync.Mutex
	saved   []promomodels.PromoCampaign
	err     error
	lastOpt *options.FindOptions
}

func (f *fakeCampaigns) InsertOne(ctx context.Context, data promomodels.PromoCampaign) (promomodels.PromoCampaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return promomodels.PromoCampaign{}, f.err
	}
	data.ID = primitive.NewObjectID()
	f.saved = append(f.saved, data)
	return data, nil
}

func (f *fakeCampaigns) FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (promomodels.PromoCampaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m := filter.(bson.M)
	for _, c := range f.saved {
		if c.OwnerOrganizationID == m["ownerOrganizationId"] && c.DispatchID == m["dispatchId"] {
			return c, nil
		}
	}
	return promomodels.PromoCampaign{}, common.ErrNotFound
}

func (f *fakeCampaigns) FindWithPagination(ctx context.Context, filter interface{}, page, limit int64, opts *options.FindOptions) (*basemodels.PaginateResult[promomodels.PromoCampaign], error) {
	f.lastOpt = opts
	page, limit = basemodels.NormalizePage(page, limit)
	return basemodels.NewPaginateResult(f.saved, page, limit, int64(len(f.saved))), nil
}

// fakeSender ghi lại các lô; failBatches đánh dấu lô trả lỗi
type fakeSender struct {
	batches     []delivery.PromotionBatch
	failBatches map[int]bool
	partial     *delivery.SendResult
}

func (f *fakeSender) Send(ctx context.Context, batch delivery.PromotionBatch) (*delivery.SendResult, error) {
	f.batches = append(f.batches, batch)
	if f.failBatches[batch.BatchIndex] {
		return nil, errors.New("upstream 500")
	}
	if f.partial != nil {
		return f.partial, nil
	}
	return &delivery.SendResult{Sent: len(batch.Phones)}, nil
}

var dispatchNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func newDispatchService(sender Sender, campaigns *fakeCampaigns, batchSize int) *PromoService {
	opts := Options{
		Reservations: &fakeSource[promomodels.Reservation]{items: sampleReservations()},
		Chats:        &fakeSource[promomodels.Chat]{items: []promomodels.Chat{{Phone: "+56 9 4444 4444", Name: "Solo chat"}}},
		BatchSize:    batchSize,
		Now:          func() time.Time { return dispatchNow },
	}
	if sender != nil {
		opts.Sender = sender
	}
	if campaigns != nil {
		opts.Campaigns = campaigns
	}
	return NewPromoServiceWith(opts)
}

func TestResolveRecipients_ExplicitPhonesDeduped(t *testing.T) {
	svc := newDispatchService(&fakeSender{}, nil, 0)
	got := svc.ResolveRecipients(context.Background(), primitive.NewObjectID(), DispatchInput{
		Phones: []string{"+56 9 1111 1111", "56911111111", "  ", "+56 9 2222 2222"},
	})
	assert.Equal(t, []string{"+56 9 1111 1111", "+56 9 2222 2222"}, got)
}

func TestResolveRecipients_FromFilterPrefersChatPhone(t *testing.T) {
	svc := newDispatchService(&fakeSender{}, nil, 0)
	got := svc.ResolveRecipients(context.Background(), primitive.NewObjectID(), DispatchInput{
		Filter: RecipientFilterState{Segments: []Segment{SegmentLost}, RecencyMonths: RecencyUnlimited},
	})
	assert.Contains(t, got, "+56 9 4444 4444")
}

func TestDispatch_BatchesAndPersists(t *testing.T) {
	sender := &fakeSender{}
	campaigns := &fakeCampaigns{}
	svc := newDispatchService(sender, campaigns, 2)
	orgID := primitive.NewObjectID()

	var progress [][2]int
	campaign, err := svc.Dispatch(context.Background(), orgID, DispatchInput{
		Message:   "Hola 20% off",
		Filter:    DefaultFilterState(),
		CreatedBy: "user-1",
		OnBatch:   func(done, total int) { progress = append(progress, [2]int{done, total}) },
	})
	require.NoError(t, err)
	require.NotNil(t, campaign)

	assert.Len(t, sender.batches, 2)
	for i, b := range sender.batches {
		assert.Equal(t, i, b.BatchIndex)
		assert.Equal(t, campaign.DispatchID, b.DispatchID)
		assert.Equal(t, orgID.Hex(), b.OrganizationID)
		assert.LessOrEqual(t, len(b.Phones), 2)
	}
	assert.Equal(t, [][2]int{{1, 2}, {2, 2}}, progress)

	assert.Equal(t, 4, campaign.RecipientCount)
	assert.Equal(t, 4, campaign.SentCount)
	assert.Equal(t, 0, campaign.FailedCount)
	assert.Equal(t, 2, campaign.BatchCount)
	assert.Equal(t, promomodels.CampaignStatusSent, campaign.Status)
	assert.Equal(t, dispatchNow.UnixMilli(), campaign.CreatedAt)
	assert.Equal(t, "user-1", campaign.CreatedBy)
	require.NotNil(t, campaign.Filter)
	assert.Equal(t, RecencyUnlimited, campaign.Filter.RecencyMonths)
	assert.False(t, campaign.ID.IsZero())
	require.Len(t, campaigns.saved, 1)
}

func TestDispatch_PartialAndFailed(t *testing.T) {
	orgID := primitive.NewObjectID()
	phones := []string{"+56911111111", "+56922222222", "+56933333333"}

	sender := &fakeSender{failBatches: map[int]bool{1: true}}
	svc := newDispatchService(sender, &fakeCampaigns{}, 2)
	campaign, err := svc.Dispatch(context.Background(), orgID, DispatchInput{Message: "x", Phones: phones})
	require.NoError(t, err)
	assert.Equal(t, promomodels.CampaignStatusPartial, campaign.Status)
	assert.Equal(t, 2, campaign.SentCount)
	assert.Equal(t, 1, campaign.FailedCount)
	assert.Nil(t, campaign.Filter)

	sender = &fakeSender{failBatches: map[int]bool{0: true, 1: true}}
	svc = newDispatchService(sender, &fakeCampaigns{}, 2)
	campaign, err = svc.Dispatch(context.Background(), orgID, DispatchInput{Message: "x", Phones: phones})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrSendFailed)
	require.NotNil(t, campaign)
	assert.Equal(t, promomodels.CampaignStatusFailed, campaign.Status)
	assert.Equal(t, 3, campaign.FailedCount)

	var appErr *common.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, common.StatusBadGateway, appErr.StatusCode)
}

func TestDispatch_ReportedCounts(t *testing.T) {
	sender := &fakeSender{partial: &delivery.SendResult{Sent: 1, Failed: 1}}
	svc := newDispatchService(sender, nil, 50)
	campaign, err := svc.Dispatch(context.Background(), primitive.NewObjectID(), DispatchInput{
		Message: "x",
		Phones:  []string{"+56911111111", "+56922222222"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, campaign.BatchCount)
	assert.Equal(t, promomodels.CampaignStatusPartial, campaign.Status)
}

func TestDispatch_Errors(t *testing.T) {
	ctx := context.Background()
	orgID := primitive.NewObjectID()

	_, err := newDispatchService(nil, nil, 0).Dispatch(ctx, orgID, DispatchInput{Message: "x", Phones: []string{"+1 555 0100"}})
	assert.ErrorIs(t, err, common.ErrSendNotConfig)

	svc := newDispatchService(&fakeSender{}, nil, 0)
	_, err = svc.Dispatch(ctx, orgID, DispatchInput{Message: "   ", Phones: []string{"+1 555 0100"}})
	assert.ErrorIs(t, err, common.ErrRequiredField)

	_, err = svc.Dispatch(ctx, orgID, DispatchInput{
		Message: "x",
		Filter:  RecipientFilterState{MinSpent: 1e12, RecencyMonths: RecencyUnlimited},
	})
	assert.ErrorIs(t, err, common.ErrNoRecipients)
}

func TestDispatch_CampaignStoreErrorIsLogged(t *testing.T) {
	svc := newDispatchService(&fakeSender{}, &fakeCampaigns{err: errors.New("mongo down")}, 0)
	campaign, err := svc.Dispatch(context.Background(), primitive.NewObjectID(), DispatchInput{Message: "x", Phones: []string{"+56911111111"}})
	require.NoError(t, err)
	assert.True(t, campaign.ID.IsZero())
	assert.Equal(t, promomodels.CampaignStatusSent, campaign.Status)
}

func TestRecipients_SourceErrorDegradesToEmpty(t *testing.T) {
	svc := NewPromoServiceWith(Options{
		Reservations: &fakeSource[promomodels.Reservation]{err: errors.New("boom")},
		Chats:        &fakeSource[promomodels.Chat]{items: []promomodels.Chat{{Phone: "+56 9 4444 4444"}}},
		Now:          func() time.Time { return dispatchNow },
	})
	res := svc.Recipients(context.Background(), primitive.NewObjectID(), DefaultFilterState())
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, 1, res.Matched)
	assert.Equal(t, 1, res.Counts[SegmentLost])
	assert.Equal(t, dispatchNow, res.Generated)
}

func TestListCampaigns(t *testing.T) {
	campaigns := &fakeCampaigns{}
	svc := newDispatchService(&fakeSender{}, campaigns, 0)
	orgID := primitive.NewObjectID()
	_, err := svc.Dispatch(context.Background(), orgID, DispatchInput{Message: "x", Phones: []string{"+56911111111"}})
	require.NoError(t, err)

	page, err := svc.ListCampaigns(context.Background(), orgID, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Page)
	assert.Equal(t, int64(10), page.Limit)
	assert.Equal(t, int64(1), page.Total)
	require.NotNil(t, campaigns.lastOpt)

	empty, err := newDispatchService(&fakeSender{}, nil, 0).ListCampaigns(context.Background(), orgID, 2, 500)
	require.NoError(t, err)
	assert.Equal(t, int64(100), empty.Limit)
	assert.Empty(t, empty.Items)
}

func TestGetCampaign(t *testing.T) {
	campaigns := &fakeCampaigns{}
	svc := newDispatchService(&fakeSender{}, campaigns, 0)
	orgID := primitive.NewObjectID()
	sent, err := svc.Dispatch(context.Background(), orgID, DispatchInput{Message: "x", Phones: []string{"+56911111111"}})
	require.NoError(t, err)

	got, err := svc.GetCampaign(context.Background(), orgID, " "+sent.DispatchID+" ")
	require.NoError(t, err)
	assert.Equal(t, sent.ID, got.ID)

	_, err = svc.GetCampaign(context.Background(), primitive.NewObjectID(), sent.DispatchID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = svc.GetCampaign(context.Background(), orgID, "")
	assert.ErrorIs(t, err, common.ErrRequiredField)

	_, err = newDispatchService(&fakeSender{}, nil, 0).GetCampaign(context.Background(), orgID, sent.DispatchID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestChunk(t *testing.T) {
	assert.Nil(t, chunk(nil, 3))
	assert.Equal(t, [][]string{{"a", "b"}, {"c"}}, chunk([]string{"a", "b", "c"}, 2))
	assert.Equal(t, [][]string{{"a", "b", "c"}}, chunk([]string{"a", "b", "c"}, 0))
}
