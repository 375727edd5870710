package promosvc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var filterNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func customer(key, name string, paid float64, visits int, seg Segment, lastVisit *time.Time) ClassifiedCustomer {
	return ClassifiedCustomer{
		CustomerAggregate: CustomerAggregate{
			Key:        key,
			Phone:      "+" + key,
			Name:       name,
			TotalPaid:  paid,
			VisitCount: visits,
			LastVisit:  lastVisit,
		},
		Segment: seg,
	}
}

func ago(months int) *time.Time {
	t := filterNow.AddDate(0, -months, 0)
	return &t
}

func fixtureCustomers() []ClassifiedCustomer {
	future := filterNow.Add(48 * time.Hour)
	return []ClassifiedCustomer{
		customer("56911111111", "Ana Pérez", 250000, 5, SegmentChampion, ago(1)),
		customer("56922222222", "Bruno", 90000, 2, SegmentLoyal, ago(5)),
		customer("56933333333", "Carla", 100000, 1, SegmentLost, ago(30)),
		customer("56944444444", "", 0, 0, SegmentLost, nil),
		customer("56955555555", "Diego", 120000, 3, SegmentAtRisk, &future),
	}
}

func keys(cs []ClassifiedCustomer) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Key)
	}
	return out
}

func TestFilterRecipients(t *testing.T) {
	all := fixtureCustomers()

	tests := []struct {
		name  string
		state RecipientFilterState
		want  []string
	}{
		{"no filter", DefaultFilterState(), keys(all)},
		{"min spent regardless of segment and recency",
			RecipientFilterState{MinSpent: 100000, RecencyMonths: RecencyUnlimited},
			[]string{"56911111111", "56933333333", "56955555555"}},
		{"min visits", RecipientFilterState{MinVisits: 3, RecencyMonths: RecencyUnlimited},
			[]string{"56911111111", "56955555555"}},
		{"segments", RecipientFilterState{Segments: []Segment{SegmentLost, SegmentLoyal}, RecencyMonths: RecencyUnlimited},
			[]string{"56922222222", "56933333333", "56944444444"}},
		{"recency 6 months excludes missing, old and future visits",
			RecipientFilterState{RecencyMonths: 6},
			[]string{"56911111111", "56922222222"}},
		{"recency above sentinel is unlimited", RecipientFilterState{RecencyMonths: 240}, keys(all)},
		{"search name case insensitive", RecipientFilterState{Search: "ana pé", RecencyMonths: RecencyUnlimited},
			[]string{"56911111111"}},
		{"search formatted phone digits", RecipientFilterState{Search: "9 2222", RecencyMonths: RecencyUnlimited},
			[]string{"56922222222"}},
		{"search with plus", RecipientFilterState{Search: "+56944", RecencyMonths: RecencyUnlimited},
			[]string{"56944444444"}},
		{"combined AND", RecipientFilterState{MinSpent: 50000, RecencyMonths: 12, Segments: []Segment{SegmentLoyal, SegmentChampion}, Search: "b"},
			[]string{"56922222222"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterRecipients(all, tt.state, filterNow)
			assert.Equal(t, tt.want, keys(got))

			// Idempotent
			again := FilterRecipients(got, tt.state, filterNow)
			assert.Equal(t, keys(got), keys(again))
		})
	}
}

func TestFilterRecipients_Empty(t *testing.T) {
	assert.Empty(t, FilterRecipients(nil, DefaultFilterState(), filterNow))
}
