package global

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectionNames_All(t *testing.T) {
	assert.Equal(t, []string{"promo_reservations", "promo_chats", "promo_campaigns"}, MongoDB_ColNames.All())

	custom := MongoDB_CollectionName{PromoReservations: "r", PromoChats: "c", PromoCampaigns: "k"}
	assert.Equal(t, []string{"r", "c", "k"}, custom.All())
}
