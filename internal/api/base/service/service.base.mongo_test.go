package basesvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type sampleDoc struct {
	ID    primitive.ObjectID `bson:"_id,omitempty"`
	Name  string             `bson:"name"`
	Count int                `bson:"count"`
}

func TestWithInsertedID(t *testing.T) {
	id := primitive.NewObjectID()

	got, err := withInsertedID(sampleDoc{Name: "a", Count: 2}, id)
	require.NoError(t, err)
	assert.Equal(t, sampleDoc{ID: id, Name: "a", Count: 2}, got)

	got, err = withInsertedID(sampleDoc{ID: primitive.NewObjectID(), Name: "b"}, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "b", got.Name)
}
