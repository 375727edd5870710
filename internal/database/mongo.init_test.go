package database

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type indexedDoc struct {
	OrgID     string `bson:"ownerOrganizationId" index:"single:1,compound:doc_org_phone"`
	Phone     string `bson:"phone" index:"compound:doc_org_phone"`
	CreatedAt int64  `bson:"createdAt,omitempty" index:"single:-1"`
	Code      string `bson:"code" index:"unique,sparse"`
	Skip      string `bson:"-" index:"single:1"`
	Plain     string `bson:"plain"`
}

func TestIndexModelsFromTags(t *testing.T) {
	models := IndexModelsFromTags(&indexedDoc{})
	require.Len(t, models, 4)

	assert.Equal(t, bson.D{{Key: "ownerOrganizationId", Value: 1}}, models[0].Keys)
	assert.Equal(t, "ownerOrganizationId_single", *models[0].Options.Name)

	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, models[1].Keys)

	assert.Equal(t, "code_unique", *models[2].Options.Name)
	assert.True(t, *models[2].Options.Unique)
	assert.True(t, *models[2].Options.Sparse)

	assert.Equal(t, bson.D{{Key: "ownerOrganizationId", Value: 1}, {Key: "phone", Value: 1}}, models[3].Keys)
	assert.Equal(t, "doc_org_phone", *models[3].Options.Name)
}

func TestIndexModelsFromTags_NonStruct(t *testing.T) {
	assert.Nil(t, IndexModelsFromTags(42))
}

func TestIsIndexExistsError(t *testing.T) {
	assert.False(t, isIndexExistsError(nil))
	assert.True(t, isIndexExistsError(errors.New("Collection already exists. NS: x")))
	assert.False(t, isIndexExistsError(errors.New("timeout")))
}
