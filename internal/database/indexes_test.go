package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestAuditIndexes(t *testing.T) {
	models := AuditIndexes()
	require.Len(t, models, 2)

	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, models[0].Keys)
	assert.Equal(t, "createdAt_desc", *models[0].Options.Name)

	assert.Equal(t, bson.D{{Key: "resource", Value: 1}, {Key: "createdAt", Value: -1}}, models[1].Keys)
	assert.Equal(t, "resource_createdAt", *models[1].Options.Name)
}
