package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

func TestPrice_JSONIsANumber(t *testing.T) {
	out, err := json.Marshal(struct {
		Price Price `json:"price"`
	}{Price: MustPrice("149.90")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"price": 149.9}`, string(out))

	var decoded struct {
		Price Price `json:"price"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"price":"12.50"}`), &decoded))
	assert.Equal(t, "12.5", decoded.Price.String())
}

func TestPrice_BSONDecimal128(t *testing.T) {
	doc, err := bson.Marshal(bson.M{"price": MustPrice("19.99")})
	require.NoError(t, err)

	raw := bson.Raw(doc).Lookup("price")
	assert.Equal(t, bsontype.Decimal128, raw.Type)

	var decoded struct {
		Price Price `bson:"price"`
	}
	require.NoError(t, bson.Unmarshal(doc, &decoded))
	assert.True(t, decoded.Price.Equal(MustPrice("19.99").Decimal))
}

func TestPrice_BSONLegacyDouble(t *testing.T) {
	doc, err := bson.Marshal(bson.M{"price": 7.5})
	require.NoError(t, err)

	var decoded struct {
		Price Price `bson:"price"`
	}
	require.NoError(t, bson.Unmarshal(doc, &decoded))
	assert.Equal(t, 7.5, decoded.Price.Float64())
}
