package money

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLine(t *testing.T) {
	assert.True(t, Line(FromFloat(45), 2).Equal(decimal.NewFromInt(90)))
	assert.True(t, Line(FromFloat(0.1), 3).Equal(decimal.RequireFromString("0.3")))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "180.00", Format(FromFloat(180)))
	assert.Equal(t, "7.50", Format(FromFloat(7.5)))
}

func TestJSONNumbers(t *testing.T) {
	data, err := json.Marshal(struct {
		Price decimal.Decimal `json:"price"`
	}{FromFloat(75)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"price":75}`, string(data))

	var in struct {
		Price decimal.Decimal `json:"price"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"price":12.5}`), &in))
	assert.Equal(t, "12.50", Format(in.Price))
}
