package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordSetAndMatches(t *testing.T) {
	var p Password
	require.NoError(t, p.Set("pw1"))
	assert.NotEqual(t, "pw1", p.Hash)

	ok, err := p.Matches("pw1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.Matches("wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordMatchesRejectsMalformedHash(t *testing.T) {
	p := Password{Hash: "not-a-bcrypt-hash"}
	_, err := p.Matches("pw1")
	assert.Error(t, err)
}

func TestCartTotal(t *testing.T) {
	assert.True(t, CartTotal(nil).Equal(decimal.Zero))

	lines := []CartLine{
		{ProductID: 1, Price: decimal.RequireFromString("20")},
		{ProductID: 2, Price: decimal.RequireFromString("30")},
		{ProductID: 1, Price: decimal.RequireFromString("0.99")},
	}
	assert.Equal(t, "50.99", CartTotal(lines).String())
}

func TestNewCartLineSnapshotsProduct(t *testing.T) {
	p := &Product{ID: 7, Title: "Bike", Price: decimal.NewFromInt(50), ImageURL: "/img/bike.png"}
	line := NewCartLine(p)

	p.Price = decimal.NewFromInt(99)
	assert.Equal(t, int64(7), line.ProductID)
	assert.Equal(t, "Bike", line.Title)
	assert.Equal(t, "50", line.Price.String())
	assert.Equal(t, "/img/bike.png", line.ImageURL)
}
