package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQRLocationFromRow(t *testing.T) {
	rows, err := DecodeRows([]byte(`[
		{"ID Altura": " ab-12 ", "Pasillo": 3.0, "Modulo": "7", "Altura": 1},
		{"codigo_qr": "CD-1", "Pasillo": "3", "Modulo": "7"},
		{"Pasillo": "3", "Modulo": "7", "Altura": "1"}
	]`))
	require.NoError(t, err)

	qr, ok := QRLocationFromRow(rows[0])
	require.True(t, ok)
	assert.Equal(t, QRLocation{Code: "AB-12", Location: "3-7-1"}, qr)

	_, ok = QRLocationFromRow(rows[1])
	assert.False(t, ok, "level is required")

	_, ok = QRLocationFromRow(rows[2])
	assert.False(t, ok, "code is required")
}

func TestCanonicalLocation(t *testing.T) {
	loc, err := CanonicalLocation(" 05-7 -03")
	require.NoError(t, err)
	assert.Equal(t, "5-7-3", loc)

	_, err = CanonicalLocation("5-7")
	assert.ErrorIs(t, err, ErrInvalidCoordinate)
}

func TestNewManualItem(t *testing.T) {
	item, err := NewManualItem("ana", "100.0", " Shirt ", "red", "L", 0, "")
	require.NoError(t, err)
	assert.Equal(t, "100", item.EAN)
	assert.Equal(t, "Shirt", item.Model)
	assert.Equal(t, 1, item.Quantity)

	_, err = NewManualItem("ana", "  ", "Shirt", "", "", 2, "")
	assert.ErrorIs(t, err, ErrManualItemEAN)
}

func TestNewDiscard(t *testing.T) {
	d, err := NewDiscard("", "55012.0", "")
	require.NoError(t, err)
	assert.Equal(t, "55012", d.ItemID)
	assert.Empty(t, d.EAN)

	_, err = NewDiscard(" ", "", "ana")
	assert.ErrorIs(t, err, ErrDiscardKey)
}
