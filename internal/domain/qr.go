package domain

import (
	"errors"
	"strings"
)

var (
	ErrQRCodeNotFound   = errors.New("qr code not found")
	ErrLocationNotFound = errors.New("no qr code registered for location")
)

// QRCodeFields are the header variants of a shelf QR code column
var QRCodeFields = []string{"ID Altura", "codigo_qr", "codigo", "qr", "code"}

// QRLocation ties a printed shelf QR code to the location it labels
type QRLocation struct {
	Code     string `json:"code"`
	Location string `json:"location"`
}

// NormalizeQRCode trims a code and upper-cases it; codes are matched case-insensitively
func NormalizeQRCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// QRLocationFromRow builds a registry entry. ok is false unless the row carries a
// code and all three location components.
func QRLocationFromRow(row Row) (qr QRLocation, ok bool) {
	code := NormalizeQRCode(row.Get(QRCodeFields...))
	aisle := NormalizeLocationPart(row.Get(AisleFields...))
	module := NormalizeLocationPart(row.Get(ModuleFields...))
	level := NormalizeLocationPart(row.Get(LevelFields...))
	if code == "" || aisle == "" || module == "" || level == "" {
		return QRLocation{}, false
	}
	return QRLocation{Code: code, Location: JoinLocation(aisle, module, level)}, true
}

// CanonicalLocation parses a location and renders it without padding or spaces,
// so " 05-7 -3" and "5-7-3" name the same shelf.
func CanonicalLocation(location string) (string, error) {
	c, err := ParseCoordinate(location)
	if err != nil {
		return "", err
	}
	return c.String(), nil
}
