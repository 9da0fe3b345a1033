package id

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID32 returns exactly 32 hex characters (no separators/prefixes).
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

const BarcodePrefix = "ITEM-"

// NewBarcode returns a candidate barcode like "ITEM-3fa9c01b". Uniqueness
// against live items is the caller's job (retry on collision).
func NewBarcode() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return BarcodePrefix + hex.EncodeToString(b)
}
