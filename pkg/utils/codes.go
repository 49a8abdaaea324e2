package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// NoExpiry stands in for the date segment of products without expiry
	NoExpiry = "00000000"
	// ExpiryLayout renders an expiry date as ddmmyyyy
	ExpiryLayout = "02012006"

	codeWidth     = 3
	sequenceWidth = 3
	boletaWidth   = 10

	// MaxSequence is the largest sequence that fits its 3 digit slot
	MaxSequence = 999
	// MaxBoletaNumber is the largest number that fits a 10 digit boleta
	MaxBoletaNumber = 9999999999
)

// IsThreeDigitCode reports whether s is exactly three ASCII digits
func IsThreeDigitCode(s string) bool {
	if len(s) != codeWidth {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// PadCode left-pads a supplier or category code with zeros to three characters
func PadCode(code string) string {
	if len(code) >= codeWidth {
		return code
	}
	return strings.Repeat("0", codeWidth-len(code)) + code
}

// ParseCounter reads a zero-padded counter value; anything unparsable counts as zero
func ParseCounter(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// FormatSequence zero-pads a product sequence to three digits
func FormatSequence(n int64) string {
	return fmt.Sprintf("%0*d", sequenceWidth, n)
}

// FormatBoletaNumber zero-pads a sale number to ten digits
func FormatBoletaNumber(n int64) string {
	return fmt.Sprintf("%0*d", boletaWidth, n)
}

// FormatExpiry renders the date segment of a product code
func FormatExpiry(expiresAt *time.Time) string {
	if expiresAt == nil || expiresAt.IsZero() {
		return NoExpiry
	}
	return expiresAt.Format(ExpiryLayout)
}

// ProductCode assembles supplier(3) + category(3) + expiry(8) + sequence(3)
func ProductCode(supplierCode, categoryCode string, expiresAt *time.Time, sequence string) string {
	return PadCode(supplierCode) + PadCode(categoryCode) + FormatExpiry(expiresAt) + sequence
}

// ProductSequenceCounter names the counter shared by a supplier/category pair
func ProductSequenceCounter(supplierCode, categoryCode string) string {
	return "product_seq:" + PadCode(supplierCode) + ":" + PadCode(categoryCode)
}
