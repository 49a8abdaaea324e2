package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProductCode(t *testing.T) {
	expiry := time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "00100100000000001", ProductCode("001", "001", nil, "001"))
	assert.Equal(t, "00200331122025007", ProductCode("002", "003", &expiry, "007"))
	assert.Equal(t, "00100200000000010", ProductCode("1", "2", nil, FormatSequence(10)))
	assert.Len(t, ProductCode("001", "001", &expiry, "001"), 17)
}

func TestParseCounter(t *testing.T) {
	assert.Equal(t, int64(0), ParseCounter(""))
	assert.Equal(t, int64(0), ParseCounter("abc"))
	assert.Equal(t, int64(0), ParseCounter("-4"))
	assert.Equal(t, int64(41), ParseCounter("041"))
	assert.Equal(t, int64(12), ParseCounter("0000000012"))
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "0000000001", FormatBoletaNumber(1))
	assert.Equal(t, "0000012345", FormatBoletaNumber(12345))
	assert.Equal(t, "001", FormatSequence(1))
	assert.Equal(t, "999", FormatSequence(MaxSequence))
	assert.Equal(t, NoExpiry, FormatExpiry(nil))
	assert.Equal(t, "product_seq:001:003", ProductSequenceCounter("1", "003"))
}

func TestIsThreeDigitCode(t *testing.T) {
	assert.True(t, IsThreeDigitCode("001"))
	assert.False(t, IsThreeDigitCode("01"))
	assert.False(t, IsThreeDigitCode("0a1"))
	assert.False(t, IsThreeDigitCode("1000"))
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret")
	assert.NoError(t, err)
	assert.True(t, CheckPasswordHash("s3cret", hash))
	assert.False(t, CheckPasswordHash("other", hash))
}
