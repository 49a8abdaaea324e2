package messaging

import (
	"testing"

	"github.com/sangkips/yuyitos-api/internal/domain/event"
	"github.com/stretchr/testify/assert"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "yuyitos.debt.settled", Subject("yuyitos", event.DebtSettled{}))
	assert.Equal(t, "sale.registered", Subject("", event.SaleRegistered{}))
}
