package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PaymentType is how a sale is settled at the counter
type PaymentType int

const (
	PaymentTypeCash   PaymentType = 0
	PaymentTypeCredit PaymentType = 1
)

func (t PaymentType) String() string {
	switch t {
	case PaymentTypeCash:
		return "cash"
	case PaymentTypeCredit:
		return "credit"
	}
	return "unknown"
}

// IsValid reports whether t is a known payment type
func (t PaymentType) IsValid() bool {
	return t == PaymentTypeCash || t == PaymentTypeCredit
}

// ParsePaymentType accepts the JSON/query names of a payment type
func ParsePaymentType(s string) (PaymentType, error) {
	switch s {
	case "cash", "contado":
		return PaymentTypeCash, nil
	case "credit", "credito":
		return PaymentTypeCredit, nil
	}
	return PaymentType(-1), fmt.Errorf("unknown payment type %q", s)
}

func (t PaymentType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *PaymentType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = PaymentType(i)
		return nil
	}
	parsed, err := ParsePaymentType(str)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t PaymentType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *PaymentType) Scan(value interface{}) error {
	if value == nil {
		*t = PaymentTypeCash
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = PaymentType(v)
	case int:
		*t = PaymentType(v)
	}
	return nil
}
