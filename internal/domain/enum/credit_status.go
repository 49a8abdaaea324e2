package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// CreditStatus tracks whether a credit sale is still owed
type CreditStatus int

const (
	CreditStatusPending   CreditStatus = 0
	CreditStatusCancelled CreditStatus = 1
)

func (s CreditStatus) String() string {
	switch s {
	case CreditStatusPending:
		return "PENDING"
	case CreditStatusCancelled:
		return "CANCELLED"
	}
	return "UNKNOWN"
}

// ParseCreditStatus accepts the JSON/query names of a credit status
func ParseCreditStatus(s string) (CreditStatus, error) {
	switch s {
	case "PENDING", "pending", "PENDIENTE":
		return CreditStatusPending, nil
	case "CANCELLED", "cancelled", "CANCELADA":
		return CreditStatusCancelled, nil
	}
	return CreditStatus(-1), fmt.Errorf("unknown credit status %q", s)
}

func (s CreditStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *CreditStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = CreditStatus(i)
		return nil
	}
	parsed, err := ParseCreditStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s CreditStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *CreditStatus) Scan(value interface{}) error {
	if value == nil {
		*s = CreditStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = CreditStatus(v)
	case int:
		*s = CreditStatus(v)
	}
	return nil
}
