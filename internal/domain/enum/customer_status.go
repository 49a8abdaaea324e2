package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// CustomerStatus represents whether a customer may keep buying
type CustomerStatus int

const (
	CustomerStatusActive   CustomerStatus = 0
	CustomerStatusInactive CustomerStatus = 1
)

func (s CustomerStatus) String() string {
	if s == CustomerStatusInactive {
		return "inactive"
	}
	return "active"
}

func (s CustomerStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *CustomerStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = CustomerStatus(i)
		return nil
	}
	switch str {
	case "inactive", "inactivo":
		*s = CustomerStatusInactive
	default:
		*s = CustomerStatusActive
	}
	return nil
}

func (s CustomerStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *CustomerStatus) Scan(value interface{}) error {
	if value == nil {
		*s = CustomerStatusActive
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = CustomerStatus(v)
	case int:
		*s = CustomerStatus(v)
	}
	return nil
}
