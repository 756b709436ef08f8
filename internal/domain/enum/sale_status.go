package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// SaleStatus represents the lifecycle state of a sale
type SaleStatus int

const (
	SaleStatusCart      SaleStatus = 0
	SaleStatusPending   SaleStatus = 1
	SaleStatusCompleted SaleStatus = 2
	SaleStatusCancelled SaleStatus = 3
)

// saleTransitions is the single source of truth for allowed status changes
var saleTransitions = map[SaleStatus][]SaleStatus{
	SaleStatusCart:      {SaleStatusPending},
	SaleStatusPending:   {SaleStatusCompleted, SaleStatusCancelled},
	SaleStatusCompleted: {SaleStatusCancelled},
	SaleStatusCancelled: {},
}

func (s SaleStatus) String() string {
	switch s {
	case SaleStatusCart:
		return "CART"
	case SaleStatusPending:
		return "PENDING"
	case SaleStatusCompleted:
		return "COMPLETED"
	case SaleStatusCancelled:
		return "CANCELLED"
	}
	return "UNKNOWN"
}

// IsValid reports whether the value is a known status
func (s SaleStatus) IsValid() bool {
	return s >= SaleStatusCart && s <= SaleStatusCancelled
}

// CanTransitionTo reports whether moving to the target status is allowed
func (s SaleStatus) CanTransitionTo(target SaleStatus) bool {
	for _, allowed := range saleTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// ParseSaleStatus converts a status name into a SaleStatus. The second return
// is false for unrecognized input.
func ParseSaleStatus(value string) (SaleStatus, bool) {
	switch value {
	case "CART":
		return SaleStatusCart, true
	case "PENDING":
		return SaleStatusPending, true
	case "COMPLETED":
		return SaleStatusCompleted, true
	case "CANCELLED":
		return SaleStatusCancelled, true
	}
	return SaleStatusCart, false
}

func (s SaleStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *SaleStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = SaleStatus(i)
		return nil
	}
	if parsed, ok := ParseSaleStatus(str); ok {
		*s = parsed
	}
	return nil
}

func (s SaleStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *SaleStatus) Scan(value interface{}) error {
	if value == nil {
		*s = SaleStatusCart
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = SaleStatus(v)
	case int:
		*s = SaleStatus(v)
	}
	return nil
}
