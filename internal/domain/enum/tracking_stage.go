package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// TrackingStage is a step of the shipment pipeline. Values are ordered.
type TrackingStage int

const (
	TrackingStageRequested TrackingStage = 0
	TrackingStageReceived  TrackingStage = 1
	TrackingStagePaid      TrackingStage = 2
	TrackingStageShipped   TrackingStage = 3
	TrackingStageInTransit TrackingStage = 4
	TrackingStageDelivered TrackingStage = 5
)

var trackingStageNames = [...]string{"REQUESTED", "RECEIVED", "PAID", "SHIPPED", "IN_TRANSIT", "DELIVERED"}

func (s TrackingStage) String() string {
	if !s.IsValid() {
		return "UNKNOWN"
	}
	return trackingStageNames[s]
}

// IsValid reports whether s is one of the six stages
func (s TrackingStage) IsValid() bool {
	return s >= TrackingStageRequested && s <= TrackingStageDelivered
}

// Next returns the stage immediately after s and false when s is the last stage
func (s TrackingStage) Next() (TrackingStage, bool) {
	if s >= TrackingStageDelivered || !s.IsValid() {
		return s, false
	}
	return s + 1, true
}

// ParseTrackingStage parses a stage from its upper-case name
func ParseTrackingStage(str string) (TrackingStage, error) {
	for i, name := range trackingStageNames {
		if name == str {
			return TrackingStage(i), nil
		}
	}
	return 0, fmt.Errorf("unknown tracking stage %q", str)
}

func (s TrackingStage) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *TrackingStage) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = TrackingStage(i)
		return nil
	}
	parsed, err := ParseTrackingStage(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s TrackingStage) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *TrackingStage) Scan(value interface{}) error {
	if value == nil {
		*s = TrackingStageRequested
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = TrackingStage(v)
	case int:
		*s = TrackingStage(v)
	}
	return nil
}
