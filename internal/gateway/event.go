package gateway

import "encoding/json"

// EventChargeSuccess is the only event kind that moves a booking; all other
// kinds are acknowledged and ignored.
const EventChargeSuccess = "charge.success"

type Event struct {
	Event string    `json:"event"`
	Data  EventData `json:"data"`
}

type EventData struct {
	Reference string            `json:"reference"`
	Amount    int64             `json:"amount"`
	Metadata  map[string]string `json:"metadata"`
}

func ParseEvent(body []byte) (*Event, error) {
	var ev Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

// BookingID pulls the opaque booking id attached at initialize time.
func (e *Event) BookingID() string {
	if e.Data.Metadata == nil {
		return ""
	}
	return e.Data.Metadata["bookingId"]
}
