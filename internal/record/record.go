package record

import (
	"errors"
	"fmt"
	"time"
)

// Interaction defines the communication channel of a record.
type Interaction string

const (
	// Call indicates a voice call.
	Call Interaction = "call"
	// Text indicates an SMS/text message.
	Text Interaction = "text"
	// Ping indicates a pure location event carrying no communication.
	Ping Interaction = ""
)

// Direction defines who initiated the interaction.
type Direction string

const (
	// Incoming interactions were initiated by the correspondent.
	Incoming Direction = "in"
	// Outgoing interactions were initiated by the user.
	Outgoing Direction = "out"
)

// ErrMalformedRecord indicates a record whose fields violate the
// interaction/duration invariant. Loaders must reject such records
// before handing them to the engine.
var ErrMalformedRecord = errors.New("malformed record")

// Position references the place a record was observed: an antenna
// identifier, explicit coordinates, or both. A zero Position means the
// location for that record is unknown.
type Position struct {
	Antenna   string   `json:"antenna,omitempty"`
	Latitude  *float64 `json:"lat,omitempty"`
	Longitude *float64 `json:"lon,omitempty"`
}

// Known reports whether the position carries any location information.
func (p Position) Known() bool {
	return p.Antenna != "" || (p.Latitude != nil && p.Longitude != nil)
}

// Record represents one discrete event: a call, a text, or a location ping.
// Records are treated as immutable values; transformations return copies.
type Record struct {
	// Timestamp is the instant the event occurred, in the local time of
	// the capture. Day/night classification uses this local wall clock.
	Timestamp time.Time `json:"ts"`
	// Interaction is the channel of the event (call, text, or empty for pings).
	Interaction Interaction `json:"interaction"`
	// Direction is set for communication records only.
	Direction Direction `json:"direction,omitempty"`
	// CorrespondentID identifies the other party. Never empty for
	// communication records.
	CorrespondentID string `json:"correspondent_id,omitempty"`
	// CallDuration is the call length in seconds. Present only for calls.
	CallDuration *int `json:"call_duration,omitempty"`
	// Position is the antenna or coordinates the event was observed at.
	Position Position `json:"position,omitempty"`
}

// Validate enforces the record invariants:
//   - a non-zero timestamp,
//   - CallDuration present only on Call records, and non-negative,
//   - communication records carry a correspondent and a direction.
func (r Record) Validate() error {
	if r.Timestamp.IsZero() {
		return fmt.Errorf("%w: missing timestamp", ErrMalformedRecord)
	}

	switch r.Interaction {
	case Call, Text, Ping:
	default:
		return fmt.Errorf("%w: unknown interaction %q", ErrMalformedRecord, r.Interaction)
	}

	if r.CallDuration != nil {
		if r.Interaction != Call {
			return fmt.Errorf("%w: duration set on %q record", ErrMalformedRecord, r.Interaction)
		}
		if *r.CallDuration < 0 {
			return fmt.Errorf("%w: negative call duration %d", ErrMalformedRecord, *r.CallDuration)
		}
	}

	if r.Interaction == Call || r.Interaction == Text {
		if r.CorrespondentID == "" {
			return fmt.Errorf("%w: communication record without correspondent", ErrMalformedRecord)
		}
		if r.Direction != Incoming && r.Direction != Outgoing {
			return fmt.Errorf("%w: invalid direction %q", ErrMalformedRecord, r.Direction)
		}
	}

	return nil
}

// Anonymized returns a copy of the record with the correspondent replaced
// by the given opaque identifier. The receiver is never mutated.
func (r Record) Anonymized(id string) Record {
	out := r
	out.CorrespondentID = id
	return out
}

// Duration returns the call duration in seconds, or 0 if absent.
func (r Record) Duration() int {
	if r.CallDuration == nil {
		return 0
	}
	return *r.CallDuration
}
