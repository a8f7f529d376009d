package core

import (
	"time"
)

// Timestamp represents a point in time with timezone awareness
type Timestamp time.Time

// Now returns the current timestamp
func Now() Timestamp {
	return Timestamp(time.Now())
}

// Time returns the underlying time.Time
func (ts Timestamp) Time() time.Time {
	return time.Time(ts)
}

// IsZero checks if the timestamp is the zero value
func (ts Timestamp) IsZero() bool {
	return time.Time(ts).IsZero()
}

// Format formats the timestamp using the given layout
func (ts Timestamp) Format(layout string) string {
	return time.Time(ts).Format(layout)
}

// MarshalJSON encodes the timestamp in RFC 3339, like time.Time. A defined
// type does not inherit the underlying type's methods, so without these the
// encoder would emit an empty object.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return time.Time(ts).MarshalJSON()
}

// UnmarshalJSON decodes an RFC 3339 timestamp
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var t time.Time
	if err := t.UnmarshalJSON(data); err != nil {
		return err
	}
	*ts = Timestamp(t)
	return nil
}
