package llsd

import "time"

var _ Value = NewDateValue(0)

// DateValue is an absolute UTC instant in seconds since the Unix epoch.
// Sub-second precision in any textual source form is discarded.
type DateValue int64

// NewDateValue returns an LLSD date value.
func NewDateValue(epochSeconds int64) DateValue {
	return DateValue(epochSeconds)
}

// NewDateValueFromTime returns an LLSD date value, truncating t to
// second resolution.
func NewDateValueFromTime(t time.Time) DateValue {
	return DateValue(t.Unix())
}

func (v DateValue) V() any {
	return int64(v)
}

func (v DateValue) Type() Type {
	return TypeDate
}

// Time returns the instant as a time.Time in UTC.
func (v DateValue) Time() time.Time {
	return time.Unix(int64(v), 0).UTC()
}

func (v DateValue) String() string {
	return v.Time().Format(time.RFC3339)
}
