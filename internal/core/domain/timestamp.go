package domain

import (
	"errors"
	"time"
)

var ErrBadTimestamp = errors.New("malformed datetime string")

// WireTimeLayout is the datetime format clients send: microsecond precision,
// no timezone designator.
const WireTimeLayout = "2006-01-02T15:04:05.000000"

// TimeCodec converts between the wire datetime representation and the
// integer epoch-seconds form the store keeps for ordering comparisons.
//
// The wire format carries no zone, so the codec interprets strings in a
// fixed location chosen at construction time. Encode truncates to whole
// seconds; Decode(Encode(s)) therefore reproduces s only to second
// precision.
type TimeCodec struct {
	loc *time.Location
}

// NewTimeCodec returns a codec interpreting wire datetimes in UTC when utc
// is true, otherwise in the host's local zone.
func NewTimeCodec(utc bool) *TimeCodec {
	loc := time.Local
	if utc {
		loc = time.UTC
	}
	return &TimeCodec{loc: loc}
}

// Encode parses a wire datetime string into epoch seconds.
// Returns ErrBadTimestamp when the string does not match WireTimeLayout.
func (c *TimeCodec) Encode(wire string) (int64, error) {
	t, err := time.ParseInLocation(WireTimeLayout, wire, c.loc)
	if err != nil {
		return 0, ErrBadTimestamp
	}
	return t.Unix(), nil
}

// Decode renders epoch seconds back into the wire datetime format.
func (c *TimeCodec) Decode(epoch int64) string {
	return time.Unix(epoch, 0).In(c.loc).Format(WireTimeLayout)
}
