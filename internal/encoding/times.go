package encoding

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dromara/carbon/v2"

	llsd "github.com/openmetaverse/go-llsd"
)

// ParseDate parses an ISO-8601 UTC timestamp into seconds since the
// Unix epoch. Fractional seconds are accepted and truncated toward the
// earlier representable second, never rounded.
func ParseDate(s string) (int64, error) {
	c := carbon.Parse(s, "UTC")
	if c.Error != nil {
		return 0, errors.Wrapf(llsd.ErrInvalidPrimitive, "invalid date %q", s)
	}

	ts := c.StdTime()
	sec := ts.Unix()
	// Unix truncates toward negative infinity, which is the earlier
	// second on both sides of the epoch.
	return sec, nil
}

// FormatDate renders epoch seconds as an ISO-8601 UTC timestamp with
// second resolution, e.g. 2006-02-01T14:29:53Z.
func FormatDate(epochSeconds int64) string {
	return time.Unix(epochSeconds, 0).UTC().Format(time.RFC3339)
}
