package zone

import (
	"time"

	"github.com/jroosing/hydrazone/internal/helpers"
)

// dateBase returns YYYYMMDD00 for the UTC calendar day of now.
func dateBase(now time.Time) uint32 {
	y, m, d := now.UTC().Date()
	return helpers.ClampIntToUint32((y*10000 + int(m)*100 + d) * 100)
}

// InitialSerial is the serial of a zone created at now: YYYYMMDD01.
func InitialSerial(now time.Time) uint32 {
	return dateBase(now) + 1
}

// NextSerial advances a YYYYMMDDnn serial. A serial from an earlier day
// resets to today's 01; otherwise it is incremented, so repeated updates on
// one day never decrease it.
func NextSerial(current uint32, now time.Time) uint32 {
	base := dateBase(now)
	if current < base {
		return base + 1
	}
	return current + 1
}
