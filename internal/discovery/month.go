package discovery

import (
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"time"

	"github.com/IshaanNene/hnarcade/internal/types"
)

var monthKeyRe = regexp.MustCompile(`^(\d{4})-(\d{2})$`)

// Month is one calendar month in UTC, the unit of archive search.
type Month struct {
	Key     string // YYYY-MM
	Start   time.Time
	End     time.Time // first instant of the following month
	Display string    // e.g. "March 2022"
}

// ParseMonth parses a YYYY-MM key.
func ParseMonth(key string) (Month, error) {
	m := monthKeyRe.FindStringSubmatch(key)
	if m == nil {
		return Month{}, fmt.Errorf("%q: %w", key, types.ErrInvalidMonth)
	}
	year, _ := strconv.Atoi(m[1])
	mon, _ := strconv.Atoi(m[2])
	if mon < 1 || mon > 12 {
		return Month{}, fmt.Errorf("%q: %w", key, types.ErrInvalidMonth)
	}
	return monthOf(year, time.Month(mon)), nil
}

func monthOf(year int, mon time.Month) Month {
	start := time.Date(year, mon, 1, 0, 0, 0, 0, time.UTC)
	return Month{
		Key:     start.Format("2006-01"),
		Start:   start,
		End:     start.AddDate(0, 1, 0),
		Display: start.Format("January 2006"),
	}
}

// RandomMonth picks a month uniformly from earliest through the month lag
// months before now, both inclusive. If that range is empty earliest is
// returned.
func RandomMonth(now time.Time, earliest Month, lag int, rng *rand.Rand) Month {
	now = now.UTC()
	latest := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -lag, 0)

	span := (latest.Year()-earliest.Start.Year())*12 + int(latest.Month()-earliest.Start.Month())
	if span <= 0 {
		return earliest
	}

	picked := earliest.Start.AddDate(0, rng.Intn(span+1), 0)
	return monthOf(picked.Year(), picked.Month())
}
