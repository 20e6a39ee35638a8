package timezone

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"stayhub/config"
)

// DefaultLocation is used when APP_TIMEZONE is unset. Properties and the
// payment gateway both operate on Saudi local time.
const DefaultLocation = "Asia/Riyadh"

var (
	once     sync.Once
	location *time.Location
)

// Load resolves an IANA zone name, falling back to UTC when it is unknown.
func Load(name string) *time.Location {
	if name == "" {
		name = DefaultLocation
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("unknown timezone, falling back to UTC")

		return time.UTC
	}

	return loc
}

// Location is the application timezone, read from config on first use.
func Location() *time.Location {
	once.Do(func() {
		location = Load(config.Get().App.Timezone)

		log.Debug().Str("timezone", location.String()).Msg("application timezone loaded")
	})

	return location
}

func Now() time.Time {
	return time.Now().In(Location())
}

// Today is the current local calendar day pinned to UTC midnight, the same
// shape stay dates are stored in.
func Today() time.Time {
	return DayOf(Now())
}

// DayOf keeps t's calendar day as seen in t's own location.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func Format(t time.Time, layout string) string {
	return t.In(Location()).Format(layout)
}
