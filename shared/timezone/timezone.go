package timezone

import (
	"roomboard/config"
	"time"

	"github.com/rs/zerolog/log"
)

var appLocation = time.UTC

func init() {
	appLocation = Load(config.Get().App.Timezone)
}

// Load resolves an IANA zone name. An empty or unknown name yields UTC.
func Load(name string) *time.Location {
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")

		return time.UTC
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().
			Err(err).
			Str("timezone", name).
			Msg("Failed to load timezone, falling back to UTC. Please use standard timezone names like 'Indian/Maldives', 'UTC', 'Asia/Jakarta'")

		return time.UTC
	}

	log.Info().Str("timezone", loc.String()).Msg("Application timezone initialized")

	return loc
}

// Now returns the current time in the property's timezone. Calendar dates ("today",
// booking days) are taken from it.
func Now() time.Time {
	return time.Now().In(appLocation)
}

// GetLocation returns the property's timezone.
func GetLocation() *time.Location {
	return appLocation
}
