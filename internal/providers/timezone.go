package providers

import (
	"time"
	_ "time/tzdata"
)

// EasternZone is the zone SportsDataIO uses for offset-less timestamps.
const EasternZone = "America/New_York"

// ResolveTimezone returns a location for a tz string, or nil if invalid.
func ResolveTimezone(tz string) *time.Location {
	if tz == "" {
		return nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil
	}
	return loc
}

// EasternOrUTC resolves EasternZone, falling back to UTC when it cannot be loaded.
func EasternOrUTC() *time.Location {
	if loc := ResolveTimezone(EasternZone); loc != nil {
		return loc
	}
	return time.UTC
}
