// Package timezone holds the property's local timezone.
//
// Every calendar date on the board (today, stay start and end dates) is read in this zone:
//
//	now := timezone.Now()             // wall clock in the property's zone
//	loc := timezone.GetLocation()     // for parsing YYYY-MM-DD dates
//
// The zone is configured via APP_TIMEZONE (e.g. Indian/Maldives) using IANA names and is
// loaded when the package is imported. Without it, or with an unknown name, UTC is used.
package timezone
