// Package timezone pins every timestamp the service produces to one location.
//
// The location is read from APP_TIMEZONE when the package is first imported and
// falls back to UTC. Use IANA names such as "UTC" or "Asia/Jakarta".
//
//	now := timezone.Now()      // wall clock in the app location
//	stamp := timezone.Stamp()  // same, truncated to the store's microsecond precision
package timezone
