package report

import "time"

// SetClock pins the service clock for deterministic report output in tests.
func SetClock(s *Service, now func() time.Time) {
	s.now = now
}
