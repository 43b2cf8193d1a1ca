package store

import (
	"context"

	"github.com/dmitrijs2005/sitekeeper/internal/datex"
	"github.com/dmitrijs2005/sitekeeper/internal/models"
)

// CheckInCredential marks a credential as checked in now: it stamps
// checkedInOn, prepends a bounded history record, bumps the analytics
// counters and recomputes the streak. Returns false when the site or
// credential does not exist; a missing target is an expected race, not an
// error.
func (s *Store) CheckInCredential(siteID, credID string) bool {
	site := s.doc.FindSite(siteID)
	if site == nil {
		s.log.Debug(context.Background(), "check-in target site missing", "site", siteID)
		return false
	}
	cred := site.FindCredential(credID)
	if cred == nil {
		s.log.Debug(context.Background(), "check-in target credential missing", "site", siteID, "credential", credID)
		return false
	}

	now := s.now()
	ts := datex.Timestamp(now)

	cred.CheckedInOn = &ts
	cred.CheckInHistory = append([]models.CheckInRecord{{
		Timestamp: ts,
		Date:      datex.Today(now),
	}}, cred.CheckInHistory...)
	if len(cred.CheckInHistory) > s.historyCap {
		cred.CheckInHistory = cred.CheckInHistory[:s.historyCap]
	}

	s.doc.Analytics.TotalCheckIns++
	s.updateStreak(ts)
	s.doc.Analytics.LastCheckIn = &ts
	s.doc.Analytics.AverageDaily = s.averageDaily()

	return s.persist()
}

// updateStreak applies the consecutive-day rule against the previous
// lastCheckIn. A prior check-in yesterday extends the streak, one today
// leaves it alone, anything older restarts at 1. currentStreak can never
// end up above longestStreak.
func (s *Store) updateStreak(nowTS string) {
	a := &s.doc.Analytics

	switch {
	case a.LastCheckIn == nil:
		a.CurrentStreak = 1
	default:
		priorDate := datex.DateOf(*a.LastCheckIn)
		today := datex.DateOf(nowTS)
		yesterday := datex.Yesterday(s.now())

		switch priorDate {
		case yesterday:
			a.CurrentStreak++
		case today:
			// multiple check-ins the same day do not inflate the streak
		default:
			a.CurrentStreak = 1
		}
	}

	if a.CurrentStreak > a.LongestStreak {
		a.LongestStreak = a.CurrentStreak
	}
}

// averageDaily is total check-ins divided by the number of distinct
// calendar days that appear in any credential's history.
func (s *Store) averageDaily() float64 {
	days := make(map[string]struct{})
	for i := range s.doc.Sites {
		for j := range s.doc.Sites[i].Credentials {
			for _, rec := range s.doc.Sites[i].Credentials[j].CheckInHistory {
				days[rec.Date] = struct{}{}
			}
		}
	}
	if len(days) == 0 {
		return 0
	}
	return float64(s.doc.Analytics.TotalCheckIns) / float64(len(days))
}

// ResetCredential clears a credential's checked-in state. History and
// analytics counters stay untouched: history is an append-only audit trail
// independent of the live checked flag.
func (s *Store) ResetCredential(siteID, credID string) bool {
	site := s.doc.FindSite(siteID)
	if site == nil {
		return false
	}
	cred := site.FindCredential(credID)
	if cred == nil {
		return false
	}
	cred.CheckedInOn = nil
	return s.persist()
}

// ResetAllCredentials clears the checked-in state of every credential of
// every site.
func (s *Store) ResetAllCredentials() bool {
	for i := range s.doc.Sites {
		for j := range s.doc.Sites[i].Credentials {
			s.doc.Sites[i].Credentials[j].CheckedInOn = nil
		}
	}
	return s.persist()
}
