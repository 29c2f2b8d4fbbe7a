package progression

import "time"

// ResetIfNewDay zeroes CurrentCaloriesToday when LastUpdate falls on an earlier
// UTC calendar day than now. It does not touch LastUpdate; whoever persists the
// result stamps it.
func ResetIfNewDay(p Profile, now time.Time) Profile {
	if !NewDay(p.LastUpdate, now) {
		return p
	}
	p.CurrentCaloriesToday = 0
	return p
}

// NewDay reports whether now falls on a later UTC calendar day than last.
func NewDay(last, now time.Time) bool {
	ly, lm, ld := last.UTC().Date()
	ny, nm, nd := now.UTC().Date()
	if ly != ny {
		return ly < ny
	}
	if lm != nm {
		return lm < nm
	}
	return ld < nd
}
