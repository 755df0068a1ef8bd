package utils

import "time"

// All "once per day" state is keyed to the Korean calendar day regardless of
// where the caller is.
var kst = mustKST()

func mustKST() *time.Location {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		// Fixed offset fallback; KST has no DST.
		return time.FixedZone("KST", 9*60*60)
	}
	return loc
}

// TodayKST returns today's KST calendar day at midnight UTC, the canonical
// form stored in date columns.
func TodayKST() time.Time {
	return DateKST(time.Now())
}

// DateKST truncates an instant to its KST calendar day.
func DateKST(t time.Time) time.Time {
	y, m, d := t.In(kst).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MonthRangeKST returns the first day of the month and the first day of the
// next month, both as canonical date values.
func MonthRangeKST(year, month int) (from time.Time, toExclusive time.Time) {
	from = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	toExclusive = from.AddDate(0, 1, 0)
	return from, toExclusive
}
