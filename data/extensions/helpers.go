package extensions

import (
	"math"
	"time"

	"github.com/guregu/null/v6"
)

type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// FilterMultiple return all elements that satisfy the predicate
func FilterMultiple[T any](elements []T, predicate func(T) bool) (results []T) {
	for _, element := range elements {
		if predicate(element) {
			results = append(results, element)
		}
	}
	return
}

// FilterMultiplePtr return all pointers that satisfy the predicate
func FilterMultiplePtr[T any](elements []*T, predicate func(*T) bool) (results []*T) {
	for _, element := range elements {
		if element != nil && predicate(element) {
			results = append(results, element)
		}
	}
	return
}

// GroupByOrdered groups elements by key. Keys are returned in the order they
// first appear, so callers that need a stable ordering of groups get one.
func GroupByOrdered[T any, K comparable](elements []T, key func(T) K) ([]K, map[K][]T) {
	keys := make([]K, 0)
	groups := make(map[K][]T)
	for _, element := range elements {
		k := key(element)
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], element)
	}
	return keys, groups
}

// Contains reports whether a set built with ToSet holds v
func Contains[T comparable](set map[T]struct{}, v T) bool {
	_, ok := set[v]
	return ok
}

// ToSet builds a lookup set from a slice
func ToSet[T comparable](values []T) map[T]struct{} {
	res := make(map[T]struct{}, len(values))
	for _, v := range values {
		res[v] = struct{}{}
	}
	return res
}

// FmtShort formats a time in a date only string
func FmtShort(t time.Time) string {
	return t.Format(time.DateOnly)
}

// ParseShort parses a date only string into a UTC midnight time
func ParseShort(s string) (time.Time, error) {
	return time.ParseInLocation(time.DateOnly, s, time.UTC)
}

// DateOnly truncates a time to midnight UTC of the same calendar day, so
// observations can be keyed and compared by date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WeekBounds returns the monday and sunday of the calendar week containing t
func WeekBounds(t time.Time) (time.Time, time.Time) {
	day := DateOnly(t)
	offset := (int(day.Weekday()) + 6) % 7 // monday = 0
	monday := day.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 6)
}

// InRange is an inclusive range check
func InRange[T Number](v, lo, hi T) bool {
	return v >= lo && v <= hi
}

// InDateRange is an inclusive date range check on calendar days
func InDateRange(t, start, end time.Time) bool {
	d := DateOnly(t)
	return !d.Before(DateOnly(start)) && !d.After(DateOnly(end))
}

// IsFinite is false for NaN and both infinities
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// NullableFloat maps non finite values to null so they serialize cleanly
func NullableFloat(f float64) null.Float {
	return null.NewFloat(f, IsFinite(f))
}

func Min[T Number](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func Sum[T Number](inp []T) (res T) {
	for _, v := range inp {
		res += v
	}
	return
}
