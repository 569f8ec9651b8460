package extensions

import (
	"math"
	"testing"
	"time"
)

func TestGroupByOrdered_KeepsFirstAppearance(t *testing.T) {
	words := []string{"bond", "yield", "basis", "year", "bill"}

	keys, groups := GroupByOrdered(words, func(s string) byte { return s[0] })

	AssertAreEqual(t, "key count", 2, len(keys))
	AssertAreEqual(t, "first key", byte('b'), keys[0])
	AssertAreEqual(t, "second key", byte('y'), keys[1])
	AssertAreEqual(t, "b group size", 3, len(groups['b']))
	AssertAreEqual(t, "b group order", "basis", groups['b'][1])
}

func TestFilterMultiplePtr_SkipsNil(t *testing.T) {
	one, two := 1, 2
	res := FilterMultiplePtr([]*int{&one, nil, &two}, func(v *int) bool { return *v > 1 })

	AssertAreEqual(t, "count", 1, len(res))
	AssertAreEqual(t, "value", 2, *res[0])
}

func TestWeekBounds(t *testing.T) {
	cases := map[string]string{
		"2024-03-04": "2024-03-04", // monday
		"2024-03-06": "2024-03-04",
		"2024-03-10": "2024-03-04", // sunday belongs to the week before it
		"2024-03-11": "2024-03-11",
	}

	for day, monday := range cases {
		d, _ := ParseShort(day)
		start, end := WeekBounds(d.Add(15 * time.Hour))
		AssertAreEqual(t, "monday of "+day, monday, FmtShort(start))
		AssertAreEqual(t, "week length of "+day, 6*24*time.Hour, end.Sub(start))
		AssertAreEqual(t, "sunday of "+day, time.Sunday, end.Weekday())
	}
}

func TestInDateRange_IgnoresTimeOfDay(t *testing.T) {
	start, _ := ParseShort("2024-03-01")
	end, _ := ParseShort("2024-03-10")

	AssertAreEqual(t, "end of last day", true, InDateRange(end.Add(23*time.Hour), start, end))
	AssertAreEqual(t, "day after", false, InDateRange(end.AddDate(0, 0, 1), start, end))
	AssertAreEqual(t, "first day", true, InDateRange(start, start, end))
}

func TestNullableFloat(t *testing.T) {
	AssertAreEqual(t, "finite", true, NullableFloat(1.5).Valid)
	AssertAreEqual(t, "nan", false, NullableFloat(math.NaN()).Valid)
	AssertAreEqual(t, "inf", false, NullableFloat(math.Inf(-1)).Valid)
}

func TestInRange(t *testing.T) {
	AssertAreEqual(t, "lower bound", true, InRange(28.0, 28, 30))
	AssertAreEqual(t, "upper bound", true, InRange(30.0, 28, 30))
	AssertAreEqual(t, "outside", false, InRange(30.01, 28, 30))
}
