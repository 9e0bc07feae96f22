package statement

import "testing"

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"7.5", "7.50"},
		{"999.99", "999.99"},
		{"1000", "1,000.00"},
		{"70.00", "70.00"},
		{"1234567.5", "1,234,567.50"},
		{"-30", "-30.00"},
		{"-1234.5", "-1,234.50"},
	}
	for _, c := range cases {
		got := FormatAmount(mustDecimal(t, c.in))
		if got != c.want {
			t.Fatalf("FormatAmount(%s): expected %q, got %q", c.in, c.want, got)
		}
	}
}

func TestDayOfTruncates(t *testing.T) {
	in := testToday
	day := DayOf(in)
	if day.Hour() != 0 || day.Minute() != 0 || day.Second() != 0 {
		t.Fatalf("expected midnight, got %v", day)
	}
	if day.Year() != 2026 || day.Month() != 3 || day.Day() != 14 {
		t.Fatalf("expected 2026-03-14, got %v", day)
	}
}
