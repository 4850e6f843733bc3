package game

import (
	"testing"
)

func TestLapEntryMilliseconds(t *testing.T) {
	entry := LapEntry{Min: "1", Sec: "31", Ms: "250"}
	if got := entry.Milliseconds(); got != 91250 {
		t.Fatalf("expected 91250, got %d", got)
	}
}

func TestLapEntryUnparseableFieldsReadAsZero(t *testing.T) {
	cases := []struct {
		entry LapEntry
		want  int64
	}{
		{LapEntry{Min: "", Sec: "59", Ms: ""}, 59000},
		{LapEntry{Min: "x", Sec: "1", Ms: "abc"}, 1000},
		{LapEntry{Min: "-1", Sec: "30", Ms: "0"}, 30000},
		{LapEntry{}, 0},
	}
	for _, tc := range cases {
		if got := tc.entry.Milliseconds(); got != tc.want {
			t.Errorf("entry %+v: expected %d, got %d", tc.entry, tc.want, got)
		}
	}
}

func TestNormalizeLapsExactCountRequired(t *testing.T) {
	entries := rawEntries(60000, 61000, 59000)

	times, err := NormalizeLaps(entries, 3)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(times) != 3 {
		t.Fatalf("expected 3 lap times, got %d", len(times))
	}

	if _, err := NormalizeLaps(entries, 5); err == nil {
		t.Fatal("expected validation error for too few laps")
	} else if !IsValidationError(err) {
		t.Fatalf("expected validation error, got %T", err)
	}
}

func TestNormalizeLapsDropsInvalidEntries(t *testing.T) {
	entries := append(rawEntries(60000, 61000, 59000), LapEntry{Min: "", Sec: "", Ms: ""})

	// The empty entry converts to zero and is filtered; three valid laps remain.
	times, err := NormalizeLaps(entries, 3)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(times) != 3 {
		t.Fatalf("expected 3 valid laps, got %d", len(times))
	}
}

func TestFormatTime(t *testing.T) {
	if got := FormatTime(91250); got != "1:31.250" {
		t.Fatalf("expected 1:31.250, got %s", got)
	}
	if got := FormatTime(59005); got != "0:59.005" {
		t.Fatalf("expected 0:59.005, got %s", got)
	}
}
