package daily

import (
	"testing"
	"time"

	"github.com/nordeck/worldle-go/internal/catalog"
)

func TestDateKeyUTC(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"utc midday", time.Date(2022, 3, 16, 12, 0, 0, 0, time.UTC), "03-16-2022"},
		{"local evening crosses into next utc day", time.Date(2022, 3, 15, 23, 30, 0, 0, est), "03-16-2022"},
		{"utc midnight", time.Date(2022, 3, 16, 0, 0, 0, 0, time.UTC), "03-16-2022"},
		{"single digit month and day zero padded", time.Date(2022, 1, 2, 8, 0, 0, 0, time.UTC), "01-02-2022"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DateKey(tt.t); got != tt.want {
				t.Errorf("DateKey(%v) = %s, want %s", tt.t, got, tt.want)
			}
		})
	}
}

func TestSeedStable(t *testing.T) {
	// FNV-1a of "03-16-2022+194". Pinned so an accidental hash or format
	// change cannot silently reshuffle every historical daily puzzle.
	const want = int64(-7751428351250703644)
	if got := Seed("03-16-2022", 194); got != want {
		t.Errorf("Seed = %d, want %d", got, want)
	}
}

func TestSeedVaries(t *testing.T) {
	base := Seed("03-16-2022", 194)
	if Seed("03-17-2022", 194) == base {
		t.Error("seed unchanged across dates")
	}
	if Seed("03-16-2022", 195) == base {
		t.Error("seed unchanged across catalog sizes")
	}
}

func TestPickIndexDeterministicAndInRange(t *testing.T) {
	for _, size := range []int{1, 2, 50, 194} {
		date := "03-16-2022"
		first := PickIndex(date, size)
		if first < 0 || first >= size {
			t.Fatalf("PickIndex(%q, %d) = %d out of range", date, size, first)
		}
		for i := 0; i < 10; i++ {
			if got := PickIndex(date, size); got != first {
				t.Fatalf("PickIndex(%q, %d) not stable: %d then %d", date, size, first, got)
			}
		}
	}
}

func TestPickIndexEmptyCatalog(t *testing.T) {
	if got := PickIndex("03-16-2022", 0); got != 0 {
		t.Errorf("PickIndex with empty catalog = %d, want 0", got)
	}
}

func TestPick(t *testing.T) {
	countries := []catalog.Country{
		{Code: "BR", Name: "Brazil"},
		{Code: "FR", Name: "France"},
		{Code: "UG", Name: "Uganda"},
	}
	got := Pick("03-16-2022", countries)
	want := countries[PickIndex("03-16-2022", len(countries))]
	if got.Code != want.Code {
		t.Errorf("Pick = %s, want %s", got.Code, want.Code)
	}
}
