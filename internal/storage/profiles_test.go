package storage

import "testing"

func TestWellnessScore(t *testing.T) {
	cases := []struct {
		name          string
		streak        int
		conversations int
		gratitude     int
		want          float64
	}{
		{"zero activity", 0, 0, 0, 0},
		{"all caps hit", 30, 50, 20, 100},
		{"beyond caps clamps", 100, 500, 200, 100},
		{"streak only", 15, 0, 0, 20},
		{"conversations only", 0, 25, 0, 15},
		{"gratitude only", 0, 0, 10, 15},
		{"negative inputs floor at zero", -5, -1, -3, 0},
	}
	for _, tc := range cases {
		got := WellnessScore(tc.streak, tc.conversations, tc.gratitude)
		if got != tc.want {
			t.Errorf("%s: WellnessScore(%d, %d, %d) = %v, want %v",
				tc.name, tc.streak, tc.conversations, tc.gratitude, got, tc.want)
		}
	}
}
