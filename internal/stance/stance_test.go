package stance

import "testing"

func TestFromScoreThresholds(t *testing.T) {
	cases := []struct {
		score int
		want  Category
	}{
		{0, Oppose},
		{25, Oppose},
		{39, Oppose},
		{40, Neutral},
		{50, Neutral},
		{60, Neutral},
		{61, Support},
		{75, Support},
		{100, Support},
	}

	for _, c := range cases {
		if got := FromScore(c.score); got != c.want {
			t.Errorf("FromScore(%d) = %s, want %s", c.score, got, c.want)
		}
	}
}

func TestFromScoreTotalOverRange(t *testing.T) {
	for score := MinScore; score <= MaxScore; score++ {
		got := FromScore(score)
		if got != Support && got != Oppose && got != Neutral {
			t.Fatalf("FromScore(%d) = %q, not a derivable category", score, got)
		}
	}
}

func TestFromScoreOutOfRange(t *testing.T) {
	if got := FromScore(-20); got != Oppose {
		t.Errorf("FromScore(-20) = %s, want Oppose", got)
	}
	if got := FromScore(150); got != Support {
		t.Errorf("FromScore(150) = %s, want Support", got)
	}
}

func TestClamp(t *testing.T) {
	cases := []struct{ in, want int }{
		{-5, 0},
		{0, 0},
		{55, 55},
		{100, 100},
		{113, 100},
	}
	for _, c := range cases {
		if got := Clamp(c.in); got != c.want {
			t.Errorf("Clamp(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}
