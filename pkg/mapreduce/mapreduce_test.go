package mapreduce

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestCountNgrams(t *testing.T) {
	tests := []struct {
		name  string
		texts []string
		n     int
		want  map[string]int
	}{
		{
			name:  "last window is dropped",
			texts: []string{"a b c"},
			n:     1,
			want:  map[string]int{"a": 1, "b": 1},
		},
		{
			name:  "reviews example",
			texts: []string{"great app love it", "great app"},
			n:     1,
			want:  map[string]int{"great": 2, "app": 1, "love": 1},
		},
		{
			name:  "bigrams",
			texts: []string{"great app love it", "great app"},
			n:     2,
			want:  map[string]int{"great app": 1, "app love": 1},
		},
		{
			name:  "trigrams",
			texts: []string{"a b c d e"},
			n:     3,
			want:  map[string]int{"a b c": 1, "b c d": 1},
		},
		{
			name:  "text with exactly n tokens yields nothing",
			texts: []string{"a b"},
			n:     2,
			want:  map[string]int{},
		},
		{
			name:  "text shorter than n is skipped",
			texts: []string{"a", "x y z w"},
			n:     2,
			want:  map[string]int{"x y": 1, "y z": 1},
		},
		{
			name:  "empty tokens are dropped before windowing",
			texts: []string{" app  works well "},
			n:     1,
			want:  map[string]int{"app": 1, "works": 1},
		},
		{
			name:  "repeats count every occurrence",
			texts: []string{"bad bad bad bad"},
			n:     1,
			want:  map[string]int{"bad": 3},
		},
		{
			name:  "no texts",
			texts: nil,
			n:     3,
			want:  map[string]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CountNgrams(tt.texts, tt.n)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CountNgrams(%q, %d) = %v, want %v", tt.texts, tt.n, got, tt.want)
			}
		})
	}
}

func TestCountNgrams_KeysHaveNTokens(t *testing.T) {
	texts := []string{
		"this is a longer review with many words in it",
		"short",
		"two words",
		" spaced  out  text here ",
	}

	for n := 1; n <= 3; n++ {
		for key, count := range CountNgrams(texts, n) {
			if got := len(strings.Split(key, " ")); got != n {
				t.Errorf("n=%d: key %q has %d tokens", n, key, got)
			}
			if count < 1 {
				t.Errorf("n=%d: key %q has count %d", n, key, count)
			}
			if key == "short" || key == "two words" && n == 2 {
				t.Errorf("n=%d: key %q came from a text with too few tokens", n, key)
			}
		}
	}
}

func TestCountNgrams_DroppedTrailingWindows(t *testing.T) {
	words := []string{"w1", "w2", "w3", "w4", "w5"}
	text := strings.Join(words, " ")

	for n := 1; n <= 3; n++ {
		total := 0
		for _, c := range CountNgrams([]string{text}, n) {
			total += c
		}
		want := len(words) - n + 1 - DroppedTrailingWindows
		if total != want {
			t.Errorf("n=%d: counted %d windows, want %d", n, total, want)
		}
		last := strings.Join(words[len(words)-n:], " ")
		if _, ok := CountNgrams([]string{text}, n)[last]; ok && DroppedTrailingWindows > 0 {
			t.Errorf("n=%d: final window %q was counted", n, last)
		}
	}
}

func TestCountNgrams_InvalidN(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("CountNgrams() with n=0 did not panic")
		}
	}()
	CountNgrams([]string{"a b"}, 0)
}

func TestMapReduce(t *testing.T) {
	intermediate := []map[string]int{
		Map("great app love it", 1),
		Map("great app", 1),
	}

	got := Reduce(intermediate)

	want := CountNgrams([]string{"great app love it", "great app"}, 1)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Reduce(Map...) = %v, want %v", got, want)
	}
}

func TestRankByFrequencyDescending(t *testing.T) {
	table := map[string]int{"zeta": 2, "alpha": 2, "top": 5, "low": 1, "beta": 2}

	got := RankByFrequencyDescending(table)

	want := []KeyCount{
		{"top", 5},
		{"alpha", 2},
		{"beta", 2},
		{"zeta", 2},
		{"low", 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RankByFrequencyDescending() = %v, want %v", got, want)
	}
}

func TestRankByFrequencyDescending_OrderAndSum(t *testing.T) {
	table := CountNgrams([]string{
		"the app keeps crashing every time i open the app",
		"love this app so much love love",
		"app crashing again and again",
	}, 1)

	ranked := RankByFrequencyDescending(table)

	if len(ranked) != len(table) {
		t.Fatalf("len(ranked) = %d, want %d", len(ranked), len(table))
	}
	sumIn, sumOut := 0, 0
	for _, v := range table {
		sumIn += v
	}
	for i, kc := range ranked {
		sumOut += kc.Count
		if i > 0 && ranked[i-1].Count < kc.Count {
			t.Errorf("ranked[%d].Count = %d > ranked[%d].Count = %d", i, kc.Count, i-1, ranked[i-1].Count)
		}
	}
	if sumIn != sumOut {
		t.Errorf("sum of ranked counts = %d, want %d", sumOut, sumIn)
	}
}

func TestRankByFrequencyDescending_Empty(t *testing.T) {
	if got := RankByFrequencyDescending(map[string]int{}); len(got) != 0 {
		t.Errorf("RankByFrequencyDescending(empty) = %v, want empty", got)
	}
}

func TestTopKeywords(t *testing.T) {
	table := map[string]int{"app": 3, "great": 3, "bad": 1}

	tests := []struct {
		n    int
		want []string
	}{
		{2, []string{"app:3", "great:3"}},
		{10, []string{"app:3", "great:3", "bad:1"}},
		{0, []string{}},
		{-1, []string{}},
	}

	for _, tt := range tests {
		if got := TopKeywords(table, tt.n); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("TopKeywords(n=%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestPrintTopKeywords(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	PrintTopKeywords(&buf, "5star 1-grams", []KeyCount{{"great", 4}, {"app", 2}, {"fast", 1}}, 2)

	want := "--- 5star 1-grams ---\n1. great: 4\n2. app: 2\n"
	if buf.String() != want {
		t.Errorf("PrintTopKeywords() wrote %q, want %q", buf.String(), want)
	}

	buf.Reset()
	PrintTopKeywords(&buf, "1star 3-grams", nil, 5)
	if !strings.Contains(buf.String(), "(none)") {
		t.Errorf("PrintTopKeywords(empty) wrote %q, want (none)", buf.String())
	}
}
