package seo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func issueFor(r Report, category string, typ IssueType) (Issue, bool) {
	for _, is := range r.Issues {
		if is.Category == category && is.Type == typ {
			return is, true
		}
	}
	return Issue{}, false
}

func TestAnalyze_Empty(t *testing.T) {
	r := Analyze(Input{})

	assert.Equal(t, 45, r.Score)
	assert.Equal(t, "F", r.Grade)
	assert.LessOrEqual(t, r.Score, 100-20-15-10)

	_, ok := issueFor(r, categoryTitle, IssueError)
	assert.True(t, ok)
	_, ok = issueFor(r, categoryDescription, IssueError)
	assert.True(t, ok)
}

func TestAnalyze_OptimalLengthsWithCTA(t *testing.T) {
	title := strings.Repeat("t", 45) + " magazine"
	desc := "Scopri " + strings.Repeat("d", 133)

	r := Analyze(Input{
		MetaTitle:       title,
		MetaDescription: desc,
		MetaKeywords:    "magazine, estate, moda",
		CanonicalURL:    "https://example.com/estate-2025",
		OGImage:         "https://cdn.example.com/og.jpg",
	})

	assert.Len(t, []rune(title), 54)
	assert.Len(t, []rune(desc), 140)
	assert.Equal(t, 100, r.Score)
	assert.Equal(t, "A+", r.Grade)

	_, ok := issueFor(r, categoryTitle, IssueSuccess)
	assert.True(t, ok)
	_, ok = issueFor(r, categoryDescription, IssueSuccess)
	assert.True(t, ok)
	for _, is := range r.Issues {
		assert.NotEqual(t, IssueWarning, is.Type, is.Message)
		assert.NotEqual(t, IssueError, is.Type, is.Message)
	}
}

func TestAnalyze_Rules(t *testing.T) {
	base := Input{
		MetaTitle:       strings.Repeat("a", 50) + " moda",
		MetaDescription: "Leggi " + strings.Repeat("b", 124),
		MetaKeywords:    "moda, estate, viaggi",
		CanonicalURL:    "https://example.com/a",
		OGImage:         "https://example.com/a.jpg",
	}

	tests := []struct {
		name   string
		mutate func(in *Input)
		score  int
	}{
		{"baseline", func(in *Input) {}, 100},
		{"short title", func(in *Input) { in.MetaTitle = "moda" }, 90},
		{"acceptable title", func(in *Input) { in.MetaTitle = strings.Repeat("c", 35) + " moda" }, 100},
		{"long title", func(in *Input) { in.MetaTitle = strings.Repeat("c", 70) + " moda" }, 90},
		{"no keyword in title", func(in *Input) { in.MetaTitle = strings.Repeat("c", 55) }, 95},
		{"short description", func(in *Input) { in.MetaDescription = "Leggi ora" }, 90},
		{"long description", func(in *Input) { in.MetaDescription = "Leggi " + strings.Repeat("d", 170) }, 95},
		{"no call to action", func(in *Input) { in.MetaDescription = strings.Repeat("e", 130) }, 95},
		{"cta is case insensitive", func(in *Input) { in.MetaDescription = "ESPLORA " + strings.Repeat("e", 122) }, 100},
		{"no keywords", func(in *Input) { in.MetaKeywords = "" }, 90},
		{"too few keywords", func(in *Input) { in.MetaKeywords = "moda, estate" }, 95},
		{"too many keywords", func(in *Input) { in.MetaKeywords = "moda,a,b,c,d,e,f,g,h,i,j" }, 95},
		{"relative canonical", func(in *Input) { in.CanonicalURL = "/a" }, 90},
		{"missing canonical", func(in *Input) { in.CanonicalURL = "" }, 95},
		{"invalid og image", func(in *Input) { in.OGImage = "ftp://example.com/a.jpg" }, 95},
		{"missing og image", func(in *Input) { in.OGImage = "" }, 95},
		{"noindex is informational", func(in *Input) { in.RobotsMeta = "noindex, follow" }, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			tt.mutate(&in)

			r := Analyze(in)
			assert.Equal(t, tt.score, r.Score)
			assert.Equal(t, Grade(tt.score), r.Grade)
		})
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	in := Input{MetaTitle: "Estate", MetaKeywords: "moda"}
	assert.Equal(t, Analyze(in), Analyze(in))
}

func TestGrade(t *testing.T) {
	tests := map[int]string{
		100: "A+", 90: "A+", 89: "A", 80: "A", 79: "B", 70: "B",
		69: "C", 60: "C", 59: "D", 50: "D", 49: "F", 0: "F",
	}
	for score, want := range tests {
		assert.Equal(t, want, Grade(score), score)
	}
}

func TestSplitKeywords(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitKeywords(" a, ,b ,"))
	assert.Empty(t, SplitKeywords(""))
}
