// Package seo scores page metadata for search engine readiness. The analysis
// is pure: the same input always produces the same report.
package seo

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

type IssueType string

const (
	IssueError   IssueType = "error"
	IssueWarning IssueType = "warning"
	IssueSuccess IssueType = "success"
	IssueInfo    IssueType = "info"
)

type Impact string

const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
	ImpactLow    Impact = "low"
	ImpactNone   Impact = "none"
)

// Input is the metadata under analysis. Every field is optional.
type Input struct {
	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`
	MetaKeywords    string `json:"metaKeywords"`
	CanonicalURL    string `json:"canonicalUrl"`
	OGImage         string `json:"ogImage"`
	RobotsMeta      string `json:"robotsMeta"`
}

type Issue struct {
	Type       IssueType `json:"type"`
	Category   string    `json:"category"`
	Message    string    `json:"message"`
	Impact     Impact    `json:"impact"`
	Suggestion string    `json:"suggestion,omitempty"`
}

type Report struct {
	Score  int     `json:"score"`
	Grade  string  `json:"grade"`
	Issues []Issue `json:"issues"`
}

const (
	titleMin    = 30
	titleGood   = 50
	titleMax    = 60
	descMin     = 70
	descGood    = 120
	descMax     = 160
	keywordsMin = 3
	keywordsMax = 10
	maxScore    = 100
)

const (
	categoryTitle       = "title"
	categoryDescription = "description"
	categoryKeywords    = "keywords"
	categoryCanonical   = "canonical"
	categorySocial      = "social"
	categoryRobots      = "robots"
)

// CTAVerbs are the call-to-action verbs looked for in the description.
var CTAVerbs = []string{
	"scopri", "leggi", "esplora", "visita", "guarda",
	"trova", "scarica", "prova", "inizia", "clicca",
}

type analysis struct {
	score  int
	issues []Issue
}

func (a *analysis) add(points int, issue Issue) {
	a.score -= points
	a.issues = append(a.issues, issue)
}

// Analyze applies every rule in a fixed order and returns the clamped score,
// the grade and the issues found.
func Analyze(in Input) Report {
	a := &analysis{score: maxScore, issues: make([]Issue, 0)}

	title := strings.TrimSpace(in.MetaTitle)
	desc := strings.TrimSpace(in.MetaDescription)
	keywords := SplitKeywords(in.MetaKeywords)

	checkTitle(a, title)
	checkKeywordInTitle(a, title, keywords)
	checkDescription(a, desc)
	checkCTA(a, desc)
	checkKeywords(a, keywords)
	checkCanonical(a, strings.TrimSpace(in.CanonicalURL))
	checkOGImage(a, strings.TrimSpace(in.OGImage))
	checkRobots(a, in.RobotsMeta)

	score := clamp(a.score, 0, maxScore)

	return Report{
		Score:  score,
		Grade:  Grade(score),
		Issues: a.issues,
	}
}

func checkTitle(a *analysis, title string) {
	n := utf8.RuneCountInString(title)

	switch {
	case n == 0:
		a.add(20, Issue{
			Type:       IssueError,
			Category:   categoryTitle,
			Impact:     ImpactHigh,
			Message:    "Meta title is missing",
			Suggestion: fmt.Sprintf("Add a title of %d-%d characters", titleGood, titleMax),
		})
	case n < titleMin:
		a.add(10, Issue{
			Type:       IssueWarning,
			Category:   categoryTitle,
			Impact:     ImpactMedium,
			Message:    fmt.Sprintf("Meta title is too short (%d characters)", n),
			Suggestion: fmt.Sprintf("Use at least %d characters", titleMin),
		})
	case n < titleGood:
		a.add(0, Issue{
			Type:       IssueInfo,
			Category:   categoryTitle,
			Impact:     ImpactLow,
			Message:    fmt.Sprintf("Meta title length is acceptable (%d characters)", n),
			Suggestion: fmt.Sprintf("Titles of %d-%d characters perform best", titleGood, titleMax),
		})
	case n <= titleMax:
		a.add(0, Issue{
			Type:     IssueSuccess,
			Category: categoryTitle,
			Impact:   ImpactNone,
			Message:  fmt.Sprintf("Meta title length is optimal (%d characters)", n),
		})
	default:
		a.add(10, Issue{
			Type:       IssueWarning,
			Category:   categoryTitle,
			Impact:     ImpactMedium,
			Message:    fmt.Sprintf("Meta title is too long (%d characters)", n),
			Suggestion: fmt.Sprintf("Keep the title under %d characters to avoid truncation", titleMax+1),
		})
	}
}

func checkKeywordInTitle(a *analysis, title string, keywords []string) {
	if title == "" || len(keywords) == 0 {
		return
	}

	lower := strings.ToLower(title)
	for _, k := range keywords {
		if strings.Contains(lower, strings.ToLower(k)) {
			return
		}
	}

	a.add(5, Issue{
		Type:       IssueWarning,
		Category:   categoryTitle,
		Impact:     ImpactMedium,
		Message:    "Meta title does not contain any keyword",
		Suggestion: "Include the main keyword in the title",
	})
}

func checkDescription(a *analysis, desc string) {
	n := utf8.RuneCountInString(desc)

	switch {
	case n == 0:
		a.add(15, Issue{
			Type:       IssueError,
			Category:   categoryDescription,
			Impact:     ImpactHigh,
			Message:    "Meta description is missing",
			Suggestion: fmt.Sprintf("Add a description of %d-%d characters", descGood, descMax),
		})
	case n < descMin:
		a.add(10, Issue{
			Type:       IssueWarning,
			Category:   categoryDescription,
			Impact:     ImpactMedium,
			Message:    fmt.Sprintf("Meta description is too short (%d characters)", n),
			Suggestion: fmt.Sprintf("Use at least %d characters", descMin),
		})
	case n < descGood:
		a.add(0, Issue{
			Type:       IssueInfo,
			Category:   categoryDescription,
			Impact:     ImpactLow,
			Message:    fmt.Sprintf("Meta description length is acceptable (%d characters)", n),
			Suggestion: fmt.Sprintf("Descriptions of %d-%d characters perform best", descGood, descMax),
		})
	case n <= descMax:
		a.add(0, Issue{
			Type:     IssueSuccess,
			Category: categoryDescription,
			Impact:   ImpactNone,
			Message:  fmt.Sprintf("Meta description length is optimal (%d characters)", n),
		})
	default:
		a.add(5, Issue{
			Type:       IssueWarning,
			Category:   categoryDescription,
			Impact:     ImpactLow,
			Message:    fmt.Sprintf("Meta description is too long (%d characters)", n),
			Suggestion: fmt.Sprintf("Keep the description under %d characters", descMax+1),
		})
	}
}

func checkCTA(a *analysis, desc string) {
	if desc == "" || HasCTA(desc) {
		return
	}

	a.add(5, Issue{
		Type:       IssueWarning,
		Category:   categoryDescription,
		Impact:     ImpactLow,
		Message:    "Meta description has no call to action",
		Suggestion: "Start with a verb such as " + strings.Join(CTAVerbs[:3], ", "),
	})
}

func checkKeywords(a *analysis, keywords []string) {
	switch n := len(keywords); {
	case n == 0:
		a.add(10, Issue{
			Type:       IssueWarning,
			Category:   categoryKeywords,
			Impact:     ImpactMedium,
			Message:    "Meta keywords are missing",
			Suggestion: fmt.Sprintf("Add %d-%d comma separated keywords", keywordsMin, keywordsMax),
		})
	case n > keywordsMax:
		a.add(5, Issue{
			Type:       IssueWarning,
			Category:   categoryKeywords,
			Impact:     ImpactLow,
			Message:    fmt.Sprintf("Too many keywords (%d)", n),
			Suggestion: fmt.Sprintf("Keep at most %d focused keywords", keywordsMax),
		})
	case n < keywordsMin:
		a.add(5, Issue{
			Type:       IssueWarning,
			Category:   categoryKeywords,
			Impact:     ImpactLow,
			Message:    fmt.Sprintf("Too few keywords (%d)", n),
			Suggestion: fmt.Sprintf("Add at least %d keywords", keywordsMin),
		})
	}
}

func checkCanonical(a *analysis, canonical string) {
	switch {
	case canonical == "":
		a.add(5, Issue{
			Type:       IssueWarning,
			Category:   categoryCanonical,
			Impact:     ImpactLow,
			Message:    "Canonical URL is missing",
			Suggestion: "Set the canonical URL to avoid duplicate content",
		})
	case !IsAbsoluteURL(canonical):
		a.add(10, Issue{
			Type:       IssueError,
			Category:   categoryCanonical,
			Impact:     ImpactMedium,
			Message:    "Canonical URL is not a valid absolute URL",
			Suggestion: "Use a full http(s) URL",
		})
	}
}

func checkOGImage(a *analysis, image string) {
	switch {
	case image == "":
		a.add(5, Issue{
			Type:       IssueWarning,
			Category:   categorySocial,
			Impact:     ImpactLow,
			Message:    "Open Graph image is missing",
			Suggestion: "Add an image for social sharing (1200x630)",
		})
	case !IsAbsoluteURL(image):
		a.add(5, Issue{
			Type:       IssueWarning,
			Category:   categorySocial,
			Impact:     ImpactLow,
			Message:    "Open Graph image is not a valid absolute URL",
			Suggestion: "Use a full http(s) URL",
		})
	}
}

func checkRobots(a *analysis, robots string) {
	if !strings.Contains(strings.ToLower(robots), "noindex") {
		return
	}

	a.add(0, Issue{
		Type:     IssueInfo,
		Category: categoryRobots,
		Impact:   ImpactNone,
		Message:  "Page is excluded from indexing (noindex)",
	})
}

// SplitKeywords splits a comma separated list, dropping blank entries.
func SplitKeywords(s string) []string {
	out := make([]string, 0)
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// HasCTA reports whether text contains one of the call-to-action verbs.
func HasCTA(text string) bool {
	lower := strings.ToLower(text)
	for _, v := range CTAVerbs {
		if strings.Contains(lower, v) {
			return true
		}
	}
	return false
}

// IsAbsoluteURL accepts http and https URLs with a host.
func IsAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Grade maps a score to its letter band.
func Grade(score int) string {
	switch {
	case score >= 90:
		return "A+"
	case score >= 80:
		return "A"
	case score >= 70:
		return "B"
	case score >= 60:
		return "C"
	case score >= 50:
		return "D"
	default:
		return "F"
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
