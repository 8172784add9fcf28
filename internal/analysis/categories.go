package analysis

import "strings"

// category is one interest bucket scored by keyword frequency.
type category struct {
	name     string
	keywords []string
}

// categories is the fixed interest taxonomy. Declaration order doubles as
// the tie-break order when scores are equal.
var categories = []category{
	{"programming", []string{"python", "java", "javascript", "coding", "programming", "algorithm"}},
	{"data_science", []string{"data science", "machine learning", "ai", "deep learning"}},
	{"web_development", []string{"html", "css", "react", "angular", "web development"}},
	{"mathematics", []string{"math", "calculus", "algebra", "statistics", "probability"}},
	{"science", []string{"physics", "chemistry", "biology", "science"}},
	{"business", []string{"business", "management", "marketing", "finance"}},
	{"design", []string{"design", "ui", "ux", "graphic"}},
	{"career", []string{"job", "career", "interview", "resume", "salary"}},
	{"exam_prep", []string{"exam", "test", "preparation", "gate", "jee", "neet"}},
}

// displayName renders a category identifier human-readable:
// "data_science" -> "Data Science".
func displayName(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
