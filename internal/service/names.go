package service

import (
	"regexp"
	"strings"

	"github.com/glowhire/sunshine/internal/domain"
)

// Phrasings that introduce a name, per language. The first capture group is
// the name itself.
var namePatterns = map[domain.Language][]*regexp.Regexp{
	domain.LanguageEnglish: {
		regexp.MustCompile(`(?i)\bmy name is\s+([\p{L}][\p{L}'-]*)`),
		regexp.MustCompile(`(?i)\bcall me\s+([\p{L}][\p{L}'-]*)`),
		regexp.MustCompile(`(?i)\bi am\s+([\p{L}][\p{L}'-]*)`),
		regexp.MustCompile(`(?i)\bi'?m\s+([\p{L}][\p{L}'-]*)`),
	},
	domain.LanguageVietnamese: {
		regexp.MustCompile(`(?i)\btên tôi là\s+([\p{L}][\p{L}'-]*)`),
		regexp.MustCompile(`(?i)\btôi tên là\s+([\p{L}][\p{L}'-]*)`),
		regexp.MustCompile(`(?i)\btôi là\s+([\p{L}][\p{L}'-]*)`),
		regexp.MustCompile(`(?i)\bmình là\s+([\p{L}][\p{L}'-]*)`),
	},
}

// Words that follow "I'm ..." without being names.
var notNames = map[string]bool{
	"looking": true, "trying": true, "interested": true, "not": true,
	"just": true, "here": true, "new": true, "a": true, "an": true,
	"the": true, "so": true, "very": true, "really": true, "good": true,
	"fine": true, "okay": true, "ok": true, "sorry": true, "sure": true,
}

// ExtractName pulls a display name out of free text, or returns "" when none
// is found. The orchestrator enforces write-once semantics; this function
// only detects.
func ExtractName(text string, lang domain.Language) string {
	patterns := namePatterns[lang]
	if patterns == nil {
		patterns = namePatterns[domain.LanguageEnglish]
	}

	for _, re := range patterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		candidate := strings.Trim(m[1], ".,!?")
		if candidate == "" || notNames[strings.ToLower(candidate)] {
			continue
		}
		return titleCase(candidate)
	}
	return ""
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
	return string(runes)
}
