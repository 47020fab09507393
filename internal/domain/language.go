package domain

// Language is one of the two tags the widget supports.
type Language string

const (
	LanguageEnglish    Language = "en"
	LanguageVietnamese Language = "vi"
)

// Valid reports whether l is a supported tag.
func (l Language) Valid() bool {
	return l == LanguageEnglish || l == LanguageVietnamese
}
