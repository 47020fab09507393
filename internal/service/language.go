package service

import (
	"strings"

	"github.com/glowhire/sunshine/internal/domain"
)

// Vietnamese-specific letters. Plain ASCII vowels are shared with English and
// carry no signal, so they are not listed.
const vietnameseRunes = "ăâđêôơưáàảãạắằẳẵặấầẩẫậéèẻẽẹếềểễệíìỉĩịóòỏõọốồổỗộớờởỡợúùủũụứừửữựýỳỷỹỵ"

// Words common enough in Vietnamese chat to tag a diacritic-free message.
var vietnameseWords = []string{
	"khong", "chao", "toi", "ban", "lam", "viec", "tiem", "xin",
	"muon", "dang", "tuyen", "tho", "nail", "gio", "bao nhieu",
}

// ClassifyLanguage tags free text as English or Vietnamese. Pure and
// deterministic; ambiguous input defaults to English by policy.
func ClassifyLanguage(text string) domain.Language {
	lower := strings.ToLower(text)

	for _, r := range lower {
		if strings.ContainsRune(vietnameseRunes, r) {
			return domain.LanguageVietnamese
		}
	}

	words := strings.Fields(lower)
	hits := 0
	for _, w := range words {
		w = strings.Trim(w, ".,!?")
		for _, vw := range vietnameseWords {
			if w == vw {
				hits++
				break
			}
		}
	}
	// One accidental hit ("nail", "ban") is not enough on its own.
	if hits >= 2 {
		return domain.LanguageVietnamese
	}

	return domain.LanguageEnglish
}
