package service

import "github.com/glowhire/sunshine/internal/domain"

// phraseSet holds the canned widget copy for one language.
type phraseSet struct {
	apology        string
	greetByName    string // fmt verb %s receives the extracted name
	takingYouThere string
	askAnything    string
	askAnythingCue string
}

var phrases = map[domain.Language]phraseSet{
	domain.LanguageEnglish: {
		apology:        "Sorry, something went wrong on my end. Please try again in a moment!",
		greetByName:    "Hi %s, so nice to meet you! How can I help you today?",
		takingYouThere: "Great, taking you there now!",
		askAnything:    "Ask me anything",
		askAnythingCue: "What can you help me with?",
	},
	domain.LanguageVietnamese: {
		apology:        "Xin lỗi, đã có lỗi xảy ra. Bạn vui lòng thử lại sau nhé!",
		greetByName:    "Chào %s, rất vui được gặp bạn! Mình có thể giúp gì cho bạn hôm nay?",
		takingYouThere: "Tuyệt, mình đưa bạn đến đó ngay!",
		askAnything:    "Hỏi mình bất cứ điều gì",
		askAnythingCue: "Bạn có thể giúp mình những gì?",
	},
}

// phrasesFor never fails: unknown tags fall back to English.
func phrasesFor(lang domain.Language) phraseSet {
	if p, ok := phrases[lang]; ok {
		return p
	}
	return phrases[domain.LanguageEnglish]
}

// followUp is a keyword-triggered appendix glued onto a reply body.
type followUp struct {
	keywords []string
	text     map[domain.Language]string
}

var followUps = []followUp{
	{
		keywords: []string{"price", "pricing", "cost", "fee", "giá", "chi phí"},
		text: map[domain.Language]string{
			domain.LanguageEnglish:    "By the way, posting your first job is free!",
			domain.LanguageVietnamese: "Nhân tiện, đăng tin tuyển dụng đầu tiên hoàn toàn miễn phí!",
		},
	},
	{
		keywords: []string{"portfolio", "profile", "hồ sơ"},
		text: map[domain.Language]string{
			domain.LanguageEnglish:    "Tip: profiles with photos get three times more views.",
			domain.LanguageVietnamese: "Mẹo nhỏ: hồ sơ có hình ảnh được xem nhiều gấp ba lần.",
		},
	},
}

// helpKeywords mark a message as help-seeking for the generic quick action.
var helpKeywords = []string{"help", "how do i", "how to", "what can you", "confused", "giúp", "làm sao", "cách nào"}
