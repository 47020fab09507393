package service

import (
	"math/rand"
	"sync"

	"github.com/glowhire/sunshine/internal/domain"
)

// greetingPools are fixed and ordered; ids are indexes into the pool.
var greetingPools = map[domain.Language][]string{
	domain.LanguageEnglish: {
		"Hey there! I'm Sunshine, your beauty-biz sidekick. What brings you in today?",
		"Hi! Looking to hire, get hired, or just browsing? I can help with all three.",
		"Welcome back to the sunny side! What can I do for you?",
		"Hello! Need a hand posting a job or polishing your profile?",
		"Hey! I know this place inside out. Ask me anything.",
	},
	domain.LanguageVietnamese: {
		"Chào bạn! Mình là Sunshine, trợ lý của bạn. Hôm nay bạn cần gì nào?",
		"Xin chào! Bạn muốn tuyển thợ, tìm việc, hay chỉ xem qua? Mình giúp được hết.",
		"Chào mừng bạn quay lại! Mình có thể giúp gì cho bạn?",
		"Chào bạn! Cần mình hướng dẫn đăng tin hay chỉnh hồ sơ không?",
	},
}

// GreetingRotator picks a greeting per widget-open event, never repeating the
// previously shown id when the pool allows it.
type GreetingRotator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewGreetingRotator(seed int64) *GreetingRotator {
	return &GreetingRotator{rng: rand.New(rand.NewSource(seed))}
}

// Next returns a greeting and its pool id. prevID is the id shown on the last
// open, or -1 when none. The returned id differs from prevID whenever the
// pool has more than one entry.
func (g *GreetingRotator) Next(lang domain.Language, prevID int) (string, int) {
	pool, ok := greetingPools[lang]
	if !ok {
		pool = greetingPools[domain.LanguageEnglish]
	}
	if len(pool) == 1 {
		return pool[0], 0
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.rng.Intn(len(pool))
	if id == prevID {
		id = (id + 1) % len(pool)
	}
	return pool[id], id
}
