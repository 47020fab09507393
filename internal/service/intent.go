package service

import (
	"net/url"
	"strings"

	"github.com/glowhire/sunshine/internal/config"
	"github.com/glowhire/sunshine/internal/domain"
)

// intentCategory identifies a rule for quick-action deduplication.
type intentCategory string

const (
	categoryPostJob   intentCategory = "post_job"
	categorySellSalon intentCategory = "sell_salon"
	categorySignup    intentCategory = "signup"
	categoryArticles  intentCategory = "articles"
)

// intentRule maps a keyword set to an in-app destination. Rules are evaluated
// top to bottom and the first match wins, so their order here is the
// tie-break order.
type intentRule struct {
	category     intentCategory
	keywords     []string
	topics       []string
	destination  string
	requiresAuth bool
	title        map[domain.Language]string
	prompt       map[domain.Language]string
	actionLabel  map[domain.Language]string
}

var intentRules = []intentRule{
	{
		category: categoryPostJob,
		keywords: []string{
			"post a job", "post job", "hire", "hiring", "find staff",
			"need a stylist", "need a tech", "job posting",
			"đăng tin", "tuyển thợ", "cần thợ", "tuyển dụng",
		},
		topics:      []string{"job", "staff", "stylist", "technician", "việc", "nhân viên"},
		destination: config.PathPostJob,
		title: map[domain.Language]string{
			domain.LanguageEnglish:    "Post a Job",
			domain.LanguageVietnamese: "Đăng tin tuyển dụng",
		},
		prompt: map[domain.Language]string{
			domain.LanguageEnglish:    "Want me to take you to the job posting page?",
			domain.LanguageVietnamese: "Bạn muốn mình đưa đến trang đăng tin tuyển dụng không?",
		},
		actionLabel: map[domain.Language]string{
			domain.LanguageEnglish:    "📋 Post a job",
			domain.LanguageVietnamese: "📋 Đăng tin tuyển dụng",
		},
	},
	{
		category: categorySellSalon,
		keywords: []string{
			"sell my salon", "sell my business", "sell a business",
			"list my business", "list my salon", "salon for sale",
			"bán tiệm", "sang tiệm", "sang nhượng",
		},
		topics:       []string{"salon", "business", "tiệm"},
		destination:  config.PathSellSalon,
		requiresAuth: true,
		title: map[domain.Language]string{
			domain.LanguageEnglish:    "List Your Salon",
			domain.LanguageVietnamese: "Đăng bán tiệm",
		},
		prompt: map[domain.Language]string{
			domain.LanguageEnglish:    "Want me to take you to the salon listing page?",
			domain.LanguageVietnamese: "Bạn muốn mình đưa đến trang đăng bán tiệm không?",
		},
		actionLabel: map[domain.Language]string{
			domain.LanguageEnglish:    "🏪 List your salon",
			domain.LanguageVietnamese: "🏪 Đăng bán tiệm",
		},
	},
	{
		category: categorySignup,
		keywords: []string{
			"sign up", "signup", "sign me up", "join", "create account",
			"create an account", "register",
			"đăng ký", "tạo tài khoản",
		},
		topics:      []string{"account", "membership", "get started", "tài khoản", "bắt đầu"},
		destination: config.PathSignup,
		title: map[domain.Language]string{
			domain.LanguageEnglish:    "Sign Up",
			domain.LanguageVietnamese: "Đăng ký",
		},
		prompt: map[domain.Language]string{
			domain.LanguageEnglish:    "Want me to take you to the sign-up page?",
			domain.LanguageVietnamese: "Bạn muốn mình đưa đến trang đăng ký không?",
		},
		actionLabel: map[domain.Language]string{
			domain.LanguageEnglish:    "✨ Sign up free",
			domain.LanguageVietnamese: "✨ Đăng ký miễn phí",
		},
	},
	{
		category: categoryArticles,
		keywords: []string{
			"article", "articles", "blog", "read about", "tips", "guide",
			"bài viết", "đọc thêm", "mẹo",
		},
		topics:      []string{"learn", "advice", "trend", "inspiration", "học", "xu hướng"},
		destination: config.PathArticles,
		title: map[domain.Language]string{
			domain.LanguageEnglish:    "Read Articles",
			domain.LanguageVietnamese: "Đọc bài viết",
		},
		prompt: map[domain.Language]string{
			domain.LanguageEnglish:    "Want me to take you to our articles?",
			domain.LanguageVietnamese: "Bạn muốn mình đưa đến trang bài viết không?",
		},
		actionLabel: map[domain.Language]string{
			domain.LanguageEnglish:    "📖 Read articles",
			domain.LanguageVietnamese: "📖 Đọc bài viết",
		},
	},
}

// signupTitles label the substituted destination shown to unauthenticated
// users asking for an auth-gated page.
var signupTitles = map[domain.Language]string{
	domain.LanguageEnglish:    "Sign Up to Continue",
	domain.LanguageVietnamese: "Đăng ký để tiếp tục",
}

// IntentRouter scans a turn's texts for navigation intents.
type IntentRouter struct {
	rules []intentRule
}

func NewIntentRouter() *IntentRouter {
	return &IntentRouter{rules: intentRules}
}

// Detect returns the pending route for the first rule matching either the
// user text or the assistant reply, or nil when nothing matches. When the
// destination requires authentication and the user has none, the sign-up page
// is substituted with the original destination as redirect target, so the
// confirmation dialog always shows a reachable page.
func (r *IntentRouter) Detect(userText, replyText string, lang domain.Language, authenticated bool) *domain.PendingRoute {
	haystack := strings.ToLower(userText + " " + replyText)

	for _, rule := range r.rules {
		if !matchesAny(haystack, rule.keywords) {
			continue
		}
		route := &domain.PendingRoute{
			Destination:  rule.destination,
			Title:        localized(rule.title, lang),
			Prompt:       localized(rule.prompt, lang),
			RequiresAuth: rule.requiresAuth,
		}
		if rule.requiresAuth && !authenticated {
			route.Destination = signupRedirect(rule.destination)
			route.Title = localized(signupTitles, lang)
		}
		return route
	}
	return nil
}

func matchesAny(haystack string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}

func localized(m map[domain.Language]string, lang domain.Language) string {
	if s, ok := m[lang]; ok {
		return s
	}
	return m[domain.LanguageEnglish]
}

func signupRedirect(destination string) string {
	return config.PathSignup + "?redirect=" + url.QueryEscape(destination)
}
