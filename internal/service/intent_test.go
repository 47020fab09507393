package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowhire/sunshine/internal/config"
	"github.com/glowhire/sunshine/internal/domain"
)

func TestIntentRouterPostJob(t *testing.T) {
	r := NewIntentRouter()

	route := r.Detect("I want to post a job", "", domain.LanguageEnglish, false)
	require.NotNil(t, route)
	assert.Equal(t, config.PathPostJob, route.Destination)
	assert.Equal(t, "Post a Job", route.Title)
	assert.False(t, route.RequiresAuth)
}

func TestIntentRouterMatchesReplyText(t *testing.T) {
	r := NewIntentRouter()

	route := r.Detect("what should I do next?", "You could post a job to find staff quickly.", domain.LanguageEnglish, false)
	require.NotNil(t, route)
	assert.Equal(t, config.PathPostJob, route.Destination)
}

func TestIntentRouterFirstRuleWins(t *testing.T) {
	r := NewIntentRouter()

	// Matches both the post-job and sign-up rules; the rule listed first
	// must win deterministically.
	route := r.Detect("I want to post a job and sign up", "", domain.LanguageEnglish, true)
	require.NotNil(t, route)
	assert.Equal(t, config.PathPostJob, route.Destination)
}

func TestIntentRouterNoMatch(t *testing.T) {
	r := NewIntentRouter()

	assert.Nil(t, r.Detect("what's the weather like?", "No idea, I'm a beauty assistant.", domain.LanguageEnglish, false))
}

func TestIntentRouterAuthSubstitution(t *testing.T) {
	r := NewIntentRouter()

	route := r.Detect("I want to sell my salon", "", domain.LanguageEnglish, false)
	require.NotNil(t, route)
	assert.Equal(t, config.PathSignup+"?redirect=%2Fsalons-for-sale", route.Destination)
	assert.Equal(t, "Sign Up to Continue", route.Title)

	// Authenticated users go straight to the real destination.
	route = r.Detect("I want to sell my salon", "", domain.LanguageEnglish, true)
	require.NotNil(t, route)
	assert.Equal(t, config.PathSellSalon, route.Destination)
}

func TestIntentRouterVietnamese(t *testing.T) {
	r := NewIntentRouter()

	route := r.Detect("Tôi muốn đăng tin tuyển thợ", "", domain.LanguageVietnamese, false)
	require.NotNil(t, route)
	assert.Equal(t, config.PathPostJob, route.Destination)
	assert.Equal(t, "Đăng tin tuyển dụng", route.Title)
}

func TestIntentRouterCaseInsensitive(t *testing.T) {
	r := NewIntentRouter()

	route := r.Detect("I WANT TO POST A JOB", "", domain.LanguageEnglish, false)
	require.NotNil(t, route)
	assert.Equal(t, config.PathPostJob, route.Destination)
}
