package config

import "time"

const (
	// Conversion nudge delays
	NudgeDelayMin   = 20 * time.Second
	NudgeDelayMax   = 45 * time.Second
	NudgeDelayFixed = 8 * time.Second

	// Session pruning
	SessionPruneInterval = 10 * time.Minute

	// Input limits
	MaxMessageLen = 2000

	// HTTP server timeouts
	ReadTimeout     = 15 * time.Second
	WriteTimeout    = 60 * time.Second
	ShutdownTimeout = 10 * time.Second

	// Database pool sizing. The widget fires short point queries per turn;
	// a small pool is plenty.
	DBMaxConns = 10
	DBMinConns = 2
)

// In-app destinations the assistant can route to.
const (
	PathPostJob      = "/post-job"
	PathSellSalon    = "/salons-for-sale"
	PathSignup       = "/signup"
	PathArticles     = "/blog"
	PathArtistSearch = "/artists"
)

// HighIntentPaths are the pages where a first-time visitor gets the
// randomized early nudge instead of the fixed delay.
var HighIntentPaths = []string{
	PathPostJob,
	PathSellSalon,
	PathArtistSearch,
	"/jobs",
	"/pricing",
}
