package constants

import "time"

// Redis Cache Configuration
// This file centralizes all Redis cache keys and TTL values for the Reelpass application
// Pattern: reelpass:{module}:{operation}:{identifier}
//
// Only catalog data is cached. Seat occupancy is never cached: it has
// to be recomputed from live tickets on every render.

// ================== CACHE TTL DURATIONS ==================

const (
	TTL_STATIC_LONG   = 24 * time.Hour // movie details (immutable reference data)
	TTL_STATIC_MEDIUM = 12 * time.Hour // movie listings
)

const (
	TTL_SEMI_STATIC_MEDIUM = 2 * time.Hour    // screening details
	TTL_SEMI_STATIC_SHORT  = 1 * time.Hour    // screenings per movie
	TTL_SEMI_STATIC_QUICK  = 15 * time.Minute // upcoming screenings
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "reelpass"
)

// ================== MOVIES MODULE ==================

const (
	CACHE_KEY_MOVIES_LIST     = CACHE_PREFIX + ":movies:list"
	CACHE_KEY_MOVIE_DETAIL    = CACHE_PREFIX + ":movies:detail:uuid:" // + movie-id
	PATTERN_INVALIDATE_MOVIES = CACHE_PREFIX + ":movies:*"
)

const (
	TTL_MOVIES_LIST  = TTL_STATIC_MEDIUM
	TTL_MOVIE_DETAIL = TTL_STATIC_LONG
)

// ================== SCREENINGS MODULE ==================

const (
	CACHE_KEY_SCREENING_DETAIL    = CACHE_PREFIX + ":screenings:detail:uuid:"   // + screening-id
	CACHE_KEY_SCREENINGS_BY_MOVIE = CACHE_PREFIX + ":screenings:by_movie:uuid:" // + movie-id
	CACHE_KEY_SCREENINGS_UPCOMING = CACHE_PREFIX + ":screenings:upcoming"
	PATTERN_INVALIDATE_SCREENINGS = CACHE_PREFIX + ":screenings:*"
)

const (
	TTL_SCREENING_DETAIL    = TTL_SEMI_STATIC_MEDIUM
	TTL_SCREENINGS_BY_MOVIE = TTL_SEMI_STATIC_SHORT
	TTL_SCREENINGS_UPCOMING = TTL_SEMI_STATIC_QUICK
)

// ================== KEY BUILDERS ==================

func MovieDetailKey(movieID string) string {
	return CACHE_KEY_MOVIE_DETAIL + movieID
}

func MoviesListKey() string {
	return CACHE_KEY_MOVIES_LIST
}

func ScreeningDetailKey(screeningID string) string {
	return CACHE_KEY_SCREENING_DETAIL + screeningID
}

func ScreeningsByMovieKey(movieID string) string {
	return CACHE_KEY_SCREENINGS_BY_MOVIE + movieID
}

func UpcomingScreeningsKey() string {
	return CACHE_KEY_SCREENINGS_UPCOMING
}
