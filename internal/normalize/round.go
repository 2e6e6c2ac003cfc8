package normalize

import (
	"strings"
)

// Canonical round-type names, least to most significant. RoundUnknown
// always ranks last regardless of position here.
const (
	RoundPreSeed   = "pre-seed"
	RoundSeed      = "seed"
	RoundSeriesA   = "series-a"
	RoundSeriesB   = "series-b"
	RoundSeriesCUp = "series-c+"
	RoundGrowth    = "growth"
	RoundUnknown   = "unknown"
)

// RoundOrder is the fixed total order of round types used as a ranking
// tie-break, least significant first.
var RoundOrder = []string{
	RoundPreSeed, RoundSeed, RoundSeriesA, RoundSeriesB, RoundSeriesCUp, RoundGrowth,
}

// NormalizeRound maps a raw round label onto the canonical round names.
func NormalizeRound(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return RoundUnknown
	}
	s = strings.ReplaceAll(s, "_", "-")

	switch {
	case strings.Contains(s, "pre-seed") || strings.Contains(s, "preseed") || strings.Contains(s, "pre seed"):
		return RoundPreSeed
	case strings.Contains(s, "seed") && !strings.Contains(s, "series"):
		return RoundSeed
	case strings.Contains(s, "series a") || strings.Contains(s, "series-a"):
		return RoundSeriesA
	case strings.Contains(s, "series b") || strings.Contains(s, "series-b"):
		return RoundSeriesB
	case strings.Contains(s, "series c") || strings.Contains(s, "series-c"),
		strings.Contains(s, "series d") || strings.Contains(s, "series-d"),
		strings.Contains(s, "series e") || strings.Contains(s, "series-e"),
		strings.Contains(s, "series f") || strings.Contains(s, "series-f"):
		return RoundSeriesCUp
	case strings.Contains(s, "growth") || strings.Contains(s, "late stage"):
		return RoundGrowth
	default:
		return RoundUnknown
	}
}

// InferRound guesses a round type from free text (title plus summary) by
// keyword match, defaulting to RoundUnknown when nothing matches.
func InferRound(text string) string {
	if round := NormalizeRound(text); round != RoundUnknown {
		return round
	}
	return RoundUnknown
}
