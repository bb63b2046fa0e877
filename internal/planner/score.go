package planner

// Normalization anchors for the criterion scores.
const (
	minUsefulAltDeg   = 10.0 // altitude score is 0 here
	fullAltRangeDeg   = 30.0 // and 1 at minUsefulAltDeg + this
	astroTwilightDeg  = 18.0 // sun score is 1 once the sun is this far down
	civilTwilightDeg  = -6.0 // brighter than this gates the score to 0
	fullMoonSepDeg    = 60.0 // moon score is 1 at this separation
	neutralCloudScore = 0.5  // used when cloud cover is unknown
	okScoreThreshold  = 0.6
)

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Score blends the four observing criteria into a single recommendation.
//
// Each criterion normalizes to [0,1] and the blended score is their mean.
// A target below the horizon, or a sky brighter than civil twilight, gates
// the blended score to 0 outright: no combination of the other criteria can
// make such a moment observable. The OK flag additionally requires the
// target strictly above 10 degrees and the sun strictly below -6.
func Score(m Metrics) Recommendation {
	altScore := clamp01((m.TargetAltitudeDeg - minUsefulAltDeg) / fullAltRangeDeg)
	sunScore := clamp01(-m.SunAltitudeDeg / astroTwilightDeg)
	moonScore := clamp01(m.MoonTargetSeparationDeg / fullMoonSepDeg)

	cloudsScore := neutralCloudScore
	if m.CloudCoverPct != nil {
		cloudsScore = clamp01(1.0 - *m.CloudCoverPct/100.0)
	}

	score := (altScore + sunScore + moonScore + cloudsScore) / 4.0

	if m.TargetAltitudeDeg <= 0.0 || m.SunAltitudeDeg >= civilTwilightDeg {
		score = 0.0
	}

	ok := score >= okScoreThreshold &&
		m.TargetAltitudeDeg > minUsefulAltDeg &&
		m.SunAltitudeDeg < civilTwilightDeg

	return Recommendation{
		OK:    ok,
		Score: score,
		Criteria: CriterionScores{
			Alt:    altScore,
			Sun:    sunScore,
			Moon:   moonScore,
			Clouds: cloudsScore,
		},
	}
}
