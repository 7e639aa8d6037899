package delay

// Classify maps a non-negative delay in minutes to a status bucket.
func Classify(minutes int) Status {
	switch {
	case minutes <= 0:
		return StatusOnTime
	case minutes <= 5:
		return StatusSlightDelay
	case minutes <= 10:
		return StatusDelayed
	default:
		return StatusHeavilyDelayed
	}
}
