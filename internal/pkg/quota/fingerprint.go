package quota

import "regexp"

// Supporters can embed their deploy fingerprint in the free-text support note
// ("thanks, fp-abc123xyz"). A token is "fp-" followed by 6+ alphanumerics.
var fingerprintPattern = regexp.MustCompile(`fp-[a-zA-Z0-9]{6,}`)

// ExtractFingerprint returns the first fingerprint token embedded in a note,
// or the empty string when none is present.
func ExtractFingerprint(note string) string {
	return fingerprintPattern.FindString(note)
}
