package scanning

import "strings"

// cleanTranscript strips the markdown fences vision models tend to wrap their
// answer in
func cleanTranscript(text string) string {
	text = strings.TrimSpace(text)

	// Drop an opening fence together with its language tag, e.g. ```text
	if strings.HasPrefix(text, "```") {
		if nl := strings.IndexByte(text, '\n'); nl >= 0 {
			text = text[nl+1:]
		} else {
			text = strings.TrimPrefix(text, "```")
		}
	}
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "```")

	// Normalize line endings so downstream line handling sees plain \n
	text = strings.ReplaceAll(text, "\r\n", "\n")

	return strings.TrimSpace(text)
}
