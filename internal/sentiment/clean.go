package sentiment

import "strings"

// cleanModelResponse strips surrounding whitespace and markdown code fences
// ("```json ... ```" or "``` ... ```") that some models wrap around JSON even in
// JSON mode. It does not repair the payload itself.
func cleanModelResponse(response string) string {
	cleaned := strings.TrimSpace(response)

	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		if len(cleaned) >= len("json") && strings.EqualFold(cleaned[:len("json")], "json") {
			cleaned = cleaned[len("json"):]
		}
		cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	}

	return strings.TrimSpace(cleaned)
}
