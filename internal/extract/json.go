package extract

import "strings"

// ExtractJSON extracts JSON from an LLM response (handles markdown code blocks)
func ExtractJSON(response string) string {
	// Try to find JSON in a ```json code block
	if start := strings.Index(response, "```json"); start != -1 {
		start += 7
		if end := strings.Index(response[start:], "```"); end != -1 {
			return strings.TrimSpace(response[start : start+end])
		}
	}

	// Try a generic code block
	if start := strings.Index(response, "```"); start != -1 {
		start += 3
		// Skip language identifier if present
		if nl := strings.Index(response[start:], "\n"); nl != -1 {
			start += nl + 1
		}
		if end := strings.Index(response[start:], "```"); end != -1 {
			return strings.TrimSpace(response[start : start+end])
		}
	}

	// Fall back to the raw response if it looks like a JSON object/array
	response = strings.TrimSpace(response)
	if (strings.HasPrefix(response, "{") && strings.HasSuffix(response, "}")) ||
		(strings.HasPrefix(response, "[") && strings.HasSuffix(response, "]")) {
		return response
	}

	return response
}
