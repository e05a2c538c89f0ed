package nlu

import "strings"

// ExtractJSONPayload strips markdown code fences from a model response so the
// remainder can be unmarshaled. Handles ```json ... ``` and bare ``` ... ```
// wrappers; text without fences is returned trimmed.
func ExtractJSONPayload(response string) string {
	s := strings.TrimSpace(response)
	if strings.Contains(s, "```json") {
		s = strings.SplitN(s, "```json", 2)[1]
		s = strings.SplitN(s, "```", 2)[0]
	} else if strings.Contains(s, "```") {
		parts := strings.SplitN(s, "```", 3)
		if len(parts) >= 2 {
			s = parts[1]
		}
	}
	return strings.TrimSpace(s)
}
