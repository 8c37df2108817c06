package llm

import "strings"

// StripCodeFence removes a markdown code fence around model output, with or
// without a language tag.
func StripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	if nl := strings.Index(text, "\n"); nl >= 0 {
		tag := strings.TrimSpace(text[:nl])
		if !strings.ContainsAny(tag, "{[ ") {
			text = text[nl+1:]
		}
	} else {
		text = strings.TrimPrefix(text, "json")
	}

	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
