package service

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"careerpath/internal/infrastructure/llm"
)

const maxAlternativeTitles = 3

type TitleGenerator struct {
	llm     llm.Client
	timeout time.Duration
	logger  *log.Logger
}

func NewTitleGenerator(client llm.Client, timeout time.Duration, logger *log.Logger) *TitleGenerator {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &TitleGenerator{llm: client, timeout: timeout, logger: logger}
}

// Generate asks the model for titles related to role. It never fails: any
// model or parse error yields an empty list.
func (g *TitleGenerator) Generate(ctx context.Context, role string) []string {
	if g == nil || g.llm == nil {
		return []string{}
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	system, user := alternativeTitlesPrompts(role)
	text, err := g.llm.Generate(ctx, system, user)
	if err != nil {
		g.logf("[Titles] generation error role=%q err=%v", role, err)
		return []string{}
	}

	titles, ok := ParseTitles(text)
	if !ok {
		g.logf("[Titles] response was not a JSON array role=%q", role)
		return []string{}
	}
	return titles
}

// ParseTitles decodes a JSON array of titles, dropping blank and non-string
// entries and keeping at most three.
func ParseTitles(text string) ([]string, bool) {
	var items []any
	if err := json.Unmarshal([]byte(llm.StripCodeFence(text)), &items); err != nil {
		return []string{}, false
	}

	out := make([]string, 0, maxAlternativeTitles)
	for _, it := range items {
		s, ok := it.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
		if len(out) == maxAlternativeTitles {
			break
		}
	}
	return out, true
}

func (g *TitleGenerator) logf(format string, args ...any) {
	if g.logger != nil {
		g.logger.Printf(format, args...)
	}
}
