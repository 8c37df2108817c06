package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"strings"
	"time"

	"careerpath/internal/domain/roadmap"
	"careerpath/internal/infrastructure/jobsearch"
)

const MaxRelevantJobs = 5

type SearchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

type JobSearcher struct {
	client jobsearch.Client
	cache  SearchCache
	logger *log.Logger
}

// NewJobSearcher accepts a nil cache.
func NewJobSearcher(client jobsearch.Client, cache SearchCache, logger *log.Logger) *JobSearcher {
	return &JobSearcher{client: client, cache: cache, logger: logger}
}

// Candidates returns the primary title followed by the alternatives, with
// blanks and case-insensitive duplicates removed so no title is queried twice.
func Candidates(primary string, alternatives []string) []string {
	out := make([]string, 0, 1+len(alternatives))
	seen := make(map[string]struct{}, 1+len(alternatives))
	for _, t := range append([]string{primary}, alternatives...) {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		k := normalizeTitle(t)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, t)
	}
	return out
}

// SearchWithFallback tries each candidate in order and returns the first
// non-empty result. Failed searches are skipped.
func (s *JobSearcher) SearchWithFallback(ctx context.Context, candidates []string) []roadmap.JobListing {
	if s == nil || s.client == nil {
		return []roadmap.JobListing{}
	}

	for _, title := range candidates {
		if ctx.Err() != nil {
			break
		}
		jobs := s.search(ctx, title)
		if len(jobs) > 0 {
			s.logf("[JobSearch] found jobs title=%q count=%d", title, len(jobs))
			return DedupeByURL(jobs, MaxRelevantJobs)
		}
	}

	s.logf("[JobSearch] no jobs found candidates=%d", len(candidates))
	return []roadmap.JobListing{}
}

func (s *JobSearcher) search(ctx context.Context, title string) []roadmap.JobListing {
	key := JobSearchCacheKey(title)
	if s.cache != nil {
		var cached []roadmap.JobListing
		hit, err := s.cache.GetJSON(ctx, key, &cached)
		if err == nil && hit && len(cached) > 0 {
			return cached
		}
	}

	jobs, err := s.client.Search(ctx, title)
	if err != nil {
		s.logf("[JobSearch] search failed title=%q err=%v", title, err)
		return nil
	}

	if len(jobs) > 0 && s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, jobs, 0); err != nil {
			s.logf("[JobSearch] cache write failed title=%q err=%v", title, err)
		}
	}
	return jobs
}

// DedupeByURL keeps the first listing per url, up to limit entries.
func DedupeByURL(jobs []roadmap.JobListing, limit int) []roadmap.JobListing {
	out := make([]roadmap.JobListing, 0, min(len(jobs), max(limit, 0)))
	seen := make(map[string]struct{}, len(jobs))
	for _, j := range jobs {
		if len(out) >= limit {
			break
		}
		if _, ok := seen[j.URL]; ok {
			continue
		}
		seen[j.URL] = struct{}{}
		out = append(out, j)
	}
	return out
}

func normalizeTitle(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func JobSearchCacheKey(title string) string {
	sum := sha256.Sum256([]byte(normalizeTitle(title)))
	return "jobsearch:" + hex.EncodeToString(sum[:])
}

func (s *JobSearcher) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
