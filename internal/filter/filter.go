// Package filter implements the board's job matching: strict AND filtering
// across the individual criteria plus a scored trending fallback used when
// the strict pass comes back empty.
package filter

import (
	"sort"
	"strings"

	"github.com/oasis/talentboard/internal/domain"
)

const fallbackLimit = 6

// Filter returns every job satisfying all non-empty criteria, preserving
// catalog order. The input slice is never mutated.
func Filter(jobs []domain.Job, criteria domain.FilterCriteria) []domain.Job {
	matched := make([]domain.Job, 0, len(jobs))
	for _, job := range jobs {
		if matchesQuery(job, criteria.Query) &&
			matchesSpot(job, criteria.Spot) &&
			matchesTimeline(job, criteria.Timeline) &&
			matchesAnnounced(job, criteria.Announced) &&
			matchesTenure(job, criteria.Tenure) &&
			matchesDomain(job, criteria.Domain) &&
			matchesRole(job, criteria.Role) &&
			matchesNiche(job, criteria.Niche) {
			matched = append(matched, job)
		}
	}
	return matched
}

// TrendingFallback scores the whole catalog and returns the top entries.
// The free-text query deliberately plays no part here: the fallback is a
// curated set, not a second filtering pass.
func TrendingFallback(jobs []domain.Job, criteria domain.FilterCriteria) []domain.Job {
	spot := normalize(criteria.Spot)
	domainQuery := normalize(criteria.Domain)
	role := normalize(criteria.Role)

	type scoredJob struct {
		job   domain.Job
		score int
	}

	scored := make([]scoredJob, 0, len(jobs))
	for _, job := range jobs {
		score := 0
		if spot != "" && regionContains(job.TrendingRegions, spot) {
			score += 3
		}
		if domainQuery != "" && strings.ToLower(job.Domain) == domainQuery {
			score += 2
		}
		if role != "" && strings.Contains(strings.ToLower(job.Role), role) {
			score += 2
		}
		if spot == "" && domainQuery == "" && role == "" {
			score++
		}
		if strings.Contains(strings.ToLower(job.PostedAgo), "last") {
			score++
		}
		scored = append(scored, scoredJob{job: job, score: score})
	}

	// Ties keep catalog order, hence the stable sort.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	limit := fallbackLimit
	if len(scored) < limit {
		limit = len(scored)
	}
	result := make([]domain.Job, 0, limit)
	for _, entry := range scored[:limit] {
		result = append(result, entry.job)
	}
	return result
}

// Rank is the board's result set: the strict filter when it matches anything,
// the trending fallback otherwise.
func Rank(jobs []domain.Job, criteria domain.FilterCriteria) ([]domain.Job, bool) {
	matched := Filter(jobs, criteria)
	if len(matched) > 0 {
		return matched, false
	}
	return TrendingFallback(jobs, criteria), true
}

func matchesQuery(job domain.Job, query string) bool {
	normalized := normalize(query)
	if normalized == "" {
		return true
	}
	fields := append([]string{job.Title, job.Company, job.Location, job.Snapshot}, job.Keywords...)
	haystack := strings.ToLower(strings.Join(fields, " "))
	for _, bit := range strings.Fields(normalized) {
		if !strings.Contains(haystack, bit) {
			return false
		}
	}
	return true
}

func matchesSpot(job domain.Job, spot string) bool {
	normalized := normalize(spot)
	if normalized == "" {
		return true
	}
	if strings.Contains(strings.ToLower(job.Location), normalized) {
		return true
	}
	return regionContains(job.TrendingRegions, normalized)
}

func matchesTimeline(job domain.Job, timeline string) bool {
	if timeline == "" {
		return true
	}
	return strings.Contains(strings.ToLower(job.Timeline), strings.ToLower(timeline))
}

// Recency is categorical: an exact label comparison, not a date range.
func matchesAnnounced(job domain.Job, announced string) bool {
	if announced == "" {
		return true
	}
	return strings.EqualFold(job.PostedAgo, announced)
}

func matchesTenure(job domain.Job, tenure int) bool {
	if tenure <= 0 {
		return true
	}
	return job.Tenure >= tenure
}

func matchesDomain(job domain.Job, domainQuery string) bool {
	if domainQuery == "" {
		return true
	}
	return strings.EqualFold(job.Domain, domainQuery)
}

func matchesRole(job domain.Job, role string) bool {
	if role == "" {
		return true
	}
	return strings.Contains(strings.ToLower(job.Role), strings.ToLower(role))
}

func matchesNiche(job domain.Job, niche string) bool {
	normalized := normalize(niche)
	if normalized == "" {
		return true
	}
	for _, tag := range job.Niche {
		if strings.Contains(strings.ToLower(tag), normalized) {
			return true
		}
	}
	return false
}

func regionContains(regions []string, spot string) bool {
	for _, region := range regions {
		if strings.Contains(region, spot) {
			return true
		}
	}
	return false
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
