package domain

// Prompt is the question a candidate answers when applying to a job.
type Prompt struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Job is a single posting as shown on the board. Instances are treated as
// immutable during a filtering pass; the catalog replaces them wholesale when
// a fresher set arrives.
type Job struct {
	ID              string   `json:"id"`
	Slug            string   `json:"slug"`
	Title           string   `json:"title"`
	Company         string   `json:"company"`
	Location        string   `json:"location"`
	Timeline        string   `json:"timeline"`
	Domain          string   `json:"domain"`
	Role            string   `json:"role"`
	Niche           []string `json:"niche"`
	Snapshot        string   `json:"snapshot"`
	Tags            []string `json:"tags"`
	IconKey         string   `json:"icon_key"`
	Prompt          Prompt   `json:"prompt"`
	PostedAgo       string   `json:"posted_ago"`
	Tenure          int      `json:"tenure"`
	TrendingRegions []string `json:"trending_regions"`
	Keywords        []string `json:"keywords"`
}

// JobSummary is the slice of a job joined onto tracker and reviewer reads.
type JobSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
}

// FilterCriteria carries the board filters. Every field is optional; an empty
// field means "no constraint". Criteria never mutate the underlying catalog.
type FilterCriteria struct {
	Query     string `json:"query"`
	Spot      string `json:"spot"`
	Timeline  string `json:"timeline"`
	Announced string `json:"announced"`
	Tenure    int    `json:"tenure"`
	Domain    string `json:"domain"`
	Role      string `json:"role"`
	Niche     string `json:"niche"`
}

// IsZero reports whether no constraint is set at all.
func (c FilterCriteria) IsZero() bool {
	return c == FilterCriteria{}
}
