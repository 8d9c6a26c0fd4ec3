package catalog

import "github.com/oasis/talentboard/internal/domain"

// SeedJobs returns the static catalog used when no remote store is reachable
// and to seed empty stores. Callers get a fresh slice each time.
func SeedJobs() []domain.Job {
	return []domain.Job{
		{
			ID:       "job-software-remote",
			Slug:     "job-software-remote",
			Title:    "Software Engineer",
			Company:  "Nova Labs",
			Location: "Remote · North America",
			Timeline: "Full-time · Remote",
			Domain:   "Technology",
			Role:     "Software Engineer",
			Niche:    []string{"TypeScript", "Product delivery"},
			Snapshot: "Ship user-facing features weekly. Pair with product, write clean TypeScript, and unblock teammates quickly.",
			Tags:     []string{"TypeScript", "Product team", "3+ yrs experience"},
			IconKey:  "technology",
			Prompt: domain.Prompt{
				Title: "Delight a user after a failed deploy",
				Body:  "A customer reports a critical bug right after your deploy. How do you calm them and fix the issue quickly?",
			},
			PostedAgo:       "Last 3 days",
			Tenure:          3,
			TrendingRegions: []string{"remote", "north america", "canada", "toronto"},
			Keywords:        []string{"software", "engineer", "remote", "typescript", "full-stack", "nova labs"},
		},
		{
			ID:       "job-cafe-manager",
			Slug:     "job-cafe-manager",
			Title:    "Cafe Manager",
			Company:  "Oasis Hospitality",
			Location: "New York, USA",
			Timeline: "Full-time · Onsite",
			Domain:   "Operations",
			Role:     "Cafe Manager",
			Niche:    []string{"Hospitality", "Team leadership"},
			Snapshot: "Run daily cafe operations, mentor baristas, and keep guests delighted. Manage scheduling, inventory, and experience.",
			Tags:     []string{"Hospitality", "Team lead", "Weekends"},
			IconKey:  "operations",
			Prompt: domain.Prompt{
				Title: "Diffuse a service delay",
				Body:  "A guest waited 15 minutes for their order on a busy morning. What is the first thing you say to make it right?",
			},
			PostedAgo:       "Last 2 weeks",
			Tenure:          2,
			TrendingRegions: []string{"new york", "usa", "north america"},
			Keywords:        []string{"cafe", "manager", "hospitality", "operations"},
		},
		{
			ID:       "job-customer-success",
			Slug:     "job-customer-success",
			Title:    "Customer Success Lead",
			Company:  "Atlas AI",
			Location: "Toronto, Canada",
			Timeline: "Hybrid · Full-time",
			Domain:   "Sales",
			Role:     "Customer Success",
			Niche:    []string{"B2B SaaS", "Retention"},
			Snapshot: "Own onboarding for mid-market customers, create playbooks, and collaborate with product on feature feedback.",
			Tags:     []string{"B2B SaaS", "Retention", "Hybrid"},
			IconKey:  "business",
			Prompt: domain.Prompt{
				Title: "Calm a delayed order",
				Body:  "A customer is upset about a delayed deployment. What's the first thing you'd say to calm them down?",
			},
			PostedAgo:       "Last 24 hours",
			Tenure:          4,
			TrendingRegions: []string{"toronto", "canada", "north america"},
			Keywords:        []string{"customer success", "account manager", "b2b", "saas", "hybrid"},
		},
		{
			ID:       "job-legal-counsel",
			Slug:     "job-legal-counsel",
			Title:    "Legal Counsel",
			Company:  "Lumina Biotech",
			Location: "Boston, USA",
			Timeline: "Hybrid · Full-time",
			Domain:   "Legal",
			Role:     "In-house Counsel",
			Niche:    []string{"US Law", "Biotech"},
			Snapshot: "Partner with R&D to review contracts, guide regulatory filings, and keep compliance tight as the team scales.",
			Tags:     []string{"US Law", "Biotech", "5+ yrs"},
			IconKey:  "legal",
			Prompt: domain.Prompt{
				Title: "Navigate conflicting priorities",
				Body:  "R&D wants to rush a trial, but legal risk is high. How do you advise the exec team in 30 seconds?",
			},
			PostedAgo:       "Last 3 months",
			Tenure:          5,
			TrendingRegions: []string{"boston", "usa", "north america"},
			Keywords:        []string{"legal", "counsel", "compliance", "biotech"},
		},
		{
			ID:       "job-driver",
			Slug:     "job-driver",
			Title:    "Fleet Driver",
			Company:  "Swift Logistics",
			Location: "London, UK",
			Timeline: "Full-time · Hybrid",
			Domain:   "Operations",
			Role:     "Driver",
			Niche:    []string{"Logistics", "Customer focus"},
			Snapshot: "Deliver parcels across Greater London with a company van. Keep routes efficient and customers informed.",
			Tags:     []string{"UK license", "Customer-first", "Flexible shifts"},
			IconKey:  "driver",
			Prompt: domain.Prompt{
				Title: "Handle a missed delivery window",
				Body:  "You're running late to a delivery. What do you tell the customer to keep trust high?",
			},
			PostedAgo:       "Last 3 days",
			Tenure:          1,
			TrendingRegions: []string{"london", "uk", "europe"},
			Keywords:        []string{"driver", "logistics", "delivery", "swift"},
		},
		{
			ID:       "job-butcher",
			Slug:     "job-butcher",
			Title:    "Lead Butcher",
			Company:  "Harvest Collective",
			Location: "Austin, USA",
			Timeline: "Part-time · Onsite",
			Domain:   "Operations",
			Role:     "Butcher",
			Niche:    []string{"Farm-to-table", "Butchery"},
			Snapshot: "Source and prepare premium cuts, guide new apprentices, and maintain strict quality + safety standards.",
			Tags:     []string{"Farm-to-table", "USDA", "Hands-on"},
			IconKey:  "culinary",
			Prompt: domain.Prompt{
				Title: "Guarantee product quality",
				Body:  "A regular notices their usual cut looks different. Walk them through how you address it.",
			},
			PostedAgo:       "Last 2 weeks",
			Tenure:          6,
			TrendingRegions: []string{"austin", "texas", "usa", "north america"},
			Keywords:        []string{"butcher", "culinary", "harvest collective"},
		},
	}
}
