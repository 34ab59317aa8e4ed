package entities

// Seed is a starting prompt drawn from a knowledge domain
type Seed struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Domain string `json:"domain"`
}

// SampleSeeds returns the fixed seed set used when no generator is wired
func SampleSeeds() []Seed {
	return []Seed{
		{ID: "s1", Text: "Kepler's 3rd law", Domain: "astronomy"},
		{ID: "s2", Text: "West African kente patterns", Domain: "textiles"},
		{ID: "s3", Text: "Amnesty", Domain: "civics"},
	}
}

// Cathedral is the closing concord statement built from the strongest path
type Cathedral struct {
	ID         string   `json:"id"`
	Content    string   `json:"content"`
	References []string `json:"references"`
}
