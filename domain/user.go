package domain

// UserProfile holds the five onboarding answers, kept as free text in the
// order they are asked.
type UserProfile struct {
	Age         string
	Occupation  string
	Income      string
	Interests   string
	HasBusiness string
}

// Answers returns the profile answers in declaration order.
func (p UserProfile) Answers() []string {
	return []string{p.Age, p.Occupation, p.Income, p.Interests, p.HasBusiness}
}

// UserRecord is the per-user persisted state. Credit keeps only the most
// recently completed plan.
type UserRecord struct {
	Profile *UserProfile `json:",omitempty"`
	Credit  *CreditPlan  `json:",omitempty"`
}
