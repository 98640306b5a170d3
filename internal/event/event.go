// Package event loads and validates the event configuration document:
// the event identity plus the judges, teams and prize categories a
// judging session is allowed to reference.
//
// The document is read once at process start and is immutable for the
// lifetime of the session; changing it requires editing the file and
// restarting.
package event

// Criterion is a single named scoring dimension with a maximum point value.
type Criterion struct {
	Name        string  `koanf:"name" json:"name"`
	Description string  `koanf:"description" json:"description,omitempty"`
	MaxScore    float64 `koanf:"max_score" json:"max_score"`
}

// PrizeCategory is a named group of criteria that teams are judged
// against for a specific award.
type PrizeCategory struct {
	Name     string      `koanf:"name" json:"name"`
	Criteria []Criterion `koanf:"criteria" json:"criteria"`
}

// MaxTotal returns the maximum points a judge can award in this category.
func (c PrizeCategory) MaxTotal() float64 {
	var total float64
	for _, crit := range c.Criteria {
		total += crit.MaxScore
	}
	return total
}

// Criterion returns the named criterion, if configured.
func (c PrizeCategory) Criterion(name string) (Criterion, bool) {
	for _, crit := range c.Criteria {
		if crit.Name == name {
			return crit, true
		}
	}
	return Criterion{}, false
}

// Event is the immutable in-memory model of the configuration document.
type Event struct {
	Title      string          `json:"title"`
	LogoPath   string          `json:"logo_path,omitempty"`
	Judges     []string        `json:"judges"`
	Teams      []string        `json:"teams"`
	Categories []PrizeCategory `json:"categories"`
}

// HasJudge reports whether name is a configured judge.
func (e *Event) HasJudge(name string) bool {
	return contains(e.Judges, name)
}

// HasTeam reports whether name is a configured team.
func (e *Event) HasTeam(name string) bool {
	return contains(e.Teams, name)
}

// Category returns the named prize category, if configured.
func (e *Event) Category(name string) (PrizeCategory, bool) {
	for _, cat := range e.Categories {
		if cat.Name == name {
			return cat, true
		}
	}
	return PrizeCategory{}, false
}

// CategoryNames returns category names in configured order.
func (e *Event) CategoryNames() []string {
	names := make([]string, len(e.Categories))
	for i, cat := range e.Categories {
		names[i] = cat.Name
	}
	return names
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
