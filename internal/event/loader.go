package event

import (
	"context"
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// document mirrors the on-disk YAML shape:
//
//	event:
//	  title: ...
//	  logo_path: ...
//	judges: [ ... ]
//	teams: [ ... ]
//	categories:
//	  - name: ...
//	    criteria:
//	      - name: ...
//	        description: ...
//	        max_score: 10
type document struct {
	Event struct {
		Title    string `koanf:"title"`
		LogoPath string `koanf:"logo_path"`
	} `koanf:"event"`
	Judges     []string        `koanf:"judges"`
	Teams      []string        `koanf:"teams"`
	Categories []PrizeCategory `koanf:"categories"`
}

// Load reads and validates the event configuration at path. There is no
// caching; the file is read fresh on every call. Any failure wraps
// ErrLoadEvent (missing or malformed document) or ErrInvalidEvent
// (schema violations), both startup-fatal for the service.
func Load(_ context.Context, path string) (*Event, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadEvent, path, err)
	}

	var doc document
	if err := k.UnmarshalWithConf("", &doc, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadEvent, path, err)
	}

	ev := &Event{
		Title:      doc.Event.Title,
		LogoPath:   doc.Event.LogoPath,
		Judges:     doc.Judges,
		Teams:      doc.Teams,
		Categories: doc.Categories,
	}
	if err := validate(ev); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEvent, err)
	}
	return ev, nil
}

// validate enforces the document schema: required lists are non-empty,
// names are non-blank and unique, and every criterion has a positive
// max score.
func validate(ev *Event) error {
	if strings.TrimSpace(ev.Title) == "" {
		return fmt.Errorf("event.title must not be empty")
	}
	if err := validateNames("judges", ev.Judges); err != nil {
		return err
	}
	if err := validateNames("teams", ev.Teams); err != nil {
		return err
	}
	if len(ev.Categories) == 0 {
		return fmt.Errorf("categories must not be empty")
	}

	seenCats := make(map[string]struct{}, len(ev.Categories))
	for _, cat := range ev.Categories {
		if strings.TrimSpace(cat.Name) == "" {
			return fmt.Errorf("categories: name must not be empty")
		}
		if _, dup := seenCats[cat.Name]; dup {
			return fmt.Errorf("categories: duplicate name %q", cat.Name)
		}
		seenCats[cat.Name] = struct{}{}

		if len(cat.Criteria) == 0 {
			return fmt.Errorf("category %q: criteria must not be empty", cat.Name)
		}
		seenCrits := make(map[string]struct{}, len(cat.Criteria))
		for _, crit := range cat.Criteria {
			if strings.TrimSpace(crit.Name) == "" {
				return fmt.Errorf("category %q: criterion name must not be empty", cat.Name)
			}
			if _, dup := seenCrits[crit.Name]; dup {
				return fmt.Errorf("category %q: duplicate criterion %q", cat.Name, crit.Name)
			}
			seenCrits[crit.Name] = struct{}{}

			if crit.MaxScore <= 0 {
				return fmt.Errorf("category %q: criterion %q: max_score must be positive", cat.Name, crit.Name)
			}
		}
	}
	return nil
}

func validateNames(field string, names []string) error {
	if len(names) == 0 {
		return fmt.Errorf("%s must not be empty", field)
	}
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%s: name must not be empty", field)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%s: duplicate name %q", field, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}
