// file: internals/features/timesheets/service/registry.go
package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	m "personel_backend/internals/features/timesheets/model"
)

/* =========================
   Template Registry
   ========================= */

// Registry holds the 6 editable templates of a region. It has no durable
// identity of its own: it is persisted only as a month's templates snapshot.
type Registry struct {
	templates [m.TemplateCount]m.Template
}

// TemplatePatch edits a template in place. Nil fields are left as is;
// an empty StartTime/EndTime clears the clock.
type TemplatePatch struct {
	Name         *string
	Color        *string
	StartTime    *string
	EndTime      *string
	BreakMinutes *int
}

func DefaultRegistry() *Registry {
	r, _ := NewRegistry(m.DefaultTemplates())
	return r
}

// NewRegistry requires exactly 6 templates carrying ids 1..6 (any order).
func NewRegistry(tpls []m.Template) (*Registry, error) {
	if len(tpls) != m.TemplateCount {
		return nil, fmt.Errorf("%w: got %d templates, want %d", ErrCorruptTemplatesSnapshot, len(tpls), m.TemplateCount)
	}
	r := &Registry{}
	var seen [m.TemplateCount]bool
	for _, t := range tpls {
		if t.ID < 1 || t.ID > m.TemplateCount || seen[t.ID-1] {
			return nil, fmt.Errorf("%w: bad template id %d", ErrCorruptTemplatesSnapshot, t.ID)
		}
		if t.BreakMinutes < 0 {
			return nil, fmt.Errorf("%w: negative break on template %d", ErrCorruptTemplatesSnapshot, t.ID)
		}
		seen[t.ID-1] = true
		r.templates[t.ID-1] = t.Clone()
	}
	return r, nil
}

func (r *Registry) Get(id int) (m.Template, error) {
	if id < 1 || id > m.TemplateCount {
		return m.Template{}, fmt.Errorf("%w: %d", ErrUnknownTemplate, id)
	}
	return r.templates[id-1].Clone(), nil
}

// Templates returns a copy ordered by id.
func (r *Registry) Templates() []m.Template {
	out := make([]m.Template, m.TemplateCount)
	for i, t := range r.templates {
		out[i] = t.Clone()
	}
	return out
}

// Update mutates only the in-memory registry. Days painted earlier keep
// their own snapshot.
func (r *Registry) Update(id int, p TemplatePatch) error {
	if id < 1 || id > m.TemplateCount {
		return fmt.Errorf("%w: %d", ErrUnknownTemplate, id)
	}
	if p.BreakMinutes != nil && *p.BreakMinutes < 0 {
		return fmt.Errorf("%w: break_minutes must be >= 0", ErrInvalidTemplate)
	}
	t := &r.templates[id-1]
	if p.Name != nil {
		t.Name = strings.TrimSpace(*p.Name)
	}
	if p.Color != nil {
		t.Color = strings.TrimSpace(*p.Color)
	}
	if p.StartTime != nil {
		t.StartTime = blankToNil(*p.StartTime)
	}
	if p.EndTime != nil {
		t.EndTime = blankToNil(*p.EndTime)
	}
	if p.BreakMinutes != nil {
		t.BreakMinutes = *p.BreakMinutes
	}
	return nil
}

func blankToNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// LoadLatestTemplates returns the templates snapshot of the region's most
// recently created month, or the built-in defaults when there is none or it
// is corrupt. Corruption is logged, never returned.
func (s *TimesheetService) LoadLatestTemplates(ctx context.Context, regionID uuid.UUID) (*Registry, error) {
	tpls, err := s.Store.FetchLatestTemplatesSnapshot(ctx, regionID)
	if err != nil {
		return nil, persistErr("fetch latest templates", err)
	}
	if tpls == nil {
		return DefaultRegistry(), nil
	}
	reg, err := NewRegistry(tpls)
	if err != nil {
		log.Printf("[WARN] region=%s: %v; using default templates", regionID, err)
		return DefaultRegistry(), nil
	}
	return reg, nil
}
