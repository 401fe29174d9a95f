package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	m "personel_backend/internals/features/timesheets/model"
)

func TestDefaultRegistryHasSixTemplates(t *testing.T) {
	tpls := DefaultRegistry().Templates()
	if len(tpls) != m.TemplateCount {
		t.Fatalf("len = %d, want 6", len(tpls))
	}
	for i, tpl := range tpls {
		if tpl.ID != i+1 {
			t.Errorf("templates[%d].ID = %d, want %d", i, tpl.ID, i+1)
		}
	}
	rest := tpls[m.TemplateWeeklyRest-1]
	if rest.StartTime != nil || rest.EndTime != nil {
		t.Error("weekly rest template must not carry clock times")
	}
}

func TestNewRegistryRejectsBadShapes(t *testing.T) {
	five := m.DefaultTemplates()[:5]
	dupe := m.DefaultTemplates()
	dupe[5].ID = 1
	outOfRange := m.DefaultTemplates()
	outOfRange[0].ID = 7

	for name, tpls := range map[string][]m.Template{
		"five":         five,
		"duplicate id": dupe,
		"id 7":         outOfRange,
		"empty":        {},
	} {
		if _, err := NewRegistry(tpls); !errors.Is(err, ErrCorruptTemplatesSnapshot) {
			t.Errorf("%s: error = %v, want ErrCorruptTemplatesSnapshot", name, err)
		}
	}
}

func TestNewRegistryOrdersByID(t *testing.T) {
	tpls := m.DefaultTemplates()
	tpls[0], tpls[5] = tpls[5], tpls[0]
	reg, err := NewRegistry(tpls)
	if err != nil {
		t.Fatal(err)
	}
	got, _ := reg.Get(1)
	if got.Name != "Tam Gün" {
		t.Errorf("Get(1).Name = %q, want Tam Gün", got.Name)
	}
}

func TestRegistryUpdateKeepsIdentity(t *testing.T) {
	reg := DefaultRegistry()
	name, color, start, brk := "Esnek", "#000000", "", 15
	if err := reg.Update(4, TemplatePatch{Name: &name, Color: &color, StartTime: &start, BreakMinutes: &brk}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	got, _ := reg.Get(4)
	if got.ID != 4 || got.Name != "Esnek" || got.Color != "#000000" || got.BreakMinutes != 15 {
		t.Errorf("unexpected template after update: %+v", got)
	}
	if got.StartTime != nil {
		t.Error("empty start time should clear the clock")
	}
	if got.EndTime == nil || *got.EndTime != "18:00" {
		t.Error("end time must be untouched")
	}
	if len(reg.Templates()) != m.TemplateCount {
		t.Error("update must not change template count")
	}
}

func TestRegistryUnknownTemplate(t *testing.T) {
	reg := DefaultRegistry()
	name := "x"
	for _, id := range []int{0, 7, -1} {
		if err := reg.Update(id, TemplatePatch{Name: &name}); !errors.Is(err, ErrUnknownTemplate) {
			t.Errorf("Update(%d) error = %v, want ErrUnknownTemplate", id, err)
		}
		if _, err := reg.Get(id); !errors.Is(err, ErrUnknownTemplate) {
			t.Errorf("Get(%d) error = %v, want ErrUnknownTemplate", id, err)
		}
	}
}

func TestRegistryUpdateRejectsNegativeBreak(t *testing.T) {
	reg := DefaultRegistry()
	before, _ := reg.Get(1)
	brk := -5
	if err := reg.Update(1, TemplatePatch{BreakMinutes: &brk}); !errors.Is(err, ErrInvalidTemplate) {
		t.Fatalf("Update error = %v, want ErrInvalidTemplate", err)
	}
	if after, _ := reg.Get(1); after.BreakMinutes != before.BreakMinutes {
		t.Errorf("break changed to %d after rejected update", after.BreakMinutes)
	}
}

func TestRegistryTemplatesReturnsCopies(t *testing.T) {
	reg := DefaultRegistry()
	tpls := reg.Templates()
	*tpls[0].StartTime = "23:59"
	tpls[0].Name = "changed"

	got, _ := reg.Get(1)
	if got.Name == "changed" || *got.StartTime == "23:59" {
		t.Error("Templates() must not expose registry internals")
	}
}

func TestLoadLatestTemplatesWithoutHistoryReturnsDefaults(t *testing.T) {
	svc, _ := newTestService()
	reg, err := svc.LoadLatestTemplates(context.Background(), uuid.New())
	if err != nil {
		t.Fatal(err)
	}
	assertDefaults(t, reg)
}

func TestLoadLatestTemplatesCorruptSnapshotFallsBack(t *testing.T) {
	svc, store := newTestService()
	region := uuid.New()
	store.PutRaw(&m.MonthRecord{
		RegionID:          region,
		YearMonth:         "2025-02",
		Status:            m.MonthSaved,
		TemplatesSnapshot: m.DefaultTemplates()[:5],
		Days:              map[string]m.DaySnapshot{},
	})

	reg, err := svc.LoadLatestTemplates(context.Background(), region)
	if err != nil {
		t.Fatalf("corrupt snapshot must not surface an error, got %v", err)
	}
	if n := len(reg.Templates()); n != m.TemplateCount {
		t.Fatalf("len = %d, want 6", n)
	}
	assertDefaults(t, reg)
}

func TestLoadLatestTemplatesPicksMostRecentMonth(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	region := uuid.New()

	older := DefaultRegistry()
	oldName := "Eski"
	_ = older.Update(1, TemplatePatch{Name: &oldName})
	if _, err := svc.StartMonth(ctx, region, "2025-02", older); err != nil {
		t.Fatal(err)
	}

	newer := DefaultRegistry()
	newName := "Yeni"
	_ = newer.Update(1, TemplatePatch{Name: &newName})
	if _, err := svc.StartMonth(ctx, region, "2025-01", newer); err != nil {
		t.Fatal(err)
	}

	// most recently created wins, not the latest calendar month
	reg, err := svc.LoadLatestTemplates(ctx, region)
	if err != nil {
		t.Fatal(err)
	}
	got, _ := reg.Get(1)
	if got.Name != newName {
		t.Errorf("template 1 = %q, want %q", got.Name, newName)
	}
}

func assertDefaults(t *testing.T, reg *Registry) {
	t.Helper()
	want := m.DefaultTemplates()
	for i, got := range reg.Templates() {
		if got.ID != want[i].ID || got.Name != want[i].Name || got.Color != want[i].Color {
			t.Errorf("template %d = %+v, want %+v", i+1, got, want[i])
		}
	}
}
