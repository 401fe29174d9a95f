package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	m "personel_backend/internals/features/timesheets/model"
)

func TestSaveMonthStampsAndPersists(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	rec := startMarch(t, svc)
	user := uuid.New()

	reg := DefaultRegistry()
	name := "Eğitim (Oryantasyon)"
	_ = reg.Update(m.TemplateTraining, TemplatePatch{Name: &name})

	saved, err := svc.SaveMonth(ctx, rec.ID, reg, user)
	if err != nil {
		t.Fatalf("SaveMonth failed: %v", err)
	}
	if saved.Status != m.MonthSaved {
		t.Errorf("status = %s, want saved", saved.Status)
	}

	stored, _ := svc.GetMonth(ctx, rec.ID)
	if stored.Status != m.MonthSaved {
		t.Errorf("stored status = %s, want saved", stored.Status)
	}
	if stored.SavedBy == nil || *stored.SavedBy != user {
		t.Errorf("saved_by = %v, want %s", stored.SavedBy, user)
	}
	if stored.SavedAt == nil || !stored.SavedAt.Equal(svc.Now()) {
		t.Errorf("saved_at = %v, want %v", stored.SavedAt, svc.Now())
	}
	if stored.TemplatesSnapshot[m.TemplateTraining-1].Name != name {
		t.Error("save must capture live registry edits")
	}
	// days themselves are not rewritten by a rename
	if stored.Days["2025-03-01"].Name != "Eğitim" {
		t.Errorf("day 1 = %q, want the original snapshot", stored.Days["2025-03-01"].Name)
	}
}

func TestSaveMonthCanBeRepeated(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	rec := startMarch(t, svc)

	first := uuid.New()
	if _, err := svc.SaveMonth(ctx, rec.ID, nil, first); err != nil {
		t.Fatal(err)
	}
	svc.Now = func() time.Time { return time.Date(2025, 4, 2, 9, 0, 0, 0, time.UTC) }
	second := uuid.New()
	if _, err := svc.SaveMonth(ctx, rec.ID, nil, second); err != nil {
		t.Fatalf("re-save failed: %v", err)
	}

	stored, _ := svc.GetMonth(ctx, rec.ID)
	if *stored.SavedBy != second {
		t.Error("re-save must update saved_by")
	}
	if stored.SavedAt.Month() != time.April {
		t.Errorf("saved_at = %v, want the second stamp", stored.SavedAt)
	}
}

func TestSaveMonthNotFoundAndPersistence(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	if _, err := svc.SaveMonth(ctx, uuid.New(), nil, uuid.New()); !errors.Is(err, ErrMonthNotFound) {
		t.Errorf("error = %v, want ErrMonthNotFound", err)
	}

	rec := startMarch(t, svc)
	store.Err = errors.New("db down")
	if _, err := svc.SaveMonth(ctx, rec.ID, nil, uuid.New()); !errors.Is(err, ErrPersistence) {
		t.Errorf("error = %v, want ErrPersistence", err)
	}
}

func TestReopenPreparingIsNoop(t *testing.T) {
	svc, _ := newTestService()
	rec := startMarch(t, svc)
	got, err := svc.ReopenMonth(context.Background(), rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != m.MonthPreparing {
		t.Errorf("status = %s, want preparing", got.Status)
	}
}

func TestGetMonthByKeyAndList(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	region := uuid.New()
	for _, ym := range []string{"2025-01", "2025-03", "2025-02"} {
		if _, err := svc.StartMonth(ctx, region, ym, nil); err != nil {
			t.Fatal(err)
		}
	}

	rec, err := svc.GetMonthByKey(ctx, region, "2025-02")
	if err != nil || rec.YearMonth != "2025-02" {
		t.Fatalf("GetMonthByKey = %v, %v", rec, err)
	}
	if _, err := svc.GetMonthByKey(ctx, region, "2024-12"); !errors.Is(err, ErrMonthNotFound) {
		t.Errorf("error = %v, want ErrMonthNotFound", err)
	}

	list, err := svc.ListMonths(ctx, region)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 || list[0].YearMonth != "2025-03" || list[2].YearMonth != "2025-01" {
		t.Errorf("unexpected list order: %v", list)
	}
}

// Usage matches on the template's current name, not its id. A rename moves
// counts in the report without touching stored days. Kept on purpose.
func TestUsageCountsByNameNotID(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	rec := startMarch(t, svc)
	reg := DefaultRegistry()

	if _, err := svc.PaintDay(ctx, rec.ID, "2025-03-20", m.TemplateAdjustable, reg); err != nil {
		t.Fatal(err)
	}
	stored, _ := svc.GetMonth(ctx, rec.ID)

	before := Usage(stored.Days, reg)
	if got := before.Templates[m.TemplateAdjustable-1].Count; got != 1 {
		t.Fatalf("adjustable count before rename = %d, want 1", got)
	}

	renamed := "Esnek Mesai"
	_ = reg.Update(m.TemplateAdjustable, TemplatePatch{Name: &renamed})
	after := Usage(stored.Days, reg)

	if got := after.Templates[m.TemplateAdjustable-1].Count; got != 0 {
		t.Errorf("renamed template count = %d, want 0", got)
	}
	if got := after.ByName["Ayarlanabilir"]; got != 1 {
		t.Errorf("old name count = %d, want 1", got)
	}
	if after.TotalDays != 31 {
		t.Errorf("total days = %d, want 31", after.TotalDays)
	}
}

func TestMarch2025Scenario(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	region := uuid.New()
	reg := DefaultRegistry()

	rec, err := svc.StartMonth(ctx, region, "2025-03", reg)
	if err != nil {
		t.Fatal(err)
	}
	if len(rec.Days) != 31 {
		t.Fatalf("days = %d, want 31", len(rec.Days))
	}

	name := func(id int) string {
		tpl, _ := reg.Get(id)
		return tpl.Name
	}
	for d := 1; d <= 8; d++ {
		key := time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC).Format(m.DateLayout)
		if rec.Days[key].Name != name(3) {
			t.Errorf("%s = %q, want template 3", key, rec.Days[key].Name)
		}
	}
	checks := map[string]int{"2025-03-09": 6, "2025-03-15": 2, "2025-03-20": 1}
	for date, id := range checks {
		if rec.Days[date].Name != name(id) {
			t.Errorf("%s = %q, want template %d", date, rec.Days[date].Name, id)
		}
	}

	if _, err := svc.PaintDay(ctx, rec.ID, "2025-03-20", 4, reg); err != nil {
		t.Fatal(err)
	}
	newName := "Ayarlanabilir (yeni)"
	_ = reg.Update(4, TemplatePatch{Name: &newName})

	stored, _ := svc.GetMonth(ctx, rec.ID)
	if stored.Days["2025-03-20"].Name != "Ayarlanabilir" {
		t.Errorf("day 20 name = %q, want unchanged", stored.Days["2025-03-20"].Name)
	}
	rep := Usage(stored.Days, reg)
	if rep.Templates[3].Name != newName || rep.Templates[3].Count != 0 {
		t.Errorf("new name usage = %+v, want count 0", rep.Templates[3])
	}
	if rep.ByName["Ayarlanabilir"] != 1 {
		t.Errorf("old name usage = %d, want 1", rep.ByName["Ayarlanabilir"])
	}
}
