package repository_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"

	m "personel_backend/internals/features/timesheets/model"
	"personel_backend/internals/features/timesheets/repository"
	"personel_backend/internals/features/timesheets/service"
)

// blobStore answers FetchLatestTemplatesSnapshot from a raw column value,
// decoded the same way GormStore decodes it.
type blobStore struct {
	*repository.MemoryStore
	blob []byte
}

func (s *blobStore) FetchLatestTemplatesSnapshot(context.Context, uuid.UUID) ([]m.Template, error) {
	return m.DecodeTemplates(s.blob), nil
}

func renamed(n int) []byte {
	tpls := m.DefaultTemplates()[:n]
	for i := range tpls {
		tpls[i].Name = "Eski"
	}
	raw, _ := json.Marshal(tpls)
	return raw
}

func TestDecodeTemplates(t *testing.T) {
	tests := []struct {
		name string
		blob []byte
		want int
	}{
		{"six templates", renamed(6), 6},
		{"five templates", renamed(5), 5},
		{"not json", []byte(`{oops`), 0},
		{"json null", []byte(`null`), 0},
		{"empty", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.DecodeTemplates(tt.blob)
			if got == nil {
				t.Fatal("DecodeTemplates must never return nil")
			}
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestStoredBlobFallsBackToDefaults(t *testing.T) {
	tests := []struct {
		name     string
		blob     []byte
		wantName string
	}{
		{"five templates", renamed(5), "Tam Gün"},
		{"not json", []byte(`{oops`), "Tam Gün"},
		{"six templates", renamed(6), "Eski"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := service.New(&blobStore{MemoryStore: repository.NewMemoryStore(), blob: tt.blob})
			reg, err := svc.LoadLatestTemplates(context.Background(), uuid.New())
			if err != nil {
				t.Fatalf("LoadLatestTemplates failed: %v", err)
			}
			tpls := reg.Templates()
			if len(tpls) != m.TemplateCount {
				t.Fatalf("len = %d, want %d", len(tpls), m.TemplateCount)
			}
			if tpls[0].Name != tt.wantName {
				t.Errorf("template 1 = %q, want %q", tpls[0].Name, tt.wantName)
			}
		})
	}
}

func TestToRecordKeepsCorruptSnapshotEmpty(t *testing.T) {
	row := m.TimesheetMonthModel{
		TimesheetMonthID:        uuid.New(),
		TimesheetMonthTemplates: []byte(`"not a list"`),
	}
	rec, err := row.ToRecord()
	if err != nil {
		t.Fatalf("ToRecord failed: %v", err)
	}
	if len(rec.TemplatesSnapshot) != 0 {
		t.Errorf("snapshot = %v, want empty", rec.TemplatesSnapshot)
	}
	if _, err := service.NewRegistry(rec.TemplatesSnapshot); err == nil {
		t.Error("empty snapshot must not build a registry")
	}
}
