package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"personel_backend/internals/constants"
	"personel_backend/internals/features/documents/controller"
	"personel_backend/internals/features/documents/model"
	"personel_backend/internals/features/documents/repository"
	"personel_backend/internals/features/documents/route"
	helper "personel_backend/internals/helpers"
	helperAuth "personel_backend/internals/helpers/auth"
	helperOSS "personel_backend/internals/helpers/oss"
)

type memDocs struct {
	rows      map[uuid.UUID]*model.DocumentTemplateModel
	insertErr error
}

func (m *memDocs) List(_ context.Context, f repository.ListFilter) ([]model.DocumentTemplateModel, int64, error) {
	var out []model.DocumentTemplateModel
	for _, r := range m.rows {
		global := r.IsGlobal()
		switch {
		case f.RegionID == nil || f.Scope == repository.ScopeGlobal:
			if !global {
				continue
			}
		case f.Scope == repository.ScopeRegion:
			if global || *r.DocumentTemplateRegionID != *f.RegionID {
				continue
			}
		default:
			if !global && *r.DocumentTemplateRegionID != *f.RegionID {
				continue
			}
		}
		out = append(out, *r)
	}
	return out, int64(len(out)), nil
}

func (m *memDocs) FindByID(_ context.Context, id uuid.UUID) (*model.DocumentTemplateModel, error) {
	r, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (m *memDocs) Insert(_ context.Context, row *model.DocumentTemplateModel) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	row.DocumentTemplateID = uuid.New()
	cp := *row
	m.rows[row.DocumentTemplateID] = &cp
	return nil
}

func (m *memDocs) Update(_ context.Context, row *model.DocumentTemplateModel, updates map[string]any) error {
	stored := m.rows[row.DocumentTemplateID]
	if name, ok := updates["document_template_name"].(string); ok {
		stored.DocumentTemplateName = name
	}
	*row = *stored
	return nil
}

func (m *memDocs) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.rows, id)
	return nil
}

type docFixture struct {
	app   *fiber.App
	store *memDocs
	blobs *helperOSS.MemoryBlobStore
}

func newDocFixture() docFixture {
	store := &memDocs{rows: map[uuid.UUID]*model.DocumentTemplateModel{}}
	blobs := helperOSS.NewMemoryBlobStore()
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	api := app.Group("/api/a", func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocUserID, uuid.NewString())
		c.Locals(helperAuth.LocRole, c.Get("X-Role"))
		c.Locals(helperAuth.LocRegionID, c.Get("X-Region"))
		return c.Next()
	})
	route.RegisterDocumentRoutes(api, controller.NewDocumentTemplateController(store, blobs))
	return docFixture{app: app, store: store, blobs: blobs}
}

func (fx docFixture) do(t *testing.T, role string, region uuid.UUID, method, path, contentType string, body io.Reader) (int, json.RawMessage) {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("X-Role", role)
	req.Header.Set("X-Region", region.String())
	resp, err := fx.app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	raw, _ := io.ReadAll(resp.Body)
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	_ = json.Unmarshal(raw, &env)
	return resp.StatusCode, env.Data
}

func uploadForm(t *testing.T, name string) (string, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.WriteField("name", name)
	_ = w.WriteField("kind", "contract")
	fw, err := w.CreateFormFile("file", "sozlesme.pdf")
	if err != nil {
		t.Fatal(err)
	}
	_, _ = fw.Write([]byte("%PDF-1.4 template"))
	_ = w.Close()
	return w.FormDataContentType(), &buf
}

func TestGlobalUploadIsAdminOnly(t *testing.T) {
	fx := newDocFixture()
	region := uuid.New()

	ct, body := uploadForm(t, "Genel Sözleşme")
	if status, _ := fx.do(t, constants.RoleCoordinator, region, "POST", "/api/a/documents/global", ct, body); status != fiber.StatusForbidden {
		t.Fatalf("coordinator global upload: status = %d, want 403", status)
	}
	if len(fx.store.rows) != 0 || len(fx.blobs.Objects) != 0 {
		t.Fatal("rejected upload stored something")
	}

	ct, body = uploadForm(t, "Genel Sözleşme")
	status, data := fx.do(t, constants.RoleAdmin, uuid.Nil, "POST", "/api/a/documents/global", ct, body)
	if status != fiber.StatusCreated {
		t.Fatalf("admin global upload: status = %d", status)
	}
	var out struct {
		Scope   string `json:"scope"`
		FileURL string `json:"file_url"`
	}
	_ = json.Unmarshal(data, &out)
	key := strings.TrimPrefix(out.FileURL, "memory://")
	if out.Scope != "global" || !strings.HasPrefix(key, "documents/global/") || !fx.blobs.Has(key) {
		t.Errorf("global upload = %+v", out)
	}
}

func TestGlobalTemplateWritesNeedAdmin(t *testing.T) {
	fx := newDocFixture()
	region := uuid.New()
	id := uuid.New()
	fx.store.rows[id] = &model.DocumentTemplateModel{
		DocumentTemplateID:        id,
		DocumentTemplateName:      "Genel Sözleşme",
		DocumentTemplateKind:      model.KindContract,
		DocumentTemplateObjectKey: "documents/global/genel.pdf",
	}
	fx.blobs.Objects["documents/global/genel.pdf"] = []byte("%PDF")
	path := "/api/a/documents/" + id.String()

	if status, _ := fx.do(t, constants.RoleCoordinator, region, "GET", path, "", nil); status != fiber.StatusOK {
		t.Errorf("coordinator read of global template: status = %d, want 200", status)
	}
	if status, _ := fx.do(t, constants.RoleCoordinator, region, "PATCH", path, "application/json", strings.NewReader(`{"name":"Değişti"}`)); status != fiber.StatusForbidden {
		t.Errorf("coordinator patch: status = %d, want 403", status)
	}
	if status, _ := fx.do(t, constants.RoleCoordinator, region, "DELETE", path, "", nil); status != fiber.StatusForbidden {
		t.Errorf("coordinator delete: status = %d, want 403", status)
	}
	if fx.store.rows[id].DocumentTemplateName != "Genel Sözleşme" || !fx.blobs.Has("documents/global/genel.pdf") {
		t.Fatal("coordinator changed a global template")
	}

	if status, _ := fx.do(t, constants.RoleAdmin, uuid.Nil, "PATCH", path, "application/json", strings.NewReader(`{"name":"Değişti"}`)); status != fiber.StatusOK {
		t.Errorf("admin patch: status = %d", status)
	}
	if status, _ := fx.do(t, constants.RoleAdmin, uuid.Nil, "DELETE", path, "", nil); status != fiber.StatusOK {
		t.Errorf("admin delete: status = %d", status)
	}
	if _, ok := fx.store.rows[id]; ok || fx.blobs.Has("documents/global/genel.pdf") {
		t.Error("admin delete left the row or the object behind")
	}
}

func TestRegionalUploadRollsBackObjectOnInsertFailure(t *testing.T) {
	fx := newDocFixture()
	region := uuid.New()
	fx.store.insertErr = errors.New("connection reset")

	ct, body := uploadForm(t, "Bölge Formu")
	status, _ := fx.do(t, constants.RoleCoordinator, region, "POST", "/api/a/regions/"+region.String()+"/documents", ct, body)
	if status != fiber.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", status)
	}
	if len(fx.blobs.Objects) != 0 {
		t.Errorf("orphan objects left: %d", len(fx.blobs.Objects))
	}
}

func TestRegionalTemplatesStayInTheirRegion(t *testing.T) {
	fx := newDocFixture()
	own, other := uuid.New(), uuid.New()
	id := uuid.New()
	fx.store.rows[id] = &model.DocumentTemplateModel{
		DocumentTemplateID:       id,
		DocumentTemplateRegionID: &other,
		DocumentTemplateName:     "Diğer",
	}
	if status, _ := fx.do(t, constants.RoleCoordinator, own, "GET", "/api/a/documents/"+id.String(), "", nil); status != fiber.StatusForbidden {
		t.Errorf("foreign template: status = %d, want 403", status)
	}
	if status, _ := fx.do(t, constants.RoleCoordinator, own, "GET", "/api/a/regions/"+other.String()+"/documents", "", nil); status != fiber.StatusForbidden {
		t.Errorf("foreign region list: status = %d, want 403", status)
	}
}
