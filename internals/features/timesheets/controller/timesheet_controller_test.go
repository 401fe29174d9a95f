package controller_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"personel_backend/internals/constants"
	"personel_backend/internals/features/timesheets/controller"
	"personel_backend/internals/features/timesheets/repository"
	"personel_backend/internals/features/timesheets/route"
	"personel_backend/internals/features/timesheets/service"
	helper "personel_backend/internals/helpers"
	helperAuth "personel_backend/internals/helpers/auth"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type caller struct {
	userID uuid.UUID
	role   string
	region uuid.UUID
}

// newTestApp mounts the timesheet routes over a memory store. The caller
// identity is injected through headers so one app serves several users.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	svc := service.New(repository.NewMemoryStore())
	svc.Now = func() time.Time { return time.Date(2025, 3, 31, 18, 0, 0, 0, time.UTC) }
	ctrl := controller.NewTimesheetController(svc, nil)

	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	admin := app.Group("/api/a", func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocUserID, c.Get("X-User"))
		c.Locals(helperAuth.LocRole, c.Get("X-Role"))
		c.Locals(helperAuth.LocRegionID, c.Get("X-Region"))
		return c.Next()
	})
	route.RegisterTimesheetRoutes(admin, ctrl)
	return app
}

func call(t *testing.T, app *fiber.App, who caller, method, path, body string) (int, envelope, []byte) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-User", who.userID.String())
	req.Header.Set("X-Role", who.role)
	req.Header.Set("X-Region", who.region.String())

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	raw, _ := io.ReadAll(resp.Body)
	var env envelope
	_ = json.Unmarshal(raw, &env)
	return resp.StatusCode, env, raw
}

func TestMonthFlowOverHTTP(t *testing.T) {
	app := newTestApp(t)
	region := uuid.New()
	coord := caller{userID: uuid.New(), role: constants.RoleCoordinator, region: region}
	base := "/api/a/regions/" + region.String() + "/timesheets"

	status, env, _ := call(t, app, coord, "POST", base+"/months", `{"year_month":"2025-03"}`)
	if status != fiber.StatusCreated {
		t.Fatalf("start: status = %d", status)
	}
	var month struct {
		ID     uuid.UUID `json:"id"`
		Status string    `json:"status"`
		Days   []struct {
			Date    string `json:"date"`
			Weekday string `json:"weekday"`
			Name    string `json:"name"`
		} `json:"days"`
	}
	if err := json.Unmarshal(env.Data, &month); err != nil {
		t.Fatal(err)
	}
	if len(month.Days) != 31 || month.Status != "preparing" {
		t.Fatalf("unexpected month: %d days, status %q", len(month.Days), month.Status)
	}
	if month.Days[0].Date != "2025-03-01" || month.Days[0].Name != "Eğitim" {
		t.Errorf("first day = %+v", month.Days[0])
	}

	if status, _, _ := call(t, app, coord, "POST", base+"/months", `{"year_month":"2025-03"}`); status != fiber.StatusConflict {
		t.Errorf("second start: status = %d, want 409", status)
	}

	monthURL := "/api/a/timesheets/months/" + month.ID.String()
	status, env, _ = call(t, app, coord, "PUT", monthURL+"/days/2025-03-20", `{"template_id":5}`)
	if status != fiber.StatusOK {
		t.Fatalf("paint: status = %d", status)
	}
	var day struct {
		Name    string `json:"name"`
		Weekday string `json:"weekday"`
	}
	_ = json.Unmarshal(env.Data, &day)
	if day.Name != "İzin" || day.Weekday != "Perşembe" {
		t.Errorf("painted day = %+v", day)
	}

	status, env, _ = call(t, app, coord, "POST", monthURL+"/usage", "")
	if status != fiber.StatusOK {
		t.Fatalf("usage: status = %d", status)
	}
	var usage service.UsageReport
	_ = json.Unmarshal(env.Data, &usage)
	if usage.ByName["İzin"] != 1 || usage.TotalDays != 31 {
		t.Errorf("usage = %+v", usage)
	}

	if status, _, _ := call(t, app, coord, "POST", monthURL+"/save", ""); status != fiber.StatusOK {
		t.Fatalf("save: status = %d", status)
	}
	if status, _, _ := call(t, app, coord, "PUT", monthURL+"/days/2025-03-21", `{"template_id":1}`); status != fiber.StatusConflict {
		t.Errorf("paint after save: status = %d, want 409", status)
	}
	if status, _, _ := call(t, app, coord, "POST", monthURL+"/reopen", ""); status != fiber.StatusForbidden {
		t.Errorf("coordinator reopen: status = %d, want 403", status)
	}

	admin := caller{userID: uuid.New(), role: constants.RoleAdmin}
	if status, _, _ := call(t, app, admin, "POST", monthURL+"/reopen", ""); status != fiber.StatusOK {
		t.Errorf("admin reopen: status = %d", status)
	}
	if status, _, _ := call(t, app, coord, "PUT", monthURL+"/days/2025-03-21", `{"template_id":1}`); status != fiber.StatusOK {
		t.Errorf("paint after reopen: status = %d", status)
	}

	status, env, _ = call(t, app, coord, "GET", base+"/months", "")
	if status != fiber.StatusOK {
		t.Fatalf("list: status = %d", status)
	}
	var list []struct {
		YearMonth string `json:"year_month"`
	}
	_ = json.Unmarshal(env.Data, &list)
	if len(list) != 1 || list[0].YearMonth != "2025-03" {
		t.Errorf("list = %+v", list)
	}
}

func TestPaintErrorsOverHTTP(t *testing.T) {
	app := newTestApp(t)
	region := uuid.New()
	coord := caller{userID: uuid.New(), role: constants.RoleCoordinator, region: region}

	_, env, _ := call(t, app, coord, "POST", "/api/a/regions/"+region.String()+"/timesheets/months", `{"year_month":"2025-03"}`)
	var month struct {
		ID uuid.UUID `json:"id"`
	}
	_ = json.Unmarshal(env.Data, &month)
	monthURL := "/api/a/timesheets/months/" + month.ID.String()

	tests := []struct {
		name, method, path, body string
		want                     int
	}{
		{"unknown template", "PUT", monthURL + "/days/2025-03-20", `{"template_id":9}`, fiber.StatusBadRequest},
		{"date outside month", "PUT", monthURL + "/days/2025-04-01", `{"template_id":1}`, fiber.StatusBadRequest},
		{"bulk with bad date", "PUT", monthURL + "/days", `{"dates":["2025-03-01","03/02/2025"],"template_id":1}`, fiber.StatusUnprocessableEntity},
		{"bulk empty", "PUT", monthURL + "/days", `{"dates":[],"template_id":1}`, fiber.StatusUnprocessableEntity},
		{"bad month id", "GET", "/api/a/timesheets/months/nope", "", fiber.StatusBadRequest},
		{"missing month", "GET", "/api/a/timesheets/months/" + uuid.NewString(), "", fiber.StatusNotFound},
		{"bad year_month", "POST", "/api/a/regions/" + region.String() + "/timesheets/months", `{"year_month":"2025-13"}`, fiber.StatusUnprocessableEntity},
		{"short registry", "POST", "/api/a/regions/" + region.String() + "/timesheets/months", `{"year_month":"2025-05","templates":[{"id":1,"name":"x","color":"#fff"}]}`, fiber.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if status, _, raw := call(t, app, coord, tt.method, tt.path, tt.body); status != tt.want {
				t.Errorf("status = %d, want %d (%s)", status, tt.want, raw)
			}
		})
	}
}

func TestRegionScopeOverHTTP(t *testing.T) {
	app := newTestApp(t)
	own := uuid.New()
	other := uuid.New()
	owner := caller{userID: uuid.New(), role: constants.RoleCoordinator, region: own}
	outsider := caller{userID: uuid.New(), role: constants.RoleCoordinator, region: other}

	_, env, _ := call(t, app, owner, "POST", "/api/a/regions/"+own.String()+"/timesheets/months", `{"year_month":"2025-03"}`)
	var month struct {
		ID uuid.UUID `json:"id"`
	}
	_ = json.Unmarshal(env.Data, &month)

	if status, _, _ := call(t, app, outsider, "GET", "/api/a/timesheets/months/"+month.ID.String(), ""); status != fiber.StatusForbidden {
		t.Errorf("foreign month: status = %d, want 403", status)
	}
	if status, _, _ := call(t, app, outsider, "POST", "/api/a/regions/"+own.String()+"/timesheets/months", `{"year_month":"2025-04"}`); status != fiber.StatusForbidden {
		t.Errorf("foreign start: status = %d, want 403", status)
	}
}

func TestExportOverHTTP(t *testing.T) {
	app := newTestApp(t)
	region := uuid.New()
	coord := caller{userID: uuid.New(), role: constants.RoleCoordinator, region: region}

	_, env, _ := call(t, app, coord, "POST", "/api/a/regions/"+region.String()+"/timesheets/months", `{"year_month":"2025-02"}`)
	var month struct {
		ID uuid.UUID `json:"id"`
	}
	_ = json.Unmarshal(env.Data, &month)

	req := httptest.NewRequest("GET", "/api/a/timesheets/months/"+month.ID.String()+"/export", nil)
	req.Header.Set("X-User", coord.userID.String())
	req.Header.Set("X-Role", coord.role)
	req.Header.Set("X-Region", region.String())
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if cd := resp.Header.Get(fiber.HeaderContentDisposition); !strings.Contains(cd, "puantaj-2025-02.xlsx") {
		t.Errorf("content-disposition = %q", cd)
	}
	body, _ := io.ReadAll(resp.Body)
	if len(body) < 4 || string(body[:2]) != "PK" {
		t.Error("body is not an xlsx (zip) archive")
	}
}

func dupRegistryJSON() string {
	entries := make([]string, 6)
	for i := range entries {
		entries[i] = `{"id":1,"name":"Tekrar","color":"#123456"}`
	}
	return `[` + strings.Join(entries, ",") + `]`
}

func TestRejectedBodiesLeaveStateUntouched(t *testing.T) {
	app := newTestApp(t)
	region := uuid.New()
	coord := caller{userID: uuid.New(), role: constants.RoleCoordinator, region: region}
	base := "/api/a/regions/" + region.String() + "/timesheets"

	status, _, raw := call(t, app, coord, "POST", base+"/months", `{"year_month":"2025-05","templates":`+dupRegistryJSON()+`}`)
	if status != fiber.StatusUnprocessableEntity {
		t.Fatalf("duplicate-id registry: status = %d, want 422 (%s)", status, raw)
	}
	if status, _, _ := call(t, app, coord, "GET", base+"/months/2025-05", ""); status != fiber.StatusNotFound {
		t.Fatalf("month stored after rejected start: status = %d", status)
	}

	_, env, _ := call(t, app, coord, "POST", base+"/months", `{"year_month":"2025-03"}`)
	var month struct {
		ID uuid.UUID `json:"id"`
	}
	_ = json.Unmarshal(env.Data, &month)
	monthURL := "/api/a/timesheets/months/" + month.ID.String()

	tests := []struct {
		name, method, path, body string
		want                     int
	}{
		{"save malformed", "POST", monthURL + "/save", `{not json`, fiber.StatusBadRequest},
		{"save duplicate ids", "POST", monthURL + "/save", `{"templates":` + dupRegistryJSON() + `}`, fiber.StatusUnprocessableEntity},
		{"paint malformed", "PUT", monthURL + "/days/2025-03-20", `{not json`, fiber.StatusBadRequest},
		{"paint duplicate ids", "PUT", monthURL + "/days/2025-03-20", `{"template_id":5,"templates":` + dupRegistryJSON() + `}`, fiber.StatusUnprocessableEntity},
		{"bulk duplicate ids", "PUT", monthURL + "/days", `{"dates":["2025-03-20"],"template_id":5,"templates":` + dupRegistryJSON() + `}`, fiber.StatusUnprocessableEntity},
		{"usage malformed", "POST", monthURL + "/usage", `{not json`, fiber.StatusBadRequest},
		{"usage duplicate ids", "POST", monthURL + "/usage", `{"templates":` + dupRegistryJSON() + `}`, fiber.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env, raw := call(t, app, coord, tt.method, tt.path, tt.body)
			if status != tt.want {
				t.Errorf("status = %d, want %d (%s)", status, tt.want, raw)
			}
			if env.Success {
				t.Errorf("rejected request reported success: %s", raw)
			}
		})
	}

	status, env, _ = call(t, app, coord, "GET", monthURL, "")
	if status != fiber.StatusOK {
		t.Fatalf("get: status = %d", status)
	}
	var after struct {
		Status string `json:"status"`
		Days   []struct {
			Date string `json:"date"`
			Name string `json:"name"`
		} `json:"days"`
	}
	_ = json.Unmarshal(env.Data, &after)
	if after.Status != "preparing" {
		t.Errorf("status after rejected save = %q, want preparing", after.Status)
	}
	for _, d := range after.Days {
		if d.Date == "2025-03-20" && d.Name == "İzin" {
			t.Error("rejected paint changed 2025-03-20")
		}
	}
}
