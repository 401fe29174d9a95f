package auth

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"personel_backend/internals/constants"
	helperAuth "personel_backend/internals/helpers/auth"
)

const testSecret = "middleware-secret"

type fakeChecker struct {
	blacklisted map[string]bool
	inactive    map[uuid.UUID]bool
}

func (f *fakeChecker) IsTokenBlacklisted(_ context.Context, tok string) (bool, error) {
	return f.blacklisted[tok], nil
}

func (f *fakeChecker) IsUserActive(_ context.Context, id uuid.UUID) (bool, error) {
	return !f.inactive[id], nil
}

func sign(t *testing.T, userID uuid.UUID, role string, region *uuid.UUID, now time.Time) string {
	t.Helper()
	tok, _, err := helperAuth.SignAccessToken(testSecret, userID, "test", role, region, now, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return tok
}

func newApp(checker SessionChecker) *fiber.App {
	app := fiber.New()
	admin := app.Group("/api/a", AuthMiddleware(checker, testSecret), OnlyRoles("", constants.CoordinatorAndAbove...))
	admin.Get("/whoami", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(helperAuth.LocUserID).(string))
	})
	scoped := admin.Group("/regions/:region_id", RequireRegionScope())
	scoped.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })
	return app
}

func do(t *testing.T, app *fiber.App, path, token string) int {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode
}

func TestAuthMiddleware(t *testing.T) {
	checker := &fakeChecker{blacklisted: map[string]bool{}, inactive: map[uuid.UUID]bool{}}
	app := newApp(checker)

	region := uuid.New()
	coord := uuid.New()
	good := sign(t, coord, constants.RoleCoordinator, &region, time.Now())
	expired := sign(t, coord, constants.RoleCoordinator, &region, time.Now().Add(-2*time.Hour))
	staff := sign(t, uuid.New(), constants.RoleStaff, &region, time.Now())

	revoked := sign(t, uuid.New(), constants.RoleAdmin, nil, time.Now())
	checker.blacklisted[revoked] = true

	inactiveID := uuid.New()
	inactive := sign(t, inactiveID, constants.RoleAdmin, nil, time.Now())
	checker.inactive[inactiveID] = true

	tests := []struct {
		name  string
		token string
		want  int
	}{
		{"no token", "", fiber.StatusUnauthorized},
		{"garbage", "not.a.jwt", fiber.StatusUnauthorized},
		{"expired", expired, fiber.StatusUnauthorized},
		{"blacklisted", revoked, fiber.StatusUnauthorized},
		{"inactive user", inactive, fiber.StatusForbidden},
		{"staff role", staff, fiber.StatusForbidden},
		{"coordinator", good, fiber.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := do(t, app, "/api/a/whoami", tt.token); got != tt.want {
				t.Errorf("status = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRequireRegionScope(t *testing.T) {
	app := newApp(&fakeChecker{})
	own := uuid.New()
	other := uuid.New()
	coord := sign(t, uuid.New(), constants.RoleCoordinator, &own, time.Now())
	admin := sign(t, uuid.New(), constants.RoleAdmin, nil, time.Now())

	if got := do(t, app, "/api/a/regions/"+own.String()+"/ping", coord); got != fiber.StatusOK {
		t.Errorf("own region: status = %d, want 200", got)
	}
	if got := do(t, app, "/api/a/regions/"+other.String()+"/ping", coord); got != fiber.StatusForbidden {
		t.Errorf("other region: status = %d, want 403", got)
	}
	if got := do(t, app, "/api/a/regions/"+other.String()+"/ping", admin); got != fiber.StatusOK {
		t.Errorf("admin: status = %d, want 200", got)
	}
	if got := do(t, app, "/api/a/regions/not-a-uuid/ping", coord); got != fiber.StatusBadRequest {
		t.Errorf("bad uuid: status = %d, want 400", got)
	}
}
