// file: internals/features/timesheets/controller/timesheet_controller.go
package controller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"personel_backend/internals/features/timesheets/dto"
	m "personel_backend/internals/features/timesheets/model"
	"personel_backend/internals/features/timesheets/service"
	helper "personel_backend/internals/helpers"
	helperAuth "personel_backend/internals/helpers/auth"
)

// RegionNameFunc resolves a region's display name for export titles.
type RegionNameFunc func(ctx context.Context, regionID uuid.UUID) string

type TimesheetController struct {
	Svc        *service.TimesheetService
	RegionName RegionNameFunc
}

func NewTimesheetController(svc *service.TimesheetService, regionName RegionNameFunc) *TimesheetController {
	if regionName == nil {
		regionName = func(context.Context, uuid.UUID) string { return "" }
	}
	return &TimesheetController{Svc: svc, RegionName: regionName}
}

/* =========================
   Error mapping
   ========================= */

func writeServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrAlreadyStarted),
		errors.Is(err, service.ErrMonthLocked):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrUnknownDate),
		errors.Is(err, service.ErrUnknownTemplate),
		errors.Is(err, service.ErrInvalidYearMonth),
		errors.Is(err, service.ErrCorruptTemplatesSnapshot):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrMonthNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidTemplate):
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	default:
		log.Printf("[ERROR] timesheet %s %s: %v", c.Method(), c.Path(), err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Timesheet could not be stored, try again")
	}
}

// parseBody decodes and validates. When handled is true the error
// response is already written and the handler must stop.
func parseBody(c *fiber.Ctx, out interface{}) (handled bool, err error) {
	if len(c.Body()) == 0 {
		return false, nil
	}
	if err := c.BodyParser(out); err != nil {
		return true, helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(out); err != nil {
		return true, helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}
	return false, nil
}

// registryFrom: nil registry with handled=false means "use the latest snapshot".
func registryFrom(c *fiber.Ctx, in []dto.TemplateInput) (reg *service.Registry, handled bool, err error) {
	reg, rerr := dto.ToRegistry(in)
	if rerr != nil {
		return nil, true, helper.JsonValidationError(c, map[string][]string{"templates": {rerr.Error()}})
	}
	return reg, false, nil
}

// loadScopedMonth fetches the month and checks the caller's region scope.
func (tc *TimesheetController) loadScopedMonth(c *fiber.Ctx) (*m.MonthRecord, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	rec, err := tc.Svc.GetMonth(c.UserContext(), id)
	if err != nil {
		return nil, writeServiceError(c, err)
	}
	if !helperAuth.CanAccessRegion(c, rec.RegionID) {
		return nil, helper.JsonError(c, fiber.StatusForbidden, "Forbidden: region is outside your scope")
	}
	return rec, nil
}

/* =========================
   Templates
   ========================= */

// GET /regions/:region_id/timesheets/templates
func (tc *TimesheetController) GetLatestTemplates(c *fiber.Ctx) error {
	regionID, err := helper.ParseUUIDParam(c, "region_id")
	if err != nil {
		return err
	}
	reg, err := tc.Svc.LoadLatestTemplates(c.UserContext(), regionID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", reg.Templates())
}

// GET /timesheets/templates/defaults
func (tc *TimesheetController) GetDefaultTemplates(c *fiber.Ctx) error {
	return helper.JsonOK(c, "ok", service.DefaultRegistry().Templates())
}

/* =========================
   Months
   ========================= */

// GET /regions/:region_id/timesheets/months
func (tc *TimesheetController) ListMonths(c *fiber.Ctx) error {
	regionID, err := helper.ParseUUIDParam(c, "region_id")
	if err != nil {
		return err
	}
	recs, err := tc.Svc.ListMonths(c.UserContext(), regionID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return helper.JsonList(c, "ok", dto.ToMonthSummaries(recs), nil)
}

// POST /regions/:region_id/timesheets/months
func (tc *TimesheetController) StartMonth(c *fiber.Ctx) error {
	regionID, err := helper.ParseUUIDParam(c, "region_id")
	if err != nil {
		return err
	}
	var req dto.StartMonthRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}
	reg, handled, err := registryFrom(c, req.Templates)
	if handled {
		return err
	}

	rec, err := tc.Svc.StartMonth(c.UserContext(), regionID, req.YearMonth, reg)
	if err != nil {
		return writeServiceError(c, err)
	}
	log.Printf("[INFO] timesheet month started region=%s ym=%s id=%s", regionID, rec.YearMonth, rec.ID)
	return helper.JsonCreated(c, "Timesheet month started", dto.ToMonthResponse(rec))
}

// GET /regions/:region_id/timesheets/months/:year_month
func (tc *TimesheetController) GetMonthByKey(c *fiber.Ctx) error {
	regionID, err := helper.ParseUUIDParam(c, "region_id")
	if err != nil {
		return err
	}
	rec, err := tc.Svc.GetMonthByKey(c.UserContext(), regionID, c.Params("year_month"))
	if err != nil {
		return writeServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.ToMonthResponse(rec))
}

// GET /timesheets/months/:id
func (tc *TimesheetController) GetMonth(c *fiber.Ctx) error {
	rec, err := tc.loadScopedMonth(c)
	if rec == nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.ToMonthResponse(rec))
}

// PUT /timesheets/months/:id/days/:date
func (tc *TimesheetController) PaintDay(c *fiber.Ctx) error {
	rec, err := tc.loadScopedMonth(c)
	if rec == nil {
		return err
	}
	var req dto.PaintDayRequest
	if handled, err := parseBody(c, &req); handled {
		return err
	}
	reg, handled, err := registryFrom(c, req.Templates)
	if handled {
		return err
	}

	date := strings.TrimSpace(c.Params("date"))
	snap, err := tc.Svc.PaintDay(c.UserContext(), rec.ID, date, req.TemplateID, reg)
	if err != nil {
		return writeServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Day painted", dto.ToDayResponse(date, snap))
}

// PUT /timesheets/months/:id/days
func (tc *TimesheetController) PaintDays(c *fiber.Ctx) error {
	rec, err := tc.loadScopedMonth(c)
	if rec == nil {
		return err
	}
	var req dto.PaintDaysRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}
	reg, handled, err := registryFrom(c, req.Templates)
	if handled {
		return err
	}

	painted, err := tc.Svc.PaintDays(c.UserContext(), rec.ID, req.Dates, req.TemplateID, reg)
	if err != nil {
		return writeServiceError(c, err)
	}
	out := make([]dto.DayResponse, 0, len(req.Dates))
	for _, d := range req.Dates {
		out = append(out, dto.ToDayResponse(d, painted[d]))
	}
	return helper.JsonUpdated(c, fmt.Sprintf("%d days painted", len(painted)), out)
}

// POST /timesheets/months/:id/save
func (tc *TimesheetController) SaveMonth(c *fiber.Ctx) error {
	rec, err := tc.loadScopedMonth(c)
	if rec == nil {
		return err
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	var req dto.RegistryRequest
	if handled, err := parseBody(c, &req); handled {
		return err
	}
	reg, handled, err := registryFrom(c, req.Templates)
	if handled {
		return err
	}

	saved, err := tc.Svc.SaveMonth(c.UserContext(), rec.ID, reg, userID)
	if err != nil {
		return writeServiceError(c, err)
	}
	log.Printf("[INFO] timesheet month saved id=%s by=%s", saved.ID, userID)
	return helper.JsonUpdated(c, "Timesheet month saved", dto.ToMonthResponse(saved))
}

// POST /timesheets/months/:id/reopen (admin)
func (tc *TimesheetController) ReopenMonth(c *fiber.Ctx) error {
	rec, err := tc.loadScopedMonth(c)
	if rec == nil {
		return err
	}
	reopened, err := tc.Svc.ReopenMonth(c.UserContext(), rec.ID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Timesheet month reopened", dto.ToMonthResponse(reopened))
}

// POST /timesheets/months/:id/usage
func (tc *TimesheetController) Usage(c *fiber.Ctx) error {
	rec, err := tc.loadScopedMonth(c)
	if rec == nil {
		return err
	}
	var req dto.RegistryRequest
	if handled, err := parseBody(c, &req); handled {
		return err
	}
	reg, handled, err := registryFrom(c, req.Templates)
	if handled {
		return err
	}
	if reg == nil {
		if reg, err = tc.Svc.LoadLatestTemplates(c.UserContext(), rec.RegionID); err != nil {
			return writeServiceError(c, err)
		}
	}
	return helper.JsonOK(c, "ok", service.Usage(rec.Days, reg))
}

// GET /timesheets/months/:id/export
func (tc *TimesheetController) ExportMonth(c *fiber.Ctx) error {
	rec, err := tc.loadScopedMonth(c)
	if rec == nil {
		return err
	}
	reg, err := service.NewRegistry(rec.TemplatesSnapshot)
	if err != nil {
		if reg, err = tc.Svc.LoadLatestTemplates(c.UserContext(), rec.RegionID); err != nil {
			return writeServiceError(c, err)
		}
	}

	buf, err := service.ExportMonthXLSX(rec, reg, tc.RegionName(c.UserContext(), rec.RegionID))
	if err != nil {
		log.Printf("[ERROR] export month=%s: %v", rec.ID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Export failed")
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="puantaj-%s.xlsx"`, rec.YearMonth))
	return c.Send(buf.Bytes())
}
