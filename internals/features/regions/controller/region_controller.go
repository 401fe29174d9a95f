// file: internals/features/regions/controller/region_controller.go
package controller

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"personel_backend/internals/features/regions/dto"
	"personel_backend/internals/features/regions/model"
	"personel_backend/internals/features/regions/repository"
	helper "personel_backend/internals/helpers"
	helperAuth "personel_backend/internals/helpers/auth"
)

// RegionStore is the persistence the handlers need; see
// repository.RegionRepository for the Postgres version.
type RegionStore interface {
	List(ctx context.Context, f repository.ListFilter) ([]model.RegionModel, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.RegionModel, error)
	Insert(ctx context.Context, row *model.RegionModel) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) (bool, error)
	CountLivePersonnel(ctx context.Context, id uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type RegionController struct {
	Store RegionStore
}

func NewRegionController(store RegionStore) *RegionController {
	return &RegionController{Store: store}
}

/* =========================================================
   LIST - GET /api/a/regions?q=&is_active=&page=&per_page=
   Coordinators only ever see their own region.
   ========================================================= */
func (h *RegionController) List(c *fiber.Ctx) error {
	var q dto.RegionListQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query")
	}
	paging := helper.ResolvePaging(c, 20, 100)

	f := repository.ListFilter{Q: q.Q, IsActive: q.IsActive, Offset: paging.Offset, Limit: paging.Limit}
	if !helperAuth.IsAdmin(c) {
		own, err := helper.GetRegionIDFromToken(c)
		if err != nil {
			return err
		}
		f.OnlyID = &own
	}
	rows, total, err := h.Store.List(c.UserContext(), f)
	if err != nil {
		log.Printf("[ERROR] list regions: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load regions")
	}

	pg := helper.BuildPagination(total, paging, len(rows))
	return helper.JsonList(c, "ok", dto.ToRegionResponses(rows), &pg)
}

// find writes 404/500 itself; a nil row means the response is done.
func (h *RegionController) find(c *fiber.Ctx, id uuid.UUID) (*model.RegionModel, error) {
	row, err := h.Store.FindByID(c.UserContext(), id)
	if err != nil {
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load region")
	}
	if row == nil {
		return nil, helper.JsonError(c, fiber.StatusNotFound, "Region not found")
	}
	return row, nil
}

/* =========================================================
   GET - /api/a/regions/:region_id
   ========================================================= */
func (h *RegionController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "region_id")
	if err != nil {
		return err
	}
	row, err := h.find(c, id)
	if row == nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.ToRegionResponse(row))
}

/* =========================================================
   CREATE - POST /api/a/regions (admin)
   ========================================================= */
func (h *RegionController) Create(c *fiber.Ctx) error {
	var req dto.RegionCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}

	row := req.ToModel()
	if err := h.Store.Insert(c.UserContext(), row); err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Region name already exists")
		}
		return helper.WritePGError(c, err)
	}
	log.Printf("[INFO] region created id=%s name=%q", row.RegionID, row.RegionName)
	return helper.JsonCreated(c, "Region created", dto.ToRegionResponse(row))
}

/* =========================================================
   PATCH - /api/a/regions/:region_id (admin)
   ========================================================= */
func (h *RegionController) Patch(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "region_id")
	if err != nil {
		return err
	}
	var req dto.RegionUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}

	row, err := h.find(c, id)
	if row == nil {
		return err
	}
	updates := req.ToUpdates()
	if len(updates) == 0 {
		return helper.JsonUpdated(c, "Nothing to update", dto.ToRegionResponse(row))
	}
	ok, err := h.Store.Update(c.UserContext(), id, updates)
	if err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Region name already exists")
		}
		return helper.WritePGError(c, err)
	}
	if !ok {
		return helper.JsonError(c, fiber.StatusNotFound, "Region not found")
	}
	if row, err = h.find(c, id); row == nil {
		return err
	}
	return helper.JsonUpdated(c, "Region updated", dto.ToRegionResponse(row))
}

/* =========================================================
   DELETE - /api/a/regions/:region_id (admin, soft delete)
   Refused while active personnel still belong to the region.
   ========================================================= */
func (h *RegionController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "region_id")
	if err != nil {
		return err
	}
	staff, err := h.Store.CountLivePersonnel(c.UserContext(), id)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check personnel")
	}
	if staff > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Region still has personnel")
	}

	ok, err := h.Store.Delete(c.UserContext(), id)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete region")
	}
	if !ok {
		return helper.JsonError(c, fiber.StatusNotFound, "Region not found")
	}
	log.Printf("[INFO] region deleted id=%s", id)
	return helper.JsonDeleted(c, "Region deleted", fiber.Map{"region_id": id})
}
