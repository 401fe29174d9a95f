// file: internals/features/personnel/controller/personnel_controller.go
package controller

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"personel_backend/internals/constants"
	"personel_backend/internals/features/personnel/dto"
	"personel_backend/internals/features/personnel/model"
	"personel_backend/internals/features/personnel/repository"
	helper "personel_backend/internals/helpers"
	helperAuth "personel_backend/internals/helpers/auth"
	helperOSS "personel_backend/internals/helpers/oss"
)

type PersonnelStore interface {
	List(ctx context.Context, f repository.ListFilter) ([]model.PersonnelModel, int64, error)
	RegionExists(ctx context.Context, regionID uuid.UUID) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.PersonnelModel, error)
	Insert(ctx context.Context, row *model.PersonnelModel) error
	Update(ctx context.Context, row *model.PersonnelModel, updates map[string]any) error
	SetPhoto(ctx context.Context, id uuid.UUID, url, objectKey *string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type PersonnelController struct {
	Store PersonnelStore
	Blobs helperOSS.BlobStore // nil when object storage is not configured
}

func NewPersonnelController(store PersonnelStore, blobs helperOSS.BlobStore) *PersonnelController {
	return &PersonnelController{Store: store, Blobs: blobs}
}

// loadScoped finds a live personnel row and checks region scope.
func (h *PersonnelController) loadScoped(c *fiber.Ctx) (*model.PersonnelModel, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	row, err := h.Store.FindByID(c.UserContext(), id)
	if err != nil {
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load personnel")
	}
	if row == nil {
		return nil, helper.JsonError(c, fiber.StatusNotFound, "Personnel not found")
	}
	if !helperAuth.CanAccessRegion(c, row.PersonnelRegionID) {
		return nil, helper.JsonError(c, fiber.StatusForbidden, "Forbidden: region is outside your scope")
	}
	return row, nil
}

/* =========================================================
   LIST - GET /api/a/regions/:region_id/personnel
   ?q=&is_active=&skill=&sort=name|hire_date|created_at&page=&per_page=
   ========================================================= */
func (h *PersonnelController) List(c *fiber.Ctx) error {
	regionID, err := helper.ParseUUIDParam(c, "region_id")
	if err != nil {
		return err
	}
	var q dto.PersonnelListQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query")
	}
	paging := helper.ResolvePaging(c, 20, 200)

	rows, total, err := h.Store.List(c.UserContext(), repository.ListFilter{
		RegionID: regionID,
		Q:        q.Q,
		IsActive: q.IsActive,
		Skill:    q.Skill,
		Sort:     q.Sort,
		Offset:   paging.Offset,
		Limit:    paging.Limit,
	})
	if err != nil {
		log.Printf("[ERROR] list personnel region=%s: %v", regionID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load personnel")
	}
	pg := helper.BuildPagination(total, paging, len(rows))
	return helper.JsonList(c, "ok", dto.ToPersonnelResponses(rows), &pg)
}

/* =========================================================
   CREATE - POST /api/a/regions/:region_id/personnel
   ========================================================= */
func (h *PersonnelController) Create(c *fiber.Ctx) error {
	regionID, err := helper.ParseUUIDParam(c, "region_id")
	if err != nil {
		return err
	}
	var req dto.PersonnelCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}

	ok, err := h.Store.RegionExists(c.UserContext(), regionID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check region")
	}
	if !ok {
		return helper.JsonError(c, fiber.StatusNotFound, "Region not found")
	}

	row := req.ToModel(regionID)
	if err := h.Store.Insert(c.UserContext(), row); err != nil {
		return helper.WritePGError(c, err)
	}
	log.Printf("[INFO] personnel created id=%s region=%s", row.PersonnelID, regionID)
	return helper.JsonCreated(c, "Personnel created", dto.ToPersonnelResponse(row))
}

/* =========================================================
   GET - /api/a/personnel/:id
   ========================================================= */
func (h *PersonnelController) GetByID(c *fiber.Ctx) error {
	row, err := h.loadScoped(c)
	if row == nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.ToPersonnelResponse(row))
}

/* =========================================================
   PATCH - /api/a/personnel/:id
   ========================================================= */
func (h *PersonnelController) Patch(c *fiber.Ctx) error {
	row, err := h.loadScoped(c)
	if row == nil {
		return err
	}
	var req dto.PersonnelUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}

	updates := req.ToUpdates()
	if len(updates) == 0 {
		return helper.JsonUpdated(c, "Nothing to update", dto.ToPersonnelResponse(row))
	}
	if err := h.Store.Update(c.UserContext(), row, updates); err != nil {
		return helper.WritePGError(c, err)
	}
	return helper.JsonUpdated(c, "Personnel updated", dto.ToPersonnelResponse(row))
}

/* =========================================================
   DELETE - /api/a/personnel/:id (soft delete)
   The photo object is kept until the row is purged.
   ========================================================= */
func (h *PersonnelController) Delete(c *fiber.Ctx) error {
	row, err := h.loadScoped(c)
	if row == nil {
		return err
	}
	if err := h.Store.Delete(c.UserContext(), row.PersonnelID); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete personnel")
	}
	return helper.JsonDeleted(c, "Personnel deleted", fiber.Map{"personnel_id": row.PersonnelID})
}

/* =========================================================
   PHOTO - POST /api/a/personnel/:id/photo (multipart "photo")
   image → webp (800px box, q80) → personnel/<region>/<uuid>.webp
   ========================================================= */
func (h *PersonnelController) UploadPhoto(c *fiber.Ctx) error {
	if h.Blobs == nil {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Object storage is not configured")
	}
	row, err := h.loadScoped(c)
	if row == nil {
		return err
	}
	fh, err := helperOSS.GetFormFile(c, "photo", "image", "file")
	if err != nil {
		return err
	}
	if fh == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "photo file is required")
	}

	key := fmt.Sprintf("personnel/%s/%s.webp", row.PersonnelRegionID, uuid.New())
	obj, err := helperOSS.UploadAsWebP(c.UserContext(), h.Blobs, fh, key, constants.MaxPhotoBytes, helperOSS.PhotoWebPOptions())
	switch {
	case errors.Is(err, helperOSS.ErrFileTooLarge):
		return helper.JsonError(c, fiber.StatusRequestEntityTooLarge, "Photo must be at most 5MB")
	case errors.Is(err, helperOSS.ErrUnsupportedImage):
		return helper.JsonError(c, fiber.StatusUnsupportedMediaType, err.Error())
	case err != nil:
		log.Printf("[ERROR] personnel photo upload id=%s: %v", row.PersonnelID, err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Photo upload failed")
	}

	oldKey := row.PersonnelPhotoObjectKey
	if err := h.Store.SetPhoto(c.UserContext(), row.PersonnelID, &obj.URL, &obj.ObjectKey); err != nil {
		log.Printf("[ERROR] personnel photo save id=%s: %v", row.PersonnelID, err)
		helperOSS.DeleteBestEffort(c.UserContext(), h.Blobs, obj.ObjectKey)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save photo")
	}
	if oldKey != nil {
		helperOSS.DeleteBestEffort(c.UserContext(), h.Blobs, *oldKey)
	}

	row.PersonnelPhotoURL = &obj.URL
	row.PersonnelPhotoObjectKey = &obj.ObjectKey
	return helper.JsonUpdated(c, "Photo updated", dto.ToPersonnelResponse(row))
}

/* =========================================================
   PHOTO - DELETE /api/a/personnel/:id/photo
   ========================================================= */
func (h *PersonnelController) DeletePhoto(c *fiber.Ctx) error {
	row, err := h.loadScoped(c)
	if row == nil {
		return err
	}
	if row.PersonnelPhotoObjectKey == nil {
		return helper.JsonDeleted(c, "No photo", dto.ToPersonnelResponse(row))
	}
	oldKey := *row.PersonnelPhotoObjectKey
	if err := h.Store.SetPhoto(c.UserContext(), row.PersonnelID, nil, nil); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to remove photo")
	}
	helperOSS.DeleteBestEffort(c.UserContext(), h.Blobs, oldKey)

	row.PersonnelPhotoURL = nil
	row.PersonnelPhotoObjectKey = nil
	return helper.JsonDeleted(c, "Photo removed", dto.ToPersonnelResponse(row))
}
