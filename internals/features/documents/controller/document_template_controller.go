// file: internals/features/documents/controller/document_template_controller.go
package controller

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"personel_backend/internals/constants"
	"personel_backend/internals/features/documents/dto"
	"personel_backend/internals/features/documents/model"
	"personel_backend/internals/features/documents/repository"
	helper "personel_backend/internals/helpers"
	helperAuth "personel_backend/internals/helpers/auth"
	helperOSS "personel_backend/internals/helpers/oss"
)

// DocumentStore is implemented by repository.DocumentRepository.
type DocumentStore interface {
	List(ctx context.Context, f repository.ListFilter) ([]model.DocumentTemplateModel, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.DocumentTemplateModel, error)
	Insert(ctx context.Context, row *model.DocumentTemplateModel) error
	Update(ctx context.Context, row *model.DocumentTemplateModel, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type DocumentTemplateController struct {
	Store DocumentStore
	Blobs helperOSS.BlobStore
}

func NewDocumentTemplateController(store DocumentStore, blobs helperOSS.BlobStore) *DocumentTemplateController {
	return &DocumentTemplateController{Store: store, Blobs: blobs}
}

// loadScoped reads a template. Global templates are readable by everyone
// but only admins may change them.
func (h *DocumentTemplateController) loadScoped(c *fiber.Ctx, write bool) (*model.DocumentTemplateModel, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	row, err := h.Store.FindByID(c.UserContext(), id)
	if err != nil {
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load document template")
	}
	if row == nil {
		return nil, helper.JsonError(c, fiber.StatusNotFound, "Document template not found")
	}
	if row.IsGlobal() {
		if write && !helperAuth.IsAdmin(c) {
			return nil, helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorAdmin("global document templates"))
		}
		return row, nil
	}
	if !helperAuth.CanAccessRegion(c, *row.DocumentTemplateRegionID) {
		return nil, helper.JsonError(c, fiber.StatusForbidden, "Forbidden: region is outside your scope")
	}
	return row, nil
}

func (h *DocumentTemplateController) list(c *fiber.Ctx, regionID *uuid.UUID) error {
	var q dto.DocumentListQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query")
	}
	if err := helper.Validate.Struct(&q); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}
	paging := helper.ResolvePaging(c, 20, 100)

	rows, total, err := h.Store.List(c.UserContext(), repository.ListFilter{
		RegionID: regionID,
		Scope:    repository.Scope(q.Scope),
		Kind:     q.Kind,
		Q:        q.Q,
		Offset:   paging.Offset,
		Limit:    paging.Limit,
	})
	if err != nil {
		log.Printf("[ERROR] list document templates: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load document templates")
	}
	pg := helper.BuildPagination(total, paging, len(rows))
	return helper.JsonList(c, "ok", dto.ToDocumentResponses(rows), &pg)
}

func (h *DocumentTemplateController) upload(c *fiber.Ctx, regionID *uuid.UUID) error {
	if h.Blobs == nil {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Object storage is not configured")
	}
	var req dto.DocumentUploadRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid multipart form")
	}
	req.Normalize()
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}

	fh, err := helperOSS.GetFormFile(c, "file", "document")
	if err != nil {
		return err
	}
	if fh == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "file is required")
	}
	ct := constants.DocumentContentType(fh.Filename)
	if ct == "" {
		return helper.JsonError(c, fiber.StatusUnsupportedMediaType, "Only .docx and .pdf templates are accepted")
	}

	obj, err := helperOSS.UploadRaw(c.UserContext(), h.Blobs, fh, model.ObjectDir(regionID), ct, constants.MaxDocumentBytes)
	switch {
	case errors.Is(err, helperOSS.ErrFileTooLarge):
		return helper.JsonError(c, fiber.StatusRequestEntityTooLarge, "Document must be at most 10MB")
	case err != nil:
		log.Printf("[ERROR] document upload: %v", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Document upload failed")
	}

	row := &model.DocumentTemplateModel{
		DocumentTemplateRegionID:    regionID,
		DocumentTemplateName:        req.Name,
		DocumentTemplateKind:        model.DocumentKind(req.Kind),
		DocumentTemplateFileURL:     obj.URL,
		DocumentTemplateObjectKey:   obj.ObjectKey,
		DocumentTemplateContentType: obj.ContentType,
		DocumentTemplateSizeBytes:   obj.SizeBytes,
	}
	if uid, err := helper.GetUserIDFromToken(c); err == nil {
		row.DocumentTemplateUploadedBy = &uid
	}
	if err := h.Store.Insert(c.UserContext(), row); err != nil {
		helperOSS.DeleteBestEffort(context.Background(), h.Blobs, obj.ObjectKey)
		return helper.WritePGError(c, err)
	}
	log.Printf("[INFO] document template uploaded id=%s key=%s size=%d", row.DocumentTemplateID, row.DocumentTemplateObjectKey, row.DocumentTemplateSizeBytes)
	return helper.JsonCreated(c, "Document template uploaded", dto.ToDocumentResponse(row))
}

/* =========================================================
   LIST
   GET /api/a/regions/:region_id/documents?scope=all|region|global&kind=&q=
   GET /api/a/documents/global
   ========================================================= */
func (h *DocumentTemplateController) ListByRegion(c *fiber.Ctx) error {
	regionID, err := helper.ParseUUIDParam(c, "region_id")
	if err != nil {
		return err
	}
	return h.list(c, &regionID)
}

func (h *DocumentTemplateController) ListGlobal(c *fiber.Ctx) error {
	return h.list(c, nil)
}

/* =========================================================
   UPLOAD (multipart: file, name, kind)
   POST /api/a/regions/:region_id/documents
   POST /api/a/documents/global (admin)
   ========================================================= */
func (h *DocumentTemplateController) UploadRegional(c *fiber.Ctx) error {
	regionID, err := helper.ParseUUIDParam(c, "region_id")
	if err != nil {
		return err
	}
	return h.upload(c, &regionID)
}

func (h *DocumentTemplateController) UploadGlobal(c *fiber.Ctx) error {
	return h.upload(c, nil)
}

/* =========================================================
   GET - /api/a/documents/:id
   ========================================================= */
func (h *DocumentTemplateController) GetByID(c *fiber.Ctx) error {
	row, err := h.loadScoped(c, false)
	if row == nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.ToDocumentResponse(row))
}

// GET /api/a/documents/:id/download
func (h *DocumentTemplateController) Download(c *fiber.Ctx) error {
	row, err := h.loadScoped(c, false)
	if row == nil {
		return err
	}
	return c.Redirect(row.DocumentTemplateFileURL, fiber.StatusFound)
}

/* =========================================================
   PATCH - /api/a/documents/:id {name?, kind?}
   ========================================================= */
func (h *DocumentTemplateController) Patch(c *fiber.Ctx) error {
	row, err := h.loadScoped(c, true)
	if row == nil {
		return err
	}
	var req dto.DocumentRenameRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}
	updates := req.ToUpdates()
	if len(updates) == 0 {
		return helper.JsonUpdated(c, "Nothing to update", dto.ToDocumentResponse(row))
	}
	if err := h.Store.Update(c.UserContext(), row, updates); err != nil {
		return helper.WritePGError(c, err)
	}
	return helper.JsonUpdated(c, "Document template updated", dto.ToDocumentResponse(row))
}

/* =========================================================
   DELETE - /api/a/documents/:id
   Soft delete; the object is removed right away.
   ========================================================= */
func (h *DocumentTemplateController) Delete(c *fiber.Ctx) error {
	row, err := h.loadScoped(c, true)
	if row == nil {
		return err
	}
	if err := h.Store.Delete(c.UserContext(), row.DocumentTemplateID); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete document template")
	}
	helperOSS.DeleteBestEffort(c.UserContext(), h.Blobs, row.DocumentTemplateObjectKey)
	return helper.JsonDeleted(c, "Document template deleted", fiber.Map{"document_template_id": row.DocumentTemplateID})
}
