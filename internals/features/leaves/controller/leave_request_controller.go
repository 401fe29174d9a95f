// file: internals/features/leaves/controller/leave_request_controller.go
package controller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"personel_backend/internals/constants"
	"personel_backend/internals/features/leaves/dto"
	"personel_backend/internals/features/leaves/model"
	"personel_backend/internals/features/leaves/repository"
	"personel_backend/internals/features/leaves/service"
	helper "personel_backend/internals/helpers"
	helperAuth "personel_backend/internals/helpers/auth"
	helperOSS "personel_backend/internals/helpers/oss"
)

const maxAttachments = 5

type LeaveRequestController struct {
	Svc   *service.LeaveService
	Blobs helperOSS.BlobStore // nil: attachments are refused
}

func NewLeaveRequestController(svc *service.LeaveService, blobs helperOSS.BlobStore) *LeaveRequestController {
	return &LeaveRequestController{Svc: svc, Blobs: blobs}
}

func writeLeaveError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrLeaveNotFound), errors.Is(err, service.ErrPersonnelNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotPending), errors.Is(err, service.ErrOverlap):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidRange),
		errors.Is(err, service.ErrRangeTooLong),
		errors.Is(err, service.ErrInvalidLeaveType):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	log.Printf("[ERROR] leave %s %s: %v", c.Method(), c.Path(), err)
	return helper.WritePGError(c, err)
}

func attachmentContentType(filename string) string {
	if ct := constants.DocumentContentType(filename); ct == "application/pdf" {
		return ct
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	}
	return ""
}

// loadScoped reads a leave request and checks region scope.
func (h *LeaveRequestController) loadScoped(c *fiber.Ctx) (*model.LeaveRequestModel, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	row, err := h.Svc.Get(c.UserContext(), id)
	if err != nil {
		return nil, writeLeaveError(c, err)
	}
	if !helperAuth.CanAccessRegion(c, row.LeaveRequestRegionID) {
		return nil, helper.JsonError(c, fiber.StatusForbidden, "Forbidden: region is outside your scope")
	}
	return row, nil
}

// uploadAttachments stores multipart files under leaves/<region>/.
// On failure already stored objects are removed and handled is true.
func (h *LeaveRequestController) uploadAttachments(c *fiber.Ctx, regionID uuid.UUID) (out []model.Attachment, handled bool, err error) {
	form, ferr := c.MultipartForm()
	if ferr != nil {
		return nil, true, helper.JsonError(c, fiber.StatusBadRequest, "Invalid multipart form")
	}
	files, truncated := helperOSS.CollectUploadFiles(form, maxAttachments)
	if truncated {
		return nil, true, helper.JsonError(c, fiber.StatusBadRequest, fmt.Sprintf("At most %d attachments are allowed", maxAttachments))
	}
	if len(files) == 0 {
		return nil, false, nil
	}
	if h.Blobs == nil {
		return nil, true, helper.JsonError(c, fiber.StatusServiceUnavailable, "Object storage is not configured")
	}

	out = make([]model.Attachment, 0, len(files))
	rollback := func() {
		for _, a := range out {
			helperOSS.DeleteBestEffort(context.Background(), h.Blobs, a.ObjectKey)
		}
	}
	dir := "leaves/" + regionID.String()
	for _, fh := range files {
		ct := attachmentContentType(fh.Filename)
		if ct == "" {
			rollback()
			return nil, true, helper.JsonError(c, fiber.StatusUnsupportedMediaType, fh.Filename+": only pdf/jpg/png/webp attachments are accepted")
		}
		obj, uerr := helperOSS.UploadRaw(c.UserContext(), h.Blobs, fh, dir, ct, constants.MaxPhotoBytes)
		if uerr != nil {
			rollback()
			if errors.Is(uerr, helperOSS.ErrFileTooLarge) {
				return nil, true, helper.JsonError(c, fiber.StatusRequestEntityTooLarge, fh.Filename+": attachment must be at most 5MB")
			}
			log.Printf("[ERROR] leave attachment upload: %v", uerr)
			return nil, true, helper.JsonError(c, fiber.StatusBadGateway, "Attachment upload failed")
		}
		out = append(out, model.Attachment{
			Name:        filepath.Base(fh.Filename),
			URL:         obj.URL,
			ObjectKey:   obj.ObjectKey,
			ContentType: obj.ContentType,
			SizeBytes:   obj.SizeBytes,
		})
	}
	return out, false, nil
}

/* =========================================================
   LIST - GET /api/a/regions/:region_id/leaves?status=&personnel_id=
   ========================================================= */
func (h *LeaveRequestController) List(c *fiber.Ctx) error {
	regionID, err := helper.ParseUUIDParam(c, "region_id")
	if err != nil {
		return err
	}
	var q dto.LeaveListQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query")
	}
	if err := helper.Validate.Struct(&q); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}
	paging := helper.ResolvePaging(c, 20, 100)

	f := repository.ListFilter{RegionID: regionID, Offset: paging.Offset, Limit: paging.Limit}
	if q.Status != "" {
		st := model.LeaveStatus(q.Status)
		f.Status = &st
	}
	if q.PersonnelID != "" {
		pid := uuid.MustParse(q.PersonnelID)
		f.PersonnelID = &pid
	}

	rows, total, err := h.Svc.List(c.UserContext(), f)
	if err != nil {
		return writeLeaveError(c, err)
	}
	pg := helper.BuildPagination(total, paging, len(rows))
	return helper.JsonList(c, "ok", dto.ToLeaveResponses(rows), &pg)
}

/* =========================================================
   CREATE - POST /api/a/regions/:region_id/leaves
   JSON, or multipart with files[] attachments
   ========================================================= */
func (h *LeaveRequestController) Create(c *fiber.Ctx) error {
	regionID, err := helper.ParseUUIDParam(c, "region_id")
	if err != nil {
		return err
	}
	var req dto.LeaveCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}

	personnelID := uuid.MustParse(req.PersonnelID)

	var attachments []model.Attachment
	if helperOSS.IsMultipart(c) {
		var handled bool
		attachments, handled, err = h.uploadAttachments(c, regionID)
		if handled {
			return err
		}
	}

	var requestedBy *uuid.UUID
	if uid, err := helper.GetUserIDFromToken(c); err == nil {
		requestedBy = &uid
	}
	row, err := h.Svc.Create(c.UserContext(), regionID, service.CreateInput{
		PersonnelID: personnelID,
		Type:        model.LeaveType(req.LeaveType),
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Reason:      req.Reason,
		RequestedBy: requestedBy,
		Attachments: attachments,
	})
	if err != nil {
		for _, a := range attachments {
			helperOSS.DeleteBestEffort(context.Background(), h.Blobs, a.ObjectKey)
		}
		return writeLeaveError(c, err)
	}
	log.Printf("[INFO] leave requested id=%s personnel=%s days=%d", row.LeaveRequestID, row.LeaveRequestPersonnelID, row.LeaveRequestDayCount)
	return helper.JsonCreated(c, "Leave request created", dto.ToLeaveResponse(row))
}

/* =========================================================
   GET - /api/a/leaves/:id
   ========================================================= */
func (h *LeaveRequestController) GetByID(c *fiber.Ctx) error {
	row, err := h.loadScoped(c)
	if row == nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.ToLeaveResponse(row))
}

func (h *LeaveRequestController) decide(c *fiber.Ctx, approve bool) error {
	row, err := h.loadScoped(c)
	if row == nil {
		return err
	}
	var req dto.LeaveDecisionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
		}
		if err := helper.Validate.Struct(&req); err != nil {
			return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
		}
	}
	by, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	if approve {
		row, err = h.Svc.Approve(c.UserContext(), row.LeaveRequestID, by, req.Note)
	} else {
		row, err = h.Svc.Reject(c.UserContext(), row.LeaveRequestID, by, req.Note)
	}
	if err != nil {
		return writeLeaveError(c, err)
	}
	return helper.JsonUpdated(c, "Leave request "+string(row.LeaveRequestStatus), dto.ToLeaveResponse(row))
}

// POST /api/a/leaves/:id/approve
func (h *LeaveRequestController) Approve(c *fiber.Ctx) error { return h.decide(c, true) }

// POST /api/a/leaves/:id/reject
func (h *LeaveRequestController) Reject(c *fiber.Ctx) error { return h.decide(c, false) }

/* =========================================================
   DELETE - /api/a/leaves/:id (pending only)
   ========================================================= */
func (h *LeaveRequestController) Delete(c *fiber.Ctx) error {
	row, err := h.loadScoped(c)
	if row == nil {
		return err
	}
	deleted, err := h.Svc.Delete(c.UserContext(), row.LeaveRequestID)
	if err != nil {
		return writeLeaveError(c, err)
	}
	for _, a := range deleted.Attachments() {
		helperOSS.DeleteBestEffort(c.UserContext(), h.Blobs, a.ObjectKey)
	}
	return helper.JsonDeleted(c, "Leave request deleted", fiber.Map{"leave_request_id": deleted.LeaveRequestID})
}
