// file: internals/features/leaves/dto/leave_request_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"personel_backend/internals/features/leaves/model"
)

// Accepted as JSON or as multipart fields next to attachment files.
type LeaveCreateRequest struct {
	PersonnelID string    `json:"personnel_id" form:"personnel_id" validate:"required,uuid"`
	LeaveType   string    `json:"leave_type" form:"leave_type" validate:"required,oneof=annual sick unpaid excuse"`
	StartDate   string    `json:"start_date" form:"start_date" validate:"required,isodate"`
	EndDate     string    `json:"end_date" form:"end_date" validate:"required,isodate"`
	Reason      *string   `json:"reason" form:"reason" validate:"omitempty,max=1000"`
}

type LeaveDecisionRequest struct {
	Note *string `json:"note" validate:"omitempty,max=1000"`
}

type LeaveListQuery struct {
	Status      string `query:"status" validate:"omitempty,oneof=pending approved rejected"`
	PersonnelID string `query:"personnel_id" validate:"omitempty,uuid"`
}

type LeaveResponse struct {
	LeaveRequestID          uuid.UUID          `json:"leave_request_id"`
	LeaveRequestRegionID    uuid.UUID          `json:"leave_request_region_id"`
	LeaveRequestPersonnelID uuid.UUID          `json:"leave_request_personnel_id"`
	LeaveType               string             `json:"leave_type"`
	StartDate               string             `json:"start_date"`
	EndDate                 string             `json:"end_date"`
	DayCount                int                `json:"day_count"`
	Reason                  *string            `json:"reason,omitempty"`
	Status                  string             `json:"status"`
	RequestedBy             *uuid.UUID         `json:"requested_by,omitempty"`
	DecidedBy               *uuid.UUID         `json:"decided_by,omitempty"`
	DecidedAt               *time.Time         `json:"decided_at,omitempty"`
	DecisionNote            *string            `json:"decision_note,omitempty"`
	Attachments             []model.Attachment `json:"attachments"`
	CreatedAt               time.Time          `json:"created_at"`
}

func ToLeaveResponse(m *model.LeaveRequestModel) LeaveResponse {
	return LeaveResponse{
		LeaveRequestID:          m.LeaveRequestID,
		LeaveRequestRegionID:    m.LeaveRequestRegionID,
		LeaveRequestPersonnelID: m.LeaveRequestPersonnelID,
		LeaveType:               string(m.LeaveRequestType),
		StartDate:               m.LeaveRequestStartDate.Format("2006-01-02"),
		EndDate:                 m.LeaveRequestEndDate.Format("2006-01-02"),
		DayCount:                m.LeaveRequestDayCount,
		Reason:                  m.LeaveRequestReason,
		Status:                  string(m.LeaveRequestStatus),
		RequestedBy:             m.LeaveRequestRequestedBy,
		DecidedBy:               m.LeaveRequestDecidedBy,
		DecidedAt:               m.LeaveRequestDecidedAt,
		DecisionNote:            m.LeaveRequestDecisionNote,
		Attachments:             m.Attachments(),
		CreatedAt:               m.LeaveRequestCreatedAt,
	}
}

func ToLeaveResponses(rows []model.LeaveRequestModel) []LeaveResponse {
	out := make([]LeaveResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToLeaveResponse(&rows[i]))
	}
	return out
}
