// file: internals/features/leaves/model/leave_request_model.go
package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type LeaveType string

const (
	LeaveAnnual LeaveType = "annual"
	LeaveSick   LeaveType = "sick"
	LeaveUnpaid LeaveType = "unpaid"
	LeaveExcuse LeaveType = "excuse"
)

func (t LeaveType) Valid() bool {
	switch t {
	case LeaveAnnual, LeaveSick, LeaveUnpaid, LeaveExcuse:
		return true
	}
	return false
}

type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

// Attachment is one uploaded supporting file (report, petition...).
type Attachment struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	ObjectKey   string `json:"object_key"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
}

type LeaveRequestModel struct {
	LeaveRequestID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:leave_request_id" json:"leave_request_id"`
	LeaveRequestRegionID    uuid.UUID `gorm:"type:uuid;not null;index;column:leave_request_region_id"                 json:"leave_request_region_id"`
	LeaveRequestPersonnelID uuid.UUID `gorm:"type:uuid;not null;index;column:leave_request_personnel_id"              json:"leave_request_personnel_id"`

	LeaveRequestType      LeaveType   `gorm:"type:varchar(20);not null;column:leave_request_type"                      json:"leave_request_type"`
	LeaveRequestStartDate time.Time   `gorm:"type:date;not null;column:leave_request_start_date"                       json:"leave_request_start_date"`
	LeaveRequestEndDate   time.Time   `gorm:"type:date;not null;column:leave_request_end_date"                         json:"leave_request_end_date"`
	LeaveRequestDayCount  int         `gorm:"not null;column:leave_request_day_count"                                  json:"leave_request_day_count"`
	LeaveRequestReason    *string     `gorm:"type:text;column:leave_request_reason"                                    json:"leave_request_reason,omitempty"`
	LeaveRequestStatus    LeaveStatus `gorm:"type:varchar(20);not null;default:pending;index;column:leave_request_status" json:"leave_request_status"`

	LeaveRequestRequestedBy  *uuid.UUID `gorm:"type:uuid;column:leave_request_requested_by" json:"leave_request_requested_by,omitempty"`
	LeaveRequestDecidedBy    *uuid.UUID `gorm:"type:uuid;column:leave_request_decided_by"   json:"leave_request_decided_by,omitempty"`
	LeaveRequestDecidedAt    *time.Time `gorm:"column:leave_request_decided_at"             json:"leave_request_decided_at,omitempty"`
	LeaveRequestDecisionNote *string    `gorm:"type:text;column:leave_request_decision_note" json:"leave_request_decision_note,omitempty"`

	LeaveRequestAttachments datatypes.JSON `gorm:"type:jsonb;not null;default:'[]';column:leave_request_attachments" json:"leave_request_attachments"`

	LeaveRequestCreatedAt time.Time      `gorm:"column:leave_request_created_at;autoCreateTime" json:"leave_request_created_at"`
	LeaveRequestUpdatedAt time.Time      `gorm:"column:leave_request_updated_at;autoUpdateTime" json:"leave_request_updated_at"`
	LeaveRequestDeletedAt gorm.DeletedAt `gorm:"column:leave_request_deleted_at;index"          json:"leave_request_deleted_at,omitempty"`
}

func (LeaveRequestModel) TableName() string { return "leave_requests" }

// Attachments decodes the jsonb column; undecodable data reads as empty.
func (m *LeaveRequestModel) Attachments() []Attachment {
	out := []Attachment{}
	if len(m.LeaveRequestAttachments) == 0 {
		return out
	}
	if err := json.Unmarshal(m.LeaveRequestAttachments, &out); err != nil || out == nil {
		return []Attachment{}
	}
	return out
}

func MarshalAttachments(in []Attachment) datatypes.JSON {
	if in == nil {
		in = []Attachment{}
	}
	b, _ := json.Marshal(in)
	return datatypes.JSON(b)
}
