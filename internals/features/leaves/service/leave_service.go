// file: internals/features/leaves/service/leave_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"personel_backend/internals/features/leaves/model"
	"personel_backend/internals/features/leaves/repository"
	"personel_backend/internals/helpers/dbtime"
)

var (
	ErrLeaveNotFound     = errors.New("leave request not found")
	ErrNotPending        = errors.New("leave request has already been decided")
	ErrInvalidRange      = errors.New("end_date must not be before start_date")
	ErrRangeTooLong      = errors.New("leave may span at most 366 days")
	ErrInvalidLeaveType  = errors.New("leave_type must be one of annual, sick, unpaid, excuse")
	ErrPersonnelNotFound = errors.New("personnel not found in this region")
	ErrOverlap           = errors.New("personnel already has leave in this period")
)

const maxLeaveDays = 366

type Store interface {
	PersonnelRegion(ctx context.Context, personnelID uuid.UUID) (uuid.UUID, bool, error)
	HasOverlap(ctx context.Context, personnelID uuid.UUID, start, end time.Time) (bool, error)
	Insert(ctx context.Context, row *model.LeaveRequestModel) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.LeaveRequestModel, error)
	List(ctx context.Context, f repository.ListFilter) ([]model.LeaveRequestModel, int64, error)
	Decide(ctx context.Context, id uuid.UUID, d repository.Decision) (bool, error)
	DeletePending(ctx context.Context, id uuid.UUID) (bool, error)
}

type LeaveService struct {
	Store Store
	Now   func() time.Time
}

func NewLeaveService(store Store) *LeaveService {
	return &LeaveService{Store: store, Now: time.Now}
}

type CreateInput struct {
	PersonnelID uuid.UUID
	Type        model.LeaveType
	StartDate   string // YYYY-MM-DD
	EndDate     string
	Reason      *string
	RequestedBy *uuid.UUID
	Attachments []model.Attachment
}

// Create validates the range and stores a pending request. day_count is
// the inclusive calendar day count.
func (s *LeaveService) Create(ctx context.Context, regionID uuid.UUID, in CreateInput) (*model.LeaveRequestModel, error) {
	if !in.Type.Valid() {
		return nil, ErrInvalidLeaveType
	}
	start, err := dbtime.ParseDate(in.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start_date %q", ErrInvalidRange, in.StartDate)
	}
	end, err := dbtime.ParseDate(in.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: end_date %q", ErrInvalidRange, in.EndDate)
	}
	if end.Before(start) {
		return nil, ErrInvalidRange
	}
	days := dbtime.InclusiveDays(start, end)
	if days > maxLeaveDays {
		return nil, ErrRangeTooLong
	}

	owner, ok, err := s.Store.PersonnelRegion(ctx, in.PersonnelID)
	if err != nil {
		return nil, err
	}
	if !ok || owner != regionID {
		return nil, ErrPersonnelNotFound
	}
	overlap, err := s.Store.HasOverlap(ctx, in.PersonnelID, start, end)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, ErrOverlap
	}

	row := &model.LeaveRequestModel{
		LeaveRequestRegionID:    regionID,
		LeaveRequestPersonnelID: in.PersonnelID,
		LeaveRequestType:        in.Type,
		LeaveRequestStartDate:   start,
		LeaveRequestEndDate:     end,
		LeaveRequestDayCount:    days,
		LeaveRequestReason:      trimOrNil(in.Reason),
		LeaveRequestStatus:      model.LeavePending,
		LeaveRequestRequestedBy: in.RequestedBy,
		LeaveRequestAttachments: model.MarshalAttachments(in.Attachments),
	}
	if err := s.Store.Insert(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *LeaveService) Get(ctx context.Context, id uuid.UUID) (*model.LeaveRequestModel, error) {
	row, err := s.Store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrLeaveNotFound
	}
	return row, nil
}

func (s *LeaveService) List(ctx context.Context, f repository.ListFilter) ([]model.LeaveRequestModel, int64, error) {
	return s.Store.List(ctx, f)
}

func (s *LeaveService) Approve(ctx context.Context, id, by uuid.UUID, note *string) (*model.LeaveRequestModel, error) {
	return s.decide(ctx, id, model.LeaveApproved, by, note)
}

func (s *LeaveService) Reject(ctx context.Context, id, by uuid.UUID, note *string) (*model.LeaveRequestModel, error) {
	return s.decide(ctx, id, model.LeaveRejected, by, note)
}

// decide: pending → approved | rejected. Any other starting state fails
// with ErrNotPending, including losing a race to a concurrent decision.
func (s *LeaveService) decide(ctx context.Context, id uuid.UUID, status model.LeaveStatus, by uuid.UUID, note *string) (*model.LeaveRequestModel, error) {
	row, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if row.LeaveRequestStatus != model.LeavePending {
		return nil, ErrNotPending
	}
	d := repository.Decision{Status: status, DecidedBy: by, DecidedAt: s.Now(), Note: trimOrNil(note)}
	ok, err := s.Store.Decide(ctx, id, d)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotPending
	}
	row.LeaveRequestStatus = d.Status
	row.LeaveRequestDecidedBy = &d.DecidedBy
	row.LeaveRequestDecidedAt = &d.DecidedAt
	row.LeaveRequestDecisionNote = d.Note
	return row, nil
}

// Delete withdraws a request; only pending ones may be deleted.
func (s *LeaveService) Delete(ctx context.Context, id uuid.UUID) (*model.LeaveRequestModel, error) {
	row, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if row.LeaveRequestStatus != model.LeavePending {
		return nil, ErrNotPending
	}
	ok, err := s.Store.DeletePending(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotPending
	}
	return row, nil
}

func trimOrNil(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.TrimSpace(*p)
	if s == "" {
		return nil
	}
	return &s
}
