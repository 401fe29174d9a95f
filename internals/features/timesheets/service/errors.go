// file: internals/features/timesheets/service/errors.go
package service

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyStarted           = errors.New("timesheet month already started")
	ErrUnknownDate              = errors.New("date does not belong to this month")
	ErrUnknownTemplate          = errors.New("unknown template")
	ErrMonthNotFound            = errors.New("timesheet month not found")
	ErrMonthLocked              = errors.New("timesheet month is saved; reopen it before painting")
	ErrInvalidYearMonth         = errors.New("year_month must be YYYY-MM")
	ErrCorruptTemplatesSnapshot = errors.New("templates snapshot is corrupt")
	ErrInvalidTemplate          = errors.New("invalid template")
	ErrPersistence              = errors.New("persistence failure")
)

func persistErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrPersistence, op, err)
}
