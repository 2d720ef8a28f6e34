package services

import (
	"context"
	"errors"
	"time"

	"github.com/nimbushr/hrms/internal/models"
	mongorepo "github.com/nimbushr/hrms/internal/repositories/mongo"
	"github.com/nimbushr/hrms/internal/utils"
)

type AttendanceService interface {
	List(ctx context.Context, day *time.Time) ([]models.Attendance, error)
	CurrentEmployees(ctx context.Context) ([]models.Employee, error)
	Record(ctx context.Context, employeeID string, date time.Time, status string) (*models.Attendance, error)
}

type attendanceService struct {
	attendance mongorepo.AttendanceRepository
	employees  mongorepo.EmployeeRepository
}

func NewAttendanceService(attendance mongorepo.AttendanceRepository, employees mongorepo.EmployeeRepository) AttendanceService {
	return &attendanceService{attendance: attendance, employees: employees}
}

func (s *attendanceService) List(ctx context.Context, day *time.Time) ([]models.Attendance, error) {
	const op = "AttendanceService.List"

	var (
		out []models.Attendance
		err error
	)
	if day != nil {
		out, err = s.attendance.ListByDay(ctx, dayOf(*day))
	} else {
		out, err = s.attendance.ListAll(ctx)
	}
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list attendance", err)
	}
	return out, nil
}

func (s *attendanceService) CurrentEmployees(ctx context.Context) ([]models.Employee, error) {
	const op = "AttendanceService.CurrentEmployees"

	out, err := s.employees.ListByName(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list employees", err)
	}
	return out, nil
}

// Record upserts the single attendance record an employee has per day.
func (s *attendanceService) Record(ctx context.Context, employeeID string, date time.Time, status string) (*models.Attendance, error) {
	const op = "AttendanceService.Record"

	if status != models.AttendancePresent && status != models.AttendanceAbsent {
		return nil, utils.E(utils.CodeInvalidArgument, op, "status must be present or absent", nil)
	}

	eid, err := parseObjectID(employeeID)
	if err != nil {
		return nil, utils.E(utils.CodeNotFound, op, "employee not found", err)
	}
	if _, err := s.employees.FindByID(ctx, eid); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "employee not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load employee", err)
	}

	day := dayOf(date)
	existing, err := s.attendance.FindByEmployeeAndDay(ctx, eid, day)
	if err != nil && !errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeInternal, op, "failed to look up attendance", err)
	}

	if existing != nil {
		if err := s.attendance.SetStatus(ctx, existing.ID, status); err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to update attendance", err)
		}
		existing.Status = status
		return existing, nil
	}

	a := &models.Attendance{EmployeeID: eid, Date: day, Status: status}
	if err := s.attendance.Insert(ctx, a); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to record attendance", err)
	}
	return a, nil
}
