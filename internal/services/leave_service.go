package services

import (
	"context"
	"errors"
	"time"

	"github.com/nimbushr/hrms/internal/files"
	"github.com/nimbushr/hrms/internal/models"
	mongorepo "github.com/nimbushr/hrms/internal/repositories/mongo"
	"github.com/nimbushr/hrms/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LeaveService interface {
	List(ctx context.Context, status string) ([]models.LeaveWithEmployee, error)
	Apply(ctx context.Context, employeeID, reason string, startDate, endDate time.Time, uploadedBy string, up *files.Upload) (*models.Leave, error)
	SetStatus(ctx context.Context, id, status string) (*models.Leave, error)
	// Document opens the supporting document. When the stored reference is
	// an external URL the redirect target is returned instead of content.
	Document(ctx context.Context, id string) (*files.Content, string, error)
}

type leaveService struct {
	leaves     mongorepo.LeaveRepository
	employees  mongorepo.EmployeeRepository
	attendance mongorepo.AttendanceRepository
	store      files.Store
}

func NewLeaveService(leaves mongorepo.LeaveRepository, employees mongorepo.EmployeeRepository, attendance mongorepo.AttendanceRepository, store files.Store) LeaveService {
	return &leaveService{leaves: leaves, employees: employees, attendance: attendance, store: store}
}

func (s *leaveService) List(ctx context.Context, status string) ([]models.LeaveWithEmployee, error) {
	const op = "LeaveService.List"

	leaves, err := s.leaves.List(ctx, status)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list leaves", err)
	}

	ids := make([]primitive.ObjectID, 0, len(leaves))
	seen := map[primitive.ObjectID]struct{}{}
	for _, l := range leaves {
		if _, ok := seen[l.EmployeeID]; !ok {
			seen[l.EmployeeID] = struct{}{}
			ids = append(ids, l.EmployeeID)
		}
	}

	byID, err := s.employees.FindByIDs(ctx, ids)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load employees", err)
	}

	out := make([]models.LeaveWithEmployee, 0, len(leaves))
	for _, l := range leaves {
		row := models.LeaveWithEmployee{Leave: l, EmployeeName: "Unknown", EmployeeEmail: "Unknown"}
		if e, ok := byID[l.EmployeeID]; ok {
			row.EmployeeName = e.Name
			row.EmployeeEmail = e.Email
		}
		out = append(out, row)
	}
	return out, nil
}

// Apply validates the leave window before touching storage: applying for
// today or the past is rejected, and a future leave requires the employee
// to be marked present today.
func (s *leaveService) Apply(ctx context.Context, employeeID, reason string, startDate, endDate time.Time, uploadedBy string, up *files.Upload) (*models.Leave, error) {
	const op = "LeaveService.Apply"

	if reason == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "reason is required", nil)
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

	today := dayOf(time.Now())
	start := dayOf(startDate)

	switch {
	case start.Equal(today):
		return nil, utils.E(utils.CodeInvalidArgument, op, "cannot apply for leave on the same day", nil)
	case start.Before(today):
		return nil, utils.E(utils.CodeInvalidArgument, op, "cannot apply for leave for past dates", nil)
	}

	att, err := s.attendance.FindByEmployeeAndDay(ctx, eid, today)
	if err != nil && !errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeInternal, op, "failed to check attendance", err)
	}
	if att == nil || att.Status != models.AttendancePresent {
		return nil, utils.E(utils.CodeInvalidArgument, op, "only present employees can apply for leave for future dates", nil)
	}

	docURL := ""
	if up != nil {
		up.Owner = ownerContext(map[string]string{"employee_id": eid.Hex()}, uploadedBy)
		id, err := s.store.Store(ctx, *up, files.LeaveDocumentPolicy)
		if err != nil {
			return nil, err
		}
		docURL = id
	}

	l := &models.Leave{
		EmployeeID: eid,
		Reason:     reason,
		StartDate:  start,
		EndDate:    dayOf(endDate),
		DocURL:     docURL,
	}
	if err := s.leaves.Insert(ctx, l); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create leave", err)
	}
	return l, nil
}

func (s *leaveService) SetStatus(ctx context.Context, id, status string) (*models.Leave, error) {
	const op = "LeaveService.SetStatus"

	switch status {
	case models.LeavePending, models.LeaveApproved, models.LeaveRejected:
	default:
		return nil, utils.E(utils.CodeInvalidArgument, op, "invalid leave status", nil)
	}

	l, err := s.get(ctx, op, id)
	if err != nil {
		return nil, err
	}

	if err := s.leaves.SetStatus(ctx, l.ID, status); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update leave status", err)
	}
	l.Status = status
	return l, nil
}

func (s *leaveService) Document(ctx context.Context, id string) (*files.Content, string, error) {
	const op = "LeaveService.Document"

	l, err := s.get(ctx, op, id)
	if err != nil {
		return nil, "", err
	}

	ref := files.ParseRef(l.DocURL)
	switch ref.Kind {
	case files.RefNone:
		return nil, "", utils.E(utils.CodeNotFound, op, "no document found for this leave", nil)
	case files.RefExternal:
		return nil, ref.URL, nil
	}

	content, err := s.store.Open(ctx, ref)
	if err != nil {
		return nil, "", err
	}
	return content, "", nil
}

func (s *leaveService) get(ctx context.Context, op, id string) (*models.Leave, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, utils.E(utils.CodeNotFound, op, "leave not found", err)
	}
	l, err := s.leaves.FindByID(ctx, oid)
	if errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeNotFound, op, "leave not found", err)
	}
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load leave", err)
	}
	return l, nil
}
