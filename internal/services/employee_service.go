package services

import (
	"context"
	"errors"
	"time"

	"github.com/nimbushr/hrms/internal/models"
	mongorepo "github.com/nimbushr/hrms/internal/repositories/mongo"
	"github.com/nimbushr/hrms/internal/utils"
)

type EmployeeService interface {
	List(ctx context.Context, search string) ([]models.Employee, error)
	Update(ctx context.Context, id, name, email, role string, joinDate *time.Time) (*models.Employee, error)
	Delete(ctx context.Context, id string) error
}

type employeeService struct {
	employees mongorepo.EmployeeRepository
}

func NewEmployeeService(employees mongorepo.EmployeeRepository) EmployeeService {
	return &employeeService{employees: employees}
}

func (s *employeeService) List(ctx context.Context, search string) ([]models.Employee, error) {
	const op = "EmployeeService.List"

	out, err := s.employees.Search(ctx, search)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list employees", err)
	}
	return out, nil
}

func (s *employeeService) Update(ctx context.Context, id, name, email, role string, joinDate *time.Time) (*models.Employee, error) {
	const op = "EmployeeService.Update"

	oid, err := parseObjectID(id)
	if err != nil {
		return nil, utils.E(utils.CodeNotFound, op, "employee not found", err)
	}

	patch := &models.Employee{Name: name, Email: email, Role: role}
	if joinDate != nil {
		patch.JoinDate = *joinDate
	}

	e, err := s.employees.Update(ctx, oid, patch)
	if errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeNotFound, op, "employee not found", err)
	}
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update employee", err)
	}
	return e, nil
}

func (s *employeeService) Delete(ctx context.Context, id string) error {
	const op = "EmployeeService.Delete"

	oid, err := parseObjectID(id)
	if err != nil {
		return utils.E(utils.CodeNotFound, op, "employee not found", err)
	}

	if _, err := s.employees.FindByID(ctx, oid); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "employee not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to load employee", err)
	}

	if err := s.employees.Delete(ctx, oid); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to delete employee", err)
	}
	return nil
}
