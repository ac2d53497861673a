package employee

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/employee"
	"github.com/go-chi/jwtauth/v5"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{employeeRepo: employeeRepo}
}

func companyIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}
	return companyID, nil
}

// Create implements employee.EmployeeService.
func (e *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	created, err := e.employeeRepo.Create(ctx, employee.Employee{
		CompanyID:      companyID,
		FullName:       req.FullName,
		Email:          req.Email,
		Position:       req.Position,
		SaturdayPolicy: req.SaturdayPolicy,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return mapEmployeeToResponse(created), nil
}

// List implements employee.EmployeeService.
func (e *EmployeeServiceImpl) List(ctx context.Context) ([]employee.EmployeeResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	employees, err := e.employeeRepo.List(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, len(employees))
	for i, emp := range employees {
		responses[i] = mapEmployeeToResponse(emp)
	}
	return responses, nil
}

// UpdateSaturdayPolicy implements employee.EmployeeService.
func (e *EmployeeServiceImpl) UpdateSaturdayPolicy(ctx context.Context, req employee.UpdateSaturdayPolicyRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := e.employeeRepo.UpdateSaturdayPolicy(ctx, req.ID, companyID, req.SaturdayPolicy); err != nil {
		return employee.EmployeeResponse{}, err
	}

	updated, err := e.employeeRepo.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return mapEmployeeToResponse(updated), nil
}

func mapEmployeeToResponse(emp employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:             emp.ID,
		FullName:       emp.FullName,
		Email:          emp.Email,
		Position:       emp.Position,
		SaturdayPolicy: emp.SaturdayPolicy,
	}
}
