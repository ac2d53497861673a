package employee

import "context"

// EmployeeService manages the employee roster and the per-employee Saturday
// policy the resolver reads.
type EmployeeService interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	List(ctx context.Context) ([]EmployeeResponse, error)
	UpdateSaturdayPolicy(ctx context.Context, req UpdateSaturdayPolicyRequest) (EmployeeResponse, error)
}
