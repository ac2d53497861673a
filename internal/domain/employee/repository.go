package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id, companyID string) (Employee, error)
	List(ctx context.Context, companyID string) ([]Employee, error)
	UpdateSaturdayPolicy(ctx context.Context, id, companyID, policy string) error
}
