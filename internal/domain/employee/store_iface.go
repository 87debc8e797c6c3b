package employee

import "context"

// Repository owns identity and persistence of employees. FindByID returns an
// error matching apperr.ErrNotFound when the id does not resolve. Save inserts
// when the ID is empty (assigning one) and updates otherwise.
type Repository interface {
	FindByID(ctx context.Context, id string) (Employee, error)
	FindAll(ctx context.Context) ([]Employee, error)
	FindByDepartment(ctx context.Context, department string) ([]Employee, error)
	Save(ctx context.Context, e Employee) (Employee, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	DeleteByID(ctx context.Context, id string) error
}
