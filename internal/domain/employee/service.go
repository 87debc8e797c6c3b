package employee

import (
	"context"
	"strings"
	"time"
)

type Service struct {
	repo Repository
	Now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, Now: time.Now}
}

func (s *Service) AddEmployee(ctx context.Context, e Employee) (Employee, error) {
	if strings.TrimSpace(e.Name) == "" {
		return Employee{}, ErrNameRequired
	}
	if e.BaseSalary != nil && *e.BaseSalary < 0 {
		return Employee{}, ErrNegativeSalary
	}
	if e.Variant == nil {
		e.Variant = Base{}
	}
	now := s.Now().UTC()
	e.ID = ""
	e.CreatedAt = now
	e.UpdatedAt = now
	return s.repo.Save(ctx, e)
}

func (s *Service) ViewEmployeeDetails(ctx context.Context, id string) (Employee, error) {
	if strings.TrimSpace(id) == "" {
		return Employee{}, ErrIDRequired
	}
	return s.repo.FindByID(ctx, id)
}

func (s *Service) ViewAllEmployees(ctx context.Context) ([]Employee, error) {
	return s.repo.FindAll(ctx)
}

// UpdateEmployee replaces the mutable fields of an existing employee. The
// variant tag is fixed at creation; only the payload of the same tag may change.
func (s *Service) UpdateEmployee(ctx context.Context, id string, updated Employee) (Employee, error) {
	existing, err := s.ViewEmployeeDetails(ctx, id)
	if err != nil {
		return Employee{}, err
	}
	if updated.Kind() != existing.Kind() {
		return Employee{}, ErrVariantChange
	}
	if strings.TrimSpace(updated.Name) == "" {
		return Employee{}, ErrNameRequired
	}
	if updated.BaseSalary != nil && *updated.BaseSalary < 0 {
		return Employee{}, ErrNegativeSalary
	}

	existing.Name = updated.Name
	existing.Department = updated.Department
	existing.BaseSalary = updated.BaseSalary
	existing.RoleType = updated.RoleType
	if updated.Variant != nil {
		existing.Variant = updated.Variant
	}
	existing.UpdatedAt = s.Now().UTC()
	return s.repo.Save(ctx, existing)
}

func (s *Service) DeleteEmployee(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrIDRequired
	}
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return NotFoundError(id)
	}
	return s.repo.DeleteByID(ctx, id)
}

func (s *Service) FindByDepartment(ctx context.Context, department string) ([]Employee, error) {
	if strings.TrimSpace(department) == "" {
		return nil, ErrDepartmentRequired
	}
	return s.repo.FindByDepartment(ctx, department)
}
