package employees

import (
	"context"
	"fmt"

	"github.com/apiempleados/api-empleados/internal/shared"
)

// Service orchestrates employee use cases.
type Service struct {
	repo      Repository
	validator *shared.Validator
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, validator: shared.NewValidator()}
}

// List returns employees matching filter.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Employee, error) {
	return s.repo.List(ctx, filter)
}

// Get returns a single employee.
func (s *Service) Get(ctx context.Context, id int64) (*Employee, error) {
	if id <= 0 {
		return nil, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

// Create validates req and stores the new employee.
func (s *Service) Create(ctx context.Context, req CreateEmployeeRequest) (*Employee, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	emp, err := req.toEmployee()
	if err != nil {
		return nil, fmt.Errorf("employees: hired_at: %w", err)
	}
	return s.repo.Create(ctx, emp)
}

// Delete removes an employee.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}
