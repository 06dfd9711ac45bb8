package employees_test

import (
	"context"
	"sort"
	"sync"

	"github.com/apiempleados/api-empleados/internal/employees"
	"github.com/apiempleados/api-empleados/internal/shared"
	_ "github.com/apiempleados/api-empleados/testing"
)

type stubRepo struct {
	mu      sync.Mutex
	nextID  int64
	items   map[int64]employees.Employee
	listErr error
}

func newStubRepo() *stubRepo {
	return &stubRepo{items: make(map[int64]employees.Employee)}
}

func (s *stubRepo) List(ctx context.Context, filter employees.ListFilter) ([]employees.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]employees.Employee, 0, len(s.items))
	for _, emp := range s.items {
		if filter.Department != "" && emp.Department != filter.Department {
			continue
		}
		out = append(out, emp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubRepo) Get(ctx context.Context, id int64) (*employees.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	emp, ok := s.items[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &emp, nil
}

func (s *stubRepo) Create(ctx context.Context, emp employees.Employee) (*employees.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.items {
		if existing.Email == emp.Email {
			return nil, shared.ErrDuplicateEmail
		}
	}
	s.nextID++
	emp.ID = s.nextID
	s.items[emp.ID] = emp
	return &emp, nil
}

func (s *stubRepo) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return shared.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *stubRepo) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
