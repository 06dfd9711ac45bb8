package employees

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/apiempleados/api-empleados/internal/platform/db"
	"github.com/apiempleados/api-empleados/internal/shared"
)

// Repository defines persistence operations for employees.
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Employee, error)
	Get(ctx context.Context, id int64) (*Employee, error)
	Create(ctx context.Context, emp Employee) (*Employee, error)
	Delete(ctx context.Context, id int64) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	db db.Querier
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(q db.Querier) *PGRepository {
	return &PGRepository{db: q}
}

const employeeColumns = `id, first_name, last_name, email, department, position, hired_at, created_at`

func scanEmployee(row pgx.Row) (*Employee, error) {
	var (
		emp     Employee
		hiredAt *time.Time
	)
	if err := row.Scan(&emp.ID, &emp.FirstName, &emp.LastName, &emp.Email, &emp.Department, &emp.Position, &hiredAt, &emp.CreatedAt); err != nil {
		return nil, err
	}
	emp.HiredAt = hiredAt
	return &emp, nil
}

// List returns employees ordered by id, optionally restricted to a department.
func (r *PGRepository) List(ctx context.Context, filter ListFilter) ([]Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees`
	var args []any
	if filter.Department != "" {
		query += ` WHERE department = $1`
		args = append(args, filter.Department)
	}
	query += ` ORDER BY id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("employees: list: %w", err)
	}
	defer rows.Close()

	out := make([]Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("employees: scan: %w", err)
		}
		out = append(out, *emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("employees: list: %w", err)
	}
	return out, nil
}

// Get fetches one employee. Missing rows yield shared.ErrNotFound.
func (r *PGRepository) Get(ctx context.Context, id int64) (*Employee, error) {
	emp, err := scanEmployee(r.db.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("employees: get: %w", err)
	}
	return emp, nil
}

// Create inserts emp and returns the stored row. A unique violation on email
// yields shared.ErrDuplicateEmail.
func (r *PGRepository) Create(ctx context.Context, emp Employee) (*Employee, error) {
	const query = `INSERT INTO employees (first_name, last_name, email, department, position, hired_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + employeeColumns
	created, err := scanEmployee(r.db.QueryRow(ctx, query, emp.FirstName, emp.LastName, emp.Email, emp.Department, emp.Position, emp.HiredAt))
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, shared.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("employees: create: %w", err)
	}
	return created, nil
}

// Delete removes an employee. Missing rows yield shared.ErrNotFound.
func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("employees: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
