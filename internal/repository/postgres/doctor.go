package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/GraftonJ/repsy-be/internal/model"
	"github.com/GraftonJ/repsy-be/internal/repository"
	"github.com/GraftonJ/repsy-be/pkg/errors"
)

var doctorInsertCols = []string{
	"fname", "lname", "specialties_id", "npi_num",
	"clinic_name", "clinic_address", "city", "state", "zip",
	"email", "pswd_hash", "photo",
}

type doctorRepository struct {
	crudRepository[model.Doctor]
}

func NewDoctorRepository(db *sqlx.DB) repository.DoctorRepository {
	return &doctorRepository{
		crudRepository: newCRUDRepository[model.Doctor](db, "doctors", "doctor", doctorInsertCols),
	}
}

// Insert relies on the unique constraint on doctors.email: a violation
// becomes the conflict error, with no check-then-insert race.
func (r *doctorRepository) Insert(ctx context.Context, doctor *model.Doctor) (*model.Doctor, error) {
	inserted, err := r.crudRepository.Insert(ctx, doctor)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errors.Conflict("email already exists")
		}
		return nil, err
	}
	return inserted, nil
}

func (r *doctorRepository) Update(ctx context.Context, id int64, changes map[string]interface{}) (*model.Doctor, error) {
	updated, err := r.crudRepository.Update(ctx, id, changes)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errors.Conflict("email already exists")
		}
		return nil, err
	}
	return updated, nil
}

func (r *doctorRepository) GetByEmail(ctx context.Context, email string) (*model.Doctor, error) {
	query := `SELECT * FROM doctors WHERE email = $1`
	var doctor model.Doctor
	if err := r.db.GetContext(ctx, &doctor, query, email); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("doctor")
		}
		return nil, fmt.Errorf("failed to get doctor by email: %w", err)
	}
	return &doctor, nil
}
