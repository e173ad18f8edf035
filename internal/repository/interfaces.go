package repository

import (
	"context"

	"github.com/GraftonJ/repsy-be/internal/model"
)

// CRUDRepository is the store gateway contract shared by every
// resource table: point reads by primary key and whole-row mutations.
type CRUDRepository[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id int64) (*T, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Insert(ctx context.Context, rec *T) (*T, error)
	Update(ctx context.Context, id int64, changes map[string]interface{}) (*T, error)
	Delete(ctx context.Context, id int64) (*T, error)
}

type DoctorRepository interface {
	CRUDRepository[model.Doctor]
	GetByEmail(ctx context.Context, email string) (*model.Doctor, error)
}

type MedicationRepository interface {
	CRUDRepository[model.Medication]
}
