package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/GraftonJ/repsy-be/internal/model"
	"github.com/GraftonJ/repsy-be/internal/repository"
)

var medicationInsertCols = []string{
	"generic_name", "brand_name", "pharma_company", "info", "photo",
}

type medicationRepository struct {
	crudRepository[model.Medication]
}

func NewMedicationRepository(db *sqlx.DB) repository.MedicationRepository {
	return &medicationRepository{
		crudRepository: newCRUDRepository[model.Medication](db, "meds", "medication", medicationInsertCols),
	}
}
