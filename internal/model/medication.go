package model

import "time"

// Medication is a reference record. No uniqueness is enforced.
type Medication struct {
	ID            int64     `db:"id" json:"id"`
	GenericName   string    `db:"generic_name" json:"generic_name"`
	BrandName     string    `db:"brand_name" json:"brand_name"`
	PharmaCompany *string   `db:"pharma_company" json:"pharma_company,omitempty"`
	Info          *string   `db:"info" json:"info,omitempty"`
	Photo         *string   `db:"photo" json:"photo,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

type CreateMedicationRequest struct {
	GenericName   string  `json:"generic_name" binding:"required"`
	BrandName     string  `json:"brand_name" binding:"required"`
	PharmaCompany *string `json:"pharma_company"`
	Info          *string `json:"info"`
	Photo         *string `json:"photo"`
}

// UpdateMedicationRequest is the medication patch allow-list.
type UpdateMedicationRequest struct {
	GenericName   *string `json:"generic_name"`
	BrandName     *string `json:"brand_name"`
	PharmaCompany *string `json:"pharma_company"`
	Info          *string `json:"info"`
	Photo         *string `json:"photo"`
}

func (r *UpdateMedicationRequest) Changes() map[string]interface{} {
	ch := make(map[string]interface{})
	if r.GenericName != nil {
		ch["generic_name"] = *r.GenericName
	}
	if r.BrandName != nil {
		ch["brand_name"] = *r.BrandName
	}
	if r.PharmaCompany != nil {
		ch["pharma_company"] = *r.PharmaCompany
	}
	if r.Info != nil {
		ch["info"] = *r.Info
	}
	if r.Photo != nil {
		ch["photo"] = *r.Photo
	}
	return ch
}

func (r *UpdateMedicationRequest) Empty() bool {
	return len(r.Changes()) == 0
}
