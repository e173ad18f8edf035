package model

import "time"

// Doctor is a practitioner record. The password hash is stored but
// never serialized in responses.
type Doctor struct {
	ID            int64     `db:"id" json:"id"`
	Fname         string    `db:"fname" json:"fname"`
	Lname         string    `db:"lname" json:"lname"`
	SpecialtiesID int64     `db:"specialties_id" json:"specialties_id"`
	NpiNum        string    `db:"npi_num" json:"npi_num"`
	ClinicName    *string   `db:"clinic_name" json:"clinic_name,omitempty"`
	ClinicAddress *string   `db:"clinic_address" json:"clinic_address,omitempty"`
	City          *string   `db:"city" json:"city,omitempty"`
	State         *string   `db:"state" json:"state,omitempty"`
	Zip           int64     `db:"zip" json:"zip"`
	Email         string    `db:"email" json:"email"`
	PswdHash      string    `db:"pswd_hash" json:"-"`
	Photo         *string   `db:"photo" json:"photo,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

type CreateDoctorRequest struct {
	Fname         string  `json:"fname" binding:"required"`
	Lname         string  `json:"lname" binding:"required"`
	SpecialtiesID int64   `json:"specialties_id" binding:"required"`
	NpiNum        string  `json:"npi_num" binding:"required"`
	ClinicName    *string `json:"clinic_name"`
	ClinicAddress *string `json:"clinic_address"`
	City          *string `json:"city"`
	State         *string `json:"state"`
	Zip           int64   `json:"zip" binding:"required"`
	Email         string  `json:"email" binding:"required,email"`
	Password      string  `json:"password" binding:"required"`
	Photo         *string `json:"photo"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateDoctorRequest is the doctor patch allow-list. Set fields are
// applied; everything else in the payload is dropped at decode time.
// A raw password is accepted and hashed by the service, never stored
// as sent.
type UpdateDoctorRequest struct {
	Fname         *string `json:"fname"`
	Lname         *string `json:"lname"`
	SpecialtiesID *int64  `json:"specialties_id"`
	NpiNum        *string `json:"npi_num"`
	ClinicName    *string `json:"clinic_name"`
	ClinicAddress *string `json:"clinic_address"`
	City          *string `json:"city"`
	State         *string `json:"state"`
	Zip           *int64  `json:"zip"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Password      *string `json:"password"`
	Photo         *string `json:"photo"`
}

// Changes projects the patch onto store columns. The password is
// excluded here; the service hashes it into pswd_hash.
func (r *UpdateDoctorRequest) Changes() map[string]interface{} {
	ch := make(map[string]interface{})
	if r.Fname != nil {
		ch["fname"] = *r.Fname
	}
	if r.Lname != nil {
		ch["lname"] = *r.Lname
	}
	if r.SpecialtiesID != nil {
		ch["specialties_id"] = *r.SpecialtiesID
	}
	if r.NpiNum != nil {
		ch["npi_num"] = *r.NpiNum
	}
	if r.ClinicName != nil {
		ch["clinic_name"] = *r.ClinicName
	}
	if r.ClinicAddress != nil {
		ch["clinic_address"] = *r.ClinicAddress
	}
	if r.City != nil {
		ch["city"] = *r.City
	}
	if r.State != nil {
		ch["state"] = *r.State
	}
	if r.Zip != nil {
		ch["zip"] = *r.Zip
	}
	if r.Email != nil {
		ch["email"] = *r.Email
	}
	if r.Photo != nil {
		ch["photo"] = *r.Photo
	}
	return ch
}

// Empty reports whether the patch carries no applicable field.
func (r *UpdateDoctorRequest) Empty() bool {
	return len(r.Changes()) == 0 && r.Password == nil
}
