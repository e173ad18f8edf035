package doctor

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/GraftonJ/repsy-be/internal/model"
	"github.com/GraftonJ/repsy-be/internal/repository"
	"github.com/GraftonJ/repsy-be/pkg/errors"
	"github.com/GraftonJ/repsy-be/pkg/security"
	"github.com/GraftonJ/repsy-be/pkg/token"
)

// Service carries the doctor CRUD flow plus the credential flow:
// registration hashes the password, login verifies it, both issue a
// signed login token.
type Service struct {
	repo    repository.DoctorRepository
	hasher  security.PasswordHasher
	issuer  *token.Issuer
	revoker token.Revoker
}

func NewService(repo repository.DoctorRepository, hasher security.PasswordHasher, issuer *token.Issuer, revoker token.Revoker) *Service {
	return &Service{repo: repo, hasher: hasher, issuer: issuer, revoker: revoker}
}

// Register creates a doctor and returns it with a logged-in token.
// Email uniqueness is enforced by the store; a duplicate surfaces as
// the conflict error.
func (s *Service) Register(ctx context.Context, req *model.CreateDoctorRequest) (*model.Doctor, string, error) {
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, "", errors.Internal(err)
	}

	doctor := &model.Doctor{
		Fname:         req.Fname,
		Lname:         req.Lname,
		SpecialtiesID: req.SpecialtiesID,
		NpiNum:        req.NpiNum,
		ClinicName:    req.ClinicName,
		ClinicAddress: req.ClinicAddress,
		City:          req.City,
		State:         req.State,
		Zip:           req.Zip,
		Email:         req.Email,
		PswdHash:      hash,
		Photo:         req.Photo,
	}

	inserted, err := s.repo.Insert(ctx, doctor)
	if err != nil {
		return nil, "", err
	}

	signed, err := s.issuer.Issue(inserted.ID, true)
	if err != nil {
		return nil, "", errors.Internal(err)
	}
	return inserted, signed, nil
}

// Login verifies the credentials and issues a logged-in token. Unknown
// email and bad password are distinct auth errors, as the API defines.
func (s *Service) Login(ctx context.Context, email, password string) (*model.Doctor, string, error) {
	doctor, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, "", errors.Auth("email not found")
		}
		return nil, "", err
	}

	if !s.hasher.Compare(doctor.PswdHash, password) {
		return nil, "", errors.Auth("incorrect password")
	}

	signed, err := s.issuer.Issue(doctor.ID, true)
	if err != nil {
		return nil, "", errors.Internal(err)
	}
	return doctor, signed, nil
}

// Logout revokes the presented token (if any) for the remainder of its
// lifetime and issues a fresh logged-out token.
func (s *Service) Logout(ctx context.Context, presented string) (string, error) {
	if presented != "" {
		if claims, err := s.issuer.Verify(presented); err == nil {
			ttl := time.Until(claims.ExpiresAt.Time)
			if err := s.revoker.Revoke(ctx, presented, ttl); err != nil {
				// Logout still succeeds; the token keeps its natural expiry.
				log.Warn().Err(err).Msg("failed to revoke token on logout")
			}
		}
	}

	signed, err := s.issuer.Issue(0, false)
	if err != nil {
		return "", errors.Internal(err)
	}
	return signed, nil
}

func (s *Service) List(ctx context.Context) ([]model.Doctor, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Doctor, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Exists(ctx context.Context, id int64) (bool, error) {
	return s.repo.Exists(ctx, id)
}

// Update applies an allow-listed patch. An empty projection is rejected
// before the store is touched, and updated_at is always server-assigned.
func (s *Service) Update(ctx context.Context, id int64, req *model.UpdateDoctorRequest) (*model.Doctor, error) {
	if req.Empty() {
		return nil, errors.Validation("empty or invalid patch request")
	}

	changes := req.Changes()
	if req.Password != nil {
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, errors.Internal(err)
		}
		changes["pswd_hash"] = hash
	}
	changes["updated_at"] = time.Now()

	return s.repo.Update(ctx, id, changes)
}

func (s *Service) Delete(ctx context.Context, id int64) (*model.Doctor, error) {
	return s.repo.Delete(ctx, id)
}
