package medication

import (
	"context"
	"time"

	"github.com/GraftonJ/repsy-be/internal/model"
	"github.com/GraftonJ/repsy-be/internal/repository"
	"github.com/GraftonJ/repsy-be/pkg/errors"
)

type Service struct {
	repo repository.MedicationRepository
}

func NewService(repo repository.MedicationRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req *model.CreateMedicationRequest) (*model.Medication, error) {
	med := &model.Medication{
		GenericName:   req.GenericName,
		BrandName:     req.BrandName,
		PharmaCompany: req.PharmaCompany,
		Info:          req.Info,
		Photo:         req.Photo,
	}
	return s.repo.Insert(ctx, med)
}

func (s *Service) List(ctx context.Context) ([]model.Medication, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Medication, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Exists(ctx context.Context, id int64) (bool, error) {
	return s.repo.Exists(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, req *model.UpdateMedicationRequest) (*model.Medication, error) {
	if req.Empty() {
		return nil, errors.Validation("empty or invalid patch request")
	}

	changes := req.Changes()
	changes["updated_at"] = time.Now()

	return s.repo.Update(ctx, id, changes)
}

func (s *Service) Delete(ctx context.Context, id int64) (*model.Medication, error) {
	return s.repo.Delete(ctx, id)
}
