package catalog

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/internal/service/catalog/models"
)

// Service сервис справочников: ресурсы, услуги, сетка приема
type Service struct {
	resourceRepo    ResourceRepository
	serviceTypeRepo ServiceTypeRepository
	settings        domain.ScheduleSettings
	logger          Logger
}

// NewService создает новый экземпляр сервиса справочников
func NewService(
	resourceRepo ResourceRepository,
	serviceTypeRepo ServiceTypeRepository,
	settings domain.ScheduleSettings,
	logger Logger,
) *Service {
	return &Service{
		resourceRepo:    resourceRepo,
		serviceTypeRepo: serviceTypeRepo,
		settings:        settings,
		logger:          logger,
	}
}

// Get возвращает справочники
// includeInactive показывает выведенные из работы ресурсы (только для сотрудников)
func (s *Service) Get(ctx context.Context, includeInactive bool) (*models.CatalogResponse, error) {
	resources, err := s.resourceRepo.List(ctx, includeInactive)
	if err != nil {
		s.logger.Error("Get: failed to list resources: %v", err)
		return nil, fmt.Errorf("%w: Get - failed to list resources: %v", ErrInternal, err)
	}

	serviceTypes, err := s.serviceTypeRepo.List(ctx)
	if err != nil {
		s.logger.Error("Get: failed to list service types: %v", err)
		return nil, fmt.Errorf("%w: Get - failed to list service types: %v", ErrInternal, err)
	}

	return &models.CatalogResponse{
		Resources:    models.FromDomainResources(resources),
		ServiceTypes: models.FromDomainServiceTypes(serviceTypes),
		Schedule:     models.FromScheduleSettings(s.settings),
	}, nil
}
