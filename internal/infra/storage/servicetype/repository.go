package servicetype

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicService/pkg/psqlbuilder"
)

// Repository справочник услуг и их длительностей
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List возвращает все услуги, отсортированные по ключу
func (r *Repository) List(ctx context.Context) ([]*domain.ServiceType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("key", "name", "duration_minutes").
		From("service_types").
		OrderBy("key ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	serviceTypes := make([]*domain.ServiceType, 0)
	for rows.Next() {
		var st domain.ServiceType
		if err := rows.Scan(&st.Key, &st.Name, &st.DurationMinutes); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		serviceTypes = append(serviceTypes, &st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return serviceTypes, nil
}

// Catalog загружает справочник длительностей
func (r *Repository) Catalog(ctx context.Context) (domain.DurationCatalog, error) {
	serviceTypes, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.NewDurationCatalog(serviceTypes), nil
}
