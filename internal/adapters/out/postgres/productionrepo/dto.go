// Package productionrepo provides data transfer objects and mapping functions
// for production record persistence. This package implements the repository
// pattern for the production aggregate, handling the conversion between the
// domain model and its database representation.
package productionrepo

import (
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/production"
)

// ProductionDTO represents the database structure for persisting production
// records. The order id itself is the primary key: production tracks at most
// one record per order. Status and startedAt are indexed for the queue view
// and re-index queries.
type ProductionDTO struct {
	OrderID       int64 `gorm:"primaryKey;autoIncrement:false"`
	CustomerName  string
	Status        int `gorm:"index"`
	QueuePosition *int
	StartedAt     time.Time `gorm:"index"`
	// The domain stamps updatedAt only on status transitions; GORM's
	// auto-stamping would overwrite it on every write.
	UpdatedAt   *time.Time `gorm:"autoUpdateTime:false"`
	FinishedAt  *time.Time
	DeliveredAt *time.Time
}

// TableName specifies the database table name for production records.
// Overrides GORM's default naming convention to use "production_orders".
func (ProductionDTO) TableName() string {
	return "production_orders"
}

// fromDomain converts a production aggregate to its database representation.
func fromDomain(record *production.Production) ProductionDTO {
	return ProductionDTO{
		OrderID:       record.OrderID().Value(),
		CustomerName:  record.CustomerName(),
		Status:        int(record.Status()),
		QueuePosition: record.QueuePosition(),
		StartedAt:     record.StartedAt(),
		UpdatedAt:     record.UpdatedAt(),
		FinishedAt:    record.FinishedAt(),
		DeliveredAt:   record.DeliveredAt(),
	}
}

// toDomain converts a database DTO to a production aggregate using
// RestoreProduction.
func toDomain(dto ProductionDTO) (*production.Production, error) {
	orderID, err := kernel.NewOrderID(dto.OrderID)
	if err != nil {
		return nil, err
	}

	return production.RestoreProduction(
		orderID,
		dto.CustomerName,
		production.Status(dto.Status),
		dto.QueuePosition,
		dto.StartedAt,
		dto.UpdatedAt,
		dto.FinishedAt,
		dto.DeliveredAt,
	)
}
