package productionrepo

import (
	"context"
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/production"
	"production/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// queueLockID keys the transaction-scoped advisory lock that serializes
// queue shape changes (admissions and re-indexing).
const queueLockID int64 = 0x70726F6471 // "prodq"

// GormProductionRepository implements ProductionRepository using GORM.
type GormProductionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.OrderID, aggregate any)
}

// NewGormProductionRepository creates a new GORM production repository.
func NewGormProductionRepository(db *gorm.DB, tracker aggregateTracker) *GormProductionRepository {
	return &GormProductionRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new production record to the database.
func (r *GormProductionRepository) Add(ctx context.Context, aggregate *production.Production) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.OrderID(), aggregate)
	return nil
}

// Update saves an existing production record to the database.
// Writes every column so released queue positions and cleared timestamps
// persist as NULL.
func (r *GormProductionRepository) Update(ctx context.Context, aggregate *production.Production) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ProductionDTO{}).
		Where("order_id = ?", dto.OrderID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.OrderID(), aggregate)
	return nil
}

// GetByOrderID retrieves the production record for an order.
// Within a transaction the row is locked for update until commit, so
// concurrent transitions on the same order serialize and each validates
// against the previously committed status.
func (r *GormProductionRepository) GetByOrderID(
	ctx context.Context,
	orderID kernel.OrderID,
) (*production.Production, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto ProductionDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "order_id = ?", orderID.Value()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderId", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ExistsByOrderID reports whether a production record exists for the order.
func (r *GormProductionRepository) ExistsByOrderID(ctx context.Context, orderID kernel.OrderID) (bool, error) {
	if err := orderID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&ProductionDTO{}).
		Where("order_id = ?", orderID.Value()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// CountByStatusIn counts records whose status is in the given set.
func (r *GormProductionRepository) CountByStatusIn(
	ctx context.Context,
	statuses []production.Status,
) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&ProductionDTO{}).
		Where("status IN ?", statusValues(statuses)).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

// GetAllByStatusIn retrieves all records whose status is in the given set.
func (r *GormProductionRepository) GetAllByStatusIn(
	ctx context.Context,
	statuses []production.Status,
) ([]*production.Production, error) {
	var dtos []ProductionDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "status IN ?", statusValues(statuses)).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// LockQueue takes the transaction-scoped advisory lock serializing queue
// shape changes. Admission and queue re-indexing take it first thing, so
// concurrent runs cannot compute positions from the same snapshot. Released
// automatically on commit or rollback.
func (r *GormProductionRepository) LockQueue(ctx context.Context) error {
	return r.db.WithContext(ctx).Exec("SELECT pg_advisory_xact_lock(?)", queueLockID).Error
}

// GetByStatusOrderedByStartedAt retrieves all records in the given status
// ordered by startedAt ascending. The rows are locked for update so the
// re-index rewrite cannot race a concurrent transition on one of them.
func (r *GormProductionRepository) GetByStatusOrderedByStartedAt(
	ctx context.Context,
	status production.Status,
) ([]*production.Production, error) {
	var dtos []ProductionDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("status = ?", int(status)).
		Order("started_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func statusValues(statuses []production.Status) []int {
	values := make([]int, 0, len(statuses))
	for _, status := range statuses {
		values = append(values, int(status))
	}
	return values
}

func toDomainSlice(dtos []ProductionDTO) ([]*production.Production, error) {
	records := make([]*production.Production, 0, len(dtos))
	for _, dto := range dtos {
		record, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}
