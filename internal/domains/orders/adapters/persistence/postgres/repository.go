package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/orders/domain"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/orders/ports"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/shared/apperrors"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// orderRecord maps the order aggregate to a relational table. The product
// columns are snapshots and carry no foreign key.
type orderRecord struct {
	ID            string          `gorm:"primaryKey;column:id;size:64"`
	ProductID     string          `gorm:"column:product_id;size:64"`
	ProductName   string          `gorm:"column:product_name"`
	Amount        decimal.Decimal `gorm:"column:amount;type:numeric(14,2)"`
	Quantity      int             `gorm:"column:quantity"`
	UserID        string          `gorm:"column:user_id;size:64;index"`
	UserName      string          `gorm:"column:user_name"`
	UserEmail     string          `gorm:"column:user_email"`
	ReceiverName  string          `gorm:"column:receiver_name"`
	Phone         string          `gorm:"column:phone"`
	Address       string          `gorm:"column:address"`
	UTR           string          `gorm:"column:utr"`
	ScreenshotURL string          `gorm:"column:screenshot_url"`
	Status        string          `gorm:"column:status;type:varchar(16);index"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
}

func (orderRecord) TableName() string { return "orders" }

// Save inserts or fully replaces an order.
func (r *Repository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(order)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&record).Error; err != nil {
		return nil, apperrors.Network(err)
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches an order by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, apperrors.Network(err)
	}
	return record.toDomain(), nil
}

// UpdateStatus performs a compare-and-set on the status column.
func (r *Repository) UpdateStatus(ctx context.Context, id string, from, to domain.Status) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Model(&orderRecord{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))
	if result.Error != nil {
		return apperrors.Network(result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&orderRecord{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return apperrors.Network(err)
	}
	if count == 0 {
		return ports.ErrNotFound
	}
	return ports.ErrStaleStatus
}

// Delete removes an order by identifier.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&orderRecord{}, "id = ?", id)
	if result.Error != nil {
		return apperrors.Network(result.Error)
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// ListByUser returns the user's orders in storage order.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	return r.find(ctx, "user_id = ?", userID)
}

// List returns all orders in storage order.
func (r *Repository) List(ctx context.Context) ([]*domain.Order, error) {
	return r.find(ctx)
}

func (r *Repository) find(ctx context.Context, conds ...any) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).Find(&records, conds...).Error; err != nil {
		return nil, apperrors.Network(err)
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(o *domain.Order) orderRecord {
	return orderRecord{
		ID:            o.ID,
		ProductID:     o.ProductID,
		ProductName:   o.ProductName,
		Amount:        o.Amount,
		Quantity:      o.Quantity,
		UserID:        o.UserID,
		UserName:      o.UserName,
		UserEmail:     o.UserEmail,
		ReceiverName:  o.ReceiverName,
		Phone:         o.Phone,
		Address:       o.Address,
		UTR:           o.UTR,
		ScreenshotURL: o.ScreenshotURL,
		Status:        string(o.Status),
		CreatedAt:     o.CreatedAt,
	}
}

func (r orderRecord) toDomain() *domain.Order {
	return &domain.Order{
		ID:            r.ID,
		ProductID:     r.ProductID,
		ProductName:   r.ProductName,
		Amount:        r.Amount,
		Quantity:      r.Quantity,
		UserID:        r.UserID,
		UserName:      r.UserName,
		UserEmail:     r.UserEmail,
		ReceiverName:  r.ReceiverName,
		Phone:         r.Phone,
		Address:       r.Address,
		UTR:           r.UTR,
		ScreenshotURL: r.ScreenshotURL,
		Status:        domain.Status(r.Status),
		CreatedAt:     r.CreatedAt.UTC(),
	}
}
