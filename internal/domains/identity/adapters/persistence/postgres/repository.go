package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/domain"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/ports"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/shared/apperrors"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists accounts in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// accountRecord maps the account aggregate to a relational table.
type accountRecord struct {
	UID          string    `gorm:"primaryKey;column:uid;size:64"`
	Email        string    `gorm:"column:email;uniqueIndex;size:320"`
	DisplayName  string    `gorm:"column:display_name"`
	PasswordHash []byte    `gorm:"column:password_hash"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (accountRecord) TableName() string { return "accounts" }

func (r *Repository) Create(ctx context.Context, account *domain.Account) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if account == nil {
		return errors.New("account is nil")
	}
	record := accountRecord{
		UID:          account.UID,
		Email:        account.Email,
		DisplayName:  account.DisplayName,
		PasswordHash: account.PasswordHash,
		CreatedAt:    account.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "duplicate key") {
			return ports.ErrEmailInUse
		}
		return apperrors.Network(err)
	}
	return nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *Repository) GetByUID(ctx context.Context, uid string) (*domain.Account, error) {
	return r.first(ctx, "uid = ?", uid)
}

func (r *Repository) first(ctx context.Context, query string, arg any) (*domain.Account, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record accountRecord
	if err := r.db.WithContext(ctx).First(&record, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, apperrors.Network(err)
	}
	return &domain.Account{
		UID:          record.UID,
		Email:        record.Email,
		DisplayName:  record.DisplayName,
		PasswordHash: record.PasswordHash,
		CreatedAt:    record.CreatedAt,
	}, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres account repository not configured")
	}
	return nil
}
