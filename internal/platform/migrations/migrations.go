package migrations

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Adapters never automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&productRecord{},
		&orderRecord{},
		&orderIdempotencyRecord{},
		&accountRecord{},
		&sessionRecord{},
	)
}

// Product schema mirrors the catalog Postgres adapter.
type productRecord struct {
	ID          string          `gorm:"primaryKey;column:id;size:64"`
	Name        string          `gorm:"column:name"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(14,2)"`
	Description string          `gorm:"column:description"`
	Images      pq.StringArray  `gorm:"column:images;type:text[]"`
	Tags        pq.StringArray  `gorm:"column:tags;type:text[]"`
	QRCodeURL   string          `gorm:"column:qr_code_url"`
	CreatedAt   time.Time       `gorm:"column:created_at;index"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Order schema mirrors the orders Postgres adapter. product_id has no foreign key.
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

// Checkout key schema mirrors the orders idempotency store.
type orderIdempotencyRecord struct {
	Key         string    `gorm:"primaryKey;column:key;size:320"`
	RequestHash string    `gorm:"column:request_hash;size:64;not null"`
	OrderID     string    `gorm:"column:order_id;size:64;not null"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (orderIdempotencyRecord) TableName() string { return "order_idempotency_keys" }

// Account schema mirrors the identity Postgres adapter.
type accountRecord struct {
	UID          string    `gorm:"primaryKey;column:uid;size:64"`
	Email        string    `gorm:"column:email;uniqueIndex;size:320"`
	DisplayName  string    `gorm:"column:display_name"`
	PasswordHash []byte    `gorm:"column:password_hash"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (accountRecord) TableName() string { return "accounts" }

// Session schema mirrors the identity session store.
type sessionRecord struct {
	ID        string    `gorm:"primaryKey;column:id;size:64"`
	UID       string    `gorm:"column:uid;index;size:64"`
	ExpiresAt time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (sessionRecord) TableName() string { return "identity_sessions" }
