package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           int64   `json:"id"`
	Username     string  `json:"username"`
	PasswordHash string  `json:"-"`
	AvatarURL    *string `json:"avatarUrl"`
}

type Admin struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

type Product struct {
	ID          int64               `json:"id"`
	Title       string              `json:"title"`
	Description *string             `json:"description"`
	Image       *string             `json:"image"`
	Price       decimal.NullDecimal `json:"price"`
	Category    *string             `json:"category"`
	Rating      decimal.NullDecimal `json:"rating"`
	Stock       int                 `json:"stock"`
}

// Review rows come back joined with the reviewing user, and (for the
// per-user listing) the reviewed product's title. ProductTitle stays nil
// when the product has since been deleted.
type Review struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Username     string    `json:"username"`
	AvatarURL    *string   `json:"avatar_url"`
	ProductID    int64     `json:"product_id"`
	ProductTitle *string   `json:"productTitle,omitempty"`
	Rating       int       `json:"rating"`
	CommentText  *string   `json:"comment_text"`
	CreatedAt    time.Time `json:"created_at"`
}

// OrderLine is one entry of the snapshot captured at checkout. The
// snapshot is a point-in-time copy: later product edits or deletions
// never touch it.
type OrderLine struct {
	ProductID int64           `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type Order struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	Items       []OrderLine     `json:"order_details"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

type News struct {
	ID             int64   `json:"id"`
	Image          *string `json:"image"`
	NewsImage      *string `json:"newsImage"`
	NewsTitle      string  `json:"newsTitle"`
	NewsCategories *string `json:"newsCategories"`
	Time           *string `json:"time"`
	Date           *string `json:"date"`
	Color          *string `json:"color"`
	Description    *string `json:"description"`
}

// Status is free text end to end; this is only the value new orders
// start with.
const OrderStatusPendingPayment = "pending payment"
