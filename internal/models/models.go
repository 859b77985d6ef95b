package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Customer struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"   json:"id"`
	FirstName   string `gorm:"size:50;not null"           json:"first_name"`
	LastName    string `gorm:"size:50;not null"           json:"last_name"`
	Email       string `gorm:"size:255;not null"          json:"email"`
	PhoneNumber string `gorm:"size:30"                    json:"phone_number"`
}

type Restaurant struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name         string `gorm:"size:100;not null"         json:"name"`
	Address      string `gorm:"not null"                  json:"address"`
	PhoneNumber  string `gorm:"size:30;not null"          json:"phone_number"`
	OpeningHours string `json:"opening_hours"`
}

// Table keeps RestaurantID nullable: a table can exist before it is
// assigned to a restaurant.
type Table struct {
	ID           uint  `gorm:"primaryKey;autoIncrement"   json:"id"`
	RestaurantID *uint `gorm:"index"                      json:"restaurant_id"`
	Capacity     int   `gorm:"not null;check:capacity>0"  json:"capacity"`
}

type Employee struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"  json:"id"`
	RestaurantID uint   `gorm:"index;not null"            json:"restaurant_id"`
	FirstName    string `gorm:"size:50;not null"          json:"first_name"`
	LastName     string `gorm:"size:50;not null"          json:"last_name"`
	Position     string `gorm:"size:50;not null"          json:"position"`
}

type Reservation struct {
	ID              uint      `gorm:"primaryKey;autoIncrement"    json:"id"`
	CustomerID      uint      `gorm:"index;not null"              json:"customer_id"`
	RestaurantID    uint      `gorm:"index;not null"              json:"restaurant_id"`
	TableID         uint      `gorm:"index;not null"              json:"table_id"`
	ReservationDate time.Time `gorm:"not null"                    json:"reservation_date"`
	PartySize       int       `gorm:"not null;check:party_size>0" json:"party_size"`
}

// Order.TotalAmount is derived state, kept consistent with the order's
// items by repository.OrderItemRepo after every item mutation.
type Order struct {
	ID            uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	ReservationID uint            `gorm:"index;not null"           json:"reservation_id"`
	EmployeeID    uint            `gorm:"index;not null"           json:"employee_id"`
	OrderDate     time.Time       `gorm:"not null"                 json:"order_date"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"total_amount"`
}

type OrderItem struct {
	ID       uint `gorm:"primaryKey;autoIncrement"    json:"id"`
	OrderID  uint `gorm:"index;not null"              json:"order_id"`
	ItemID   uint `gorm:"index;not null"              json:"item_id"`
	Quantity int  `gorm:"not null;check:quantity>0"   json:"quantity"`
}

type MenuItem struct {
	ID           uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	RestaurantID uint            `gorm:"index;not null"           json:"restaurant_id"`
	Name         string          `gorm:"size:100;not null"        json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
}

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName    string `gorm:"size:50"                  json:"first_name"`
	LastName     string `gorm:"size:50"                  json:"last_name"`
	Username     string `gorm:"unique;not null"          json:"username"`
	PasswordHash string `gorm:"not null"                 json:"-"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"      json:"id"`
	Token     string `gorm:"unique;not null" json:"token"`
	UserID    uint   `gorm:"index;not null"  json:"user_id"`
	ExpiresAt int64  `gorm:"not null"        json:"expires_at"`
	Revoked   bool   `gorm:"default:false"   json:"revoked"`
}
