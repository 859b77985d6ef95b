package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"restaurant-reservation/internal/models"
)

// Service exposes the read-only projections over the entity store.
// Each query is a best-effort live join; none of them mutate anything.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type ReservationDetails struct {
	ReservationID          uint      `json:"reservation_id"`
	TableID                uint      `json:"table_id"`
	ReservationDate        time.Time `json:"reservation_date"`
	PartySize              int       `json:"party_size"`
	CustomerID             uint      `json:"customer_id"`
	CustomerFirstName      string    `json:"customer_first_name"`
	CustomerLastName       string    `json:"customer_last_name"`
	CustomerEmail          string    `json:"customer_email"`
	CustomerPhoneNumber    string    `json:"customer_phone_number"`
	RestaurantID           uint      `json:"restaurant_id"`
	RestaurantName         string    `json:"restaurant_name"`
	RestaurantPhoneNumber  string    `json:"restaurant_phone_number"`
	RestaurantOpeningHours string    `json:"restaurant_opening_hours"`
}

func (s *Service) ReservationDetails(ctx context.Context) ([]ReservationDetails, error) {
	var rows []ReservationDetails
	err := s.db.WithContext(ctx).
		Table("reservations").
		Select(`reservations.id AS reservation_id,
			reservations.table_id,
			reservations.reservation_date,
			reservations.party_size,
			customers.id AS customer_id,
			customers.first_name AS customer_first_name,
			customers.last_name AS customer_last_name,
			customers.email AS customer_email,
			customers.phone_number AS customer_phone_number,
			restaurants.id AS restaurant_id,
			restaurants.name AS restaurant_name,
			restaurants.phone_number AS restaurant_phone_number,
			restaurants.opening_hours AS restaurant_opening_hours`).
		Joins("JOIN customers ON customers.id = reservations.customer_id").
		Joins("JOIN restaurants ON restaurants.id = reservations.restaurant_id").
		Scan(&rows).Error
	return rows, err
}

type EmployeeDetails struct {
	EmployeeID             uint   `json:"employee_id"`
	EmployeeFirstName      string `json:"employee_first_name"`
	EmployeeLastName       string `json:"employee_last_name"`
	EmployeePosition       string `json:"employee_position"`
	RestaurantID           uint   `json:"restaurant_id"`
	RestaurantName         string `json:"restaurant_name"`
	RestaurantAddress      string `json:"restaurant_address"`
	RestaurantPhoneNumber  string `json:"restaurant_phone_number"`
	RestaurantOpeningHours string `json:"restaurant_opening_hours"`
}

func (s *Service) EmployeeDetails(ctx context.Context) ([]EmployeeDetails, error) {
	var rows []EmployeeDetails
	err := s.db.WithContext(ctx).
		Table("employees").
		Select(`employees.id AS employee_id,
			employees.first_name AS employee_first_name,
			employees.last_name AS employee_last_name,
			employees.position AS employee_position,
			restaurants.id AS restaurant_id,
			restaurants.name AS restaurant_name,
			restaurants.address AS restaurant_address,
			restaurants.phone_number AS restaurant_phone_number,
			restaurants.opening_hours AS restaurant_opening_hours`).
		Joins("JOIN restaurants ON restaurants.id = employees.restaurant_id").
		Scan(&rows).Error
	return rows, err
}

type OrderedMenuItem struct {
	ItemID      uint            `json:"item_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

type OrderWithMenuItems struct {
	OrderID     uint              `json:"order_id"`
	EmployeeID  uint              `json:"employee_id"`
	OrderDate   time.Time         `json:"order_date"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	Items       []OrderedMenuItem `json:"items"`
}

// OrdersAndMenuItems lists a reservation's orders with their line items
// resolved to menu item name, description, price and quantity.
func (s *Service) OrdersAndMenuItems(ctx context.Context, reservationID uint) ([]OrderWithMenuItems, error) {
	var orders []models.Order
	if err := s.db.WithContext(ctx).
		Where("reservation_id = ?", reservationID).
		Order("id ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}

	result := make([]OrderWithMenuItems, 0, len(orders))
	for _, o := range orders {
		var items []OrderedMenuItem
		if err := s.db.WithContext(ctx).
			Model(&models.OrderItem{}).
			Select(`menu_items.id AS item_id,
				menu_items.name,
				menu_items.description,
				menu_items.price,
				order_items.quantity`).
			Joins("JOIN menu_items ON menu_items.id = order_items.item_id").
			Where("order_items.order_id = ?", o.ID).
			Scan(&items).Error; err != nil {
			return nil, err
		}

		result = append(result, OrderWithMenuItems{
			OrderID:     o.ID,
			EmployeeID:  o.EmployeeID,
			OrderDate:   o.OrderDate,
			TotalAmount: o.TotalAmount,
			Items:       items,
		})
	}
	return result, nil
}

// OrderedMenuItems flattens the menu items appearing in any order of
// the reservation. An item ordered twice appears twice.
func (s *Service) OrderedMenuItems(ctx context.Context, reservationID uint) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := s.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Select("menu_items.*").
		Joins("JOIN menu_items ON menu_items.id = order_items.item_id").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.reservation_id = ?", reservationID).
		Scan(&items).Error
	return items, err
}

// TotalRevenue sums TotalAmount over all orders whose reservation
// belongs to the restaurant; 0 when there are none.
func (s *Service) TotalRevenue(ctx context.Context, restaurantID uint) (decimal.Decimal, error) {
	var rows []struct {
		TotalAmount decimal.Decimal
	}
	if err := s.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("orders.total_amount").
		Joins("JOIN reservations ON reservations.id = orders.reservation_id").
		Where("reservations.restaurant_id = ?", restaurantID).
		Scan(&rows).Error; err != nil {
		return decimal.Zero, err
	}

	revenue := decimal.Zero
	for _, row := range rows {
		revenue = revenue.Add(row.TotalAmount)
	}
	return revenue, nil
}

// CustomersByPartySize returns the distinct customers holding at least
// one reservation with a party size strictly greater than the threshold.
func (s *Service) CustomersByPartySize(ctx context.Context, partySize int) ([]models.Customer, error) {
	var customers []models.Customer
	err := s.db.WithContext(ctx).
		Model(&models.Customer{}).
		Distinct("customers.*").
		Joins("JOIN reservations ON reservations.customer_id = customers.id").
		Where("reservations.party_size > ?", partySize).
		Scan(&customers).Error
	return customers, err
}

// AverageOrderAmount is the mean of TotalAmount over the employee's
// orders. An employee with no orders averages to 0 rather than failing
// on an empty set.
func (s *Service) AverageOrderAmount(ctx context.Context, employeeID uint) (decimal.Decimal, error) {
	var rows []struct {
		TotalAmount decimal.Decimal
	}
	if err := s.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("total_amount").
		Where("employee_id = ?", employeeID).
		Scan(&rows).Error; err != nil {
		return decimal.Zero, err
	}

	if len(rows) == 0 {
		return decimal.Zero, nil
	}

	sum := decimal.Zero
	for _, row := range rows {
		sum = sum.Add(row.TotalAmount)
	}
	return sum.Div(decimal.NewFromInt(int64(len(rows)))).Round(2), nil
}

func (s *Service) ReservationsByCustomer(ctx context.Context, customerID uint) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := s.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Find(&reservations).Error
	return reservations, err
}

func (s *Service) Managers(ctx context.Context) ([]models.Employee, error) {
	var managers []models.Employee
	err := s.db.WithContext(ctx).
		Where("position = ?", "Manager").
		Find(&managers).Error
	return managers, err
}
