package httpserver

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"restaurant-reservation/internal/handlers"
	"restaurant-reservation/internal/jwtmiddleware"
)

type Deps struct {
	DB                 *gorm.DB
	JWTSecret          []byte
	AuthHandler        *handlers.AuthHandler
	CustomerHandler    *handlers.CustomerHandler
	RestaurantHandler  *handlers.RestaurantHandler
	TableHandler       *handlers.TableHandler
	EmployeeHandler    *handlers.EmployeeHandler
	ReservationHandler *handlers.ReservationHandler
	OrderHandler       *handlers.OrderHandler
	OrderItemHandler   *handlers.OrderItemHandler
	MenuItemHandler    *handlers.MenuItemHandler
	ReportsHandler     *handlers.ReportsHandler
	SearchHandler      *handlers.SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.AuthHandler.Register)
	v1.POST("/login", d.AuthHandler.Login)
	v1.POST("/refresh", d.AuthHandler.Refresh)
	v1.POST("/logout", d.AuthHandler.Logout)

	auth := v1.Group("", jwtmiddleware.JWTMiddleware(d.JWTSecret))

	customers := auth.Group("/customers")
	customers.GET("", d.CustomerHandler.GetCustomers)
	customers.GET("/:id", d.CustomerHandler.GetCustomer)
	customers.POST("", d.CustomerHandler.CreateCustomer)
	customers.PUT("/:id", d.CustomerHandler.UpdateCustomer)
	customers.DELETE("/:id", d.CustomerHandler.DeleteCustomer)
	customers.GET("/by-party-size/:partySize", d.ReportsHandler.GetCustomersByPartySize)

	restaurants := auth.Group("/restaurants")
	restaurants.GET("", d.RestaurantHandler.GetRestaurants)
	restaurants.GET("/:id", d.RestaurantHandler.GetRestaurant)
	restaurants.POST("", d.RestaurantHandler.CreateRestaurant)
	restaurants.PUT("/:id", d.RestaurantHandler.UpdateRestaurant)
	restaurants.DELETE("/:id", d.RestaurantHandler.DeleteRestaurant)
	restaurants.GET("/:id/revenue", d.RestaurantHandler.GetTotalRevenue)

	tables := auth.Group("/tables")
	tables.GET("", d.TableHandler.GetTables)
	tables.GET("/:id", d.TableHandler.GetTable)
	tables.POST("", d.TableHandler.CreateTable)
	tables.PUT("/:id", d.TableHandler.UpdateTable)
	tables.DELETE("/:id", d.TableHandler.DeleteTable)

	employees := auth.Group("/employees")
	employees.GET("", d.EmployeeHandler.GetEmployees)
	employees.GET("/managers", d.EmployeeHandler.GetManagers)
	employees.GET("/:id", d.EmployeeHandler.GetEmployee)
	employees.POST("", d.EmployeeHandler.CreateEmployee)
	employees.PUT("/:id", d.EmployeeHandler.UpdateEmployee)
	employees.DELETE("/:id", d.EmployeeHandler.DeleteEmployee)
	employees.GET("/:id/average-order-amount", d.EmployeeHandler.GetAverageOrderAmount)

	reservations := auth.Group("/reservations")
	reservations.GET("", d.ReservationHandler.GetReservations)
	reservations.GET("/customer/:customerId", d.ReservationHandler.GetReservationsByCustomer)
	reservations.GET("/:id", d.ReservationHandler.GetReservation)
	reservations.POST("", d.ReservationHandler.CreateReservation)
	reservations.PUT("/:id", d.ReservationHandler.UpdateReservation)
	reservations.DELETE("/:id", d.ReservationHandler.DeleteReservation)
	reservations.GET("/:id/orders", d.ReservationHandler.GetOrdersWithMenuItems)
	reservations.GET("/:id/menu-items", d.ReservationHandler.GetOrderedMenuItems)

	orders := auth.Group("/orders")
	orders.GET("", d.OrderHandler.GetOrders)
	orders.GET("/:id", d.OrderHandler.GetOrder)
	orders.POST("", d.OrderHandler.CreateOrder)
	orders.PUT("/:id", d.OrderHandler.UpdateOrder)
	orders.DELETE("/:id", d.OrderHandler.DeleteOrder)

	orderItems := auth.Group("/orderitems")
	orderItems.GET("", d.OrderItemHandler.GetOrderItems)
	orderItems.GET("/:id", d.OrderItemHandler.GetOrderItem)
	orderItems.POST("", d.OrderItemHandler.CreateOrderItem)
	orderItems.PUT("/:id", d.OrderItemHandler.UpdateOrderItem)
	orderItems.DELETE("/:id", d.OrderItemHandler.DeleteOrderItem)

	menuItems := auth.Group("/menuitems")
	menuItems.GET("", d.MenuItemHandler.GetMenuItems)
	menuItems.GET("/:id", d.MenuItemHandler.GetMenuItem)
	menuItems.POST("", d.MenuItemHandler.CreateMenuItem)
	menuItems.PUT("/:id", d.MenuItemHandler.UpdateMenuItem)
	menuItems.DELETE("/:id", d.MenuItemHandler.DeleteMenuItem)

	reports := auth.Group("/reports")
	reports.GET("/reservations", d.ReportsHandler.GetReservationDetails)
	reports.GET("/employees", d.ReportsHandler.GetEmployeeDetails)

	if d.SearchHandler != nil {
		auth.GET("/search", d.SearchHandler.Search)
	}
}
