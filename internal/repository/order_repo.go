package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/oakhaus/oakhaus-api/internal/models"
	"github.com/oakhaus/oakhaus-api/internal/utils"
)

// OrderRepository handles data access for orders and order items.
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreateWithItems places an order atomically: order row, item snapshots,
// inventory decrements and cart clearing all commit or roll back together.
// The stock guard in the decrement WHERE clause keeps quantity from ever
// going negative; a guarded miss aborts with ErrInsufficientStock.
func (r *OrderRepository) CreateWithItems(order *models.Order, items []models.OrderItem) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const orderQ = `
        INSERT INTO orders (
            order_id, user_id, status, subtotal, total,
            ship_recipient, ship_phone, ship_street, ship_city, ship_province, ship_postal_code
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRowx(orderQ,
		order.OrderID, order.UserID, order.Status, order.Subtotal, order.Total,
		order.ShipRecipient, order.ShipPhone, order.ShipStreet, order.ShipCity, order.ShipProvince, order.ShipPostalCode,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt); err != nil {
		return err
	}

	const itemQ = `
        INSERT INTO order_items (order_id, product_id, product_name, product_image, unit_price, quantity, total_price)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id`
	const stockQ = `
        UPDATE inventory SET quantity = quantity - $2, updated_at = NOW()
        WHERE product_id = $1 AND quantity >= $2`

	for i := range items {
		items[i].OrderID = order.ID
		if err := tx.QueryRowx(itemQ,
			order.ID, items[i].ProductID, items[i].ProductName, items[i].ProductImage,
			items[i].UnitPrice, items[i].Quantity, items[i].TotalPrice,
		).Scan(&items[i].ID); err != nil {
			return err
		}

		res, err := tx.Exec(stockQ, items[i].ProductID, items[i].Quantity)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return utils.ErrInsufficientStock
		}
	}

	const clearQ = `DELETE FROM cart_items WHERE user_id = $1`
	if _, err := tx.Exec(clearQ, order.UserID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	order.Items = items
	return nil
}

// ItemsSoldBetween returns one row per order item whose parent order was
// created in [start, end). Half-open on purpose: items exactly at end belong
// to the next window. Grouping happens in the aggregator, not here.
func (r *OrderRepository) ItemsSoldBetween(start, end time.Time) ([]models.SoldItem, error) {
	const q = `
        SELECT oi.product_id, oi.quantity
        FROM order_items oi
        JOIN orders o ON o.id = oi.order_id
        WHERE o.created_at >= $1 AND o.created_at < $2`
	stmt, err := r.db.Preparex(q)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	var items []models.SoldItem
	if err := stmt.Select(&items, start, end); err != nil {
		return nil, err
	}
	return items, nil
}

// GetByOrderID returns an order (with items) by its public order_id,
// optionally scoped to a user (userID = 0 skips the scope for admin).
func (r *OrderRepository) GetByOrderID(orderID string, userID int) (*models.Order, error) {
	q := `SELECT * FROM orders WHERE order_id = $1`
	args := []interface{}{orderID}
	if userID > 0 {
		q += ` AND user_id = $2`
		args = append(args, userID)
	}
	q += ` LIMIT 1`

	var o models.Order
	if err := r.db.Get(&o, q, args...); err != nil {
		return nil, err
	}

	const itemsQ = `SELECT * FROM order_items WHERE order_id = $1 ORDER BY id`
	if err := r.db.Select(&o.Items, itemsQ, o.ID); err != nil {
		return nil, err
	}
	return &o, nil
}

// GetByUser returns a user's orders, newest first, with items attached.
func (r *OrderRepository) GetByUser(userID int) ([]models.Order, error) {
	const q = `SELECT * FROM orders WHERE user_id = $1 ORDER BY created_at DESC`
	var orders []models.Order
	if err := r.db.Select(&orders, q, userID); err != nil {
		return nil, err
	}

	const itemsQ = `SELECT * FROM order_items WHERE order_id = $1 ORDER BY id`
	for i := range orders {
		if err := r.db.Select(&orders[i].Items, itemsQ, orders[i].ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// UpdateStatus transitions an order's status.
func (r *OrderRepository) UpdateStatus(orderID string, status models.OrderStatus) error {
	const q = `UPDATE orders SET status = $2, updated_at = NOW() WHERE order_id = $1`
	res, err := r.db.Exec(q, orderID, status)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CancelAndRestock cancels an order and returns its quantities to inventory
// in a single transaction. Only orders currently in one of fromStatuses are
// cancellable; customers pass pending only, admins may include confirmed.
func (r *OrderRepository) CancelAndRestock(orderID string, userID int, fromStatuses ...string) error {
	if len(fromStatuses) == 0 {
		fromStatuses = []string{"pending"}
	}

	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const cancelQ = `
        UPDATE orders SET status = 'cancelled', updated_at = NOW()
        WHERE order_id = $1 AND user_id = $2 AND status = ANY($3)
        RETURNING id`
	var id int
	if err := tx.QueryRowx(cancelQ, orderID, userID, pq.Array(fromStatuses)).Scan(&id); err != nil {
		if err == sql.ErrNoRows {
			return utils.ErrInvalidStatus
		}
		return err
	}

	const restockQ = `
        UPDATE inventory i SET quantity = i.quantity + oi.quantity, updated_at = NOW()
        FROM order_items oi
        WHERE oi.order_id = $1 AND i.product_id = oi.product_id`
	if _, err := tx.Exec(restockQ, id); err != nil {
		return err
	}

	return tx.Commit()
}

// AdminOrderFilter holds filters for admin order queries.
type AdminOrderFilter struct {
	UserID    *int
	Status    *string
	StartDate *string
	EndDate   *string
	Page      int
	Limit     int
}

// AdminOrderResult contains paginated order results for admin.
type AdminOrderResult struct {
	Orders     []models.Order
	TotalItems int
	TotalPages int
	Page       int
	Limit      int
}

// GetAllAdmin returns orders for admin with filters and pagination.
func (r *OrderRepository) GetAllAdmin(filter *AdminOrderFilter) (*AdminOrderResult, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	offset := (filter.Page - 1) * filter.Limit

	baseWhere := `WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.UserID != nil {
		baseWhere += fmt.Sprintf(" AND user_id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND created_at >= $%d::date", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND created_at < ($%d::date + interval '1 day')", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	countQuery := `SELECT COUNT(1) FROM orders ` + baseWhere
	var total int
	if err := r.db.Get(&total, countQuery, args...); err != nil {
		return nil, err
	}
	totalPages := (total + filter.Limit - 1) / filter.Limit

	listQuery := fmt.Sprintf(`SELECT * FROM orders %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		baseWhere, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	var orders []models.Order
	if err := r.db.Select(&orders, listQuery, args...); err != nil {
		return nil, err
	}

	return &AdminOrderResult{
		Orders:     orders,
		TotalItems: total,
		TotalPages: totalPages,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// AdminOrderStats contains aggregate counters for the admin dashboard.
type AdminOrderStats struct {
	TotalOrders     int `db:"total_orders" json:"totalOrders"`
	PendingOrders   int `db:"pending_orders" json:"pendingOrders"`
	ShippedOrders   int `db:"shipped_orders" json:"shippedOrders"`
	DeliveredOrders int `db:"delivered_orders" json:"deliveredOrders"`
	CancelledOrders int `db:"cancelled_orders" json:"cancelledOrders"`
	TotalRevenue    int `db:"total_revenue" json:"totalRevenue"`
}

// GetAdminStats returns order statistics, optionally bounded by dates.
// Date bounds are half-open on the end like everywhere else.
func (r *OrderRepository) GetAdminStats(startDate, endDate *string) (*AdminOrderStats, error) {
	q := `SELECT
            COUNT(*) as total_orders,
            COUNT(*) FILTER (WHERE status = 'pending') as pending_orders,
            COUNT(*) FILTER (WHERE status = 'shipped') as shipped_orders,
            COUNT(*) FILTER (WHERE status IN ('delivered','received')) as delivered_orders,
            COUNT(*) FILTER (WHERE status = 'cancelled') as cancelled_orders,
            COALESCE(SUM(total) FILTER (WHERE status != 'cancelled'), 0) as total_revenue
          FROM orders
          WHERE 1=1`

	args := []interface{}{}
	argIdx := 1
	if startDate != nil && *startDate != "" {
		q += fmt.Sprintf(" AND created_at >= $%d::date", argIdx)
		args = append(args, *startDate)
		argIdx++
	}
	if endDate != nil && *endDate != "" {
		q += fmt.Sprintf(" AND created_at < ($%d::date + interval '1 day')", argIdx)
		args = append(args, *endDate)
		argIdx++
	}

	var stats AdminOrderStats
	if err := r.db.Get(&stats, q, args...); err != nil {
		return nil, err
	}
	return &stats, nil
}

// DailyOrderStat is one day of order volume for the dashboard trend chart.
type DailyOrderStat struct {
	Date    string `db:"day" json:"date"`
	Orders  int    `db:"orders" json:"orders"`
	Revenue int    `db:"revenue" json:"revenue"`
}

// GetDailyTrend returns per-day order counts and revenue for the last
// `days` days. Cancelled orders count toward volume but not revenue. Days
// with no orders are omitted.
func (r *OrderRepository) GetDailyTrend(days int) ([]DailyOrderStat, error) {
	if days <= 0 {
		days = 30
	}
	const q = `
        SELECT to_char(created_at::date, 'YYYY-MM-DD') as day,
               COUNT(*) as orders,
               COALESCE(SUM(total) FILTER (WHERE status != 'cancelled'), 0) as revenue
        FROM orders
        WHERE created_at >= NOW() - ($1 * interval '1 day')
        GROUP BY created_at::date
        ORDER BY created_at::date`
	var trend []DailyOrderStat
	if err := r.db.Select(&trend, q, days); err != nil {
		return nil, err
	}
	return trend, nil
}
