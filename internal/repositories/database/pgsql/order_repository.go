package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/workhive/workhive_backend/internal/apperrors"
	"github.com/workhive/workhive_backend/internal/core/domain"
	portsrepo "github.com/workhive/workhive_backend/internal/core/ports/repositories"
	"github.com/workhive/workhive_backend/internal/models"
	"github.com/workhive/workhive_backend/internal/utils/mapping"
)

const orderColumns = `order_id, service_id, client_id, freelancer_id, price, deadline, description, status, transaction_id, conversation_id, client_review_id, freelancer_review_id, dispute_risk, flagged_for_review, created_at, created_by, last_updated_at, last_updated_by`

type PgxOrderRepository struct {
	db *pgxpool.Pool
}

func newPgxOrderRepository(db *pgxpool.Pool) portsrepo.OrderRepositoryFacade {
	return &PgxOrderRepository{db: db}
}

// Ensure PgxOrderRepository implements portsrepo.OrderRepositoryFacade
var _ portsrepo.OrderRepositoryFacade = (*PgxOrderRepository)(nil)

func (r *PgxOrderRepository) SaveOrder(ctx context.Context, order domain.Order) error {
	m := mapping.ToModelOrder(order)
	query := `
        INSERT INTO orders (` + orderColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
    `
	_, err := r.db.Exec(ctx, query,
		m.OrderID,
		m.ServiceID,
		m.ClientID,
		m.FreelancerID,
		m.Price,
		m.Deadline,
		m.Description,
		m.Status,
		m.TransactionID,
		m.ConversationID,
		m.ClientReviewID,
		m.FreelancerReviewID,
		m.DisputeRisk,
		m.FlaggedForReview,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("order %s: %w", order.OrderID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}

func (r *PgxOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_id = $1;`
	m, err := scanOrder(r.db.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order by ID %s: %w", orderID, err)
	}
	domainOrder := mapping.ToDomainOrder(*m)
	return &domainOrder, nil
}

func (r *PgxOrderRepository) ListOrdersByClient(ctx context.Context, clientID string, limit, offset int) ([]domain.Order, error) {
	return r.listOrders(ctx, "client_id", clientID, limit, offset)
}

func (r *PgxOrderRepository) ListOrdersByFreelancer(ctx context.Context, freelancerID string, limit, offset int) ([]domain.Order, error) {
	return r.listOrders(ctx, "freelancer_id", freelancerID, limit, offset)
}

func (r *PgxOrderRepository) listOrders(ctx context.Context, column, userID string, limit, offset int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + orderColumns + ` FROM orders WHERE ` + column + ` = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3;`
	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders for %s: %w", userID, err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		m, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		orders = append(orders, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order rows: %w", err)
	}
	return mapping.ToDomainOrderSlice(orders), nil
}

func (r *PgxOrderRepository) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus, updatedBy string, now time.Time) error {
	query := `
		UPDATE orders
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE order_id = $1;
	`
	cmdTag, err := r.db.Exec(ctx, query, orderID, string(status), now, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update order %s status: %w", orderID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxOrderRepository) LinkConversation(ctx context.Context, orderID, conversationID string) error {
	query := `UPDATE orders SET conversation_id = $2 WHERE order_id = $1;`
	cmdTag, err := r.db.Exec(ctx, query, orderID, conversationID)
	if err != nil {
		return fmt.Errorf("failed to link conversation to order %s: %w", orderID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxOrderRepository) LinkTransaction(ctx context.Context, orderID, transactionID string) error {
	query := `UPDATE orders SET transaction_id = $2 WHERE order_id = $1;`
	cmdTag, err := r.db.Exec(ctx, query, orderID, transactionID)
	if err != nil {
		return fmt.Errorf("failed to link transaction to order %s: %w", orderID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxOrderRepository) UpdateDisputeRisk(ctx context.Context, orderID string, risk float64, flagged bool) error {
	query := `UPDATE orders SET dispute_risk = $2, flagged_for_review = $3 WHERE order_id = $1;`
	cmdTag, err := r.db.Exec(ctx, query, orderID, risk, flagged)
	if err != nil {
		return fmt.Errorf("failed to update dispute risk for order %s: %w", orderID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanOrder(row pgx.Row) (*models.Order, error) {
	var m models.Order
	err := row.Scan(
		&m.OrderID,
		&m.ServiceID,
		&m.ClientID,
		&m.FreelancerID,
		&m.Price,
		&m.Deadline,
		&m.Description,
		&m.Status,
		&m.TransactionID,
		&m.ConversationID,
		&m.ClientReviewID,
		&m.FreelancerReviewID,
		&m.DisputeRisk,
		&m.FlaggedForReview,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
