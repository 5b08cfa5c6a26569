package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/mercado-b2b-api/internal/domain"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/entity"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/repository"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/rfq"
)

var _ repository.RFQRepository = (*RFQRepo)(nil)

// RFQRepo solicitudes de cotización sobre PostgreSQL.
type RFQRepo struct {
	q Querier
}

// NewRFQRepository construye el adaptador.
func NewRFQRepository(q Querier) *RFQRepo {
	return &RFQRepo{q: q}
}

const rfqSelect = `
	SELECT q.id, q.buyer_id, q.seller_id, q.product_id, COALESCE(p.name, ''), q.quantity, q.unit,
		q.target_price, q.currency_code, q.delivery_location, q.required_by, q.message, q.status,
		q.seller_message, q.quoted_price, q.lead_time_days, q.responded_at, q.resubmission_count,
		q.created_at, q.updated_at
	FROM rfqs q
	LEFT JOIN products p ON p.id = q.product_id`

func scanRFQ(row pgx.Row) (*entity.RFQ, error) {
	var (
		q      entity.RFQ
		status string
	)
	err := row.Scan(
		&q.ID, &q.BuyerID, &q.SellerID, &q.ProductID, &q.ProductName, &q.Quantity, &q.Unit,
		&q.TargetPrice, &q.CurrencyCode, &q.DeliveryLocation, &q.RequiredBy, &q.Message, &status,
		&q.SellerMessage, &q.QuotedPrice, &q.LeadTimeDays, &q.RespondedAt, &q.ResubmissionCount,
		&q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	q.Status = rfq.Status(status)
	return &q, nil
}

func (r *RFQRepo) Create(ctx context.Context, q *entity.RFQ) error {
	query := `
		INSERT INTO rfqs (id, buyer_id, seller_id, product_id, quantity, unit, target_price, currency_code,
			delivery_location, required_by, message, status, resubmission_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		q.ID, q.BuyerID, q.SellerID, q.ProductID, q.Quantity, q.Unit, q.TargetPrice, q.CurrencyCode,
		q.DeliveryLocation, q.RequiredBy, q.Message, q.Status.String(), q.ResubmissionCount,
		q.CreatedAt, q.UpdatedAt,
	)
	if err != nil {
		return wrapDBErr("insert rfq", err)
	}
	return nil
}

func (r *RFQRepo) GetByID(ctx context.Context, id string) (*entity.RFQ, error) {
	q, err := scanRFQ(r.q.QueryRow(ctx, rfqSelect+` WHERE q.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("get rfq %s: %w", id, domain.ErrRFQNotFound)
		}
		return nil, wrapDBErr("get rfq", err)
	}
	return q, nil
}

// Update last-write-wins sobre la fila completa.
func (r *RFQRepo) Update(ctx context.Context, q *entity.RFQ) error {
	query := `
		UPDATE rfqs SET quantity = $2, unit = $3, target_price = $4, delivery_location = $5, required_by = $6,
			message = $7, status = $8, seller_message = $9, quoted_price = $10, lead_time_days = $11,
			responded_at = $12, resubmission_count = $13, updated_at = $14
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		q.ID, q.Quantity, q.Unit, q.TargetPrice, q.DeliveryLocation, q.RequiredBy,
		q.Message, q.Status.String(), q.SellerMessage, q.QuotedPrice, q.LeadTimeDays,
		q.RespondedAt, q.ResubmissionCount, q.UpdatedAt,
	)
	if err != nil {
		return wrapDBErr("update rfq", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update rfq %s: %w", q.ID, domain.ErrRFQNotFound)
	}
	return nil
}

func (r *RFQRepo) List(ctx context.Context, f *repository.ListFilter) ([]*entity.RFQ, error) {
	where, args, err := buildWhere(repository.CollectionRFQs, f)
	if err != nil {
		return nil, fmt.Errorf("list rfqs: %w", domain.NewValidationError(err.Error()))
	}
	rows, err := r.q.Query(ctx, rfqSelect+where, args...)
	if err != nil {
		return nil, wrapDBErr("list rfqs", err)
	}
	defer rows.Close()
	var list []*entity.RFQ
	for rows.Next() {
		q, err := scanRFQ(rows)
		if err != nil {
			return nil, wrapDBErr("scan rfq", err)
		}
		list = append(list, q)
	}
	return list, rows.Err()
}

func (r *RFQRepo) CountByStatus(ctx context.Context, sellerID string) (map[string]int, error) {
	return countByStatus(ctx, r.q, "rfqs", sellerID)
}
