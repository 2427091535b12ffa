package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"enrichprj/internal/model"
)

type ProductRepository struct {
	DB *sql.DB
}

const productColumns = `marketplace_id, title, brand, description, price, discount, commission_rate,
	rating, review_count, material, weave_type, thread_count, color, size, category,
	pretty_title, summary_text, primary_image_ref, images, bullets, external_scores,
	created_at, last_updated`

func (r *ProductRepository) Get(ctx context.Context, marketplaceID string) (*model.Product, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE marketplace_id = $1`, marketplaceID)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: product %s", model.ErrNotFound, marketplaceID)
	}
	if err != nil {
		return nil, persistErr("get product", err)
	}
	return p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *model.Product) error {
	images, bullets, scores, err := encodeLists(p)
	if err != nil {
		return persistErr("encode product", err)
	}
	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
	`, p.MarketplaceID, p.Title, p.Brand, p.Description, p.Price, p.Discount, p.CommissionRate,
		p.Rating, p.ReviewCount, p.Material, p.WeaveType, p.ThreadCount, p.Color, p.Size, p.Category,
		p.PrettyTitle, p.SummaryText, p.PrimaryImageRef, images, bullets, scores,
		p.CreatedAt.UTC(), p.LastUpdated.UTC())
	if err != nil {
		return persistErr("create product "+p.MarketplaceID, err)
	}
	return nil
}

// Update overwrites every enrichment column. created_at is never touched.
func (r *ProductRepository) Update(ctx context.Context, p *model.Product) error {
	images, bullets, scores, err := encodeLists(p)
	if err != nil {
		return persistErr("encode product", err)
	}
	res, err := r.DB.ExecContext(ctx, `
		UPDATE products SET
			title = $1, brand = $2, description = $3, price = $4, discount = $5, commission_rate = $6,
			rating = $7, review_count = $8, material = $9, weave_type = $10, thread_count = $11,
			color = $12, size = $13, category = $14, pretty_title = $15, summary_text = $16,
			primary_image_ref = $17, images = $18, bullets = $19, external_scores = $20, last_updated = $21
		WHERE marketplace_id = $22
	`, p.Title, p.Brand, p.Description, p.Price, p.Discount, p.CommissionRate,
		p.Rating, p.ReviewCount, p.Material, p.WeaveType, p.ThreadCount,
		p.Color, p.Size, p.Category, p.PrettyTitle, p.SummaryText,
		p.PrimaryImageRef, images, bullets, scores, p.LastUpdated.UTC(),
		p.MarketplaceID)
	if err != nil {
		return persistErr("update product "+p.MarketplaceID, err)
	}
	return expectOne(res, p.MarketplaceID)
}

// LightUpdate refreshes price and discount and touches last_updated. A nil
// value leaves the stored one in place.
func (r *ProductRepository) LightUpdate(ctx context.Context, marketplaceID string, price, discount *float64, at time.Time) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE products SET
			price = COALESCE($1, price),
			discount = COALESCE($2, discount),
			last_updated = $3
		WHERE marketplace_id = $4
	`, price, discount, at.UTC(), marketplaceID)
	if err != nil {
		return persistErr("light update "+marketplaceID, err)
	}
	return expectOne(res, marketplaceID)
}

type ListFilter struct {
	Category string
	Brand    string
	Limit    int
	Offset   int
}

func (r *ProductRepository) List(ctx context.Context, f ListFilter) ([]model.Product, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE ($1 = '' OR category = $2) AND ($3 = '' OR brand = $4)
		ORDER BY marketplace_id
		LIMIT $5 OFFSET $6
	`, f.Category, f.Category, f.Brand, f.Brand, f.Limit, f.Offset)
	if err != nil {
		return nil, persistErr("list products", err)
	}
	defer rows.Close()

	var list []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, persistErr("scan product", err)
		}
		list = append(list, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("list products", err)
	}
	return list, nil
}

// IDs returns every marketplace id in the store.
func (r *ProductRepository) IDs(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT marketplace_id FROM products ORDER BY marketplace_id`)
	if err != nil {
		return nil, persistErr("list ids", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, persistErr("scan id", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(s scanner) (*model.Product, error) {
	var (
		p                                 model.Product
		price, discount, commission, rate sql.NullFloat64
		reviews, threads                  sql.NullInt64
		images, bullets, scores           string
	)
	err := s.Scan(&p.MarketplaceID, &p.Title, &p.Brand, &p.Description, &price, &discount, &commission,
		&rate, &reviews, &p.Material, &p.WeaveType, &threads, &p.Color, &p.Size, &p.Category,
		&p.PrettyTitle, &p.SummaryText, &p.PrimaryImageRef, &images, &bullets, &scores,
		&p.CreatedAt, &p.LastUpdated)
	if err != nil {
		return nil, err
	}

	p.Price = nullFloat(price)
	p.Discount = nullFloat(discount)
	p.CommissionRate = nullFloat(commission)
	p.Rating = nullFloat(rate)
	p.ReviewCount = nullInt(reviews)
	p.ThreadCount = nullInt(threads)

	if err := json.Unmarshal([]byte(images), &p.Images); err != nil {
		return nil, fmt.Errorf("decode images: %w", err)
	}
	if err := json.Unmarshal([]byte(bullets), &p.Bullets); err != nil {
		return nil, fmt.Errorf("decode bullets: %w", err)
	}
	if err := json.Unmarshal([]byte(scores), &p.ExternalScores); err != nil {
		return nil, fmt.Errorf("decode external scores: %w", err)
	}
	return &p, nil
}

func encodeLists(p *model.Product) (images, bullets, scores string, err error) {
	enc := func(v any, empty string) (string, error) {
		b, err := json.Marshal(v)
		if err != nil || string(b) == "null" {
			return empty, err
		}
		return string(b), nil
	}
	if images, err = enc(p.Images, "[]"); err != nil {
		return
	}
	if bullets, err = enc(p.Bullets, "[]"); err != nil {
		return
	}
	scores, err = enc(p.ExternalScores, "{}")
	return
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func expectOne(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return persistErr("rows affected", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: product %s", model.ErrNotFound, id)
	}
	return nil
}

func persistErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", model.ErrPersistenceFailure, op, err)
}
