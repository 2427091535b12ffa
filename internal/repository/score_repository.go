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

type ScoreRepository struct {
	DB *sql.DB
}

// Save overwrites the stored score set for the product.
func (r *ScoreRepository) Save(ctx context.Context, s model.ScoreSet) error {
	subs, err := json.Marshal(s.SubScores)
	if err != nil {
		return persistErr("encode sub scores", err)
	}
	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO product_scores (product_id, method, overall, sub_scores, computed_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (product_id) DO UPDATE SET
			method = excluded.method,
			overall = excluded.overall,
			sub_scores = excluded.sub_scores,
			computed_at = excluded.computed_at
	`, s.ProductID, s.Method, s.Overall, string(subs), s.ComputedAt.UTC())
	if err != nil {
		return persistErr("save scores "+s.ProductID, err)
	}
	return nil
}

func (r *ScoreRepository) Get(ctx context.Context, productID string) (*model.ScoreSet, error) {
	var (
		s    = model.ScoreSet{ProductID: productID}
		subs string
	)
	err := r.DB.QueryRowContext(ctx, `
		SELECT method, overall, sub_scores, computed_at FROM product_scores WHERE product_id = $1
	`, productID).Scan(&s.Method, &s.Overall, &subs, &s.ComputedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: scores for %s", model.ErrNotFound, productID)
	}
	if err != nil {
		return nil, persistErr("get scores", err)
	}
	if err := json.Unmarshal([]byte(subs), &s.SubScores); err != nil {
		return nil, persistErr("decode sub scores", err)
	}
	return &s, nil
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}
