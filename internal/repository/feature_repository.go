package repository

import (
	"context"
	"database/sql"

	"enrichprj/internal/model"
)

type FeatureRepository struct {
	DB *sql.DB
}

// Replace swaps the full feature set of a product in one transaction, so a
// reader never sees a mix of old and new rows.
func (r *FeatureRepository) Replace(ctx context.Context, productID string, features []model.Feature) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return persistErr("begin feature tx", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM product_features WHERE product_id = $1`, productID); err != nil {
		return persistErr("delete features", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO product_features
		(id, product_id, text, polarity, category, importance, impact_score, provenance, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`)
	if err != nil {
		return persistErr("prepare feature insert", err)
	}
	defer stmt.Close()

	for _, f := range features {
		_, err := stmt.ExecContext(ctx, f.ID, productID, f.Text, f.Polarity.String(), string(f.Category),
			string(f.Importance), f.ImpactScore, f.Provenance, f.DisplayOrder)
		if err != nil {
			return persistErr("insert feature", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return persistErr("commit features", err)
	}
	return nil
}

func (r *FeatureRepository) List(ctx context.Context, productID string) ([]model.Feature, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, product_id, text, polarity, category, importance, impact_score, provenance, display_order
		FROM product_features
		WHERE product_id = $1
		ORDER BY display_order
	`, productID)
	if err != nil {
		return nil, persistErr("list features", err)
	}
	defer rows.Close()

	var list []model.Feature
	for rows.Next() {
		var (
			f                              model.Feature
			polarity, category, importance string
		)
		if err := rows.Scan(&f.ID, &f.ProductID, &f.Text, &polarity, &category, &importance,
			&f.ImpactScore, &f.Provenance, &f.DisplayOrder); err != nil {
			return nil, persistErr("scan feature", err)
		}
		if f.Polarity, err = model.ParsePolarity(polarity); err != nil {
			return nil, persistErr("scan feature", err)
		}
		f.Category = model.Category(category)
		f.Importance = model.Importance(importance)
		list = append(list, f)
	}
	return list, rows.Err()
}
