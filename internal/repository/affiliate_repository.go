package repository

import (
	"context"
	"database/sql"

	"enrichprj/internal/model"
)

type AffiliateRepository struct {
	DB *sql.DB
}

// Upsert keeps one row per (product, raw url). Re-ingesting the same URL
// refreshes its terms but keeps the original id and created_at.
func (r *AffiliateRepository) Upsert(ctx context.Context, l *model.AffiliateLink) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO affiliate_links
		(id, product_id, platform, affiliate_type, link_type, raw_url, commission_rate, end_date,
		 internal_link, pretty_referral_link, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (product_id, raw_url) DO UPDATE SET
			platform = excluded.platform,
			affiliate_type = excluded.affiliate_type,
			link_type = excluded.link_type,
			commission_rate = COALESCE(excluded.commission_rate, affiliate_links.commission_rate),
			end_date = COALESCE(excluded.end_date, affiliate_links.end_date),
			internal_link = excluded.internal_link,
			pretty_referral_link = excluded.pretty_referral_link
	`, l.ID, l.ProductID, l.Platform, l.AffiliateType, l.LinkType, l.RawURL, l.CommissionRate, nullTime(l.EndDate),
		l.InternalLink, l.PrettyReferralLink, l.CreatedAt.UTC())
	if err != nil {
		return persistErr("upsert affiliate link", err)
	}
	return nil
}

func (r *AffiliateRepository) ListByProduct(ctx context.Context, productID string) ([]model.AffiliateLink, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, product_id, platform, affiliate_type, link_type, raw_url, commission_rate, end_date,
		       internal_link, pretty_referral_link, created_at
		FROM affiliate_links
		WHERE product_id = $1
		ORDER BY created_at, raw_url
	`, productID)
	if err != nil {
		return nil, persistErr("list affiliate links", err)
	}
	defer rows.Close()

	var list []model.AffiliateLink
	for rows.Next() {
		var (
			l          model.AffiliateLink
			commission sql.NullFloat64
			end        sql.NullTime
		)
		if err := rows.Scan(&l.ID, &l.ProductID, &l.Platform, &l.AffiliateType, &l.LinkType, &l.RawURL,
			&commission, &end, &l.InternalLink, &l.PrettyReferralLink, &l.CreatedAt); err != nil {
			return nil, persistErr("scan affiliate link", err)
		}
		l.CommissionRate = nullFloat(commission)
		if end.Valid {
			t := end.Time
			l.EndDate = &t
		}
		list = append(list, l)
	}
	return list, rows.Err()
}
