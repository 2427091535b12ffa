package repository

import "database/sql"

// Stores bundles the database/sql repositories over one connection.
type Stores struct {
	Products *ProductRepository
	Features *FeatureRepository
	Links    *AffiliateRepository
	Scores   *ScoreRepository
}

func NewStores(conn *sql.DB) *Stores {
	return &Stores{
		Products: &ProductRepository{DB: conn},
		Features: &FeatureRepository{DB: conn},
		Links:    &AffiliateRepository{DB: conn},
		Scores:   &ScoreRepository{DB: conn},
	}
}
