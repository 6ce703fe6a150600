// Package handlers wires the HTTP surface to the discovery engine, the
// supply ledger and the price board.
package handlers

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/medilink/supply-service/internal/catalog"
	"github.com/medilink/supply-service/internal/discovery"
	"github.com/medilink/supply-service/internal/pricing"
)

// PharmacySource provides the approved-pharmacy directory, usually the
// collaborator client.
type PharmacySource interface {
	ApprovedPharmacies(ctx context.Context) ([]catalog.Pharmacy, error)
}

// Global instances (initialized by the application).
var (
	store          *catalog.Store
	boardStore     *pricing.BoardStore
	engine         *discovery.Engine
	pharmacySource PharmacySource
	logger         zerolog.Logger
)

// Init initializes the handler dependencies. This should be called during
// application startup. source may be nil when no collaborator is
// configured.
func Init(cat *catalog.Store, board *pricing.BoardStore, eng *discovery.Engine, source PharmacySource) {
	store = cat
	boardStore = board
	engine = eng
	pharmacySource = source
	logger = log.With().Str("component", "handlers").Logger()
}

// approvedPharmacies resolves the pharmacy directory: the collaborator's
// approved list when it answers, the catalog's otherwise. Directory
// failures degrade, they never fail a search.
func approvedPharmacies(ctx context.Context) []catalog.Pharmacy {
	if pharmacySource != nil {
		pharmacies, err := pharmacySource.ApprovedPharmacies(ctx)
		if err == nil && len(pharmacies) > 0 {
			return pharmacies
		}
		if err != nil {
			logger.Warn().Err(err).Msg("Approved-pharmacy lookup failed, using catalog directory")
		}
	}
	return store.ApprovedPharmacies()
}
