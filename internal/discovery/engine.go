// Package discovery implements the multi-source medicine search and the
// availability fallback cascade: live collaborator inventory first, the
// simulated per-pharmacy inventory table second, the static catalog last.
// Accuracy decreases tier by tier, but a non-blank query always gets a
// definite, possibly empty, answer.
package discovery

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/medilink/supply-service/internal/catalog"
)

// Engine orchestrates the tiered search and availability cascade.
type Engine struct {
	inventory InventorySource // nil when no collaborator is configured
	catalog   *catalog.Store
	cfg       Config

	cascade []availabilityProvider

	metrics *MetricsRecorder
	logger  zerolog.Logger
}

// NewEngine creates a discovery engine. The inventory source may be nil,
// in which case every search degrades to the fallback tiers.
func NewEngine(inventory InventorySource, cat *catalog.Store, cfg Config) *Engine {
	e := &Engine{
		inventory: inventory,
		catalog:   cat,
		cfg:       cfg,
		metrics:   NewMetricsRecorder(),
		logger:    log.With().Str("component", "discovery_engine").Logger(),
	}

	if inventory != nil {
		e.cascade = append(e.cascade,
			&liveProvider{src: inventory},
			&inventoryListProvider{src: inventory},
		)
	}
	e.cascade = append(e.cascade,
		&simulatedProvider{cat: cat},
		&catalogProvider{cat: cat, defaultQuantity: cfg.DefaultQuantity},
	)

	return e
}

// Search finds where a medicine matching the query is available and at
// what price, across the given approved pharmacies. Live inventory wins
// when any pharmacy answers; otherwise the precomputed fallback candidates
// are used. Search never returns an error: collaborator failures degrade
// the tier, they do not surface.
func (e *Engine) Search(ctx context.Context, query string, pharmacies []catalog.Pharmacy, userLoc *UserLocation) []SearchResult {
	if strings.TrimSpace(query) == "" {
		return []SearchResult{}
	}

	start := time.Now()

	fallback := e.fallbackCandidates(query, pharmacies, userLoc)
	live := e.liveResults(ctx, query, pharmacies, userLoc)

	tier := "fallback"
	results := fallback
	if len(live) > 0 {
		tier = "api"
		results = live
	}
	if len(results) == 0 {
		tier = "none"
	}

	rankResults(results)

	e.metrics.RecordSearch(tier, time.Since(start), len(results))
	e.logger.Debug().
		Str("query", query).
		Str("tier", tier).
		Int("pharmacies", len(pharmacies)).
		Int("results", len(results)).
		Msg("Search completed")

	return results
}

// fallbackCandidates synthesizes tier-2/3 results: every catalog medicine
// matching the query, at every approved pharmacy, priced from the
// simulated inventory when an entry exists and from the catalog base
// otherwise.
func (e *Engine) fallbackCandidates(query string, pharmacies []catalog.Pharmacy, userLoc *UserLocation) []SearchResult {
	var results []SearchResult
	for _, med := range e.catalog.SearchMedicines(query) {
		for _, p := range pharmacies {
			price := med.BasePrice
			quantity := e.cfg.DefaultQuantity
			source := SourceCatalog

			if entry, ok := e.catalog.SimulatedInventory(med.Name, p.Name); ok {
				price = entry.Price
				quantity = entry.Quantity
				source = SourcePharmacyInventory
			}

			results = append(results, newResult(p, med.Name, price, quantity, source, userLoc))
		}
	}
	return results
}

// liveResults fans out one availability check per pharmacy. Checks run
// concurrently with a bounded limit; each pharmacy is independent, so a
// failed or timed-out check only loses that pharmacy. The group never
// returns an error.
func (e *Engine) liveResults(ctx context.Context, query string, pharmacies []catalog.Pharmacy, userLoc *UserLocation) []SearchResult {
	if e.inventory == nil || len(pharmacies) == 0 {
		return nil
	}

	slots := make([]*SearchResult, len(pharmacies))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.MaxConcurrency)
	for i, p := range pharmacies {
		i, p := i, p
		g.Go(func() error {
			checkCtx, cancel := context.WithTimeout(gctx, e.cfg.CheckTimeout)
			defer cancel()

			av, err := e.inventory.CheckAvailability(checkCtx, p.ID, query)
			if err != nil {
				e.metrics.RecordCollaboratorFailure("check_availability")
				e.logger.Debug().
					Err(err).
					Str("pharmacy_id", p.ID).
					Str("query", query).
					Msg("Live availability check failed")
				return nil
			}

			r := newResult(p, av.Medicine, av.Price, av.Quantity, SourceAPI, userLoc)
			slots[i] = &r
			return nil
		})
	}
	// Join before ranking; failures were swallowed per pharmacy.
	_ = g.Wait()

	var results []SearchResult
	for _, r := range slots {
		if r != nil {
			results = append(results, *r)
		}
	}
	return results
}

// CheckAvailability resolves a single (pharmacy, medicine) availability
// question through the fallback cascade. It always returns a definite
// answer and never an error.
func (e *Engine) CheckAvailability(ctx context.Context, pharmacyID, medicineName string) AvailabilityResult {
	pharmacy, ok := e.catalog.PharmacyByID(pharmacyID)
	if !ok {
		// The live tiers can still answer for pharmacies the catalog
		// does not know.
		pharmacy = catalog.Pharmacy{ID: pharmacyID, Name: pharmacyID}
	}

	var tierErr error
	for _, provider := range e.cascade {
		tierCtx, cancel := context.WithTimeout(ctx, e.cfg.CheckTimeout)
		av, err := provider.tryResolve(tierCtx, pharmacy, medicineName)
		cancel()

		if err != nil {
			tierErr = err
			e.metrics.RecordCollaboratorFailure(provider.name())
			e.logger.Debug().
				Err(err).
				Str("tier", provider.name()).
				Str("pharmacy_id", pharmacyID).
				Str("medicine", medicineName).
				Msg("Availability tier failed")
			continue
		}
		if av == nil {
			continue
		}

		e.metrics.RecordAvailabilityTier(provider.name())
		return AvailabilityResult{
			Success:  true,
			Quantity: av.Quantity,
			Price:    av.Price,
			Medicine: av.Medicine,
			Source:   provider.source(),
		}
	}

	e.metrics.RecordAvailabilityTier("none")
	if tierErr != nil {
		return AvailabilityResult{
			Success: false,
			Error:   fmt.Sprintf("availability check for %s at %s failed: %v", medicineName, pharmacy.Name, tierErr),
		}
	}
	return AvailabilityResult{
		Success: false,
		Error:   fmt.Sprintf("%s not found in %s's inventory", medicineName, pharmacy.Name),
	}
}

// newResult builds a search result for a pharmacy, annotating distance
// when both locations are known.
func newResult(p catalog.Pharmacy, medicineName string, price int64, quantity int, source Source, userLoc *UserLocation) SearchResult {
	availability := OutOfStock
	if quantity > 0 {
		availability = InStock
	}

	address := ""
	city := p.City
	if p.Location != nil {
		address = p.Location.Address
		if p.Location.City != "" {
			city = p.Location.City
		}
	}

	return SearchResult{
		PharmacyID:      p.ID,
		PharmacyName:    p.Name,
		PharmacyAddress: address,
		PharmacyCity:    city,
		Distance:        pharmacyDistance(userLoc, p),
		MedicineName:    medicineName,
		Price:           price,
		Quantity:        quantity,
		Availability:    availability,
		Source:          source,
	}
}

// rankResults orders results ascending by price, then ascending by
// distance with unknown distances after every known one. The sort is
// stable, so remaining ties keep discovery order.
func rankResults(results []SearchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Price != b.Price {
			return a.Price < b.Price
		}
		if a.Distance == nil {
			return false
		}
		if b.Distance == nil {
			return true
		}
		return *a.Distance < *b.Distance
	})
}
