package discovery

import (
	"context"

	"github.com/medilink/supply-service/internal/catalog"
	"github.com/medilink/supply-service/internal/matching"
)

// availabilityProvider is one tier of the availability cascade. A provider
// returns (result, nil) when it resolved the medicine, (nil, nil) when it
// has nothing for it, and (nil, err) when the tier itself failed. The
// cascade only moves on while no result was produced.
type availabilityProvider interface {
	name() string
	source() Source
	tryResolve(ctx context.Context, pharmacy catalog.Pharmacy, medicineName string) (*Availability, error)
}

// liveProvider asks the collaborator's direct availability endpoint.
type liveProvider struct {
	src InventorySource
}

func (p *liveProvider) name() string   { return "live" }
func (p *liveProvider) source() Source { return SourceAPI }

func (p *liveProvider) tryResolve(ctx context.Context, pharmacy catalog.Pharmacy, medicineName string) (*Availability, error) {
	av, err := p.src.CheckAvailability(ctx, pharmacy.ID, medicineName)
	if err != nil {
		return nil, err
	}
	return &av, nil
}

// inventoryListProvider pulls the pharmacy's full inventory and matches
// the medicine locally by exact normalized name.
type inventoryListProvider struct {
	src InventorySource
}

func (p *inventoryListProvider) name() string   { return "inventory_list" }
func (p *inventoryListProvider) source() Source { return SourceAPI }

func (p *inventoryListProvider) tryResolve(ctx context.Context, pharmacy catalog.Pharmacy, medicineName string) (*Availability, error) {
	items, err := p.src.ListInventory(ctx, pharmacy.ID)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if matching.EqualFold(item.MedicineName, medicineName) {
			return &Availability{
				Quantity: item.Quantity,
				Price:    item.Price,
				Medicine: item.MedicineName,
			}, nil
		}
	}
	return nil, nil
}

// simulatedProvider answers from the static per-pharmacy inventory
// fixture.
type simulatedProvider struct {
	cat *catalog.Store
}

func (p *simulatedProvider) name() string   { return "simulated" }
func (p *simulatedProvider) source() Source { return SourcePharmacyInventory }

func (p *simulatedProvider) tryResolve(_ context.Context, pharmacy catalog.Pharmacy, medicineName string) (*Availability, error) {
	entry, ok := p.cat.SimulatedInventory(medicineName, pharmacy.Name)
	if !ok {
		return nil, nil
	}
	return &Availability{
		Quantity: entry.Quantity,
		Price:    entry.Price,
		Medicine: medicineName,
	}, nil
}

// catalogProvider answers from the catalog's base price with an assumed
// default quantity. It is the last tier: accuracy is lowest but a
// catalog-known medicine always gets a definite answer.
type catalogProvider struct {
	cat             *catalog.Store
	defaultQuantity int
}

func (p *catalogProvider) name() string   { return "catalog" }
func (p *catalogProvider) source() Source { return SourceCatalog }

func (p *catalogProvider) tryResolve(_ context.Context, _ catalog.Pharmacy, medicineName string) (*Availability, error) {
	for _, m := range p.cat.Medicines() {
		if matching.EqualFold(m.Name, medicineName) {
			return &Availability{
				Quantity: p.defaultQuantity,
				Price:    m.BasePrice,
				Medicine: m.Name,
			}, nil
		}
	}
	return nil, nil
}
