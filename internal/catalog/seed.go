package catalog

// DefaultSeed returns the built-in catalog fixture: the base medicines,
// the pharmacy directory for the Addis Ababa region, base price listings
// and the simulated per-pharmacy inventory table.
func DefaultSeed() Seed {
	return Seed{
		Medicines: []Medicine{
			{ID: "MED-001", Name: "Insulin", BasePrice: 115, BaseRating: 4.6, AvailabilityTag: "in_stock"},
			{ID: "MED-002", Name: "Amoxicillin 500mg", BasePrice: 45, BaseRating: 4.3, AvailabilityTag: "in_stock"},
			{ID: "MED-003", Name: "Paracetamol 500mg", BasePrice: 15, BaseRating: 4.1, AvailabilityTag: "in_stock"},
			{ID: "MED-004", Name: "Metformin 500mg", BasePrice: 60, BaseRating: 4.4, AvailabilityTag: "in_stock"},
			{ID: "MED-005", Name: "Amlodipine 5mg", BasePrice: 55, BaseRating: 4.2, AvailabilityTag: "limited"},
			{ID: "MED-006", Name: "Omeprazole 20mg", BasePrice: 38, BaseRating: 4.0, AvailabilityTag: "in_stock"},
		},
		Pharmacies: []Pharmacy{
			{
				ID: "PH-001", Name: "Addis Lifeline Pharmacy", LicenseID: "ETH-PH-1101",
				City: "Addis Ababa", Kebele: "Bole 03", Approval: ApprovalApproved,
				Location: &Location{Latitude: 9.0054, Longitude: 38.7636, Address: "Bole Road, Addis Ababa", City: "Addis Ababa"},
			},
			{
				ID: "PH-002", Name: "Unity Health Pharmacy", LicenseID: "ETH-PH-1408",
				City: "Addis Ababa", Kebele: "Kirkos 08", Approval: ApprovalApproved,
				Location: &Location{Latitude: 9.0107, Longitude: 38.7469, Address: "Kirkos, Addis Ababa", City: "Addis Ababa"},
			},
			{
				ID: "PH-003", Name: "Hawassa Central Pharmacy", LicenseID: "ETH-PH-2210",
				City: "Hawassa", Kebele: "Tabor 01", Approval: ApprovalApproved,
				Location: &Location{Latitude: 7.0504, Longitude: 38.4955, Address: "Piazza, Hawassa", City: "Hawassa"},
			},
			{
				// No profile location yet; distance to this pharmacy is unknown.
				ID: "PH-004", Name: "Entoto View Pharmacy", LicenseID: "ETH-PH-1612",
				City: "Addis Ababa", Kebele: "Gulele 06", Approval: ApprovalApproved,
			},
			{
				ID: "PH-005", Name: "Meridian Pharma Store", LicenseID: "ETH-PH-1733",
				City: "Adama", Kebele: "Dembela 02", Approval: ApprovalPending,
				Location: &Location{Latitude: 8.5400, Longitude: 39.2700, Address: "Main Street, Adama", City: "Adama"},
			},
			{
				ID: "PH-006", Name: "Blue Nile Dispensary", LicenseID: "ETH-PH-1902",
				City: "Bahir Dar", Kebele: "Belay Zeleke 04", Approval: ApprovalRejected,
				Location: &Location{Latitude: 11.5936, Longitude: 37.3908, Address: "Lakefront, Bahir Dar", City: "Bahir Dar"},
			},
		},
		BaseListings: map[string][]Listing{
			"MED-001": {
				{PharmacyName: "Addis Lifeline Pharmacy", Location: "Addis Ababa, Bole 03", Price: 115, Rating: 4.5},
				{PharmacyName: "Unity Health Pharmacy", Location: "Addis Ababa, Kirkos 08", Price: 125, Rating: 4.5},
			},
			"MED-002": {
				{PharmacyName: "Addis Lifeline Pharmacy", Location: "Addis Ababa, Bole 03", Price: 45, Rating: 4.5},
				{PharmacyName: "Hawassa Central Pharmacy", Location: "Hawassa, Tabor 01", Price: 48, Rating: 4.5},
			},
			"MED-003": {
				{PharmacyName: "Unity Health Pharmacy", Location: "Addis Ababa, Kirkos 08", Price: 15, Rating: 4.5},
			},
			"MED-004": {
				{PharmacyName: "Addis Lifeline Pharmacy", Location: "Addis Ababa, Bole 03", Price: 60, Rating: 4.5},
			},
			"MED-005": {
				{PharmacyName: "Hawassa Central Pharmacy", Location: "Hawassa, Tabor 01", Price: 58, Rating: 4.5},
			},
			"MED-006": {
				{PharmacyName: "Unity Health Pharmacy", Location: "Addis Ababa, Kirkos 08", Price: 38, Rating: 4.5},
				{PharmacyName: "Entoto View Pharmacy", Location: "Addis Ababa, Gulele 06", Price: 40, Rating: 4.5},
			},
		},
		Inventory: map[string]InventoryEntry{
			InventoryKey("Insulin", "Addis Lifeline Pharmacy"):           {Quantity: 25, Price: 112},
			InventoryKey("Insulin", "Unity Health Pharmacy"):             {Quantity: 0, Price: 125},
			InventoryKey("Amoxicillin 500mg", "Addis Lifeline Pharmacy"): {Quantity: 60, Price: 44},
			InventoryKey("Amoxicillin 500mg", "Hawassa Central Pharmacy"): {Quantity: 35, Price: 47},
			InventoryKey("Paracetamol 500mg", "Unity Health Pharmacy"):   {Quantity: 120, Price: 14},
			InventoryKey("Metformin 500mg", "Addis Lifeline Pharmacy"):   {Quantity: 40, Price: 59},
			InventoryKey("Omeprazole 20mg", "Entoto View Pharmacy"):      {Quantity: 18, Price: 39},
		},
	}
}
