package entity

// Status constants for Bill. A bill starts at pending and is only moved to
// accepted or refused by the reviewer role, which lives outside this service.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRefused  = "refused"
)

// Expense type constants for Bill
const (
	TypeTransports     = "Transports"
	TypeRestaurants    = "Restaurants et bars"
	TypeHotel          = "Hôtel et logement"
	TypeOnlineServices = "Services en ligne"
	TypeITElectronics  = "IT et électronique"
	TypeEquipment      = "Equipement et matériel"
	TypeOfficeSupplies = "Fournitures de bureau"
)

// ValidStatuses lists the raw status values a stored bill may carry.
var ValidStatuses = []string{StatusPending, StatusAccepted, StatusRefused}
