package airbnb

// TotalSteps is the number of extraction steps a listing is split into.
const TotalSteps = 4

// Step identifies one extraction phase.
const (
	StepBasicInfo     = 1
	StepPriceCapacity = 2
	StepAmenities     = 3
	StepPhotos        = 4
)

// Status of an extraction result.
type Status string

const (
	StatusSuccess Status = "success"
	StatusPartial Status = "partial"
	StatusError   Status = "error"
)

// Source tells which data source produced a result.
type Source string

const (
	SourceDOM Source = "dom"
	SourceAPI Source = "api"
)

// Property types reported in BasicInfo.Type.
const (
	TypeApartment = "apartamento"
	TypeHouse     = "casa"
	TypeChalet    = "chalé"
	TypeRoom      = "quarto"
	TypeHotel     = "hotel"
	TypeOther     = "outro"
)

// Request asks for one step of a listing.
type Request struct {
	URL  string `json:"url"`
	Step int    `json:"step"`
}

// Result is the envelope returned for every step. It is built once and never mutated.
type Result struct {
	Status           Status `json:"status"`
	Step             int    `json:"step"`
	TotalSteps       int    `json:"totalSteps"`
	Message          string `json:"message"`
	Data             any    `json:"data"`
	Error            string `json:"error,omitempty"`
	Source           Source `json:"source,omitempty"`
	MultiStepPending bool   `json:"multiStepPending,omitempty"`
}

// BasicInfo is the step 1 payload.
type BasicInfo struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Address     string `json:"address"`
	Geohash     string `json:"geohash,omitempty"`
}

// PriceCapacity is the step 2 payload.
type PriceCapacity struct {
	Price     float64 `json:"price"`
	Rooms     int     `json:"rooms"`
	Bathrooms int     `json:"bathrooms"`
	Beds      int     `json:"beds"`
	Guests    int     `json:"guests"`
}

// Amenity is a single amenity line.
type Amenity struct {
	Text string `json:"text"`
}

// Amenities is the step 3 payload.
type Amenities struct {
	Amenities          []Amenity `json:"amenities"`
	AmenitiesWithIcons []string  `json:"amenitiesWithIcons"`
}

// Photos is the step 4 payload.
type Photos struct {
	Photos []string `json:"photos"`
}

// Listing is the merged payload of all four steps.
type Listing struct {
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	Type               string    `json:"type"`
	Address            string    `json:"address"`
	Geohash            string    `json:"geohash,omitempty"`
	Price              float64   `json:"price"`
	Rooms              int       `json:"rooms"`
	Bathrooms          int       `json:"bathrooms"`
	Beds               int       `json:"beds"`
	Guests             int       `json:"guests"`
	Amenities          []Amenity `json:"amenities"`
	AmenitiesWithIcons []string  `json:"amenitiesWithIcons"`
	Photos             []string  `json:"photos"`
}

// StepOutcome summarizes one step of a complete run.
type StepOutcome struct {
	Step    int    `json:"step"`
	Status  Status `json:"status"`
	Message string `json:"message"`
	Source  Source `json:"source,omitempty"`
}

// CompleteResult is returned when all steps run in one call.
type CompleteResult struct {
	Status    Status        `json:"status"`
	Message   string        `json:"message"`
	SourceURL string        `json:"sourceUrl"`
	Data      Listing       `json:"data"`
	Steps     []StepOutcome `json:"steps"`
	Errors    []string      `json:"errors,omitempty"`
}
