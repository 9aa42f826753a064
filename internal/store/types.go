package store

import "time"

// #region enums

// Category is a vehicle class. Priority ordering is total and derives
// from the category alone.
type Category string

const (
	CategorySuperfast Category = "Superfast"
	CategoryExpress   Category = "Express"
	CategoryPassenger Category = "Passenger"
	CategoryFreight   Category = "Freight"
)

// Priority returns the dispatch rank for the category. 1 is highest.
func (c Category) Priority() int {
	switch c {
	case CategorySuperfast:
		return 1
	case CategoryExpress:
		return 2
	case CategoryPassenger:
		return 3
	case CategoryFreight:
		return 4
	default:
		return 4
	}
}

// VehicleStatus is the operating status of a vehicle.
type VehicleStatus string

const (
	StatusOnTime  VehicleStatus = "On Time"
	StatusDelayed VehicleStatus = "Delayed"
	StatusHalted  VehicleStatus = "Halted"
)

// TrackType is the track topology of a zone.
type TrackType string

const (
	TrackSingleLine TrackType = "Single Line"
	TrackDoubleLine TrackType = "Double Line"
)

// CongestionLevel is a zone's traffic load.
type CongestionLevel string

const (
	CongestionLow    CongestionLevel = "Low"
	CongestionMedium CongestionLevel = "Medium"
	CongestionHigh   CongestionLevel = "High"
)

// BlockState is a zone's block occupancy state.
type BlockState string

const (
	BlockFree             BlockState = "Free"
	BlockOccupied         BlockState = "Occupied"
	BlockUnderMaintenance BlockState = "Under Maintenance"
)

// PowerState is a zone's traction power state.
type PowerState string

const (
	PowerNormal  PowerState = "Normal"
	PowerBlocked PowerState = "Power Block"
	PowerTripped PowerState = "Tripped"
)

// SignalState is a zone's signalling state.
type SignalState string

const (
	SignalNormal        SignalState = "Normal"
	SignalFailure       SignalState = "Failure"
	SignalManualWorking SignalState = "Manual Working"
)

// Weather is a zone's current weather condition.
type Weather string

const (
	WeatherClear Weather = "Clear"
	WeatherFog   Weather = "Fog"
	WeatherRain  Weather = "Rain"
	WeatherStorm Weather = "Storm"
)

// FactorType classifies an external factor affecting a zone.
type FactorType string

const (
	FactorFestival FactorType = "Festival"
	FactorStrike   FactorType = "Strike"
	FactorExamRush FactorType = "Exam Rush"
	FactorDisaster FactorType = "Natural Disaster"
)

// Severity grades an external factor.
type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

// IncidentType classifies a recorded incident.
type IncidentType string

const (
	IncidentAccident         IncidentType = "Accident"
	IncidentDerailment       IncidentType = "Derailment"
	IncidentLevelCrossing    IncidentType = "Level Crossing"
	IncidentFire             IncidentType = "Fire"
	IncidentSecurity         IncidentType = "Security"
	IncidentTechnicalFailure IncidentType = "Technical Failure"
)

// Outcome records how a decision played out.
type Outcome string

const (
	OutcomeResolved          Outcome = "Resolved"
	OutcomePartiallyResolved Outcome = "Partially Resolved"
	OutcomeEscalated         Outcome = "Escalated"
)

// #endregion enums

// #region entities

// Zone is a managed track segment with its own infrastructure and
// environmental state.
type Zone struct {
	ID         int64
	Name       string
	TrackType  TrackType
	Congestion CongestionLevel
	Block      BlockState
	Power      PowerState
	Signal     SignalState
	Weather    Weather
}

// Vehicle is a train-like unit with a priority class and operating status.
// LinkedVehicleID points at a paired unit for coupled or assist operations.
type Vehicle struct {
	ID              int64
	Number          string
	Category        Category
	Priority        int
	Status          VehicleStatus
	DelayMinutes    int
	CrewStatus      string
	LocoHealth      string
	LinkedVehicleID int64 // 0 when unlinked
}

// Station is a stopping point owned by a zone.
type Station struct {
	ID              int64
	ZoneID          int64
	Platforms       int
	YardCapacity    int
	Occupancy       int
	SpecialFacility string
}

// ExternalFactor is an outside condition affecting a zone.
type ExternalFactor struct {
	ID       int64
	ZoneID   int64
	Type     FactorType
	Severity Severity
	Remarks  string
}

// Incident is a recorded disruption in a zone.
type Incident struct {
	ID         int64
	ZoneID     int64
	VehicleID  int64 // 0 when not tied to a vehicle
	Type       IncidentType
	Timestamp  time.Time
	Resolution string
}

// Decision is an operator action persisted for future retrieval.
// Rows are insert-only: a wrong decision is corrected by a new record,
// never by editing the old one.
type Decision struct {
	ID        int64
	IssueID   int64 // 0 when the decision has no source issue
	ZoneID    int64
	Action    string
	Timestamp time.Time
	Outcome   Outcome
}

// #endregion entities
