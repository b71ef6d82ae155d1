package autoscope

// PointConfig is one catalog entry. The catalog is the fixed, ordered set
// of checkpoints every inspection session starts from; points are never
// added or removed at runtime.
type PointConfig struct {
	ID       string
	Name     string
	Category PointCategory
	Detail   StructureDetail
	Location Location
	Order    int
}

// Catalog returns the 18 inspection points in walk order: symmetry and
// frame first, then clockwise down the right side and back up the left.
func Catalog() []PointConfig {
	return []PointConfig{
		{ID: "vehicleSymmetry", Name: "Vehicle symmetry check", Category: CategoryStructure, Detail: DetailSymmetry, Location: LocationOverall, Order: 1},
		{ID: "frontFrameRails", Name: "Front frame rails", Category: CategoryStructure, Detail: DetailFrame, Location: LocationFront, Order: 2},
		{ID: "rightFrontSuspension", Name: "Right front suspension mount", Category: CategoryStructure, Detail: DetailSuspension, Location: LocationRight, Order: 3},
		{ID: "rightAPillar", Name: "Right A-pillar paint", Category: CategoryPaint, Location: LocationRight, Order: 4},
		{ID: "rightAPillarWeld", Name: "Right A-pillar weld seam", Category: CategoryStructure, Detail: DetailWeld, Location: LocationRight, Order: 5},
		{ID: "rightBPillar", Name: "Right B-pillar paint", Category: CategoryPaint, Location: LocationRight, Order: 6},
		{ID: "rightBPillarWeld", Name: "Right B-pillar weld seam", Category: CategoryStructure, Detail: DetailWeld, Location: LocationRight, Order: 7},
		{ID: "rightCPillar", Name: "Right C-pillar paint", Category: CategoryPaint, Location: LocationRight, Order: 8},
		{ID: "rightCPillarWeld", Name: "Right C-pillar weld seam", Category: CategoryStructure, Detail: DetailWeld, Location: LocationRight, Order: 9},
		{ID: "rightRearSuspension", Name: "Right rear suspension mount", Category: CategoryStructure, Detail: DetailSuspension, Location: LocationRight, Order: 10},
		{ID: "leftRearSuspension", Name: "Left rear suspension mount", Category: CategoryStructure, Detail: DetailSuspension, Location: LocationLeft, Order: 11},
		{ID: "leftCPillarWeld", Name: "Left C-pillar weld seam", Category: CategoryStructure, Detail: DetailWeld, Location: LocationLeft, Order: 12},
		{ID: "leftCPillar", Name: "Left C-pillar paint", Category: CategoryPaint, Location: LocationLeft, Order: 13},
		{ID: "leftBPillarWeld", Name: "Left B-pillar weld seam", Category: CategoryStructure, Detail: DetailWeld, Location: LocationLeft, Order: 14},
		{ID: "leftBPillar", Name: "Left B-pillar paint", Category: CategoryPaint, Location: LocationLeft, Order: 15},
		{ID: "leftAPillarWeld", Name: "Left A-pillar weld seam", Category: CategoryStructure, Detail: DetailWeld, Location: LocationLeft, Order: 16},
		{ID: "leftAPillar", Name: "Left A-pillar paint", Category: CategoryPaint, Location: LocationLeft, Order: 17},
		{ID: "leftFrontSuspension", Name: "Left front suspension mount", Category: CategoryStructure, Detail: DetailSuspension, Location: LocationLeft, Order: 18},
	}
}

// TotalSteps is the number of steps in the guided flow, one per catalog
// point.
func TotalSteps() int {
	return len(Catalog())
}

// DefaultPaintThickness is the factory paint thickness band applied to
// every paint point.
func DefaultPaintThickness() ThicknessRange {
	return ThicknessRange{Min: 130, Max: 200, Unit: "um"}
}

// DefaultVehicleInfo returns the vehicle record a fresh session starts
// with.
func DefaultVehicleInfo() VehicleInfo {
	return VehicleInfo{
		Model:            "BYD Qin Pro DM 2019",
		VIN:              "LGXC16D39Kxxxxxxx",
		Mileage:          50000,
		Color:            "white",
		RegistrationDate: "2019-06-15",
	}
}

// NewPointFromConfig builds the initial runtime point for a catalog entry.
func NewPointFromConfig(cfg PointConfig) *InspectionPoint {
	point := &InspectionPoint{
		ID:              cfg.ID,
		Name:            cfg.Name,
		Category:        cfg.Category,
		Detail:          cfg.Detail,
		Location:        cfg.Location,
		InspectionOrder: cfg.Order,
		Status:          StatusGood,
		Issues:          []Issue{},
	}
	switch cfg.Category {
	case CategoryPaint:
		t := DefaultPaintThickness()
		point.Thickness = &t
	case CategoryStructure:
		point.Judgment = JudgmentNormal
	}
	return point
}
