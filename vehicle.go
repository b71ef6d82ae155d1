package autoscope

// VehicleInfo is the singleton record describing the inspected vehicle.
type VehicleInfo struct {
	Model            string `json:"model"`
	VIN              string `json:"vin"`
	Plate            string `json:"plate"`
	Mileage          int    `json:"mileage"`
	Color            string `json:"color"`
	RegistrationDate string `json:"regDate"`
	InspectionDate   string `json:"inspectionDate"`
	Inspector        string `json:"inspector"`
	Notes            string `json:"notes"`
}

// VehicleInfoUpdate defines fields that can be merged into the vehicle
// record. Nil fields keep their current value.
type VehicleInfoUpdate struct {
	Model            *string `json:"model,omitempty"`
	VIN              *string `json:"vin,omitempty"`
	Plate            *string `json:"plate,omitempty"`
	Mileage          *int    `json:"mileage,omitempty"`
	Color            *string `json:"color,omitempty"`
	RegistrationDate *string `json:"regDate,omitempty"`
	InspectionDate   *string `json:"inspectionDate,omitempty"`
	Inspector        *string `json:"inspector,omitempty"`
	Notes            *string `json:"notes,omitempty"`
}

// Apply merges the update into a copy of the current info.
func (u VehicleInfoUpdate) Apply(info VehicleInfo) VehicleInfo {
	if u.Model != nil {
		info.Model = *u.Model
	}
	if u.VIN != nil {
		info.VIN = *u.VIN
	}
	if u.Plate != nil {
		info.Plate = *u.Plate
	}
	if u.Mileage != nil {
		info.Mileage = *u.Mileage
	}
	if u.Color != nil {
		info.Color = *u.Color
	}
	if u.RegistrationDate != nil {
		info.RegistrationDate = *u.RegistrationDate
	}
	if u.InspectionDate != nil {
		info.InspectionDate = *u.InspectionDate
	}
	if u.Inspector != nil {
		info.Inspector = *u.Inspector
	}
	if u.Notes != nil {
		info.Notes = *u.Notes
	}
	return info
}
