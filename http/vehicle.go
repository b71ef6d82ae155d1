package http

import (
	"github.com/labstack/echo/v4"

	autoscope "github.com/dukerupert/autoscope"
)

func (s *Server) handleGetVehicleInfo(c echo.Context) error {
	return RespondOK(c, s.inspectionService.VehicleInfo())
}

// UpdateVehicleInfoRequest is the request payload for editing the vehicle
// record. All fields are optional; absent fields are left unchanged.
type UpdateVehicleInfoRequest struct {
	Model            *string `json:"model"`
	VIN              *string `json:"vin" validate:"omitempty,len=17"`
	Plate            *string `json:"plate"`
	Mileage          *int    `json:"mileage" validate:"omitempty,gte=0"`
	Color            *string `json:"color"`
	RegistrationDate *string `json:"regDate"`
	InspectionDate   *string `json:"inspectionDate"`
	Inspector        *string `json:"inspector"`
	Notes            *string `json:"notes"`
}

func (s *Server) handleUpdateVehicleInfo(c echo.Context) error {
	var req UpdateVehicleInfoRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	info := s.inspectionService.UpdateVehicleInfo(autoscope.VehicleInfoUpdate{
		Model:            req.Model,
		VIN:              req.VIN,
		Plate:            req.Plate,
		Mileage:          req.Mileage,
		Color:            req.Color,
		RegistrationDate: req.RegistrationDate,
		InspectionDate:   req.InspectionDate,
		Inspector:        req.Inspector,
		Notes:            req.Notes,
	})
	return RespondOK(c, info)
}
