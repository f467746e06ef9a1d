package dto

import (
	"roomboard/infras/jwt"
	"roomboard/internal/domains/staff/model"
)

type StaffResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	PinRequired  bool   `json:"pin_required"`
	BookingCount int    `json:"booking_count"`
}

func (r *StaffResponse) FromModel(model model.Staff, bookingCount int) {
	r.ID = model.ID
	r.Name = model.Name
	r.PinRequired = model.HasPin()
	r.BookingCount = bookingCount
}

type GetStaffResponse struct {
	Staff     []StaffResponse `json:"staff"`
	TotalData int             `json:"total_data"`
}

func (r *GetStaffResponse) FromModels(models []model.Staff, counts map[string]int) {
	r.TotalData = len(models)

	r.Staff = make([]StaffResponse, len(models))
	for i, mod := range models {
		r.Staff[i].FromModel(mod, counts[mod.ID])
	}
}

type SessionRequest struct {
	StaffID string `json:"staff_id" validate:"required"`
	Pin     string `json:"pin"      validate:"omitempty,numeric,min=4,max=8"`
}

type SessionResponse struct {
	Staff StaffResponse `json:"staff"`
	jwt.Token
}
