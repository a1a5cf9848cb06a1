package create_booking

import (
	"github.com/m04kA/ShareIt-BookingService/internal/domain"
	"github.com/m04kA/ShareIt-BookingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/ShareIt-BookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ItemID int64  `json:"itemId" validate:"required"`
	Start  string `json:"start" validate:"required"` // "2024-06-01T12:00:00"
	End    string `json:"end" validate:"required"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(bookerID int64) (*createBooking.Request, error) {
	start, err := domain.ParseDateTime(r.Start)
	if err != nil {
		return nil, err
	}
	end, err := domain.ParseDateTime(r.End)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		BookerID: bookerID,
		ItemID:   r.ItemID,
		Start:    start,
		End:      end,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в тот же формат, что и остальные ручки бронирований
func FromUseCaseResponse(resp *createBooking.Response) *models.BookingResponse {
	return &models.BookingResponse{
		ID:    resp.ID,
		Start: domain.FormatDateTime(resp.Start),
		End:   domain.FormatDateTime(resp.End),
		Item: models.ItemSummary{
			ID:          resp.Item.ID,
			Name:        resp.Item.Name,
			Description: resp.Item.Description,
			Available:   resp.Item.Available,
			RequestID:   resp.Item.RequestID,
		},
		Booker: models.BookerSummary{
			ID:    resp.Booker.ID,
			Name:  resp.Booker.Name,
			Email: resp.Booker.Email,
		},
		Status: resp.Status,
	}
}
