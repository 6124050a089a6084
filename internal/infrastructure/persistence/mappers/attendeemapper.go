package mappers

import (
	"tixgate/internal/domain/order"
	vo "tixgate/internal/domain/order/valueobjects"
	"tixgate/internal/infrastructure/persistence/models"
)

func AttendeeToDomain(model *models.AttendeeModel) *order.Attendee {
	return &order.Attendee{
		ID:            model.ID,
		PaymentToken:  model.PaymentToken,
		TransactionID: model.TransactionID,
		AccessToken:   model.AccessToken,
		Email:         model.Email,
		FirstName:     model.FirstName,
		LastName:      model.LastName,
		PaymentState:  vo.PaymentState(model.PaymentState),
	}
}
