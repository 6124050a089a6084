package mappers

import (
	"encoding/json"
	"fmt"

	"tixgate/internal/domain/order"
	vo "tixgate/internal/domain/order/valueobjects"
	"tixgate/internal/infrastructure/persistence/models"
)

func OrderToDomain(model *models.OrderModel) (*order.Order, error) {
	total, err := vo.NewMoneyFromString(model.TotalAmount, model.Currency)
	if err != nil {
		return nil, fmt.Errorf("invalid stored total for order %d: %w", model.ID, err)
	}

	var records []models.OrderItemRecord
	if err := json.Unmarshal(model.Items, &records); err != nil {
		return nil, fmt.Errorf("invalid stored items for order %d: %w", model.ID, err)
	}

	items := make([]order.LineItem, 0, len(records))
	for _, rec := range records {
		price, err := vo.NewMoneyFromString(rec.Price, model.Currency)
		if err != nil {
			return nil, fmt.Errorf("invalid stored item price for order %d: %w", model.ID, err)
		}
		items = append(items, order.LineItem{
			Name:        rec.Name,
			Description: rec.Description,
			Price:       price,
			Quantity:    rec.Quantity,
		})
	}

	return order.NewOrder(model.PaymentToken, total, items)
}

func OrderToModel(o *order.Order) (*models.OrderModel, error) {
	items := o.Items()
	records := make([]models.OrderItemRecord, 0, len(items))
	for _, item := range items {
		records = append(records, models.OrderItemRecord{
			Name:        item.Name,
			Description: item.Description,
			Price:       item.Price.Format(),
			Quantity:    item.Quantity,
		})
	}

	encoded, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to encode order items: %w", err)
	}

	return &models.OrderModel{
		PaymentToken: o.PaymentToken(),
		TotalAmount:  o.Total().Format(),
		Currency:     o.Total().Currency(),
		Items:        encoded,
	}, nil
}
