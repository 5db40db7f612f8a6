package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderflowhq/orderflow-backend/pkg/db/models"
	"github.com/orderflowhq/orderflow-backend/pkg/enums"
	pkgerrors "github.com/orderflowhq/orderflow-backend/pkg/errors"
)

func parseUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid identifier").WithDetails(map[string]any{"param": name})
	}
	return id, nil
}

type productView struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Category    *string         `json:"category,omitempty"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func newProductView(p *models.Product) productView {
	return productView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Category:    p.Category,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func newProductViews(list []models.Product) []productView {
	out := make([]productView, 0, len(list))
	for i := range list {
		out = append(out, newProductView(&list[i]))
	}
	return out
}

type orderItemView struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type orderView struct {
	ID              uuid.UUID         `json:"id"`
	OrderNumber     string            `json:"order_number"`
	UserID          uuid.UUID         `json:"user_id"`
	Status          enums.OrderStatus `json:"status"`
	TotalAmount     decimal.Decimal   `json:"total_amount"`
	DeliveryAddress *string           `json:"delivery_address,omitempty"`
	Notes           *string           `json:"notes,omitempty"`
	OrderDate       time.Time         `json:"order_date"`
	Items           []orderItemView   `json:"items"`
}

func newOrderView(o *models.Order) orderView {
	items := make([]orderItemView, 0, len(o.Items))
	for _, item := range o.Items {
		view := orderItemView{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		}
		if item.Product != nil {
			view.ProductName = item.Product.Name
		}
		items = append(items, view)
	}
	return orderView{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		UserID:          o.UserID,
		Status:          o.Status,
		TotalAmount:     o.TotalAmount,
		DeliveryAddress: o.DeliveryAddress,
		Notes:           o.Notes,
		OrderDate:       o.OrderDate,
		Items:           items,
	}
}

func newOrderViews(list []models.Order) []orderView {
	out := make([]orderView, 0, len(list))
	for i := range list {
		out = append(out, newOrderView(&list[i]))
	}
	return out
}

type customerView struct {
	ID            uuid.UUID           `json:"id"`
	CompanyName   string              `json:"company_name"`
	ContactPerson *string             `json:"contact_person,omitempty"`
	Phone         *string             `json:"phone,omitempty"`
	Email         *string             `json:"email,omitempty"`
	Address       *string             `json:"address,omitempty"`
	Industry      *string             `json:"industry,omitempty"`
	Source        *string             `json:"source,omitempty"`
	Grade         enums.CustomerGrade `json:"grade"`
	TotalOrders   int                 `json:"total_orders"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	LastOrderDate *time.Time          `json:"last_order_date,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

func newCustomerView(c *models.Customer) customerView {
	return customerView{
		ID:            c.ID,
		CompanyName:   c.CompanyName,
		ContactPerson: c.ContactPerson,
		Phone:         c.Phone,
		Email:         c.Email,
		Address:       c.Address,
		Industry:      c.Industry,
		Source:        c.Source,
		Grade:         c.Grade,
		TotalOrders:   c.TotalOrders,
		TotalAmount:   c.TotalAmount,
		LastOrderDate: c.LastOrderDate,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func newCustomerViews(list []models.Customer) []customerView {
	out := make([]customerView, 0, len(list))
	for i := range list {
		out = append(out, newCustomerView(&list[i]))
	}
	return out
}

type interactionView struct {
	ID              uuid.UUID             `json:"id"`
	CustomerID      uuid.UUID             `json:"customer_id"`
	Type            enums.InteractionType `json:"interaction_type"`
	Content         string                `json:"content"`
	NextAction      *string               `json:"next_action,omitempty"`
	ActionCompleted bool                  `json:"action_completed"`
	RecordedBy      string                `json:"recorded_by"`
	CreatedAt       time.Time             `json:"created_at"`
}

func newInteractionView(i *models.Interaction) interactionView {
	return interactionView{
		ID:              i.ID,
		CustomerID:      i.CustomerID,
		Type:            i.Type,
		Content:         i.Content,
		NextAction:      i.NextAction,
		ActionCompleted: i.ActionCompleted,
		RecordedBy:      i.RecordedBy,
		CreatedAt:       i.CreatedAt,
	}
}

func newInteractionViews(list []models.Interaction) []interactionView {
	out := make([]interactionView, 0, len(list))
	for i := range list {
		out = append(out, newInteractionView(&list[i]))
	}
	return out
}
