package handler

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/freshmart/grocery-api/internal/core/domain"
)

// Prices cross the JSON boundary as plain numbers; decimals live only
// inside the domain.

type productResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Category  string  `json:"category"`
	Inventory int     `json:"inventory"`
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price.InexactFloat64(),
		Category:  p.Category,
		Inventory: p.Inventory,
	}
}

type productCreateRequest struct {
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Category  string  `json:"category"`
	Inventory int     `json:"inventory"`
}

type productUpdateRequest struct {
	Name      *string  `json:"name"`
	Price     *float64 `json:"price"`
	Category  *string  `json:"category"`
	Inventory *int     `json:"inventory"`
}

func (r productUpdateRequest) toPatch() domain.ProductPatch {
	patch := domain.ProductPatch{
		Name:      r.Name,
		Category:  r.Category,
		Inventory: r.Inventory,
	}
	if r.Price != nil {
		price := decimal.NewFromFloat(*r.Price)
		patch.Price = &price
	}
	return patch
}

type stockLevelResponse struct {
	ProductID int64 `json:"product_id"`
	Inventory int   `json:"inventory"`
}

type customerResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func toCustomerResponse(c domain.Customer) customerResponse {
	return customerResponse{ID: c.ID, Name: c.Name, Email: c.Email}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string           `json:"access_token"`
	TokenType   string           `json:"token_type"`
	User        customerResponse `json:"user"`
}

type customerUpdateRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

type orderItemCreateRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type orderCreateRequest struct {
	CustomerID int64                    `json:"customer_id"`
	Items      []orderItemCreateRequest `json:"items"`
}

type orderItemResponse struct {
	ProductID       int64   `json:"product_id"`
	Quantity        int     `json:"quantity"`
	PriceAtPurchase float64 `json:"price_at_purchase"`
}

type orderResponse struct {
	ID         int64               `json:"id"`
	CustomerID int64               `json:"customer_id"`
	Items      []orderItemResponse `json:"items"`
	TotalPrice float64             `json:"total_price"`
	Status     string              `json:"status"`
	CreatedAt  string              `json:"created_at"`
}

func toOrderResponse(o domain.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, orderItemResponse{
			ProductID:       item.ProductID,
			Quantity:        item.Quantity,
			PriceAtPurchase: item.PriceAtPurchase.InexactFloat64(),
		})
	}
	return orderResponse{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		Items:      items,
		TotalPrice: o.TotalPrice.InexactFloat64(),
		Status:     string(o.Status),
		CreatedAt:  o.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type orderStatusUpdateRequest struct {
	Status string `json:"status"`
}

type ackResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}
