package models

import "time"

type Product struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	Category      string    `json:"category"`
	Size          string    `json:"size"`
	Color         string    `json:"color"`
	StockQuantity int       `json:"stock_quantity"`
	CreatedAt     time.Time `json:"created_at"`
}

type CreateProductRequest struct {
	Name          string  `json:"name" binding:"required,min=1,max=100"`
	Description   string  `json:"description"`
	Price         float64 `json:"price" binding:"required,gt=0"`
	Category      string  `json:"category" binding:"required"`
	Size          string  `json:"size" binding:"required"`
	Color         string  `json:"color" binding:"required"`
	StockQuantity int     `json:"stock_quantity" binding:"gte=0"`
}

// Sort keys accepted by the product listing.
const (
	SortPrice     = "price"
	SortPriceDesc = "price_desc"
	SortName      = "name"
)
