package product

import (
	"github.com/google/uuid"
)

// Requests

type CreateProductRequest struct {
	CategoryID  uuid.UUID `json:"categoryID" validate:"required"`
	Name        string    `json:"name" validate:"required,min=3,max=100,noAllRepeatingChars"`
	Description string    `json:"description" validate:"max=350"`
	ImageURL    string    `json:"imageURL" validate:"omitempty,url"`
	Price       float64   `json:"price" validate:"required,gt=0"`
	Stock       int       `json:"stock" validate:"min=0"`
}

type UpdateProductRequest struct {
	CategoryID  *uuid.UUID `json:"categoryID"`
	Name        *string    `json:"name" validate:"omitempty,min=3,max=100,noAllRepeatingChars"`
	Description *string    `json:"description" validate:"omitempty,max=350"`
	ImageURL    *string    `json:"imageURL" validate:"omitempty,url"`
	Price       *float64   `json:"price" validate:"omitempty,gt=0"`
	IsActive    *bool      `json:"isActive"`
}

type AdjustStockRequest struct {
	Delta int `json:"delta" validate:"required,ne=0"`
}

type TransferStockRequest struct {
	FromProductID uuid.UUID `json:"fromProductID" validate:"required"`
	ToProductID   uuid.UUID `json:"toProductID" validate:"required,nefield=FromProductID"`
	Quantity      int       `json:"quantity" validate:"required,gt=0"`
}

type FilterOpts struct {
	CategoryID string `json:"categoryID" validate:"omitempty,uuid"`
	Search     string `json:"search"`
}

type PageOpts struct {
	Page  uint64 `json:"page" validate:"min=1"`
	Limit uint64 `json:"limit" validate:"min=1,max=100"`
}

type GetAllProductsRequestQuery struct {
	FilterOpts FilterOpts `json:"filterOpts"`
	PageOpts   PageOpts   `json:"pageOpts"`
}

// Responses

type GetAllProductsResponse struct {
	AllProductsCount    int        `json:"allProductsCount"`
	RetrievedItemsCount int        `json:"retrievedItemsCount"`
	TotalPagesCount     int        `json:"totalPagesCount"`
	Products            []*Product `json:"products"`
}

type TransferStockResponse struct {
	FromProduct         *Product `json:"from_product"`
	ToProduct           *Product `json:"to_product"`
	TransferredQuantity int      `json:"transferred_quantity"`
}
