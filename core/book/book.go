package book

import "github.com/shopspring/decimal"

func init() {
	// The backend encodes money as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

type Book struct {
	ID     int              `json:"id,omitempty"`
	Title  string           `json:"title"`
	Author string           `json:"author"`
	Price  *decimal.Decimal `json:"price,omitempty"`
	Stock  *int             `json:"stock,omitempty"`
}

// BookNew is the payload for creating or replacing a book. The id is
// always assigned by the backend.
type BookNew struct {
	Title  string           `json:"title" validate:"required"`
	Author string           `json:"author" validate:"required"`
	Price  *decimal.Decimal `json:"price,omitempty" validate:"omitempty,gte=0"`
	Stock  *int             `json:"stock,omitempty" validate:"omitempty,gte=0"`
}

// Page is the backend's paginated envelope for book listings.
type Page struct {
	Content          []Book   `json:"content"`
	TotalPages       int      `json:"totalPages"`
	TotalElements    int      `json:"totalElements"`
	Size             int      `json:"size"`
	Number           int      `json:"number"`
	NumberOfElements int      `json:"numberOfElements"`
	Pageable         Pageable `json:"pageable"`
	Sort             Sort     `json:"sort"`
	First            bool     `json:"first"`
	Last             bool     `json:"last"`
	Empty            bool     `json:"empty"`
}

type Pageable struct {
	Offset     int  `json:"offset"`
	PageNumber int  `json:"pageNumber"`
	PageSize   int  `json:"pageSize"`
	Paged      bool `json:"paged"`
	Sort       Sort `json:"sort"`
	Unpaged    bool `json:"unpaged"`
}

type Sort struct {
	Empty    bool `json:"empty"`
	Sorted   bool `json:"sorted"`
	Unsorted bool `json:"unsorted"`
}
