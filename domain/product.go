package domain

import "github.com/shopspring/decimal"

// ProductRow is the joined projection the catalog pages work with: a product
// together with the name of its category. Products whose category cannot be
// resolved never appear in a ProductRow (the join is inner).
type ProductRow struct {
	ProductID    int64           `json:"productID" db:"product_id"`
	ProductName  string          `json:"productName" db:"product_name"`
	CategoryName string          `json:"categoryName" db:"category_name"`
	Description  string          `json:"description" db:"description"`
	ListPrice    decimal.Decimal `json:"listPrice" db:"list_price"`
}
