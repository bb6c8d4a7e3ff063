package models

type Category struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Slug     string     `json:"slug"`
	Children []Category `json:"children,omitempty"`
}

type Product struct {
	ID          string  `json:"id"`
	PublicID    string  `json:"public_id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"image_url"`
}

type ProductListResponse struct {
	Products   []Product   `json:"products"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type ProductResponse struct {
	Product *Product `json:"product"`
}

type CategoryListResponse struct {
	Categories []Category `json:"categories"`
}

type Breadcrumb struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}
