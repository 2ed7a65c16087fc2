package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/rl1809/storefront/internal/core/domain"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func was(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

var (
	mensSizes   = []float64{7, 8, 9, 10, 11, 12}
	womensSizes = []float64{5, 6, 7, 8, 9, 10}
	kidsSizes   = []float64{1, 2, 3, 4, 5}
)

func defaultProducts() []domain.Product {
	return []domain.Product{
		{
			ID:            "1",
			Name:          "Air Zoom Pegasus 40",
			Brand:         "Nike",
			Category:      "Running",
			Price:         price("129.99"),
			OriginalPrice: was("149.99"),
			Image:         "https://images.example.com/products/pegasus-40.jpg",
			Sizes:         mensSizes,
			Colors:        []string{"Black", "White", "Blue"},
			Description:   "Responsive daily trainer with a breathable mesh upper.",
			Rating:        4.7,
			Reviews:       1284,
		},
		{
			ID:          "2",
			Name:        "Ultraboost Light",
			Brand:       "Adidas",
			Category:    "Running",
			Price:       price("189.99"),
			Image:       "https://images.example.com/products/ultraboost-light.jpg",
			Sizes:       mensSizes,
			Colors:      []string{"White", "Grey"},
			Description: "Lightweight cushioning that returns energy with every stride.",
			Rating:      4.8,
			Reviews:     956,
		},
		{
			ID:          "3",
			Name:        "Chuck Taylor All Star",
			Brand:       "Converse",
			Category:    "Casual",
			Price:       price("59.99"),
			Image:       "https://images.example.com/products/chuck-taylor.jpg",
			Sizes:       []float64{5, 6, 7, 8, 9, 10, 11, 12},
			Colors:      []string{"Black", "White", "Red"},
			Description: "The canvas high-top that never goes out of style.",
			Rating:      4.6,
			Reviews:     3410,
		},
		{
			ID:            "4",
			Name:          "Old Skool",
			Brand:         "Vans",
			Category:      "Skate",
			Price:         price("69.99"),
			OriginalPrice: was("79.99"),
			Image:         "https://images.example.com/products/old-skool.jpg",
			Sizes:         mensSizes,
			Colors:        []string{"Black", "Navy"},
			Description:   "Suede and canvas skate shoe with the iconic side stripe.",
			Rating:        4.5,
			Reviews:       2210,
		},
		{
			ID:          "5",
			Name:        "Air Force 1 '07",
			Brand:       "Nike",
			Category:    "Casual",
			Price:       price("109.99"),
			Image:       "https://images.example.com/products/air-force-1.jpg",
			Sizes:       mensSizes,
			Colors:      []string{"White", "Black"},
			Description: "Crisp leather classic with Air cushioning.",
			Rating:      4.8,
			Reviews:     5120,
		},
		{
			ID:          "6",
			Name:        "Gel-Kayano 30",
			Brand:       "Asics",
			Category:    "Running",
			Price:       price("159.99"),
			Image:       "https://images.example.com/products/gel-kayano-30.jpg",
			Sizes:       mensSizes,
			Colors:      []string{"Blue", "Black"},
			Description: "Stability trainer for long distances.",
			Rating:      4.6,
			Reviews:     740,
		},
		{
			ID:            "7",
			Name:          "Classic Leather",
			Brand:         "Reebok",
			Category:      "Casual",
			Price:         price("44.99"),
			OriginalPrice: was("74.99"),
			Image:         "https://images.example.com/products/classic-leather.jpg",
			Sizes:         womensSizes,
			Colors:        []string{"White", "Pink"},
			Description:   "Soft leather upper on a low-profile cushioned sole.",
			Rating:        4.3,
			Reviews:       612,
		},
		{
			ID:          "8",
			Name:        "Forum Low",
			Brand:       "Adidas",
			Category:    "Basketball",
			Price:       price("99.99"),
			Image:       "https://images.example.com/products/forum-low.jpg",
			Sizes:       mensSizes,
			Colors:      []string{"White", "Green"},
			Description: "Eighties hardwood heritage with an ankle strap.",
			Rating:      4.4,
			Reviews:     388,
		},
		{
			ID:          "9",
			Name:        "LeBron XXI",
			Brand:       "Nike",
			Category:    "Basketball",
			Price:       price("199.99"),
			Image:       "https://images.example.com/products/lebron-21.jpg",
			Sizes:       mensSizes,
			Colors:      []string{"Purple", "Black"},
			Description: "Court shoe with Zoom Turbo cushioning and cable lockdown.",
			Rating:      4.7,
			Reviews:     201,
		},
		{
			ID:          "10",
			Name:        "Suede Classic XXI",
			Brand:       "Puma",
			Category:    "Casual",
			Price:       price("74.99"),
			Image:       "https://images.example.com/products/suede-classic.jpg",
			Sizes:       womensSizes,
			Colors:      []string{"Red", "Black", "Blue"},
			Description: "Street staple in soft suede.",
			Rating:      4.4,
			Reviews:     830,
		},
		{
			ID:          "11",
			Name:        "Sk8-Hi Kids",
			Brand:       "Vans",
			Category:    "Kids",
			Price:       price("49.99"),
			Image:       "https://images.example.com/products/sk8-hi-kids.jpg",
			Sizes:       kidsSizes,
			Colors:      []string{"Black", "Checkerboard"},
			Description: "High-top skate shoe sized for kids.",
			Rating:      4.6,
			Reviews:     154,
		},
		{
			ID:          "12",
			Name:        "Fresh Foam X 1080v13",
			Brand:       "New Balance",
			Category:    "Running",
			Price:       price("164.99"),
			Image:       "https://images.example.com/products/1080v13.jpg",
			Sizes:       mensSizes,
			Colors:      []string{"Grey", "Orange"},
			Description: "Plush neutral cushioning for everyday miles.",
			Rating:      4.5,
			Reviews:     472,
		},
	}
}
