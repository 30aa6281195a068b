package models

import "time"

type Location struct {
	Address   string  `json:"address" yaml:"address"`
	City      string  `json:"city" yaml:"city"`
	State     string  `json:"state" yaml:"state"`
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

type Item struct {
	ID            string   `json:"id" yaml:"id"`
	Title         string   `json:"title" yaml:"title"`
	Description   string   `json:"description" yaml:"description"`
	Category      Category `json:"category" yaml:"category"`
	PricePerDay   float64  `json:"price_per_day" yaml:"price_per_day"`
	MaxRentalDays int      `json:"max_rental_days" yaml:"max_rental_days"`
	Images        []string `json:"images" yaml:"images"`
	Location      Location `json:"location" yaml:"location"`
	// Owner is a value snapshot taken when the item is created, not a live
	// reference: later changes to the roster record do not propagate here.
	Owner     User      `json:"owner" yaml:"owner"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Available bool      `json:"available" yaml:"available"`
}
