package entity

import "time"

// ColorVariant variante de esmalte/color aplicable en la etapa GLAZED.
type ColorVariant struct {
	ID        string
	Name      string
	HexCode   string // código de color para el storefront, ej. "#B5651D"
	CreatedAt time.Time
}
