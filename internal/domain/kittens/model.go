package kittens

import "time"

// Kitten es el recurso protegido: solo su dueño puede leerlo o borrarlo.
type Kitten struct {
	ID          string
	OwnerUserID string

	Name  string
	Age   int // años, >= 0
	Color string

	CreatedAt time.Time
}
