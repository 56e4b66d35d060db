package users

import "time"

// User es la cuenta. PasswordHash es opaco (lo maneja el PasswordHasher) y nunca se serializa.
type User struct {
	ID           string
	Username     string
	PasswordHash string

	IsPremium bool
	FoodCount int // nunca negativo

	CreatedAt time.Time
}

// DefaultFoodCount es la comida con la que arranca cada cuenta.
const DefaultFoodCount = 10
