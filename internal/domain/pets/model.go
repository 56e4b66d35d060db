package pets

import (
	"math"
	"time"
)

// PetType define los tipos de mascota.
// @Enum cat, dog, bird, rabbit, dragon
type PetType string

const (
	PetTypeCat    PetType = "cat"
	PetTypeDog    PetType = "dog"
	PetTypeBird   PetType = "bird"
	PetTypeRabbit PetType = "rabbit" // premium
	PetTypeDragon PetType = "dragon" // premium
)

// Valid indica si el tipo existe.
func (t PetType) Valid() bool {
	switch t {
	case PetTypeCat, PetTypeDog, PetTypeBird, PetTypeRabbit, PetTypeDragon:
		return true
	}
	return false
}

// Premium indica si el tipo requiere suscripción.
func (t PetType) Premium() bool {
	return t == PetTypeRabbit || t == PetTypeDragon
}

// Color define los colores disponibles.
// @Enum orange, black, white, brown, gray, gold
type Color string

const (
	ColorOrange Color = "orange" // default, gratis
	ColorBlack  Color = "black"
	ColorWhite  Color = "white"
	ColorBrown  Color = "brown"
	ColorGray   Color = "gray"
	ColorGold   Color = "gold"
)

func (c Color) Valid() bool {
	switch c {
	case ColorOrange, ColorBlack, ColorWhite, ColorBrown, ColorGray, ColorGold:
		return true
	}
	return false
}

// Premium: cualquier color distinto del default requiere suscripción.
func (c Color) Premium() bool {
	return c != DefaultColor
}

const (
	DefaultName             = "Buddy"
	DefaultType     PetType = PetTypeCat
	DefaultColor    Color   = ColorOrange
	DefaultStat             = 50
	DefaultFoodCount        = 10

	MinStat = 0
	MaxStat = 100

	// MaxFoodCount es el tope de comida acumulada (columna INTEGER de postgres).
	MaxFoodCount = math.MaxInt32
)

// Stats son los atributos acotados a [MinStat, MaxStat].
type Stats struct {
	Happiness    int
	Energy       int
	Intelligence int
}

// DefaultStats es el estado inicial y el resultado de reset.
func DefaultStats() Stats {
	return Stats{Happiness: DefaultStat, Energy: DefaultStat, Intelligence: DefaultStat}
}

// Changes es el delta por stat (nuevo - anterior).
type Changes struct {
	Happiness    int
	Energy       int
	Intelligence int
}

// Since calcula el delta respecto de prev.
func (s Stats) Since(prev Stats) Changes {
	return Changes{
		Happiness:    s.Happiness - prev.Happiness,
		Energy:       s.Energy - prev.Energy,
		Intelligence: s.Intelligence - prev.Intelligence,
	}
}

// Appearance es la parte cosmética de la mascota.
type Appearance struct {
	Type  PetType
	Color Color
}

// Pet: una por usuario, creada al registrarse.
type Pet struct {
	ID     string
	UserID string

	Name string
	Stats
	Appearance

	UpdatedAt time.Time
}

// NewPet arma la mascota por defecto para un usuario.
func NewPet(id, userID string, now time.Time) Pet {
	return Pet{
		ID:         id,
		UserID:     userID,
		Name:       DefaultName,
		Stats:      DefaultStats(),
		Appearance: Appearance{Type: DefaultType, Color: DefaultColor},
		UpdatedAt:  now,
	}
}
