package pets

import "strings"

// Reglas de stats y gating. Todo acá es puro: sin reloj, sin store, sin random.
// El dispatcher (Service) es el único que llama a estas funciones.

// Reason clasifica un rechazo del motor.
type Reason string

const (
	ReasonInsufficientFood         Reason = "InsufficientFood"
	ReasonInsufficientIntelligence Reason = "InsufficientIntelligence"
	ReasonInsufficientEnergy       Reason = "InsufficientEnergy"
	ReasonPremiumRequired          Reason = "PremiumRequired"
	ReasonInvalidPetType           Reason = "InvalidPetType"
	ReasonInvalidColor             Reason = "InvalidColor"
	ReasonInvalidName              Reason = "InvalidName"
	ReasonInvalidPurchase          Reason = "InvalidPurchase"
	ReasonMissingAppearance        Reason = "MissingAppearance"
	ReasonNotFound                 Reason = "NotFound"
)

// Rejection es un rechazo esperado (no un fallo). Message es apto para el cliente.
type Rejection struct {
	Reason  Reason
	Message string
}

func (r *Rejection) Error() string { return r.Message }

func reject(reason Reason, msg string) *Rejection {
	return &Rejection{Reason: reason, Message: msg}
}

// Wallet son los recursos del usuario que consume el motor.
type Wallet struct {
	FoodCount int
}

// Entitlements se calcula en cada dispatch desde el usuario recién leído.
type Entitlements struct {
	Premium bool
}

type effect struct {
	happiness    int
	energy       int
	intelligence int
}

var (
	eatEffect   = effect{happiness: 3, energy: 12, intelligence: -4}
	playEffect  = effect{happiness: 15, energy: -5, intelligence: 10}
	studyEffect = effect{happiness: 8, energy: -6, intelligence: 18}
)

// Costos = lo que la acción descuenta; hace falta tenerlo completo.
const (
	eatIntelligenceCost = 4
	playEnergyCost      = 5
	studyEnergyCost     = 6
)

// apply suma el efecto y clampea cada stat por separado, después del delta.
func (s Stats) apply(e effect) Stats {
	return Stats{
		Happiness:    clamp(s.Happiness + e.happiness),
		Energy:       clamp(s.Energy + e.energy),
		Intelligence: clamp(s.Intelligence + e.intelligence),
	}
}

func clamp(v int) int {
	return max(MinStat, min(MaxStat, v))
}

// Eat está disponible para todos y la magnitud es la misma en ambos planes.
func Eat(s Stats, w Wallet) (Stats, Wallet, error) {
	if w.FoodCount <= 0 {
		return s, w, reject(ReasonInsufficientFood, "No food available! You need to get more food.")
	}
	if s.Intelligence < eatIntelligenceCost {
		return s, w, reject(ReasonInsufficientIntelligence, "Not smart enough! Eating requires 4 intelligence.")
	}
	return s.apply(eatEffect), Wallet{FoodCount: w.FoodCount - 1}, nil
}

// Play requiere premium aunque haya energía de sobra.
func Play(s Stats, e Entitlements) (Stats, error) {
	if !e.Premium {
		return s, reject(ReasonPremiumRequired, "Premium subscription required")
	}
	if s.Energy < playEnergyCost {
		return s, reject(ReasonInsufficientEnergy, "Not enough energy! Play costs 5 energy.")
	}
	return s.apply(playEffect), nil
}

func Study(s Stats, e Entitlements) (Stats, error) {
	if !e.Premium {
		return s, reject(ReasonPremiumRequired, "Premium subscription required")
	}
	if s.Energy < studyEnergyCost {
		return s, reject(ReasonInsufficientEnergy, "Not enough energy! Study costs 6 energy.")
	}
	return s.apply(studyEffect), nil
}

// Reset (testing) ignora el estado previo.
func Reset() (Stats, Wallet) {
	return DefaultStats(), Wallet{FoodCount: DefaultFoodCount}
}

// PurchaseFood valida la compra; el precio no se descuenta de ningún saldo,
// la autorización del cobro la hace el puerto de pagos.
func PurchaseFood(w Wallet, amount int, price float64) (Wallet, error) {
	if amount <= 0 || price <= 0 {
		return w, reject(ReasonInvalidPurchase, "Amount and price must be positive")
	}
	if amount > MaxFoodCount-w.FoodCount {
		return w, reject(ReasonInvalidPurchase, "Food limit exceeded")
	}
	return Wallet{FoodCount: w.FoodCount + amount}, nil
}

// Rename devuelve el nombre normalizado.
func Rename(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", reject(ReasonInvalidName, "Pet name is required")
	}
	return name, nil
}

// AppearanceChange: nil o vacío = no tocar.
type AppearanceChange struct {
	Type  *string
	Color *string
}

// Restyle valida primero los valores (400) y después los gates (403).
// Los valores se comparan tal cual ("Dragon" no es un tipo válido).
// Cambiar solo el tipo no toca el color y viceversa.
func Restyle(cur Appearance, in AppearanceChange, e Entitlements) (Appearance, error) {
	typ, hasType := trimmed(in.Type)
	col, hasColor := trimmed(in.Color)

	if !hasType && !hasColor {
		return cur, reject(ReasonMissingAppearance, "Pet type or color is required")
	}

	next := cur
	if hasType {
		t := PetType(typ)
		if !t.Valid() {
			return cur, reject(ReasonInvalidPetType, "Invalid pet type")
		}
		next.Type = t
	}
	if hasColor {
		c := Color(col)
		if !c.Valid() {
			return cur, reject(ReasonInvalidColor, "Invalid color")
		}
		next.Color = c
	}

	if hasType && next.Type.Premium() && !e.Premium {
		return cur, reject(ReasonPremiumRequired, "Premium subscription required for rabbit and dragon pets")
	}
	if hasColor && next.Color.Premium() && !e.Premium {
		return cur, reject(ReasonPremiumRequired, "Premium subscription required for color customization")
	}
	return next, nil
}

// Downgrade vuelve a cat los tipos premium; el color queda igual.
func Downgrade(a Appearance) Appearance {
	if a.Type.Premium() {
		a.Type = PetTypeCat
	}
	return a
}

func trimmed(p *string) (string, bool) {
	if p == nil {
		return "", false
	}
	v := strings.TrimSpace(*p)
	return v, v != ""
}
