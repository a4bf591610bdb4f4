package stats

type Attribute int

const (
	Physical Attribute = iota
	Magical
	Healing
)

func (a Attribute) String() string {
	switch a {
	case Magical:
		return "magical"
	case Healing:
		return "healing"
	}
	return "physical"
}

// WeaponSwing is the fire-control shape of a weapon category.
type WeaponSwing struct {
	Amplitude float64 // degrees either side
	Thrust    float64
}

const swingThrust = 0.1

var swingByCategory = map[int]float64{
	111: 60, // great sword
	112: 45, // dagger, spear
	113: 60, // axe
	114: 5,  // long staff
	115: 15, // wand, book
	116: 0,  // bow
	117: 15, // gun, special
}

func Swing(category int) WeaponSwing {
	amp, ok := swingByCategory[category]
	if !ok {
		return WeaponSwing{}
	}
	return WeaponSwing{Amplitude: amp, Thrust: swingThrust}
}

// attributeFor picks the damage attribute from the weapon category.
func attributeFor(category int, support bool) Attribute {
	if support {
		return Healing
	}
	switch category {
	case 114, 115:
		return Magical
	}
	return Physical
}
