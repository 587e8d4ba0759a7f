package models

// SabotageEffect is what the saboteur inflicts on a target's canvas
type SabotageEffect string

const (
	SabotageEffectShake  SabotageEffect = "shake"
	SabotageEffectInvert SabotageEffect = "invert"
	SabotageEffectBlur   SabotageEffect = "blur"
)

// Valid reports whether e is a known effect
func (e SabotageEffect) Valid() bool {
	switch e {
	case SabotageEffectShake, SabotageEffectInvert, SabotageEffectBlur:
		return true
	}
	return false
}
