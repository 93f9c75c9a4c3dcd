package generator

import "fmt"

// Particle type codes follow the PDG numbering scheme. Both the short
// symbolic names and the long-form names are accepted.
var particleCodes = map[string]int32{
	"gamma":            22,
	"e-":               11,
	"electron":         11,
	"e+":               -11,
	"positron":         -11,
	"mu-":              13,
	"muon_minus":       13,
	"mu+":              -13,
	"muon_plus":        -13,
	"neutron":          2112,
	"anti_neutron":     -2112,
	"proton":           2212,
	"anti_proton":      -2212,
	"pi+":              211,
	"pion_pi_plus":     211,
	"pi-":              -211,
	"pion_pi_minus":    -211,
	"pi0":              111,
	"pion_pi_zero":     111,
	"kaon_plus":        321,
	"kaon_minus":       -321,
	"kaon_zero":        311,
	"nu_e":             12,
	"e_neutrino":       12,
	"anti_nu_e":        -12,
	"e_anti_neutrino":  -12,
	"nu_mu":            14,
	"mi_neutrino":      14,
	"anti_nu_mu":       -14,
	"mi_anti_neutrino": -14,
	"deuteron":         1000010020,
	"triton":           1000010030,
	"he_3":             1000020030,
	"alpha":            1000020040,
	"he_4":             1000020040,
}

// ParticleCode maps a symbolic particle name to its PDG code.
func ParticleCode(name string) (int32, error) {
	code, ok := particleCodes[name]
	if !ok {
		return 0, fmt.Errorf("unknown particle type '%s'", name)
	}
	return code, nil
}
