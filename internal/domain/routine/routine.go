package routine

import (
	"github.com/yanqian/skinfit/internal/domain/catalog"
	"github.com/yanqian/skinfit/internal/domain/profile"
)

// Step is one ordered item of a routine.
type Step struct {
	Order       int              `json:"order"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Category    catalog.Category `json:"category,omitempty"`
	Focus       profile.Concern  `json:"focus,omitempty"`
}

// Routine is the ordered list of steps generated for a profile.
type Routine struct {
	Steps []Step `json:"steps"`
}

func (r *Routine) add(step Step) {
	step.Order = len(r.Steps) + 1
	r.Steps = append(r.Steps, step)
}

// Generate builds the routine for a profile. It is deterministic and accepts
// English labels as well as the form's.
func Generate(p profile.Profile) Routine {
	var r Routine
	p = canonical(p)
	freq := profile.NormalizeFrequency(string(p.Frequency))

	r.add(cleanseStep(p.SkinType))
	if freq.Extended() && len(p.Conditions) > 0 {
		r.add(exfoliateStep(p))
	}
	r.add(treatStep(p))
	r.add(hydrateStep(p.SkinType))
	r.add(Step{
		Name:        "Protector solar SPF 50+",
		Description: "Aplica cada mañana como último paso y reaplica cada 2-3 horas de exposición.",
		Category:    catalog.CategorySunscreen,
	})
	return r
}

func canonical(p profile.Profile) profile.Profile {
	if st, ok := profile.ParseSkinType(string(p.SkinType)); ok {
		p.SkinType = st
	}
	labels := make([]string, len(p.Conditions))
	for i, c := range p.Conditions {
		labels[i] = string(c)
	}
	p.Conditions = profile.NormalizeConditions(labels)
	return p
}

func cleanseStep(st profile.SkinType) Step {
	if st == profile.SkinOily || st == profile.SkinCombination {
		return Step{
			Name:        "Limpiador en gel",
			Description: "Limpieza con gel purificante mañana y noche para controlar el exceso de sebo.",
			Category:    catalog.CategoryCleanser,
		}
	}
	return Step{
		Name:        "Limpiador suave",
		Description: "Limpieza con crema o leche limpiadora que respeta la barrera de la piel.",
		Category:    catalog.CategoryCleanser,
	}
}

func exfoliateStep(p profile.Profile) Step {
	switch {
	case p.Has(profile.ConcernAcne):
		return Step{
			Name:        "Exfoliante BHA",
			Description: "Ácido salicílico 2-3 noches por semana para destapar poros.",
			Category:    catalog.CategoryExfoliant,
			Focus:       profile.ConcernAcne,
		}
	case p.Has(profile.ConcernSpots):
		return Step{
			Name:        "Exfoliante AHA",
			Description: "Ácido glicólico o láctico 2 noches por semana para unificar el tono.",
			Category:    catalog.CategoryExfoliant,
			Focus:       profile.ConcernSpots,
		}
	default:
		return Step{
			Name:        "Exfoliación suave",
			Description: "Exfoliante enzimático una vez por semana.",
			Category:    catalog.CategoryExfoliant,
		}
	}
}

func treatStep(p profile.Profile) Step {
	switch {
	case p.Has(profile.ConcernAcne):
		return Step{
			Name:        "Sérum anti-acné",
			Description: "Niacinamida o ácido salicílico para reducir brotes e inflamación.",
			Category:    catalog.CategorySerum,
			Focus:       profile.ConcernAcne,
		}
	case p.Has(profile.ConcernSpots):
		return Step{
			Name:        "Sérum iluminador",
			Description: "Vitamina C o ácido azelaico por la mañana para atenuar manchas.",
			Category:    catalog.CategorySerum,
			Focus:       profile.ConcernSpots,
		}
	case p.SkinType == profile.SkinDry:
		return Step{
			Name:        "Sérum hidratante",
			Description: "Ácido hialurónico sobre la piel húmeda para retener agua.",
			Category:    catalog.CategorySerum,
		}
	default:
		return Step{
			Name:        "Sérum antioxidante",
			Description: "Antioxidantes por la mañana para proteger frente al daño ambiental.",
			Category:    catalog.CategorySerum,
		}
	}
}

func hydrateStep(st profile.SkinType) Step {
	switch st {
	case profile.SkinOily:
		return Step{
			Name:        "Hidratante ligero oil-free",
			Description: "Gel o fluido no comedogénico.",
			Category:    catalog.CategoryMoisturizer,
		}
	case profile.SkinDry:
		return Step{
			Name:        "Crema hidratante rica",
			Description: "Crema con ceramidas para reparar la barrera cutánea.",
			Category:    catalog.CategoryMoisturizer,
		}
	default:
		return Step{
			Name:        "Hidratante equilibrante",
			Description: "Textura ligera a media que hidrata sin engrasar.",
			Category:    catalog.CategoryMoisturizer,
		}
	}
}
