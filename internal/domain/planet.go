package domain

// Planet грах, учитываемый в карте
type Planet string

const (
	Sun     Planet = "Sun"
	Moon    Planet = "Moon"
	Mercury Planet = "Mercury"
	Venus   Planet = "Venus"
	Mars    Planet = "Mars"
	Jupiter Planet = "Jupiter"
	Saturn  Planet = "Saturn"
	Rahu    Planet = "Rahu"
	Ketu    Planet = "Ketu"
)

// Body тело, которое умеет считать эфемерида (узлы Раху/Кету выводятся из MeanNode)
type Body string

const (
	BodySun      Body = "Sun"
	BodyMoon     Body = "Moon"
	BodyMercury  Body = "Mercury"
	BodyVenus    Body = "Venus"
	BodyMars     Body = "Mars"
	BodyJupiter  Body = "Jupiter"
	BodySaturn   Body = "Saturn"
	BodyMeanNode Body = "MeanNode"
)

var planets = [...]Planet{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Rahu, Ketu}

var bodies = [...]Body{BodySun, BodyMoon, BodyMercury, BodyVenus, BodyMars, BodyJupiter, BodySaturn, BodyMeanNode}

// Planets все грахи карты в фиксированном порядке
func Planets() []Planet {
	out := make([]Planet, len(planets))
	copy(out, planets[:])
	return out
}

// Bodies все тела, запрашиваемые у эфемериды
func Bodies() []Body {
	out := make([]Body, len(bodies))
	copy(out, bodies[:])
	return out
}

// IsValid проверяет, что планета из списка
func (p Planet) IsValid() bool {
	for _, known := range planets {
		if p == known {
			return true
		}
	}
	return false
}

// вимшоттари: порядок управителей, он же цикл управителей накшатр
var vimshottariOrder = [9]Planet{Ketu, Venus, Sun, Moon, Mars, Rahu, Jupiter, Saturn, Mercury}

// VimshottariOrder порядок махадаш, начиная с Кету
func VimshottariOrder() [9]Planet {
	return vimshottariOrder
}

// VimshottariIndex позиция планеты в цикле (-1 если не найдена)
func VimshottariIndex(p Planet) int {
	for i, lord := range vimshottariOrder {
		if lord == p {
			return i
		}
	}
	return -1
}

var benefics = map[Planet]bool{Jupiter: true, Venus: true, Mercury: true, Moon: true}

// IsBenefic естественные благодетели
func (p Planet) IsBenefic() bool {
	return benefics[p]
}

// PlanetLongitude долгота тела на момент расчёта
type PlanetLongitude struct {
	Planet     Planet  `json:"planet"`
	Longitude  float64 `json:"longitude"`   // [0,360)
	Speed      float64 `json:"speed"`       // градусов в сутки
	Retrograde bool    `json:"retrograde"`
}
