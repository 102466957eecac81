package kundali

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/admin/astro/kundali-engine/internal/domain"
)

const maxGuna = 36.0

var (
	varnaBySign = [12]string{
		"Kshatriya", "Vaisya", "Shudra", "Brahmin", "Kshatriya", "Vaisya",
		"Shudra", "Brahmin", "Kshatriya", "Vaisya", "Shudra", "Brahmin",
	}
	varnaRank = map[string]int{"Brahmin": 4, "Kshatriya": 3, "Vaisya": 2, "Shudra": 1}

	vashyaBySign = [12]string{
		"Quadruped", "Quadruped", "Manav", "Jalchar", "Quadruped", "Manav",
		"Manav", "Keeta", "Manav", "Jalchar", "Manav", "Jalchar",
	}

	taras     = [9]string{"Janma", "Sampat", "Vipat", "Kshema", "Pratyak", "Sadhak", "Vadha", "Mitra", "Param Mitra"}
	goodTaras = []string{"Sadhak", "Mitra", "Param Mitra", "Sampat", "Kshema"}

	yonis       = [14]string{"Horse", "Elephant", "Sheep", "Serpent", "Dog", "Cat", "Rat", "Cow", "Buffalo", "Tiger", "Hare", "Monkey", "Lion", "Mongoose"}
	yoniByNak   = [27]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	ganas       = [3]string{"Deva", "Manushya", "Rakshasa"}
	ganaByNak   = [27]int{0, 0, 1, 1, 0, 2, 0, 2, 2, 2, 0, 0, 1, 1, 2, 0, 0, 2, 2, 0, 0, 1, 1, 2, 0, 0, 0}
	nadis       = [3]string{"Adi", "Madhya", "Antya"}
	friendships = map[domain.Planet][]domain.Planet{
		domain.Sun:     {domain.Moon, domain.Mars, domain.Jupiter},
		domain.Moon:    {domain.Sun, domain.Mercury},
		domain.Mars:    {domain.Sun, domain.Moon, domain.Jupiter},
		domain.Mercury: {domain.Sun, domain.Venus},
		domain.Jupiter: {domain.Sun, domain.Moon, domain.Mars},
		domain.Venus:   {domain.Mercury, domain.Saturn},
		domain.Saturn:  {domain.Mercury, domain.Venus},
	}
)

// Match ашта-кута гуна милан по Луне двух карт и мангал доша по дому Марса
func (s *Service) Match(ctx context.Context, req domain.MatchRequest) (*domain.MatchResult, error) {
	boy, err := s.Calculate(ctx, req.Boy)
	if err != nil {
		return nil, fmt.Errorf("boy chart: %w", err)
	}
	girl, err := s.Calculate(ctx, req.Girl)
	if err != nil {
		return nil, fmt.Errorf("girl chart: %w", err)
	}

	result, err := MatchCharts(boy, girl)
	if err != nil {
		return nil, err
	}
	s.Metrics.RecordCalculation("matching", s.Ephemeris.Name())
	return result, nil
}

// MatchCharts сравнивает две уже посчитанные карты
func MatchCharts(boy, girl *domain.Chart) (*domain.MatchResult, error) {
	bm, ok := boy.Planet(domain.Moon)
	if !ok {
		return nil, fmt.Errorf("boy chart has no Moon")
	}
	gm, ok := girl.Planet(domain.Moon)
	if !ok {
		return nil, fmt.Errorf("girl chart has no Moon")
	}

	bSign, gSign := bm.Position.Rashi, gm.Position.Rashi
	bNak, gNak := bm.Position.Nakshatra.Index, gm.Position.Nakshatra.Index

	kootas := []domain.Koota{
		varna(bSign, gSign),
		vashya(bSign, gSign),
		tara(bNak, gNak),
		yoni(bNak, gNak),
		grahaMaitri(bSign, gSign),
		gana(bNak, gNak),
		bhakoot(bSign, gSign),
		nadi(bNak, gNak),
	}

	total := 0.0
	for _, k := range kootas {
		total += k.Score
	}

	boyDosha := mangalDosha(boy)
	girlDosha := mangalDosha(girl)

	return &domain.MatchResult{
		Kootas:     kootas,
		Total:      math.Round(total*10) / 10,
		Max:        maxGuna,
		Percentage: int(math.Round(total / maxGuna * 100)),
		Verdict:    verdict(total),
		BoyDosha:   boyDosha,
		GirlDosha:  girlDosha,
		DoshaMatch: boyDosha.Severity == girlDosha.Severity,
	}, nil
}

func varna(b, g domain.Rashi) domain.Koota {
	bv, gv := varnaBySign[b], varnaBySign[g]
	score := 0.0
	if varnaRank[bv] >= varnaRank[gv] {
		score = 1
	}
	return domain.Koota{Name: "Varna", BoyValue: bv, GirlValue: gv, Score: score, Max: 1}
}

func vashya(b, g domain.Rashi) domain.Koota {
	bv, gv := vashyaBySign[b], vashyaBySign[g]
	pair := func(x, y string) bool { return (bv == x && gv == y) || (bv == y && gv == x) }

	var score float64
	switch {
	case bv == gv:
		score = 2
	case pair("Quadruped", "Manav"):
		score = 1
	case pair("Manav", "Jalchar"):
		score = 0.5
	}
	return domain.Koota{Name: "Vashya", BoyValue: bv, GirlValue: gv, Score: score, Max: 2}
}

func taraOf(from, to int) string {
	return taras[((to-from+27)%27)%9]
}

func tara(b, g int) domain.Koota {
	bv, gv := taraOf(b, g), taraOf(g, b)
	score := 1.5
	if slices.Contains(goodTaras, bv) && slices.Contains(goodTaras, gv) {
		score = 3
	}
	return domain.Koota{Name: "Tara", BoyValue: bv, GirlValue: gv, Score: score, Max: 3}
}

func yoni(b, g int) domain.Koota {
	bv, gv := yonis[yoniByNak[b]], yonis[yoniByNak[g]]

	var score float64
	switch {
	case bv == gv:
		score = 4
	case (bv == "Buffalo" && gv == "Cow") || (bv == "Cow" && gv == "Buffalo"):
		score = 3
	default:
		score = 2
	}
	return domain.Koota{Name: "Yoni", BoyValue: bv, GirlValue: gv, Score: score, Max: 4}
}

func grahaMaitri(b, g domain.Rashi) domain.Koota {
	bl, gl := b.Lord(), g.Lord()

	score := 0.5
	switch {
	case bl == gl:
		score = 5
	case slices.Contains(friendships[bl], gl):
		score = 4
	}
	return domain.Koota{Name: "Graha Maitri", BoyValue: string(bl), GirlValue: string(gl), Score: score, Max: 5}
}

func gana(b, g int) domain.Koota {
	bv, gv := ganas[ganaByNak[b]], ganas[ganaByNak[g]]

	score := 0.0
	if bv == gv || (bv != "Rakshasa" && gv != "Rakshasa") {
		score = 6
	}
	return domain.Koota{Name: "Gana", BoyValue: bv, GirlValue: gv, Score: score, Max: 6}
}

func bhakoot(b, g domain.Rashi) domain.Koota {
	diff := int(b) - int(g)
	if diff < 0 {
		diff = -diff
	}

	score := 7.0
	switch diff {
	case 2, 6, 8:
		score = 0
	}
	return domain.Koota{Name: "Bhakoot", BoyValue: b.String(), GirlValue: g.String(), Score: score, Max: 7}
}

func nadi(b, g int) domain.Koota {
	bv, gv := nadis[b%3], nadis[g%3]
	score := 0.0
	if bv != gv {
		score = 8
	}
	return domain.Koota{Name: "Nadi", BoyValue: bv, GirlValue: gv, Score: score, Max: 8}
}

// mangalDosha Марс в 1, 4, 7, 8, 12 доме - сильная, во 2 - слабая
func mangalDosha(c *domain.Chart) domain.MangalDosha {
	mars, ok := c.Planet(domain.Mars)
	if !ok {
		return domain.MangalDosha{Severity: domain.DoshaNone}
	}

	house := mars.Position.House
	switch house {
	case 1, 4, 7, 8, 12:
		return domain.MangalDosha{House: house, Severity: domain.DoshaHigh}
	case 2:
		return domain.MangalDosha{House: house, Severity: domain.DoshaLow}
	default:
		return domain.MangalDosha{House: house, Severity: domain.DoshaNone}
	}
}

func verdict(total float64) string {
	switch {
	case total >= 28:
		return "Excellent"
	case total >= 24:
		return "Very Good"
	case total >= 18:
		return "Good"
	default:
		return "Average"
	}
}
