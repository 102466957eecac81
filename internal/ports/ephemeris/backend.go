package ephemeris

import "github.com/admin/astro/kundali-engine/internal/domain"

// IBackend источник тропических геоцентрических видимых долгот на дату.
// Загружается один раз при старте, дальше только читается.
type IBackend interface {
	// Name имя бэкенда для логов и ответа
	Name() string
	// Range допустимый диапазон JDE
	Range() (startJD, endJD float64)
	// Longitude долгота (градусы) и скорость (градусы в сутки) тела на JDE.
	// Вне диапазона возвращает domain.ErrEphemerisUnavailable.
	Longitude(jde float64, body domain.Body) (lon, speed float64, err error)
	Close() error
}
