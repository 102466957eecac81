package domain

import "errors"

var (
	// ErrEphemerisUnavailable эфемерида не может посчитать позицию для момента (вне диапазона и т.п.)
	ErrEphemerisUnavailable = errors.New("ephemeris unavailable")
	// ErrAscendantUndefined широта слишком близка к полюсу, асцендент не определён
	ErrAscendantUndefined = errors.New("ascendant undefined")
	// ErrInvalidLongitude долгота вне [0,360) после нормализации (NaN, Inf)
	ErrInvalidLongitude = errors.New("invalid longitude")
	// ErrInvalidCoordinates координаты вне допустимых диапазонов
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	// ErrInvalidBirthMoment некорректная дата/время рождения
	ErrInvalidBirthMoment = errors.New("invalid birth moment")
	// ErrInvalidUTCOffset смещение от UTC не распознано
	ErrInvalidUTCOffset = errors.New("invalid utc offset")
	// ErrInvalidOption неизвестная система зодиака или домов
	ErrInvalidOption = errors.New("invalid option")
)

// BusinessError ошибка бизнес-логики, которая уже залогирована в UseCase
type BusinessError struct {
	Err error
}

func (e *BusinessError) Error() string {
	return e.Err.Error()
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func WrapBusinessError(err error) error {
	if err == nil {
		return nil
	}
	return &BusinessError{Err: err}
}

func IsBusinessError(err error) bool {
	var businessErr *BusinessError
	return errors.As(err, &businessErr)
}

// IsCalculationError ошибка самого расчёта (детерминирована входными данными)
func IsCalculationError(err error) bool {
	return errors.Is(err, ErrEphemerisUnavailable) ||
		errors.Is(err, ErrAscendantUndefined) ||
		errors.Is(err, ErrInvalidLongitude)
}

// IsValidationError ошибка входных данных
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidCoordinates) ||
		errors.Is(err, ErrInvalidBirthMoment) ||
		errors.Is(err, ErrInvalidUTCOffset) ||
		errors.Is(err, ErrInvalidOption)
}
