package jobs

import "time"

// Config расписание фоновых джоб
type Config struct {
	// Enabled обновлять текущие позиции в кэше по расписанию
	Enabled bool `envconfig:"ENABLED" default:"true"`
	// Hour час запуска обновления позиций в Timezone
	Hour     int    `envconfig:"HOUR" default:"5"`
	Timezone string `envconfig:"TIMEZONE" default:"Asia/Kolkata"`
	// CleanupInterval очистка истёкших ключей in-memory кэша
	CleanupInterval time.Duration `envconfig:"CLEANUP_INTERVAL" default:"10m"`
}

// Location часовой пояс расписания, UTC если зона не найдена
func (c Config) Location() *time.Location {
	location, err := time.LoadLocation(c.Timezone)
	if err != nil || location == nil {
		return time.UTC
	}
	return location
}
