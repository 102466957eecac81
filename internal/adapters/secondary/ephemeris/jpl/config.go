package jpl

// Config путь к бинарному файлу JPL DE (de440.bin, de421.bin ...)
type Config struct {
	Path string `envconfig:"FILE" default:"./data/de440.bin"`
}
