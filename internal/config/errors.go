package config

import "errors"

var (
	// ErrReadFile возвращается, когда файл конфигурации не удалось прочитать
	ErrReadFile = errors.New("config: failed to read file")

	// ErrDecodeFile возвращается при ошибке разбора TOML
	ErrDecodeFile = errors.New("config: failed to decode toml")

	// ErrEnvOverride возвращается при некорректных переменных окружения
	ErrEnvOverride = errors.New("config: failed to apply environment overrides")

	// ErrInvalidConfig возвращается, когда настройки не проходят валидацию
	ErrInvalidConfig = errors.New("config: invalid configuration")
)
