package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ошибки валидации и бизнес-правил
	ErrValidationFailed   = errors.New("validation failed")
	ErrTeamNameRequired   = errors.New("team name is required")
	ErrSportRequired      = errors.New("sport is required")
	ErrNegativeScore      = errors.New("scores must not be negative")
	ErrBracketExists      = errors.New("sport already has semifinals")
	ErrBracketAdvanced    = errors.New("final and third-place matches already exist")
	ErrBracketNotReady    = errors.New("both semifinals must be finished first")
	ErrScheduleImportSize = errors.New("schedule is too large to import")

	// Ошибки конфликтов
	ErrTeamNameConflict = errors.New("team name is already in use")

	// Ошибки аутентификации и авторизации
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")

	ErrTeamNotFound  = errors.New("team not found")
	ErrMatchNotFound = errors.New("match not found")
	ErrSportNotFound = errors.New("sport not found")
)
