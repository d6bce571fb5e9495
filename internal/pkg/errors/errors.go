package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены
	// (пользователь, вопрос, департамент без вопросов).
	ErrNotFound = errors.New("record not found")

	// ErrInvalidCredential используется при неверном логине/пароле,
	// а также когда сохранённый хеш пароля повреждён.
	ErrInvalidCredential = errors.New("invalid credentials")

	// ErrAccountLocked используется, когда учётная запись временно заблокирована
	// после неудачных попыток входа.
	ErrAccountLocked = errors.New("account temporarily locked")

	// ErrRateLimited используется, когда клиент превысил лимит чувствительных запросов
	// (например, запросов на сброс пароля) в скользящем окне.
	ErrRateLimited = errors.New("too many requests")

	// ErrInvalidSubmission используется, когда отправлен ответ на несуществующий вопрос
	// или с неизвестным ключом варианта.
	ErrInvalidSubmission = errors.New("invalid submission")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется для конфликтов состояния
	// (например, попытка зарегистрировать занятый username).
	ErrConflict = errors.New("resource state conflict")

	// ErrUnauthorized используется для ошибок авторизации (неверный токен, нет прав).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrGeneration используется, когда внешний источник вопросов недоступен
	// или вернул ошибку. Наружу отдаётся как "попробуйте позже", без авторетраев.
	ErrGeneration = errors.New("question generation failed")

	// ErrParse используется, когда ответ внешнего источника вопросов
	// не удалось привести к ожидаемой форме черновика.
	ErrParse = errors.New("failed to parse generated content")

	// ErrStorage используется при сбое транзакции/коммита в хранилище.
	// Наружу отдаётся как общая повторяемая ошибка.
	ErrStorage = errors.New("storage failure")
)
