package validate

import (
	"regexp"
	"strings"
)

// emailPattern намеренно нестрогий: реальная проверка адреса возможна
// только письмом, здесь отсекаются лишь очевидно битые значения
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// FieldErrors набор ошибок валидации по полям формы.
// Пустая мапа означает, что форма валидна.
type FieldErrors map[string]string

// Empty возвращает true, если ошибок нет
func (e FieldErrors) Empty() bool {
	return len(e) == 0
}

// Add добавляет ошибку поля, не затирая уже найденную
func (e FieldErrors) Add(field, message string) {
	if _, ok := e[field]; !ok {
		e[field] = message
	}
}

// BookingForm проверяет поля формы бронирования (имя и email клиента)
// и возвращает структурированный набор ошибок по полям. Функция чистая
// и не привязана к транспорту: её использует HTTP-слой, но может
// использовать и любой другой.
func BookingForm(customerName, customerEmail string, maxNameLen, maxEmailLen int) FieldErrors {
	errs := FieldErrors{}

	name := strings.TrimSpace(customerName)
	if name == "" {
		errs.Add("customerName", "el nombre es obligatorio")
	} else if len(name) > maxNameLen {
		errs.Add("customerName", "el nombre es demasiado largo")
	}

	email := strings.TrimSpace(customerEmail)
	switch {
	case email == "":
		errs.Add("customerEmail", "el correo es obligatorio")
	case len(email) > maxEmailLen:
		errs.Add("customerEmail", "el correo es demasiado largo")
	case !EmailValid(email):
		errs.Add("customerEmail", "el correo no tiene un formato válido")
	}

	return errs
}

// EmailValid проверяет, похожа ли строка на email-адрес
func EmailValid(s string) bool {
	return emailPattern.MatchString(s)
}
