package create_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/AgendaLite-BookingService/internal/domain"
	"github.com/m04kA/AgendaLite-BookingService/pkg/validate"
)

// validateRequest валидирует входные данные запроса.
// Проверки формы (формат полей) уже сделаны на HTTP-слое; здесь
// отсекается то, с чем движок не может работать в принципе.
func validateRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customerName is too long", ErrInvalidInput)
	}

	email := strings.TrimSpace(req.CustomerEmail)
	if email == "" {
		return fmt.Errorf("%w: customerEmail is required", ErrInvalidInput)
	}
	if len(email) > domain.MaxCustomerEmailLength {
		return fmt.Errorf("%w: customerEmail is too long", ErrInvalidInput)
	}
	if !validate.EmailValid(email) {
		return fmt.Errorf("%w: customerEmail has invalid format", ErrInvalidInput)
	}

	return nil
}
