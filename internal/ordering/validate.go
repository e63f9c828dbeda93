package ordering

import (
	"fmt"
	"strings"

	"cafe/internal/models"
)

const (
	CodeEmptyCart       = "EMPTY_CART"
	CodeInvalidType     = "INVALID_TYPE"
	CodeInvalidQuantity = "INVALID_QUANTITY"
	CodeMissingTable    = "MISSING_TABLE"
	CodeMissingName     = "MISSING_NAME"
	CodeMissingAddress  = "MISSING_ADDRESS"
	CodeBelowMinimum    = "BELOW_MINIMUM"
)

// ValidationError rejects a submission before anything is written.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Code + ": " + e.Message
}

func invalid(code, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CartLine is one menu item with the quantity the customer picked.
type CartLine struct {
	Item     models.MenuItem
	Quantity int
}

type SubmitRequest struct {
	Items       []CartLine
	Type        models.OrderType
	Customer    models.OrderCustomer
	TableNumber string
}

// Constraints are the business rules read from settings.
type Constraints struct {
	DeliveryFee    float64
	MinOrderAmount float64
}

func ConstraintsFrom(s *models.Settings) Constraints {
	if s == nil {
		return Constraints{}
	}
	return Constraints{DeliveryFee: s.DeliveryFee, MinOrderAmount: s.MinOrderAmount}
}

// Validate checks a submission against the order rules. Dine-in orders need
// a table number and are exempt from the minimum amount; pickup and delivery
// need a customer name, delivery also an address.
func Validate(req SubmitRequest, c Constraints) error {
	if len(req.Items) == 0 {
		return invalid(CodeEmptyCart, "cart is empty")
	}
	if !req.Type.Valid() {
		return invalid(CodeInvalidType, "unknown order type %q", req.Type)
	}
	for _, line := range req.Items {
		if line.Quantity <= 0 {
			return invalid(CodeInvalidQuantity, "quantity for %q must be greater than zero", line.Item.Name)
		}
	}

	if req.Type == models.OrderTypeDineIn {
		if strings.TrimSpace(req.TableNumber) == "" {
			return invalid(CodeMissingTable, "table number is required for dine-in orders")
		}
		return nil
	}

	if strings.TrimSpace(req.Customer.Name) == "" {
		return invalid(CodeMissingName, "customer name is required")
	}
	if req.Type == models.OrderTypeDelivery && strings.TrimSpace(req.Customer.Address) == "" {
		return invalid(CodeMissingAddress, "address is required for delivery orders")
	}
	if c.MinOrderAmount > 0 {
		if subtotal := Quote(req, c).Subtotal; subtotal < c.MinOrderAmount {
			return invalid(CodeBelowMinimum, "subtotal %.2f is below the minimum order amount %.2f", subtotal, c.MinOrderAmount)
		}
	}
	return nil
}

type Totals struct {
	Subtotal    float64
	DeliveryFee float64
	Total       float64
}

// Quote prices the cart. The delivery fee only applies to delivery orders.
func Quote(req SubmitRequest, c Constraints) Totals {
	var subtotal float64
	for _, line := range req.Items {
		subtotal += line.Item.EffectivePrice() * float64(line.Quantity)
	}
	subtotal = models.RoundMoney(subtotal)

	var fee float64
	if req.Type == models.OrderTypeDelivery && c.DeliveryFee > 0 {
		fee = models.RoundMoney(c.DeliveryFee)
	}
	return Totals{Subtotal: subtotal, DeliveryFee: fee, Total: models.RoundMoney(subtotal + fee)}
}
