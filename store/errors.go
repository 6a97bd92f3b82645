package store

import "fmt"

// Domain errors are returned as values rather than raised through the
// transport layer; handlers match them with errors.As and answer 400.

type ProductNotFoundError struct {
	ProductID int
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product with id %d does not exist", e.ProductID)
}

type InsufficientStockError struct {
	ProductID int
	Name      string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %q", e.Name)
}

type DuplicateEmailError struct {
	Email string
}

func (e *DuplicateEmailError) Error() string {
	return fmt.Sprintf("user with email %s is already registered", e.Email)
}
