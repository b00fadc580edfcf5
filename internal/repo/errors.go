package repo

import "errors"

var (
	// ErrProductNotFound is returned when a product is not found in the repository.
	ErrProductNotFound = errors.New("product not found")
	// ErrDuplicatedValueUnique is returned when a unique field (id or name) is already taken.
	ErrDuplicatedValueUnique = errors.New("unique constraint violation")
	ErrUserNotFound          = errors.New("user not found")
	ErrSupplierNotFound      = errors.New("supplier not found")
)
