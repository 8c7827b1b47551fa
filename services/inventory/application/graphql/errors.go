package graphql

import (
	"errors"

	inventory "github.com/ghuser/stocktracker/services/inventory/domain"
)

// resolverError carries a machine-readable code in the GraphQL error
// extensions.
type resolverError struct {
	msg    string
	code   string
	fields map[string]string
}

func (e *resolverError) Error() string { return e.msg }

func (e *resolverError) Extensions() map[string]interface{} {
	ext := map[string]interface{}{"code": e.code}
	if len(e.fields) > 0 {
		ext["fields"] = e.fields
	}
	return ext
}

// toResolverError classifies err. Storage failures keep their detail only
// outside production.
func toResolverError(err error, production bool) error {
	if err == nil {
		return nil
	}

	var ve *inventory.ValidationError
	switch {
	case errors.As(err, &ve):
		return &resolverError{msg: "Validation failed", code: "BAD_USER_INPUT", fields: ve.Fields}
	case errors.Is(err, inventory.ErrItemNotFound):
		return &resolverError{msg: inventory.ErrItemNotFound.Error(), code: "NOT_FOUND"}
	case errors.Is(err, inventory.ErrInvalidOperation):
		return &resolverError{msg: inventory.ErrInvalidOperation.Error(), code: "INVALID_OPERATION"}
	case errors.Is(err, inventory.ErrDuplicateName):
		return &resolverError{msg: inventory.ErrDuplicateName.Error(), code: "CONFLICT"}
	}

	msg := err.Error()
	if production {
		msg = "Internal Server Error"
	}
	return &resolverError{msg: msg, code: "INTERNAL"}
}
