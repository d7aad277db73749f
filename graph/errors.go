package graph

import (
	"hotel/errors"

	"github.com/graphql-go/graphql/gqlerrors"
)

// publicError is what a caller sees of a failed operation: the code only.
type publicError struct {
	code errors.ErrorCode
}

var _ gqlerrors.ExtendedError = publicError{}

func (e publicError) Error() string {
	return string(e.code)
}

func (e publicError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": string(e.code)}
}

func toPublic(err error) error {
	return publicError{code: errors.CodeOf(err)}
}
