package value

import "github.com/pkg/errors"

func errStructMissingField(typeName, field string) error {
	return errors.Errorf("struct %s is missing field %q", typeName, field)
}
