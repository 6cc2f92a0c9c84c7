package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidRules = errors.New("invalid rules")

var validate = validator.New(validator.WithRequiredStructEnabled())

func Validate(r Rules) error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidRules, err)
	}

	lines := make([]string, 0, len(verrs))
	for _, e := range verrs {
		lines = append(lines, fmt.Sprintf("%s failed %q", trimRoot(e.Namespace()), e.Tag()))
	}
	return fmt.Errorf("%w:\n- %s", ErrInvalidRules, strings.Join(lines, "\n- "))
}

func trimRoot(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
