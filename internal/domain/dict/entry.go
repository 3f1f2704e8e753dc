package dict

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/workify/backend/internal/domain/shared"
)

// Entry is a code/name pair of a simple dictionary (currencies, document
// types). Exactly one entry per dictionary may be flagged as default.
type Entry struct {
	shared.BaseEntity
	Code      string
	Name      string
	IsDefault bool
}

func newEntry(code, name string, isDefault bool, maxCode int) (Entry, error) {
	e := Entry{BaseEntity: shared.NewBaseEntity()}
	if err := e.set(code, name, isDefault, maxCode); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (e *Entry) set(code, name string, isDefault bool, maxCode int) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	name = strings.TrimSpace(name)

	err := validation.Errors{
		"code": validation.Validate(code, validation.Required, validation.RuneLength(1, maxCode)),
		"name": validation.Validate(name, validation.Required, validation.RuneLength(1, 50)),
	}.Filter()
	if err != nil {
		return shared.ValidationError(err)
	}

	e.Code = code
	e.Name = name
	e.IsDefault = isDefault
	e.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
	return nil
}

// String returns the code, the label used in lists
func (e Entry) String() string {
	return e.Code
}
