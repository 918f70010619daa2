package models

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"gorm.io/gorm"
)

// Price bounds for a pizza on a restaurant menu, both inclusive
const (
	MinPrice = 1
	MaxPrice = 30
)

// ErrValidation is matched by every domain validation failure
var ErrValidation = errors.New("validation failed")

// OutOfRangeError reports a value outside its allowed inclusive bounds
type OutOfRangeError struct {
	Field string
	Value int
	Min   int
	Max   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s must be between %d and %d, got %d", e.Field, e.Min, e.Max, e.Value)
}

func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrValidation
}

// RequiredFieldError reports a required text field that is empty or only whitespace
type RequiredFieldError struct {
	Field string
}

func (e *RequiredFieldError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

func (e *RequiredFieldError) Is(target error) bool {
	return target == ErrValidation
}

// ValidatePrice checks price against [MinPrice, MaxPrice]
func ValidatePrice(price int) error {
	if price < MinPrice || price > MaxPrice {
		return &OutOfRangeError{Field: "price", Value: price, Min: MinPrice, Max: MaxPrice}
	}
	return nil
}

// ValidateRequired rejects blank values for the named field
func ValidateRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &RequiredFieldError{Field: field}
	}
	return nil
}

// assignedValue returns the value a write stores in column, and false when the
// write leaves the column untouched. Creates and saves write the model itself,
// while Update and Updates carry the new values in Statement.Dest.
func assignedValue(tx *gorm.DB, model interface{}, field, column string, current interface{}) (interface{}, bool) {
	if tx == nil || tx.Statement == nil || tx.Statement.Dest == nil {
		return current, true
	}
	stmt := tx.Statement

	if values, ok := stmt.Dest.(map[string]interface{}); ok {
		if v, ok := values[column]; ok {
			return v, true
		}
		if v, ok := values[field]; ok {
			return v, true
		}
		return nil, false
	}

	dest := reflect.ValueOf(stmt.Dest)
	if dest.Kind() == reflect.Ptr {
		if dest.Pointer() == reflect.ValueOf(model).Pointer() {
			return current, true
		}
		dest = dest.Elem()
	}
	if dest.Kind() != reflect.Struct || dest.Type() != reflect.TypeOf(model).Elem() {
		return current, true
	}

	// Updates with a struct skips zero fields unless they are selected
	v := dest.FieldByName(field)
	if v.IsZero() && !selected(stmt, field, column) {
		return nil, false
	}
	return v.Interface(), true
}

func selected(stmt *gorm.Statement, field, column string) bool {
	for _, s := range stmt.Selects {
		if s == "*" || s == field || s == column {
			return true
		}
	}
	return false
}

// toInt converts numeric update values. SQL expressions report false and are
// left to the database constraints.
func toInt(v interface{}) (int, bool, error) {
	rv := reflect.Indirect(reflect.ValueOf(v))
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(rv.Int()), true, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int(rv.Uint()), true, nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f != math.Trunc(f) {
			return 0, false, fmt.Errorf("%w: price must be a whole number, got %v", ErrValidation, f)
		}
		return int(f), true, nil
	}
	return 0, false, nil
}

// validatePriceWrite checks the price a create or update is about to store
func validatePriceWrite(tx *gorm.DB, rp *RestaurantPizza) error {
	v, ok := assignedValue(tx, rp, "Price", "price", rp.Price)
	if !ok {
		return nil
	}
	price, isNumber, err := toInt(v)
	if err != nil || !isNumber {
		return err
	}
	return ValidatePrice(price)
}

// requiredField names a struct field and the column it is stored in
type requiredField struct {
	field  string
	column string
}

// validateRequiredWrite checks each required text field a create or update is about to store
func validateRequiredWrite(tx *gorm.DB, model interface{}, fields ...requiredField) error {
	elem := reflect.Indirect(reflect.ValueOf(model))
	for _, f := range fields {
		v, ok := assignedValue(tx, model, f.field, f.column, elem.FieldByName(f.field).Interface())
		if !ok {
			continue
		}
		s, isString := v.(string)
		if p, isPtr := v.(*string); isPtr && p != nil {
			s, isString = *p, true
		}
		if !isString {
			continue
		}
		if err := ValidateRequired(f.column, s); err != nil {
			return err
		}
	}
	return nil
}
