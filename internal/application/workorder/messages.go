package workorder

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// ruleMessage returns a human-readable message for a failed rule
func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return MsgRequired
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			return MsgEmptyList
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "gt":
		return fmt.Sprintf("Ensure this value is greater than %s.", fe.Param())
	case "board", "vehicle", "unit", "maintenance_type", "priority":
		return fmt.Sprintf("%q is not a valid choice.", fmt.Sprint(fe.Value()))
	case "hhmm":
		return "Time has wrong format. Use HH:MM."
	case "odometer_order":
		return "Ensure this value is greater than or equal to odometer_start."
	default:
		return "Invalid value."
	}
}
