package shared

import (
	"hotel/shared/constant"
	"hotel/shared/dto"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

func ConvertStringToBool(value string) *bool {
	if value == "" {
		return nil
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to bool")

		return nil
	}

	return &boolValue
}

// BuildCacheKey joins prefix and parts with colons, e.g. "hotel:get:<id>".
func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), ":")
}

// ReplaceFields maps every db column of data to its value, zero values included, and sets
// updated_at. Embedded structs and columns listed in skip are left out. Use it for full replace updates.
func ReplaceFields(data any, updatedAt time.Time, skip ...string) map[string]any {
	val := reflect.ValueOf(data)
	typ := reflect.TypeOf(data)

	fields := make(map[string]any)

	for index := range val.NumField() {
		if typ.Field(index).Anonymous {
			continue
		}

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" || fieldName == "-" {
			continue
		}

		if slices.Contains(skip, fieldName) {
			continue
		}

		fields[fieldName] = val.Field(index).Interface()
	}

	fields[constant.FieldUpdatedAt] = updatedAt

	return fields
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}
