package graph

import (
	"fmt"
	"strconv"

	"hotel/errors"
)

func idArg(args map[string]interface{}, name string) (uint64, error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return 0, errors.New(errors.ErrCodeInvalidID, name+" is required")
	}
	id, err := strconv.ParseUint(fmt.Sprint(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New(errors.ErrCodeInvalidID, fmt.Sprintf("%s %q is not an id", name, raw))
	}
	return id, nil
}

func stringArg(args map[string]interface{}, name string) string {
	s, _ := args[name].(string)
	return s
}

func optionalString(args map[string]interface{}, name string) *string {
	s, ok := args[name].(string)
	if !ok {
		return nil
	}
	return &s
}

func optionalFloat(args map[string]interface{}, name string) *float64 {
	switch v := args[name].(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	}
	return nil
}

func formatID(id uint64) string {
	return strconv.FormatUint(id, 10)
}
