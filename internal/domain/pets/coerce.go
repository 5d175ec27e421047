package pets

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrNotInteger = errors.New("value is not integer-convertible")

// toInt convierte un valor JSON (decodificado con UseNumber) a int.
// Acepta números (los decimales se truncan), strings con un entero y bools.
func toInt(v any) (int, error) {
	switch x := v.(type) {
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return int(n), nil
		}
		f, err := x.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrNotInteger, x.String())
		}
		return floatToInt(f)
	case float64:
		return floatToInt(x)
	case int:
		return x, nil
	case int64:
		return int(x), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrNotInteger, x)
		}
		return n, nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("%w: %T", ErrNotInteger, v)
	}
}

// floatToInt trunca f; fuera del rango de int (o NaN/Inf) es error.
func floatToInt(f float64) (int, error) {
	if math.IsNaN(f) || f < math.MinInt || f >= math.MaxInt {
		return 0, fmt.Errorf("%w: %v", ErrNotInteger, f)
	}
	return int(math.Trunc(f)), nil
}

// intField: ausente => def; presente => toInt (null incluido, que falla).
func intField(fields map[string]any, key string, def int) (int, error) {
	v, ok := fields[key]
	if !ok {
		return def, nil
	}
	n, err := toInt(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

// stringField: ausente o null => def; otros tipos se formatean.
func stringField(fields map[string]any, key, def string) string {
	v, ok := fields[key]
	if !ok || v == nil {
		return def
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
