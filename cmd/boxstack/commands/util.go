package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/piwi3910/BoxStack/internal/model"
)

// parseVec reads "LxWxH", "L,W,H" or "L W H" into a Vec3.
func parseVec(s string) (model.Vec3, error) {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == 'x' || r == ',' || r == ' '
	})
	if len(fields) != 3 {
		return model.Vec3{}, fmt.Errorf("expected three dimensions like 100x100x100, got %q", s)
	}
	var v model.Vec3
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n <= 0 {
			return model.Vec3{}, fmt.Errorf("invalid dimension %q in %q", f, s)
		}
		v[i] = n
	}
	return v, nil
}

func joinNames(names []string) string {
	return strings.Join(names, ", ")
}
