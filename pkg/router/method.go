package router

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
)

// MethodAll expands to every supported method on registration.
const MethodAll = "ALL"

// Methods lists the supported HTTP methods in their canonical order.
var Methods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodHead,
	http.MethodDelete,
	http.MethodConnect,
	http.MethodOptions,
	http.MethodPatch,
}

// expandMethods normalizes methods to upper case, expands MethodAll and
// removes duplicates while keeping first-seen order.
func expandMethods(methods []string) ([]string, error) {
	if len(methods) == 0 {
		return nil, fmt.Errorf("%w: no methods given", ErrInvalidMethod)
	}

	out := make([]string, 0, len(methods))
	for _, m := range methods {
		m = strings.ToUpper(strings.TrimSpace(m))
		if m == MethodAll {
			for _, all := range Methods {
				if !slices.Contains(out, all) {
					out = append(out, all)
				}
			}
			continue
		}
		if !slices.Contains(Methods, m) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidMethod, m)
		}
		if !slices.Contains(out, m) {
			out = append(out, m)
		}
	}
	return out, nil
}
