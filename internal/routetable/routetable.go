// Package routetable holds the static mapping from SPA paths to pages.
//
// The table is built once at startup and validated before the server accepts
// traffic, so a bad redirect or a duplicated path fails the process early
// instead of surfacing as a broken link.
package routetable

import (
	"errors"
	"fmt"
	"strings"
)

// Route maps a path either to a page or to another path.
// Exactly one of Page and Redirect is set.
type Route struct {
	Path     string
	Name     string
	Page     string
	Redirect string
}

// IsRedirect reports whether the route forwards to another path.
func (r Route) IsRedirect() bool {
	return r.Redirect != ""
}

// Table is an immutable, validated route table. It is safe for concurrent use.
type Table struct {
	routes []Route
	byPath map[string]int
}

var ErrNotFound = errors.New("route not found")

// Default returns the application's page routes.
//
// "/" sends visitors to the onboarding page.
// TODO: confirm "/started" as the landing target with product; earlier
// frontend builds disagreed on where "/" should go.
func Default() []Route {
	return []Route{
		{Path: "/", Redirect: "/started"},
		{Path: "/started", Name: "GetStarted", Page: "GetStarted"},
	}
}

// New validates routes and builds a Table.
func New(routes ...Route) (*Table, error) {
	if len(routes) == 0 {
		return nil, errors.New("route table is empty")
	}

	t := &Table{
		routes: append([]Route(nil), routes...),
		byPath: make(map[string]int, len(routes)),
	}

	names := make(map[string]string)
	var errs []error

	for i, r := range t.routes {
		if err := validatePath(r.Path); err != nil {
			errs = append(errs, fmt.Errorf("route %d: %w", i, err))
			continue
		}
		if _, dup := t.byPath[r.Path]; dup {
			errs = append(errs, fmt.Errorf("route %q: duplicate path", r.Path))
			continue
		}
		t.byPath[r.Path] = i

		switch {
		case r.Page == "" && r.Redirect == "":
			errs = append(errs, fmt.Errorf("route %q: needs a page or a redirect", r.Path))
		case r.Page != "" && r.Redirect != "":
			errs = append(errs, fmt.Errorf("route %q: cannot have both a page and a redirect", r.Path))
		}

		if r.Name != "" {
			if other, dup := names[r.Name]; dup {
				errs = append(errs, fmt.Errorf("route %q: name %q already used by %q", r.Path, r.Name, other))
			} else {
				names[r.Name] = r.Path
			}
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	for _, r := range t.routes {
		if !r.IsRedirect() {
			continue
		}
		if _, ok := t.byPath[r.Redirect]; !ok {
			errs = append(errs, fmt.Errorf("route %q: redirect target %q is not in the table", r.Path, r.Redirect))
			continue
		}
		if _, err := t.Resolve(r.Path); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return t, nil
}

func validatePath(p string) error {
	if p == "" {
		return errors.New("empty path")
	}
	if !strings.HasPrefix(p, "/") {
		return fmt.Errorf("path %q must start with /", p)
	}
	if strings.ContainsAny(p, ":*?#") {
		return fmt.Errorf("path %q must be static", p)
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		return fmt.Errorf("path %q must not end with /", p)
	}
	return nil
}

// Lookup returns the route registered for path without following redirects.
func (t *Table) Lookup(path string) (Route, bool) {
	i, ok := t.byPath[path]
	if !ok {
		return Route{}, false
	}
	return t.routes[i], true
}

// Resolve follows redirects from path and returns the page route it ends on.
func (t *Table) Resolve(path string) (Route, error) {
	seen := make(map[string]bool)
	current := path

	for {
		r, ok := t.Lookup(current)
		if !ok {
			return Route{}, fmt.Errorf("%w: %q", ErrNotFound, current)
		}
		if !r.IsRedirect() {
			return r, nil
		}
		if seen[current] {
			return Route{}, fmt.Errorf("route %q: redirect loop through %q", path, current)
		}
		seen[current] = true
		current = r.Redirect
	}
}

// Routes returns a copy of the routes in declaration order.
func (t *Table) Routes() []Route {
	return append([]Route(nil), t.routes...)
}
