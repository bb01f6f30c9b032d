package web

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/text/language"

	"github.com/goliatone/go-lessonplan/pkg/catalog"
)

var errUnknownCatalog = errors.New("unknown catalog")

// resolveCatalog picks the requested catalog, or the best Accept-Language
// match among loaded catalogs, or the default one.
func (s *Server) resolveCatalog(r *http.Request, requested string) (catalog.Catalog, string, error) {
	if name := strings.TrimSpace(requested); name != "" {
		cat, ok := s.catalogs.Get(name)
		if !ok {
			return catalog.Catalog{}, "", fmt.Errorf("%w %q", errUnknownCatalog, name)
		}
		return cat, name, nil
	}

	name := s.matchLanguage(r.Header.Get("Accept-Language"))
	cat, ok := s.catalogs.Get(name)
	if !ok {
		return catalog.Catalog{}, "", fmt.Errorf("%w %q", errUnknownCatalog, name)
	}
	return cat, name, nil
}

func (s *Server) matchLanguage(header string) string {
	if strings.TrimSpace(header) == "" {
		return s.defaultCatalog
	}
	accepted, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(accepted) == 0 {
		return s.defaultCatalog
	}

	// the default catalog goes first so a failed match lands on it
	names := []string{s.defaultCatalog}
	for _, name := range s.catalogs.Names() {
		if name != s.defaultCatalog {
			names = append(names, name)
		}
	}
	supported := make([]language.Tag, 0, len(names))
	keep := make([]string, 0, len(names))
	for _, name := range names {
		cat, ok := s.catalogs.Get(name)
		if !ok {
			continue
		}
		tag, err := language.Parse(cat.Language)
		if err != nil {
			continue
		}
		supported = append(supported, tag)
		keep = append(keep, name)
	}
	if len(supported) == 0 {
		return s.defaultCatalog
	}

	_, idx, confidence := language.NewMatcher(supported).Match(accepted...)
	if confidence == language.No || idx < 0 || idx >= len(keep) {
		return s.defaultCatalog
	}
	return keep[idx]
}
