// Package fallback serves the bundled static content used when the live
// content API is unreachable or returns an empty result, keeping the site
// navigable with stale data.
package fallback

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/mo-sami19/zynk/models"
)

//go:embed data/*.json
var dataFS embed.FS

// Store decodes the bundled collections lazily and caches them for the
// process lifetime. The JSON files are structurally identical to the API's
// wire shapes.
type Store struct {
	once         sync.Once
	services     []models.Service
	projects     []models.Project
	posts        []models.Post
	partners     []models.Partner
	testimonials []models.Testimonial
	err          error
}

// NewStore returns a Store over the embedded data.
func NewStore() *Store {
	return &Store{}
}

func (s *Store) load() {
	s.once.Do(func() {
		for _, item := range []struct {
			name string
			dst  interface{}
		}{
			{"services", &s.services},
			{"projects", &s.projects},
			{"posts", &s.posts},
			{"partners", &s.partners},
			{"testimonials", &s.testimonials},
		} {
			raw, err := dataFS.ReadFile("data/" + item.name + ".json")
			if err != nil {
				s.err = fmt.Errorf("read embedded %s: %w", item.name, err)
				return
			}
			if err := json.Unmarshal(raw, item.dst); err != nil {
				s.err = fmt.Errorf("decode embedded %s: %w", item.name, err)
				return
			}
		}
	})
}

// Err reports a decoding problem with the embedded data. It is checked once
// at startup; the bundled files ship with the binary so this only fails on a
// bad build.
func (s *Store) Err() error {
	s.load()
	return s.err
}

func (s *Store) Services() []models.Service {
	s.load()
	return s.services
}

func (s *Store) Projects() []models.Project {
	s.load()
	return s.projects
}

func (s *Store) Posts() []models.Post {
	s.load()
	return s.posts
}

func (s *Store) Partners() []models.Partner {
	s.load()
	return s.partners
}

func (s *Store) Testimonials() []models.Testimonial {
	s.load()
	return s.testimonials
}

// ServiceBySlug looks up one bundled service; nil when absent.
func (s *Store) ServiceBySlug(slug string) *models.Service {
	for i := range s.Services() {
		if s.services[i].Slug == slug {
			return &s.services[i]
		}
	}
	return nil
}

// ProjectBySlug looks up one bundled project; nil when absent.
func (s *Store) ProjectBySlug(slug string) *models.Project {
	for i := range s.Projects() {
		if s.projects[i].Slug == slug {
			return &s.projects[i]
		}
	}
	return nil
}

// PostBySlug looks up one bundled post; nil when absent.
func (s *Store) PostBySlug(slug string) *models.Post {
	for i := range s.Posts() {
		if s.posts[i].Slug == slug {
			return &s.posts[i]
		}
	}
	return nil
}

// PartnerBySlug looks up one bundled partner; nil when absent.
func (s *Store) PartnerBySlug(slug string) *models.Partner {
	for i := range s.Partners() {
		if s.partners[i].Slug == slug {
			return &s.partners[i]
		}
	}
	return nil
}

// PreferLive implements the fallback selection rule: live data wins only
// when the fetch succeeded AND returned a non-empty list. An explicitly
// empty successful result is treated the same as a failure for display
// purposes. The second return value reports whether static data was chosen.
func PreferLive[T any](live []T, err error, static []T) ([]T, bool) {
	if err == nil && len(live) > 0 {
		return live, false
	}
	return static, true
}
