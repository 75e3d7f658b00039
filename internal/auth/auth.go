package auth

import (
	"fmt"

	"github.com/loverescue/coachcore/internal/config"
)

// Project is the runtime representation of a calling project.
type Project struct {
	ID string
}

// Auth holds mappings from API keys to projects.
type Auth struct {
	apiKeyToProject map[string]Project
}

// NewFromConfig builds an Auth instance from the loaded config. Keys from
// api_keys_env are merged with the static ones.
func NewFromConfig(cfg *config.Config) (*Auth, error) {
	m := make(map[string]Project)

	for _, p := range cfg.Projects {
		if p.ID == "" {
			return nil, fmt.Errorf("project with empty id in config")
		}
		proj := Project{ID: p.ID}
		for _, key := range p.Keys() {
			if existing, exists := m[key]; exists && existing.ID != p.ID {
				return nil, fmt.Errorf("an api key is assigned to multiple projects (%s, %s)", existing.ID, p.ID)
			}
			m[key] = proj
		}
	}

	return &Auth{
		apiKeyToProject: m,
	}, nil
}

// Lookup returns the project for a given API key, if any.
func (a *Auth) Lookup(apiKey string) (Project, bool) {
	if a == nil || apiKey == "" {
		return Project{}, false
	}
	if p, ok := a.apiKeyToProject[apiKey]; ok {
		return p, true
	}
	return Project{}, false
}
