package scoring

import (
	"io"

	"gopkg.in/yaml.v3"
)

// DefaultAuthorityScore is the conservative score for unknown sources.
const DefaultAuthorityScore = 40

// authoritativeFloor is the registry score from which a source counts as
// recognized-authoritative for matching bonuses.
const authoritativeFloor = 75

// defaultAuthority seeds the registry with well-known learning sources.
var defaultAuthority = map[string]float64{
	"developer.mozilla.org": 95,
	"docs.python.org":       95,
	"go.dev":                95,
	"kubernetes.io":         90,
	"freecodecamp.org":      90,
	"khanacademy.org":       90,
	"ocw.mit.edu":           90,
	"coursera.org":          85,
	"edx.org":               85,
	"github.com":            85,
	"stackoverflow.com":     85,
	"wikipedia.org":         82,
	"realpython.com":        80,
	"css-tricks.com":        75,
	"youtube.com":           70,
	"w3schools.com":         65,
	"medium.com":            55,
	"dev.to":                55,
}

// Registry maps source domains to authority scores in [0,100]. Unknown
// domains get a conservative default.
type Registry struct {
	scores map[string]float64
}

func NewRegistry() *Registry {
	scores := make(map[string]float64, len(defaultAuthority))
	for d, s := range defaultAuthority {
		scores[d] = s
	}
	return &Registry{scores: scores}
}

// registryFile is the yaml shape of an authority override file.
type registryFile struct {
	Sources map[string]float64 `yaml:"sources"`
}

// LoadYAML merges domain scores from a yaml document into the registry,
// overriding defaults for domains present in the file.
func (r *Registry) LoadYAML(reader io.Reader) error {
	decoder := yaml.NewDecoder(reader)
	var file registryFile
	if err := decoder.Decode(&file); err != nil {
		return err
	}
	for d, s := range file.Sources {
		if s < 0 {
			s = 0
		}
		if s > 100 {
			s = 100
		}
		r.scores[d] = s
	}
	return nil
}

// Score returns the authority score for a source domain.
func (r *Registry) Score(domain string) float64 {
	if s, ok := r.scores[domain]; ok {
		return s
	}
	return DefaultAuthorityScore
}

// IsAuthoritative reports whether the domain is a recognized high-authority
// source.
func (r *Registry) IsAuthoritative(domain string) bool {
	return r.Score(domain) >= authoritativeFloor
}
