package profile

import (
	"encoding/json"
	"fmt"
	"maps"
	"time"
)

// Domain is a top-level profile key.
type Domain string

const (
	Health       Domain = "healthProfile"
	MentalHealth Domain = "mentalHealthProfile"
	Environment  Domain = "environmentProfile"
	Nutrition    Domain = "nutritionProfile"
)

// Domains lists every profile key in display order.
var Domains = []Domain{Health, MentalHealth, Environment, Nutrition}

// Valid reports whether d is one of the fixed profile keys.
func (d Domain) Valid() bool {
	for _, known := range Domains {
		if d == known {
			return true
		}
	}
	return false
}

// LastUpdatedKey is the field every stored section carries.
const LastUpdatedKey = "lastUpdated"

// timestampLayout is UTC ISO-8601 with millisecond precision.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// Section is one domain's result snapshot as a JSON object.
type Section map[string]any

// String returns the string field key, or "" if absent or not a string.
func (s Section) String(key string) string {
	v, _ := s[key].(string)
	return v
}

// LastUpdated parses the section timestamp.
func (s Section) LastUpdated() (time.Time, bool) {
	t, err := time.Parse(timestampLayout, s.String(LastUpdatedKey))
	return t, err == nil
}

// Profile maps each domain to its latest section. Missing domains have
// never been recorded.
type Profile map[Domain]Section

// Clone returns a copy whose top-level maps can be modified freely.
func (p Profile) Clone() Profile {
	out := make(Profile, len(p))
	for d, s := range p {
		out[d] = maps.Clone(s)
	}
	return out
}

// MarshalJSON always emits all four keys, empty objects for domains that
// were never recorded.
func (p Profile) MarshalJSON() ([]byte, error) {
	out := make(map[string]Section, len(Domains))
	for _, d := range Domains {
		s := p[d]
		if s == nil {
			s = Section{}
		}
		out[string(d)] = s
	}
	return json.Marshal(out)
}

// UnmarshalJSON ignores unknown top-level keys and empty sections.
func (p *Profile) UnmarshalJSON(data []byte) error {
	var raw map[string]Section
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode profile: %w", err)
	}
	out := make(Profile, len(raw))
	for k, s := range raw {
		d := Domain(k)
		if !d.Valid() || len(s) == 0 {
			continue
		}
		out[d] = s
	}
	*p = out
	return nil
}
