package project

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/ouarzazisaid0/wood-opcut/internal/model"
)

// CutProfile is a named, reusable set of cut parameters, e.g. one per saw
// blade or material type.
type CutProfile struct {
	Name      string          `json:"name"`
	Params    model.CutParams `json:"params"`
	IsBuiltIn bool            `json:"is_built_in,omitempty"`
}

// BuiltInProfiles returns the profiles shipped with the application.
func BuiltInProfiles() []CutProfile {
	return []CutProfile{
		{
			Name:      "Table saw",
			Params:    model.DefaultCutParams(),
			IsBuiltIn: true,
		},
		{
			Name: "Track saw",
			Params: model.CutParams{
				Kerf:      2.2,
				MinOffcut: 50,
				Rotation:  model.RotationPerPiece,
			},
			IsBuiltIn: true,
		},
		{
			Name: "Panel saw, trimmed edges",
			Params: model.CutParams{
				Kerf:      4.4,
				MinOffcut: 80,
				Rotation:  model.RotationPerPiece,
				EdgeTrim:  10,
			},
			IsBuiltIn: true,
		},
	}
}

// FindProfile looks up a profile by name in the built-ins followed by the
// given custom profiles.
func FindProfile(name string, custom []CutProfile) (CutProfile, bool) {
	for _, p := range BuiltInProfiles() {
		if p.Name == name {
			return p, true
		}
	}
	for _, p := range custom {
		if p.Name == name {
			return p, true
		}
	}
	return CutProfile{}, false
}

// DefaultProfilesPath returns the default file path for custom profiles.
func DefaultProfilesPath() string {
	return filepath.Join(DefaultConfigDir(), "profiles.json")
}

// SaveCustomProfiles saves custom profiles to a JSON file.
func SaveCustomProfiles(path string, profiles []CutProfile) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadCustomProfiles loads custom profiles from a JSON file.
// Returns an empty slice if the file does not exist.
func LoadCustomProfiles(path string) ([]CutProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []CutProfile{}, nil
		}
		return nil, err
	}

	var profiles []CutProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, err
	}

	// Ensure loaded profiles are not marked as built-in
	for i := range profiles {
		profiles[i].IsBuiltIn = false
	}
	return profiles, nil
}

// ExportProfile exports a single profile to a JSON file (for sharing).
func ExportProfile(path string, profile CutProfile) error {
	profile.IsBuiltIn = false
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ImportProfile imports a single profile from a JSON file.
func ImportProfile(path string) (CutProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return CutProfile{}, err
	}

	var profile CutProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return CutProfile{}, err
	}

	profile.IsBuiltIn = false
	if profile.Name == "" {
		return CutProfile{}, errors.New("imported profile has no name")
	}
	return profile, nil
}
