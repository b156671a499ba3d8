package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/athelas-portal/athelas/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// AppConfig represents the optional reference data overrides
type AppConfig struct {
	Teams        []Team        `toml:"teams"`
	ProjectTypes []ProjectType `toml:"project_types"`
	Seed         Seed          `toml:"seed"`
}

// Team represents a team configuration
type Team struct {
	Code string `toml:"code"`
	Name string `toml:"name"`
}

// Validate checks if the Team is valid
func (t *Team) Validate() error {
	if err := types.TeamCode(t.Code).Validate(); err != nil {
		return goerr.Wrap(ErrInvalidConfig, err.Error(), goerr.V(CodeKey, t.Code))
	}
	if t.Name == "" {
		return goerr.Wrap(ErrMissingName, "team name is required", goerr.V(CodeKey, t.Code))
	}
	return nil
}

// ProjectType represents a project type configuration
type ProjectType struct {
	Code string `toml:"code"`
	Name string `toml:"name"`
}

// Validate checks if the ProjectType is valid
func (p *ProjectType) Validate() error {
	if err := types.ProjectTypeCode(p.Code).Validate(); err != nil {
		return goerr.Wrap(ErrInvalidConfig, err.Error(), goerr.V(CodeKey, p.Code))
	}
	if p.Name == "" {
		return goerr.Wrap(ErrMissingName, "project type name is required", goerr.V(CodeKey, p.Code))
	}
	return nil
}

// Seed controls the data inserted into an empty database
type Seed struct {
	Roster  []string `toml:"roster"`
	Team    string   `toml:"team"`
	Samples *bool    `toml:"samples"`
}

// Validate checks if the AppConfig is valid
func (a *AppConfig) Validate() error {
	teamCodes := make(map[string]bool)
	for i, team := range a.Teams {
		if err := team.Validate(); err != nil {
			return goerr.Wrap(err, "invalid team", goerr.V(IndexKey, i))
		}
		if teamCodes[team.Code] {
			return goerr.Wrap(ErrDuplicateCode, "duplicate team code", goerr.V(CodeKey, team.Code))
		}
		teamCodes[team.Code] = true
	}

	typeCodes := make(map[string]bool)
	for i, pt := range a.ProjectTypes {
		if err := pt.Validate(); err != nil {
			return goerr.Wrap(err, "invalid project type", goerr.V(IndexKey, i))
		}
		if typeCodes[pt.Code] {
			return goerr.Wrap(ErrDuplicateCode, "duplicate project type code", goerr.V(CodeKey, pt.Code))
		}
		typeCodes[pt.Code] = true
	}

	for i, name := range a.Seed.Roster {
		if strings.TrimSpace(name) == "" {
			return goerr.Wrap(ErrMissingName, "roster entry is empty", goerr.V(IndexKey, i))
		}
	}
	if a.Seed.Team != "" {
		if err := types.TeamCode(a.Seed.Team).Validate(); err != nil {
			return goerr.Wrap(ErrInvalidConfig, "invalid seed team", goerr.V(CodeKey, a.Seed.Team))
		}
	}

	return nil
}

// LoadAppConfiguration loads the application configuration from a TOML file
func LoadAppConfiguration(path string) (*AppConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, "config file does not exist", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V(ConfigPathKey, path))
	}

	var config AppConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse TOML config: "+err.Error(), goerr.V(ConfigPathKey, path))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V(ConfigPathKey, path))
	}

	return &config, nil
}

// ToReference overlays the configured tables on the built-in defaults.
func (a *AppConfig) ToReference() *model.Reference {
	ref := model.DefaultReference()

	if len(a.Teams) > 0 {
		teams := make([]types.Team, len(a.Teams))
		for i, t := range a.Teams {
			teams[i] = types.Team{Code: types.TeamCode(t.Code), Name: t.Name}
		}
		ref.Teams = types.NewTeamRegistry(teams)
	}

	if len(a.ProjectTypes) > 0 {
		pts := make([]types.ProjectType, len(a.ProjectTypes))
		for i, pt := range a.ProjectTypes {
			pts[i] = types.ProjectType{Code: types.ProjectTypeCode(pt.Code), Name: pt.Name}
		}
		ref.ProjectTypes = pts
	}

	if len(a.Seed.Roster) > 0 {
		roster := make([]string, len(a.Seed.Roster))
		for i, name := range a.Seed.Roster {
			roster[i] = strings.TrimSpace(name)
		}
		ref.Roster = roster
	}
	if a.Seed.Team != "" {
		ref.RosterTeam = types.TeamCode(a.Seed.Team)
	}
	if a.Seed.Samples != nil {
		ref.SeedSamples = *a.Seed.Samples
	}

	return ref
}

// App holds the --config flag
type App struct {
	path string
}

func (a *App) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "TOML file with team, project type and seed overrides",
			Sources:     cli.EnvVars("ATHELAS_CONFIG"),
			Destination: &a.path,
		},
	}
}

func (a App) LogValue() slog.Value {
	return slog.StringValue(a.path)
}

// Configure returns the reference tables, falling back to the built-in
// defaults when no file is given.
func (a *App) Configure() (*model.Reference, error) {
	if a.path == "" {
		return model.DefaultReference(), nil
	}
	cfg, err := LoadAppConfiguration(a.path)
	if err != nil {
		return nil, err
	}
	return cfg.ToReference(), nil
}
