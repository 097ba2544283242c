package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Load reads path and returns the validated configuration.
func Load(path string) (Config, error) {
	var (
		cfg Config
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		cfg, err = loadTOML(path)
	case ".yaml", ".yml":
		cfg, err = loadYAML(path)
	default:
		cfg, err = loadProperties(path)
	}
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "config: %s", path)
	}

	return cfg, nil
}

func loadTOML(path string) (Config, error) {
	cfg := Defaults()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config: decode %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.Wrapf(ErrInvalid, "%s: unknown key %q", path, undecoded[0].String())
	}

	return cfg, nil
}

func loadYAML(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "config")
	}
	defer f.Close()

	cfg := Defaults()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, errors.Wrapf(err, "config: decode %s", path)
	}

	return cfg, nil
}

// loadProperties reads the flat key=value format. Unrecognized keys are
// ignored so older files keep loading.
func loadProperties(path string) (Config, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config: read %s", path)
	}

	return fromProperties(env)
}

func fromProperties(env map[string]string) (Config, error) {
	cfg := Defaults()
	p := propertyReader{env: env}

	p.str("algorithm", &cfg.Algorithm)
	p.str("inputData", &cfg.Input)
	p.str("outputFile", &cfg.Output)
	p.integer("optimalSolution", &cfg.Optimal)
	p.integer("runs", &cfg.Runs)
	p.flag("testMode", &cfg.TestMode)
	p.int64("seed", &cfg.Seed)

	p.float("initialTemperature", &cfg.Annealing.InitialTemperature)
	p.float("coolingRate", &cfg.Annealing.CoolingRate)
	p.duration("stopTime", &cfg.Annealing.StopTime)
	p.float("minTemperature", &cfg.Annealing.MinTemperature)
	p.integer("maxIterations", &cfg.Annealing.MaxIterations)
	p.str("initialSolutionMethod", &cfg.Annealing.InitialSolution)
	p.str("coolingMethod", &cfg.Annealing.Cooling)

	p.flag("noPrune", &cfg.BranchAndBound.NoPrune)
	p.duration("timeLimit", &cfg.BranchAndBound.TimeLimit)

	if p.err != nil {
		return Config{}, p.err
	}

	return cfg, nil
}

// propertyReader keeps the first conversion error and skips later keys.
type propertyReader struct {
	env map[string]string
	err error
}

func (p *propertyReader) lookup(key string) (string, bool) {
	if p.err != nil {
		return "", false
	}
	v, ok := p.env[key]
	v = strings.TrimSpace(v)

	return v, ok && v != ""
}

func (p *propertyReader) fail(key, value string, err error) {
	p.err = errors.Wrapf(ErrInvalid, "key %s=%q: %v", key, value, err)
}

func (p *propertyReader) str(key string, dst *string) {
	if v, ok := p.lookup(key); ok {
		*dst = v
	}
}

func (p *propertyReader) integer(key string, dst *int) {
	if v, ok := p.lookup(key); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			p.fail(key, v, err)
			return
		}
		*dst = n
	}
}

func (p *propertyReader) int64(key string, dst *int64) {
	if v, ok := p.lookup(key); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			p.fail(key, v, err)
			return
		}
		*dst = n
	}
}

func (p *propertyReader) float(key string, dst *float64) {
	if v, ok := p.lookup(key); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			p.fail(key, v, err)
			return
		}
		*dst = f
	}
}

// flag accepts 0/1 as well as strconv.ParseBool spellings.
func (p *propertyReader) flag(key string, dst *bool) {
	if v, ok := p.lookup(key); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			p.fail(key, v, err)
			return
		}
		*dst = b
	}
}

func (p *propertyReader) duration(key string, dst *Duration) {
	if v, ok := p.lookup(key); ok {
		d, err := parseDuration(v)
		if err != nil {
			p.fail(key, v, err)
			return
		}
		*dst = Duration(d)
	}
}
