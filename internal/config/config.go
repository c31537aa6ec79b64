// Package config loads run configuration from YAML, environment, and
// flags via viper. Concentrations are written the way bench protocols
// write them ("3mM", "250nM") and parsed into molar units.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"paneval-core/primer"
	"paneval-core/sim"
	"paneval-core/thermo"
)

const envPrefix = "PANEVAL"

// Config mirrors the YAML layout.
type Config struct {
	References []string `mapstructure:"references"`
	Primers    string   `mapstructure:"primers"`
	Coverage   string   `mapstructure:"coverage"`

	Pools    PoolConfig     `mapstructure:"pools"`
	Reaction ReactionConfig `mapstructure:"reaction"`
	PCR      PCRConfig      `mapstructure:"pcr"`
	Blast    BlastConfig    `mapstructure:"blast"`
	Output   OutputConfig   `mapstructure:"output"`
}

// PoolConfig lists the primer pools mixed into the reaction. Every forward
// is paired with every reverse.
type PoolConfig struct {
	Forward []OligoConfig `mapstructure:"forward"`
	Reverse []OligoConfig `mapstructure:"reverse"`
}

type OligoConfig struct {
	ID            string `mapstructure:"id"`
	Seq           string `mapstructure:"seq"`
	Concentration string `mapstructure:"concentration"` // empty = reaction.primer
}

type ReactionConfig struct {
	AnnealC      float64 `mapstructure:"anneal_c"`
	Na           string  `mapstructure:"na"`
	Mg           string  `mapstructure:"mg"`
	DNTP         string  `mapstructure:"dntp"`
	DNA          string  `mapstructure:"dna"`
	Primer       string  `mapstructure:"primer"` // default per-primer concentration
	PolymeraseUL float64 `mapstructure:"polymerase_units"`
	Exonuclease  bool    `mapstructure:"exonuclease"`
	Cycles       int     `mapstructure:"cycles"`
}

type PCRConfig struct {
	MinProduct     int `mapstructure:"min_product"`
	MaxProduct     int `mapstructure:"max_product"`
	Mismatches     int `mapstructure:"mismatches"`
	TerminalWindow int `mapstructure:"terminal_window"`
	HitCap         int `mapstructure:"hit_cap"`
	Threads        int `mapstructure:"threads"`
	ChunkSize      int `mapstructure:"chunk_size"`
}

type BlastConfig struct {
	Path   string  `mapstructure:"path"`
	DB     string  `mapstructure:"db"` // preformatted database; empty = align against the references
	EValue float64 `mapstructure:"evalue"`
	Perc   float64 `mapstructure:"perc_identity"`
}

type OutputConfig struct {
	Format string `mapstructure:"format"`
	Sort   bool   `mapstructure:"sort"`
	Header bool   `mapstructure:"header"`
}

// New returns a viper instance with defaults and env binding applied.
// Flag binding is left to the commands.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("reaction.anneal_c", 55.0)
	v.SetDefault("reaction.na", "50mM")
	v.SetDefault("reaction.mg", "1.5mM")
	v.SetDefault("reaction.dntp", "200uM")
	v.SetDefault("reaction.dna", "0.1nM")
	v.SetDefault("reaction.primer", "250nM")
	v.SetDefault("reaction.polymerase_units", 25000.0)
	v.SetDefault("reaction.cycles", 30)
	v.SetDefault("pcr.min_product", 50)
	v.SetDefault("pcr.max_product", 3000)
	v.SetDefault("pcr.mismatches", 3)
	v.SetDefault("pcr.terminal_window", 3)
	v.SetDefault("pcr.hit_cap", 0) // 0 = unlimited
	v.SetDefault("pcr.threads", 0) // 0 = GOMAXPROCS
	v.SetDefault("pcr.chunk_size", 0)
	v.SetDefault("blast.evalue", 1000.0)
	v.SetDefault("output.format", "tsv")
	v.SetDefault("output.header", true)
	return v
}

// Load reads the optional config file into v and unmarshals the result.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges and that concentrations parse.
func (c Config) Validate() error {
	if c.PCR.MinProduct < 1 || c.PCR.MaxProduct < c.PCR.MinProduct {
		return fmt.Errorf("pcr: bad product size bounds %d..%d", c.PCR.MinProduct, c.PCR.MaxProduct)
	}
	if c.PCR.Mismatches < 0 {
		return fmt.Errorf("pcr: negative mismatch allowance")
	}
	if c.Reaction.Cycles < 1 {
		return fmt.Errorf("reaction: cycles must be >= 1")
	}
	for _, p := range []struct{ name, val string }{
		{"na", c.Reaction.Na}, {"mg", c.Reaction.Mg},
		{"dntp", c.Reaction.DNTP}, {"dna", c.Reaction.DNA},
		{"primer", c.Reaction.Primer},
	} {
		if _, err := thermo.ParseConc(p.val); err != nil {
			return fmt.Errorf("reaction.%s: %w", p.name, err)
		}
	}
	for _, pool := range []struct {
		side   string
		oligos []OligoConfig
	}{
		{"forward", c.Pools.Forward}, {"reverse", c.Pools.Reverse},
	} {
		for _, o := range pool.oligos {
			if o.ID == "" {
				return fmt.Errorf("pools.%s: oligo without an id", pool.side)
			}
			if _, err := primer.Validate(o.Seq); err != nil {
				return fmt.Errorf("pools.%s.%s: %w", pool.side, o.ID, err)
			}
			if o.Concentration != "" {
				if _, err := thermo.ParseConc(o.Concentration); err != nil {
					return fmt.Errorf("pools.%s.%s: %w", pool.side, o.ID, err)
				}
			}
		}
	}
	return nil
}

// Conditions converts the validated reaction section into simulation
// conditions. Call Validate first; parse errors here are programming
// mistakes.
func (c Config) Conditions() (sim.Conditions, error) {
	na, err := thermo.ParseConc(c.Reaction.Na)
	if err != nil {
		return sim.Conditions{}, err
	}
	mg, err := thermo.ParseConc(c.Reaction.Mg)
	if err != nil {
		return sim.Conditions{}, err
	}
	dntp, err := thermo.ParseConc(c.Reaction.DNTP)
	if err != nil {
		return sim.Conditions{}, err
	}
	dna, err := thermo.ParseConc(c.Reaction.DNA)
	if err != nil {
		return sim.Conditions{}, err
	}
	return sim.Conditions{
		AnnealC:         c.Reaction.AnnealC,
		Na:              na,
		Mg:              mg,
		DNTP:            dntp,
		DNA:             dna,
		PolymeraseUL:    c.Reaction.PolymeraseUL,
		WithExonuclease: c.Reaction.Exonuclease,
		Cycles:          c.Reaction.Cycles,
		MaxAmplicon:     c.PCR.MaxProduct,
	}, nil
}

// PrimerConc returns the default per-primer concentration in mol/L.
func (c Config) PrimerConc() (float64, error) {
	return thermo.ParseConc(c.Reaction.Primer)
}

// PoolOligos resolves the configured pools into oligos with molar
// concentrations, falling back to reaction.primer where none is given.
func (c Config) PoolOligos() (fwds, revs []primer.Oligo, err error) {
	if len(c.Pools.Forward) == 0 && len(c.Pools.Reverse) == 0 {
		return nil, nil, nil
	}
	def, err := c.PrimerConc()
	if err != nil {
		return nil, nil, err
	}
	resolve := func(in []OligoConfig) ([]primer.Oligo, error) {
		out := make([]primer.Oligo, 0, len(in))
		for _, o := range in {
			seq, err := primer.Validate(o.Seq)
			if err != nil {
				return nil, fmt.Errorf("pool oligo %s: %w", o.ID, err)
			}
			conc := def
			if o.Concentration != "" {
				if conc, err = thermo.ParseConc(o.Concentration); err != nil {
					return nil, fmt.Errorf("pool oligo %s: %w", o.ID, err)
				}
			}
			out = append(out, primer.Oligo{ID: o.ID, Seq: seq, Concentration: conc})
		}
		return out, nil
	}
	if fwds, err = resolve(c.Pools.Forward); err != nil {
		return nil, nil, err
	}
	if revs, err = resolve(c.Pools.Reverse); err != nil {
		return nil, nil, err
	}
	return fwds, revs, nil
}
