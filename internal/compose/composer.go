package compose

import (
	"time"

	"github.com/danmuck/wsterm/internal/template"
	"github.com/danmuck/wsterm/internal/vars"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config wires a Composer to its stores, randomness, clock and limits.
type Config struct {
	Texts  vars.Reader[string]
	Bins   vars.Reader[[]byte]
	Rand   Rand
	Clock  func() time.Time
	Limits Limits
	// Logger defaults to the global log.Logger when nil.
	Logger *zerolog.Logger
}

func DefaultConfig() Config {
	return Config{
		Texts:  vars.Snapshot[string]{},
		Bins:   vars.Snapshot[[]byte]{},
		Rand:   globalRand{},
		Clock:  time.Now,
		Limits: DefaultLimits(),
		Logger: &log.Logger,
	}
}

// Composer turns raw templates into text or binary payloads.
type Composer struct {
	cfg    Config
	text   *Table[string]
	binary *Table[[]byte]
}

// New builds a Composer with the builtin instruction tables.
func New(cfg Config) *Composer {
	def := DefaultConfig()
	if cfg.Texts == nil {
		cfg.Texts = def.Texts
	}
	if cfg.Bins == nil {
		cfg.Bins = def.Bins
	}
	if cfg.Rand == nil {
		cfg.Rand = def.Rand
	}
	if cfg.Clock == nil {
		cfg.Clock = def.Clock
	}
	if cfg.Logger == nil {
		cfg.Logger = def.Logger
	}
	return &Composer{
		cfg:    cfg,
		text:   TextInstructions(),
		binary: BinaryInstructions(),
	}
}

// TextTable exposes the text instruction table for registration.
func (c *Composer) TextTable() *Table[string] { return c.text }

// BinaryTable exposes the binary instruction table for registration.
func (c *Composer) BinaryTable() *Table[[]byte] { return c.binary }

// WithStores returns a Composer sharing tables but reading the given stores.
func (c *Composer) WithStores(texts vars.Reader[string], bins vars.Reader[[]byte]) *Composer {
	out := *c
	if texts != nil {
		out.cfg.Texts = texts
	}
	if bins != nil {
		out.cfg.Bins = bins
	}
	return &out
}

func (c *Composer) env() Env {
	return Env{
		Texts:  c.cfg.Texts,
		Bins:   c.cfg.Bins,
		Rand:   c.cfg.Rand,
		Now:    c.cfg.Clock,
		Limits: c.cfg.Limits,
	}
}

// Text composes a ${...} template. An unknown instruction fails the whole
// template with *UnknownInstructionError.
func (c *Composer) Text(raw string) (string, error) {
	particles, err := template.Parse(raw, template.TextSyntax)
	if err != nil {
		return "", err
	}
	parts, err := evaluate(c.env(), c.text, particles, func(name string) (string, error) {
		return "", &UnknownInstructionError{Name: name}
	})
	if err != nil {
		return "", err
	}
	out := AssembleText(parts)
	if err := c.env().checkUnits("payload", int64(len(out))); err != nil {
		return "", err
	}
	c.cfg.Logger.Debug().
		Str("mode", template.TextSyntax.Name).
		Int("particles", len(particles)).
		Int("bytes", len(out)).
		Msg("composed")
	return out, nil
}

// Binary composes a [...] template. Unknown instructions contribute no bytes.
func (c *Composer) Binary(raw string) ([]byte, error) {
	particles, err := template.Parse(raw, template.BinarySyntax)
	if err != nil {
		return nil, err
	}
	parts, err := evaluate(c.env(), c.binary, particles, func(name string) ([]byte, error) {
		c.cfg.Logger.Debug().Str("instruction", name).Msg("unknown binary instruction skipped")
		return []byte{}, nil
	})
	if err != nil {
		return nil, err
	}
	total := 0
	for _, p := range parts {
		total += len(p)
	}
	if err := c.env().checkUnits("payload", int64(total)); err != nil {
		return nil, err
	}
	out := AssembleBinary(parts)
	c.cfg.Logger.Debug().
		Str("mode", template.BinarySyntax.Name).
		Int("particles", len(particles)).
		Int("bytes", len(out)).
		Msg("composed")
	return out, nil
}

func evaluate[T any](env Env, table *Table[T], particles []template.Particle, unknown func(string) (T, error)) ([]T, error) {
	out := make([]T, 0, len(particles))
	for _, p := range particles {
		name, args := p.Call()
		fn, ok := table.Resolve(name)
		if !ok {
			v, err := unknown(name)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
			continue
		}
		v, err := fn(env, args)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
