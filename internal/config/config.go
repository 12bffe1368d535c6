package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/koding/multiconfig"
)

// EnvPrefix prefixes the environment variables read by Load.
const EnvPrefix = "LTCSENSORS"

type CliConfig struct {
	Silent bool   `flagUsage:"suppress the live console view (-s)"`
	Length int    `default:"120" flagUsage:"number of ticks to sample (-l)"`
	File   string `default:"dynagate2_report.csv" flagUsage:"CSV report path (-f)"`

	Dir      string        `default:"/sys/bus/i2c/devices/i2c-2/2-0009/hwmon/hwmon4" flagUsage:"hwmon directory of the LTC3350"`
	Interval time.Duration `default:"1s" flagUsage:"pause between ticks"`

	// LegacyMinRule converts the minimum levels with the maximum level's
	// register name, as older reports did.
	LegacyMinRule bool `flagUsage:"convert min levels with the max level's rule"`

	Tui bool `flagUsage:"show the full-screen dashboard"`

	LogLevel string `default:"info"`
	LogFile  string `flagUsage:"write logs to this file instead of stderr"`
}

var shortFlags = map[string]string{
	"-s": "-silent",
	"-l": "-length",
	"-f": "-file",
}

// expandShortFlags rewrites the single-letter aliases to their long names
// so the flag loader only has to know one name per field. Both -x and
// -x=value forms are handled.
func expandShortFlags(args []string) []string {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		name, value, hasValue := strings.Cut(arg, "=")
		if long, ok := shortFlags[name]; ok {
			if hasValue {
				arg = long + "=" + value
			} else {
				arg = long
			}
		}
		out = append(out, arg)
	}
	return out
}

// Load reads the configuration from struct defaults, LTCSENSORS_*
// environment variables and args, in that order.
func Load(args []string) (*CliConfig, error) {
	c := &CliConfig{}
	loader := multiconfig.MultiLoader(
		&multiconfig.TagLoader{},
		&multiconfig.EnvironmentLoader{Prefix: EnvPrefix, CamelCase: true},
		&multiconfig.FlagLoader{CamelCase: true, EnvPrefix: EnvPrefix, Args: expandShortFlags(args)},
	)
	if err := loader.Load(c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate rejects values the sampler cannot run with.
func (c *CliConfig) Validate() error {
	if c.Length < 1 {
		return fmt.Errorf("length must be at least 1, got %d", c.Length)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", c.Interval)
	}
	if c.File == "" {
		return fmt.Errorf("report file must not be empty")
	}
	if c.Dir == "" {
		return fmt.Errorf("device directory must not be empty")
	}
	return nil
}
