package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/vvka-141/fcount/pkg/fcount"
)

// Environment variables read by ApplyEnv.
const (
	EnvPattern  = fcount.EnvPrefix + "PATTERN"
	EnvHidden   = fcount.EnvPrefix + "HIDDEN"
	EnvReadonly = fcount.EnvPrefix + "READONLY"
	EnvArchive  = fcount.EnvPrefix + "ARCHIVE"
	EnvVerbose  = fcount.EnvPrefix + "VERBOSE"
)

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// EnvLookup returns a LookupFunc over the process environment, falling back
// to values read from a dotenv file. Variables already set in the process
// environment win, matching godotenv.Load.
func EnvLookup(envFile string) (LookupFunc, error) {
	if envFile == "" {
		return os.LookupEnv, nil
	}

	fileVars, err := godotenv.Read(envFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read env file %s: %w", envFile, err)
	}

	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	}, nil
}

// ApplyEnv overrides s with any FCOUNT_* variables that lookup finds.
// Boolean variables accept the forms strconv.ParseBool accepts.
func (s *Settings) ApplyEnv(lookup LookupFunc) error {
	if v, ok := lookup(EnvPattern); ok {
		s.Pattern = v
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{EnvHidden, &s.Include.Hidden},
		{EnvReadonly, &s.Include.Readonly},
		{EnvArchive, &s.Include.Archive},
		{EnvVerbose, &s.Verbose},
	}
	for _, b := range bools {
		v, ok := lookup(b.key)
		if !ok || v == "" {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid value %q for %s: expected true or false", v, b.key)
		}
		*b.dst = parsed
	}

	return nil
}
