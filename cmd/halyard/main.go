// Command halyard inspects and edits dotenv files from the shell.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"

	"github.com/Azhovan/halyard"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

const usage = `Usage: halyard [flags] <command> [args]

Commands:
  get KEY          Print the interpolated value of KEY
  set KEY VALUE    Set KEY, preserving comments and ordering
  unset KEY        Remove KEY
  keys             List defined keys in file order
  values           Print all interpolated KEY=VALUE entries
  tidy             Regroup and sort the file with section headers
  run -- CMD ...   Load the file into the environment and run CMD

Flags:
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := pflag.NewFlagSet("halyard", pflag.ContinueOnError)
	flags.SetInterspersed(false)
	file := flags.StringP("file", "f", "", "dotenv file (default: nearest .env)")
	override := flags.Bool("override", false, "let the file override existing environment variables (run)")
	quote := flags.String("quote", "always", "quoting for set: always|auto|never|double")
	verbose := flags.BoolP("verbose", "v", false, "verbose logging")
	flags.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	log := newLogger(*verbose)

	rest := flags.Args()
	if len(rest) == 0 {
		flags.Usage()
		return 2
	}
	command, cmdArgs := rest[0], rest[1:]

	mode, ok := quoteModes[*quote]
	if !ok {
		log.Error().Str("quote", *quote).Msg("unknown quote mode")
		return 2
	}

	err := dispatch(log, command, cmdArgs, *file, *override, mode)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		flags.Usage()
		return 2
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode()
		}
		log.Error().Err(err).Str("command", command).Msg("command failed")
		return 1
	}
}

var errUsage = errors.New("usage")

var quoteModes = map[string]halyard.QuoteMode{
	"always": halyard.QuoteAlways,
	"auto":   halyard.QuoteAuto,
	"never":  halyard.QuoteNever,
	"double": halyard.QuoteAlwaysDouble,
}

func dispatch(log zerolog.Logger, command string, args []string, file string, override bool, mode halyard.QuoteMode) error {
	switch command {
	case "get":
		if len(args) != 1 {
			return errUsage
		}
		return cmdGet(file, args[0])

	case "set":
		if len(args) != 2 {
			return errUsage
		}
		path := resolveFile(file)
		log.Debug().Str("file", path).Str("key", args[0]).Msg("setting key")
		return halyard.SetKey(path, args[0], args[1], halyard.WithQuoteMode(mode))

	case "unset":
		if len(args) != 1 {
			return errUsage
		}
		path := resolveFile(file)
		log.Debug().Str("file", path).Str("key", args[0]).Msg("removing key")
		return halyard.UnsetKey(path, args[0])

	case "keys":
		return cmdKeys(file)

	case "values":
		return cmdValues(file)

	case "tidy":
		path := resolveFile(file)
		doc, err := halyard.ParseFile(path)
		if err != nil {
			return err
		}
		log.Debug().Str("file", path).Msg("tidying")
		return doc.Tidy().WriteFile(path)

	case "run":
		if len(args) == 0 {
			return errUsage
		}
		return cmdRun(log, file, override, args)

	default:
		return errUsage
	}
}

func cmdGet(file, key string) error {
	doc, err := halyard.ParseFile(resolveFile(file))
	if err != nil {
		return err
	}
	if !doc.Has(key) {
		return fmt.Errorf("%w: %s", halyard.ErrKeyNotFound, key)
	}
	fmt.Println(doc.Get(key))
	return nil
}

func cmdKeys(file string) error {
	doc, err := halyard.ParseFile(resolveFile(file))
	if err != nil {
		return err
	}
	for _, key := range doc.Keys() {
		fmt.Println(key)
	}
	return nil
}

func cmdValues(file string) error {
	values, err := halyard.Values(resolveFile(file))
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("%s=%s\n", key, values[key])
	}
	return nil
}

func cmdRun(log zerolog.Logger, file string, override bool, args []string) error {
	path := resolveFile(file)
	load := halyard.Load
	if override {
		load = halyard.Overload
	}
	if err := load(path); err != nil {
		return err
	}
	log.Debug().Str("file", path).Strs("argv", args).Msg("running command")

	child := exec.Command(args[0], args[1:]...)
	child.Stdin = os.Stdin
	child.Stdout = os.Stdout
	child.Stderr = os.Stderr
	child.Env = os.Environ()
	return child.Run()
}

// resolveFile picks the dotenv file to operate on: an explicit --file wins,
// otherwise the nearest .env walking up from the working directory. When
// nothing is found it falls back to ./.env, which lets `set` create the
// file and lets read commands surface the missing-file error.
func resolveFile(file string) string {
	if file != "" {
		return file
	}
	if found, err := halyard.Find(""); err == nil {
		return found
	}
	return halyard.DefaultName
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}
