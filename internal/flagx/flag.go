// Package flagx lets several configuration loaders share one command line.
// Each loader picks out only the flags it owns and parses them with its own
// flag.FlagSet, so unknown flags of other loaders never cause parse errors.
package flagx

import (
	"flag"
	"strings"
)

// FilterArgs keeps only the arguments that belong to allowedFlags.
//
// Both "-c conf.json" and "-c=conf.json" forms are recognised. A value
// following a bare flag is kept unless it itself starts with "-".
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if _, known := allowed[name]; known {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, known := allowed[arg]; !known {
			continue
		}
		filtered = append(filtered, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}
	return filtered
}

// JsonConfigFlags returns the config file path given with -c or -config,
// or "" when neither is present.
func JsonConfigFlags(args []string) string {
	var path string

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config", "--config"}))

	return path
}
