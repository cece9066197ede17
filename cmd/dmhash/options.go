package main

import (
	"fmt"
	"strconv"
	"strings"
)

// cliArgs holds the parsed command line arguments
type cliArgs struct {
	Path       string
	Threads    int
	Verbose    bool
	ConfigPath string
	Debug      string
	Overrides  []string
}

// parseArguments parses command line arguments into a cliArgs struct
func parseArguments(argv []string) (*cliArgs, error) {
	args := &cliArgs{}

	i := 0
	for i < len(argv) {
		arg := argv[i]

		switch {
		case arg == "-v" || arg == "--verbose":
			args.Verbose = true

		case arg == "-t" || arg == "--threads":
			value, err := flagValue(argv, &i, arg)
			if err != nil {
				return nil, err
			}
			threads, err := strconv.Atoi(value)
			if err != nil || threads <= 0 {
				return nil, fmt.Errorf("invalid thread count: %s", value)
			}
			args.Threads = threads

		case arg == "--config":
			value, err := flagValue(argv, &i, arg)
			if err != nil {
				return nil, err
			}
			args.ConfigPath = value

		case arg == "--debug":
			value, err := flagValue(argv, &i, arg)
			if err != nil {
				return nil, err
			}
			args.Debug = value

		case arg == "--set":
			value, err := flagValue(argv, &i, arg)
			if err != nil {
				return nil, err
			}
			args.Overrides = append(args.Overrides, value)

		case strings.HasPrefix(arg, "-") && arg != "-":
			return nil, fmt.Errorf("unknown option: %s", arg)

		default:
			if args.Path != "" {
				return nil, fmt.Errorf("unexpected argument: %s (path already given as %s)", arg, args.Path)
			}
			args.Path = arg
		}

		i++
	}

	if args.Path == "" {
		return nil, fmt.Errorf("missing required path argument")
	}

	return args, nil
}

// flagValue returns the value following a flag, advancing the index
func flagValue(argv []string, i *int, flag string) (string, error) {
	if *i+1 >= len(argv) {
		return "", fmt.Errorf("option %s requires a value", flag)
	}
	*i++
	return argv[*i], nil
}
