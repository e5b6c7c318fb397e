package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/dshills/kingdomgen/pkg/catalogio"
)

// options is the fully-parsed CLI configuration for one run.
type options struct {
	seed           uint64
	badRand        bool
	boxes          []string
	groups         []string
	boxFile        string
	cardFile       string
	help           bool
	list           bool
	landscapeCount int
	why            bool
	noValidate     bool
	excludes       []string
	includes       []string
	info           string
	noAttackReact  bool
	noAntiCursor   bool
	rulesFile      string
	rules          catalogio.Rules
	maxPrefixes    int // accepted, unused: passes are hardcoded to three
	verbose        bool
	jsonOut        string
	svgOut         string
}

// flagRequestedHelp signals that -help was passed; run() treats it as a
// clean exit rather than a configuration error.
var flagRequestedHelp = errors.New("help requested")

// stringListFlag accumulates a repeatable flag.Value: each occurrence may
// itself be a comma-separated list, per spec §6 ("multi-value options may
// either repeat or use comma-separated lists").
type stringListFlag struct {
	values *[]string
}

func (f stringListFlag) String() string {
	if f.values == nil {
		return ""
	}
	return strings.Join(*f.values, ",")
}

func (f stringListFlag) Set(s string) error {
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			*f.values = append(*f.values, part)
		}
	}
	return nil
}

// typeCountFlag accumulates repeatable "Type:N" pairs into a map, for
// --min-type and --max-type.
type typeCountFlag struct {
	counts *map[string]int
}

func (f typeCountFlag) String() string {
	if f.counts == nil || *f.counts == nil {
		return ""
	}
	var parts []string
	for t, n := range *f.counts {
		parts = append(parts, fmt.Sprintf("%s:%d", t, n))
	}
	return strings.Join(parts, ",")
}

func (f typeCountFlag) Set(s string) error {
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		t, n, err := parseTypeCount(part)
		if err != nil {
			return err
		}
		if *f.counts == nil {
			*f.counts = map[string]int{}
		}
		(*f.counts)[t] = n
	}
	return nil
}

func parseFlags(args []string) (options, *flag.FlagSet, error) {
	var opts options
	fs := flag.NewFlagSet("kingdomgen", flag.ContinueOnError)
	fs.SetOutput(discardWriter{})

	fs.Uint64Var(&opts.seed, "seed", 0, "random seed (0 = wall-clock time)")
	fs.BoolVar(&opts.badRand, "badrand", false, "use the deterministic cross-platform stepper instead of the platform PRNG")
	fs.Var(stringListFlag{&opts.boxes}, "boxes", "box names to include (repeatable or comma-separated)")
	fs.Var(stringListFlag{&opts.groups}, "groups", "card-groups to include (repeatable or comma-separated)")
	fs.StringVar(&opts.boxFile, "boxfile", "boxes.txt", "path to the box-to-group mapping file")
	fs.StringVar(&opts.cardFile, "cardfile", "cards.csv", "path to the card catalog file")
	fs.BoolVar(&opts.help, "help", false, "show this help message")
	fs.BoolVar(&opts.list, "list", false, "list every pile name in the loaded catalog and exit")
	fs.IntVar(&opts.landscapeCount, "landscape-count", 0, "number of landscape (optional-extra) piles to seed")
	fs.BoolVar(&opts.why, "why", false, "print the trace of why each pile was chosen")
	fs.BoolVar(&opts.noValidate, "no-validate", false, "don't fail the run on dangling card(X)/group(X) references")
	fs.Var(stringListFlag{&opts.excludes}, "exclude", "pile names to exclude from the catalog (repeatable or comma-separated)")
	fs.Var(stringListFlag{&opts.includes}, "include", "pile names to force into the starting selection (repeatable or comma-separated)")
	fs.StringVar(&opts.info, "info", "", "print a single pile's details and exit")
	fs.BoolVar(&opts.noAttackReact, "no-attack-react", false, "disable the Attack/reaction counter-constraint")
	fs.BoolVar(&opts.noAntiCursor, "no-anti-cursor", false, "disable the curser/trasher counter-constraint")
	fs.IntVar(&opts.rules.MaxCostRepeat, "max-cost-repeat", 0, "cap on how many chosen piles may share a cost (0 = no cap)")
	fs.Var(typeCountFlag{&opts.rules.MinType}, "min-type", "Type:N minimum count (repeatable or comma-separated)")
	fs.Var(typeCountFlag{&opts.rules.MaxType}, "max-type", "Type:N limit: fewer than N piles of that type are allowed (repeatable or comma-separated)")
	fs.IntVar(&opts.maxPrefixes, "max-prefixes", 0, "accepted for compatibility; ignored (shuffle passes are fixed at three)")
	fs.StringVar(&opts.rulesFile, "rules", "", "YAML file overriding max-cost-repeat/min-type/max-type")
	fs.BoolVar(&opts.verbose, "verbose", false, "print progress to stderr")
	fs.StringVar(&opts.jsonOut, "json-out", "", "write the selection as JSON to this path")
	fs.StringVar(&opts.svgOut, "svg-out", "", "write a kingdom-sheet SVG to this path")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, fs, flagRequestedHelp
		}
		return opts, fs, err
	}
	if opts.help {
		return opts, fs, flagRequestedHelp
	}
	return opts, fs, nil
}

// discardWriter silences flag's default usage output; printUsage renders
// its own help text instead.
type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func printUsage(stdout io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(stdout, "kingdomgen generates a single legal kingdom from a card catalog.")
	fmt.Fprintln(stdout, "\nUsage:")
	fmt.Fprintln(stdout, "  kingdomgen [options]")
	fmt.Fprintln(stdout, "\nOptions:")
	fs.VisitAll(func(f *flag.Flag) {
		fmt.Fprintf(stdout, "  -%s\n\t%s\n", f.Name, f.Usage)
	})
}
