// Command kingdomgen generates a single legal Dominion kingdom from a card
// catalog and a constraint library, per spec §6's CLI surface.
package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/dshills/kingdomgen/pkg/card"
	"github.com/dshills/kingdomgen/pkg/catalog"
	"github.com/dshills/kingdomgen/pkg/catalogio"
	"github.com/dshills/kingdomgen/pkg/engine"
	"github.com/dshills/kingdomgen/pkg/report"
	"github.com/dshills/kingdomgen/pkg/rngsrc"
	"github.com/dshills/kingdomgen/pkg/stdconstraints"
)

const (
	defaultMarketCap  = 10
	badRandStreamCap  = 1 << 16
	exitSuccess       = 0
	exitConfigError   = 1
	exitSelectionFail = 2
	exitValidationErr = 3
	exitConstraintErr = 4
)

// cliError carries the exit code its cause should produce.
type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string { return e.err.Error() }

func configErr(format string, args ...interface{}) *cliError {
	return &cliError{code: exitConfigError, err: fmt.Errorf(format, args...)}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, fs, err := parseFlags(args)
	if err != nil {
		if err == flagRequestedHelp {
			printUsage(stdout, fs)
			return exitSuccess
		}
		fmt.Fprintln(stderr, "Error:", err)
		return exitConfigError
	}

	if opts.help {
		printUsage(stdout, fs)
		return exitSuccess
	}

	if opts.verbose {
		fmt.Fprintf(stderr, "loading cards from %s\n", opts.cardFile)
	}

	piles, warnings, err := loadCatalogPiles(opts)
	if err != nil {
		if ce, ok := err.(*cliError); ok {
			fmt.Fprintln(stderr, "Error:", ce.err)
			return ce.code
		}
		fmt.Fprintln(stderr, "Error:", err)
		return exitConfigError
	}

	if len(warnings) > 0 && !opts.noValidate {
		for _, w := range warnings {
			fmt.Fprintln(stderr, "warning:", w)
		}
		return exitValidationErr
	}

	if opts.info != "" {
		return printInfo(stdout, stderr, piles, opts.info)
	}

	if opts.list {
		printList(stdout, piles)
		return exitSuccess
	}

	if len(piles) == 0 || !hasBasePile(piles) {
		fmt.Fprintln(stderr, "Error: catalog has no base piles to build from")
		return exitConstraintErr
	}

	rng := rngsrc.GetRandStream(opts.seed, badRandStreamCap, opts.badRand)
	cat := catalog.New(piles, rng)

	rules := opts.rules
	if opts.rulesFile != "" {
		loaded, err := loadRules(opts.rulesFile)
		if err != nil {
			fmt.Fprintln(stderr, "Error:", err)
			return exitConfigError
		}
		rules = loaded
	}

	constraintOpts := stdconstraints.Options{
		NoAttackReact: opts.noAttackReact,
		NoAntiCursor:  opts.noAntiCursor,
		MaxCostRepeat: rules.MaxCostRepeat,
		MinType:       rules.MinType,
		MaxType:       rules.MaxType,
	}
	constraints := stdconstraints.Default(cat, rng, constraintOpts)

	if opts.verbose {
		fmt.Fprintf(stderr, "built %d constraints, requesting %d landscape piles\n", len(constraints), opts.landscapeCount)
	}

	ok, sel, msg := engine.Generate(cat, defaultMarketCap, opts.landscapeCount, opts.includes, constraints, rng)
	if !ok {
		fmt.Fprintln(stderr, "Error:", msg)
		return exitSelectionFail
	}

	if opts.why {
		fmt.Fprint(stdout, report.RenderWhy(sel))
	} else {
		for _, p := range sel.Piles() {
			fmt.Fprintln(stdout, p.Name)
		}
	}

	if opts.jsonOut != "" {
		if err := report.SaveJSONToFile(sel, opts.jsonOut); err != nil {
			fmt.Fprintln(stderr, "Error:", err)
			return exitConfigError
		}
	}
	if opts.svgOut != "" {
		svgOpts := report.DefaultSVGOptions()
		svgOpts.Title = fmt.Sprintf("Kingdom (seed=%d)", opts.seed)
		if err := report.SaveSVGToFile(sel, opts.svgOut, svgOpts); err != nil {
			fmt.Fprintln(stderr, "Error:", err)
			return exitConfigError
		}
	}

	return exitSuccess
}

// loadCatalogPiles resolves --cardfile/--boxfile/--boxes/--groups/--exclude
// into the final pile list plus any dangling-reference warnings.
func loadCatalogPiles(opts options) ([]*card.Pile, []string, error) {
	cardFile, err := os.Open(opts.cardFile)
	if err != nil {
		return nil, nil, configErr("opening card file: %w", err)
	}
	defer cardFile.Close()

	cards, err := catalogio.LoadCards(cardFile)
	if err != nil {
		return nil, nil, configErr("loading cards: %w", err)
	}

	keepGroups, err := resolveGroups(opts)
	if err != nil {
		return nil, nil, err
	}
	if keepGroups != nil {
		filtered := cards[:0:0]
		for _, c := range cards {
			if keepGroups[c.Group] {
				filtered = append(filtered, c)
			}
		}
		cards = filtered
	}

	piles := catalogio.BuildPiles(cards)
	if len(opts.excludes) > 0 {
		exclude := toSet(opts.excludes)
		filtered := piles[:0:0]
		for _, p := range piles {
			if !exclude[p.Name] {
				filtered = append(filtered, p)
			}
		}
		piles = filtered
	}

	return piles, catalogio.Warnings(piles), nil
}

// resolveGroups returns nil (no filtering) when neither --boxes nor
// --groups was given; otherwise the union of resolved box groups and
// --groups, always including "base".
func resolveGroups(opts options) (map[string]bool, error) {
	if len(opts.boxes) == 0 && len(opts.groups) == 0 {
		return nil, nil
	}
	keep := map[string]bool{"base": true}
	for _, g := range opts.groups {
		keep[g] = true
	}
	if len(opts.boxes) == 0 {
		return keep, nil
	}

	boxFile, err := os.Open(opts.boxFile)
	if err != nil {
		return nil, configErr("opening box file: %w", err)
	}
	defer boxFile.Close()

	var boxes []catalogio.Box
	if strings.HasSuffix(opts.boxFile, ".yml") || strings.HasSuffix(opts.boxFile, ".yaml") {
		boxes, err = catalogio.LoadBoxesYAML(boxFile)
	} else {
		boxes, err = catalogio.LoadBoxes(boxFile)
	}
	if err != nil {
		return nil, configErr("loading box file: %w", err)
	}

	wanted := toSet(opts.boxes)
	found := map[string]bool{}
	for _, b := range boxes {
		if !wanted[b.Name] {
			continue
		}
		found[b.Name] = true
		for _, g := range b.Groups {
			keep[g] = true
		}
	}
	for name := range wanted {
		if !found[name] {
			return nil, configErr("unknown box %q", name)
		}
	}
	return keep, nil
}

func loadRules(path string) (catalogio.Rules, error) {
	f, err := os.Open(path)
	if err != nil {
		return catalogio.Rules{}, fmt.Errorf("opening rules file: %w", err)
	}
	defer f.Close()
	return catalogio.LoadRules(f)
}

func hasBasePile(piles []*card.Pile) bool {
	for _, p := range piles {
		if p.Group == "base" {
			return true
		}
	}
	return false
}

func printList(stdout io.Writer, piles []*card.Pile) {
	names := make([]string, 0, len(piles))
	for _, p := range piles {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintln(stdout, n)
	}
}

func printInfo(stdout, stderr io.Writer, piles []*card.Pile, name string) int {
	for _, p := range piles {
		if p.Name == name {
			fmt.Fprintln(stdout, p.String())
			return exitSuccess
		}
	}
	fmt.Fprintf(stderr, "Error: unknown card or pile %q\n", name)
	return exitConfigError
}

func toSet(items []string) map[string]bool {
	out := map[string]bool{}
	for _, it := range items {
		out[it] = true
	}
	return out
}

func parseTypeCount(s string) (string, int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return "", 0, fmt.Errorf("expected Type:N, got %q", s)
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, fmt.Errorf("expected Type:N, got %q: %w", s, err)
	}
	return parts[0], n, nil
}
