package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"modscan/internal/definition"
	"modscan/internal/fingerprint"
	"modscan/internal/graph"
	"modscan/internal/interpolation"
	"modscan/internal/metrics"
	"modscan/internal/parser"
	"modscan/internal/store"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func parseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <mod-dir>",
		Short: "Parse one mod and print its definitions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			return runParse(cmd, args[0], asJSON)
		},
	}
	cmd.Flags().Bool("json", false, "Print one JSON object per definition")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <mod-dir>...",
		Short: "Report files claimed by more than one parser of the same rank",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args)
		},
	}
}

func conflictsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conflicts [mod-dir...]",
		Short: "List game elements defined by more than one mod",
		Long: `Without flags the given mod folders are scanned in load order and compared in memory.
With --run the conflicts of a stored ingestion run are read from PostgreSQL.
With --graph the overrides recorded in Neo4j are listed with their load-order winner.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runID, _ := cmd.Flags().GetString("run")
			fromGraph, _ := cmd.Flags().GetBool("graph")
			switch {
			case runID != "":
				return runStoredConflicts(cmd, runID)
			case fromGraph:
				return runGraphConflicts(cmd)
			case len(args) == 0:
				return errors.New("give at least one mod directory, --run or --graph")
			default:
				return runConflicts(cmd, args)
			}
		},
	}
	cmd.Flags().String("run", "", "Read conflicts of a stored run id")
	cmd.Flags().String("filter", "", "Only compare mods matching a filter such as version:3.12.*")
	cmd.Flags().Bool("graph", false, "Read overrides from the Neo4j graph")
	return cmd
}

func ingestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <mod-dir>...",
		Short: "Parse mods and store their definitions in PostgreSQL and Neo4j",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(cmd, args)
		},
	}
	cmd.Flags().String("filter", "", "Only ingest mods matching a filter such as version:3.12.*")
	return cmd
}

func similarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "similar <run-id> <code-file>",
		Short: "Find stored definitions whose code resembles a snippet",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			top, _ := cmd.Flags().GetInt("top")
			params, _ := cmd.Flags().GetStringToString("param")
			return runSimilar(cmd, args[0], args[1], top, params)
		},
	}
	cmd.Flags().Int("top", 5, "Number of matches to print")
	cmd.Flags().StringToString("param", nil, "Expand $NAME$ parameters in the snippet, e.g. --param COUNT=3")
	return cmd
}

// runParse handles the `parse` command.
func runParse(cmd *cobra.Command, dir string, asJSON bool) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := loadConfig()
	w, _, err := newWalker(cmd, cfg)
	if err != nil {
		return err
	}

	res, err := w.ScanMod(ctx, dir, cfg.WorkerCount)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		for _, d := range res.Definitions {
			if err := enc.Encode(d); err != nil {
				return fmt.Errorf("encode definition: %w", err)
			}
		}
		return nil
	}
	return printDefinitions(out, res.Definitions)
}

func printDefinitions(out io.Writer, defs []*definition.Definition) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tID\tKIND\tFILE")
	for _, d := range defs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.Type, d.ID, d.ValueType, d.File)
	}
	return tw.Flush()
}

// runValidate handles the `validate` command.
func runValidate(cmd *cobra.Command, dirs []string) error {
	cfg := loadConfig()
	w, _, err := newWalker(cmd, cfg)
	if err != nil {
		return err
	}

	var failed bool
	for _, dir := range dirs {
		err := w.Validate(dir)
		if err == nil {
			log.Info().Str("mod", dir).Msg("No parser collisions")
			continue
		}
		if !errors.Is(err, parser.ErrCollision) {
			return err
		}
		failed = true
		for _, line := range strings.Split(err.Error(), "\n") {
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
	}
	if failed {
		return parser.ErrCollision
	}
	return nil
}

// runConflicts handles `conflicts` over mod folders.
func runConflicts(cmd *cobra.Command, dirs []string) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := loadConfig()
	w, _, err := newWalker(cmd, cfg)
	if err != nil {
		return err
	}

	results, err := scanMods(ctx, w, dirs, cfg.WorkerCount)
	if err != nil {
		return err
	}
	filter, _ := cmd.Flags().GetString("filter")
	if results, err = filterMods(results, cfg.Locale, filter); err != nil {
		return err
	}

	index := definition.NewIndex()
	for _, res := range results {
		index.Add(res.Definitions...)
	}
	conflicts := index.Conflicts()
	metrics.ConflictsFound.Set(float64(len(conflicts)))

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tID\tMODS")
	for _, c := range conflicts {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Key.Type, c.Key.ID, strings.Join(c.Mods(), ", "))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	log.Info().Int("mods", len(results)).Int("keys", index.Len()).Int("conflicts", len(conflicts)).Msg("Comparison complete")
	return nil
}

// runStoredConflicts handles `conflicts --run`.
func runStoredConflicts(cmd *cobra.Command, rawID string) error {
	ctx, cancel := setupContext()
	defer cancel()

	runID, err := store.ParseRunID(rawID)
	if err != nil {
		return err
	}

	cfg := loadConfig()
	pgPool, err := initDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer pgPool.Close()

	s := store.NewDefinitionStore(pgPool, fingerprint.New(cfg.FingerprintDimensions))
	rows, err := s.Conflicts(ctx, runID)
	if err != nil {
		return err
	}
	metrics.ConflictsFound.Set(float64(len(rows)))

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tID\tMODS\tFILES")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Type, r.ID, strings.Join(r.Mods, ", "), strings.Join(r.Files, ", "))
	}
	return tw.Flush()
}

// runGraphConflicts handles `conflicts --graph`.
func runGraphConflicts(cmd *cobra.Command) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := loadConfig()
	driver, err := initGraph(ctx, cfg)
	if err != nil {
		return err
	}
	defer driver.Close(ctx)

	overrides, err := graph.NewGraphQuerier(driver).Overrides(ctx)
	if err != nil {
		return err
	}
	metrics.ConflictsFound.Set(float64(len(overrides)))

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tID\tMODS\tWINNER")
	for _, o := range overrides {
		winner := "unresolved"
		if o.Resolved() {
			winner = o.Winners[0]
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", o.Type, o.ID, strings.Join(o.Mods, ", "), winner)
	}
	return tw.Flush()
}

// runIngest handles the `ingest` command.
func runIngest(cmd *cobra.Command, dirs []string) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := loadConfig()
	w, game, err := newWalker(cmd, cfg)
	if err != nil {
		return err
	}

	pgPool, err := initDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer pgPool.Close()

	neo4jDriver, err := initGraph(ctx, cfg)
	if err != nil {
		return err
	}
	defer neo4jDriver.Close(ctx)

	defStore := store.NewDefinitionStore(pgPool, fingerprint.New(cfg.FingerprintDimensions))
	if err := defStore.EnsureSchema(ctx); err != nil {
		return err
	}
	graphBuilder := graph.NewGraphBuilder(neo4jDriver)
	if err := graphBuilder.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure graph schema: %w", err)
	}

	results, err := scanMods(ctx, w, dirs, cfg.WorkerCount)
	if err != nil {
		return err
	}
	filter, _ := cmd.Flags().GetString("filter")
	if results, err = filterMods(results, cfg.Locale, filter); err != nil {
		return err
	}

	var all []*definition.Definition
	var mods []string
	for _, res := range results {
		mods = append(mods, res.Descriptor.Name)
		all = append(all, res.Definitions...)

		if err := graphBuilder.AddMod(ctx, res.Descriptor); err != nil {
			return err
		}
		if err := graphBuilder.AddDefinitions(ctx, res.Definitions); err != nil {
			return err
		}
	}

	runID, err := defStore.SaveRun(ctx, game.ID, mods, all)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), runID)
	log.Info().
		Str("run", runID.String()).
		Int("mods", len(mods)).
		Int("definitions", len(all)).
		Msg("Ingestion complete")
	return nil
}

// runSimilar handles the `similar` command.
func runSimilar(cmd *cobra.Command, rawID, codeFile string, top int, params map[string]string) error {
	ctx, cancel := setupContext()
	defer cancel()

	runID, err := store.ParseRunID(rawID)
	if err != nil {
		return err
	}
	code, err := readSnippet(codeFile, params)
	if err != nil {
		return err
	}

	cfg := loadConfig()
	pgPool, err := initDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer pgPool.Close()

	s := store.NewDefinitionStore(pgPool, fingerprint.New(cfg.FingerprintDimensions))
	matches, err := s.Similar(ctx, runID, code, top)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCORE\tMOD\tTYPE\tID\tFILE")
	for _, m := range matches {
		fmt.Fprintf(tw, "%.3f\t%s\t%s\t%s\t%s\n", m.Similarity, m.ModName, m.Type, m.ID, m.File)
	}
	return tw.Flush()
}

// readSnippet loads a code snippet and expands its parameters. Parameters
// without a value or default stay as written and are reported.
func readSnippet(path string, params map[string]string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read code file: %w", err)
	}
	code := interpolation.Expand(string(raw), params)
	if left := interpolation.Parameters(code); len(left) > 0 {
		log.Warn().Strs("parameters", left).Msg("Snippet has unexpanded parameters")
	}
	return code, nil
}
