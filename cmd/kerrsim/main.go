package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/kerrsim/internal/catalog"
	"github.com/san-kum/kerrsim/internal/config"
	"github.com/san-kum/kerrsim/internal/export"
	"github.com/san-kum/kerrsim/internal/kerr"
	"github.com/san-kum/kerrsim/internal/scene"
	"github.com/san-kum/kerrsim/internal/storage"
	"github.com/san-kum/kerrsim/internal/sweep"
	"github.com/san-kum/kerrsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	dbPath     string
	verbose    bool
	mass       float64
	spin       float64
	accretion  float64
	timeScale  float64
	configFile string
	preset     string
	asJSON     bool
	record     bool
	// sweep grid
	from     float64
	to       float64
	steps    int
	logScale bool
	// output
	column  string
	outPath string
	limit   int
	phase   float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "kerrsim",
		Short: "rotating black hole observables",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return viz.Run(cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".kerrsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "catalog database (default <data>/catalog.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	addParamFlags(rootCmd)

	evalCmd := &cobra.Command{
		Use:   "eval",
		Short: "compute observables for one black hole",
		Args:  cobra.NoArgs,
		RunE:  evalState,
	}
	addParamFlags(evalCmd)
	evalCmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	evalCmd.Flags().BoolVar(&record, "record", false, "store the evaluation in the catalog")

	sweepCmd := &cobra.Command{
		Use:   "sweep [spin|mass|accretion]",
		Short: "evaluate observables over a parameter range",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	addParamFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&from, "from", 0, "first grid value")
	sweepCmd.Flags().Float64Var(&to, "to", 0.998, "last grid value")
	sweepCmd.Flags().IntVar(&steps, "steps", 100, "number of grid points")
	sweepCmd.Flags().BoolVar(&logScale, "log", false, "logarithmic spacing")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved sweeps",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved sweep",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&column, "column", "", "column to plot (default: all for the axis)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a saved sweep as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "render one column of a saved sweep as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	svgCmd.Flags().StringVar(&column, "column", "isco", "column to draw")
	svgCmd.Flags().StringVar(&outPath, "out", "", "output file (default <run_id>_<column>.svg)")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render one frame of the black hole view as SVG",
		Args:  cobra.NoArgs,
		RunE:  snapshot,
	}
	addParamFlags(snapshotCmd)
	snapshotCmd.Flags().Float64Var(&phase, "phase", 0, "disk rotation phase")
	snapshotCmd.Flags().StringVar(&outPath, "out", "snapshot.svg", "output file")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tMASS\tSPIN\tACCRETION")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%.3f\t%g\n", name, viz.FormatMass(p.Mass), p.Spin, p.Accretion)
			}
			return w.Flush()
		},
	}

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "list recorded evaluations",
		RunE:  history,
	}
	historyCmd.Flags().IntVar(&limit, "limit", 20, "maximum entries (0 for all)")

	rootCmd.AddCommand(evalCmd, sweepCmd, listCmd, plotCmd, exportJSONCmd, svgCmd, snapshotCmd, presetsCmd, historyCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addParamFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "mass in solar masses")
	cmd.Flags().Float64Var(&spin, "spin", config.DefaultSpin, "dimensionless spin a* in [0, 1)")
	cmd.Flags().Float64Var(&accretion, "accretion", config.DefaultAccretion, "accretion rate in Eddington units")
	cmd.Flags().Float64Var(&timeScale, "time-scale", config.DefaultTimeScale, "animation speed")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig layers defaults, preset, config file and explicit flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("mass") || (preset == "" && configFile == "") {
		cfg.Mass = mass
	}
	if cmd.Flags().Changed("spin") || (preset == "" && configFile == "") {
		cfg.Spin = spin
	}
	if cmd.Flags().Changed("accretion") || (preset == "" && configFile == "") {
		cfg.Accretion = accretion
	}
	if cmd.Flags().Changed("time-scale") {
		cfg.TimeScale = timeScale
	}

	if cfg.Theme != "" && !viz.HasTheme(cfg.Theme) {
		return nil, fmt.Errorf("unknown theme: %s (available: %s)", cfg.Theme, strings.Join(viz.ThemeNames(), ", "))
	}

	slog.Debug("configuration resolved", "mass", cfg.Mass, "spin", cfg.Spin, "accretion", cfg.Accretion)
	return cfg, nil
}

func catalogPath() string {
	if dbPath != "" {
		return dbPath
	}
	return filepath.Join(dataDir, "catalog.db")
}

func evalState(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	p := cfg.Parameters()
	obs, err := kerr.Summarize(p)
	if err != nil {
		return err
	}

	if record {
		db, err := catalog.Open(catalogPath())
		if err != nil {
			return err
		}
		defer db.Close()

		entry, err := db.Record(cmd.Context(), p, obs)
		if err != nil {
			return err
		}
		slog.Info("evaluation recorded", "id", entry.ID)
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Params      kerr.Parameters  `json:"params"`
			Observables kerr.Observables `json:"observables"`
		}{p, obs})
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "mass\t%s\n", viz.FormatMass(p.MassSolar))
	fmt.Fprintf(w, "spin\t%.4f\n", p.Spin)
	fmt.Fprintf(w, "accretion\t%.3f Edd\n", p.AccretionRate)
	fmt.Fprintln(w, "\t")
	for _, r := range viz.Readouts(p, obs) {
		fmt.Fprintf(w, "%s\t%s\n", r.Label, r.Value)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	axis, err := sweep.ParseAxis(args[0])
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	grid := sweep.Grid{Axis: axis, From: from, To: to, Steps: steps, Log: logScale}
	if axis != sweep.AxisSpin && !cmd.Flags().Changed("to") {
		return fmt.Errorf("--to is required for a %s sweep", axis)
	}

	start := time.Now()
	result, err := sweep.Run(cmd.Context(), cfg.Parameters(), grid)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(result)
	if err != nil {
		return err
	}

	for _, name := range plotColumns(axis) {
		data, _ := result.Column(name)
		printPlot(data, fmt.Sprintf("%s vs %s", name, axis))
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", len(result.Samples))
	return nil
}

func plotColumns(axis sweep.Axis) []string {
	switch axis {
	case sweep.AxisSpin:
		return []string{"horizon", "isco", "efficiency"}
	case sweep.AxisMass:
		return []string{"rs_km", "l_edd"}
	default:
		return []string{"l_bol", "eddington_ratio"}
	}
}

func printPlot(data []float64, caption string) {
	if len(data) < 2 {
		return
	}
	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
	fmt.Println(graph)
	fmt.Println()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tAXIS\tRANGE\tSAMPLES\tTIMESTAMP")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t[%g, %g]\t%d\t%s\n",
			run.ID, run.Axis, run.Grid.From, run.Grid.To, run.Samples,
			run.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	header, rows, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}

	names := plotColumns(meta.Axis)
	if column != "" {
		names = []string{column}
	}
	for _, name := range names {
		data, err := storage.Column(header, rows, name)
		if err != nil {
			return err
		}
		printPlot(data, fmt.Sprintf("%s vs %s", name, meta.Axis))
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	header, rows, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		*storage.RunMetadata
		Columns []string    `json:"columns"`
		Rows    [][]float64 `json:"rows"`
	}{meta, header, rows})
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	header, rows, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	xs, err := storage.Column(header, rows, "input")
	if err != nil {
		return err
	}
	ys, err := storage.Column(header, rows, column)
	if err != nil {
		return err
	}

	svg := export.SeriesToSVG(xs, ys, 640, 360, string(viz.CurrentTheme.Accent))
	if svg == "" {
		return fmt.Errorf("run %s has too few samples to draw", args[0])
	}

	out := outPath
	if out == "" {
		out = fmt.Sprintf("%s_%s.svg", args[0], strings.ReplaceAll(column, "/", "_"))
	}
	if err := os.WriteFile(out, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}

func snapshot(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := scene.New(cfg.TimeScale)
	st.Phase = phase
	canvas, look, err := viz.RenderSnapshot(80, 32, cfg.Parameters(), st, 42)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outPath, []byte(export.CanvasToSVG(canvas, 4, look.DiskColor)), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outPath)
	return nil
}

func history(cmd *cobra.Command, args []string) error {
	db, err := catalog.Open(catalogPath())
	if err != nil {
		return err
	}
	defer db.Close()

	entries, err := db.List(cmd.Context(), limit)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("no evaluations recorded")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tMASS\tSPIN\tACC\tISCO\tη")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.3f\t%.2f\t%.3f\t%s\n",
			e.ID[:8], e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			viz.FormatMass(e.Params.MassSolar), e.Params.Spin, e.Params.AccretionRate,
			e.Observables.ISCORadiusRg, viz.FormatPercent(e.Observables.RadiativeEfficiency))
	}
	return w.Flush()
}
