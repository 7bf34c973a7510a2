package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/apex/log"
	clihandler "github.com/apex/log/handlers/cli"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wbrown/apixels"
)

// options mirrors the command line flags.
type options struct {
	sampleWidth  int
	sampleHeight int
	depth        string
	noBackground bool
	sigma        float64
	constant     float64
	edges        bool
	width        int
	fit          bool
	output       string
	compact      bool
	workers      int
	previewScale int
	verbose      bool
}

var opts options

func init() {
	log.SetHandler(clihandler.Default)
	addFlags(rootCmd, &opts)
}

func addFlags(c *cobra.Command, o *options) {
	f := c.Flags()
	f.IntVar(&o.sampleWidth, "sample-width", 2, "Width in pixels of the tile sampled for each character")
	f.IntVar(&o.sampleHeight, "sample-height", 3, "Height in pixels of the tile sampled for each character")
	f.StringVarP(&o.depth, "depth", "d", "truecolor", "Color depth: truecolor, packed16, intensity, palette16 or none")
	f.BoolVarP(&o.noBackground, "no-background", "n", false, "Use a single foreground color per character")
	f.Float64VarP(&o.sigma, "sigma", "s", 3.0, "Sigma of the narrow Gaussian blur used for edge detection")
	f.Float64VarP(&o.constant, "constant", "c", 3.0, "Multiplier giving the wide blur radius (1 disables edge detection)")
	f.BoolVarP(&o.edges, "edges", "e", false, "Color characters from the edge map instead of the image")
	f.IntVarP(&o.width, "width", "w", 0, "Downscale the image to at most this many columns (0 keeps source size)")
	f.BoolVar(&o.fit, "fit", false, "Downscale the image to the terminal width")
	f.StringVarP(&o.output, "output", "o", "", "Write to a file instead of stdout (.png writes a preview image)")
	f.BoolVar(&o.compact, "compact", false, "Only emit color escapes when the style changes")
	f.IntVar(&o.workers, "workers", 0, "Number of tile rows rendered in parallel (0 uses all CPUs)")
	f.IntVar(&o.previewScale, "preview-scale", 1, "Pixel scale of the PNG preview")
	c.PersistentFlags().BoolVarP(&o.verbose, "verbose", "V", false, "Enable verbose logging")
}

// rendererOptions translates flags into renderer options.
func (o options) rendererOptions(termWidth func() (int, error)) ([]apixels.RendererOption, error) {
	depth, err := apixels.ParseDepth(o.depth)
	if err != nil {
		return nil, err
	}

	ropts := []apixels.RendererOption{
		apixels.WithSampleSize(o.sampleWidth, o.sampleHeight),
		apixels.WithDepth(depth),
		apixels.WithSigma(o.sigma),
		apixels.WithConstant(o.constant),
		apixels.WithNoBackground(o.noBackground),
		apixels.WithShowEdges(o.edges),
	}
	if o.workers > 0 {
		ropts = append(ropts, apixels.WithWorkers(o.workers))
	}

	columns := o.width
	if o.fit && columns == 0 {
		w, err := termWidth()
		if err != nil {
			return nil, fmt.Errorf("failed to get terminal width: %w", err)
		}
		columns = w
	}
	if columns > 0 {
		ropts = append(ropts, apixels.WithTargetColumns(columns))
	}
	return ropts, nil
}

func stdoutWidth() (int, error) {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	return w, err
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "apixels <image>",
	Short: "Render images as colored text in your terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if opts.verbose {
			log.SetLevel(log.DebugLevel)
		}
		return run(args[0], opts, cmd.OutOrStdout())
	},
	SilenceUsage: true,
}

func run(path string, o options, stdout io.Writer) error {
	ropts, err := o.rendererOptions(stdoutWidth)
	if err != nil {
		return err
	}
	renderer := apixels.NewRenderer(append(ropts, apixels.WithLogger(log.Log))...)

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	start := time.Now()
	grid, err := renderer.RenderGridReader(f)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"path":    path,
		"columns": grid.Columns,
		"rows":    grid.Rows,
		"elapsed": time.Since(start),
	}).Debug("rendered")

	if strings.EqualFold(filepath.Ext(o.output), ".png") {
		if err := apixels.SavePreview(grid, renderer.Glyphs, o.output, o.previewScale); err != nil {
			return fmt.Errorf("failed to write preview: %w", err)
		}
		log.Infof("Preview written to %s", o.output)
		return nil
	}

	text := grid.String()
	if o.compact {
		text = grid.Compact()
	}

	if o.output != "" {
		if err := os.WriteFile(o.output, []byte(text), 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		log.Infof("Output written to %s", o.output)
		return nil
	}

	_, err = io.WriteString(stdout, text)
	return err
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}
