// Command brushinfo builds solids from the brushes of a BSP map and prints
// statistics about them, optionally exporting them as glTF.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/pkg/errors"

	"github.com/saiko-tech/brush-kernel/pkg/bspimport"
	"github.com/saiko-tech/brush-kernel/pkg/halfspace"
	"github.com/saiko-tech/brush-kernel/pkg/meshexport"
	"github.com/saiko-tech/brush-kernel/pkg/tagmatch"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("brushinfo", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		config  = fs.String("config", "", "TOML file with point_epsilon, angle_epsilon and determinant_epsilon")
		output  = fs.String("gltf", "", "write the solids to this .glb or .gltf file")
		texture = fs.String("texture", "", "count faces whose texture matches this pattern")
		verbose = fs.Bool("v", false, "log debug output")
	)

	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: brushinfo [flags] map.bsp [vpk...]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return errors.New("missing map")
	}

	if *verbose {
		halfspace.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	loader := bspimport.Loader{
		ContentsMask: bspimport.DefaultContentsMask,
		Tolerances:   bspimport.DefaultTolerances(),
	}

	if *config != "" {
		tol, err := loadConfig(*config)
		if err != nil {
			return err
		}
		loader.Tolerances = tol
	}

	m, err := loader.Load(fs.Arg(0), fs.Args()[1:]...)
	if err != nil {
		var skipped bspimport.SkippedBrushesError
		if !errors.As(err, &skipped) {
			return err
		}
		halfspace.Logger().Warn("some brushes were skipped", "count", m.Skipped)
	}

	printStats(stdout, m, *texture)

	if *output != "" {
		if err := meshexport.SaveGLTF(*output, m.Solids...); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "wrote %s\n", *output)
	}

	return nil
}

func loadConfig(path string) (halfspace.Tolerances, error) {
	f, err := os.Open(path)
	if err != nil {
		return halfspace.Tolerances{}, errors.Wrap(err, "failed to open config")
	}
	defer f.Close()

	return halfspace.LoadTolerances(f)
}

func printStats(w io.Writer, m *bspimport.Map, texture string) {
	var faces, vertices, edges, matching int

	bounds := halfspace.NewBBox()

	for _, s := range m.Solids {
		faces += len(s.Faces())
		vertices += len(s.Vertices())
		edges += len(s.Edges())

		b := s.Bounds()
		bounds = bounds.Expand(b.Min).Expand(b.Max)

		if texture != "" {
			matching += len(tagmatch.SelectFaces(s, tagmatch.TextureName{Pattern: texture}))
		}
	}

	fmt.Fprintf(w, "solids:   %d\n", len(m.Solids))
	fmt.Fprintf(w, "skipped:  %d\n", m.Skipped)
	fmt.Fprintf(w, "faces:    %d\n", faces)
	fmt.Fprintf(w, "vertices: %d\n", vertices)
	fmt.Fprintf(w, "edges:    %d\n", edges)

	if len(m.Solids) > 0 {
		fmt.Fprintf(w, "bounds:   %v - %v\n", bounds.Min, bounds.Max)
	}

	if texture != "" {
		fmt.Fprintf(w, "matching %q: %d\n", texture, matching)
	}
}
