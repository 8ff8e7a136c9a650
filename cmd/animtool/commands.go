package main

import (
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/Faultbox/nodeanim/internal/config"
	"github.com/Faultbox/nodeanim/internal/engine/animation"
	"github.com/Faultbox/nodeanim/internal/engine/model"
	"github.com/Faultbox/nodeanim/internal/engine/playback"
	"github.com/Faultbox/nodeanim/internal/engine/scene"
	"github.com/Faultbox/nodeanim/internal/importer"
	"github.com/Faultbox/nodeanim/internal/logger"
	"github.com/Faultbox/nodeanim/pkg/math"
)

var errUsage = errors.New("usage")

func loadModel(path string, scene int) (*model.Model, error) {
	asset, err := importer.Load(path, importer.Options{Scene: scene})
	if err != nil {
		return nil, err
	}
	return model.Build(asset)
}

// pose plays the model's clip up to time t and returns the player.
func pose(m *model.Model, clip string, t float64) (*playback.Player, error) {
	p, err := m.NewPlayer(playback.Config{Clip: clip, Speed: 1}, playback.WithLogger(logger.Named("animtool")))
	if err != nil {
		return nil, err
	}
	p.Seek(float32(t))
	if err := p.Update(0); err != nil &&
		!errors.Is(err, animation.ErrUnsupportedInterpolation) && !errors.Is(err, animation.ErrUnsupportedPath) {
		return nil, err
	}
	return p, nil
}

func cmdInfo(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	sceneIdx := fs.Int("scene", -1, "glTF scene index")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("%w: animtool info <asset>", errUsage)
	}

	m, err := loadModel(fs.Arg(0), *sceneIdx)
	if err != nil {
		return err
	}

	meshNodes, prims := model.CountPrimitives(m.Graph)
	b := model.SkeletonBounds(m.Graph, m.Skeleton)

	fmt.Fprintf(w, "Model:      %s\n", m.Name)
	fmt.Fprintf(w, "Nodes:      %d (%d roots, %d with mesh)\n", m.Graph.NodeCount(), len(m.Graph.Roots()), meshNodes)
	fmt.Fprintf(w, "Primitives: %d\n", prims)
	fmt.Fprintf(w, "Skeleton:   %d bytes\n", m.NewBuffer().Size())
	fmt.Fprintf(w, "Bounds:     (%.3f, %.3f, %.3f) - (%.3f, %.3f, %.3f)\n",
		b.Min[0], b.Min[1], b.Min[2], b.Max[0], b.Max[1], b.Max[2])
	fmt.Fprintln(w)

	if len(m.Clips) == 0 {
		fmt.Fprintln(w, "No clips")
		return nil
	}
	fmt.Fprintln(w, "Clips:")
	for i, c := range model.BuildClipInfo(m) {
		var unsupported int
		for _, ch := range m.Clips[i].Channels {
			if m.Clips[i].Supported(ch) != nil {
				unsupported++
			}
		}
		fmt.Fprintf(w, "  %-20s %7.3fs - %7.3fs  %3d channels  %3d samplers  %5d keys",
			c.Name, c.Start, c.End, c.Channels, c.Samplers, c.Keys)
		if unsupported > 0 {
			fmt.Fprintf(w, "  (%d unsupported)", unsupported)
		}
		fmt.Fprintln(w)
	}
	return nil
}

func cmdNodes(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("nodes", flag.ExitOnError)
	clip := fs.String("clip", "", "Clip to pose (default: first)")
	t := fs.Float64("t", -1, "Clip time in seconds (default: load pose)")
	sceneIdx := fs.Int("scene", -1, "glTF scene index")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("%w: animtool nodes [-clip name] [-t sec] <asset>", errUsage)
	}

	m, err := loadModel(fs.Arg(0), *sceneIdx)
	if err != nil {
		return err
	}

	world := m.Skeleton
	if *t >= 0 {
		p, err := pose(m, *clip, *t)
		if err != nil {
			return err
		}
		world = p.Matrices()
	}

	depth := make(map[int]int)
	m.Graph.Walk(func(n *scene.Node) bool {
		d := 0
		if !n.IsRoot() {
			d = depth[n.Parent] + 1
		}
		depth[n.Index] = d

		name := n.Name
		if name == "" {
			name = "(unnamed)"
		}
		pos := math.Translation(world[n.Index])
		line := fmt.Sprintf("%s[%d] %s", strings.Repeat("  ", d), n.Index, name)
		fmt.Fprintf(w, "%-40s (%8.3f, %8.3f, %8.3f)", line, pos[0], pos[1], pos[2])
		if n.HasMesh() {
			fmt.Fprintf(w, "  mesh %d/%d prims", n.Mesh, len(n.Primitives))
		}
		fmt.Fprintln(w)
		return true
	})
	return nil
}

func cmdSample(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("sample", flag.ExitOnError)
	clip := fs.String("clip", "", "Clip to sample (default: first)")
	t := fs.Float64("t", 0, "Clip time in seconds")
	raw := fs.Bool("raw", false, "Print the skeleton buffer bytes as hex")
	sceneIdx := fs.Int("scene", -1, "glTF scene index")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("%w: animtool sample [-clip name] [-t sec] <asset>", errUsage)
	}

	m, err := loadModel(fs.Arg(0), *sceneIdx)
	if err != nil {
		return err
	}
	p, err := pose(m, *clip, *t)
	if err != nil {
		return err
	}

	world := p.Matrices()
	if *raw {
		_, err := fmt.Fprint(w, hex.Dump(world.Bytes()))
		return err
	}

	if c := p.ActiveClip(); c != nil {
		fmt.Fprintf(w, "Clip %q at %.3fs\n", c.Name, p.Time())
	}
	for i, mat := range world {
		if m.Graph.Node(i) == nil {
			continue
		}
		fmt.Fprintf(w, "[%d] %s\n", i, m.Graph.Node(i).Name)
		for row := 0; row < 4; row++ {
			r := mat.Row(row)
			fmt.Fprintf(w, "    %9.4f %9.4f %9.4f %9.4f\n", r[0], r[1], r[2], r[3])
		}
	}
	return nil
}

func cmdDump(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	clips := fs.Bool("clips", false, "Dump clip records instead of nodes")
	sceneIdx := fs.Int("scene", -1, "glTF scene index")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("%w: animtool dump [-clips] <asset>", errUsage)
	}

	asset, err := importer.Load(fs.Arg(0), importer.Options{Scene: *sceneIdx})
	if err != nil {
		return err
	}

	cfg := spew.ConfigState{
		Indent:                  "  ",
		DisablePointerAddresses: true,
		DisableCapacities:       true,
		SortKeys:                true,
	}
	if *clips {
		cfg.Fdump(w, asset.Clips)
		return nil
	}
	fmt.Fprintf(w, "roots: %v\n", asset.Roots)
	cfg.Fdump(w, asset.Nodes)
	return nil
}

func cmdConvert(w io.Writer, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: animtool convert <asset> <out.yaml>", errUsage)
	}

	asset, err := importer.Load(args[0], importer.DefaultOptions())
	if err != nil {
		return err
	}
	// Refuse to write something that would not load back.
	if _, err := model.Build(asset); err != nil {
		return err
	}

	f, err := os.Create(args[1])
	if err != nil {
		return err
	}
	if err := importer.EncodeRig(f, asset); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(w, "Wrote %s (%d nodes, %d clips)\n", args[1], len(asset.Nodes), len(asset.Clips))
	return nil
}

func cmdConfig(w io.Writer, args []string) error {
	cfg := config.Default()
	if len(args) > 0 {
		if err := cfg.SaveTo(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(w, "Wrote %s\n", args[0])
		return nil
	}
	path, err := cfg.Save()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Wrote %s\n", path)
	return nil
}
