// animtool is a CLI utility for inspecting and sampling animated models.
package main

import (
	"fmt"
	"os"

	"github.com/Faultbox/nodeanim/internal/logger"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	// Tool output goes to stdout; warnings such as disabled channels go to stderr.
	level := "warn"
	if os.Getenv("ANIMTOOL_DEBUG") != "" {
		level = "debug"
	}
	if err := logger.Init(level, ""); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	var err error
	switch command {
	case "info":
		err = cmdInfo(os.Stdout, args)
	case "nodes", "tree":
		err = cmdNodes(os.Stdout, args)
	case "sample":
		err = cmdSample(os.Stdout, args)
	case "dump":
		err = cmdDump(os.Stdout, args)
	case "convert":
		err = cmdConvert(os.Stdout, args)
	case "config":
		err = cmdConfig(os.Stdout, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`animtool - animated model utility

Usage:
  animtool <command> [options]

Commands:
  info <asset>                         Show model, clip and bounds summary
  nodes [-clip name] [-t sec] <asset>  Print the node tree with world positions
  sample [-clip name] [-t sec] [-raw] <asset>
                                       Print world matrices at a clip time
  dump [-clips] <asset>                Dump the imported records
  convert <asset> <out.yaml>           Write the asset as a YAML rig
  config [path]                        Write the default player config

Assets are .gltf, .glb or .yaml rig files.

Examples:
  animtool info fox.glb
  animtool nodes -clip Walk -t 0.5 fox.glb
  animtool sample -t 1.25 arm.yaml
  animtool convert fox.glb fox.yaml`)
}
