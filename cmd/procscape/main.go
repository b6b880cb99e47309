// procscape generates procedural terrain scenes: height fields, Voronoi
// regions and L-system obstacles.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/procscape/internal/config"
	"github.com/Faultbox/procscape/internal/logger"
)

func main() {
	// Global flags come before the command
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]
	args = args[1:]
	logger.Debug("running command", zap.String("command", command), zap.Strings("args", args))

	switch command {
	case "generate", "gen":
		err = cmdGenerate(cfg, args)
	case "expand":
		err = cmdExpand(args)
	case "play":
		err = cmdPlay(cfg, args)
	case "list", "ls":
		err = cmdList(cfg, args)
	case "show":
		err = cmdShow(cfg, args)
	case "export":
		err = cmdExport(cfg, args)
	case "delete", "rm":
		err = cmdDelete(cfg, args)
	case "config":
		err = cmdConfig(cfg, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`procscape - procedural terrain, Voronoi regions and L-system obstacles

Usage:
  procscape [global flags] <command> [options]

Global flags:
  -config <file>   Config file (default ./procscape.yaml or the user config dir)
  -seed <n>        Random seed
  -width <n>       Terrain width in cells
  -height <n>      Terrain depth in cells
  -noise <name>    Noise backend: perlin, simplex, classic
  -db <file>       Scene database
  -debug           Debug logging

Commands:
  generate [options]             Generate a scene (see generate -h)
  expand -axiom A -rule X=Y      Expand an L-system and trace it with the turtle
  play [-steps N] [-walk]        Run the target-region game with a walker
  list [-n N]                    List saved scenes
  show <id>                      Show a saved scene
  export [-scale n] <id> [dir]   Write height and region PNGs for a saved scene
  delete <id>                    Delete a saved scene
  config save [path]             Write the effective config as YAML

Examples:
  procscape generate -regions 8 -save -png ./out
  procscape -seed 7 generate -strategy fault -iterations 400 -smooth 0.5
  procscape expand -axiom F -rule "F=F[+F]F[-F]F" -n 2
  procscape list -n 10`)
}
