// Package main provides a generator that extracts CLI, configuration, and lint
// metadata from LeapDL source code and generates markdown documentation.
//
// Usage:
//
//	go run ./scripts/gendocs -gen=cli -outdir=docs/cli
//	go run ./scripts/gendocs -gen=config -outdir=docs/concepts
//	go run ./scripts/gendocs -gen=lint -outdir=docs/linting
//	go run ./scripts/gendocs -gen=all
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
)

var (
	genFlag    = flag.String("gen", "all", "what to generate: cli, config, lint, all")
	outDirFlag = flag.String("outdir", "", "output directory (defaults based on gen type)")
)

// generator writes one documentation section into outDir.
type generator struct {
	name       string
	defaultDir string
	run        func(outDir string) error
}

var generators = []generator{
	{name: "cli", defaultDir: filepath.Join("docs", "cli"), run: generateCLIDocs},
	{name: "config", defaultDir: filepath.Join("docs", "concepts"), run: generateConfigDocs},
	{name: "lint", defaultDir: filepath.Join("docs", "linting"), run: generateLintDocs},
}

func main() {
	flag.Parse()

	if *genFlag != "all" && findGenerator(*genFlag) == nil {
		log.Fatalf("unknown -gen value: %s (use: cli, config, lint, all)", *genFlag)
	}

	// Find project root (where go.mod is)
	projectRoot, err := findProjectRoot()
	if err != nil {
		log.Fatalf("failed to find project root: %v", err)
	}

	log.Printf("Project root: %s", projectRoot)

	if *genFlag == "all" {
		for _, g := range generators {
			if err := g.run(filepath.Join(projectRoot, g.defaultDir)); err != nil {
				log.Fatalf("failed to generate %s docs: %v", g.name, err)
			}
		}
		log.Println("Done!")
		return
	}

	g := findGenerator(*genFlag)
	outDir := *outDirFlag
	if outDir == "" {
		outDir = filepath.Join(projectRoot, g.defaultDir)
	}
	if err := g.run(outDir); err != nil {
		log.Fatalf("failed to generate %s docs: %v", g.name, err)
	}

	log.Println("Done!")
}

func findGenerator(name string) *generator {
	for i := range generators {
		if generators[i].name == name {
			return &generators[i]
		}
	}
	return nil
}

// findProjectRoot walks up from current directory to find go.mod.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}
