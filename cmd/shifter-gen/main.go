// Command shifter-gen generates the Declare method of a shifter registry from annotations.
//
// It is meant to be invoked by go:generate, from the file holding a struct embedding
// shifter.EmptyRegistry:
//
//	//go:generate go run github.com/a-peyrard/shifter/cmd/shifter-gen
//	type Registry struct {
//		shifter.EmptyRegistry
//	}
//
// The whole module is scanned for doc comments annotating functions and methods:
//
//	// @constructor [inject] [visibility=private|public]
//	// @inject [visibility=private|public]
//	// @property [visibility=private|public]
//
// @inject marks a method for injection, @property marks a SetName method as the setter
// of the injectable property Name.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/a-peyrard/shifter/slices"
	"github.com/rs/zerolog"
	"golang.org/x/tools/go/packages"
)

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached root
		}
		dir = parent
	}
	return "."
}

func main() {
	dryRun := os.Getenv("DRY_RUN") == "true"

	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.DateTime}).
		With().
		Timestamp().
		Logger()

	// capture the target file, where the generator is invoked
	currentDir, _ := os.Getwd()
	targetFilePath := filepath.Join(currentDir, os.Getenv("GOFILE"))

	outputPath := filepath.Join(
		filepath.Dir(targetFilePath),
		strings.TrimSuffix(filepath.Base(targetFilePath), ".go")+"_gen.go",
	)
	if dryRun {
		outputPath = filepath.Join(os.TempDir(), filepath.Base(outputPath))
	}

	// switch to the root of the module as we want to be able to scan the whole module
	if err := os.Chdir(findModuleRoot()); err != nil {
		logger.Fatal().Err(err).Msg("Failed to change directory to module root")
	}

	if err := run(&logger, targetFilePath, outputPath); err != nil {
		logger.Error().Err(err).Msgf("Failed to generate code in %s", outputPath)
		os.Exit(1)
	}
	logger.Info().Msgf("✅ Code generated successfully in %s", outputPath)
}

func run(logger *zerolog.Logger, targetFilePath, outputPath string) error {
	startScan := time.Now()

	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax,
	}
	pkgs, err := packages.Load(cfg, "./...")
	if err != nil {
		return fmt.Errorf("failed to load the module packages:\n\t%w", err)
	}

	var (
		members  []MemberDefinition
		registry *RegistryDefinition
	)
	for _, pkg := range pkgs {
		logger := logger.With().Str("package", pkg.PkgPath).Logger()
		logger.Debug().Msg("Scanning package")
		for _, file := range pkg.Syntax {
			// only look for the registry in the file triggering the generation
			if pkg.Fset.Position(file.Pos()).Filename == targetFilePath {
				registry = findRegistry(&logger, file, pkg.PkgPath)
			}
			members = append(members, scanFile(&logger, file, pkg.PkgPath)...)
		}
	}

	if registry == nil {
		return errors.New("no registry found in the target file, make sure you have a struct like this:\n" +
			"type Registry struct {\n    shifter.EmptyRegistry\n}")
	}

	logger.Info().Msgf("👨‍🔧 Registry found: %+v", registry)
	logger.Info().Msgf("🎯 %d annotated members found in the module", len(members))
	logger.Debug().Msgf("Members:\n%s", strings.Join(slices.Map(members, MemberDefinition.String), "\n----\n"))
	logger.Info().Msgf("🕵️‍♂️ Scanning completed in %s", time.Since(startScan))

	source, err := generateSource(logger, registry, members)
	if err != nil {
		return err
	}
	return writeFileAtomic(outputPath, source, 0o644)
}
