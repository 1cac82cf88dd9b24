// Command framesmith compiles a character authoring project into one
// FSPK pack per character, applying project and character rules along
// the way and reporting validation issues before anything is written.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/framesmith/fspack-go/internal/buildcache"
)

func main() {
	var (
		projectDir = pflag.StringP("project", "p", ".", "authoring project root")
		outDir     = pflag.StringP("out", "o", "dist", "directory to write compiled .fspk packs into")
		character  = pflag.StringP("character", "c", "", "build only this character ID (default: all)")
		strict     = pflag.Bool("strict", false, "also fail the build on validation warnings (errors always fail the build)")
		noCache    = pflag.Bool("no-cache", false, "skip the build cache")
		confirm    = pflag.Bool("confirm-warnings", false, "pause for a keypress when a character has validation warnings")
	)
	pflag.Parse()

	fileCfg, err := loadFileConfig(*projectDir)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if !pflag.CommandLine.Changed("out") && fileCfg.Out != "" {
		*outDir = fileCfg.Out
	}
	if !pflag.CommandLine.Changed("strict") && fileCfg.Strict {
		*strict = true
	}

	buildID := uuid.New().String()
	log.Printf("build %s: project %s", buildID, *projectDir)

	if err := run(*projectDir, *outDir, *character, *strict, *noCache, *confirm); err != nil {
		log.Fatalf("build %s: %v", buildID, err)
	}
}

func run(projectDir, outDir, onlyCharacter string, strict, noCache, confirmWarnings bool) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	projectRules, err := loadProjectRules(projectDir)
	if err != nil {
		return err
	}

	ids, err := listCharacterIDs(projectDir)
	if err != nil {
		return err
	}
	if onlyCharacter != "" {
		ids = filterIDs(ids, onlyCharacter)
		if len(ids) == 0 {
			return fmt.Errorf("character %q not found under %s", onlyCharacter, filepath.Join(projectDir, "characters"))
		}
	}

	var cache *buildcache.Cache
	if !noCache {
		cache, err = buildcache.Open(filepath.Join(projectDir, ".framesmith-cache.db"))
		if err != nil {
			return err
		}
		defer cache.Close()
	}

	var totalBytes int
	for _, id := range ids {
		src, err := loadCharacter(projectDir, id)
		if err != nil {
			return err
		}

		result, err := buildCharacter(projectRules, src, cache, outDir, strict)
		if err != nil {
			return err
		}
		totalBytes += result.Bytes

		reportResult(result, confirmWarnings)
	}

	log.Printf("build complete: %d character(s), %s total", len(ids), humanize.Bytes(uint64(totalBytes)))
	return nil
}

func filterIDs(ids []string, want string) []string {
	for _, id := range ids {
		if id == want {
			return []string{id}
		}
	}
	return nil
}

// reportResult logs a build's outcome in the teacher's indented
// progress-line style, pausing for operator confirmation on warnings
// when running in an interactive terminal.
func reportResult(result buildResult, confirmWarnings bool) {
	status := "encoded"
	if result.CacheHit {
		status = "cached"
	}
	log.Printf("  %s: %s (%s)", result.CharacterID, status, humanize.Bytes(uint64(result.Bytes)))

	var warnings int
	for _, iss := range result.Issues {
		log.Printf("    [%s] %s: %s", iss.Severity, iss.Field, iss.Message)
		if iss.Severity != "error" {
			warnings++
		}
	}
	for _, spriteErr := range result.SpriteErrors {
		log.Printf("    [warning] sprite: %v", spriteErr)
		warnings++
	}

	if warnings == 0 || !confirmWarnings {
		return
	}
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return
	}
	fmt.Fprintf(os.Stderr, "  %s has %d warning(s) — press any key to continue, Ctrl-C to abort\n", result.CharacterID, warnings)
	waitForKeypress()
}

// waitForKeypress reads one raw keypress from stdin, restoring the
// terminal's prior mode before returning.
func waitForKeypress() {
	fd := int(os.Stdin.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return
	}
	defer term.Restore(fd, state)

	buf := make([]byte, 1)
	os.Stdin.Read(buf)
}
