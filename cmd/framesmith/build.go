package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/framesmith/fspack-go/authoring"
	"github.com/framesmith/fspack-go/encoder"
	"github.com/framesmith/fspack-go/internal/assets"
	"github.com/framesmith/fspack-go/internal/buildcache"
	"github.com/framesmith/fspack-go/rules"
)

// buildResult summarizes one character's build for reporting.
type buildResult struct {
	CharacterID  string
	OutputPath   string
	Bytes        int
	CacheHit     bool
	Issues       []rules.ValidationIssue
	SpriteErrors []error
}

// buildCharacter applies the merged project+character rules to every
// state, validates the result, and encodes a pack — using cache as a
// content-addressed shortcut when the resolved data hasn't changed.
func buildCharacter(projectRules *rules.RulesFile, src characterSource, cache *buildcache.Cache, outDir string, strict bool) (buildResult, error) {
	result := buildResult{CharacterID: src.ID}

	registry := rules.MergedRegistry(projectRules, src.Rules)

	resolved := make([]authoring.State, len(src.States))
	for i, s := range src.States {
		applied, err := rules.ApplyRulesToMove(projectRules, src.Rules, s)
		if err != nil {
			return result, fmt.Errorf("%s: apply rules to %s: %w", src.ID, s.Input, err)
		}
		resolved[i] = applied

		issues, err := rules.ValidateMoveWithRules(projectRules, src.Rules, applied)
		if err != nil {
			return result, fmt.Errorf("%s: validate %s: %w", src.ID, s.Input, err)
		}
		result.Issues = append(result.Issues, issues...)
	}

	for _, iss := range result.Issues {
		if iss.Severity == rules.SeverityError || (strict && iss.Severity == rules.SeverityWarning) {
			return result, fmt.Errorf("%s: validation %s: %s: %s", src.ID, iss.Severity, iss.Field, iss.Message)
		}
	}

	if src.BundlePath != "" {
		fileIndex, err := assets.BuildFileIndex([]string{src.BundlePath})
		if err != nil {
			return result, fmt.Errorf("%s: index asset bundle: %w", src.ID, err)
		}
		manifest := &assets.CharacterManifest{FileIndex: fileIndex}
		result.SpriteErrors = assets.CheckCharacterSprites(src.ID, src.Assets, manifest)
	}

	outputPath := filepath.Join(outDir, src.ID+".fspk")
	result.OutputPath = outputPath

	var hash string
	if cache != nil {
		var err error
		hash, err = buildcache.Key(src.Character, src.Assets, resolved, src.Cancel)
		if err != nil {
			return result, fmt.Errorf("%s: compute cache key: %w", src.ID, err)
		}
		if cached, ok, err := cache.Get(hash); err != nil {
			return result, fmt.Errorf("%s: read cache: %w", src.ID, err)
		} else if ok {
			if err := os.WriteFile(outputPath, cached, 0644); err != nil {
				return result, fmt.Errorf("%s: write cached pack: %w", src.ID, err)
			}
			result.Bytes = len(cached)
			result.CacheHit = true
			return result, nil
		}
	}

	data, err := encoder.Encode(encoder.Input{
		Character: src.Character,
		Assets:    src.Assets,
		States:    resolved,
		Cancel:    src.Cancel,
		Registry:  registry,
	})
	if err != nil {
		return result, fmt.Errorf("%s: encode: %w", src.ID, err)
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return result, fmt.Errorf("%s: write pack: %w", src.ID, err)
	}
	result.Bytes = len(data)

	if cache != nil {
		if err := cache.Put(hash, src.ID, data, time.Now()); err != nil {
			return result, fmt.Errorf("%s: write cache: %w", src.ID, err)
		}
	}
	return result, nil
}
