package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Target identifies one repository to triage, with optional per-repository
// overrides of the capacity knobs. A zero override means "use the global
// config value".
type Target struct {
	Repo            string `yaml:"repo"`
	MergeMaxRetries int    `yaml:"merge_max_retries,omitempty"`
	MaxConcurrent   int    `yaml:"max_concurrent,omitempty"`
}

// targetsFile is the on-disk schema of the YAML targets file.
type targetsFile struct {
	Repos []Target `yaml:"repos"`
}

// LoadTargets reads a YAML targets file of the form:
//
//	repos:
//	  - repo: owner/name
//	  - repo: owner/other
//	    merge_max_retries: 5
//	    max_concurrent: 3
//
// Every entry must have a non-empty repo in "owner/name" form.
func LoadTargets(path string) ([]Target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read targets file: %w", err)
	}

	var tf targetsFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("parse targets file: %w", err)
	}

	for i, t := range tf.Repos {
		if t.Repo == "" {
			return nil, fmt.Errorf("targets file entry %d: missing repo", i)
		}
		if t.MergeMaxRetries < 0 || t.MaxConcurrent < 0 {
			return nil, fmt.Errorf("targets file entry %q: negative override", t.Repo)
		}
	}

	return tf.Repos, nil
}

// ResolveTargets merges repositories named on the command line with the
// targets file (when configured). CLI repos carry no overrides. Duplicate
// repositories keep their first occurrence.
func ResolveTargets(cfg *Config) ([]Target, error) {
	var targets []Target
	seen := make(map[string]bool)

	for _, repo := range cfg.Repos {
		if seen[repo] {
			continue
		}
		seen[repo] = true
		targets = append(targets, Target{Repo: repo})
	}

	if cfg.TargetsFile != "" {
		fromFile, err := LoadTargets(cfg.TargetsFile)
		if err != nil {
			return nil, err
		}
		for _, t := range fromFile {
			if seen[t.Repo] {
				continue
			}
			seen[t.Repo] = true
			targets = append(targets, t)
		}
	}

	if len(targets) == 0 {
		return nil, fmt.Errorf("no repositories configured: use --repo or --targets")
	}

	return targets, nil
}
