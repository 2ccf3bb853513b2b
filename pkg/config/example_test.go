package config_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/walteh/ensurelines/pkg/config"
)

func ExampleLoad_yaml() {
	ctx := context.Background()

	configYAML := `
rules:
  - files: ["src/types.ts"]
    anchor: "interface Profile {"
    lines:
      - "  bio?: string;"
      - "  website?: string;"
`

	tmpDir, err := os.MkdirTemp("", "ensurelines-example")
	if err != nil {
		fmt.Printf("Error creating dir: %v\n", err)
		return
	}
	defer os.RemoveAll(tmpDir)

	configPath := filepath.Join(tmpDir, "rules.yaml")
	if err := os.WriteFile(configPath, []byte(configYAML), 0644); err != nil {
		fmt.Printf("Error writing config: %v\n", err)
		return
	}

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		return
	}

	fmt.Println(cfg)
	fmt.Printf("Concurrency: %d\n", cfg.Concurrency)

	// Output:
	// src/types.ts after "interface Profile {" -> 2 line(s)
	// Concurrency: 4
}

func ExampleFromFlags() {
	cfg, err := config.FromFlags("src/types.ts", "", []string{"  bio?: string;"})
	fmt.Printf("Config: %v\n", cfg)
	fmt.Printf("Error: %v\n", err)

	// Output:
	// Config: <nil>
	// Error: validating flags: rule 0: anchor is required
}
