// Command dataview-cli scaffolds view configurations and previews what the
// library derives from them.
//
//	dataview-cli new [-output FILE]     interactive scaffolder
//	dataview-cli labels CONFIG          print the derived label set
//	dataview-cli schema CONFIG          print the generated column schema
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tangibleinc/dataview/pkg/fieldtype"
	"github.com/tangibleinc/dataview/pkg/labels"
	"github.com/tangibleinc/dataview/pkg/schema"
	"github.com/tangibleinc/dataview/pkg/viewconfig"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "new":
		runNew(os.Args[2:])
	case "labels":
		runLabels(os.Args[2:])
	case "schema":
		runSchema(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: dataview-cli new [-output FILE] | labels CONFIG | schema CONFIG")
}

func runNew(args []string) {
	output := ""
	if len(args) >= 2 && args[0] == "-output" {
		output = args[1]
	}

	cfg, err := promptConfig()
	if err != nil {
		log.Fatalf("scaffold: %v", err)
	}

	if err := cfg.Validate(fieldtype.NewRegistry()); err != nil {
		log.Fatalf("scaffold produced an invalid config: %v", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		log.Fatalf("encode config: %v", err)
	}

	if output == "" {
		output = cfg.Slug + ".yaml"
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		log.Fatalf("write %s: %v", output, err)
	}
	fmt.Printf("View configuration written to %s\n", output)
}

func runLabels(args []string) {
	cfg := loadConfig(args)
	set := labels.Generate(cfg.Label.Singular, cfg.Label.Plural)
	printJSON(set)
}

func runSchema(args []string) {
	cfg := loadConfig(args)
	settings, err := schema.GenerateSettings(cfg.SchemaFields(), fieldtype.NewRegistry(), 1)
	if err != nil {
		log.Fatalf("generate schema: %v", err)
	}
	printJSON(settings)
}

func loadConfig(args []string) viewconfig.Config {
	if len(args) != 1 {
		usage()
		os.Exit(2)
	}
	cfg, err := viewconfig.LoadFile(args[0])
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(fieldtype.NewRegistry()); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	return cfg
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("encode: %v", err)
	}
	fmt.Println(string(data))
}
