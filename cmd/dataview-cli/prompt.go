package main

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/AlecAivazis/survey/v2"

	"github.com/tangibleinc/dataview/pkg/fieldtype"
	"github.com/tangibleinc/dataview/pkg/labels"
	"github.com/tangibleinc/dataview/pkg/viewconfig"
)

var slugCheck = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

func slugValidator(ans any) error {
	s, ok := ans.(string)
	if !ok || !slugCheck.MatchString(s) {
		return fmt.Errorf("use lowercase letters, digits and underscores, starting with a letter")
	}
	return nil
}

// promptConfig walks the author through a complete view configuration.
func promptConfig() (viewconfig.Config, error) {
	var cfg viewconfig.Config

	base := []*survey.Question{
		{
			Name:     "slug",
			Prompt:   &survey.Input{Message: "View slug (e.g. books):"},
			Validate: slugValidator,
		},
		{
			Name:     "singular",
			Prompt:   &survey.Input{Message: "Singular label (e.g. Book):"},
			Validate: survey.Required,
		},
	}
	answers := struct {
		Slug     string
		Singular string
	}{}
	if err := survey.Ask(base, &answers); err != nil {
		return cfg, err
	}
	cfg.Slug = answers.Slug
	cfg.Label.Singular = answers.Singular

	plural := ""
	if err := survey.AskOne(&survey.Input{
		Message: "Plural label:",
		Default: labels.Pluralize(answers.Singular),
	}, &plural); err != nil {
		return cfg, err
	}
	cfg.Label.Plural = plural

	if err := survey.AskOne(&survey.Select{
		Message: "Storage:",
		Options: []string{viewconfig.StorageCPT, viewconfig.StorageDatabase, viewconfig.StorageOption},
		Default: viewconfig.StorageCPT,
	}, &cfg.Storage); err != nil {
		return cfg, err
	}

	if err := survey.AskOne(&survey.Select{
		Message: "Mode:",
		Options: []string{viewconfig.ModePlural, viewconfig.ModeSingular},
		Default: viewconfig.ModePlural,
	}, &cfg.Mode); err != nil {
		return cfg, err
	}

	types := fieldtype.NewRegistry().Names()
	sort.Strings(types)
	for {
		field, more, err := promptField(types)
		if err != nil {
			return cfg, err
		}
		cfg.Fields = append(cfg.Fields, field)
		if !more {
			break
		}
	}

	cfg.ApplyDefaults()
	return cfg, nil
}

func promptField(types []string) (viewconfig.FieldConfig, bool, error) {
	var field viewconfig.FieldConfig

	if err := survey.AskOne(&survey.Input{Message: "Field name:"}, &field.Name, survey.WithValidator(slugValidator)); err != nil {
		return field, false, err
	}
	if err := survey.AskOne(&survey.Select{
		Message: "Field type:",
		Options: types,
		Default: "string",
	}, &field.Type); err != nil {
		return field, false, err
	}
	if err := survey.AskOne(&survey.Confirm{Message: "Required?"}, &field.Required); err != nil {
		return field, false, err
	}

	more := false
	if err := survey.AskOne(&survey.Confirm{Message: "Add another field?", Default: true}, &more); err != nil {
		return field, false, err
	}
	return field, more, nil
}
