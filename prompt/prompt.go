// Package prompt obtains the two input files and the year, from presets or
// interactively, re-asking until every answer validates.
package prompt

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/AlecAivazis/survey/v2"

	"macro-averages/utils"
)

var yearRegexp = regexp.MustCompile(`^\d{4}$`)

// Inputs are the values a run needs.
type Inputs struct {
	WeightFile string
	MacrosFile string
	Year       string
}

// Asker asks one question until validate accepts the answer.
type Asker interface {
	Ask(message string, validate func(string) error) (string, error)
}

// SurveyAsker asks on the terminal.
type SurveyAsker struct{}

func (SurveyAsker) Ask(message string, validate func(string) error) (string, error) {
	var answer string
	err := survey.AskOne(&survey.Input{Message: message}, &answer,
		survey.WithValidator(func(ans interface{}) error {
			s, _ := ans.(string)
			return validate(s)
		}))
	return answer, err
}

// ValidateCSVPath accepts an existing, readable file with a .csv extension.
func ValidateCSVPath(path string) error {
	if filepath.Ext(path) != ".csv" {
		return fmt.Errorf("%s is not a CSV", path)
	}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s does not exist", path)
	}
	if err != nil {
		return fmt.Errorf("%s cannot be opened: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("%s cannot be opened: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is not a file", path)
	}
	return nil
}

// ValidateYear accepts exactly four ASCII digits.
func ValidateYear(year string) error {
	if !yearRegexp.MatchString(year) {
		return errors.New("please provide a year in YYYY format")
	}
	return nil
}

// Resolve fills every empty or invalid value of preset by asking.
func Resolve(preset Inputs, asker Asker, logger *utils.Logger) (Inputs, error) {
	questions := []struct {
		message  string
		value    *string
		validate func(string) error
	}{
		{"Weight file:", &preset.WeightFile, ValidateCSVPath},
		{"Macros file:", &preset.MacrosFile, ValidateCSVPath},
		{"Year:", &preset.Year, ValidateYear},
	}

	for _, q := range questions {
		if *q.value != "" {
			err := q.validate(*q.value)
			if err == nil {
				continue
			}
			logger.Warn("[prompt] %v", err)
		}
		answer, err := asker.Ask(q.message, q.validate)
		if err != nil {
			return Inputs{}, fmt.Errorf("prompt: %s %w", q.message, err)
		}
		*q.value = answer
	}
	return preset, nil
}
