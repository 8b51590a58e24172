// Package snake holds the promptui flows behind the CLI's --interactive flags.
package snake

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"tableflip.dev/contcal/pkg/grid"
	"tableflip.dev/contcal/pkg/people"
)

// IO is the terminal the prompts run against.
type IO struct {
	In  io.Reader
	Out io.Writer
}

func (t IO) stdin() io.ReadCloser {
	if t.In == nil {
		return nil
	}
	return io.NopCloser(t.In)
}

func (t IO) stdout() io.WriteCloser {
	if t.Out == nil {
		return nil
	}
	return nopWriteCloser{t.Out}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

var answerTemplates = &promptui.PromptTemplates{
	Prompt:  "{{ . }} : ",
	Valid:   "{{ . | green }} : ",
	Invalid: "{{ . | red }} : ",
	Success: "{{ . | bold }} : ",
}

// PickMonth asks for a month, starting the cursor on current (0-11).
func PickMonth(t IO, current int) (int, error) {
	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ . | bold }}",
		Inactive: "   {{ . }}",
		Selected: "{{ . | bold }}",
	}

	prompt := promptui.Select{
		HideHelp:  true,
		Label:     "Month",
		Items:     grid.MonthNames[:],
		Templates: templates,
		Size:      12,
		CursorPos: current,
		Searcher:  monthSearcher,
		Stdin:     t.stdin(),
		Stdout:    t.stdout(),
	}

	i, _, err := prompt.Run()
	if err != nil {
		return current, fmt.Errorf("month prompt: %w", err)
	}
	return i, nil
}

func monthSearcher(input string, index int) bool {
	name := strings.ToLower(grid.MonthNames[index])
	input = strings.Replace(strings.ToLower(input), " ", "", -1)
	return strings.Contains(name, input)
}

// AskYear asks for a year, defaulting to current.
func AskYear(t IO, current int) (int, error) {
	prompt := promptui.Prompt{
		Label:     "Year",
		Default:   strconv.Itoa(current),
		Templates: answerTemplates,
		Validate:  validateYear,
		Stdin:     t.stdin(),
		Stdout:    t.stdout(),
	}

	result, err := prompt.Run()
	if err != nil {
		return current, fmt.Errorf("year prompt: %w", err)
	}
	if result == "" {
		return current, nil
	}
	return strconv.Atoi(strings.TrimSpace(result))
}

func validateYear(input string) error {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	y, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return errors.New("not a number")
	}
	if y < 1 || y > 9999 {
		return errors.New("year out of range")
	}
	return nil
}

// AskPerson prompts for each detail field; only the name is required.
func AskPerson(t IO) (people.Person, error) {
	var p people.Person
	fields := []struct {
		label    string
		into     *string
		required bool
	}{
		{"Name", &p.Name, true},
		{"Role", &p.Role, false},
		{"Task", &p.Task, false},
		{"Email", &p.Email, false},
		{"Phone", &p.Phone, false},
		{"Notes", &p.Notes, false},
	}

	for _, f := range fields {
		validate := func(string) error { return nil }
		if f.required {
			validate = required
		}
		prompt := promptui.Prompt{
			Label:     f.label,
			Templates: answerTemplates,
			Validate:  validate,
			Stdin:     t.stdin(),
			Stdout:    t.stdout(),
		}
		result, err := prompt.Run()
		if err != nil {
			return people.Person{}, fmt.Errorf("%s prompt: %w", strings.ToLower(f.label), err)
		}
		*f.into = strings.TrimSpace(result)
	}
	return p, nil
}

func required(input string) error {
	if strings.TrimSpace(input) == "" {
		return errors.New("empty")
	}
	return nil
}

// Confirm asks a yes/no question; an empty answer means no.
func Confirm(t IO, label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label + " [y/N]",
		Templates: answerTemplates,
		Validate: func(input string) error {
			if input == "" {
				return nil
			}
			_, err := ParseBool(input)
			return err
		},
		Stdin:  t.stdin(),
		Stdout: t.stdout(),
	}
	result, err := prompt.Run()
	if err != nil {
		return false, fmt.Errorf("confirm prompt: %w", err)
	}
	if result == "" {
		return false, nil
	}
	return ParseBool(result)
}

// ParseBool is strconv.ParseBool with the addition of Yes/No parsing.
func ParseBool(str string) (bool, error) {
	switch str {
	case "1", "t", "T", "true", "TRUE", "True", "y", "Y", "yes", "YES", "Yes":
		return true, nil
	case "0", "f", "F", "false", "FALSE", "False", "n", "N", "no", "NO", "No":
		return false, nil
	}
	return false, &strconv.NumError{Func: "ParseBool", Num: str, Err: strconv.ErrSyntax}
}
