// Package prompt reads interactive input for the terminal client.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/atinyakov/AssetDesk/internal/forms"
	"github.com/atinyakov/AssetDesk/internal/models"
)

// ErrClosed is returned once the input is exhausted.
var ErrClosed = errors.New("input closed")

// Prompter asks questions on out and reads the answers line by line from in.
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// New returns a Prompter over in and out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{scanner: bufio.NewScanner(in), out: out}
}

// Line prints label and returns the trimmed answer.
func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", ErrClosed
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}

// Credentials asks for an email and password.
func (p *Prompter) Credentials() (models.Credentials, error) {
	v, err := p.values([]question{
		{"email", "Email: "},
		{"password", "Password: "},
	})
	if err != nil {
		return models.Credentials{}, err
	}
	creds, errs := forms.Credentials(v)
	if errs != nil {
		return creds, errs
	}
	return creds, nil
}

// AssetInput asks for the fields of a new asset and validates them.
func (p *Prompter) AssetInput() (models.AssetInput, error) {
	v, err := p.values([]question{
		{"name", "Asset name: "},
		{"category_id", "Category id: "},
		{"department_id", "Department id: "},
		{"date_purchased", "Date purchased (YYYY-MM-DD): "},
		{"cost", "Cost: "},
	})
	if err != nil {
		return models.AssetInput{}, err
	}
	in, errs := forms.Asset(v)
	if errs != nil {
		return in, errs
	}
	return in, nil
}

type question struct {
	key   string
	label string
}

func (p *Prompter) values(qs []question) (url.Values, error) {
	v := url.Values{}
	for _, q := range qs {
		answer, err := p.Line(q.label)
		if err != nil {
			return nil, err
		}
		v.Set(q.key, answer)
	}
	return v, nil
}
