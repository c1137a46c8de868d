package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/venus-data/internal/domain"
	"github.com/couchcryptid/venus-data/internal/validate"
)

func newValidateCmd(a *app) *cobra.Command {
	var typ string
	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a generated CSV file against the dataset invariants",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.validate(args[0], typ)
		},
	}
	cmd.Flags().StringVarP(&typ, "type", "t", "", "data type (default: inferred from the file name)")
	return cmd
}

func (a *app) validate(path, typ string) error {
	if typ == "" {
		typ = typeFromFileName(path)
	}
	t, err := domain.ParseDataType(typ)
	if err != nil {
		return fmt.Errorf("data type for %s: %w", path, err)
	}
	prof, err := a.catalog.Profile(t)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	rep, err := validate.CSV(f, prof)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	a.printer.Info(fmt.Sprintf("%s (%s, %d rows)", path, t, rep.Rows))
	for _, p := range rep.Phases {
		if p.Passed() {
			a.printer.Success(p.Name)
			continue
		}
		a.printer.Error(fmt.Sprintf("%s (%d errors)", p.Name, len(p.Errors)))
		for _, e := range p.Errors {
			a.printer.Info("    " + e)
		}
	}
	if !rep.Passed() {
		return errors.New("validation failed")
	}
	return nil
}

// typeFromFileName extracts the type from "venus_<type>_data_<start>_<end>.csv".
func typeFromFileName(path string) string {
	name := strings.TrimPrefix(filepath.Base(path), "venus_")
	typ, _, ok := strings.Cut(name, "_data_")
	if !ok {
		return ""
	}
	return typ
}
