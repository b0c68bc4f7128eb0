package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/anagrafe/internal/client/client"
	"github.com/dmitrijs2005/anagrafe/internal/client/models"
	"github.com/dmitrijs2005/anagrafe/internal/client/services"
	"github.com/dmitrijs2005/anagrafe/internal/client/taxcode"
)

func (a *App) Find(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, "Codice Fiscale")
	if err != nil {
		return err
	}
	if res := taxcode.Validate(id); !res.Valid {
		err := &client.ValidationError{Field: services.FieldTaxCode, Reason: string(res.Reason)}
		a.report(err, msgErrLoad)
		return err
	}

	p, err := a.persons.Get(ctx, id)
	if err != nil {
		a.report(err, msgErrLoad)
		return err
	}
	a.setCurrent(p)
	a.println(msgPersonFound)
	a.printPerson(p)
	return nil
}

func (a *App) Search(ctx context.Context, args []string) error {
	var crit models.Criteria
	switch len(args) {
	case 0:
		surname, err := GetSimpleText(a.reader, hintSurname, a.out)
		if err != nil {
			return err
		}
		province, err := GetSimpleText(a.reader, hintProvince, a.out)
		if err != nil {
			return err
		}
		crit.SurnameFragment = surname
		crit.ProvinceCode = models.NormalizeProvinceInput(province)
	case 1:
		crit.SurnameFragment = args[0]
	default:
		crit.SurnameFragment = strings.Join(args[:len(args)-1], " ")
		crit.ProvinceCode = models.NormalizeProvinceInput(args[len(args)-1])
	}

	if a.interactive {
		a.println(msgSearching)
	}
	rows, err := a.persons.Search(ctx, crit)
	if err != nil {
		a.report(err, msgErrSearch)
		return err
	}
	if len(rows) == 0 {
		a.println(msgNotFound)
		return nil
	}
	a.printRows(rows)
	return nil
}

func (a *App) New(ctx context.Context) error {
	p, err := a.fillForm(models.Person{}, false)
	if err != nil {
		return err
	}

	created, err := a.persons.Create(ctx, p)
	if err != nil {
		a.report(err, msgErrCreate)
		return err
	}
	a.setCurrent(created)
	a.println(msgPersonCreated)
	a.printPerson(created)
	return nil
}

func (a *App) Edit(ctx context.Context, args []string) error {
	if len(args) > 0 {
		if err := a.Find(ctx, args[:1]); err != nil {
			return err
		}
	}
	if !a.loaded {
		a.println(msgSelectFirst)
		return errNothingSelected
	}

	id := a.current.TaxCode
	p, err := a.fillForm(a.current, true)
	if err != nil {
		return err
	}

	updated, err := a.persons.Update(ctx, id, p)
	if err != nil {
		a.report(err, msgErrUpdate)
		return err
	}
	if updated.TaxCode == "" {
		updated.TaxCode = id
	}
	a.setCurrent(updated)
	a.println(msgPersonUpdated)
	a.printPerson(updated)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	id := ""
	switch {
	case len(args) > 0:
		id = taxcode.Canonicalize(args[0])
	case a.loaded:
		id = a.current.TaxCode
	}
	if id == "" {
		a.println(msgSelectFirst)
		return errNothingSelected
	}

	ok, err := Confirm(a.reader, fmt.Sprintf("Cancellare %s?", id), a.out)
	if err != nil {
		return err
	}
	if !ok {
		a.println(msgAborted)
		return nil
	}

	if err := a.persons.Delete(ctx, id); err != nil {
		a.report(err, msgErrDelete)
		return err
	}
	if a.loaded && a.current.TaxCode == id {
		a.clearCurrent()
	}
	a.println(msgPersonDeleted)
	return nil
}

func (a *App) Show(ctx context.Context) error {
	if !a.loaded {
		a.println(msgSelectFirst)
		return errNothingSelected
	}
	a.printPerson(a.current)
	return nil
}

var errNothingSelected = errors.New("no person selected")

func (a *App) setCurrent(p models.Person) {
	a.current = p
	a.loaded = true
}

func (a *App) clearCurrent() {
	a.current = models.Person{}
	a.loaded = false
}

func (a *App) argOrPrompt(args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return GetSimpleText(a.reader, prompt, a.out)
}

// fillForm prompts for every field, offering the values of base as defaults.
// With lockTaxCode the identifier is shown but cannot be changed.
func (a *App) fillForm(base models.Person, lockTaxCode bool) (models.Person, error) {
	p := base
	fields := []struct {
		label string
		dst   *string
	}{
		{"Nome", &p.FirstName},
		{"Cognome", &p.LastName},
		{"Via", &p.Address.Street},
		{"Numero Civico", &p.Address.HouseNumber},
		{"Città", &p.Address.City},
		{"Provincia", &p.Address.Province},
		{"Nazione", &p.Address.Country},
	}

	if lockTaxCode {
		fmt.Fprintf(a.out, "Codice Fiscale: %s (non modificabile)\n", p.TaxCode)
	} else {
		v, err := GetWithDefault(a.reader, "Codice Fiscale", p.TaxCode, a.out)
		if err != nil {
			return models.Person{}, err
		}
		p.TaxCode = taxcode.Canonicalize(v)
	}

	for _, f := range fields {
		v, err := GetWithDefault(a.reader, f.label, *f.dst, a.out)
		if err != nil {
			return models.Person{}, err
		}
		*f.dst = v
	}
	p.Address.Province = models.NormalizeProvinceInput(p.Address.Province)
	return p, nil
}

func (a *App) printPerson(p models.Person) {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Codice Fiscale:\t%s\n", p.TaxCode)
	fmt.Fprintf(w, "Nome:\t%s\n", p.FirstName)
	fmt.Fprintf(w, "Cognome:\t%s\n", p.LastName)
	fmt.Fprintf(w, "Indirizzo:\t%s\n", models.RowAddress{Structured: true, Parts: p.Address}.Format())
	fmt.Fprintf(w, "Nazione:\t%s\n", p.Address.Country)
	_ = w.Flush()
}

func (a *App) printRows(rows []models.SearchRow) {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Codice Fiscale\tNome\tCognome\tIndirizzo\tProvincia")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.TaxCode, r.FirstName, r.LastName, r.Address.Format(), r.Province)
	}
	_ = w.Flush()
}
