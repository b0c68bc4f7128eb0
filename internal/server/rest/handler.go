package rest

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/anagrafe/internal/client/dialect"
	"github.com/dmitrijs2005/anagrafe/internal/client/models"
	"github.com/dmitrijs2005/anagrafe/internal/client/taxcode"
	"github.com/dmitrijs2005/anagrafe/internal/logging"
	"github.com/dmitrijs2005/anagrafe/internal/server/persons"
	"github.com/gofiber/fiber/v2"
)

const (
	msgNotFound      = "Persona non trovata"
	msgAlreadyExists = "Codice fiscale già presente"
	msgInvalidBody   = "Payload non valido"
	msgInvalidID     = "Codice fiscale non valido"
)

type handler struct {
	repo          persons.Repository
	dialect       dialect.Dialect
	paged         bool
	ignoreFilters bool
	logger        logging.Logger
}

func (h *handler) get(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	p, err := h.repo.Get(c.UserContext(), id)
	if err != nil {
		return mapRepoError(err)
	}
	return c.JSON(dialect.FromCanonical(p, h.dialect))
}

func (h *handler) list(c *fiber.Ctx) error {
	f := h.filter(c)

	found, err := h.repo.List(c.UserContext(), f)
	if err != nil {
		return mapRepoError(err)
	}

	rows := make([]map[string]any, 0, len(found))
	for _, p := range found {
		rows = append(rows, dialect.FromCanonical(p, h.dialect))
	}

	if !h.paged {
		return c.JSON(rows)
	}
	return c.JSON(fiber.Map{
		"content":       rows,
		"totalElements": len(rows),
		"size":          f.Limit,
		"number":        0,
	})
}

func (h *handler) create(c *fiber.Ctx) error {
	p, err := decodePerson(c.Body())
	if err != nil {
		return err
	}
	p.TaxCode = taxcode.Canonicalize(p.TaxCode)
	if res := taxcode.Validate(p.TaxCode); !res.Valid {
		return fiber.NewError(fiber.StatusBadRequest, msgInvalidID)
	}

	if err := h.repo.Create(c.UserContext(), p); err != nil {
		return mapRepoError(err)
	}
	h.logger.Info(c.UserContext(), "person created", "tax_code", p.TaxCode)
	return c.Status(fiber.StatusCreated).JSON(dialect.FromCanonical(p, h.dialect))
}

func (h *handler) update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	p, err := decodePerson(c.Body())
	if err != nil {
		return err
	}
	p.TaxCode = id

	if err := h.repo.Update(c.UserContext(), p); err != nil {
		return mapRepoError(err)
	}
	h.logger.Info(c.UserContext(), "person updated", "tax_code", id)
	return c.JSON(dialect.FromCanonical(p, h.dialect))
}

func (h *handler) remove(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.repo.Delete(c.UserContext(), id); err != nil {
		return mapRepoError(err)
	}
	h.logger.Info(c.UserContext(), "person deleted", "tax_code", id)
	return c.SendStatus(fiber.StatusNoContent)
}

// filter reads the first non-empty value among every accepted alias.
func (h *handler) filter(c *fiber.Ctx) persons.Filter {
	if h.ignoreFilters {
		return persons.Filter{}
	}
	f := persons.Filter{
		Surname:  firstQuery(c, dialect.SurnameParams()),
		Province: firstQuery(c, dialect.ProvinceParams()),
	}
	if n, err := strconv.Atoi(c.Query(dialect.SizeParam())); err == nil && n > 0 {
		f.Limit = n
	}
	return f
}

func firstQuery(c *fiber.Ctx, names []string) string {
	for _, name := range names {
		if v := strings.TrimSpace(c.Query(name)); v != "" {
			return v
		}
	}
	return ""
}

func pathID(c *fiber.Ctx) (string, error) {
	raw, err := url.PathUnescape(c.Params("id"))
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, msgInvalidID)
	}
	return taxcode.Canonicalize(raw), nil
}

// decodePerson accepts a payload in any known dialect.
func decodePerson(body []byte) (models.Person, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return models.Person{}, fiber.NewError(fiber.StatusBadRequest, msgInvalidBody)
	}
	return dialect.ToCanonical(raw), nil
}

func mapRepoError(err error) error {
	switch {
	case errors.Is(err, persons.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, msgNotFound)
	case errors.Is(err, persons.ErrAlreadyExists):
		return fiber.NewError(fiber.StatusConflict, msgAlreadyExists)
	default:
		return err
	}
}
