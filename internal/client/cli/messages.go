package cli

import (
	"errors"

	"github.com/dmitrijs2005/anagrafe/internal/client/client"
	"github.com/dmitrijs2005/anagrafe/internal/client/services"
	"github.com/dmitrijs2005/anagrafe/internal/client/taxcode"
)

// User-facing texts.
const (
	msgWelcome        = "Anagrafica Persona (digita 'help' per i comandi)"
	msgHelp           = "Comandi: find <CF>, search [cognome] [provincia], new, edit [CF], delete [CF], show, exit"
	msgBye            = "Arrivederci!"
	msgUnknownCommand = "Comando sconosciuto:"

	msgPersonFound   = "Persona trovata."
	msgPersonCreated = "Persona creata."
	msgPersonUpdated = "Persona aggiornata."
	msgPersonDeleted = "Persona cancellata."
	msgNotFound      = "Nessuna persona trovata."
	msgSelectFirst   = "Seleziona prima una persona valida."
	msgSearching     = "Ricerca…"
	msgAborted       = "Operazione annullata."

	msgErrSearch = "Errore durante la ricerca."
	msgErrLoad   = "Impossibile caricare i dettagli della persona selezionata."
	msgErrCreate = "Errore durante la creazione."
	msgErrUpdate = "Errore durante l'aggiornamento."
	msgErrDelete = "Errore durante la cancellazione."

	hintSurname  = "Cognome (anche parziale, minimo 2 caratteri)"
	hintProvince = "Provincia (2 lettere, es. MI)"
)

var validationTexts = map[string]string{
	services.FieldFirstName:   "Inserisci il Nome.",
	services.FieldLastName:    "Inserisci il Cognome.",
	services.FieldStreet:      "Inserisci la Via.",
	services.FieldHouseNumber: "Numero Civico non valido.",
	services.FieldCity:        "Inserisci la Città.",
	services.FieldProvince:    "Inserisci la Provincia.",
	services.FieldCountry:     "Inserisci la Nazione.",
}

var taxCodeTexts = map[string]string{
	string(taxcode.ReasonRequired): "Inserisci il CF.",
	string(taxcode.ReasonLength):   "Il Codice Fiscale deve essere di 16 caratteri.",
	string(taxcode.ReasonFormat):   "Il Codice Fiscale non è valido.",
}

// describe turns err into the text shown to the user. Cancellation yields ""
// (nothing to show). Transport failures use the backend message or a short
// status text; raw error strings are never returned.
func describe(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, client.ErrCancelled) {
		return ""
	}

	var ve *client.ValidationError
	if errors.As(err, &ve) {
		if ve.Field == services.FieldTaxCode {
			if s, ok := taxCodeTexts[ve.Reason]; ok {
				return s
			}
		}
		if s, ok := validationTexts[ve.Field]; ok {
			return s
		}
		return fallback
	}

	if errors.Is(err, client.ErrNotFound) {
		return msgNotFound
	}

	var te *client.TransportError
	if errors.As(err, &te) {
		return te.FriendlyMessage()
	}
	return fallback
}
