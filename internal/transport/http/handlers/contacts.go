package http_handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phonebook-app/accounts-service/internal/application/contact"
	"github.com/phonebook-app/accounts-service/internal/domain"
	"github.com/phonebook-app/accounts-service/internal/transport/http/dto"
	"github.com/phonebook-app/accounts-service/internal/transport/http/response"
)

type ContactHandler struct {
	svc *contact.Service
}

func NewContactHandler(svc *contact.Service) *ContactHandler {
	return &ContactHandler{svc: svc}
}

func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.svc.List(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	out := make([]dto.ContactView, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, contactView(c))
	}
	response.OK(w, dto.ContactsData{Contacts: out})
}

func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Get(r.Context(), chi.URLParam(r, "contactId"))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.ContactData{Contact: contactView(c)})
}

func (h *ContactHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req dto.AddContactRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	c, err := h.svc.Add(r.Context(), req.Name, req.Email, req.Phone)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.Created(w, dto.ContactData{Contact: contactView(c)})
}

func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateContactRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	c, err := h.svc.Update(r.Context(), chi.URLParam(r, "contactId"), req.Name, req.Email, req.Phone)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.ContactData{Contact: contactView(c)})
}

func (h *ContactHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Remove(r.Context(), chi.URLParam(r, "contactId")); err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.NoContent(w)
}

func contactView(c domain.Contact) dto.ContactView {
	return dto.ContactView{
		ID:    c.ID,
		Name:  c.Name,
		Email: c.Email,
		Phone: c.Phone,
	}
}
