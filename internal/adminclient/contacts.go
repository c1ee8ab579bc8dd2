// internal/adminclient/contacts.go
package adminclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dalemusser/estatehub/internal/domain/models"
)

// ContactFilter narrows ListContacts. Zero values mean no filter.
type ContactFilter struct {
	Status   string
	Priority string
	IsRead   *bool
	Search   string
	Page     int
	Limit    int
}

func (f ContactFilter) values() url.Values {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Priority != "" {
		q.Set("priority", f.Priority)
	}
	if f.IsRead != nil {
		q.Set("isRead", strconv.FormatBool(*f.IsRead))
	}
	if f.Search != "" {
		q.Set("q", f.Search)
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}

// ContactStats summarises the lead inbox.
type ContactStats struct {
	Total      int64            `json:"total"`
	Unread     int64            `json:"unread"`
	ByStatus   map[string]int64 `json:"byStatus"`
	ByPriority map[string]int64 `json:"byPriority"`
}

// ContactUpdate is a partial edit; nil fields are left alone.
type ContactUpdate struct {
	Status   *string `json:"status,omitempty"`
	Priority *string `json:"priority,omitempty"`
	IsRead   *bool   `json:"isRead,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

// ListContacts returns one page of leads, newest first.
func (c *Client) ListContacts(ctx context.Context, f ContactFilter) ([]models.Contact, *Page, error) {
	if err := c.requireToken(); err != nil {
		return nil, nil, err
	}
	var out []models.Contact
	page, err := c.do(ctx, http.MethodGet, "/contacts", f.values(), nil, &out)
	return out, page, err
}

// ContactStats fetches inbox counters.
func (c *Client) ContactStats(ctx context.Context) (ContactStats, error) {
	if err := c.requireToken(); err != nil {
		return ContactStats{}, err
	}
	var st ContactStats
	_, err := c.do(ctx, http.MethodGet, "/contacts/stats", nil, nil, &st)
	return st, err
}

// GetContact reads one lead without marking it read.
func (c *Client) GetContact(ctx context.Context, id string) (models.Contact, error) {
	if err := c.requireToken(); err != nil {
		return models.Contact{}, err
	}
	var out models.Contact
	_, err := c.do(ctx, http.MethodGet, "/contacts/"+url.PathEscape(id), nil, nil, &out)
	return out, err
}

// UpdateContact applies a partial edit and returns the stored lead.
func (c *Client) UpdateContact(ctx context.Context, id string, u ContactUpdate) (models.Contact, error) {
	if err := c.requireToken(); err != nil {
		return models.Contact{}, err
	}
	var out models.Contact
	_, err := c.do(ctx, http.MethodPut, "/contacts/"+url.PathEscape(id), nil, u, &out)
	return out, err
}

// MarkContactRead flags a lead read (or unread again).
func (c *Client) MarkContactRead(ctx context.Context, id string, read bool) (models.Contact, error) {
	if err := c.requireToken(); err != nil {
		return models.Contact{}, err
	}
	var out models.Contact
	_, err := c.do(ctx, http.MethodPut, "/contacts/"+url.PathEscape(id)+"/mark-read", nil, map[string]bool{"isRead": read}, &out)
	return out, err
}

// DeleteContact removes a lead.
func (c *Client) DeleteContact(ctx context.Context, id string) error {
	if err := c.requireToken(); err != nil {
		return err
	}
	_, err := c.do(ctx, http.MethodDelete, "/contacts/"+url.PathEscape(id), nil, nil, nil)
	return err
}
