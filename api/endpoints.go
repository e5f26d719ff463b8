package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"getpetback/models"
)

// Entity keys the API nests its payloads under, per endpoint.
const (
	entityOrders = "orders"
	entityPets   = "pets"
	entityPet    = "pet"
	entityUser   = "user"
)

// RecentPets lists the latest found-pet listings. GET /api/pets.
func (c *Client) RecentPets(ctx context.Context) ([]models.Listing, error) {
	return c.getListings(ctx, "/api/pets", nil, entityOrders)
}

// SliderPets lists the "reunited" success stories. GET /api/pets/slider.
func (c *Client) SliderPets(ctx context.Context) ([]models.Listing, error) {
	return c.getListings(ctx, "/api/pets/slider", nil, entityPets)
}

// Pet fetches one listing by id. GET /api/pets/{id}.
func (c *Client) Pet(ctx context.Context, id int64) (models.Listing, error) {
	body, err := c.do(ctx, "GET", fmt.Sprintf("/api/pets/%d", id), nil, nil, "")
	if err != nil {
		return models.Listing{}, err
	}
	raw, err := extractOne(body, entityPet)
	if err != nil {
		return models.Listing{}, err
	}
	var listing models.Listing
	if err := json.Unmarshal(raw, &listing); err != nil {
		return models.Listing{}, ErrNoPayload
	}
	return listing, nil
}

// QuickSearch returns live-search suggestions for a free-text query.
// GET /api/search. A 204 from the server simply yields no suggestions.
func (c *Client) QuickSearch(ctx context.Context, query string) ([]models.Listing, error) {
	q := url.Values{"query": {query}}
	return c.getListings(ctx, "/api/search", q, entityOrders)
}

// SearchOrders runs the full search with district/kind filters.
// GET /api/search/order.
func (c *Client) SearchOrders(ctx context.Context, district, kind string) ([]models.Listing, error) {
	q := url.Values{}
	if district != "" {
		q.Set("district", district)
	}
	if kind != "" {
		q.Set("kind", kind)
	}
	return c.getListings(ctx, "/api/search/order", q, entityOrders)
}

// CreateListing submits a new listing as multipart form data (photos
// are binary). Works anonymously; with Register set the server also
// creates an account. POST /api/pets.
func (c *Client) CreateListing(ctx context.Context, form models.ListingForm) error {
	body, contentType, err := encodeListingForm(form)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, "POST", "/api/pets", nil, body, contentType)
	return err
}

// UpdateListing performs the restricted owner edit: description, mark
// and photos only. POST /api/pets/{id}, multipart, authorized.
func (c *Client) UpdateListing(ctx context.Context, id int64, edit models.ListingEdit) error {
	body, contentType, err := encodeListingEdit(edit)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, "POST", fmt.Sprintf("/api/pets/%d", id), nil, body, contentType)
	return err
}

// DeleteListing removes one of the caller's own listings.
// DELETE /api/users/orders/{id}.
func (c *Client) DeleteListing(ctx context.Context, id int64) error {
	_, err := c.do(ctx, "DELETE", fmt.Sprintf("/api/users/orders/%d", id), nil, nil, "")
	return err
}

// SubscribeNewsletter signs an email up for the newsletter.
// POST /api/subscription.
func (c *Client) SubscribeNewsletter(ctx context.Context, email string) error {
	return c.postJSON(ctx, "/api/subscription", models.SubscriptionRequest{Email: email})
}

// Register creates an account. POST /api/register.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) error {
	return c.postJSON(ctx, "/api/register", req)
}

// Login exchanges credentials for a bearer token. POST /api/login.
// The token arrives either top-level or under data.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	payload, err := json.Marshal(models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return "", err
	}
	body, err := c.do(ctx, "POST", "/api/login", nil, bytes.NewReader(payload), "application/json")
	if err != nil {
		return "", err
	}
	return extractField(body, "token")
}

// Me fetches the caller's own profile. GET /api/users.
func (c *Client) Me(ctx context.Context) (models.Profile, error) {
	body, err := c.do(ctx, "GET", "/api/users", nil, nil, "")
	if err != nil {
		return models.Profile{}, err
	}
	raw, err := extractOne(body, entityUser)
	if err != nil {
		return models.Profile{}, err
	}
	var user struct {
		ID    int64  `json:"id"`
		Name  string `json:"name"`
		Phone string `json:"phone"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal(raw, &user); err != nil {
		return models.Profile{}, ErrNoPayload
	}
	profile := models.Profile{Name: user.Name, Phone: user.Phone, Email: user.Email}
	if user.ID != 0 {
		profile.ID = &user.ID
	}
	return profile, nil
}

// MyOrders lists the caller's own listings. GET /api/users/orders.
func (c *Client) MyOrders(ctx context.Context) ([]models.Listing, error) {
	return c.getListings(ctx, "/api/users/orders", nil, entityOrders)
}

// UpdatePhone changes the profile phone. PATCH /api/users/phone.
func (c *Client) UpdatePhone(ctx context.Context, phone string) error {
	return c.patchJSON(ctx, "/api/users/phone", map[string]string{"phone": phone})
}

// UpdateEmail changes the profile email. PATCH /api/users/email.
func (c *Client) UpdateEmail(ctx context.Context, email string) error {
	return c.patchJSON(ctx, "/api/users/email", map[string]string{"email": email})
}

func (c *Client) getListings(ctx context.Context, path string, query url.Values, entity string) ([]models.Listing, error) {
	body, err := c.do(ctx, "GET", path, query, nil, "")
	if err != nil {
		return nil, err
	}
	raw, err := extractMany(body, entity)
	if err != nil {
		// An empty or bodyless success means "no results", not failure.
		return nil, nil
	}
	var listings []models.Listing
	if err := json.Unmarshal(raw, &listings); err != nil {
		return nil, ErrNoPayload
	}
	return listings, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, "POST", path, nil, bytes.NewReader(data), "application/json")
	return err
}

func (c *Client) patchJSON(ctx context.Context, path string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, "PATCH", path, nil, bytes.NewReader(data), "application/json")
	return err
}
