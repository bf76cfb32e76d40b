package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// User is an account as returned by GET /profile.
type User struct {
	UserID         string            `json:"userid"`
	Username       string            `json:"username"`
	Email          string            `json:"email"`
	Role           string            `json:"role,omitempty"`
	Name           string            `json:"name,omitempty"`
	Bio            string            `json:"bio,omitempty"`
	PhoneNumber    string            `json:"phone_number,omitempty"`
	ProfilePicture string            `json:"profile_picture,omitempty"`
	ProfileViews   int               `json:"profile_views,omitempty"`
	Address        string            `json:"address,omitempty"`
	DateOfBirth    string            `json:"date_of_birth,omitempty"`
	LastLogin      string            `json:"last_login,omitempty"`
	IsActive       bool              `json:"is_active"`
	IsVerified     bool              `json:"is_verified"`
	Follows        []string          `json:"follows,omitempty"`
	Followers      []string          `json:"followers,omitempty"`
	SocialLinks    map[string]string `json:"social_links,omitempty"`
}

// Profile is the signed-in user's cached profile.
type Profile = User

// UserProfile is the public view of another user returned by GET /user/:username.
//
// IsFollowing is a pointer because its presence is what marks a valid payload.
type UserProfile struct {
	UserID         string            `json:"userid"`
	Username       string            `json:"username"`
	Email          string            `json:"email"`
	Bio            string            `json:"bio,omitempty"`
	PhoneNumber    string            `json:"phone_number,omitempty"`
	ProfilePicture string            `json:"profile_picture,omitempty"`
	IsFollowing    *bool             `json:"is_following"`
	SocialLinks    map[string]string `json:"social_links,omitempty"`
}

// Following reports the follow state, false when absent.
func (u UserProfile) Following() bool {
	return u.IsFollowing != nil && *u.IsFollowing
}

// Event is a scheduled happening with nested tickets, merch and media.
type Event struct {
	EventID          string   `json:"eventid"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Place            string   `json:"place"`
	Date             string   `json:"date"`
	Location         string   `json:"location"`
	CreatorID        string   `json:"creatorid"`
	OrganizerName    string   `json:"organizer_name,omitempty"`
	OrganizerContact string   `json:"organizer_contact,omitempty"`
	Tickets          []Ticket `json:"tickets"`
	Media            []Media  `json:"media"`
	Merch            []Merch  `json:"merch"`
	Category         string   `json:"category,omitempty"`
	BannerImage      string   `json:"banner_image,omitempty"`
	WebsiteURL       string   `json:"website_url,omitempty"`
	Status           string   `json:"status,omitempty"`
	Tags             []string `json:"tags,omitempty"`
	CreatedAt        string   `json:"created_at,omitempty"`
}

// When parses Date, which the API stores as "2006-01-02T15:04" or RFC 3339.
func (e Event) When() (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, e.Date); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DisplayDate formats Date for humans, falling back to the raw value.
func (e Event) DisplayDate() string {
	if t, ok := e.When(); ok {
		return t.Format("Mon, 02 Jan 2006 15:04")
	}
	return e.Date
}

// DateParts splits Date into the "date" and "time" form fields.
func (e Event) DateParts() (string, string) {
	if t, ok := e.When(); ok {
		return t.Format("2006-01-02"), t.Format("15:04")
	}
	d, tm, _ := strings.Cut(e.Date, "T")
	return d, tm
}

// CreatedBy reports whether userID owns the event.
func (e Event) CreatedBy(userID string) bool {
	return userID != "" && e.CreatorID == userID
}

// Ticket is a purchasable admission tier of an event.
type Ticket struct {
	TicketID string  `json:"ticketid"`
	EventID  string  `json:"eventid"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Merch is a purchasable item sold at an event.
type Merch struct {
	MerchID    string  `json:"merchid"`
	EventID    string  `json:"eventid"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Stock      int     `json:"stock"`
	MerchPhoto string  `json:"merch_pic,omitempty"`
}

// Media is an uploaded asset attached to an event.
type Media struct {
	ID          string `json:"id"`
	EventID     string `json:"eventid"`
	Type        string `json:"type"`
	URL         string `json:"url"`
	Caption     string `json:"caption"`
	Description string `json:"description,omitempty"`
}

// Category groups a place by main and sub categories.
type Category struct {
	MainCategory  string   `json:"mainCategory,omitempty"`
	SubCategories []string `json:"subCategories,omitempty"`
}

// Place is a venue.
type Place struct {
	PlaceID     string   `json:"placeid"`
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Banner      string   `json:"banner,omitempty"`
	Address     string   `json:"address,omitempty"`
	City        string   `json:"city,omitempty"`
	Country     string   `json:"country,omitempty"`
	ZipCode     string   `json:"zipCode,omitempty"`
	Capacity    int      `json:"capacity"`
	Phone       string   `json:"phone,omitempty"`
	Website     string   `json:"website,omitempty"`
	Category    Category `json:"category,omitempty"`
	Status      string   `json:"status,omitempty"`
	CreatedBy   string   `json:"createdBy,omitempty"`
}

// Activity is one entry of the activity feed.
type Activity struct {
	Username    string    `json:"username"`
	PlaceID     string    `json:"placeId,omitempty"`
	Action      string    `json:"action,omitempty"`
	PerformedBy string    `json:"performedBy,omitempty"`
	Timestamp   time.Time `json:"timestamp,omitempty"`
	Details     string    `json:"details,omitempty"`
}

// Credentials is the login and register request body.
type Credentials struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

// LoginResponse is the envelope returned by POST /login.
type LoginResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Token  string `json:"token"`
		UserID string `json:"userid"`
	} `json:"data"`
}

// FollowResponse is returned by POST /follows/:id.
type FollowResponse struct {
	IsFollowing *bool `json:"isFollowing"`
}

// SuccessResponse is returned by purchase and ticket delete endpoints.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// FormatPrice renders a price stored in minor units.
func FormatPrice(minor float64) string {
	return fmt.Sprintf("%.2f", minor/100)
}

// ParseSocialLinks turns "name=url, url2" input into the API's map form.
// Entries without a name are keyed link1, link2, ...
func ParseSocialLinks(s string) map[string]string {
	links := map[string]string{}
	n := 0
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n++
		if name, url, ok := strings.Cut(part, "="); ok && strings.TrimSpace(name) != "" {
			links[strings.TrimSpace(name)] = strings.TrimSpace(url)
			continue
		}
		links[fmt.Sprintf("link%d", n)] = part
	}
	return links
}

// SocialLinksJSON encodes links for the multipart social_links field.
func SocialLinksJSON(links map[string]string) string {
	b, _ := json.Marshal(links)
	return string(b)
}
