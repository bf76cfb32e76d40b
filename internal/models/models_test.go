package models

import (
	"encoding/json"
	"testing"
)

func TestEvent(t *testing.T) {
	t.Run("Tickets Presence", func(t *testing.T) {
		tt := []struct {
			name    string
			payload string
			wantNil bool
		}{
			{"missing tickets", `{"eventid":"e1"}`, true},
			{"null tickets", `{"eventid":"e1","tickets":null}`, true},
			{"empty tickets", `{"eventid":"e1","tickets":[]}`, false},
			{"one ticket", `{"eventid":"e1","tickets":[{"ticketid":"t1"}]}`, false},
		}

		for _, tc := range tt {
			t.Run(tc.name, func(t *testing.T) {
				var e Event
				if err := json.Unmarshal([]byte(tc.payload), &e); err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if (e.Tickets == nil) != tc.wantNil {
					t.Errorf("expected nil=%v, got %#v", tc.wantNil, e.Tickets)
				}
			})
		}
	})

	t.Run("DateParts", func(t *testing.T) {
		e := Event{Date: "2025-06-01T19:30"}
		d, tm := e.DateParts()
		if d != "2025-06-01" || tm != "19:30" {
			t.Errorf("expected 2025-06-01 19:30, got %s %s", d, tm)
		}

		e = Event{Date: "2025-06-01T19:30:00Z"}
		if _, ok := e.When(); !ok {
			t.Error("expected RFC 3339 date to parse")
		}

		e = Event{Date: "soon"}
		if e.DisplayDate() != "soon" {
			t.Errorf("expected raw fallback, got %s", e.DisplayDate())
		}
	})

	t.Run("CreatedBy", func(t *testing.T) {
		e := Event{CreatorID: "u1"}
		if !e.CreatedBy("u1") {
			t.Error("expected owner match")
		}
		if e.CreatedBy("") || (Event{}).CreatedBy("") {
			t.Error("empty user must never own an event")
		}
	})
}

func TestUserProfileFollowing(t *testing.T) {
	var u UserProfile
	if err := json.Unmarshal([]byte(`{"userid":"u2","is_following":true}`), &u); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.IsFollowing == nil || !u.Following() {
		t.Error("expected following to be set")
	}

	var missing UserProfile
	_ = json.Unmarshal([]byte(`{"userid":"u2"}`), &missing)
	if missing.IsFollowing != nil {
		t.Error("expected nil when is_following absent")
	}
}

func TestFormatPrice(t *testing.T) {
	tc := map[float64]string{0: "0.00", 1999: "19.99", 500: "5.00", 5: "0.05"}
	for in, want := range tc {
		if got := FormatPrice(in); got != want {
			t.Errorf("FormatPrice(%v) = %s, want %s", in, got, want)
		}
	}
}

func TestParseSocialLinks(t *testing.T) {
	links := ParseSocialLinks("github=https://github.com/a, https://example.com , ,mastodon = https://m.social/@a")

	if links["github"] != "https://github.com/a" {
		t.Errorf("expected github link, got %v", links)
	}
	if links["link2"] != "https://example.com" {
		t.Errorf("expected positional key link2, got %v", links)
	}
	if links["mastodon"] != "https://m.social/@a" {
		t.Errorf("expected trimmed mastodon link, got %v", links)
	}
	if len(links) != 3 {
		t.Errorf("expected 3 links, got %d", len(links))
	}
	if SocialLinksJSON(map[string]string{"a": "b"}) != `{"a":"b"}` {
		t.Error("unexpected JSON encoding")
	}
}

func TestCachedResource(t *testing.T) {
	t.Run("Validate", func(t *testing.T) {
		c, err := NewCachedResource(KindEvent, "e1", "Launch", Event{EventID: "e1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := c.Validate(); err != nil {
			t.Errorf("expected valid resource, got %v", err)
		}

		var e Event
		if err := c.Decode(&e); err != nil || e.EventID != "e1" {
			t.Errorf("expected decoded event e1, got %v %v", e, err)
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		tt := []*CachedResource{
			{Kind: "song", ResourceID: "x", Payload: []byte(`{}`)},
			{Kind: KindPlace, Payload: []byte(`{}`)},
			{Kind: KindPlace, ResourceID: "p", Payload: []byte(`{`)},
		}
		for i, c := range tt {
			if err := c.Validate(); err == nil {
				t.Errorf("case %d: expected validation error", i)
			}
		}
	})
}
