package formatter

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/evloca/internal/models"
	tu "github.com/desertthunder/evloca/internal/testing"
)

func sampleEvent() *models.Event {
	return &models.Event{
		EventID:     "e1",
		Title:       "Launch *Party*",
		Date:        "2026-05-01T20:00",
		Location:    "Main Hall",
		Place:       "p1",
		CreatorID:   "u1",
		Description: "Bring friends.\nDoors at 7.",
		Tickets: []models.Ticket{
			{TicketID: "t1", Name: "General", Price: 1500, Quantity: 100},
			{TicketID: "t2", Name: "VIP", Price: 5000, Quantity: 10},
		},
		Merch: []models.Merch{{MerchID: "m1", Name: "Shirt", Price: 2000, Stock: 25}},
		Media: []models.Media{{ID: "md1", Type: "image", URL: "a.jpg"}},
	}
}

func samplePlace() *models.Place {
	return &models.Place{
		PlaceID:     "p1",
		Name:        "Main Hall",
		Address:     "1 High St",
		City:        "Oslo",
		Country:     "Norway",
		Capacity:    1200,
		Category:    models.Category{MainCategory: "Venue"},
		Description: "Big room",
	}
}

func TestExporters(t *testing.T) {
	t.Run("EventsToCSV", func(t *testing.T) {
		data, err := EventsToCSV([]models.Event{*sampleEvent(), {EventID: "e2", Title: "Quiet, please"}})
		if err != nil {
			t.Fatalf("EventsToCSV failed: %v", err)
		}

		output := string(data)
		if !strings.HasPrefix(output, "ID,Title,Date,Location,Place,Creator,Tickets,Merch,Media\n") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "e1,Launch *Party*,2026-05-01T20:00,Main Hall,p1,u1,2,1,1") {
			t.Errorf("CSV missing e1 row, got: %s", output)
		}
		if !strings.Contains(output, `"Quiet, please"`) {
			t.Errorf("CSV did not quote a comma, got: %s", output)
		}
	})

	t.Run("PlacesToCSV", func(t *testing.T) {
		data, err := PlacesToCSV([]models.Place{*samplePlace()})
		if err != nil {
			t.Fatalf("PlacesToCSV failed: %v", err)
		}
		if !strings.Contains(string(data), "p1,Main Hall,1 High St,Oslo,Norway,1200,Venue") {
			t.Errorf("unexpected CSV: %s", data)
		}
	})

	t.Run("TicketsToCSV", func(t *testing.T) {
		data, err := TicketsToCSV(sampleEvent().Tickets)
		if err != nil {
			t.Fatalf("TicketsToCSV failed: %v", err)
		}
		if !strings.Contains(string(data), "t1,General,15.00,100") {
			t.Errorf("unexpected CSV: %s", data)
		}
	})

	t.Run("EventToMarkdown", func(t *testing.T) {
		data, err := EventToMarkdown(sampleEvent(), "banner.jpg")
		if err != nil {
			t.Fatalf("EventToMarkdown failed: %v", err)
		}

		output := string(data)
		for _, want := range []string{
			`# Launch \*Party\*`,
			"![Banner](banner.jpg)",
			"**Location**: Main Hall",
			"## Tickets",
			"1. General: 15.00 (100 left)",
			"## Merchandise",
			"1 item attached.",
			"Bring friends.\nDoors at 7.",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("markdown missing %q, got:\n%s", want, output)
			}
		}
	})

	t.Run("EventToMarkdown Without Tickets", func(t *testing.T) {
		data, _ := EventToMarkdown(&models.Event{Title: "Empty", Tickets: []models.Ticket{}}, "")
		if !strings.Contains(string(data), "No tickets available.") {
			t.Errorf("expected empty tickets message, got %s", data)
		}
		if strings.Contains(string(data), "![Banner]") {
			t.Error("expected no banner")
		}
	})

	t.Run("PlaceToMarkdown", func(t *testing.T) {
		data, err := PlaceToMarkdown(samplePlace(), "")
		if err != nil {
			t.Fatalf("PlaceToMarkdown failed: %v", err)
		}
		output := string(data)
		if !strings.Contains(output, "**Address**: 1 High St, Oslo, Norway") {
			t.Errorf("unexpected address line in:\n%s", output)
		}
		if !strings.Contains(output, "**Capacity**: 1,200") {
			t.Errorf("expected humanized capacity in:\n%s", output)
		}
	})

	t.Run("EventToText", func(t *testing.T) {
		output := string(EventToText(sampleEvent()))
		for _, want := range []string{"Event: Launch *Party*", "Tickets: 2", "1. [t1] General - 15.00 (100 left)", "Merch: 1", "Media: 1"} {
			if !strings.Contains(output, want) {
				t.Errorf("text missing %q, got:\n%s", want, output)
			}
		}
	})

	t.Run("Lines", func(t *testing.T) {
		if got := EventLine(*sampleEvent()); !strings.HasPrefix(got, "e1  Fri, 01 May 2026 20:00  Launch") {
			t.Errorf("unexpected event line %q", got)
		}
		if got := PlaceLine(*samplePlace()); got != "p1  Main Hall  1 High St, Oslo" {
			t.Errorf("unexpected place line %q", got)
		}
	})

	t.Run("ProfileToText", func(t *testing.T) {
		p := &models.Profile{Username: "alice", Email: "a@b.co", Followers: []string{"u2"}, SocialLinks: map[string]string{"site": "https://a.b", "git": "https://g.h"}}
		output := string(ProfileToText(p))
		if !strings.Contains(output, "Followers: 1  Following: 0") {
			t.Errorf("unexpected counts in:\n%s", output)
		}
		if strings.Index(output, "git:") > strings.Index(output, "site:") {
			t.Errorf("expected links sorted, got:\n%s", output)
		}
	})

	t.Run("UserToText", func(t *testing.T) {
		following := true
		output := string(UserToText(&models.UserProfile{Username: "bob", IsFollowing: &following}))
		if !strings.Contains(output, "Status: following") {
			t.Errorf("unexpected status in:\n%s", output)
		}
	})

	t.Run("ActivitiesToText", func(t *testing.T) {
		now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
		output := string(ActivitiesToText([]models.Activity{
			{Username: "alice", Action: "checked in", Timestamp: now.Add(-2 * time.Hour)},
			{Username: "bob", Action: "left"},
		}, now))
		if !strings.Contains(output, "2 hours ago  alice  checked in") {
			t.Errorf("unexpected activity text:\n%s", output)
		}
		if !strings.Contains(output, "unknown time  bob  left") {
			t.Errorf("expected unknown time for missing timestamp:\n%s", output)
		}
		if got := string(ActivitiesToText(nil, now)); got != "No activity yet.\n" {
			t.Errorf("unexpected empty output %q", got)
		}
	})
}

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"<script>", `\<script\>`},
		{"[link](http://x)", `\[link\]\(http://x\)`},
		{"multi\nline   text", "multi line text"},
		{`back\slash`, `back\\slash`},
	}
	for _, tt := range tests {
		if got := EscapeMarkdown(tt.in); got != tt.want {
			t.Errorf("EscapeMarkdown(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestToYAML(t *testing.T) {
	data, err := ToYAML(samplePlace())
	if err != nil {
		t.Fatalf("ToYAML failed: %v", err)
	}
	output := string(data)
	for _, want := range []string{"placeid: p1", "name: Main Hall", "capacity: 1200", "mainCategory: Venue"} {
		if !strings.Contains(output, want) {
			t.Errorf("YAML missing %q, got:\n%s", want, output)
		}
	}
	if strings.Contains(output, "zipCode") {
		t.Error("expected omitempty fields to be dropped")
	}
	if strings.Contains(output, "{") {
		t.Errorf("expected block style, got:\n%s", output)
	}

	t.Run("Keeps Ambiguous Strings Quoted", func(t *testing.T) {
		data, err := ToYAML(map[string]string{"flag": "true"})
		if err != nil {
			t.Fatalf("ToYAML failed: %v", err)
		}
		if strings.TrimSpace(string(data)) == "flag: true" {
			t.Errorf("expected string 'true' to stay quoted, got %s", data)
		}
	})
}

func TestMarkdownExport(t *testing.T) {
	t.Run("With Banner", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("PNGDATA"))
		}))
		defer srv.Close()

		dir := filepath.Join(t.TempDir(), "e1")
		files, err := WriteMarkdownExport(dir, srv.URL+"/eventpic/b.png", func(banner string) ([]byte, error) {
			return EventToMarkdown(sampleEvent(), banner)
		}, nil)
		if err != nil {
			t.Fatalf("WriteMarkdownExport failed: %v", err)
		}
		if len(files) != 2 {
			t.Fatalf("expected banner and README, got %v", files)
		}
		tu.AssertFileExists(t, filepath.Join(dir, "banner.png"))
		if !strings.Contains(tu.MustReadFile(t, filepath.Join(dir, "README.md")), "![Banner](banner.png)") {
			t.Error("expected README to reference the banner")
		}
	})

	t.Run("Failed Banner Download Warns", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		var warned error
		dir := t.TempDir()
		files, err := WriteMarkdownExport(dir, srv.URL+"/x.jpg", func(banner string) ([]byte, error) {
			return PlaceToMarkdown(samplePlace(), banner)
		}, func(err error) { warned = err })
		if err != nil {
			t.Fatalf("WriteMarkdownExport failed: %v", err)
		}
		if warned == nil {
			t.Error("expected a warning")
		}
		if len(files) != 1 {
			t.Errorf("expected README only, got %v", files)
		}
	})

	t.Run("DownloadImage Empty URL", func(t *testing.T) {
		if _, err := DownloadImage(""); err == nil {
			t.Error("expected error for empty URL")
		}
	})
}

func TestWriteManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export_manifest.json")
	m := Manifest{
		Kind: "events", Format: "csv", Total: 2, Succeeded: 1, Failed: 1,
		Entries: []ManifestEntry{
			{ID: "e1", Name: "Gig", Success: true, Files: []string{"e1.csv"}},
			{ID: "e2", Error: "boom"},
		},
	}
	if err := WriteManifest(m, path); err != nil {
		t.Fatalf("WriteManifest failed: %v", err)
	}

	var got Manifest
	if err := json.Unmarshal([]byte(tu.MustReadFile(t, path)), &got); err != nil {
		t.Fatalf("manifest is not JSON: %v", err)
	}
	if got.Failed != 1 || len(got.Entries) != 2 || got.Entries[1].Error != "boom" {
		t.Errorf("unexpected manifest: %+v", got)
	}

	if err := WriteManifest(m, filepath.Join(t.TempDir(), "missing", "m.json")); err == nil {
		t.Error("expected error writing into a missing directory")
	}
}

func TestRenderer(t *testing.T) {
	r, err := NewRenderer("notty", 40)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	out := r.Render([]byte("# Title\n\nSome body text."))
	if !strings.Contains(out, "Title") || !strings.Contains(out, "Some body text.") {
		t.Errorf("unexpected render output %q", out)
	}

	if err := r.Resize(80); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if r.Width() != 80 {
		t.Errorf("expected width 80, got %d", r.Width())
	}

	if _, err := NewRenderer("/no/such/style.json", 40); err == nil {
		t.Error("expected error for a missing style file")
	}
}
