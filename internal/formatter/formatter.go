// package formatter renders events, places, profiles and activity as CSV, Markdown, plain text and YAML.
//
// Every interpolated value passes through an escaper for its target format; Markdown output is
// safe to hand to a renderer and CSV output is quoted by encoding/csv.
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/evloca/internal/models"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`,
	"[", `\[`, "]", `\]`, "(", `\(`, ")", `\)`,
	"#", `\#`, "|", `\|`, "<", `\<`, ">", `\>`, "!", `\!`, "~", `\~`,
)

// EscapeMarkdown makes s inert inside Markdown inline text. Newlines collapse to spaces.
func EscapeMarkdown(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return markdownEscaper.Replace(s)
}

// escapeBlock escapes a multi-line value, keeping paragraph breaks.
func escapeBlock(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	for i, l := range lines {
		lines[i] = markdownEscaper.Replace(strings.TrimSpace(l))
	}
	return strings.Join(lines, "\n")
}

// EventsToCSV writes one row per event with columns: ID, Title, Date, Location, Place, Creator, Tickets, Merch, Media
func EventsToCSV(events []models.Event) ([]byte, error) {
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, []string{
			e.EventID,
			e.Title,
			e.Date,
			e.Location,
			e.Place,
			e.CreatorID,
			strconv.Itoa(len(e.Tickets)),
			strconv.Itoa(len(e.Merch)),
			strconv.Itoa(len(e.Media)),
		})
	}
	return writeCSV([]string{"ID", "Title", "Date", "Location", "Place", "Creator", "Tickets", "Merch", "Media"}, rows)
}

// PlacesToCSV writes one row per place with columns: ID, Name, Address, City, Country, Capacity, Category
func PlacesToCSV(places []models.Place) ([]byte, error) {
	rows := make([][]string, 0, len(places))
	for _, p := range places {
		rows = append(rows, []string{
			p.PlaceID,
			p.Name,
			p.Address,
			p.City,
			p.Country,
			strconv.Itoa(p.Capacity),
			p.Category.MainCategory,
		})
	}
	return writeCSV([]string{"ID", "Name", "Address", "City", "Country", "Capacity", "Category"}, rows)
}

// TicketsToCSV writes the ticket tiers of an event.
func TicketsToCSV(tickets []models.Ticket) ([]byte, error) {
	rows := make([][]string, 0, len(tickets))
	for _, t := range tickets {
		rows = append(rows, []string{t.TicketID, t.Name, models.FormatPrice(t.Price), strconv.Itoa(t.Quantity)})
	}
	return writeCSV([]string{"ID", "Name", "Price", "Quantity"}, rows)
}

func writeCSV(headers []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}
	for _, r := range rows {
		if err := writer.Write(r); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buf.Bytes(), nil
}

// EventToMarkdown renders an event with its tickets, merch and media. bannerFilename is optional.
func EventToMarkdown(e *models.Event, bannerFilename string) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", EscapeMarkdown(e.Title))
	if bannerFilename != "" {
		fmt.Fprintf(&buf, "![Banner](%s)\n\n", bannerFilename)
	}

	fmt.Fprintf(&buf, "**Date**: %s\n\n", EscapeMarkdown(e.DisplayDate()))
	fmt.Fprintf(&buf, "**Location**: %s\n\n", EscapeMarkdown(e.Location))
	if e.Place != "" {
		fmt.Fprintf(&buf, "**Place**: %s\n\n", EscapeMarkdown(e.Place))
	}
	if e.OrganizerName != "" {
		fmt.Fprintf(&buf, "**Organizer**: %s\n\n", EscapeMarkdown(e.OrganizerName))
	}
	if e.Description != "" {
		fmt.Fprintf(&buf, "%s\n\n", escapeBlock(e.Description))
	}

	buf.WriteString("## Tickets\n\n")
	if len(e.Tickets) == 0 {
		buf.WriteString("No tickets available.\n\n")
	}
	for i, t := range e.Tickets {
		fmt.Fprintf(&buf, "%d. %s: %s (%d left)\n", i+1, EscapeMarkdown(t.Name), models.FormatPrice(t.Price), t.Quantity)
	}
	if len(e.Tickets) > 0 {
		buf.WriteString("\n")
	}

	if len(e.Merch) > 0 {
		buf.WriteString("## Merchandise\n\n")
		for i, m := range e.Merch {
			fmt.Fprintf(&buf, "%d. %s: %s (%d in stock)\n", i+1, EscapeMarkdown(m.Name), models.FormatPrice(m.Price), m.Stock)
		}
		buf.WriteString("\n")
	}

	if len(e.Media) > 0 {
		fmt.Fprintf(&buf, "## Media\n\n%s attached.\n", pluralize(len(e.Media), "item"))
	}

	return buf.Bytes(), nil
}

// PlaceToMarkdown renders a place. bannerFilename is optional.
func PlaceToMarkdown(p *models.Place, bannerFilename string) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", EscapeMarkdown(p.Name))
	if bannerFilename != "" {
		fmt.Fprintf(&buf, "![Banner](%s)\n\n", bannerFilename)
	}

	fmt.Fprintf(&buf, "**Address**: %s\n\n", EscapeMarkdown(joinNonEmpty(", ", p.Address, p.City, p.ZipCode, p.Country)))
	if p.Capacity > 0 {
		fmt.Fprintf(&buf, "**Capacity**: %s\n\n", humanize.Comma(int64(p.Capacity)))
	}
	if p.Category.MainCategory != "" {
		fmt.Fprintf(&buf, "**Category**: %s\n\n", EscapeMarkdown(p.Category.MainCategory))
	}
	if p.Phone != "" {
		fmt.Fprintf(&buf, "**Phone**: %s\n\n", EscapeMarkdown(p.Phone))
	}
	if p.Website != "" {
		fmt.Fprintf(&buf, "**Website**: %s\n\n", EscapeMarkdown(p.Website))
	}
	if p.Description != "" {
		fmt.Fprintf(&buf, "%s\n", escapeBlock(p.Description))
	}

	return buf.Bytes(), nil
}

// EventToText renders an event as plain text.
func EventToText(e *models.Event) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Event: %s\n", e.Title)
	fmt.Fprintf(&buf, "Date: %s\n", e.DisplayDate())
	fmt.Fprintf(&buf, "Location: %s\n", e.Location)
	if e.Place != "" {
		fmt.Fprintf(&buf, "Place: %s\n", e.Place)
	}
	if e.Description != "" {
		fmt.Fprintf(&buf, "Description: %s\n", e.Description)
	}

	fmt.Fprintf(&buf, "\nTickets: %d\n", len(e.Tickets))
	for i, t := range e.Tickets {
		fmt.Fprintf(&buf, "%d. [%s] %s - %s (%d left)\n", i+1, t.TicketID, t.Name, models.FormatPrice(t.Price), t.Quantity)
	}
	if len(e.Merch) > 0 {
		fmt.Fprintf(&buf, "\nMerch: %d\n", len(e.Merch))
		for i, m := range e.Merch {
			fmt.Fprintf(&buf, "%d. [%s] %s - %s (%d in stock)\n", i+1, m.MerchID, m.Name, models.FormatPrice(m.Price), m.Stock)
		}
	}
	if len(e.Media) > 0 {
		fmt.Fprintf(&buf, "\nMedia: %d\n", len(e.Media))
		for i, m := range e.Media {
			fmt.Fprintf(&buf, "%d. [%s] %s %s\n", i+1, m.ID, m.Type, m.URL)
		}
	}
	return buf.Bytes()
}

// EventLine is the one-line list form of an event.
func EventLine(e models.Event) string {
	return fmt.Sprintf("%s  %s  %s @ %s", e.EventID, e.DisplayDate(), e.Title, e.Location)
}

// PlaceToText renders a place as plain text.
func PlaceToText(p *models.Place) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Place: %s\n", p.Name)
	fmt.Fprintf(&buf, "Address: %s\n", joinNonEmpty(", ", p.Address, p.City, p.ZipCode, p.Country))
	if p.Capacity > 0 {
		fmt.Fprintf(&buf, "Capacity: %s\n", humanize.Comma(int64(p.Capacity)))
	}
	if p.Category.MainCategory != "" {
		fmt.Fprintf(&buf, "Category: %s\n", p.Category.MainCategory)
	}
	if p.Description != "" {
		fmt.Fprintf(&buf, "Description: %s\n", p.Description)
	}
	return buf.Bytes()
}

// PlaceLine is the one-line list form of a place.
func PlaceLine(p models.Place) string {
	return fmt.Sprintf("%s  %s  %s", p.PlaceID, p.Name, joinNonEmpty(", ", p.Address, p.City))
}

// ProfileToText renders the signed-in user's profile.
func ProfileToText(p *models.Profile) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Username: %s\n", p.Username)
	fmt.Fprintf(&buf, "Email: %s\n", p.Email)
	if p.Bio != "" {
		fmt.Fprintf(&buf, "Bio: %s\n", p.Bio)
	}
	if p.PhoneNumber != "" {
		fmt.Fprintf(&buf, "Phone: %s\n", p.PhoneNumber)
	}
	fmt.Fprintf(&buf, "Followers: %d  Following: %d\n", len(p.Followers), len(p.Follows))
	writeLinks(&buf, p.SocialLinks)
	return buf.Bytes()
}

// UserToText renders a public profile.
func UserToText(u *models.UserProfile) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Username: %s\n", u.Username)
	if u.Bio != "" {
		fmt.Fprintf(&buf, "Bio: %s\n", u.Bio)
	}
	status := "not following"
	if u.Following() {
		status = "following"
	}
	fmt.Fprintf(&buf, "Status: %s\n", status)
	writeLinks(&buf, u.SocialLinks)
	return buf.Bytes()
}

func writeLinks(buf *bytes.Buffer, links map[string]string) {
	if len(links) == 0 {
		return
	}
	buf.WriteString("Links:\n")
	for _, name := range slices.Sorted(maps.Keys(links)) {
		fmt.Fprintf(buf, "  %s: %s\n", name, links[name])
	}
}

// ActivitiesToText renders the activity feed with times relative to now.
func ActivitiesToText(activities []models.Activity, now time.Time) []byte {
	var buf bytes.Buffer
	if len(activities) == 0 {
		buf.WriteString("No activity yet.\n")
		return buf.Bytes()
	}
	for _, a := range activities {
		when := "unknown time"
		if !a.Timestamp.IsZero() {
			when = humanize.RelTime(a.Timestamp, now, "ago", "from now")
		}
		fmt.Fprintf(&buf, "%s  %s  %s\n", when, a.Username, a.Action)
	}
	return buf.Bytes()
}

// ToYAML encodes v as YAML using its JSON field names.
func ToYAML(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode value: %w", err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to convert to YAML: %w", err)
	}
	blockStyle(&node)

	out, err := yaml.Marshal(&node)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return out, nil
}

// blockStyle drops the flow style that JSON input leaves on every node.
func blockStyle(n *yaml.Node) {
	if n.Kind == yaml.MappingNode || n.Kind == yaml.SequenceNode {
		n.Style = 0
	}
	if n.Kind == yaml.ScalarNode && n.Style == yaml.DoubleQuotedStyle {
		n.Style = 0
	}
	for _, c := range n.Content {
		blockStyle(c)
	}
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}

	client := &http.Client{Timeout: 30 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	return data, nil
}

// WriteMarkdownExport writes {dir}/README.md and, when bannerURL downloads, {dir}/banner{ext}.
// A failed banner download is reported through warn and does not fail the export.
func WriteMarkdownExport(dir, bannerURL string, render func(banner string) ([]byte, error), warn func(error)) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	var files []string
	var banner string
	if bannerURL != "" {
		if data, err := DownloadImage(bannerURL); err != nil {
			if warn != nil {
				warn(err)
			}
		} else {
			ext := filepath.Ext(bannerURL)
			if ext == "" || len(ext) > 5 {
				ext = ".jpg"
			}
			banner = "banner" + ext
			path := filepath.Join(dir, banner)
			if err := os.WriteFile(path, data, 0644); err != nil {
				if warn != nil {
					warn(err)
				}
				banner = ""
			} else {
				files = append(files, path)
			}
		}
	}

	md, err := render(banner)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	readme := filepath.Join(dir, "README.md")
	if err := os.WriteFile(readme, md, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}
	return append(files, readme), nil
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
