package pagedown

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/pagedown/model"
)

// fakeSource feeds synthetic pages into the pipeline.
type fakeSource struct {
	name  string
	pages []model.PageInput
}

func (s *fakeSource) Name() string    { return s.name }
func (s *fakeSource) PageCount() int  { return len(s.pages) }
func (s *fakeSource) Page(n int) (model.PageInput, error) {
	return s.pages[n], nil
}

func textFrag(text string, x, y float64, size float64) model.Fragment {
	return model.Fragment{
		Text:     text,
		FontSize: size,
		FontName: "Helvetica",
		BBox:     model.NewBBox(x, y, x+float64(len(text))*size/2, y+size),
	}
}

func TestConvertBulletScenario(t *testing.T) {
	src := &fakeSource{
		name: "doc",
		pages: []model.PageInput{{
			Fragments: []model.Fragment{
				{Text: "•", FontSize: 12, BBox: model.NewBBox(72, 100, 80, 112)},
				{Text: "Item one", FontSize: 12, BBox: model.NewBBox(85, 100, 200, 112)},
			},
		}},
	}

	md, err := FromSource(src).Convert()
	if err != nil {
		t.Fatal(err)
	}
	if md != "- Item one" {
		t.Errorf("Convert = %q, want %q", md, "- Item one")
	}
}

func TestConvertHeadingAndBody(t *testing.T) {
	src := &fakeSource{
		name: "doc",
		pages: []model.PageInput{{
			Fragments: []model.Fragment{
				textFrag("Title", 72, 50, 24),
				textFrag("Body text paragraph one.", 72, 100, 12),
				textFrag("Body text paragraph two.", 72, 140, 12),
			},
		}},
	}

	md, err := FromSource(src).Convert()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(md, "# Title") {
		t.Errorf("expected H1 title, got:\n%s", md)
	}
	if !strings.Contains(md, "Body text paragraph one.") {
		t.Errorf("body missing:\n%s", md)
	}
}

func TestConvertHeadingsDisabled(t *testing.T) {
	src := &fakeSource{
		name: "doc",
		pages: []model.PageInput{{
			Fragments: []model.Fragment{
				textFrag("Title", 72, 50, 24),
				textFrag("Body text below the title.", 72, 100, 12),
			},
		}},
	}

	md, err := FromSource(src).DetectHeadings(false).Convert()
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(md, "#") {
		t.Errorf("headings disabled but output has markers:\n%s", md)
	}
}

func TestConvertPageSeparator(t *testing.T) {
	page := func(text string) model.PageInput {
		return model.PageInput{
			Fragments: []model.Fragment{textFrag(text, 72, 100, 12)},
		}
	}
	src := &fakeSource{name: "doc", pages: []model.PageInput{page("page one"), page("page two")}}
	// Page indices must match the fragments' pages.
	src.pages[0].Page = 0
	src.pages[1].Page = 1
	src.pages[1].Fragments[0].Page = 1

	md, err := FromSource(src).Convert()
	if err != nil {
		t.Fatal(err)
	}
	want := "page one\n\n---\n\npage two"
	if md != want {
		t.Errorf("Convert = %q, want %q", md, want)
	}

	md, err = FromSource(src).PageSeparator("\n\n").Convert()
	if err != nil {
		t.Fatal(err)
	}
	if md != "page one\n\npage two" {
		t.Errorf("custom separator: Convert = %q", md)
	}
}

func TestConvertEmptyPagesSkipped(t *testing.T) {
	src := &fakeSource{
		name: "doc",
		pages: []model.PageInput{
			{Fragments: []model.Fragment{textFrag("content", 72, 100, 12)}},
			{}, // nothing on this page
		},
	}

	md, err := FromSource(src).Convert()
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(md, "---") {
		t.Errorf("empty page should not force a separator:\n%s", md)
	}
}

func TestConvertTableExcludesInteriorText(t *testing.T) {
	tableBox := model.NewBBox(50, 50, 400, 150)
	src := &fakeSource{
		name: "doc",
		pages: []model.PageInput{{
			Fragments: []model.Fragment{
				// Center inside the table region.
				textFrag("cell fragment", 60, 90, 12),
				textFrag("after the table", 60, 300, 12),
			},
			Tables: []model.Table{
				{Rows: [][]string{{"H1", "H2"}, {"a", "b"}}, BBox: tableBox},
			},
		}},
	}

	md, err := FromSource(src).Convert()
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(md, "cell fragment") {
		t.Errorf("table-interior text leaked:\n%s", md)
	}
	if !strings.Contains(md, "| H1 | H2 |") {
		t.Errorf("table grid missing:\n%s", md)
	}
	if !strings.Contains(md, "after the table") {
		t.Errorf("post-table paragraph missing:\n%s", md)
	}
}

func TestConvertTablesDisabled(t *testing.T) {
	src := &fakeSource{
		name: "doc",
		pages: []model.PageInput{{
			Fragments: []model.Fragment{textFrag("plain text", 72, 300, 12)},
			Tables: []model.Table{
				{Rows: [][]string{{"H"}}, BBox: model.NewBBox(50, 50, 400, 150)},
			},
		}},
	}

	md, err := FromSource(src).DetectTables(false).Convert()
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(md, "|") {
		t.Errorf("tables disabled but grid rendered:\n%s", md)
	}
}

func TestConvertLinks(t *testing.T) {
	bbox := model.NewBBox(72, 100, 200, 112)
	src := &fakeSource{
		name: "doc",
		pages: []model.PageInput{{
			Fragments: []model.Fragment{
				{Text: "Project homepage", FontSize: 12, BBox: bbox},
			},
			Links: []model.Link{
				{Text: "Project homepage", URL: "https://example.com", BBox: bbox},
			},
		}},
	}

	md, err := FromSource(src).Convert()
	if err != nil {
		t.Fatal(err)
	}
	want := "[Project homepage](https://example.com)"
	if md != want {
		t.Errorf("Convert = %q, want %q", md, want)
	}

	md, err = FromSource(src).PreserveHyperlinks(false).Convert()
	if err != nil {
		t.Fatal(err)
	}
	if md != "Project homepage" {
		t.Errorf("links disabled: Convert = %q", md)
	}
}

func TestConvertImagesPlaceholderAndSequence(t *testing.T) {
	src := &fakeSource{
		name: "doc",
		pages: []model.PageInput{{
			Images: []model.EmbeddedImage{
				{ID: 7, Data: []byte("img-a"), Format: "png", BBox: model.NewBBox(72, 100, 300, 200)},
				{ID: 9, Data: []byte("img-b"), Format: "png", BBox: model.NewBBox(72, 300, 300, 400)},
			},
		}},
	}

	md, err := FromSource(src).Convert()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(md, "doc_p1_img1_") || !strings.Contains(md, "doc_p1_img2_") {
		t.Errorf("image sequence wrong:\n%s", md)
	}

	// A fresh Convert restarts the sequence: same names again.
	again, err := FromSource(src).Convert()
	if err != nil {
		t.Fatal(err)
	}
	if again != md {
		t.Errorf("conversion is not deterministic:\n%s\nvs\n%s", md, again)
	}
}

func TestConvertOrphanNumberRepairAcrossPages(t *testing.T) {
	bold := func(text string, y float64, page int) model.Fragment {
		f := textFrag(text, 72, y, 12)
		f.Bold = true
		f.Page = page
		return f
	}
	src := &fakeSource{
		name: "doc",
		pages: []model.PageInput{
			{Page: 0, Fragments: []model.Fragment{
				{Text: "1.", FontSize: 12, BBox: model.NewBBox(72, 100, 84, 112)},
				bold("First item", 100, 0),
			}},
			{Page: 1, Fragments: []model.Fragment{
				// The marker for item 2 was lost at the page break.
				bold("Second item", 100, 1),
				{Text: "3.", FontSize: 12, Page: 1, BBox: model.NewBBox(72, 200, 84, 212)},
				bold("Third item", 200, 1),
			}},
		},
	}
	// Put item content next to its marker.
	src.pages[0].Fragments[1].BBox = model.NewBBox(90, 100, 200, 112)
	src.pages[1].Fragments[2].BBox = model.NewBBox(90, 200, 200, 212)

	md, err := FromSource(src).PageSeparator("\n\n").Convert()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(md, "2. **Second item**") {
		t.Errorf("orphaned number not repaired:\n%s", md)
	}
}

func TestConvertMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.pdf")).Convert()
	if err == nil {
		t.Fatal("expected error for missing input")
	}
}

func TestConvertTo(t *testing.T) {
	src := &fakeSource{
		name: "doc",
		pages: []model.PageInput{{
			Fragments: []model.Fragment{textFrag("hello", 72, 100, 12)},
		}},
	}

	out := filepath.Join(t.TempDir(), "nested", "out.md")
	md, err := FromSource(src).ConvertTo(out)
	if err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output file missing: %v", err)
	}
	if string(data) != md {
		t.Errorf("file contents differ from returned markdown")
	}
}
