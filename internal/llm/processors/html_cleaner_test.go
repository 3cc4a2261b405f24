package processors

import (
	"strings"
	"testing"
)

func TestLooksLikeHTML(t *testing.T) {
	if !LooksLikeHTML("<div>Senior Engineer</div>") {
		t.Fatal("expected markup to be detected")
	}
	if LooksLikeHTML("Senior Engineer <remote> a < b") {
		t.Fatal("expected plain text not to be detected as markup")
	}
}

func TestExtractTextDropsChromeAndKeepsLines(t *testing.T) {
	html := `<html><head><script>var x = 1;</script><style>p{}</style></head>
<body>
<nav>Home | Jobs</nav>
<main>
<h1>Backend Engineer</h1>
<p>Acme Corp is hiring a backend engineer to build distributed systems.</p>
<ul><li>Design APIs</li><li>Own on-call rotation</li></ul>
</main>
<footer>Copyright</footer>
</body></html>`

	text, err := NewHTMLCleaner().ExtractText(html)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, unwanted := range []string{"var x", "Home | Jobs", "Copyright"} {
		if strings.Contains(text, unwanted) {
			t.Fatalf("expected %q to be removed, got %q", unwanted, text)
		}
	}
	lines := strings.Split(text, "\n")
	found := 0
	for _, l := range lines {
		if l == "Design APIs" || l == "Own on-call rotation" {
			found++
		}
	}
	if found != 2 {
		t.Fatalf("expected list items on their own lines, got %q", text)
	}
}
