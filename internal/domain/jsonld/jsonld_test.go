package jsonld

import (
	"encoding/json"
	"testing"
	"time"

	"magazine_cms/internal/domain/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSite = Site{
	BaseURL:          "https://mag.example.com/",
	OrganizationName: "Example Media",
	OrganizationLogo: "/logo.png",
}

func testMagazine() (models.Magazine, []models.Block) {
	published := time.Date(2025, 6, 21, 10, 0, 0, 0, time.UTC)
	m := models.Magazine{
		ID:            uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		Name:          "Estate 2025",
		Slug:          "estate-2025",
		EditionNumber: 7,
		CoverImage:    "/img/cover.jpg",
		PublishDate:   &published,
		SEO: models.SEOMeta{
			MetaDescription: "Scopri l'estate",
			MetaKeywords:    "estate, moda",
		},
	}

	blocks := []models.Block{
		{
			ID:       uuid.MustParse("00000000-0000-0000-0000-00000000000b"),
			Type:     "article",
			Position: 1,
			Visible:  true,
			Data: map[string]any{
				"title":   "Il <em>mare</em>",
				"author":  "Giulia",
				"content": "<p>Onde &amp; sole</p><p>Fine</p>",
			},
		},
		{
			ID:       uuid.MustParse("00000000-0000-0000-0000-00000000000a"),
			Type:     "cover",
			Position: 0,
			Visible:  true,
			Data:     map[string]any{"images": []any{"https://cdn.example.com/c.jpg"}},
		},
		{
			ID:       uuid.MustParse("00000000-0000-0000-0000-00000000000c"),
			Type:     "quote",
			Position: 2,
			Visible:  false,
			Data:     map[string]any{"quote": "hidden"},
		},
		{
			ID:       uuid.MustParse("00000000-0000-0000-0000-00000000000d"),
			Type:     "my-custom-type",
			Position: 3,
			Visible:  true,
			Data:     map[string]any{"anything": "x"},
		},
	}

	return m, blocks
}

func TestGenerate_Graph(t *testing.T) {
	m, blocks := testMagazine()

	doc := Generate(testSite, m, blocks)
	assert.Equal(t, "https://schema.org", doc["@context"])

	graph, ok := doc["@graph"].([]Node)
	require.True(t, ok)
	require.Len(t, graph, 4)

	assert.Equal(t, "Organization", graph[0]["@type"])
	assert.Equal(t, "https://mag.example.com/#organization", graph[0]["@id"])
	assert.Equal(t, "https://mag.example.com/logo.png", graph[0]["logo"].(Node)["url"])

	issue := graph[1]
	assert.Equal(t, "PublicationIssue", issue["@type"])
	assert.Equal(t, "https://mag.example.com/estate-2025#issue", issue["@id"])
	assert.Equal(t, 7, issue["issueNumber"])
	assert.Equal(t, "2025-06-21", issue["datePublished"])
	assert.Equal(t, "https://mag.example.com/img/cover.jpg", issue["image"])
	assert.Len(t, issue["hasPart"], 2)

	cover := graph[2]
	assert.Equal(t, "ImageObject", cover["@type"])
	assert.Equal(t, "https://mag.example.com/estate-2025#cover-00000000-0000-0000-0000-00000000000a", cover["@id"])
	assert.Equal(t, "Estate 2025", cover["name"])

	article := graph[3]
	assert.Equal(t, "Article", article["@type"])
	assert.Equal(t, "Il mare", article["headline"])
	assert.Equal(t, "Onde & sole Fine", article["articleBody"])
	assert.Equal(t, Node{"@type": "Person", "name": "Giulia"}, article["author"])
}

func TestGenerate_AllKinds(t *testing.T) {
	m, _ := testMagazine()

	kinds := map[string]string{
		"cover": "ImageObject", "hero": "WPHeader", "article": "Article",
		"text": "CreativeWork", "gallery": "ImageGallery", "quote": "Quotation",
		"video": "VideoObject", "carousel": "ItemList", "cards": "ItemList",
	}

	for blockType, want := range kinds {
		t.Run(blockType, func(t *testing.T) {
			b := models.Block{ID: uuid.New(), Type: blockType, Visible: true, Data: map[string]any{}}
			graph := Generate(testSite, m, []models.Block{b})["@graph"].([]Node)

			require.Len(t, graph, 3)
			assert.Equal(t, want, graph[2]["@type"])
			assert.True(t, Supports(blockType))
		})
	}

	assert.False(t, Supports("unknown"))
}

func TestGenerate_ListsAndMedia(t *testing.T) {
	m, _ := testMagazine()

	blocks := []models.Block{
		{ID: uuid.New(), Type: "gallery", Position: 0, Visible: true, Data: map[string]any{
			"images": []any{"a.jpg", map[string]any{"src": "https://x.test/b.jpg", "caption": "B"}, map[string]any{}},
		}},
		{ID: uuid.New(), Type: "cards", Position: 1, Visible: true, Data: map[string]any{
			"cards": []any{map[string]any{"title": "One", "link": "/one"}, map[string]any{"title": "Two"}},
		}},
		{ID: uuid.New(), Type: "video", Position: 2, Visible: true, Data: map[string]any{
			"title": "Clip", "videoUrl": "https://www.youtube.com/embed/x",
		}},
	}

	graph := Generate(testSite, m, blocks)["@graph"].([]Node)
	require.Len(t, graph, 5)

	gallery := graph[2]
	assert.Equal(t, []Node{
		{"@type": "ImageObject", "contentUrl": "https://mag.example.com/a.jpg"},
		{"@type": "ImageObject", "contentUrl": "https://x.test/b.jpg", "caption": "B"},
	}, gallery["image"])

	cards := graph[3]
	assert.Equal(t, 2, cards["numberOfItems"])
	items := cards["itemListElement"].([]Node)
	assert.Equal(t, 1, items[0]["position"])
	assert.Equal(t, "/one", items[0]["url"])
	assert.Equal(t, "Two", items[1]["name"])

	video := graph[4]
	assert.Equal(t, "https://www.youtube.com/embed/x", video["embedUrl"])
	assert.Equal(t, "2025-06-21", video["uploadDate"])
}

func TestMarshal_Stable(t *testing.T) {
	m, blocks := testMagazine()

	first, err := Marshal(testSite, m, blocks)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := Marshal(testSite, m, blocks)
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(first, &decoded))
	assert.Contains(t, string(first), `{"@context":"https://schema.org","@graph":[`)
}

func TestGenerate_UsesMagazineBlocksWhenNil(t *testing.T) {
	m, blocks := testMagazine()
	m.Blocks = blocks

	graph := Generate(testSite, m, nil)["@graph"].([]Node)
	assert.Len(t, graph, 4)
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"plain   text", "plain text"},
		{"<p>Hello</p><p>World</p>", "Hello World"},
		{"Caff&egrave; &amp; co", "Caffè & co"},
		{"<b>Hel</b>lo", "Hello"},
		{"a<script>alert(1)</script>b", "ab"},
		{"line<br/>break", "line break"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StripHTML(tt.in), tt.in)
	}
}
