// Package jsonld renders a magazine and its blocks as a Schema.org graph.
// Generation is pure and the encoded output is byte-stable because every node
// is a map, which encoding/json emits with sorted keys.
package jsonld

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"magazine_cms/internal/domain/models"
)

const schemaContext = "https://schema.org"

// Node is one entry of the @graph.
type Node map[string]any

// Site carries the publisher data shared by every magazine.
type Site struct {
	BaseURL          string
	OrganizationName string
	OrganizationLogo string
}

type blockMapper func(ctx mapContext, b models.Block) Node

type mapContext struct {
	site     Site
	magazine models.Magazine
	pageURL  string
	issueID  string
}

var mappers = map[string]blockMapper{
	"cover":    coverNode,
	"hero":     heroNode,
	"article":  articleNode,
	"text":     textNode,
	"gallery":  galleryNode,
	"quote":    quoteNode,
	"video":    videoNode,
	"carousel": carouselNode,
	"cards":    cardsNode,
}

// Supports reports whether blocks of the given type produce a node.
func Supports(blockType string) bool {
	_, ok := mappers[blockType]
	return ok
}

// Generate builds the graph document for m. Blocks are taken from blocks when
// non-nil, otherwise from m.Blocks. Hidden blocks and block types without a
// mapping are skipped.
func Generate(site Site, m models.Magazine, blocks []models.Block) map[string]any {
	if blocks == nil {
		blocks = m.Blocks
	}

	base := strings.TrimRight(site.BaseURL, "/")
	site.BaseURL = base

	ctx := mapContext{
		site:     site,
		magazine: m,
		pageURL:  base + "/" + m.Slug,
	}
	ctx.issueID = ctx.pageURL + "#issue"

	ordered := make([]models.Block, len(blocks))
	copy(ordered, blocks)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Position < ordered[j].Position
	})

	parts := make([]Node, 0, len(ordered))
	for _, b := range ordered {
		if !b.Visible {
			continue
		}
		mapper, ok := mappers[b.Type]
		if !ok {
			continue
		}

		n := mapper(ctx, b)
		n["@id"] = blockID(ctx, b)
		parts = append(parts, n)
	}

	graph := make([]Node, 0, len(parts)+2)
	graph = append(graph, organizationNode(site), issueNode(ctx, parts))
	graph = append(graph, parts...)

	return map[string]any{
		"@context": schemaContext,
		"@graph":   graph,
	}
}

// Marshal encodes the graph for m.
func Marshal(site Site, m models.Magazine, blocks []models.Block) ([]byte, error) {
	return json.Marshal(Generate(site, m, blocks))
}

func organizationID(site Site) string {
	return site.BaseURL + "/#organization"
}

func blockID(ctx mapContext, b models.Block) string {
	return ctx.pageURL + "#" + b.Type + "-" + b.ID.String()
}

func organizationNode(site Site) Node {
	n := Node{
		"@type": "Organization",
		"@id":   organizationID(site),
	}
	set(n, "name", site.OrganizationName)
	set(n, "url", site.BaseURL)
	if site.OrganizationLogo != "" {
		n["logo"] = Node{
			"@type": "ImageObject",
			"url":   absURL(site.BaseURL, site.OrganizationLogo),
		}
	}
	return n
}

func issueNode(ctx mapContext, parts []Node) Node {
	m := ctx.magazine

	n := Node{
		"@type":     "PublicationIssue",
		"@id":       ctx.issueID,
		"url":       ctx.pageURL,
		"publisher": Node{"@id": organizationID(ctx.site)},
	}
	set(n, "name", firstNonEmpty(m.SEO.MetaTitle, m.Name))
	set(n, "description", firstNonEmpty(m.SEO.MetaDescription, StripHTML(m.Description)))
	set(n, "image", absURL(ctx.site.BaseURL, firstNonEmpty(m.SEO.OGImage, m.CoverImage)))
	set(n, "keywords", m.SEO.MetaKeywords)
	set(n, "alternativeHeadline", m.Edition)

	if m.EditionNumber > 0 {
		n["issueNumber"] = m.EditionNumber
	}
	if m.PublishDate != nil {
		n["datePublished"] = m.PublishDate.UTC().Format(time.DateOnly)
	}

	if len(parts) > 0 {
		refs := make([]Node, 0, len(parts))
		for _, p := range parts {
			refs = append(refs, Node{"@id": p["@id"]})
		}
		n["hasPart"] = refs
	}

	return n
}

func coverNode(ctx mapContext, b models.Block) Node {
	n := Node{"@type": "ImageObject"}

	images := stringList(b.Data["images"])
	if len(images) > 0 {
		n["contentUrl"] = absURL(ctx.site.BaseURL, images[0])
	}
	set(n, "name", firstNonEmpty(text(b.Data, "title"), ctx.magazine.Name))
	set(n, "caption", text(b.Data, "subtitle"))
	return n
}

func heroNode(ctx mapContext, b models.Block) Node {
	n := Node{"@type": "WPHeader"}
	set(n, "name", text(b.Data, "title"))
	set(n, "description", text(b.Data, "subtitle"))
	set(n, "image", absURL(ctx.site.BaseURL, text(b.Data, "image")))
	return n
}

func articleNode(ctx mapContext, b models.Block) Node {
	n := Node{
		"@type":    "Article",
		"isPartOf": Node{"@id": ctx.issueID},
	}
	set(n, "headline", text(b.Data, "title"))
	set(n, "articleBody", text(b.Data, "content"))
	set(n, "image", absURL(ctx.site.BaseURL, text(b.Data, "image")))
	if author := text(b.Data, "author"); author != "" {
		n["author"] = Node{"@type": "Person", "name": author}
	}
	if ctx.magazine.PublishDate != nil {
		n["datePublished"] = ctx.magazine.PublishDate.UTC().Format(time.DateOnly)
	}
	return n
}

func textNode(_ mapContext, b models.Block) Node {
	n := Node{"@type": "CreativeWork"}
	set(n, "text", text(b.Data, "content"))
	return n
}

func galleryNode(ctx mapContext, b models.Block) Node {
	n := Node{"@type": "ImageGallery"}
	set(n, "name", text(b.Data, "title"))

	items := list(b.Data["images"])
	images := make([]Node, 0, len(items))
	for _, item := range items {
		img := imageObject(ctx.site.BaseURL, item)
		if img != nil {
			images = append(images, img)
		}
	}
	if len(images) > 0 {
		n["image"] = images
	}
	return n
}

func quoteNode(_ mapContext, b models.Block) Node {
	n := Node{"@type": "Quotation"}
	set(n, "text", text(b.Data, "quote"))

	if author := text(b.Data, "author"); author != "" {
		creator := Node{"@type": "Person", "name": author}
		set(creator, "jobTitle", text(b.Data, "role"))
		n["creator"] = creator
	}
	return n
}

func videoNode(ctx mapContext, b models.Block) Node {
	n := Node{"@type": "VideoObject"}
	set(n, "name", text(b.Data, "title"))
	set(n, "description", text(b.Data, "description"))
	set(n, "thumbnailUrl", absURL(ctx.site.BaseURL, text(b.Data, "poster")))

	if u := text(b.Data, "videoUrl"); u != "" {
		if isEmbed(u) {
			n["embedUrl"] = u
		} else {
			n["contentUrl"] = absURL(ctx.site.BaseURL, u)
		}
	}
	if ctx.magazine.PublishDate != nil {
		n["uploadDate"] = ctx.magazine.PublishDate.UTC().Format(time.DateOnly)
	}
	return n
}

func carouselNode(ctx mapContext, b models.Block) Node {
	n := Node{"@type": "ItemList"}
	set(n, "name", text(b.Data, "title"))

	slides := list(b.Data["slides"])
	elements := make([]Node, 0, len(slides))
	for i, s := range slides {
		slide, ok := s.(map[string]any)
		if !ok {
			continue
		}

		li := Node{"@type": "ListItem", "position": i + 1}
		img := Node{"@type": "ImageObject"}
		set(img, "contentUrl", absURL(ctx.site.BaseURL, text(slide, "image")))
		set(img, "caption", text(slide, "caption"))
		li["item"] = img
		set(li, "url", text(slide, "link"))

		elements = append(elements, li)
	}
	n["numberOfItems"] = len(elements)
	n["itemListElement"] = elements
	return n
}

func cardsNode(ctx mapContext, b models.Block) Node {
	n := Node{"@type": "ItemList"}
	set(n, "name", text(b.Data, "title"))

	cards := list(b.Data["cards"])
	elements := make([]Node, 0, len(cards))
	for i, c := range cards {
		card, ok := c.(map[string]any)
		if !ok {
			continue
		}

		li := Node{"@type": "ListItem", "position": i + 1}
		set(li, "name", text(card, "title"))
		set(li, "description", text(card, "content"))
		set(li, "image", absURL(ctx.site.BaseURL, text(card, "image")))
		set(li, "url", text(card, "link"))

		elements = append(elements, li)
	}
	n["numberOfItems"] = len(elements)
	n["itemListElement"] = elements
	return n
}

func imageObject(base string, item any) Node {
	switch v := item.(type) {
	case string:
		if v == "" {
			return nil
		}
		return Node{"@type": "ImageObject", "contentUrl": absURL(base, v)}
	case map[string]any:
		src := firstNonEmpty(text(v, "src"), text(v, "url"))
		if src == "" {
			return nil
		}
		n := Node{"@type": "ImageObject", "contentUrl": absURL(base, src)}
		set(n, "caption", firstNonEmpty(text(v, "caption"), text(v, "alt")))
		return n
	}
	return nil
}

// text reads a string property and strips any markup from it.
func text(data map[string]any, key string) string {
	s, _ := data[key].(string)
	return StripHTML(s)
}

func list(v any) []any {
	switch items := v.(type) {
	case []any:
		return items
	case []string:
		out := make([]any, len(items))
		for i := range items {
			out[i] = items[i]
		}
		return out
	case []map[string]any:
		out := make([]any, len(items))
		for i := range items {
			out[i] = items[i]
		}
		return out
	}
	return nil
}

func stringList(v any) []string {
	out := make([]string, 0)
	for _, item := range list(v) {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

func set(n Node, key, value string) {
	if value != "" {
		n[key] = value
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func absURL(base, ref string) string {
	if ref == "" || strings.Contains(ref, "://") || base == "" {
		return ref
	}
	if strings.HasPrefix(ref, "/") {
		return base + ref
	}
	return base + "/" + ref
}

func isEmbed(u string) bool {
	for _, host := range []string{"youtube.com", "youtu.be", "vimeo.com"} {
		if strings.Contains(u, host) {
			return true
		}
	}
	return false
}
