package service

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"luxemarket/colors"
	"luxemarket/events"
	"luxemarket/models"
	"luxemarket/pricing"
	"luxemarket/repository"
	"luxemarket/utils"
)

//go:embed templates/catalog.html
var catalogTemplate string

var catalogTmpl = template.Must(template.New("catalog").Parse(catalogTemplate))

// catalogSwatchOptions sizes the swatches printed next to each product
var catalogSwatchOptions = colors.Options{Width: 18, Height: 18, BorderRadius: "50%", BorderWidth: 1, BorderColor: "#D1D5DB"}

type catalogSwatch struct {
	Name   string
	Class  string
	Style  template.CSS
	Markup template.HTML // Generated SVG, built only from canonical hex values
}

type catalogItem struct {
	Name      string
	Sizes     string
	Price     string
	DealPrice string
	Swatches  []catalogSwatch
}

type catalogSection struct {
	Category string
	Items    []catalogItem
}

// CatalogService renders the printable color catalog.
// The HTML is cached until the next adminUpdate event or until the first printed deal expires.
type CatalogService struct {
	products repository.ProductRepositoryInterface
	deals    repository.DealRepositoryInterface
	engine   *pricing.Engine
	parser   *colors.Parser
	baseURL  string // Base URL the headless browser prints from (e.g., "http://localhost:8080")

	mu         sync.Mutex
	cached     string
	valid      bool
	validUntil time.Time // Zero when no deal is printed
	generation uint64    // Bumped by Invalidate; a render started before the bump is not cached
}

// NewCatalogService creates a new CatalogService and subscribes it to adminUpdate on bus (when non-nil)
func NewCatalogService(
	products repository.ProductRepositoryInterface,
	deals repository.DealRepositoryInterface,
	engine *pricing.Engine,
	parser *colors.Parser,
	bus *events.Bus,
	baseURL string,
) *CatalogService {
	s := &CatalogService{
		products: products,
		deals:    deals,
		engine:   engine,
		parser:   parser,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
	if bus != nil {
		bus.Subscribe(events.AdminUpdate, func(events.Event) { s.Invalidate() })
	}
	return s
}

// Ensure CatalogService implements CatalogServiceInterface
var _ CatalogServiceInterface = (*CatalogService)(nil)

// Invalidate drops the cached HTML
func (s *CatalogService) Invalidate() {
	s.mu.Lock()
	s.valid = false
	s.cached = ""
	s.generation++
	s.mu.Unlock()
}

// detectChromePath detects the path to Chrome/Chromium executable
// Checks CHROME_PATH env var first, then common installation paths
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// RenderCatalogHTML returns the catalog sheet, rendering it only when the cache is stale
func (s *CatalogService) RenderCatalogHTML(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.valid && (s.validUntil.IsZero() || s.engine.Now().Before(s.validUntil)) {
		html := s.cached
		s.mu.Unlock()
		return html, nil
	}
	generation := s.generation
	s.mu.Unlock()

	products, err := s.products.GetAll(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load products: %w", err)
	}
	deals, err := s.deals.Active(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load deals: %w", err)
	}
	products = s.engine.ApplyDeals(products, deals)

	data := struct {
		ProductCount int
		GeneratedAt  string
		Sections     []catalogSection
	}{
		ProductCount: len(products),
		GeneratedAt:  s.engine.Now().Format("2006-01-02 15:04"),
		Sections:     s.sections(products),
	}

	var buf bytes.Buffer
	if err := catalogTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	html := buf.String()
	s.mu.Lock()
	if s.generation == generation {
		s.cached = html
		s.valid = true
		s.validUntil = s.firstExpiry(deals)
	}
	s.mu.Unlock()

	log.Printf("🎨 Catalog rendered: %d products, %d bytes", len(products), len(html))
	return html, nil
}

// firstExpiry is when the earliest active deal ends, zero without deals
func (s *CatalogService) firstExpiry(deals map[int]models.DailyDeal) time.Time {
	var first time.Time
	for _, d := range deals {
		added, err := time.Parse(time.RFC3339, d.AddedDate)
		if err != nil {
			continue
		}
		if end := added.Add(s.engine.DealTTL()); first.IsZero() || end.Before(first) {
			first = end
		}
	}
	return first
}

// sections groups products by category, both sorted by name
func (s *CatalogService) sections(products []models.Product) []catalogSection {
	byCategory := make(map[string][]catalogItem)
	sorted := make([]models.Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	for _, p := range sorted {
		item := catalogItem{
			Name:     p.Name,
			Sizes:    strings.Join(p.Sizes, " · "),
			Price:    utils.FormatPrice(p.Price),
			Swatches: make([]catalogSwatch, 0, len(p.Colors)),
		}
		if p.IsDailyDeal && p.DealPrice != nil {
			item.DealPrice = utils.FormatPrice(*p.DealPrice)
		}
		for _, c := range p.Colors {
			item.Swatches = append(item.Swatches, s.swatch(c))
		}
		byCategory[p.Category] = append(byCategory[p.Category], item)
	}

	names := make([]string, 0, len(byCategory))
	for name := range byCategory {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]catalogSection, 0, len(names))
	for _, name := range names {
		out = append(out, catalogSection{Category: name, Items: byCategory[name]})
	}
	return out
}

// swatch paints one product color. A name such as "Black/Gold" is drawn as a combination;
// a single color keeps the hex stored on the product.
func (s *CatalogService) swatch(c models.ColorSpec) catalogSwatch {
	comb := s.parser.Parse(c.Name)
	if len(comb.Colors) == 1 && c.Hex != "" {
		comb.Colors[0].Hex = c.Hex
	}
	v := colors.Generate(comb, catalogSwatchOptions)
	return catalogSwatch{
		Name:   c.Name,
		Class:  v.ClassName,
		Style:  template.CSS(v.CSS()),
		Markup: template.HTML(v.InnerHTML),
	}
}

// GeneratePDF prints the render endpoint to PDF with headless Chrome
func (s *CatalogService) GeneratePDF(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
		chromedp.Flag("enable-print-preview", true),
	)
	if chromePath := detectChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	renderURL := s.baseURL + "/admin/catalog/render"
	log.Printf("📄 GeneratePDF: printing %s", renderURL)

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(794, 1123), // A4 at 96 DPI
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		chromedp.Evaluate(`document.fonts.ready`, nil),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				WithPaperWidth(8.27).   // 210mm in inches
				WithPaperHeight(11.69). // 297mm in inches
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	log.Printf("✓ GeneratePDF: %d bytes", len(pdfBuf))
	return pdfBuf, nil
}
