// Package export rasterizes rendered resume previews and packages them as
// A4 PDF documents using a headless browser.
//
// The pipeline is image-based: it does not reflow text, so content taller
// than one page is scaled or truncated at the browser's discretion. That is
// an accepted limitation of the export stage.
package export

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/RohanMakvana24/Resume-Pilot/internal/preview"
	"github.com/RohanMakvana24/Resume-Pilot/internal/types"
)

// FitMode controls how the rendered page is anchored on the A4 page.
type FitMode string

// Supported fit modes.
const (
	FitTop    FitMode = "top"
	FitCenter FitMode = "center"
)

// A4 dimensions in inches and CSS pixels at 96dpi.
const (
	a4WidthInches  = 8.27
	a4HeightInches = 11.69
	a4WidthPx      = 794
	a4HeightPx     = 1123
)

const browserTimeout = 60 * time.Second

// Exporter drives a headless Chrome instance. ChromePath overrides the
// browser binary location (CHROME_PATH is honored as well).
type Exporter struct {
	ChromePath string
}

// New creates an exporter, picking up CHROME_PATH from the environment.
func New() *Exporter {
	return &Exporter{ChromePath: os.Getenv("CHROME_PATH")}
}

// Rasterize renders an HTML document and captures it as a full-page PNG at
// the given scale factor.
func (e *Exporter) Rasterize(ctx context.Context, html string, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}

	var buf []byte
	err := e.run(ctx, html,
		chromedp.EmulateViewport(a4WidthPx, a4HeightPx, chromedp.EmulateScale(scale)),
		chromedp.FullScreenshot(&buf, 100),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to rasterize preview: %w", err)
	}
	return buf, nil
}

// HTMLToPDF prints an HTML document to a single fixed-size A4 PDF page,
// anchored top-left or vertically centered depending on the fit mode.
func (e *Exporter) HTMLToPDF(ctx context.Context, html string, fit FitMode) ([]byte, error) {
	if fit == FitCenter {
		html = centerBody(html)
	}

	var buf []byte
	err := e.run(ctx, html,
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4WidthInches).
				WithPaperHeight(a4HeightInches).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to print PDF: %w", err)
	}
	return buf, nil
}

// ImageToPDF places a rasterized page image onto a single A4 PDF page.
// The image is scaled to the page width; content taller than one page is
// truncated.
func (e *Exporter) ImageToPDF(ctx context.Context, png []byte, fit FitMode) ([]byte, error) {
	if len(png) == 0 {
		return nil, fmt.Errorf("empty image")
	}

	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><style>@page { size: A4; margin: 0; } body { margin: 0; } img { width: 210mm; display: block; }</style></head>
<body><img src="data:image/png;base64,%s"></body>
</html>`, base64.StdEncoding.EncodeToString(png))

	return e.HTMLToPDF(ctx, html, fit)
}

// ExportResume renders the canonical preview layout for a document and
// returns the A4 PDF bytes.
func (e *Exporter) ExportResume(ctx context.Context, r *types.Resume, fit FitMode) ([]byte, error) {
	html, err := preview.RenderHTML(preview.Project(r))
	if err != nil {
		return nil, err
	}
	return e.HTMLToPDF(ctx, html, fit)
}

// run loads the HTML from a temp file in a fresh headless browser context
// and executes the given actions once the body is ready.
func (e *Exporter) run(ctx context.Context, html string, actions ...chromedp.Action) error {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if e.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(e.ChromePath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, browserTimeout)
	defer cancelRun()

	tmpDir, err := os.MkdirTemp("", "resume-export-")
	if err != nil {
		return fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return fmt.Errorf("failed to write preview HTML: %w", err)
	}

	tasks := append(chromedp.Tasks{
		chromedp.Navigate("file://" + htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
	}, actions...)

	return chromedp.Run(runCtx, tasks)
}

// centerBody injects a style that vertically centers the page content
// within the A4 page box.
func centerBody(html string) string {
	const style = `<style>body{display:flex;flex-direction:column;justify-content:center;min-height:297mm}</style>`
	if idx := strings.Index(html, "</head>"); idx >= 0 {
		return html[:idx] + style + html[idx:]
	}
	return style + html
}

// Filename derives the download filename from the document's identity
// fields, falling back to the document ID.
func Filename(r *types.Resume) string {
	name := strings.TrimSpace(r.FirstName + "_" + r.LastName)
	name = strings.Trim(name, "_")
	if name == "" {
		return fmt.Sprintf("resume_%s.pdf", r.ID)
	}
	return fmt.Sprintf("resume_%s.pdf", strings.ReplaceAll(name, " ", "_"))
}
