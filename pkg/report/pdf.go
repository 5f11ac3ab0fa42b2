package report

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// DefaultPDFTimeout bounds headless Chrome rendering
const DefaultPDFTimeout = 30 * time.Second

// PDFOptions contains options for PDF generation
type PDFOptions struct {
	Landscape       bool
	PrintBackground bool
	PaperWidth      float64
	PaperHeight     float64
	Margin          float64
	Timeout         time.Duration
}

// DefaultPDFOptions returns default PDF options
func DefaultPDFOptions() PDFOptions {
	return PDFOptions{
		PrintBackground: true,
		PaperWidth:      8.5,  // Letter width in inches
		PaperHeight:     11.0, // Letter height in inches
		Margin:          0.4,
		Timeout:         DefaultPDFTimeout,
	}
}

// GeneratePDF generates a PDF report for an analysis. A nil options
// value uses DefaultPDFOptions.
func (g *Generator) GeneratePDF(id int64, outputPath string, options *PDFOptions) error {
	html, err := g.GenerateHTML(id)
	if err != nil {
		return fmt.Errorf("failed to generate HTML: %w", err)
	}

	if options == nil {
		def := DefaultPDFOptions()
		options = &def
	}
	return HTMLToPDF(html, outputPath, *options)
}

// HTMLToPDF prints an HTML document to pdfPath with headless Chrome
func HTMLToPDF(html, pdfPath string, options PDFOptions) error {
	timeout := options.Timeout
	if timeout <= 0 {
		timeout = DefaultPDFTimeout
	}

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	ctx, cancel = context.WithTimeout(ctx, timeout)
	defer cancel()

	dataURL := "data:text/html;charset=utf-8," + url.PathEscape(html)

	var pdfData []byte
	if err := chromedp.Run(ctx,
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfData, _, err = page.PrintToPDF().
				WithLandscape(options.Landscape).
				WithPrintBackground(options.PrintBackground).
				WithPaperWidth(options.PaperWidth).
				WithPaperHeight(options.PaperHeight).
				WithMarginTop(options.Margin).
				WithMarginBottom(options.Margin).
				WithMarginLeft(options.Margin).
				WithMarginRight(options.Margin).
				Do(ctx)
			return err
		}),
	); err != nil {
		return fmt.Errorf("failed to generate PDF: %w", err)
	}

	if err := os.WriteFile(pdfPath, pdfData, 0o600); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}

	return nil
}
