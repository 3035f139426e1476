package export

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// PDFEncoder renders the payload as an HTML report and prints it to PDF with
// headless Chromium.
type PDFEncoder struct {
	ChromiumPath string
	Timeout      time.Duration
}

func (e PDFEncoder) Encode(ctx context.Context, w io.Writer, p Payload) error {
	html, err := RenderHTML(p)
	if err != nil {
		return fmt.Errorf("render html: %w", err)
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
	)
	if e.ChromiumPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(e.ChromiumPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	timeout := e.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	runCtx, cancelRun := chromedp.NewContext(allocCtx)
	defer cancelRun()
	runCtx, cancelTimeout := context.WithTimeout(runCtx, timeout)
	defer cancelTimeout()

	var pdf []byte
	dataURL := "data:text/html," + url.PathEscape(html)
	err = chromedp.Run(runCtx,
		chromedp.Navigate(dataURL),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, perr := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if perr == nil {
				pdf = buf
			}
			return perr
		}),
	)
	if err != nil {
		return fmt.Errorf("chromedp run failed: %w", err)
	}
	if _, err := w.Write(pdf); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

type reportData struct {
	Title   string
	Payload Payload
	Filters [][2]string
	Table   Table
	Stamp   string
}

var reportTemplate = template.Must(template.New("report").Parse(reportHTML))

// RenderHTML returns the HTML report the PDF is printed from.
func RenderHTML(p Payload) (string, error) {
	table, err := Tabulate(p.Data)
	if err != nil {
		return "", err
	}
	title := p.Module
	if p.Submodule != "" {
		title += " / " + p.Submodule
	}
	data := reportData{
		Title:   title,
		Payload: p,
		Table:   table,
		Stamp:   p.ExportedAt.Format("2006-01-02 15:04"),
	}
	for _, k := range p.FilterKeys() {
		data.Filters = append(data.Filters, [2]string{k, p.Filters[k]})
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const reportHTML = `<!doctype html>
<html lang="pl">
<head>
  <meta charset="utf-8" />
  <title>{{.Title}}</title>
  <style>
    body { font-family: 'Helvetica Neue', Arial, sans-serif; margin: 24px; color: #0f172a; }
    h1 { margin: 0 0 8px; text-transform: capitalize; }
    .meta { font-size: 12px; color: #475569; margin-bottom: 16px; }
    table { width: 100%; border-collapse: collapse; font-size: 12px; }
    th, td { padding: 6px 8px; border-bottom: 1px solid #e2e8f0; text-align: left; }
    th { background: #f8fafc; }
  </style>
</head>
<body>
  <h1>{{.Title}}</h1>
  <div class="meta">
    <div>Exported {{.Stamp}} by {{.Payload.ExportedBy}}</div>
    {{range .Filters}}<div>{{index . 0}}: {{index . 1}}</div>{{end}}
  </div>
  <table>
    <thead>
      <tr>{{range .Table.Header}}<th>{{.}}</th>{{end}}</tr>
    </thead>
    <tbody>
    {{range .Table.Rows}}
      <tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
    {{end}}
    </tbody>
  </table>
</body>
</html>
`
