package layouts

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

const baseStyles = `body{font-family:system-ui,sans-serif;margin:0;background:#f9fafb;color:#111827}` +
	`main{max-width:960px;margin:0 auto;padding:24px}` +
	`header{border-bottom:1px solid #e5e7eb;background:#fff;padding:12px 24px;font-weight:600}`

// Base wraps body in the HTML document shell. The header shows the campaign
// name when the layout injector stored one.
func Base(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		heading := "Campaign activity"
		if name := GetCampaignName(ctx); name != "" {
			heading = name
		}

		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`+
			`<meta name="viewport" content="width=device-width, initial-scale=1"><title>`+
			templ.EscapeString(title)+`</title><style>`+baseStyles+`</style></head><body><header>`+
			templ.EscapeString(heading)+`</header><main>`); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}
