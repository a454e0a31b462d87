// data.go provides typed context helpers for passing layout data from
// handlers and middleware to templ components without importing plugin
// types here.
//
// Data flow: Handler/Middleware → Echo Context → LayoutInjector → Go Context → templ
package layouts

import "context"

// ctxKey is a private type for context keys to prevent collisions.
type ctxKey string

const (
	keyCampaignID   ctxKey = "layout_campaign_id"
	keyCampaignName ctxKey = "layout_campaign_name"
	keyActivePath   ctxKey = "layout_active_path"
)

// --- Setters (called by the layout injector in app/routes.go) ---

// SetCampaignID stores the current campaign's ID in context.
func SetCampaignID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, keyCampaignID, id)
}

// SetCampaignName stores the current campaign's display name in context.
func SetCampaignName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, keyCampaignName, name)
}

// SetActivePath stores the request path so tab links can mark themselves.
func SetActivePath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, keyActivePath, path)
}

// --- Getters (called by templ components) ---

// GetCampaignID returns the current campaign's ID, or "".
func GetCampaignID(ctx context.Context) string {
	v, _ := ctx.Value(keyCampaignID).(string)
	return v
}

// GetCampaignName returns the current campaign's name, or "".
func GetCampaignName(ctx context.Context) string {
	v, _ := ctx.Value(keyCampaignName).(string)
	return v
}

// GetActivePath returns the current request path, or "".
func GetActivePath(ctx context.Context) string {
	v, _ := ctx.Value(keyActivePath).(string)
	return v
}
