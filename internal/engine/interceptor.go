package engine

import (
	"context"

	"github.com/user/quickbite/internal/types"
)

// Interceptor runs before state dispatch. Returning ok=true short-circuits
// the turn with the given response and no state change.
type Interceptor func(ctx context.Context, message string, sess *types.Session) (string, bool)

// menuInquiryInterceptor answers menu questions in any dialog state. A valid
// category wins over an item; an item that isn't on the menu falls through to
// normal dispatch.
func (e *Engine) menuInquiryInterceptor(ctx context.Context, message string, _ *types.Session) (string, bool) {
	inquiry := e.nlu.DetectMenuInquiry(ctx, message, e.catalog)
	if inquiry == nil {
		return "", false
	}

	if inquiry.Category != "" {
		if text, ok := e.catalog.FormatCategory(inquiry.Category); ok {
			return text, true
		}
	}
	if inquiry.Item != "" {
		text, ok := e.catalog.FormatItem(inquiry.Item)
		return text, ok
	}
	return e.catalog.FormatCategories(), true
}
