package richtext

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

func ugc() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.UGCPolicy()
		policy.AllowElements("u")
		policy.RequireNoFollowOnLinks(false)
	})
	return policy
}

// Sanitize strips scripts, event handler attributes and anything else
// outside the user-generated-content allow list.
func Sanitize(html string) string {
	return ugc().Sanitize(html)
}
