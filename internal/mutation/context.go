package mutation

// Role is the coarse privilege tag resolved from a subject's linked profile.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Context carries the authenticated identity into every handler in a batch.
// It is passed explicitly; there is no ambient request state.
type Context struct {
	Subject string
	Role    Role

	afterCommit []func()
}

// Defer registers fn to run after the current mutation's transaction commits.
// Hooks never run for a rolled-back mutation, so side effects (email, etc.)
// only fire for persisted state.
func (c *Context) Defer(fn func()) {
	c.afterCommit = append(c.afterCommit, fn)
}

func (c *Context) runAfterCommit() {
	for _, fn := range c.afterCommit {
		fn()
	}
	c.afterCommit = nil
}

func (c *Context) dropAfterCommit() {
	c.afterCommit = nil
}
